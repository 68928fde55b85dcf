package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// UserType discriminates users.
type UserType string

const (
	UserTypeBot    UserType = "bot"
	UserTypePerson UserType = "person"
)

// User is either a BotUser or a PersonUser.
type User interface {
	Entity
	Base() UserCommon
	isUser()
}

// UserCommon holds the fields shared by every user.
// See: https://developers.notion.com/reference/user
type UserCommon struct {
	Object    ObjectType `json:"object"`
	ID        string     `json:"id"`
	Type      UserType   `json:"type"`
	Name      string     `json:"name"`
	AvatarURL *string    `json:"avatar_url"`
}

func (u UserCommon) Base() UserCommon     { return u }
func (UserCommon) ObjectType() ObjectType { return ObjectUser }
func (UserCommon) isUser()                {}

// BotUser is an integration.
type BotUser struct {
	UserCommon
	Bot map[string]any `json:"bot,omitempty"`
}

// PersonUser is a human member of the workspace.
type PersonUser struct {
	UserCommon
	Person *Person `json:"person,omitempty"`
}

// Person carries a person's contact details.
type Person struct {
	Email string `json:"email"`
}

func decodeUserCommon(f fields, want UserType) (UserCommon, error) {
	u := UserCommon{Object: ObjectUser, Type: want}
	var err error
	if err = f.expectTag("type", string(want)); err != nil {
		return u, err
	}
	if err = f.expectObject(ObjectUser); err != nil {
		return u, err
	}
	if u.ID, err = f.str("id"); err != nil {
		return u, err
	}
	if u.Name, err = f.str("name"); err != nil {
		return u, err
	}
	if u.AvatarURL, err = f.optStr("avatar_url"); err != nil {
		return u, err
	}
	return u, nil
}

func decodeBotUser(raw Raw) (User, error) {
	f := fields(raw)
	common, err := decodeUserCommon(f, UserTypeBot)
	if err != nil {
		return nil, err
	}
	bot, _, err := f.optObject("bot")
	if err != nil {
		return nil, err
	}
	return BotUser{UserCommon: common, Bot: bot}, nil
}

func decodePersonUser(raw Raw) (User, error) {
	f := fields(raw)
	common, err := decodeUserCommon(f, UserTypePerson)
	if err != nil {
		return nil, err
	}
	u := PersonUser{UserCommon: common}
	if _, ok := f.value("person"); ok {
		p, err := nested(f, "person", decodePerson)
		if err != nil {
			return nil, err
		}
		u.Person = &p
	}
	return u, nil
}

func decodePerson(raw Raw) (Person, error) {
	f := fields(raw)
	email, err := f.str("email")
	if err != nil {
		return Person{}, err
	}
	if err := validation.Validate(email, validation.Required, is.EmailFormat); err != nil {
		return Person{}, malformed("email", "%v", err)
	}
	return Person{Email: email}, nil
}
