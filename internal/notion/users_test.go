package notion

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/salmonumbrella/notion-sdk-go/internal/model"
)

func TestGetUser_Person(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/v1/users/user123" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		writeJSON(w, http.StatusOK, userFixture("user123", "person"))
	})

	user, err := client.GetUser(context.Background(), "user123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	person, ok := user.(model.PersonUser)
	if !ok {
		t.Fatalf("expected PersonUser, got %T", user)
	}
	if person.Person == nil || person.Person.Email != "ada@example.com" {
		t.Errorf("unexpected contact %+v", person.Person)
	}
}

func TestGetUser_EmptyID(t *testing.T) {
	_, err := NewClient("test-token").GetUser(context.Background(), "")
	if err == nil || err.Error() != "user ID is required" {
		t.Errorf("unexpected error %v", err)
	}
}

func TestListUsers(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/users" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, listFixture("more", userFixture("u1", "bot"), userFixture("u2", "person")))
	})

	list, err := client.ListUsers(context.Background(), &PageOptions{PageSize: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list.Results) != 2 {
		t.Fatalf("expected 2 users, got %d", len(list.Results))
	}
	if _, ok := list.Results[0].(model.BotUser); !ok {
		t.Errorf("expected BotUser, got %T", list.Results[0])
	}
}

func TestListUsers_UnknownTypeFailsPage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, listFixture("", userFixture("u1", "bot"),
			`{"object":"user","id":"u2","type":"group","name":"x"}`, userFixture("u3", "bot")))
	})

	_, err := client.ListUsers(context.Background(), nil)
	if !errors.Is(err, model.ErrUnsupportedVariant) {
		t.Fatalf("expected unsupported variant, got %v", err)
	}
}

func TestListUsers_CursorInvariant(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"object":"list","has_more":true,"next_cursor":null,"results":[]}`)
	})

	_, err := client.ListUsers(context.Background(), nil)
	if !errors.Is(err, model.ErrMalformedValue) {
		t.Fatalf("expected malformed next_cursor, got %v", err)
	}
}

func TestGetSelf(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/users/me" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, userFixture("bot1", "bot"))
	})

	user, err := client.GetSelf(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Base().Name != "User bot1" {
		t.Errorf("Name = %q", user.Base().Name)
	}
}
