package notion

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const fixtureTime = "2021-05-13T10:00:00.000Z"

func userFixture(id, typ string) string {
	extra := `"bot":{}`
	if typ == "person" {
		extra = `"person":{"email":"ada@example.com"}`
	}
	return fmt.Sprintf(`{"object":"user","id":%q,"type":%q,"name":"User %s","avatar_url":null,%s}`, id, typ, id, extra)
}

func blockFixture(id, typ string, hasChildren bool) string {
	content := `{"text":[{"type":"text","plain_text":"hello","href":null,` +
		`"annotations":{"bold":false,"italic":false,"strikethrough":false,"underline":false,"code":false,"color":"default"},` +
		`"text":{"content":"hello","link":null}}]}`
	switch typ {
	case "to_do":
		content = `{"text":[],"checked":false}`
	case "child_page":
		content = `{"title":"Sub page"}`
	}
	return fmt.Sprintf(`{"object":"block","id":%q,"type":%q,"created_time":%q,"last_edited_time":%q,"has_children":%v,%q:%s}`,
		id, typ, fixtureTime, fixtureTime, hasChildren, typ, content)
}

func pageFixture(id string) string {
	return fmt.Sprintf(`{"object":"page","id":%q,"created_time":%q,"last_edited_time":%q,"archived":false,`+
		`"parent":{"type":"database_id","database_id":"db1"},"url":"https://www.notion.so/%s",`+
		`"properties":{"Name":{"id":"title","type":"title","title":[]},"Score":{"id":"a1","type":"number","number":4.5}}}`,
		id, fixtureTime, fixtureTime, id)
}

func databaseFixture(id string) string {
	return fmt.Sprintf(`{"object":"database","id":%q,"created_time":%q,"last_edited_time":%q,`+
		`"parent":{"type":"page_id","page_id":"p0"},"title":[],`+
		`"properties":{"Name":{"id":"title","name":"Name","type":"title","title":{}},`+
		`"Score":{"id":"a1","name":"Score","type":"number","number":{"format":"number"}}}}`,
		id, fixtureTime, fixtureTime)
}

func listFixture(cursor string, results ...string) string {
	next, more := "null", "false"
	if cursor != "" {
		next, more = fmt.Sprintf("%q", cursor), "true"
	}
	body := `{"object":"list","has_more":` + more + `,"next_cursor":` + next + `,"results":[`
	for i, r := range results {
		if i > 0 {
			body += ","
		}
		body += r
	}
	return body + "]}"
}

// newTestClient starts a server for handler and returns a client pointed at
// it with fast retries.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("test-token").
		WithBaseURL(server.URL).
		WithRetryDelay(time.Millisecond)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
