package output

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/salmonumbrella/notion-sdk-go/internal/model"
)

const ts = `"created_time":"2021-05-13T10:00:00.000Z","last_edited_time":"2021-05-13T10:00:00.000Z"`

func span(s string) string {
	return `{"type":"text","plain_text":"` + s + `","href":null,` +
		`"annotations":{"bold":false,"italic":false,"strikethrough":false,"underline":false,"code":false,"color":"default"},` +
		`"text":{"content":"` + s + `","link":null}}`
}

func TestRenderText_BlockTree(t *testing.T) {
	root := mustDecode(t, `{"object":"block","id":"t1","type":"toggle",`+ts+`,"has_children":true,
		"toggle":{"text":[`+span("Plans")+`],"children":[
			{"object":"block","id":"h1","type":"heading_2",`+ts+`,"heading_2":{"text":[`+span("Q3")+`]}},
			{"object":"block","id":"n1","type":"numbered_list_item",`+ts+`,"has_children":false,"numbered_list_item":{"text":[`+span("ship")+`]}},
			{"object":"block","id":"d1","type":"to_do",`+ts+`,"has_children":false,"to_do":{"text":[`+span("test")+`],"checked":true}},
			{"object":"block","id":"c1","type":"child_page",`+ts+`,"has_children":false,"child_page":{"title":"Notes"}},
			{"object":"block","id":"x1","type":"synced_block",`+ts+`,"has_children":false,"synced_block":{}}
		]}}`, model.DecodeBlock)

	var buf bytes.Buffer
	if err := NewPrinter(&buf, FormatText).Print(context.Background(), root); err != nil {
		t.Fatalf("Print: %v", err)
	}
	want := strings.Join([]string{
		"> Plans",
		"  ## Q3",
		"  2. ship",
		"  [x] test",
		"  [page] Notes (c1)",
		"  [synced_block] (x1)",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestRenderText_UsersWithCursor(t *testing.T) {
	cursor := "abc"
	list := model.List[model.User]{
		Results: []model.User{
			mustDecode(t, userJSON, model.DecodeUser),
			mustDecode(t, `{"object":"user","id":"b1","type":"bot","name":"Importer","bot":{}}`, model.DecodeUser),
		},
		HasMore:    true,
		NextCursor: &cursor,
	}
	var buf bytes.Buffer
	if err := renderText(&buf, list); err != nil {
		t.Fatalf("renderText: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"ID", "ada@example.com", "Importer", "--cursor abc"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderText_Page(t *testing.T) {
	page := mustDecode(t, `{"object":"page","id":"p1",`+ts+`,"archived":false,
		"parent":{"type":"database_id","database_id":"db1"},"url":"https://www.notion.so/p1",
		"properties":{
			"Name":{"id":"title","type":"title","title":[`+span("Launch")+`]},
			"Tags":{"id":"t","type":"multi_select","multi_select":[{"name":"a"},{"name":"b"}]},
			"Due":{"id":"d","type":"date","date":{"start":"2021-06-01","end":"2021-06-03"}},
			"Score":{"id":"s","type":"formula","formula":{"type":"number","number":3}}
		}}`, model.DecodePage)

	var buf bytes.Buffer
	if err := renderText(&buf, page); err != nil {
		t.Fatalf("renderText: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Launch", "database:db1", "a, b", "2021-06-01 → 2021-06-03", "Score", "3"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderText_SearchResults(t *testing.T) {
	page := mustDecode(t, `{"object":"page","id":"p1",`+ts+`,"archived":false,
		"parent":{"type":"workspace","workspace":true},"url":"https://www.notion.so/p1",
		"properties":{"title":{"id":"title","type":"title","title":[`+span("Home")+`]}}}`, model.DecodePage)
	db := mustDecode(t, `{"object":"database","id":"db1",`+ts+`,"parent":{"type":"page_id","page_id":"p1"},
		"title":[`+span("Tasks")+`],"properties":{}}`, model.DecodeDatabase)

	var buf bytes.Buffer
	if err := renderText(&buf, []model.SearchResult{page, db}); err != nil {
		t.Fatalf("renderText: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[1], "page") || !strings.Contains(lines[2], "Tasks") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestRenderText_Fallback(t *testing.T) {
	var buf bytes.Buffer
	if err := renderText(&buf, map[string]any{"ok": true}); err != nil {
		t.Fatalf("renderText: %v", err)
	}
	if buf.String() != "ok: true\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestParentString(t *testing.T) {
	tests := map[string]model.Parent{
		"database:d": model.DatabaseParent{DatabaseID: "d"},
		"page:p":     model.PageParent{PageID: "p"},
		"workspace":  model.WorkspaceParent{Workspace: true},
	}
	for want, p := range tests {
		if got := ParentString(p); got != want {
			t.Errorf("ParentString(%#v) = %q, want %q", p, got, want)
		}
	}
}
