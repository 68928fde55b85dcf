package notion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/salmonumbrella/notion-sdk-go/internal/model"
)

func TestGetPage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/pages/p1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, pageFixture("p1"))
	})

	page, err := client.GetPage(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.ID != "p1" {
		t.Errorf("ID = %q", page.ID)
	}
	if parent, ok := page.Parent.(model.DatabaseParent); !ok || parent.DatabaseID != "db1" {
		t.Errorf("unexpected parent %#v", page.Parent)
	}
	score, ok := page.Properties["Score"].(model.NumberValue)
	if !ok || score.Number == nil || score.Number.IsInteger() || score.Number.Float64() != 4.5 {
		t.Errorf("unexpected Score %#v", page.Properties["Score"])
	}
}

func TestGetPage_MissingField(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"object":"page","id":"p1","created_time":"`+fixtureTime+`"}`)
	})

	_, err := client.GetPage(context.Background(), "p1")
	var de *model.DecodeError
	if !errors.As(err, &de) || de.Kind != model.KindMissingField || de.Field != "parent" {
		t.Fatalf("expected missing parent, got %v", err)
	}
}

func TestCreatePage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/pages" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if _, ok := body["properties"].(map[string]any); !ok {
			t.Errorf("properties must always be sent: %v", body)
		}
		if _, ok := body["children"]; ok {
			t.Errorf("empty children must be omitted: %v", body)
		}
		writeJSON(w, http.StatusOK, pageFixture("new"))
	})

	page, err := client.CreatePage(context.Background(), &CreatePageRequest{Parent: map[string]any{"database_id": "db1"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.ID != "new" {
		t.Errorf("ID = %q", page.ID)
	}

	if _, err := client.CreatePage(context.Background(), &CreatePageRequest{}); err == nil {
		t.Error("expected error without parent")
	}
}

func TestUpdatePage(t *testing.T) {
	archived := true
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/v1/pages/p1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["archived"] != true {
			t.Errorf("unexpected body %v", body)
		}
		writeJSON(w, http.StatusOK, pageFixture("p1"))
	})

	if _, err := client.UpdatePage(context.Background(), "p1", &UpdatePageRequest{Archived: &archived}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := client.UpdatePage(context.Background(), "p1", &UpdatePageRequest{}); err == nil {
		t.Error("expected error for empty update")
	}
}

func TestGetDatabase(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, databaseFixture("db1"))
	})

	db, err := client.GetDatabase(context.Background(), "db1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	num, ok := db.Properties["Score"].(model.NumberProperty)
	if !ok || num.Number.Format == nil || *num.Number.Format != model.NumberFormatNumber {
		t.Errorf("unexpected Score schema %#v", db.Properties["Score"])
	}
}

func TestCreateDatabase(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/databases" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		writeJSON(w, http.StatusOK, databaseFixture("db2"))
	})

	db, err := client.CreateDatabase(context.Background(), &CreateDatabaseRequest{
		Parent:     map[string]any{"page_id": "p0"},
		Properties: map[string]any{"Name": map[string]any{"title": map[string]any{}}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db.ID != "db2" {
		t.Errorf("ID = %q", db.ID)
	}
	if _, err := client.CreateDatabase(context.Background(), &CreateDatabaseRequest{Parent: map[string]any{"page_id": "p0"}}); err == nil {
		t.Error("expected error without properties")
	}
}

func TestListDatabases(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/v1/databases" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		writeJSON(w, http.StatusOK, listFixture("", databaseFixture("db1"), databaseFixture("db2")))
	})

	list, err := client.ListDatabases(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list.Results) != 2 || list.Results[1].ID != "db2" {
		t.Errorf("unexpected results %+v", list.Results)
	}
}

func TestQueryDatabase(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/databases/db1/query" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body QueryDatabaseRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Filter["property"] != "Done" || body.PageSize != 10 {
			t.Errorf("unexpected body %+v", body)
		}
		writeJSON(w, http.StatusOK, listFixture("", pageFixture("r1")))
	})

	list, err := client.QueryDatabase(context.Background(), "db1", &QueryDatabaseRequest{
		Filter:   map[string]any{"property": "Done", "checkbox": map[string]any{"equals": true}},
		PageSize: 10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list.Results) != 1 || list.Results[0].ID != "r1" {
		t.Errorf("unexpected results %+v", list.Results)
	}
}
