package notion

import (
	"context"
	"net/http"
	"testing"

	"github.com/salmonumbrella/notion-sdk-go/internal/model"
)

func TestSearch_MixedResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/search" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		writeJSON(w, http.StatusOK, listFixture("", pageFixture("p1"), databaseFixture("db1")))
	})

	list, err := client.Search(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(list.Results))
	}
	if _, ok := list.Results[0].(model.Page); !ok {
		t.Errorf("expected Page, got %T", list.Results[0])
	}
	if _, ok := list.Results[1].(model.Database); !ok {
		t.Errorf("expected Database, got %T", list.Results[1])
	}
}

func TestSearch_PageSizeValidated(t *testing.T) {
	if _, err := NewClient("t").Search(context.Background(), &SearchRequest{PageSize: 500}); err == nil {
		t.Fatal("expected page_size error")
	}
}
