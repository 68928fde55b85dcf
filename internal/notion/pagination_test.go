package notion

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/salmonumbrella/notion-sdk-go/internal/model"
)

func strPtr(s string) *string { return &s }

func TestCollectAll(t *testing.T) {
	pages := map[string]model.List[int]{
		"":   {Results: []int{1, 2}, HasMore: true, NextCursor: strPtr("b")},
		"b":  {Results: []int{3}, HasMore: true, NextCursor: strPtr("c")},
		"c":  {Results: []int{4, 5}},
		"zz": {},
	}
	var seen []string
	fetch := func(ctx context.Context, cursor string) (model.List[int], error) {
		seen = append(seen, cursor)
		return pages[cursor], nil
	}

	all, err := CollectAll[int](context.Background(), fetch, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 5 || all[4] != 5 {
		t.Errorf("unexpected results %v", all)
	}
	if len(seen) != 3 || seen[1] != "b" || seen[2] != "c" {
		t.Errorf("unexpected cursors %v", seen)
	}

	seen = nil
	limited, err := CollectAll[int](context.Background(), fetch, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(limited) != 3 || len(seen) != 2 {
		t.Errorf("limit not honoured: %v after %v", limited, seen)
	}
}

func TestCollectAll_Errors(t *testing.T) {
	boom := errors.New("boom")
	_, err := CollectAll[int](context.Background(), func(ctx context.Context, cursor string) (model.List[int], error) {
		return model.List[int]{}, boom
	}, 0)
	if !errors.Is(err, boom) {
		t.Errorf("expected fetch error, got %v", err)
	}

	_, err = CollectAll[int](context.Background(), func(ctx context.Context, cursor string) (model.List[int], error) {
		return model.List[int]{HasMore: true, NextCursor: strPtr("same")}, nil
	}, 0)
	if err == nil {
		t.Error("expected error for a cursor that never advances")
	}
}

func TestCollectAll_UsersAcrossPages(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("start_cursor") == "" {
			writeJSON(w, http.StatusOK, listFixture("p2", userFixture("u1", "bot")))
			return
		}
		writeJSON(w, http.StatusOK, listFixture("", userFixture("u2", "person")))
	})

	users, err := CollectAll[model.User](context.Background(), func(ctx context.Context, cursor string) (model.List[model.User], error) {
		return client.ListUsers(ctx, &PageOptions{StartCursor: cursor})
	}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 || users[1].Base().ID != "u2" {
		t.Errorf("unexpected users %v", users)
	}
}

func TestPageOptions_Query(t *testing.T) {
	var nilOpts *PageOptions
	q, err := nilOpts.query()
	if err != nil || len(q) != 0 {
		t.Errorf("nil options: %v %v", q, err)
	}
	q, err = (&PageOptions{StartCursor: "abc", PageSize: 100}).query()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Get("start_cursor") != "abc" || q.Get("page_size") != "100" {
		t.Errorf("unexpected query %v", q)
	}
	if _, err := (&PageOptions{PageSize: -1}).query(); err == nil {
		t.Error("expected error for negative page size")
	}
}
