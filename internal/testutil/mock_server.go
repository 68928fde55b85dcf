// Package testutil provides a fake Notion API for command-level tests.
package testutil

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// Request is one call the fake API received.
type Request struct {
	Method  string
	Path    string
	Query   string
	Body    string
	Version string
	Auth    string
}

// FakeAPI serves canned JSON bodies keyed by "METHOD /path" and records
// every request. Unregistered routes answer with an object_not_found error.
type FakeAPI struct {
	server *httptest.Server

	mu       sync.Mutex
	routes   map[string][]http.HandlerFunc
	requests []Request
}

// NewFakeAPI starts a server that is closed when t finishes.
func NewFakeAPI(t testing.TB) *FakeAPI {
	t.Helper()
	f := &FakeAPI{routes: make(map[string][]http.HandlerFunc)}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

func (f *FakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	key := r.Method + " " + r.URL.Path

	f.mu.Lock()
	f.requests = append(f.requests, Request{
		Method:  r.Method,
		Path:    r.URL.Path,
		Query:   r.URL.RawQuery,
		Body:    string(body),
		Version: r.Header.Get("Notion-Version"),
		Auth:    r.Header.Get("Authorization"),
	})
	var handler http.HandlerFunc
	if queue := f.routes[key]; len(queue) > 0 {
		handler = queue[0]
		// the last response repeats
		if len(queue) > 1 {
			f.routes[key] = queue[1:]
		}
	}
	f.mu.Unlock()

	if handler == nil {
		writeError(w, http.StatusNotFound, "object_not_found", "Could not find "+r.URL.Path)
		return
	}
	handler(w, r)
}

// URL is the server root; the client appends /v1 itself.
func (f *FakeAPI) URL() string {
	return f.server.URL
}

// Handle queues handler for method and path. Successive calls to the same
// route are answered in order.
func (f *FakeAPI) Handle(method, path string, handler http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := method + " " + path
	f.routes[key] = append(f.routes[key], handler)
}

// Reply queues a raw JSON body with status.
func (f *FakeAPI) Reply(method, path string, status int, body string) {
	f.Handle(method, path, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

// ReplyError queues a Notion error object.
func (f *FakeAPI) ReplyError(method, path string, status int, code, message string) {
	f.Handle(method, path, func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, status, code, message)
	})
}

// ReplyRateLimited queues a 429 carrying Retry-After.
func (f *FakeAPI) ReplyRateLimited(method, path string, retryAfterSeconds int) {
	f.Handle(method, path, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfterSeconds))
		writeError(w, http.StatusTooManyRequests, "rate_limited", "Rate limited")
	})
}

// Requests returns a copy of the request log.
func (f *FakeAPI) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.requests...)
}

// Last returns the most recent request matching method and path prefix.
func (f *FakeAPI) Last(method, pathPrefix string) (Request, bool) {
	reqs := f.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Method == method && strings.HasPrefix(reqs[i].Path, pathPrefix) {
			return reqs[i], true
		}
	}
	return Request{}, false
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = fmt.Fprintf(w, `{"object":"error","status":%d,"code":%q,"message":%q}`, status, code, message)
}
