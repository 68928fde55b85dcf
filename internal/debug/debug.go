// Package debug traces HTTP traffic to the Notion API.
package debug

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"
)

const (
	maxRequestBody  = 500
	maxResponseBody = 1000
)

// tokenPattern matches integration tokens that may leak into bodies or URLs.
var tokenPattern = regexp.MustCompile(`\b(secret_|ntn_)[A-Za-z0-9]{4,}`)

type contextKey struct{}

// WithDebug injects the debug flag into the context.
func WithDebug(ctx context.Context, debug bool) context.Context {
	return context.WithValue(ctx, contextKey{}, debug)
}

// IsDebug reports whether debug mode is enabled in the context.
func IsDebug(ctx context.Context) bool {
	v, _ := ctx.Value(contextKey{}).(bool)
	return v
}

// Transport wraps an http.RoundTripper and writes every exchange to Output.
type Transport struct {
	Base   http.RoundTripper
	Output io.Writer
}

// NewDebugTransport wraps base. Nil base uses http.DefaultTransport, nil
// output uses os.Stderr.
func NewDebugTransport(base http.RoundTripper, output io.Writer) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	if output == nil {
		output = os.Stderr
	}
	return &Transport{Base: base, Output: output}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	_, _ = fmt.Fprintf(t.Output, "\n--> %s %s\n", req.Method, Redact(req.URL.String()))
	t.writeHeaders(req.Header)

	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		_ = req.Body.Close()
		if err != nil {
			_, _ = fmt.Fprintf(t.Output, "    [error reading request body: %v]\n", err)
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
		t.writeBody(body, maxRequestBody)
	}

	resp, err := t.Base.RoundTrip(req)
	elapsed := time.Since(start).Round(time.Millisecond)
	if err != nil {
		_, _ = fmt.Fprintf(t.Output, "<-- error: %v (%s)\n\n", err, elapsed)
		return resp, err
	}

	_, _ = fmt.Fprintf(t.Output, "<-- %s (%s)\n", resp.Status, elapsed)
	if rl := resp.Header.Get("X-RateLimit-Remaining"); rl != "" {
		_, _ = fmt.Fprintf(t.Output, "    rate limit: %s/%s remaining\n", rl, resp.Header.Get("X-RateLimit-Limit"))
	}
	t.writeHeaders(resp.Header)

	if resp.Body != nil {
		body, rerr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if rerr != nil {
			_, _ = fmt.Fprintf(t.Output, "    [error reading response body: %v]\n", rerr)
		}
		resp.Body = io.NopCloser(bytes.NewReader(body))
		t.writeBody(body, maxResponseBody)
	}
	_, _ = fmt.Fprintln(t.Output)
	return resp, nil
}

// writeHeaders prints headers in a stable order with the bearer token masked.
func (t *Transport) writeHeaders(h http.Header) {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		val := strings.Join(h[k], ", ")
		if k == "Authorization" {
			val = redactBearer(val)
		}
		_, _ = fmt.Fprintf(t.Output, "    %s: %s\n", k, val)
	}
}

func (t *Transport) writeBody(body []byte, limit int) {
	if len(body) == 0 {
		return
	}
	s := Redact(string(body))
	if len(s) > limit {
		s = s[:limit] + "... [truncated]"
	}
	_, _ = fmt.Fprintf(t.Output, "    body: %s\n", s)
}

func redactBearer(val string) string {
	token, ok := strings.CutPrefix(val, "Bearer ")
	if !ok {
		return "[redacted]"
	}
	if len(token) <= 8 {
		return "Bearer [redacted]"
	}
	return "Bearer ..." + token[len(token)-4:]
}

// Redact masks integration tokens found in s.
func Redact(s string) string {
	return tokenPattern.ReplaceAllString(s, "${1}[redacted]")
}
