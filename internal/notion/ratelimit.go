package notion

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RateLimitInfo is the rate limit state reported by the last response.
type RateLimitInfo struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
	RequestID string
	UpdatedAt time.Time
}

// RateLimitTracker records rate limit headers. Safe for concurrent use.
type RateLimitTracker struct {
	mu   sync.RWMutex
	info *RateLimitInfo
}

// NewRateLimitTracker creates an empty tracker.
func NewRateLimitTracker() *RateLimitTracker {
	return &RateLimitTracker{}
}

// Update reads X-RateLimit-Limit, X-RateLimit-Remaining, X-RateLimit-Reset
// (unix seconds) and X-Request-Id from resp. Unparseable values are ignored.
func (t *RateLimitTracker) Update(resp *http.Response) {
	if resp == nil {
		return
	}
	info := &RateLimitInfo{
		RequestID: resp.Header.Get("X-Request-Id"),
		UpdatedAt: time.Now(),
	}
	info.Limit, _ = strconv.Atoi(resp.Header.Get("X-RateLimit-Limit"))
	info.Remaining, _ = strconv.Atoi(resp.Header.Get("X-RateLimit-Remaining"))
	if ts, err := strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64); err == nil {
		info.ResetAt = time.Unix(ts, 0)
	}

	t.mu.Lock()
	t.info = info
	t.mu.Unlock()
}

// Get returns a copy of the latest info, or nil before the first response.
func (t *RateLimitTracker) Get() *RateLimitInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.info == nil {
		return nil
	}
	info := *t.info
	return &info
}

// IsLow reports whether fewer than 10% of the window's requests remain.
func (t *RateLimitTracker) IsLow() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.info == nil || t.info.Limit == 0 {
		return false
	}
	return float64(t.info.Remaining)/float64(t.info.Limit) < 0.1
}
