package provider

import (
	"sync"
	"time"
)

// quotaWindow is the interval over which per-provider call counts reset.
const quotaWindow = time.Minute

// QuotaBook tracks per-provider call counts over a sliding window so the
// gateway can refuse a call locally before spending a network round trip.
type QuotaBook struct {
	mu      sync.Mutex
	limits  map[string]int
	windows map[string]*window
	now     func() time.Time
}

type window struct {
	start time.Time
	count int
}

// NewQuotaBook creates an empty quota book. Providers without a configured
// limit are never refused.
func NewQuotaBook() *QuotaBook {
	return &QuotaBook{
		limits:  make(map[string]int),
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// SetLimit configures the calls-per-minute cap for a provider. A limit of
// zero or less removes the cap.
func (q *QuotaBook) SetLimit(providerID string, callsPerMinute int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if callsPerMinute <= 0 {
		delete(q.limits, providerID)
		return
	}
	q.limits[providerID] = callsPerMinute
}

// Allow records an intended call and reports whether the provider's quota
// permits it. A denied call is not counted.
func (q *QuotaBook) Allow(providerID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	limit, ok := q.limits[providerID]
	if !ok {
		return true
	}

	now := q.now()
	w := q.windows[providerID]
	if w == nil || now.Sub(w.start) >= quotaWindow {
		w = &window{start: now}
		q.windows[providerID] = w
	}

	if w.count >= limit {
		return false
	}
	w.count++
	return true
}

// Remaining reports how many calls the provider may still make in the
// current window. Uncapped providers report -1.
func (q *QuotaBook) Remaining(providerID string) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	limit, ok := q.limits[providerID]
	if !ok {
		return -1
	}

	w := q.windows[providerID]
	if w == nil || q.now().Sub(w.start) >= quotaWindow {
		return limit
	}
	if limit < w.count {
		return 0
	}
	return limit - w.count
}
