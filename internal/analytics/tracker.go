// Package analytics maintains the request and tool call counters of the
// nextmcp server and persists them as a JSON snapshot.
package analytics

import (
	"log/slog"
	"maps"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// maxRecent is the size of the recent activity ring.
	maxRecent = 100
	// maxTopClients is the number of client addresses Summarize returns.
	maxTopClients = 20
	// hourWindow is the number of hourly buckets Summarize returns.
	hourWindow = 24
	// hourFormat is the bucket key format, UTC.
	hourFormat = "2006-01-02T15"
)

// Activity is one entry of the recent activity ring.
type Activity struct {
	ID       string    `json:"id"`
	Time     time.Time `json:"time"`
	Kind     string    `json:"kind"` // "request" or "tool_call"
	Name     string    `json:"name"` // endpoint path or tool name
	ClientIP string    `json:"client_ip,omitempty"`
}

// State is the serialisable aggregate.  It is what gets written to the
// snapshot file, wholesale.
type State struct {
	TotalRequests  int            `json:"total_requests"`
	TotalToolCalls int            `json:"total_tool_calls"`
	Methods        map[string]int `json:"methods"`
	Endpoints      map[string]int `json:"endpoints"`
	Tools          map[string]int `json:"tools"`
	Clients        map[string]int `json:"clients"`
	UserAgents     map[string]int `json:"user_agents"`
	Hours          map[string]int `json:"hours"`
	Recent         []Activity     `json:"recent"` // most recent first
}

// zeroState returns an empty but fully initialised State.
func zeroState() *State {
	return &State{
		Methods:    make(map[string]int),
		Endpoints:  make(map[string]int),
		Tools:      make(map[string]int),
		Clients:    make(map[string]int),
		UserAgents: make(map[string]int),
		Hours:      make(map[string]int),
	}
}

// normalise backfills nil maps of a state that came from an older or partial
// snapshot, and re-applies the ring cap.
func (s *State) normalise() {
	z := zeroState()
	if s.Methods == nil {
		s.Methods = z.Methods
	}
	if s.Endpoints == nil {
		s.Endpoints = z.Endpoints
	}
	if s.Tools == nil {
		s.Tools = z.Tools
	}
	if s.Clients == nil {
		s.Clients = z.Clients
	}
	if s.UserAgents == nil {
		s.UserAgents = z.UserAgents
	}
	if s.Hours == nil {
		s.Hours = z.Hours
	}
	if len(s.Recent) > maxRecent {
		s.Recent = s.Recent[:maxRecent]
	}
}

// Tracker accumulates request and tool call statistics.  All methods are
// safe for concurrent use; increments are never lost.
type Tracker struct {
	mu      sync.Mutex
	st      *State
	started time.Time
	lg      *slog.Logger

	now func() time.Time // for tests
}

// New returns a Tracker with zero counters.
func New(lg *slog.Logger) *Tracker {
	return newTracker(zeroState(), lg)
}

func newTracker(st *State, lg *slog.Logger) *Tracker {
	if lg == nil {
		lg = slog.Default()
	}
	st.normalise()
	t := &Tracker{
		st:      st,
		started: time.Now(),
		lg:      lg,
		now:     time.Now,
	}
	t.pruneHours()
	return t
}

// Load initialises a Tracker from the snapshot in store.  A missing or
// unreadable snapshot is not an error: counting starts from zero.
func Load(store Store, lg *slog.Logger) *Tracker {
	if lg == nil {
		lg = slog.Default()
	}
	st, err := store.Load()
	if err != nil {
		lg.Warn("analytics: no usable snapshot, starting fresh", "error", err)
		st = zeroState()
	}
	return newTracker(st, lg)
}

// RecordRequest records one inbound HTTP request.  It never fails.
func (t *Tracker) RecordRequest(method, endpoint, clientIP, userAgent string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.st.TotalRequests++
	t.st.Methods[method]++
	t.st.Endpoints[endpoint]++
	if clientIP != "" {
		t.st.Clients[clientIP]++
	}
	t.st.UserAgents[ClassifyUserAgent(userAgent)]++
	t.st.Hours[now.UTC().Format(hourFormat)]++
	t.pushRecent(Activity{
		ID:       uuid.NewString(),
		Time:     now,
		Kind:     "request",
		Name:     endpoint,
		ClientIP: clientIP,
	})
}

// RecordToolCall records one tool invocation.  It never fails.
func (t *Tracker) RecordToolCall(tool, clientIP string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.st.TotalToolCalls++
	t.st.Tools[tool]++
	if clientIP != "" {
		t.st.Clients[clientIP]++
	}
	t.st.Hours[now.UTC().Format(hourFormat)]++
	t.pushRecent(Activity{
		ID:       uuid.NewString(),
		Time:     now,
		Kind:     "tool_call",
		Name:     tool,
		ClientIP: clientIP,
	})
}

// pushRecent prepends a to the ring, dropping the oldest entry when full.
// Callers must hold t.mu.
func (t *Tracker) pushRecent(a Activity) {
	t.st.Recent = append([]Activity{a}, t.st.Recent...)
	if len(t.st.Recent) > maxRecent {
		t.st.Recent = t.st.Recent[:maxRecent]
	}
}

// Uptime returns the time elapsed since the tracker was created.
func (t *Tracker) Uptime() time.Duration {
	return time.Since(t.started)
}

// NameCount is a single name to count mapping of a sorted breakdown.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// HourCount is the count of one hourly bucket.
type HourCount struct {
	Hour  string `json:"hour"` // UTC, "2006-01-02T15"
	Count int    `json:"count"`
}

// Summary is the aggregate view served on /analytics.
type Summary struct {
	UptimeSeconds  int64       `json:"uptime_seconds"`
	TotalRequests  int         `json:"total_requests"`
	TotalToolCalls int         `json:"total_tool_calls"`
	Methods        []NameCount `json:"methods"`
	Endpoints      []NameCount `json:"endpoints"`
	Tools          []NameCount `json:"tools"`       // sorted by count, descending
	TopClients     []NameCount `json:"top_clients"` // at most 20, descending
	UserAgents     []NameCount `json:"user_agents"` // descending
	Hours          []HourCount `json:"hours"`       // last 24 hours, chronological
	Recent         []Activity  `json:"recent"`      // most recent first
}

// Summarize builds a point-in-time summary of the aggregate.
func (t *Tracker) Summarize() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Summary{
		UptimeSeconds:  int64(time.Since(t.started).Seconds()),
		TotalRequests:  t.st.TotalRequests,
		TotalToolCalls: t.st.TotalToolCalls,
		Methods:        sortedCounts(t.st.Methods, 0),
		Endpoints:      sortedCounts(t.st.Endpoints, 0),
		Tools:          sortedCounts(t.st.Tools, 0),
		TopClients:     sortedCounts(t.st.Clients, maxTopClients),
		UserAgents:     sortedCounts(t.st.UserAgents, 0),
		Hours:          t.hourBuckets(),
		Recent:         append([]Activity(nil), t.st.Recent...),
	}
	return s
}

// Snapshot returns a deep copy of the current state for persistence.
func (t *Tracker) Snapshot() *State {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.pruneHours()
	cp := &State{
		TotalRequests:  t.st.TotalRequests,
		TotalToolCalls: t.st.TotalToolCalls,
		Methods:        maps.Clone(t.st.Methods),
		Endpoints:      maps.Clone(t.st.Endpoints),
		Tools:          maps.Clone(t.st.Tools),
		Clients:        maps.Clone(t.st.Clients),
		UserAgents:     maps.Clone(t.st.UserAgents),
		Hours:          maps.Clone(t.st.Hours),
		Recent:         append([]Activity(nil), t.st.Recent...),
	}
	return cp
}

// pruneHours drops hour buckets that have aged out of the summary window, so
// neither the map nor the persisted snapshot grows without bound.  Bucket
// keys sort lexicographically in time order.  Callers must hold t.mu.
func (t *Tracker) pruneHours() {
	cutoff := t.now().UTC().Add(-(hourWindow - 1) * time.Hour).Format(hourFormat)
	for h := range t.st.Hours {
		if h < cutoff {
			delete(t.st.Hours, h)
		}
	}
}

// hourBuckets returns the last 24 wall clock hours in chronological order,
// most recent last.  Callers must hold t.mu.
func (t *Tracker) hourBuckets() []HourCount {
	now := t.now().UTC().Truncate(time.Hour)
	buckets := make([]HourCount, 0, hourWindow)
	for i := hourWindow - 1; i >= 0; i-- {
		h := now.Add(-time.Duration(i) * time.Hour).Format(hourFormat)
		buckets = append(buckets, HourCount{Hour: h, Count: t.st.Hours[h]})
	}
	return buckets
}

// sortedCounts converts a counter map to a slice sorted by count descending,
// name ascending for equal counts.  limit > 0 caps the result length.
func sortedCounts(m map[string]int, limit int) []NameCount {
	nc := make([]NameCount, 0, len(m))
	for k, v := range m {
		nc = append(nc, NameCount{Name: k, Count: v})
	}
	sort.Slice(nc, func(i, j int) bool {
		if nc[i].Count != nc[j].Count {
			return nc[i].Count > nc[j].Count
		}
		return nc[i].Name < nc[j].Name
	})
	if limit > 0 && len(nc) > limit {
		nc = nc[:limit]
	}
	return nc
}

// ClassifyUserAgent buckets a User-Agent header into a coarse class for the
// breakdown: browser, cli, agent, bot or other.
func ClassifyUserAgent(ua string) string {
	ua = strings.ToLower(ua)
	switch {
	case ua == "":
		return "other"
	case strings.Contains(ua, "mozilla") || strings.Contains(ua, "safari") || strings.Contains(ua, "firefox"):
		return "browser"
	case strings.Contains(ua, "curl") || strings.Contains(ua, "wget") || strings.Contains(ua, "httpie"):
		return "cli"
	case strings.Contains(ua, "claude") || strings.Contains(ua, "mcp") || strings.Contains(ua, "openai") || strings.Contains(ua, "anthropic"):
		return "agent"
	case strings.Contains(ua, "bot") || strings.Contains(ua, "crawler") || strings.Contains(ua, "spider"):
		return "bot"
	default:
		return "other"
	}
}
