package errs

import (
	"strings"
	"sync"
	"time"
)

// classifierTable maps message substrings to a stable code, mirroring the
// ordered pattern-table classifiers used elsewhere in this codebase: more
// specific patterns are listed before general ones, first match wins.
var classifierTable = []struct {
	patterns []string
	code     string
	severity Severity
	category Category
}{
	{[]string{"weights", "sum to 100"}, "CFG_WEIGHT_SUM", Error, Config},
	{[]string{"forward reference", "not yet defined"}, "CFG_FORWARD_REF", Error, Config},
	{[]string{"mutually exclusive", "both stream and batch"}, "CFG_MODE_CONFLICT", Critical, Config},
	{[]string{"unsupported strategy", "unknown strategy"}, "CFG_BAD_STRATEGY", Critical, Config},
	{[]string{"lowerbound", "upperbound", "range"}, "CFG_BAD_RANGE", Error, Config},
	{[]string{"connection refused", "no route to host", "dial tcp"}, "NET_UNREACHABLE", Error, Network},
	{[]string{"timeout", "timed out", "deadline exceeded"}, "NET_TIMEOUT", Error, Network},
	{[]string{"no space left", "disk full", "enospc"}, "SYS_DISK_FULL", Error, System},
	{[]string{"permission denied", "eacces"}, "SYS_PERMISSION", Error, System},
}

// Classify assigns a code/severity/category to a raw error by walking the
// ordered pattern table, falling back to a generic PROCESSING:ERROR when
// nothing matches.
func Classify(err error, ctx Context) *GenError {
	if err == nil {
		return nil
	}
	lower := strings.ToLower(err.Error())
	for _, entry := range classifierTable {
		if containsAny(lower, entry.patterns...) {
			return New(entry.code, entry.severity, entry.category, err.Error(), ctx)
		}
	}
	return New("UNCLASSIFIED", Error, Processing, err.Error(), ctx)
}

func containsAny(lower string, substrs ...string) bool {
	for _, s := range substrs {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// Report is the structured error report produced at the end of a run: one
// entry per recorded error, grouped by severity for the summary counts.
type Report struct {
	RunID       string           `msgpack:"run_id" json:"run_id"`
	GeneratedAt time.Time        `msgpack:"generated_at" json:"generated_at"`
	Counts      map[Severity]int `msgpack:"counts" json:"counts"`
	Entries     []ReportEntry    `msgpack:"entries" json:"entries"`
}

// ReportEntry is the flattened, wire-friendly form of a GenError.
type ReportEntry struct {
	Code     string   `msgpack:"code" json:"code"`
	Message  string   `msgpack:"message" json:"message"`
	Severity Severity `msgpack:"severity" json:"severity"`
	Category Category `msgpack:"category" json:"category"`
	Strategy string   `msgpack:"strategy,omitempty" json:"strategy,omitempty"`
	Column   string   `msgpack:"column,omitempty" json:"column,omitempty"`
	Row      int      `msgpack:"row,omitempty" json:"row,omitempty"`
}

// Handler accumulates GenErrors during a run and decides, via HasCritical,
// whether the orchestrator must halt. It is safe for concurrent use by the
// strategy, processor, and writer goroutines of a single run.
type Handler struct {
	mu      sync.Mutex
	runID   string
	entries []*GenError
	counts  map[Severity]int
}

// NewHandler creates a Handler for the given run.
func NewHandler(runID string) *Handler {
	return &Handler{
		runID:  runID,
		counts: make(map[Severity]int),
	}
}

// Record appends err to the handler's accumulated entries. A nil err is a
// no-op.
func (h *Handler) Record(err *GenError) {
	if err == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.recordLocked(err)
}

func (h *Handler) recordLocked(err *GenError) {
	h.entries = append(h.entries, err)
	h.counts[err.Severity]++
}

// HasCritical reports whether any CRITICAL error has been recorded. The
// orchestrator calls this after every processing step to decide whether to
// halt the run immediately.
func (h *Handler) HasCritical() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.counts[Critical] > 0
}

// Count returns the number of entries recorded at the given severity.
func (h *Handler) Count(sev Severity) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.counts[sev]
}

// Snapshot returns a copy of all recorded entries, most-recent last.
func (h *Handler) Snapshot() []*GenError {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*GenError, len(h.entries))
	copy(out, h.entries)
	return out
}

// BuildReport materializes the accumulated entries into a Report suitable
// for JSON or msgpack serialization.
func (h *Handler) BuildReport(generatedAt time.Time) Report {
	h.mu.Lock()
	defer h.mu.Unlock()
	r := Report{
		RunID:       h.runID,
		GeneratedAt: generatedAt,
		Counts:      make(map[Severity]int, len(h.counts)),
		Entries:     make([]ReportEntry, 0, len(h.entries)),
	}
	for sev, n := range h.counts {
		r.Counts[sev] = n
	}
	for _, e := range h.entries {
		r.Entries = append(r.Entries, ReportEntry{
			Code:     e.Code,
			Message:  e.Message,
			Severity: e.Severity,
			Category: e.Category,
			Strategy: e.Ctx.Strategy,
			Column:   e.Ctx.Column,
			Row:      e.Ctx.Row,
		})
	}
	return r
}
