package report

import "time"

// Report is a hierarchical, keyed collection of run results. Sub-reports
// mirror the run hierarchy; the whole tree snapshots to a JSON-friendly map.
type Report interface {
	Key() string
	Sub(key string) Report
	Add(e Entry)
	Entries() map[string]Entry
	Snapshot() map[string]interface{}
}

type Entry struct {
	Key  string        `json:"key"`
	Runs int           `json:"runs"`
	Time time.Duration `json:"time"`
	Avg  float64       `json:"avg_ns"`
}

type report struct {
	key      string
	children map[string]Report
	entries  map[string]Entry
}

func New(key string) Report {
	return &report{
		key:      key,
		children: make(map[string]Report),
		entries:  make(map[string]Entry),
	}
}

// Sub is a nil-safe accessor for a sub-report.
func Sub(r Report, key string) Report {
	if r == nil {
		return nil
	}
	return r.Sub(key)
}

func (r *report) Key() string {
	return r.key
}

func (r *report) Sub(key string) Report {
	if sub, ok := r.children[key]; ok {
		return sub
	}
	sub := New(key)
	r.children[key] = sub
	return sub
}

func (r *report) Add(e Entry) {
	r.entries[e.Key] = e
}

func (r *report) Entries() map[string]Entry {
	return r.entries
}

func (r *report) Snapshot() map[string]interface{} {
	snap := make(map[string]interface{}, len(r.entries)+len(r.children))
	for k, e := range r.entries {
		snap[k] = e
	}
	for k, c := range r.children {
		snap[k] = c.Snapshot()
	}
	return snap
}
