package report

import (
	"rubidium"
)

// Collector is a rubidium.Reporter that files each finished run into a
// Report at the position its ancestry dictates.
type Collector struct {
	root Report
}

var _ rubidium.Reporter = (*Collector)(nil)

func NewCollector(root Report) *Collector {
	return &Collector{root: root}
}

func (c *Collector) ReportStart(*rubidium.Run) {}

func (c *Collector) ReportEnd(run *rubidium.Run) {
	r := c.root
	names := path(run)
	for _, name := range names[:len(names)-1] {
		r = r.Sub(name)
	}
	r.Add(Entry{
		Key:  run.Name,
		Runs: run.Runs,
		Time: run.Time().Duration(),
		Avg:  run.Avg,
	})
}

func path(run *rubidium.Run) []string {
	if run.Parent == nil {
		return []string{run.Name}
	}
	return append(path(run.Parent), run.Name)
}
