package rubidium

import (
	"go.uber.org/zap"
)

// Reporter receives run lifecycle events from the dispatcher. The core only
// consumes this interface; when none is configured, events are dropped.
type Reporter interface {
	ReportStart(*Run)
	ReportEnd(*Run)
}

type NopReporter struct{}

func (NopReporter) ReportStart(*Run) {}

func (NopReporter) ReportEnd(*Run) {}

// LogReporter writes run events to a zap logger.
type LogReporter struct {
	Logger *zap.Logger
}

func (l LogReporter) ReportStart(r *Run) {
	l.Logger.Info("run start", zap.String("run", r.NameFull()))
}

func (l LogReporter) ReportEnd(r *Run) {
	l.Logger.Info("run end",
		zap.String("run", r.NameFull()),
		zap.Int("runs", r.Runs),
		zap.Duration("time", r.Time().Duration()),
		zap.Float64("avg_ns", r.Avg),
	)
}
