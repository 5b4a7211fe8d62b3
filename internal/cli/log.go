package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netfile/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Upgraded session.net (1.234ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// logHooks reports document store events at debug level.
type logHooks struct {
	logger *log.Logger
}

// NewDocumentHooks returns document hooks that log every load and save.
func NewDocumentHooks(l *log.Logger) observability.DocumentHooks {
	return &logHooks{logger: l}
}

func (h *logHooks) OnLoad(path, tag string, d time.Duration, err error) {
	h.event("load", path, tag, d, err)
}

func (h *logHooks) OnSave(path, tag string, d time.Duration, err error) {
	h.event("save", path, tag, d, err)
}

func (h *logHooks) event(op, path, tag string, d time.Duration, err error) {
	kv := []any{"op", op, "file", path, "took", d.Round(time.Microsecond)}
	if tag != "" {
		kv = append(kv, "version", tag)
	}
	if err != nil {
		h.logger.Debug("document event failed", append(kv, "err", err)...)
		return
	}
	h.logger.Debug("document event", kv...)
}
