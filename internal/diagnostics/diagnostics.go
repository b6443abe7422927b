// Package diagnostics provides opt-in, per-area debug logging.
package diagnostics

import (
	"log/slog"
	"slices"
	"strings"
	"sync"
)

const (
	AreaConn     = "conn"
	AreaIcons    = "icons"
	AreaReplay   = "replay"
	AreaRecorder = "recorder"
)

// Logger writes debug records for the enabled areas only. A nil *Logger is valid and
// logs nothing.
type Logger struct {
	areas     []string
	filter    string
	logger    *slog.Logger
	announced sync.Map
}

// New enables the given areas. An area of "*" enables all of them.
func New(logger *slog.Logger, areas []string, filter string) *Logger {
	if logger == nil {
		logger = slog.Default()
	}

	normalized := make([]string, 0, len(areas))
	for _, area := range areas {
		if area = strings.ToLower(strings.TrimSpace(area)); area != "" {
			normalized = append(normalized, area)
		}
	}

	return &Logger{areas: normalized, filter: filter, logger: logger}
}

func (l *Logger) Enabled(area string) bool {
	if l == nil {
		return false
	}

	return slices.Contains(l.areas, "*") || slices.Contains(l.areas, area)
}

func (l *Logger) Log(area string, msg string, attrs ...any) {
	if !l.Enabled(area) {
		return
	}

	if l.filter != "" && !strings.Contains(msg, l.filter) {
		return
	}

	if _, loaded := l.announced.LoadOrStore(area, true); !loaded {
		l.logger.Debug("Diagnostics enabled", slog.String("area", area))
	}

	l.logger.Debug(msg, append([]any{slog.String("area", area)}, attrs...)...)
}
