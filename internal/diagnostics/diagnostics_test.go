package diagnostics_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/leighmacdonald/dota-tui/internal/diagnostics"
	"github.com/stretchr/testify/require"
)

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestAreas(t *testing.T) {
	var buf bytes.Buffer
	diag := diagnostics.New(newLogger(&buf), []string{" Conn ", ""}, "")

	require.True(t, diag.Enabled(diagnostics.AreaConn))
	require.False(t, diag.Enabled(diagnostics.AreaIcons))

	diag.Log(diagnostics.AreaConn, "dialing", slog.String("url", "ws://x"))
	diag.Log(diagnostics.AreaIcons, "probe")
	diag.Log(diagnostics.AreaConn, "closed")

	out := buf.String()
	require.Equal(t, 1, strings.Count(out, "Diagnostics enabled"))
	require.Contains(t, out, "dialing")
	require.Contains(t, out, "closed")
	require.NotContains(t, out, "probe")
}

func TestFilter(t *testing.T) {
	var buf bytes.Buffer
	diag := diagnostics.New(newLogger(&buf), []string{"*"}, "frame")

	diag.Log(diagnostics.AreaReplay, "dropped frame")
	diag.Log(diagnostics.AreaReplay, "opened file")

	require.Contains(t, buf.String(), "dropped frame")
	require.NotContains(t, buf.String(), "opened file")
}

func TestNil(t *testing.T) {
	var diag *diagnostics.Logger
	require.False(t, diag.Enabled(diagnostics.AreaConn))
	require.NotPanics(t, func() { diag.Log(diagnostics.AreaConn, "noop") })
}
