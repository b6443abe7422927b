package component

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/leighmacdonald/dota-tui/internal/conn"
	"github.com/leighmacdonald/dota-tui/internal/gsi"
	"github.com/leighmacdonald/dota-tui/internal/ui/command"
	"github.com/leighmacdonald/dota-tui/internal/ui/model"
	"github.com/leighmacdonald/dota-tui/internal/ui/styles"
)

const (
	appTitle     = "DOTA GSI"
	clockLayout  = "15:04:05"
	replayBadge  = "Replay"
	offlineBadge = "Offline"
)

// Badge is the connection indicator text. A running countdown takes priority over the
// connecting state.
func Badge(state conn.State) string {
	switch {
	case state.Status == conn.StatusConnected:
		return "Live"
	case state.Reconnecting:
		return fmt.Sprintf("Reconnecting in %ds", state.ReconnectIn)
	case state.Status == conn.StatusConnecting:
		return "Connecting"
	default:
		return offlineBadge
	}
}

func badgeStyle(state conn.State) lipgloss.Style {
	switch {
	case state.Status == conn.StatusConnected:
		return styles.BadgeLive
	case state.Reconnecting || state.Status == conn.StatusConnecting:
		return styles.BadgePending
	default:
		return styles.BadgeOffline
	}
}

// ClockLabel is the match clock with a day or night glyph. The glyph only reflects what the
// server reports.
func ClockLabel(match gsi.MatchInfo) string {
	glyph := styles.IconClock
	switch {
	case match.IsNight():
		glyph = styles.IconNight
	case match.Daytime.True():
		glyph = styles.IconDay
	}

	return glyph + " " + gsi.FormatDuration(match.MatchTime)
}

// TimeLabel prefers the provider clock, then the local receive time.
func TimeLabel(snapshot *conn.Snapshot) string {
	if snapshot == nil {
		return "-"
	}

	if provider, ok := snapshot.Match.ProviderTime(); ok {
		return provider.Local().Format(clockLayout)
	}

	if !snapshot.ReceivedAt.IsZero() {
		return snapshot.ReceivedAt.Local().Format(clockLayout)
	}

	return "-"
}

type HeaderModel struct {
	viewState model.ViewState
	state     conn.State
	snapshot  *conn.Snapshot
	now       time.Time
	replay    bool
}

func NewHeaderModel(replay bool) HeaderModel {
	return HeaderModel{replay: replay, now: time.Now()}
}

func (m HeaderModel) Init() tea.Cmd {
	return nil
}

func (m HeaderModel) Update(msg tea.Msg) (HeaderModel, tea.Cmd) {
	switch msg := msg.(type) {
	case model.ViewState:
		m.viewState = msg
	case command.ConnStateMsg:
		m.state = msg.State
	case command.SnapshotMsg:
		m.snapshot = msg.Snapshot
		m.now = time.Now()
	case command.ClockMsg:
		m.now = time.Time(msg)
	}

	return m, nil
}

func (m HeaderModel) View() string {
	parts := []string{styles.Title.Render(appTitle)}

	if m.replay {
		parts = append(parts, styles.BadgePending.Render(replayBadge))
	} else {
		parts = append(parts, badgeStyle(m.state).Render("● "+Badge(m.state)))
	}

	if m.snapshot != nil {
		match := m.snapshot.Match
		parts = append(parts,
			styles.HeaderValue.Render(ClockLabel(match)),
			styles.HeaderValue.Render(styles.IconProvider+" "+TimeLabel(m.snapshot)),
			styles.HeaderValueDim.Render(humanize.RelTime(m.snapshot.ReceivedAt, m.now, "ago", "from now")))

		if state := match.GameStateLabel(); state != "" {
			parts = append(parts, styles.HeaderValueDim.Render(state))
		}

		if match.Paused.True() {
			parts = append(parts, styles.BadgePending.Render(styles.IconPaused+" Paused"))
		}
	}

	return lipgloss.NewStyle().Width(m.viewState.Width).MaxHeight(1).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
}
