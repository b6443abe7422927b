package command

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/dota-tui/internal/assets"
	"github.com/leighmacdonald/dota-tui/internal/config"
	"github.com/leighmacdonald/dota-tui/internal/conn"
	"github.com/leighmacdonald/dota-tui/internal/gsi"
	"github.com/leighmacdonald/dota-tui/internal/ui/model"
)

func SetViewState(state model.ViewState) tea.Cmd {
	return func() tea.Msg { return state }
}

const ClearMessageTimeout = time.Second * 10

type ClearStatusMessageMsg struct{}

func ClearErrorAfter(t time.Duration) tea.Cmd {
	return tea.Tick(t, func(_ time.Time) tea.Msg {
		return ClearStatusMessageMsg{}
	})
}

type StatusMsg struct {
	Message string
	Err     bool
}

func SetStatusMessage(msg string, err bool) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Message: msg, Err: err}
	}
}

func SetConfig(config config.Config) tea.Cmd {
	return func() tea.Msg { return config }
}

// ConnStateMsg carries the latest connection state.
type ConnStateMsg struct {
	State conn.State
}

// SnapshotMsg carries the latest projected snapshot.
type SnapshotMsg struct {
	Snapshot *conn.Snapshot
}

type SelectedPlayerMsg struct {
	TeamKey string
	Player  gsi.PlayerView
	// Portrait is the resolved hero image, when known.
	Portrait string
}

// ClearSelectionMsg deselects the current player.
type ClearSelectionMsg struct{}

func SelectPlayer(teamKey string, player gsi.PlayerView, portrait string) tea.Cmd {
	return func() tea.Msg {
		return SelectedPlayerMsg{TeamKey: teamKey, Player: player, Portrait: portrait}
	}
}

// FrameMsg redraws cooldown overlays. Frames are only scheduled while a cooldown is running.
type FrameMsg time.Time

func Frame(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return FrameMsg(t) })
}

// ClockMsg refreshes relative times in the header once a second.
type ClockMsg time.Time

func Clock() tea.Cmd {
	return tea.Every(time.Second, func(t time.Time) tea.Msg { return ClockMsg(t) })
}

type AssetResolvedMsg struct {
	Kind       assets.Kind
	Name       string
	Resolution assets.Resolution
}

// ResolveAsset looks up an icon off the ui goroutine. Cancelled lookups produce no message.
func ResolveAsset(ctx context.Context, resolver *assets.Resolver, kind assets.Kind, name string) tea.Cmd {
	return func() tea.Msg {
		resolution, err := resolver.Resolve(ctx, kind, name)
		if err != nil {
			return nil
		}

		return AssetResolvedMsg{Kind: kind, Name: name, Resolution: resolution}
	}
}

type WakeLockMsg struct {
	Err error
}
