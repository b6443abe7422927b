package ui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/dota-tui/internal/config"
	"github.com/leighmacdonald/dota-tui/internal/ui/command"
	"github.com/leighmacdonald/dota-tui/internal/ui/component"
	"github.com/leighmacdonald/dota-tui/internal/ui/input"
	"github.com/leighmacdonald/dota-tui/internal/ui/model"
	"github.com/leighmacdonald/dota-tui/internal/ui/pages"
	"github.com/leighmacdonald/dota-tui/internal/ui/styles"
	"github.com/leighmacdonald/dota-tui/internal/wakelock"
	zone "github.com/lrstanley/bubblezone"
)

const (
	headerHeight = 1
	// The footer grows to two lines while a player is selected.
	footerHeight = 2
)

// rootModel is the top level model for the ui side of the app.
type rootModel struct {
	viewState model.ViewState
	header    component.HeaderModel
	dashboard *pages.Dashboard
	config    *pages.Config
	help      pages.Help
	status    component.StatusBarModel
	lock      wakelock.Lock
}

func newRootModel(opts Opts) *rootModel {
	lock := opts.WakeLock
	if lock == nil {
		lock = wakelock.Noop{}
	}

	return &rootModel{
		viewState: model.ViewState{Page: model.PageDashboard},
		header:    component.NewHeaderModel(opts.Replay),
		dashboard: pages.NewDashboard(opts.Context, opts.Config, opts.Resolver),
		config:    pages.NewConfig(opts.Config, opts.Loader, opts.Endpoint),
		help:      pages.NewHelp(opts.BuildVersion, opts.BuildDate, opts.BuildCommit, opts.Loader.Path(), opts.CachePath),
		status:    component.NewStatusBarModel(opts.BuildVersion, opts.Config),
		lock:      lock,
	}
}

func (m rootModel) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("dota-tui"),
		m.config.Init(),
		m.dashboard.Init(),
		command.Clock(),
		m.acquire(),
	)
}

func (m rootModel) Update(inMsg tea.Msg) (tea.Model, tea.Cmd) {
	logMsg(inMsg)

	switch msg := inMsg.(type) {
	case tea.WindowSizeMsg:
		m.viewState.Height = msg.Height
		m.viewState.Width = msg.Width
		m.viewState.Content = max(0, msg.Height-headerHeight-footerHeight)

		return m, command.SetViewState(m.viewState)
	case model.ViewState:
		m.viewState = msg
	case command.ClockMsg:
		// tea.Every fires once, so re-arm it.
		cmds := []tea.Cmd{command.Clock()}
		next, cmd := m.propagate(inMsg)

		return next, tea.Batch(append(cmds, cmd)...)
	case tea.FocusMsg:
		return m, m.acquire()
	case tea.BlurMsg:
		m.release()
	case command.WakeLockMsg:
		if msg.Err != nil {
			slog.Warn("Failed to acquire wake lock", slog.String("error", msg.Err.Error()))
		}
	case tea.KeyMsg:
		if m.viewState.Page == model.PageConfig {
			// Keys belong to the text input here.
			break
		}

		switch {
		case key.Matches(msg, input.Default.Quit):
			m.release()

			return m, tea.Quit
		case key.Matches(msg, input.Default.Help):
			if m.viewState.Page == model.PageHelp {
				m.viewState.Page = model.PageDashboard
			} else {
				m.viewState.Page = model.PageHelp
			}

			return m, command.SetViewState(m.viewState)
		case key.Matches(msg, input.Default.Config):
			m.viewState.Page = model.PageConfig

			return m, command.SetViewState(m.viewState)
		}
	}

	return m.propagate(inMsg)
}

func (m rootModel) View() string {
	if m.viewState.Width == 0 || m.viewState.Height == 0 {
		return ""
	}

	hdr := styles.HeaderContainerStyle.Width(m.viewState.Width).Render(m.header.View())
	ftr := styles.FooterContainerStyle.Width(m.viewState.Width).Render(m.status.View())
	contentHeight := max(0, m.viewState.Height-lipgloss.Height(hdr)-lipgloss.Height(ftr))

	var content string
	switch m.viewState.Page {
	case model.PageConfig:
		content = m.config.View()
	case model.PageHelp:
		content = m.help.View()
	case model.PageDashboard:
		content = m.dashboard.View()
	}

	ctr := styles.ContentContainerStyle.Height(contentHeight).MaxHeight(contentHeight).Render(content)

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, hdr, ctr, ftr))
}

func (m rootModel) propagate(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 5)

	m.header, cmds[0] = m.header.Update(msg)
	m.dashboard, cmds[1] = m.dashboard.Update(msg)
	m.config, cmds[2] = m.config.Update(msg)
	m.help, cmds[3] = m.help.Update(msg)
	m.status, cmds[4] = m.status.Update(msg)

	return m, tea.Batch(cmds...)
}

func (m rootModel) acquire() tea.Cmd {
	lock := m.lock

	return func() tea.Msg {
		return command.WakeLockMsg{Err: lock.Acquire()}
	}
}

func (m rootModel) release() {
	if err := m.lock.Release(); err != nil {
		slog.Warn("Failed to release wake lock", slog.String("error", err.Error()))
	}
}

// logMsg is useful for debugging events. Tail the log file ~/.config/dota-tui/dota-tui.log
func logMsg(inMsg tea.Msg) {
	// Filter out very noisy stuff
	switch inMsg.(type) {
	case command.FrameMsg, command.ClockMsg, command.SnapshotMsg, command.AssetResolvedMsg, tea.MouseMsg:
	case config.Config:
		slog.Debug("Config updated")
	default:
		slog.Debug("tea.Msg", slog.Any("msg", inMsg))
	}
}
