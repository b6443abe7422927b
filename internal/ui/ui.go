package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/dota-tui/internal/assets"
	"github.com/leighmacdonald/dota-tui/internal/config"
	"github.com/leighmacdonald/dota-tui/internal/conn"
	"github.com/leighmacdonald/dota-tui/internal/ui/command"
	"github.com/leighmacdonald/dota-tui/internal/ui/pages"
	"github.com/leighmacdonald/dota-tui/internal/wakelock"
	zone "github.com/lrstanley/bubblezone"
)

var ErrUIExit = errors.New("ui error returned")

type Opts struct {
	// Context bounds the program and any asset lookups it starts.
	Context      context.Context //nolint:containedctx
	Config       config.Config
	Loader       config.Writer
	Endpoint     pages.EndpointSetter
	Resolver     *assets.Resolver
	WakeLock     wakelock.Lock
	Replay       bool
	CachePath    string
	BuildVersion string
	BuildDate    string
	BuildCommit  string
}

type UI struct {
	program *tea.Program
}

func New(opts Opts) *UI {
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	zone.NewGlobal()

	return &UI{
		program: tea.NewProgram(
			newRootModel(opts),
			tea.WithMouseCellMotion(),
			tea.WithAltScreen(),
			tea.WithReportFocus(),
			tea.WithContext(opts.Context),
			tea.WithFPS(30)),
	}
}

func (t UI) Run() error {
	if _, err := t.program.Run(); err != nil {
		return errors.Join(err, ErrUIExit)
	}

	return nil
}

func (t UI) Send(msg tea.Msg) {
	t.program.Send(msg)
}

func (t UI) SetState(state conn.State) {
	t.program.Send(command.ConnStateMsg{State: state})
}

func (t UI) SetSnapshot(snapshot *conn.Snapshot) {
	t.program.Send(command.SnapshotMsg{Snapshot: snapshot})
}

func (t UI) SetConfig(userConfig config.Config) {
	t.program.Send(userConfig)
}
