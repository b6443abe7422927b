package pages_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/dota-tui/internal/assets"
	"github.com/leighmacdonald/dota-tui/internal/config"
	"github.com/leighmacdonald/dota-tui/internal/conn"
	"github.com/leighmacdonald/dota-tui/internal/gsi"
	"github.com/leighmacdonald/dota-tui/internal/ui/command"
	"github.com/leighmacdonald/dota-tui/internal/ui/model"
	"github.com/leighmacdonald/dota-tui/internal/ui/pages"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"
)

func init() { //nolint:gochecknoinits
	zone.NewGlobal()
}

func snapshot(t *testing.T, body string, at time.Time) *conn.Snapshot {
	t.Helper()

	raw, err := gsi.ParseSnapshot([]byte(body))
	require.NoError(t, err)

	return &conn.Snapshot{Raw: raw, Teams: gsi.Project(raw), Match: gsi.Match(raw), ReceivedAt: at}
}

const (
	idleSnapshot = `{
		"hero": {"team2": {"player0": {"name": "npc_dota_hero_axe"}}},
		"abilities": {"team2": {"player0": {"ability0": {"name": "axe_berserkers_call", "cooldown": 0, "max_cooldown": 10}}}}
	}`
	cooldownSnapshot = `{
		"hero": {"team2": {"player0": {"name": "npc_dota_hero_axe"}}},
		"abilities": {"team2": {"player0": {"ability0": {"name": "axe_berserkers_call", "cooldown": 10, "max_cooldown": 10}}}}
	}`
)

func sized() model.ViewState {
	return model.ViewState{Page: model.PageDashboard, Width: 120, Height: 40, Content: 37}
}

func TestDashboardWaiting(t *testing.T) {
	dashboard := pages.NewDashboard(context.Background(), config.Config{}, nil)
	dashboard, _ = dashboard.Update(sized())

	require.Contains(t, dashboard.View(), "Waiting for data…")

	dashboard, _ = dashboard.Update(command.SnapshotMsg{Snapshot: snapshot(t, idleSnapshot, time.Now())})
	require.NotContains(t, dashboard.View(), "Waiting for data…")
	require.Contains(t, dashboard.View(), "Axe")
}

// collect runs a command and returns the messages it produces, expanding batches.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, inner := range batch {
			msgs = append(msgs, collect(inner)...)
		}

		return msgs
	}

	return []tea.Msg{msg}
}

func hasFrame(msgs []tea.Msg) bool {
	for _, msg := range msgs {
		if _, ok := msg.(command.FrameMsg); ok {
			return true
		}
	}

	return false
}

func TestDashboardFramesOnlyWhileCooling(t *testing.T) {
	dashboard := pages.NewDashboard(context.Background(), config.Config{FPS: 100}, nil)
	dashboard, _ = dashboard.Update(sized())

	_, cmd := dashboard.Update(command.SnapshotMsg{Snapshot: snapshot(t, idleSnapshot, time.Now())})
	require.False(t, hasFrame(collect(cmd)))

	_, cmd = dashboard.Update(command.SnapshotMsg{Snapshot: snapshot(t, cooldownSnapshot, time.Now())})
	require.True(t, hasFrame(collect(cmd)))

	// Frames keep coming while the cooldown runs.
	_, cmd = dashboard.Update(command.FrameMsg(time.Now().Add(time.Second)))
	require.True(t, hasFrame(collect(cmd)))

	// And stop once it has expired.
	_, cmd = dashboard.Update(command.FrameMsg(time.Now().Add(11 * time.Second)))
	require.False(t, hasFrame(collect(cmd)))
}

func TestDashboardCycleSelection(t *testing.T) {
	dashboard := pages.NewDashboard(context.Background(), config.Config{}, nil)
	dashboard, _ = dashboard.Update(sized())
	dashboard, _ = dashboard.Update(command.SnapshotMsg{Snapshot: snapshot(t, idleSnapshot, time.Now())})

	_, cmd := dashboard.Update(tea.KeyMsg{Type: tea.KeyTab})
	msgs := collect(cmd)
	require.Len(t, msgs, 1)

	selected, ok := msgs[0].(command.SelectedPlayerMsg)
	require.True(t, ok)
	require.Equal(t, "team2", selected.TeamKey)
	require.Equal(t, "npc_dota_hero_axe", selected.Player.HeroName)

	_, cmd = dashboard.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.IsType(t, command.ClearSelectionMsg{}, collect(cmd)[0])
}

func TestDashboardCancelsStaleLookups(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	resolver := assets.New(server.Client(), nil, assets.Opts{Hosts: []string{server.URL}})
	dashboard := pages.NewDashboard(context.Background(), config.Config{}, resolver)
	dashboard, _ = dashboard.Update(sized())

	_, cmd := dashboard.Update(command.SnapshotMsg{Snapshot: snapshot(t, idleSnapshot, time.Now())})
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)

	var waiters sync.WaitGroup
	for _, inner := range batch {
		if inner == nil {
			continue
		}

		waiters.Add(1)
		go func() {
			defer waiters.Done()
			inner()
		}()
	}

	require.Eventually(t, func() bool {
		return !resolver.Due(assets.KindHero, "npc_dota_hero_axe")
	}, time.Second, 5*time.Millisecond)

	// Axe leaves the snapshot so its lookups are abandoned.
	_, _ = dashboard.Update(command.SnapshotMsg{Snapshot: snapshot(t,
		`{"hero": {"team2": {"player0": {"name": "npc_dota_hero_lion"}}}}`, time.Now())})

	done := make(chan struct{})
	go func() {
		waiters.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("stale lookups were not cancelled")
	}

	_, found := resolver.Lookup(assets.KindHero, "npc_dota_hero_axe")
	require.False(t, found)
}

type memoryWriter struct {
	written []config.Config
	err     error
}

func (w *memoryWriter) Write(cfg config.Config) error {
	if w.err != nil {
		return w.err
	}

	w.written = append(w.written, cfg)

	return nil
}

func (w *memoryWriter) Path() string { return "/tmp/dota-tui.yaml" }

type endpointRecorder struct {
	endpoints []string
}

func (e *endpointRecorder) SetEndpoint(endpoint string) error {
	e.endpoints = append(e.endpoints, endpoint)

	return nil
}

func configPage(t *testing.T, value string) (*pages.Config, *memoryWriter, *endpointRecorder) {
	t.Helper()

	writer := &memoryWriter{}
	setter := &endpointRecorder{}
	page := pages.NewConfig(config.Config{EndpointURL: value}, writer, setter)
	page.Init()
	page, _ = page.Update(model.ViewState{Page: model.PageConfig, Width: 100, Height: 30, Content: 27})

	return page, writer, setter
}

func statusOf(msgs []tea.Msg) (command.StatusMsg, bool) {
	for _, msg := range msgs {
		if status, ok := msg.(command.StatusMsg); ok {
			return status, true
		}
	}

	return command.StatusMsg{}, false
}

func TestConfigSave(t *testing.T) {
	page, writer, setter := configPage(t, "ws://10.0.0.5:3005")
	require.Contains(t, page.View(), "Settings")

	page, _ = page.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := page.Update(tea.KeyMsg{Type: tea.KeyEnter})

	status, found := statusOf(collect(cmd))
	require.True(t, found)
	require.False(t, status.Err)
	require.Len(t, writer.written, 1)
	require.Equal(t, "ws://10.0.0.5:3005", writer.written[0].EndpointURL)
	require.Equal(t, []string{"ws://10.0.0.5:3005"}, setter.endpoints)
	require.Equal(t, "Saved, reconnecting", status.Message)
}

func TestConfigSaveWithoutConnection(t *testing.T) {
	writer := &memoryWriter{}
	page := pages.NewConfig(config.Config{EndpointURL: "ws://10.0.0.5:3005"}, writer, nil)
	page.Init()
	page, _ = page.Update(model.ViewState{Page: model.PageConfig, Width: 100, Height: 30, Content: 27})

	page, _ = page.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := page.Update(tea.KeyMsg{Type: tea.KeyEnter})

	status, found := statusOf(collect(cmd))
	require.True(t, found)
	require.False(t, status.Err)
	require.Equal(t, "Saved, applies on next start", status.Message)
	require.Len(t, writer.written, 1)
}

func TestConfigSaveInvalid(t *testing.T) {
	page, writer, setter := configPage(t, "http://10.0.0.5:3005")

	page, _ = page.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := page.Update(tea.KeyMsg{Type: tea.KeyEnter})

	status, found := statusOf(collect(cmd))
	require.True(t, found)
	require.True(t, status.Err)
	require.Empty(t, writer.written)
	require.Empty(t, setter.endpoints)
}

func TestConfigSaveWriteError(t *testing.T) {
	page, writer, setter := configPage(t, "ws://localhost:3005")
	writer.err = errors.New("read only")

	page, _ = page.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := page.Update(tea.KeyMsg{Type: tea.KeyEnter})

	status, found := statusOf(collect(cmd))
	require.True(t, found)
	require.True(t, status.Err)
	require.Equal(t, "read only", status.Message)
	require.Empty(t, setter.endpoints)
}
