package pages

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/dota-tui/internal/assets"
	"github.com/leighmacdonald/dota-tui/internal/config"
	"github.com/leighmacdonald/dota-tui/internal/conn"
	"github.com/leighmacdonald/dota-tui/internal/cooldown"
	"github.com/leighmacdonald/dota-tui/internal/gsi"
	"github.com/leighmacdonald/dota-tui/internal/ui/command"
	"github.com/leighmacdonald/dota-tui/internal/ui/component"
	"github.com/leighmacdonald/dota-tui/internal/ui/input"
	"github.com/leighmacdonald/dota-tui/internal/ui/model"
	"github.com/leighmacdonald/dota-tui/internal/ui/styles"
	zone "github.com/lrstanley/bubblezone"
)

const (
	waitingForData = "Waiting for data…"
	columnGap      = 2
)

// Dashboard shows one column per team. Cooldown overlays are advanced by frame ticks that
// only run while at least one cooldown is active.
type Dashboard struct {
	ctx           context.Context //nolint:containedctx
	viewState     model.ViewState
	snapshot      *conn.Snapshot
	tracker       *cooldown.Tracker
	resolver      *assets.Resolver
	frameInterval time.Duration
	framePending  bool
	now           time.Time
	zoneID        string
	selectedKey   string
	lookups       map[assetRef]context.CancelFunc
}

// NewDashboard takes the context that bounds asset lookups. resolver may be nil, in which case
// only text labels are used.
func NewDashboard(ctx context.Context, userConfig config.Config, resolver *assets.Resolver) *Dashboard {
	if ctx == nil {
		ctx = context.Background()
	}

	return &Dashboard{
		ctx:           ctx,
		tracker:       cooldown.NewTracker(),
		resolver:      resolver,
		frameInterval: userConfig.FrameInterval(),
		now:           time.Now(),
		zoneID:        zone.NewPrefix(),
		lookups:       map[assetRef]context.CancelFunc{},
	}
}

func (m *Dashboard) Init() tea.Cmd {
	return nil
}

func (m *Dashboard) Update(msg tea.Msg) (*Dashboard, tea.Cmd) {
	switch msg := msg.(type) {
	case model.ViewState:
		m.viewState = msg
	case config.Config:
		m.frameInterval = msg.FrameInterval()
	case command.SnapshotMsg:
		return m, m.onSnapshot(msg.Snapshot)
	case command.FrameMsg:
		m.now = time.Time(msg)
		m.framePending = false

		return m, m.scheduleFrame()
	case command.ClockMsg:
		if !m.framePending {
			m.now = time.Time(msg)
		}
	case command.AssetResolvedMsg:
		ref := assetRef{kind: msg.Kind, name: msg.Name}
		if cancel, found := m.lookups[ref]; found {
			cancel()
			delete(m.lookups, ref)
		}

		if msg.Kind == assets.KindHero {
			return m, m.reselect()
		}
	case tea.MouseMsg:
		if m.viewState.Page != model.PageDashboard {
			break
		}

		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			break
		}

		return m, m.selectAt(msg)
	case tea.KeyMsg:
		if m.viewState.Page != model.PageDashboard {
			break
		}

		switch {
		case key.Matches(msg, input.Default.NextPlayer):
			return m, m.cycle(1)
		case key.Matches(msg, input.Default.PrevPlayer):
			return m, m.cycle(-1)
		case key.Matches(msg, input.Default.Back):
			return m, m.selectKey("")
		}
	}

	return m, nil
}

func (m *Dashboard) onSnapshot(snapshot *conn.Snapshot) tea.Cmd {
	if snapshot == nil {
		return nil
	}

	m.snapshot = snapshot
	m.now = time.Now()
	// Observations are keyed on receive time, so seeing the same snapshot twice changes nothing.
	m.tracker.ObserveTeams(snapshot.Teams, snapshot.ReceivedAt)

	cmds := m.assetCmds()
	cmds = append(cmds, m.scheduleFrame(), m.reselect())

	return tea.Batch(cmds...)
}

func (m *Dashboard) scheduleFrame() tea.Cmd {
	if m.framePending || !m.tracker.Active(m.now) {
		return nil
	}

	m.framePending = true

	return command.Frame(m.frameInterval)
}

type assetRef struct {
	kind assets.Kind
	name string
}

// assetCmds starts lookups for every icon in the snapshot that is due one. Lookups for icons
// no longer in the snapshot are cancelled.
func (m *Dashboard) assetCmds() []tea.Cmd {
	if m.resolver == nil || m.snapshot == nil {
		return nil
	}

	seen := map[assetRef]bool{}
	var cmds []tea.Cmd

	want := func(kind assets.Kind, name string) {
		ref := assetRef{kind: kind, name: name}
		if name == "" || name == gsi.EmptySlot || seen[ref] {
			return
		}

		seen[ref] = true

		if !m.resolver.Due(kind, name) {
			return
		}

		if cancel, found := m.lookups[ref]; found {
			cancel()
		}

		ctx, cancel := context.WithCancel(m.ctx)
		m.lookups[ref] = cancel
		cmds = append(cmds, command.ResolveAsset(ctx, m.resolver, kind, name))
	}

	for _, team := range m.snapshot.Teams {
		for _, player := range team.Players {
			want(assets.KindHero, player.HeroName)

			for _, ability := range player.Abilities {
				want(assets.KindAbility, ability.Name)
			}

			for _, item := range player.Items {
				want(assets.KindItem, item.Name)
			}

			for _, item := range player.Teleports {
				want(assets.KindItem, item.Name)
			}

			for _, item := range player.Neutrals {
				want(assets.KindItem, item.Name)
			}

			if crafting := player.NeutralCrafting; crafting != nil {
				want(assets.KindItem, crafting.Trinket.Name)
				want(assets.KindItem, crafting.Enchantment.Name)
			}
		}
	}

	for ref, cancel := range m.lookups {
		if !seen[ref] {
			cancel()
			delete(m.lookups, ref)
		}
	}

	return cmds
}

func (m *Dashboard) lookup(kind assets.Kind, name string) (assets.Resolution, bool) {
	if m.resolver == nil {
		return assets.Resolution{}, false
	}

	return m.resolver.Lookup(kind, name)
}

// playerKeys lists team/player keys in display order.
func (m *Dashboard) playerKeys() []string {
	if m.snapshot == nil {
		return nil
	}

	var keys []string
	for _, team := range m.snapshot.Teams {
		for _, player := range team.Players {
			keys = append(keys, team.TeamKey+"/"+player.PlayerKey)
		}
	}

	return keys
}

func (m *Dashboard) cycle(step int) tea.Cmd {
	keys := m.playerKeys()
	if len(keys) == 0 {
		return nil
	}

	next := 0
	if step < 0 {
		next = len(keys) - 1
	}

	for idx, selected := range keys {
		if selected == m.selectedKey {
			next = (idx + step + len(keys)) % len(keys)

			break
		}
	}

	return m.selectKey(keys[next])
}

func (m *Dashboard) selectAt(msg tea.MouseMsg) tea.Cmd {
	if m.snapshot == nil {
		return nil
	}

	for _, team := range m.snapshot.Teams {
		for _, player := range team.Players {
			if zone.Get(component.PlayerZoneID(m.zoneID, team.TeamKey, player.PlayerKey)).InBounds(msg) {
				return m.selectKey(team.TeamKey + "/" + player.PlayerKey)
			}
		}
	}

	return nil
}

func (m *Dashboard) selectKey(selected string) tea.Cmd {
	m.selectedKey = selected

	return m.reselect()
}

// reselect publishes fresh details for the selected player, or clears the selection once the
// player has left the snapshot.
func (m *Dashboard) reselect() tea.Cmd {
	if m.selectedKey == "" || m.snapshot == nil {
		return func() tea.Msg { return command.ClearSelectionMsg{} }
	}

	for _, team := range m.snapshot.Teams {
		for _, player := range team.Players {
			if team.TeamKey+"/"+player.PlayerKey != m.selectedKey {
				continue
			}

			var portrait string
			if resolution, found := m.lookup(assets.KindHero, player.HeroName); found && resolution.Status == assets.StatusFound {
				portrait = resolution.URL
			}

			return command.SelectPlayer(team.TeamKey, player, portrait)
		}
	}

	m.selectedKey = ""

	return func() tea.Msg { return command.ClearSelectionMsg{} }
}

func (m *Dashboard) View() string {
	height := max(m.viewState.Content, 1)

	if m.snapshot == nil {
		return lipgloss.Place(m.viewState.Width, height, lipgloss.Center, lipgloss.Center,
			styles.WaitingForData.Render(waitingForData))
	}

	teams := m.snapshot.Teams
	if len(teams) == 0 {
		return lipgloss.Place(m.viewState.Width, height, lipgloss.Center, lipgloss.Center,
			styles.WaitingForData.Render("No players"))
	}

	columnWidth := max((m.viewState.Width-columnGap*(len(teams)-1))/len(teams), 20)
	base := component.CardContext{
		Width:   columnWidth,
		Now:     m.now,
		Tracker: m.tracker,
		Lookup:  m.lookup,
		ZoneID:  m.zoneID,
	}

	columns := make([]string, 0, len(teams)*2)
	for idx, team := range teams {
		if idx > 0 {
			columns = append(columns, lipgloss.NewStyle().Width(columnGap).Render(""))
		}

		columns = append(columns, component.TeamColumn(team, idx, m.selectedKey, base))
	}

	return lipgloss.NewStyle().MaxHeight(height).MaxWidth(m.viewState.Width).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
}
