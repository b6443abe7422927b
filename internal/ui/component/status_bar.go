package component

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/dota-tui/internal/config"
	"github.com/leighmacdonald/dota-tui/internal/gsi"
	"github.com/leighmacdonald/dota-tui/internal/ui/command"
	"github.com/leighmacdonald/dota-tui/internal/ui/input"
	"github.com/leighmacdonald/dota-tui/internal/ui/model"
	"github.com/leighmacdonald/dota-tui/internal/ui/styles"
)

type StatusBarModel struct {
	viewState   model.ViewState
	statusMsg   string
	statusError bool
	version     string
	endpoint    string
	links       []config.UserLink
	selected    *command.SelectedPlayerMsg
}

func NewStatusBarModel(version string, userConfig config.Config) StatusBarModel {
	return StatusBarModel{version: version, links: userConfig.Links, endpoint: userConfig.EndpointURL}
}

func (m StatusBarModel) Init() tea.Cmd {
	return nil
}

func (m StatusBarModel) Update(msg tea.Msg) (StatusBarModel, tea.Cmd) {
	switch msg := msg.(type) {
	case command.StatusMsg:
		m.statusMsg = msg.Message
		m.statusError = msg.Err

		return m, command.ClearErrorAfter(command.ClearMessageTimeout)
	case command.ClearStatusMessageMsg:
		m.statusError = false
		m.statusMsg = ""
	case command.ConnStateMsg:
		m.endpoint = msg.State.Endpoint
	case command.SelectedPlayerMsg:
		m.selected = &msg
	case command.ClearSelectionMsg:
		m.selected = nil
	case config.Config:
		m.links = msg.Links
	case model.ViewState:
		m.viewState = msg
	}

	return m, nil
}

func (m StatusBarModel) View() string {
	args := []string{
		styles.StatusVersion.Render(m.version),
		styles.StatusHelp.Render(fmt.Sprintf("%s %s", input.Default.Help.Help().Key, input.Default.Help.Help().Desc)),
		m.status(),
	}

	bar := lipgloss.NewStyle().Width(m.viewState.Width).MaxHeight(1).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, args...))

	if m.selected == nil {
		return bar
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.selectedView(), bar)
}

func (m StatusBarModel) selectedView() string {
	player := m.selected.Player

	name := player.Name
	if name == "" {
		name = player.PlayerKey
	}

	parts := []string{styles.StatusSelected.Render(name + " · " + gsi.HeroDisplayName(player.HeroName))}

	if player.SteamID.Valid() {
		for _, link := range m.links {
			parts = append(parts, styles.StatusLink.Render(link.Name+": "+link.Generate(player.SteamID)))
		}
	}

	if m.selected.Portrait != "" {
		parts = append(parts, styles.StatusLink.Render(m.selected.Portrait))
	}

	return lipgloss.NewStyle().Width(m.viewState.Width).
		Render(strings.Join(parts, " "))
}

func (m StatusBarModel) status() string {
	if m.statusMsg != "" {
		if m.statusError {
			return styles.StatusError.Render(m.statusMsg)
		}

		return styles.StatusMessage.Render(m.statusMsg)
	}

	return styles.HeaderValueDim.Render(m.endpoint)
}
