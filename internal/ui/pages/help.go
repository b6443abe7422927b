package pages

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/dota-tui/internal/ui/command"
	"github.com/leighmacdonald/dota-tui/internal/ui/input"
	"github.com/leighmacdonald/dota-tui/internal/ui/model"
	"github.com/leighmacdonald/dota-tui/internal/ui/styles"
)

func NewHelp(buildVersion, buildDate, buildCommit string, configPath string, cachePath string) Help {
	return Help{
		helpView:     help.New(),
		configPath:   configPath,
		cachePath:    cachePath,
		buildVersion: buildVersion,
		buildDate:    buildDate,
		buildCommit:  buildCommit,
	}
}

type Help struct {
	helpView     help.Model
	viewState    model.ViewState
	configPath   string
	cachePath    string
	buildVersion string
	buildDate    string
	buildCommit  string
}

func (m Help) Init() tea.Cmd {
	return nil
}

func (m Help) Update(msg tea.Msg) (Help, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch { //nolint:gocritic
		case key.Matches(msg, input.Default.Back):
			if m.viewState.Page == model.PageHelp {
				m.viewState.Page = model.PageDashboard

				return m, command.SetViewState(m.viewState)
			}
		}
	case model.ViewState:
		m.viewState = msg
	}

	return m, nil
}

func (m Help) View() string {
	left := m.helpView.FullHelpView([][]key.Binding{
		{
			input.Default.Config,
			input.Default.Help,
			input.Default.Quit,
			input.Default.Back,
		},
	})

	right := m.helpView.FullHelpView([][]key.Binding{
		{
			input.Default.NextPlayer,
			input.Default.PrevPlayer,
			input.Default.Up,
			input.Default.Down,
			input.Default.Accept,
		},
	})

	helpContent := lipgloss.JoinHorizontal(lipgloss.Top, styles.HelpBox.Render(left), styles.HelpBox.Render(right))

	commit := m.buildCommit
	if len(commit) > 8 {
		commit = m.buildCommit[0:8]
	}

	content := lipgloss.JoinVertical(lipgloss.Center, helpContent,
		styles.DetailRow("Version", m.buildVersion),
		styles.DetailRow("Commit", commit),
		styles.DetailRow("Date", m.buildDate),
		styles.DetailRow("Config Path", m.configPath),
		styles.DetailRow("Cache Path", m.cachePath),
		styles.DetailRow("Select player", "click a card"),
	)

	return lipgloss.Place(m.viewState.Width, max(m.viewState.Content, lipgloss.Height(content)),
		lipgloss.Center, lipgloss.Center, content)
}
