package pages

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/dota-tui/internal/config"
	"github.com/leighmacdonald/dota-tui/internal/ui/command"
	"github.com/leighmacdonald/dota-tui/internal/ui/component"
	"github.com/leighmacdonald/dota-tui/internal/ui/input"
	"github.com/leighmacdonald/dota-tui/internal/ui/model"
	"github.com/leighmacdonald/dota-tui/internal/ui/styles"
)

const endpointHelp = "Set the websocket base URL (e.g. ws://localhost:3005) or a full endpoint (e.g. ws://localhost:3005/ws/full)."

type configIdx int

const (
	fieldEndpoint configIdx = iota
	fieldSave
)

// EndpointSetter switches the live connection to a new endpoint.
type EndpointSetter interface {
	SetEndpoint(endpoint string) error
}

type Config struct {
	fields     []*component.ValidatingTextInputModel
	focusIndex configIdx
	config     config.Config
	viewState  model.ViewState
	loader     config.Writer
	endpoint   EndpointSetter
}

func NewConfig(userConfig config.Config, loader config.Writer, endpoint EndpointSetter) *Config {
	field := component.NewValidatingTextInputModel("Endpoint", userConfig.EndpointURL, config.DefaultEndpoint,
		component.EndpointValidator{})

	return &Config{
		config:     userConfig,
		fields:     []*component.ValidatingTextInputModel{field},
		focusIndex: fieldEndpoint,
		loader:     loader,
		endpoint:   endpoint,
	}
}

func (m *Config) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.fields[fieldEndpoint].Focus())
}

func (m *Config) Update(msg tea.Msg) (*Config, tea.Cmd) {
	var cmds []tea.Cmd

	if m.viewState.Page == model.PageConfig {
		var cmd tea.Cmd
		m.fields[fieldEndpoint], cmd = m.fields[fieldEndpoint].Update(msg)
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case model.ViewState:
		m.viewState = msg
	case config.Config:
		m.config = msg
	case tea.KeyMsg:
		if m.viewState.Page != model.PageConfig {
			break
		}

		switch {
		case key.Matches(msg, input.Default.Back):
			m.fields[fieldEndpoint].Input.SetValue(m.config.EndpointURL)
			m.viewState.Page = model.PageDashboard
			cmds = append(cmds, command.SetViewState(m.viewState))
		case key.Matches(msg, input.Default.Up):
			cmds = append(cmds, m.changeInput(-1))
		case key.Matches(msg, input.Default.Down):
			cmds = append(cmds, m.changeInput(1))
		case key.Matches(msg, input.Default.Accept):
			if m.focusIndex == fieldEndpoint {
				cmds = append(cmds, m.changeInput(1))

				break
			}

			return m, m.save()
		}
	}

	return m, tea.Batch(cmds...)
}

// save persists the endpoint and reconnects. Invalid input leaves the current connection alone.
func (m *Config) save() tea.Cmd {
	for _, field := range m.fields {
		if field.Input.Err != nil {
			return command.SetStatusMessage(field.Input.Err.Error(), true)
		}
	}

	cfg := m.config
	cfg.EndpointURL = strings.TrimSpace(m.fields[fieldEndpoint].Input.Value())

	if err := config.ValidateEndpoint(cfg.EndpointURL); err != nil {
		return command.SetStatusMessage(err.Error(), true)
	}

	if err := m.loader.Write(cfg); err != nil {
		return command.SetStatusMessage(err.Error(), true)
	}

	// Without a live connection, such as during a replay, the endpoint only applies to the
	// next run.
	status := "Saved, applies on next start"
	if m.endpoint != nil {
		if err := m.endpoint.SetEndpoint(cfg.EndpointURL); err != nil {
			return command.SetStatusMessage(err.Error(), true)
		}

		status = "Saved, reconnecting"
	}

	m.config = cfg
	m.viewState.Page = model.PageDashboard

	return tea.Batch(
		command.SetConfig(cfg),
		command.SetStatusMessage(status, false),
		command.SetViewState(m.viewState))
}

func (m *Config) changeInput(step int) tea.Cmd {
	next := m.focusIndex + configIdx(step)
	if next < fieldEndpoint || next > fieldSave {
		return nil
	}

	m.focusIndex = next

	var cmd tea.Cmd
	for i := range m.fields {
		if configIdx(i) == m.focusIndex {
			cmd = m.fields[i].Focus()
		} else {
			m.fields[i].Blur()
		}
	}

	return cmd
}

func (m *Config) View() string {
	fields := []string{
		styles.HeaderValueDim.Render(endpointHelp),
		"",
		m.fields[fieldEndpoint].View(),
		"",
	}

	if m.focusIndex == fieldSave {
		fields = append(fields, styles.FocusedSubmitButton)
	} else {
		fields = append(fields, styles.BlurredSubmitButton)
	}

	content := lipgloss.NewStyle().Padding(1, 2).Align(lipgloss.Left).
		Render(lipgloss.JoinVertical(lipgloss.Top, fields...))

	return model.Container("Settings", m.viewState.Width, m.viewState.Content, content, true)
}
