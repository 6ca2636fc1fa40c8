package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	primaryColor = lipgloss.Color("#06B6D4") // cyan
	mutedColor   = lipgloss.Color("#6B7280") // gray
	errorColor   = lipgloss.Color("#EF4444") // red

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	errStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	outputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)
)

type toolsLoadedMsg struct {
	tools []ToolInfo
}

type callDoneMsg struct {
	text    string
	isError bool
}

type callFailedMsg struct {
	err error
}

// Model is the Bubble Tea model for the skydeck client.
type Model struct {
	client *Client

	tools    []ToolInfo
	selected int

	argsInput textinput.Model
	output    viewport.Model
	ready     bool
	busy      bool
	status    string

	width, height int
}

// NewModel builds a model bound to a connected client.
func NewModel(client *Client) Model {
	input := textinput.New()
	input.Placeholder = `{"location": "Oslo"}`
	input.Prompt = "args> "
	input.CharLimit = 2048
	input.Focus()

	return Model{
		client:    client,
		argsInput: input,
		status:    "loading tool catalog...",
	}
}

// Init fetches the tool catalog.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		tools, err := m.client.ListTools(context.Background())
		if err != nil {
			return callFailedMsg{err: err}
		}
		return toolsLoadedMsg{tools: tools}
	}
}

// Update handles key presses and call results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		outputHeight := max(msg.Height-len(m.tools)-8, 5)
		if !m.ready {
			m.output = viewport.New(msg.Width-4, outputHeight)
			m.ready = true
		} else {
			m.output.Width = msg.Width - 4
			m.output.Height = outputHeight
		}
		return m, nil

	case toolsLoadedMsg:
		m.tools = msg.tools
		m.status = fmt.Sprintf("%d tools available", len(m.tools))
		return m, nil

	case callDoneMsg:
		m.busy = false
		m.status = "done"
		if msg.isError {
			m.status = "tool returned an error"
		}
		if m.ready {
			m.output.SetContent(msg.text)
			m.output.GotoTop()
		}
		return m, nil

	case callFailedMsg:
		m.busy = false
		m.status = errStyle.Render(msg.err.Error())
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "shift+tab":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "tab":
			if m.selected < len(m.tools)-1 {
				m.selected++
			}
			return m, nil
		case "enter":
			if m.busy || len(m.tools) == 0 {
				return m, nil
			}
			return m.submit()
		case "pgup":
			m.output.HalfPageUp()
			return m, nil
		case "pgdown":
			m.output.HalfPageDown()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.argsInput, cmd = m.argsInput.Update(msg)
	return m, cmd
}

// submit parses the argument JSON and issues the call.
func (m Model) submit() (tea.Model, tea.Cmd) {
	tool := m.tools[m.selected].Name

	args := map[string]any{}
	raw := strings.TrimSpace(m.argsInput.Value())
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			m.status = errStyle.Render("arguments must be a JSON object: " + err.Error())
			return m, nil
		}
	}

	m.busy = true
	m.status = "calling " + tool + "..."
	client := m.client
	return m, func() tea.Msg {
		result, err := client.CallTool(context.Background(), tool, args)
		if err != nil {
			return callFailedMsg{err: err}
		}
		var parts []string
		for _, block := range result.Content {
			if block.Text != "" {
				parts = append(parts, block.Text)
			}
		}
		return callDoneMsg{text: strings.Join(parts, "\n\n"), isError: result.IsError}
	}
}

// View renders the tool list, argument input, and output pane.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("skydeck") + "  " + helpStyle.Render("tab/↑↓ select · enter call · esc quit"))
	b.WriteString("\n\n")

	for i, tool := range m.tools {
		line := "  " + tool.Name
		if i == m.selected {
			line = selectedStyle.Render("> " + tool.Name)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + m.argsInput.View() + "\n")
	b.WriteString(helpStyle.Render(m.status) + "\n")
	if m.ready && m.output.View() != "" {
		b.WriteString(outputStyle.Render(m.output.View()))
	}
	return b.String()
}
