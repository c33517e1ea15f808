package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/wippyai/bytestreamsplit/errors"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	indexStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const defaultPageSize = 20

type interactiveModel struct {
	err      error
	filename string
	typeStr  string
	values   []string
	jump     textinput.Model
	selected int
	top      int
	height   int
	jumping  bool
}

func newInteractiveModel(filename, typeStr string, values []string) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "index"
	ti.Prompt = "go to: "
	ti.CharLimit = 20
	ti.Width = 20

	return &interactiveModel{
		filename: filename,
		typeStr:  typeStr,
		values:   values,
		jump:     ti,
		height:   defaultPageSize,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// title, blank, footer lines
		m.height = max(1, msg.Height-4)
		m.scroll()

	case tea.KeyMsg:
		if m.jumping {
			return m.updateJump(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			m.move(-1)

		case "down", "j":
			m.move(1)

		case "pgup", "b":
			m.move(-m.height)

		case "pgdown", "f", " ":
			m.move(m.height)

		case "home", "g":
			m.move(-len(m.values))

		case "end", "G":
			m.move(len(m.values))

		case ":", "/":
			m.jumping = true
			m.err = nil
			m.jump.SetValue("")
			return m, m.jump.Focus()
		}
	}

	return m, nil
}

func (m *interactiveModel) updateJump(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.jumping = false
		m.jump.Blur()
		return m, nil

	case "enter":
		m.jumping = false
		m.jump.Blur()
		idx, err := strconv.Atoi(strings.TrimSpace(m.jump.Value()))
		if err != nil || idx < 0 || idx >= len(m.values) {
			m.err = fmt.Errorf("index %q outside [0, %d)", m.jump.Value(), len(m.values))
			return m, nil
		}
		m.selected = idx
		m.scroll()
		return m, nil
	}

	var cmd tea.Cmd
	m.jump, cmd = m.jump.Update(msg)
	return m, cmd
}

func (m *interactiveModel) move(delta int) {
	if len(m.values) == 0 {
		return
	}
	m.selected = min(max(m.selected+delta, 0), len(m.values)-1)
	m.scroll()
}

// scroll keeps the selected row inside the visible window.
func (m *interactiveModel) scroll() {
	if m.selected < m.top {
		m.top = m.selected
	}
	if m.selected >= m.top+m.height {
		m.top = m.selected - m.height + 1
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Byte Stream Split"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString(" ")
	b.WriteString(typeStyle.Render(fmt.Sprintf("%s × %d", m.typeStr, len(m.values))))
	b.WriteString("\n\n")

	if len(m.values) == 0 {
		b.WriteString("No values.\n")
	}

	end := min(m.top+m.height, len(m.values))
	for i := m.top; i < end; i++ {
		line := indexStyle.Render(fmt.Sprintf("%8d  ", i)) + m.values[i]
		if i == m.selected {
			line = selectedStyle.Render(fmt.Sprintf("%8d  %s", i, m.values[i]))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.jumping:
		b.WriteString(m.jump.View())
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	default:
		b.WriteString(helpStyle.Render("↑/↓ move • pgup/pgdn page • g/G first/last • : go to • q quit"))
	}

	return b.String()
}

func runInteractive(opts options, log *zap.Logger) error {
	if opts.file == "-" {
		return errors.InvalidInput(errors.PhaseLoad, "interactive mode cannot read values from stdin")
	}
	t, err := parseElementType(opts.typeName)
	if err != nil {
		return err
	}
	data, err := readInput(opts.file, os.Stdin)
	if err != nil {
		return err
	}
	values, err := decodeValues(data, t, resolveWidth(opts.width, t))
	if err != nil {
		return fmt.Errorf("decode %s: %w", opts.file, err)
	}
	log.Debug("starting pager", zap.Int("values", len(values)))

	p := tea.NewProgram(newInteractiveModel(opts.file, witTypeStr(t), values), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
