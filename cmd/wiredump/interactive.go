package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	typeNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	descStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectType modelState = iota
	stateInputHex
	stateShowResult
)

type interactiveModel struct {
	err      error
	result   string
	dump     string
	input    textinput.Model
	selected int
	state    modelState
}

func newInteractiveModel() *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "hex bytes, e.g. ac02"
	ti.Prompt = "bytes: "
	ti.Width = 60
	return &interactiveModel{
		input: ti,
		state: stateSelectType,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInputHex {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectType && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectType && m.selected < len(wireTypes)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectType:
				m.input.SetValue("")
				m.input.Focus()
				m.state = stateInputHex

			case stateInputHex:
				m.decodeInput()
				m.input.Blur()
				m.state = stateShowResult

			case stateShowResult:
				m.state = stateSelectType
				m.result = ""
				m.dump = ""
				m.err = nil
			}

		case "esc":
			switch m.state {
			case stateInputHex:
				m.input.Blur()
				m.state = stateSelectType
			case stateShowResult:
				m.state = stateSelectType
				m.result = ""
				m.dump = ""
				m.err = nil
			}
		}
	}

	if m.state == stateInputHex {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) decodeInput() {
	m.result = ""
	m.dump = ""
	m.err = nil

	cleaned := strings.ReplaceAll(m.input.Value(), " ", "")
	data, err := hex.DecodeString(cleaned)
	if err != nil {
		m.err = fmt.Errorf("parse hex: %w", err)
		return
	}

	m.dump = hexDump(data, dumpWidth())

	wt := wireTypes[m.selected]
	n, rendered, err := wt.decode(data)
	if err != nil {
		m.err = err
		return
	}
	m.result = fmt.Sprintf("%s (%d of %d bytes)", rendered, n, len(data))
}

// dumpWidth sizes hex dump rows to the terminal, within reason.
func dumpWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 16
	}
	// Each byte costs three columns past the 8-column offset gutter.
	width := (w - 8) / 3
	switch {
	case width < 8:
		return 8
	case width > 32:
		return 32
	default:
		return width &^ 7
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("wiredump"))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectType:
		b.WriteString("Select a wire type:\n\n")
		for i, wt := range wireTypes {
			line := fmt.Sprintf("%-10s %s", wt.name, descStyle.Render(wt.desc))
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + wt.name))
				b.WriteString(fmt.Sprintf("%*s %s", 10-len(wt.name), "", descStyle.Render(wt.desc)))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter decode • q quit"))

	case stateInputHex:
		wt := wireTypes[m.selected]
		b.WriteString(fmt.Sprintf("Decoding as %s\n\n", typeNameStyle.Render(wt.name)))
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter decode • esc back"))

	case stateShowResult:
		wt := wireTypes[m.selected]
		b.WriteString(fmt.Sprintf("Decoded as %s:\n\n", typeNameStyle.Render(wt.name)))
		if m.dump != "" {
			b.WriteString(m.dump)
			b.WriteString("\n")
		}
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func runInteractive() error {
	p := tea.NewProgram(newInteractiveModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
