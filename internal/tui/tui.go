// Package tui is an interactive terminal converter. Text typed into the
// input is converted live; tab flips the target script.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jusunglee/kana/internal/kana"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229"))

	targetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

type model struct {
	input textinput.Model
	to    kana.Script
	width int
}

func newModel(to kana.Script) model {
	ti := textinput.New()
	ti.Placeholder = "ひらがな or カタカナ"
	ti.Prompt = "> "
	ti.CharLimit = 512
	ti.Focus()

	return model{input: ti, to: to}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-4, 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab:
			m.to = m.to.Other()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Result is the current input converted to the selected script.
func (m model) Result() string {
	return kana.Convert(m.input.Value(), m.to)
}

func (m model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("kana"))
	s.WriteString("\n")
	s.WriteString(labelStyle.Render("Converting to ") + targetStyle.Render(m.to.String()))
	s.WriteString("\n\n")
	s.WriteString(m.input.View())
	s.WriteString("\n\n")
	s.WriteString(resultStyle.Render(m.Result()))
	s.WriteString("\n\n")

	c := kana.Detect(m.input.Value())
	s.WriteString(dimStyle.Render(fmt.Sprintf("hiragana %d · katakana %d", c.Hiragana, c.Katakana)))
	s.WriteString("\n")
	s.WriteString(dimStyle.Render("tab: switch target  esc: quit"))
	s.WriteString("\n")
	return s.String()
}

// Run starts the converter and returns the last converted text.
func Run(to kana.Script) (string, error) {
	p := tea.NewProgram(newModel(to))
	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}
	return finalModel.(model).Result(), nil
}
