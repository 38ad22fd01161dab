package ui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrAborted is returned when the user backs out of a picker without
// choosing. Callers treat it as a session cancel, not a failure.
var ErrAborted = errors.New("selection aborted")

var (
	pickerTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#DD0031"))
	pickerHelpStyle     = lipgloss.NewStyle().Faint(true)
	pickerSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#DD0031"))
	pickerNormalStyle   = lipgloss.NewStyle()
	pickerHintStyle     = lipgloss.NewStyle().Faint(true)
	pickerCheckedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// Option is one selectable entry in a picker list.
type Option struct {
	Label string
	Hint  string
}

type selectModel struct {
	title   string
	options []Option
	cursor  int
	offset  int
	height  int
	choice  int
	aborted bool
}

func newSelectModel(title string, options []Option) selectModel {
	return selectModel{
		title:   title,
		options: options,
		height:  12,
		choice:  -1,
	}
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.options)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			m.choice = m.cursor
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 5
		if m.height < 4 {
			m.height = 4
		}
	}

	return m, nil
}

func (m selectModel) View() string {
	var b strings.Builder

	b.WriteString(pickerTitleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(pickerHelpStyle.Render("↑/↓ navigate  ⏎ select  esc cancel"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.options) {
		end = len(m.options)
	}

	for i := m.offset; i < end; i++ {
		option := m.options[i]

		cursor := "  "
		style := pickerNormalStyle
		if i == m.cursor {
			cursor = "▸ "
			style = pickerSelectedStyle
		}

		b.WriteString(style.Render(cursor + option.Label))
		if option.Hint != "" {
			b.WriteString("  " + pickerHintStyle.Render(option.Hint))
		}
		b.WriteString("\n")
	}

	if len(m.options) > m.height {
		b.WriteString("\n")
		b.WriteString(pickerHelpStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.options))))
	}

	return b.String()
}

// SelectOption shows an interactive list and returns the index of the
// chosen option. Returns ErrAborted when the user cancels.
func SelectOption(title string, options []Option) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("no options to select from")
	}

	ClearStatus()

	final, err := tea.NewProgram(newSelectModel(title, options)).Run()
	if err != nil {
		return 0, fmt.Errorf("running selection: %w", err)
	}

	m, ok := final.(selectModel)
	if !ok || m.aborted || m.choice < 0 {
		return 0, ErrAborted
	}

	return m.choice, nil
}

type multiSelectModel struct {
	title   string
	options []Option
	cursor  int
	offset  int
	height  int
	checked map[int]bool
	done    bool
	aborted bool
}

func newMultiSelectModel(title string, options []Option, preselected []int) multiSelectModel {
	checked := make(map[int]bool)
	for _, i := range preselected {
		if i >= 0 && i < len(options) {
			checked[i] = true
		}
	}

	return multiSelectModel{
		title:   title,
		options: options,
		height:  12,
		checked: checked,
	}
}

func (m multiSelectModel) Init() tea.Cmd {
	return nil
}

func (m multiSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.options)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case " ":
			m.checked[m.cursor] = !m.checked[m.cursor]
		case "enter":
			m.done = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 5
		if m.height < 4 {
			m.height = 4
		}
	}

	return m, nil
}

func (m multiSelectModel) View() string {
	var b strings.Builder

	b.WriteString(pickerTitleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(pickerHelpStyle.Render("↑/↓ navigate  space toggle  ⏎ confirm  esc cancel"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.options) {
		end = len(m.options)
	}

	for i := m.offset; i < end; i++ {
		option := m.options[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		box := "[ ]"
		if m.checked[i] {
			box = pickerCheckedStyle.Render("[x]")
		}

		label := option.Label
		if i == m.cursor {
			label = pickerSelectedStyle.Render(label)
		}

		b.WriteString(fmt.Sprintf("%s%s %s", cursor, box, label))
		if option.Hint != "" {
			b.WriteString("  " + pickerHintStyle.Render(option.Hint))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// MultiSelect shows an interactive checkbox list and returns the indices
// of the checked options in list order. Returns ErrAborted when the user
// cancels. An empty selection is a valid result.
func MultiSelect(title string, options []Option, preselected []int) ([]int, error) {
	if len(options) == 0 {
		return nil, nil
	}

	ClearStatus()

	final, err := tea.NewProgram(newMultiSelectModel(title, options, preselected)).Run()
	if err != nil {
		return nil, fmt.Errorf("running selection: %w", err)
	}

	m, ok := final.(multiSelectModel)
	if !ok || m.aborted || !m.done {
		return nil, ErrAborted
	}

	indices := make([]int, 0, len(m.checked))
	for i := range m.options {
		if m.checked[i] {
			indices = append(indices, i)
		}
	}

	return indices, nil
}
