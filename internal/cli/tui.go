package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// InterestPickerModel - Interactive interest selection
// =============================================================================

// InterestPickerModel is the bubbletea model for choosing profile interests.
type InterestPickerModel struct {
	Interests []string
	Counts    map[string]int
	Chosen    map[string]bool
	Cursor    int
	Height    int
	Offset    int

	// Done is set when the user confirms; Aborted when they quit.
	Done    bool
	Aborted bool
}

// NewInterestPickerModel creates a picker over interests with current
// preselected. counts, if non-nil, is shown next to each interest.
func NewInterestPickerModel(interests, current []string, counts map[string]int) InterestPickerModel {
	chosen := make(map[string]bool, len(current))
	for _, in := range current {
		chosen[in] = true
	}
	return InterestPickerModel{
		Interests: interests,
		Counts:    counts,
		Chosen:    chosen,
		Height:    15,
	}
}

func (m InterestPickerModel) Init() tea.Cmd {
	return nil
}

func (m InterestPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Aborted = true
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Interests)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "space", "x":
			if len(m.Interests) > 0 {
				in := m.Interests[m.Cursor]
				if m.Chosen[in] {
					delete(m.Chosen, in)
				} else {
					m.Chosen[in] = true
				}
			}
		case "enter":
			m.Done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// Selected returns the chosen interests in list order.
func (m InterestPickerModel) Selected() []string {
	out := []string{}
	for _, in := range m.Interests {
		if m.Chosen[in] {
			out = append(out, in)
		}
	}
	return out
}

func (m InterestPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Interests"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("arrows: navigate  space: toggle  enter: save  q: quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Interests) {
		end = len(m.Interests)
	}

	var rows [][]string
	for i := m.Offset; i < end; i++ {
		in := m.Interests[i]
		cursor := " "
		if i == m.Cursor {
			cursor = ">"
		}
		mark := "[ ]"
		if m.Chosen[in] {
			mark = "[x]"
		}
		count := ""
		if m.Counts != nil {
			count = strconv.Itoa(m.Counts[in])
		}
		rows = append(rows, []string{cursor, mark, in, count})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "Interest", "Exhibits").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			idx := m.Offset + row
			if idx >= len(m.Interests) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col == 3 {
				base = base.Foreground(colorDim)
			}
			switch {
			case idx == m.Cursor:
				return listSelectedStyle
			case m.Chosen[m.Interests[idx]]:
				return base.Foreground(colorGreen)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d selected  [%d/%d]",
		len(m.Selected()), m.Cursor+1, len(m.Interests))))

	return b.String()
}
