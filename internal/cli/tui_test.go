package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
)

func press(m InterestPickerModel, keys ...string) InterestPickerModel {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(InterestPickerModel)
	}
	return m
}

func TestInterestPickerToggle(t *testing.T) {
	m := NewInterestPickerModel([]string{"animals", "art", "music", "science"}, []string{"art"}, nil)

	m = press(m, "down", "x", "down", "space", "enter")

	if !m.Done || m.Aborted {
		t.Fatalf("Done = %v, Aborted = %v", m.Done, m.Aborted)
	}
	want := []string{"music"}
	if diff := cmp.Diff(want, m.Selected()); diff != "" {
		t.Errorf("Selected() mismatch (-want +got):\n%s", diff)
	}
}

func TestInterestPickerCursorBounds(t *testing.T) {
	m := NewInterestPickerModel([]string{"art", "music"}, nil, nil)

	m = press(m, "up")
	if m.Cursor != 0 {
		t.Errorf("cursor after up at top = %d", m.Cursor)
	}
	m = press(m, "down", "down", "j")
	if m.Cursor != 1 {
		t.Errorf("cursor after moving past end = %d", m.Cursor)
	}
}

func TestInterestPickerScrolls(t *testing.T) {
	m := NewInterestPickerModel([]string{"a", "b", "c", "d"}, nil, nil)
	m.Height = 2

	m = press(m, "down", "down", "down")
	if m.Offset != 2 {
		t.Errorf("offset = %d, want 2", m.Offset)
	}
	m = press(m, "k", "k", "k")
	if m.Offset != 0 {
		t.Errorf("offset after scrolling back = %d, want 0", m.Offset)
	}
}

func TestInterestPickerAbort(t *testing.T) {
	m := press(NewInterestPickerModel([]string{"art"}, nil, nil), "esc")
	if !m.Aborted || m.Done {
		t.Errorf("Done = %v, Aborted = %v", m.Done, m.Aborted)
	}
}

func TestInterestPickerView(t *testing.T) {
	m := NewInterestPickerModel([]string{"art", "music"}, []string{"music"}, map[string]int{"art": 3, "music": 1})
	view := m.View()
	for _, want := range []string{"Select Interests", "art", "[x]", "1 selected"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestInterestPickerEmpty(t *testing.T) {
	m := press(NewInterestPickerModel(nil, nil, nil), "space", "down", "enter")
	if len(m.Selected()) != 0 || !m.Done {
		t.Errorf("empty picker: %+v", m)
	}
}
