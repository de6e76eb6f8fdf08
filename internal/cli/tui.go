package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fixturelab/planogram/pkg/editor"
	"github.com/fixturelab/planogram/pkg/layout"
	"github.com/fixturelab/planogram/pkg/validate"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// EditorModel - Interactive layout editing
// =============================================================================

// entryKind distinguishes the flattened tree lines.
type entryKind int

const (
	entryCompartment entryKind = iota
	entryRow
	entryItem
)

// treeEntry is one selectable line in the flattened layout tree. Item
// entries carry the full location so edits can address them.
type treeEntry struct {
	kind entryKind
	loc  editor.Location
	item layout.Item
	text string
}

// EditorModel is the bubbletea model for interactive layout editing. It
// holds the session and rebuilds its flattened view after every edit.
type EditorModel struct {
	Session *editor.Session

	entries   []treeEntry
	conflicts validate.Set
	cursor    int
	status    string
	Height    int
	offset    int
}

// NewEditorModel creates an editor model over the session.
func NewEditorModel(session *editor.Session) EditorModel {
	m := EditorModel{Session: session, Height: 20}
	m.rebuild()
	return m
}

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.moveCursor(-1)
		case "down", "j":
			m.moveCursor(1)
		case "u":
			m.Session.Undo()
			m.rebuild()
			m.status = "undo"
		case "r":
			m.Session.Redo()
			m.rebuild()
			m.status = "redo"
		case "x":
			m.removeSelected(false)
		case "X":
			m.removeSelected(true)
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m *EditorModel) moveCursor(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= len(m.entries) {
		return
	}
	m.cursor = next
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.Height {
		m.offset = m.cursor - m.Height + 1
	}
}

// removeSelected removes the item under the cursor, or its whole stack
// when wholeStack is set. Non-item lines are ignored.
func (m *EditorModel) removeSelected(wholeStack bool) {
	if m.cursor >= len(m.entries) {
		return
	}
	e := m.entries[m.cursor]
	if e.kind != entryItem {
		m.status = "select an item to remove"
		return
	}
	_, err := m.Session.Apply(editor.Action{
		Type:       editor.ActionRemove,
		At:         e.loc,
		WholeStack: wholeStack,
	})
	if err != nil {
		m.status = err.Error()
		return
	}
	if wholeStack {
		m.status = "removed stack"
	} else {
		m.status = "removed " + itemName(e.item)
	}
	m.rebuild()
}

// rebuild flattens the current snapshot into view entries and recomputes
// the conflict set for highlighting. The cursor is clamped to the new
// entry count.
func (m *EditorModel) rebuild() {
	l := m.Session.Current()
	m.conflicts = validate.FindConflicts(l)
	m.entries = m.entries[:0]

	for _, comp := range l.Compartments {
		m.entries = append(m.entries, treeEntry{
			kind: entryCompartment,
			text: fmt.Sprintf("%s  %g x %g", comp.ID, comp.Width, comp.Height),
		})
		for _, row := range comp.Rows {
			m.entries = append(m.entries, treeEntry{
				kind: entryRow,
				text: fmt.Sprintf("%s  %g/%g used  max height %g",
					row.ID, row.UsedWidth(), row.Capacity, row.MaxHeight),
			})
			for si, stack := range row.Stacks {
				for ii, it := range stack.Items {
					level := ""
					if ii > 0 {
						level = fmt.Sprintf(" (level %d)", ii)
					}
					m.entries = append(m.entries, treeEntry{
						kind: entryItem,
						loc: editor.Location{
							Compartment: comp.ID,
							Row:         row.ID,
							Stack:       si,
							Item:        ii,
						},
						item: it,
						text: fmt.Sprintf("%s  %gx%g%s", itemName(it), it.Width, it.Height, level),
					})
				}
			}
		}
	}

	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.offset > m.cursor {
		m.offset = m.cursor
	}
}

func (m EditorModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Edit Layout"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  x remove  X remove stack  u undo  r redo  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.Height
	if end > len(m.entries) {
		end = len(m.entries)
	}

	for i := m.offset; i < end; i++ {
		e := m.entries[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		var line string
		switch e.kind {
		case entryCompartment:
			line = cursor + e.text
		case entryRow:
			line = cursor + "  " + e.text
		case entryItem:
			mark := " "
			if reasons, ok := m.conflicts[e.item.ID]; ok {
				mark = StyleConflict.Render("!")
				line = cursor + "    " + mark + " " + StyleConflict.Render(e.text) +
					listDimStyle.Render("  "+formatReasons(reasons))
				b.WriteString(line)
				b.WriteString("\n")
				continue
			}
			line = cursor + "    " + mark + " " + e.text
		}

		switch {
		case i == m.cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case e.kind == entryItem:
			b.WriteString(listNormalStyle.Render(line))
		default:
			b.WriteString(listDimStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d conflicts · history %d/%d",
		len(m.conflicts), m.Session.Cursor()+1, m.Session.HistoryLen())))
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("  " + m.status))
	}

	return b.String()
}

// itemName prefers the SKU, falling back to the item ID.
func itemName(it layout.Item) string {
	if it.SKU != "" {
		return it.SKU
	}
	return it.ID
}
