package ui

import (
	"fmt"
	"log"

	"spilcafe/internal/db"
	"spilcafe/internal/favorites"
	"spilcafe/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

type undoAction struct {
	label string
	undo  func(favorites.Set) favorites.Set
	redo  func(favorites.Set) favorites.Set
}

type undoAppliedMsg struct {
	action    undoAction
	direction string // undo, redo
}

func (m *Model) pushUndoAction(action undoAction) {
	m.undoStack = append(m.undoStack, action)
	m.redoStack = nil
}

func (m *Model) undoCmd() tea.Cmd {
	if len(m.undoStack) == 0 {
		return nil
	}
	action := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	return func() tea.Msg {
		return undoAppliedMsg{action: action, direction: "undo"}
	}
}

func (m *Model) redoCmd() tea.Cmd {
	if len(m.redoStack) == 0 {
		return nil
	}
	action := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	return func() tea.Msg {
		return undoAppliedMsg{action: action, direction: "redo"}
	}
}

// buildToggleAction records a favorite toggle. Toggling is its own inverse.
func buildToggleAction(g model.Game, added bool) undoAction {
	label := fmt.Sprintf("removed %s from favorites", g.Title)
	if added {
		label = fmt.Sprintf("added %s to favorites", g.Title)
	}
	id := g.ID
	toggle := func(s favorites.Set) favorites.Set { return s.Toggle(id) }
	return undoAction{label: label, undo: toggle, redo: toggle}
}

func (m *Model) applyUndoResult(msg undoAppliedMsg) {
	if msg.direction == "undo" {
		m.favs = msg.action.undo(m.favs)
		m.redoStack = append(m.redoStack, msg.action)
		m.info = "Undid: " + msg.action.label
	} else {
		m.favs = msg.action.redo(m.favs)
		m.undoStack = append(m.undoStack, msg.action)
		m.info = "Redid: " + msg.action.label
	}
	m.error = ""
	m.refreshGames()
	m.saveFavorites()
}

// saveFavorites writes the whole favorite set. It runs inside Update so that
// writes land in toggle order and storage always matches memory.
func (m *Model) saveFavorites() {
	if m.db == nil {
		return
	}
	if err := db.SaveFavorites(m.db, m.favs); err != nil {
		log.Printf("save favorites: %v", err)
		m.error = "Could not save favorites"
	}
}
