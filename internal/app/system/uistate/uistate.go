// Package uistate holds per-session UI state for management screens:
// which entity is selected, which dialog is open, and which table
// columns are visible. Keeping this in an explicit container (rather
// than ambient per-handler state) makes screen behavior testable
// without standing up the whole route tree.
//
// Nothing here is persisted; state lives for the session and is
// dropped on logout.
package uistate

import (
	"sync"

	"github.com/caristo/adminhub/internal/app/system/forms"
)

// Registry maps session IDs to their UI state.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Session returns the state container for a session, creating it on
// first use.
func (r *Registry) Session(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		s = &Session{screens: make(map[string]*Screen)}
		r.sessions[id] = s
	}
	return s
}

// Drop discards a session's UI state (logout).
func (r *Registry) Drop(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Session is one signed-in admin's UI state across screens.
type Session struct {
	mu      sync.Mutex
	screens map[string]*Screen
}

// Screen returns the named screen's state, creating it on first use.
func (s *Session) Screen(name string) *Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, ok := s.screens[name]
	if !ok {
		sc = &Screen{columns: make(map[string]bool)}
		s.screens[name] = sc
	}
	return sc
}

// Screen holds one management screen's transient UI state. At most one
// entity is selected and at most one dialog is open at a time.
type Screen struct {
	mu         sync.Mutex
	selectedID string
	openKind   string
	dialog     *forms.Dialog
	columns    map[string]bool
}

// Select records the entity a row action targeted.
func (s *Screen) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = id
}

// Selected returns the currently selected entity ID, or "".
func (s *Screen) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedID
}

// OpenDialog installs d as the screen's open dialog of the given kind,
// replacing any previously open one.
func (s *Screen) OpenDialog(kind string, d *forms.Dialog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openKind = kind
	s.dialog = d
}

// EnsureDialog returns the open dialog of the given kind when match
// accepts it, otherwise builds one with build and installs it. Lookup
// and install happen under the screen lock, so two concurrent first
// confirmations share one dialog and its in-flight guard. A nil match
// accepts any dialog of the kind.
func (s *Screen) EnsureDialog(kind string, match func(*forms.Dialog) bool, build func() *forms.Dialog) *forms.Dialog {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.openKind == kind && s.dialog != nil && (match == nil || match(s.dialog)) {
		return s.dialog
	}
	d := build()
	s.openKind = kind
	s.dialog = d
	return d
}

// Dialog returns the open dialog if its kind matches, else nil.
func (s *Screen) Dialog(kind string) *forms.Dialog {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.openKind != kind {
		return nil
	}
	return s.dialog
}

// CloseDialog clears the open dialog and the selection. Refused while
// the dialog is mid-delete, matching the dialog's own guard.
func (s *Screen) CloseDialog() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dialog != nil && s.dialog.IsDeleting() {
		return
	}
	s.openKind = ""
	s.dialog = nil
	s.selectedID = ""
}

// SetColumn toggles a column's visibility. This is purely a rendering
// concern; it never affects fetching.
func (s *Screen) SetColumn(key string, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.columns[key] = visible
}

// ColumnVisible reports a column's visibility, defaulting to shown.
func (s *Screen) ColumnVisible(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.columns[key]
	if !ok {
		return true
	}
	return v
}
