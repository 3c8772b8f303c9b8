// Package router holds the host's routing table. Endpoint groups may be
// registered only during the startup registration window; once the table is
// frozen the host begins serving and the set of routes never changes again.
package router

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"
)

// Sentinel errors for table registration.
var (
	ErrFrozen     = errors.New("routing table is frozen")
	ErrDuplicate  = errors.New("endpoint group name already registered")
	ErrEmptyGroup = errors.New("endpoint group has no name")
)

// Route is a single request-routable handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.Handler
}

// EndpointGroup is a named set of routes an extension (or the host itself)
// contributes to the routing table.
type EndpointGroup struct {
	Name   string
	Routes []Route
}

// Table is the routing table. Register until Freeze; serve afterwards.
type Table struct {
	mu     sync.Mutex
	mux    *http.ServeMux
	groups map[string]int // group name -> route count, for listing
	frozen bool
}

// NewTable returns an empty, unfrozen routing table.
func NewTable() *Table {
	return &Table{
		mux:    http.NewServeMux(),
		groups: make(map[string]int),
	}
}

// Register adds an endpoint group to the table. It fails if the table is
// frozen or the group name is already taken; a failed registration leaves
// the table unchanged.
func (t *Table) Register(group EndpointGroup) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.frozen {
		return fmt.Errorf("%w: cannot register %q", ErrFrozen, group.Name)
	}
	if group.Name == "" {
		return ErrEmptyGroup
	}
	if _, exists := t.groups[group.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicate, group.Name)
	}

	// ServeMux panics on pattern conflicts; convert that to an error so one
	// extension's bad pattern cannot take down startup.
	registered := 0
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("registering group %q: %v", group.Name, r)
			}
		}()
		for _, route := range group.Routes {
			pattern := route.Pattern
			if route.Method != "" {
				pattern = route.Method + " " + pattern
			}
			t.mux.Handle(pattern, route.Handler)
			registered++
		}
		return nil
	}()
	if err != nil {
		return err
	}

	t.groups[group.Name] = registered
	return nil
}

// Freeze closes the registration window and returns the handler to serve.
// Registration attempts after Freeze fail with ErrFrozen.
func (t *Table) Freeze() http.Handler {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.frozen = true
	return t.mux
}

// Frozen reports whether the registration window has closed.
func (t *Table) Frozen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frozen
}

// GroupNames returns the registered group names, sorted.
func (t *Table) GroupNames() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	names := make([]string, 0, len(t.groups))
	for name := range t.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
