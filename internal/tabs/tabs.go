package tabs

import (
	"errors"
	"fmt"
)

// ErrUnknownTab is returned by ParseTab for names that are not a tab.
var ErrUnknownTab = errors.New("unknown tab")

// Tab identifies one of the two screens.
type Tab string

const (
	Flashcards Tab = "flashcards"
	Quotes     Tab = "quotes"
)

// All lists the tabs in display order.
var All = []Tab{Flashcards, Quotes}

// ParseTab converts a tab name into a Tab.
func ParseTab(s string) (Tab, error) {
	switch Tab(s) {
	case Flashcards, Quotes:
		return Tab(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTab, s)
}

// Label is the text shown on the tab button.
func (t Tab) Label() string {
	switch t {
	case Flashcards:
		return "Flashcards"
	case Quotes:
		return "Random Quotes"
	}
	return string(t)
}

// Switcher tracks which tab is active. Switching has no effect on the state
// behind either screen.
type Switcher struct {
	active Tab
}

// New returns a Switcher showing the flashcards tab.
func New() *Switcher {
	return &Switcher{active: Flashcards}
}

// Select makes tab active.
func (s *Switcher) Select(tab Tab) {
	s.active = tab
}

// Active returns the selected tab.
func (s *Switcher) Active() Tab {
	return s.active
}
