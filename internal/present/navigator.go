package present

import (
	"errors"
	"fmt"

	"ttydeck/internal/deck"
)

var (
	// ErrEmptyDeck means there is nothing to present.
	ErrEmptyDeck = errors.New("deck has no slides")

	ErrInvalidSectionJump = errors.New("invalid section")
)

// NavigationError is a rejected navigation request. It never ends the
// presentation; the cursor stays where it was.
type NavigationError struct {
	Section int // requested table-of-contents index
	Count   int // number of sections in the deck
	Err     error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("section %d: %v (deck has %d)", e.Section+1, e.Err, e.Count)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// State is the navigator's lifecycle state.
type State int

const (
	Idle State = iota
	Showing
	Exited
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Showing:
		return "showing"
	case Exited:
		return "exited"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Navigator owns the cursor into a deck. Out-of-range requests are clamped,
// so the cursor always names a valid slide while Showing.
type Navigator struct {
	deck  *deck.Deck
	state State
	index int
}

func NewNavigator(d *deck.Deck) *Navigator {
	return &Navigator{deck: d}
}

// Start moves from Idle to Showing(0).
func (n *Navigator) Start() error {
	if n.state != Idle {
		return fmt.Errorf("start: navigator is %s", n.state)
	}
	if n.deck.TotalSlideCount() == 0 {
		return ErrEmptyDeck
	}
	n.state = Showing
	n.index = 0
	return nil
}

func (n *Navigator) State() State { return n.state }

// Current returns the flat index of the slide being shown.
func (n *Navigator) Current() int { return n.index }

func (n *Navigator) Total() int { return n.deck.TotalSlideCount() }

// Slide returns the slide under the cursor.
func (n *Navigator) Slide() deck.Slide {
	s, err := n.deck.SlideAt(n.index)
	if err != nil {
		// The cursor is clamped on every move; reaching this is a bug.
		panic(err)
	}
	return s
}

// Section returns the table-of-contents index of the current slide.
func (n *Navigator) Section() int { return n.deck.SectionAt(n.index) }

// Next advances one slide. It reports whether the cursor moved.
func (n *Navigator) Next() bool { return n.JumpTo(n.index + 1) }

// Previous goes back one slide. It reports whether the cursor moved.
func (n *Navigator) Previous() bool { return n.JumpTo(n.index - 1) }

func (n *Navigator) First() bool { return n.JumpTo(0) }

func (n *Navigator) Last() bool { return n.JumpTo(n.Total() - 1) }

// JumpTo moves to flatIndex, clamped to the deck. It reports whether the
// cursor moved; outside Showing it does nothing.
func (n *Navigator) JumpTo(flatIndex int) bool {
	if n.state != Showing {
		return false
	}
	target := min(max(flatIndex, 0), n.Total()-1)
	if target == n.index {
		return false
	}
	n.index = target
	return true
}

// JumpToSection moves to the first slide of table-of-contents entry k. An
// invalid k returns a *NavigationError and leaves the cursor unchanged.
func (n *Navigator) JumpToSection(k int) (bool, error) {
	if n.state != Showing {
		return false, nil
	}
	entries := n.deck.TOCEntries()
	if k < 0 || k >= len(entries) {
		return false, &NavigationError{Section: k, Count: len(entries), Err: ErrInvalidSectionJump}
	}
	return n.JumpTo(entries[k].FirstIndex), nil
}

// Quit moves to Exited. No further navigation has any effect.
func (n *Navigator) Quit() {
	n.state = Exited
}
