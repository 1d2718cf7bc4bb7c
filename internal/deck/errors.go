package deck

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is returned by SlideAt for an index outside the deck.
	ErrIndexOutOfRange = errors.New("slide index out of range")

	ErrUnterminatedSection = errors.New("unterminated section")
	ErrNoOpenSection       = errors.New("no open section")
	ErrMalformedOptions    = errors.New("malformed slide options")
	ErrDeckNotStarted      = errors.New("deck not started")
	ErrDeckFinished        = errors.New("deck already finished")
)

// BuildError reports a declaration the Builder rejected. Build errors are
// fatal: the deck cannot be presented.
type BuildError struct {
	Op      string // builder operation, e.g. "end deck"
	Section string // innermost open section, if any
	Err     error
}

func (e *BuildError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("%s (in section %q): %v", e.Op, e.Section, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }
