package deck

import "fmt"

// Builder accumulates declarations into a Deck. Calls must follow
//
//	BeginDeck (BeginSection | AddSlide | EndSection)* EndDeck
//
// with every BeginSection matched by an EndSection. Slides declared outside
// any section belong to an implicit anonymous section.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	title    string
	started  bool
	finished bool

	sections []Section
	open     []int // segment indices of open sections; open[0] is the implicit root
}

func NewBuilder() *Builder {
	return &Builder{}
}

// BeginDeck starts the deck.
func (b *Builder) BeginDeck(title string) error {
	if b.finished {
		return b.fail("begin deck", ErrDeckFinished)
	}
	if b.started {
		return b.fail("begin deck", fmt.Errorf("%w: begin called twice", ErrMalformedOptions))
	}
	b.started = true
	b.title = title
	b.sections = []Section{{origin: 0}}
	b.open = []int{0}
	return nil
}

// BeginSection opens a named section. Sections may nest.
func (b *Builder) BeginSection(title string) error {
	if err := b.check("begin section"); err != nil {
		return err
	}
	idx := len(b.sections)
	b.sections = append(b.sections, Section{
		title:  title,
		depth:  len(b.open) - 1,
		origin: idx,
	})
	b.open = append(b.open, idx)
	return nil
}

// EndSection closes the innermost open section.
func (b *Builder) EndSection() error {
	if err := b.check("end section"); err != nil {
		return err
	}
	if len(b.open) <= 1 {
		return b.fail("end section", ErrNoOpenSection)
	}
	b.open = b.open[:len(b.open)-1]
	return nil
}

// AddSlide appends a slide to the innermost open section.
func (b *Builder) AddSlide(kind Kind, body string, opts Options) error {
	if err := b.check("add " + kind.String()); err != nil {
		return err
	}
	s, err := NewSlide(kind, body, opts)
	if err != nil {
		return b.fail("add "+kind.String(), err)
	}

	owner := b.open[len(b.open)-1]
	last := len(b.sections) - 1
	if b.sections[last].origin != owner {
		// A nested section closed since the owner last received a slide.
		b.sections = append(b.sections, Section{
			title:     b.sections[owner].title,
			depth:     b.sections[owner].depth,
			continued: true,
			origin:    owner,
		})
		last++
	}
	b.sections[last].slides = append(b.sections[last].slides, s)
	return nil
}

func (b *Builder) AddCenter(body, headline string) error {
	return b.AddSlide(Center, body, Options{Headline: headline})
}

func (b *Builder) AddCode(body, language string) error {
	return b.AddSlide(Code, body, Options{Language: language})
}

func (b *Builder) AddBlock(body string) error {
	return b.AddSlide(Block, body, Options{})
}

func (b *Builder) AddTableOfContents(headline string) error {
	return b.AddSlide(TableOfContents, "", Options{Headline: headline})
}

func (b *Builder) AddMarkdown(body string) error {
	return b.AddSlide(Markdown, body, Options{})
}

// EndDeck finishes the build and returns the immutable deck. It fails with
// ErrUnterminatedSection while any section is still open.
func (b *Builder) EndDeck() (*Deck, error) {
	if err := b.check("end deck"); err != nil {
		return nil, err
	}
	if len(b.open) > 1 {
		return nil, b.fail("end deck", ErrUnterminatedSection)
	}
	b.finished = true

	rootEmpty := len(b.sections[0].slides) == 0
	kept := make([]Section, 0, len(b.sections))
	remap := make(map[int]int, len(b.sections))
	for i, s := range b.sections {
		if i == 0 && rootEmpty {
			continue
		}
		if rootEmpty && s.continued && s.origin == 0 {
			if _, ok := remap[0]; !ok {
				// first top-level slides after a section stand in for the empty root
				s.continued = false
				remap[0] = len(kept)
			}
		}
		if !s.continued && s.origin == i {
			remap[i] = len(kept)
		}
		s.origin = remap[s.origin]
		kept = append(kept, s)
	}
	return newDeck(b.title, kept), nil
}

func (b *Builder) check(op string) error {
	switch {
	case b.finished:
		return b.fail(op, ErrDeckFinished)
	case !b.started:
		return b.fail(op, ErrDeckNotStarted)
	}
	return nil
}

func (b *Builder) fail(op string, err error) error {
	be := &BuildError{Op: op, Err: err}
	if len(b.open) > 1 {
		be.Section = b.sections[b.open[len(b.open)-1]].title
	}
	return be
}
