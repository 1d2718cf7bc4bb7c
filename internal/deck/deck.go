package deck

import "fmt"

// Section groups consecutive slides for table-of-contents purposes.
type Section struct {
	title     string
	depth     int
	continued bool
	origin    int // segment index that opened this section
	slides    []Slide
}

func (s Section) Title() string { return s.title }

// Depth is 0 for top-level sections and grows by one per nesting level.
func (s Section) Depth() int { return s.depth }

// Continued reports whether this segment resumes a section after a nested
// section closed. Continuations carry no table-of-contents entry.
func (s Section) Continued() bool { return s.continued }

func (s Section) Len() int { return len(s.slides) }

func (s Section) Slides() []Slide {
	out := make([]Slide, len(s.slides))
	copy(out, s.slides)
	return out
}

// TOCEntry is one table-of-contents line.
type TOCEntry struct {
	Title      string
	FirstIndex int
	Depth      int
}

// Deck is an immutable, fully built presentation. It is safe for concurrent
// reads.
type Deck struct {
	title    string
	sections []Section

	flat  []Slide
	toc   []TOCEntry
	tocOf []int // flat index -> toc entry
}

func newDeck(title string, sections []Section) *Deck {
	d := &Deck{title: title, sections: sections}
	tocOfSection := make(map[int]int, len(sections))
	for i, s := range sections {
		if !s.continued {
			d.toc = append(d.toc, TOCEntry{
				Title:      s.title,
				FirstIndex: len(d.flat),
				Depth:      s.depth,
			})
			tocOfSection[i] = len(d.toc) - 1
		}
		tocIdx := tocOfSection[s.origin]
		for _, sl := range s.slides {
			d.flat = append(d.flat, sl)
			d.tocOf = append(d.tocOf, tocIdx)
		}
	}
	return d
}

// Title is the deck title, empty when none was given.
func (d *Deck) Title() string { return d.title }

func (d *Deck) TotalSlideCount() int { return len(d.flat) }

// SlideAt returns the slide at flatIndex in declaration order.
func (d *Deck) SlideAt(flatIndex int) (Slide, error) {
	if flatIndex < 0 || flatIndex >= len(d.flat) {
		return Slide{}, fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, flatIndex, len(d.flat))
	}
	return d.flat[flatIndex], nil
}

// Sections returns every section segment, including continuations.
func (d *Deck) Sections() []Section {
	out := make([]Section, len(d.sections))
	copy(out, d.sections)
	return out
}

// SectionTitles returns the titles of the table-of-contents entries in order.
func (d *Deck) SectionTitles() []string {
	titles := make([]string, len(d.toc))
	for i, e := range d.toc {
		titles[i] = e.Title
	}
	return titles
}

func (d *Deck) TOCEntries() []TOCEntry {
	out := make([]TOCEntry, len(d.toc))
	copy(out, d.toc)
	return out
}

// SectionAt returns the index of the table-of-contents entry that contains
// the slide at flatIndex, or -1 when flatIndex is out of range.
func (d *Deck) SectionAt(flatIndex int) int {
	if flatIndex < 0 || flatIndex >= len(d.tocOf) {
		return -1
	}
	return d.tocOf[flatIndex]
}
