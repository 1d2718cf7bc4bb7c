package deck

import "fmt"

// Kind selects the layout a slide is rendered with.
type Kind int

const (
	Center Kind = iota
	Code
	Block
	TableOfContents
	Markdown
)

var kindNames = map[Kind]string{
	Center:          "center",
	Code:            "code",
	Block:           "block",
	TableOfContents: "tableofcontents",
	Markdown:        "markdown",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a kind name as written in deck sources to a Kind.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	if name == "toc" {
		return TableOfContents, true
	}
	return 0, false
}

// Options carries the optional per-kind slide metadata. Which fields are
// allowed depends on the kind; see Options.validate.
type Options struct {
	// Headline is a secondary heading for Center slides or the title of a
	// TableOfContents slide.
	Headline string

	// Language tags the body of a Code slide for highlighting.
	Language string
}

func (o Options) validate(kind Kind, body string) error {
	switch kind {
	case Center:
		if o.Language != "" {
			return fmt.Errorf("%w: language is only valid on code slides", ErrMalformedOptions)
		}
	case Code:
		if o.Headline != "" {
			return fmt.Errorf("%w: headline is not valid on code slides", ErrMalformedOptions)
		}
	case Block, Markdown:
		if o.Headline != "" || o.Language != "" {
			return fmt.Errorf("%w: %s slides take no options", ErrMalformedOptions, kind)
		}
	case TableOfContents:
		if o.Language != "" {
			return fmt.Errorf("%w: language is only valid on code slides", ErrMalformedOptions)
		}
		if body != "" {
			return fmt.Errorf("%w: table of contents slides have no body", ErrMalformedOptions)
		}
	default:
		return fmt.Errorf("%w: unknown slide kind %d", ErrMalformedOptions, int(kind))
	}
	return nil
}

// Slide is one unit of displayed content. Slides are values: the body is
// kept exactly as authored and never changes after construction.
type Slide struct {
	kind     Kind
	body     string
	headline string
	language string
}

// NewSlide validates opts against kind and returns the slide.
func NewSlide(kind Kind, body string, opts Options) (Slide, error) {
	if err := opts.validate(kind, body); err != nil {
		return Slide{}, err
	}
	return Slide{
		kind:     kind,
		body:     body,
		headline: opts.Headline,
		language: opts.Language,
	}, nil
}

func (s Slide) Kind() Kind       { return s.kind }
func (s Slide) Body() string     { return s.body }
func (s Slide) Language() string { return s.language }

// Headline returns the secondary heading and whether one was set.
func (s Slide) Headline() (string, bool) {
	return s.headline, s.headline != ""
}
