package page

import "math"

type Kind int

const (
	KindHero Kind = iota
	KindRail
	KindReveal
	KindChapter
	KindFooter
)

// Link is an inline link inside a section body.
type Link struct {
	Text string
	Href string
}

type Section struct {
	ID    string
	Kind  Kind
	Rect  Rect
	Title string
	Body  []string
	Links []Link
}

// Layout is the laid out buy page.
type Layout struct {
	Width, Height float64
	Sections      []Section
}

// Nav entries shown in the menu overlay.
var Nav = []Link{
	{Text: "The book", Href: "#bp-hero"},
	{Text: "Inside", Href: "#bp-sections"},
	{Text: "Praise", Href: "#bp-praise"},
	{Text: "Read chapter 1", Href: "#bp-chapter"},
	{Text: "Account", Href: "#/portal/account"},
}

const (
	railHeight    = 180
	revealHeight  = 220
	footerHeight  = 120
	sectionGap    = 48
	chapterMargin = 64
	lineHeight    = 18
)

var chapter = []string{
	"The night the observatory closed, Ada counted sixty-five lights over the harbour.",
	"Each one drifted a little, as if the sky itself was breathing (see note 1).",
	"She drew lines between the near ones and the chart began to look like a map.",
	"The keeper had written that stars only mean something when you connect them.",
	"By morning the lines were gone, but the map stayed with her (see note 2).",
	"Years later she would find the same pattern in a ledger, a tide table, a letter.",
	"Everything that moves slowly enough can be read, if you are patient.",
	"This is a story about being patient.",
}

// Build lays the page out for a window of the given size. The hero fills the
// first viewport; everything else stacks below it.
func Build(width, height float64) *Layout {
	l := &Layout{Width: width}
	y := 0.0
	add := func(s Section, h float64) {
		s.Rect = Rect{X: 0, Y: y, W: width, H: h}
		l.Sections = append(l.Sections, s)
		y += h + sectionGap
	}

	add(Section{
		ID:    "bp-hero",
		Kind:  KindHero,
		Title: "Sixty-Five Lights",
		Body:  []string{"A novel about maps, patience and the sky.", "Hardcover, ebook and audio."},
	}, height)
	add(Section{
		ID:    "bp-sections",
		Kind:  KindRail,
		Title: "Inside the book",
		Body: []string{
			"I. The Harbour", "II. The Keeper", "III. The Ledger", "IV. Tides",
			"V. Letters", "VI. The Chart", "VII. Morning", "VIII. Patience",
		},
	}, railHeight)
	for i, quote := range []string{
		"\"Quietly astonishing.\" - The Review",
		"\"A book that rewards slow reading.\" - Evening Post",
		"\"I connected every line.\" - A reader",
	} {
		id := "bp-praise"
		if i > 0 {
			id = "bp-praise-" + string(rune('1'+i))
		}
		add(Section{ID: id, Kind: KindReveal, Title: "Praise", Body: []string{quote}}, revealHeight)
	}
	add(Section{
		ID:    "bp-chapter",
		Kind:  KindChapter,
		Title: "Chapter 1 - The Harbour",
		Body:  chapter,
		Links: []Link{
			{Text: "note 1", Href: "#bp-footer"},
			{Text: "note 2", Href: "#bp-footer"},
			{Text: "the keeper", Href: "#bp-sections"},
		},
	}, math.Max(height, float64(len(chapter)*lineHeight*3+chapterMargin*2)))
	add(Section{
		ID:    "bp-footer",
		Kind:  KindFooter,
		Title: "Notes",
		Body:  []string{"1. The harbour is fictional.", "2. The map is not."},
	}, footerHeight)

	l.Height = y - sectionGap
	return l
}

// Find returns the section with the given id.
func (l *Layout) Find(id string) (Section, bool) {
	for _, s := range l.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// MaxScroll is the largest scroll offset for a viewport height.
func (l *Layout) MaxScroll(viewportHeight float64) float64 {
	return math.Max(0, l.Height-viewportHeight)
}

// SectionAt returns the section containing the document point.
func (l *Layout) SectionAt(x, y float64) (Section, bool) {
	for _, s := range l.Sections {
		if s.Rect.Contains(x, y) {
			return s, true
		}
	}
	return Section{}, false
}
