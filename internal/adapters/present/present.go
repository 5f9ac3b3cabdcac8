// Package present renders catalog views as plain text for terminals and
// text/plain HTTP responses.
package present

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/okian/artistly/internal/domain/filter"
	"github.com/okian/artistly/internal/domain/model"
	"github.com/okian/artistly/internal/domain/vocab"
)

// Mode selects the card layout.
type Mode string

const (
	ModeGrid Mode = "grid"
	ModeList Mode = "list"
)

const (
	gridCategories = 3
	listCategories = 2
	bioPreview     = 120

	verifiedMark = "✓"
	checkedBox   = "[x]"
	uncheckedBox = "[ ]"
)

// ParseMode accepts grid or list, case-insensitively. Empty means grid.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeGrid:
		return ModeGrid, nil
	case ModeList:
		return ModeList, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Sidebar is the facet panel shown next to the results.
type Sidebar struct {
	Vocabulary *vocab.Vocabulary
	Filters    *filter.State
}

// View is everything Render needs for one page.
type View struct {
	Mode    Mode
	Artists []model.Artist
	// Total is the catalog size before filtering.
	Total   int
	Sidebar *Sidebar
}

// Empty reports whether the view has no matching artists.
func (v View) Empty() bool { return len(v.Artists) == 0 }

// ResultLine returns the "Showing N artist(s)" header.
func ResultLine(n int) string {
	p := message.NewPrinter(language.English)
	if n == 1 {
		return p.Sprintf("Showing %d artist", n)
	}
	return p.Sprintf("Showing %d artists", n)
}

// Render writes v to w.
func Render(w io.Writer, v View) error {
	r := newRenderer(w)

	if v.Sidebar != nil {
		r.sidebar(v.Sidebar)
		r.line("")
	}

	if v.Total > 0 {
		r.printf("%s of %d\n", ResultLine(len(v.Artists)), v.Total)
	} else {
		r.line(ResultLine(len(v.Artists)))
	}
	r.line("")

	if v.Empty() {
		r.line("No artists found")
		r.line("Try adjusting your filters or search terms")
		r.line("Clear all filters to see every artist")
		return r.err
	}

	for i, a := range v.Artists {
		if v.Mode == ModeList {
			r.listCard(a)
			continue
		}
		if i > 0 {
			r.line("")
		}
		r.gridCard(a)
	}
	return r.err
}

// RenderSidebar writes only the facet panel.
func RenderSidebar(w io.Writer, s Sidebar) error {
	r := newRenderer(w)
	r.sidebar(&s)
	return r.err
}

type renderer struct {
	w     io.Writer
	p     *message.Printer
	title cases.Caser
	err   error
}

func newRenderer(w io.Writer) *renderer {
	return &renderer{
		w:     w,
		p:     message.NewPrinter(language.English),
		title: cases.Title(language.English),
	}
}

func (r *renderer) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = r.p.Fprintf(r.w, format, args...)
}

func (r *renderer) line(s string) {
	if r.err != nil {
		return
	}
	_, r.err = io.WriteString(r.w, s+"\n")
}

func (r *renderer) gridCard(a model.Artist) {
	r.printf("%s %s%s\n", avatar(a), a.Name, verified(a))
	r.printf("  ★ %.1f (%d reviews) · %s\n", a.Rating, a.ReviewCount, a.Location)
	r.printf("  %s\n", badges(a.Categories, gridCategories))
	if a.Bio != "" {
		r.printf("  %s\n", truncate(a.Bio, bioPreview))
	}
	r.printf("  %s\n", a.FeeRange)
}

func (r *renderer) listCard(a model.Artist) {
	r.printf("%s %s%s  ★ %.1f (%d) · %s · %s  %s\n",
		avatar(a), a.Name, verified(a), a.Rating, a.ReviewCount, a.Location, a.FeeRange,
		badges(a.Categories, listCategories))
}

var facetHeadings = []struct { //nolint:gochecknoglobals // sidebar layout
	facet vocab.Facet
	label string
}{
	{vocab.FacetCategory, "category"},
	{vocab.FacetLocation, "location"},
	{vocab.FacetFeeRange, "price range"},
}

func (r *renderer) sidebar(s *Sidebar) {
	active := 0
	if s.Filters != nil {
		active = s.Filters.ActiveCount()
	}
	if active > 0 {
		r.printf("Filters (%d active)\n", active)
		chips := s.Filters.ActiveValues()
		values := make([]string, 0, len(chips))
		for _, c := range chips {
			values = append(values, c.Value+" ×")
		}
		r.printf("  %s\n", strings.Join(values, "  "))
		r.line("  Clear All")
	} else {
		r.line("Filters")
	}

	if s.Vocabulary == nil {
		return
	}
	for _, h := range facetHeadings {
		r.line("")
		r.line(r.title.String(h.label))
		for _, value := range s.Vocabulary.Values(h.facet) {
			mark := uncheckedBox
			if s.Filters != nil && s.Filters.Has(h.facet, value) {
				mark = checkedBox
			}
			r.printf("  %s %s\n", mark, value)
		}
	}
}

func avatar(a model.Artist) string {
	if a.Image != "" {
		return "◉"
	}
	first, _ := utf8.DecodeRuneInString(strings.TrimSpace(a.Name))
	if first == utf8.RuneError {
		return "?"
	}
	return string(unicode.ToUpper(first))
}

func verified(a model.Artist) string {
	if a.IsVerified {
		return " " + verifiedMark
	}
	return ""
}

// badges renders at most limit categories and a "+N" overflow badge.
func badges(categories []string, limit int) string {
	shown := categories
	if len(shown) > limit {
		shown = shown[:limit]
	}
	parts := make([]string, 0, len(shown)+1)
	for _, c := range shown {
		parts = append(parts, "["+c+"]")
	}
	if extra := len(categories) - len(shown); extra > 0 {
		parts = append(parts, fmt.Sprintf("+%d", extra))
	}
	return strings.Join(parts, " ")
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:limit])) + "…"
}
