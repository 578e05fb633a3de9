package reference

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"niv-scholar-be/pkg/scholar/verse"
)

// Reference is one scripture citation found in text.
type Reference struct {
	Label    string `json:"label"`
	Book     string `json:"book"`
	Chapter  int    `json:"chapter"`
	Verse    int    `json:"verse"`
	EndVerse int    `json:"end_verse,omitempty"` // 0 unless a range like 8-9
	Start    int    `json:"start"`               // byte offset in the source text
	End      int    `json:"end"`
}

// Context is the verse context a reader lands on when following the citation.
// Ranges land on their first verse.
func (r Reference) Context() verse.Context {
	return verse.Context{Book: r.Book, Chapter: r.Chapter, Verse: r.Verse}
}

// Segment is a run of plain text or a single reference marker.
type Segment struct {
	Text      string     `json:"text"`
	Reference *Reference `json:"reference,omitempty"`
}

var ErrNotAReference = errors.New("not a scripture reference")

// citationPattern matches "Book Chapter:Verse[-Verse]" for canonical books only.
var citationPattern, labelPattern = func() (*regexp.Regexp, *regexp.Regexp) {
	books := make([]string, len(verse.Canon))
	for i, b := range verse.Canon {
		books[i] = regexp.QuoteMeta(b)
	}
	core := `(` + strings.Join(books, "|") + `)\s(\d+):(\d+)(?:-(\d+))?`
	return regexp.MustCompile(`\b(?:` + core + `)`), regexp.MustCompile(`^` + core + `$`)
}()

// Find returns every citation in text in order of appearance.
func Find(text string) []Reference {
	matches := citationPattern.FindAllStringSubmatchIndex(text, -1)
	refs := make([]Reference, 0, len(matches))
	for _, m := range matches {
		ref, ok := build(text, m)
		if ok {
			refs = append(refs, ref)
		}
	}
	return refs
}

func build(text string, m []int) (Reference, bool) {
	chapter, err := strconv.Atoi(text[m[4]:m[5]])
	if err != nil {
		return Reference{}, false
	}
	v, err := strconv.Atoi(text[m[6]:m[7]])
	if err != nil {
		return Reference{}, false
	}
	ref := Reference{
		Label:   text[m[0]:m[1]],
		Book:    text[m[2]:m[3]],
		Chapter: chapter,
		Verse:   v,
		Start:   m[0],
		End:     m[1],
	}
	if m[8] >= 0 {
		if end, err := strconv.Atoi(text[m[8]:m[9]]); err == nil {
			ref.EndVerse = end
		}
	}
	return ref, true
}

// Segments splits text into plain runs and reference markers. Concatenating the
// Text of every segment gives back the input unchanged.
func Segments(text string) []Segment {
	refs := Find(text)
	segments := make([]Segment, 0, len(refs)*2+1)
	cursor := 0
	for i := range refs {
		ref := refs[i]
		if ref.Start > cursor {
			segments = append(segments, Segment{Text: text[cursor:ref.Start]})
		}
		segments = append(segments, Segment{Text: ref.Label, Reference: &ref})
		cursor = ref.End
	}
	if cursor < len(text) {
		segments = append(segments, Segment{Text: text[cursor:]})
	}
	return segments
}

// Linkify rewrites every citation with mark, leaving surrounding text alone.
func Linkify(text string, mark func(Reference) string) string {
	var b strings.Builder
	for _, s := range Segments(text) {
		if s.Reference != nil {
			b.WriteString(mark(*s.Reference))
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}

// Parse reads a single label such as "1 John 4:9" or "Ephesians 2:8-9".
func Parse(label string) (*Reference, error) {
	label = strings.TrimSpace(label)
	m := labelPattern.FindStringSubmatchIndex(label)
	if m == nil {
		return nil, ErrNotAReference
	}
	ref, ok := build(label, m)
	if !ok {
		return nil, ErrNotAReference
	}
	return &ref, nil
}
