package reference

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantLabels []string
	}{
		{
			name:       "no references",
			text:       "Grace is unmerited favor.",
			wantLabels: []string{},
		},
		{
			name:       "two references",
			text:       "Compare John 3:16 with Romans 5:8 for a start.",
			wantLabels: []string{"John 3:16", "Romans 5:8"},
		},
		{
			name:       "numbered book wins over its suffix",
			text:       "See 1 John 4:9.",
			wantLabels: []string{"1 John 4:9"},
		},
		{
			name:       "verse range",
			text:       "Ephesians 2:8-9 is central.",
			wantLabels: []string{"Ephesians 2:8-9"},
		},
		{
			name:       "multi word book",
			text:       "Song of Solomon 2:4 speaks of a banner.",
			wantLabels: []string{"Song of Solomon 2:4"},
		},
		{
			name:       "non canonical book is ignored",
			text:       "Hezekiah 3:16 does not exist.",
			wantLabels: []string{},
		},
		{
			name:       "chapter without verse is ignored",
			text:       "Read John 3 tonight.",
			wantLabels: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refs := Find(tt.text)
			labels := make([]string, 0, len(refs))
			for _, r := range refs {
				labels = append(labels, r.Label)
				assert.Equal(t, r.Label, tt.text[r.Start:r.End])
			}
			assert.Equal(t, tt.wantLabels, labels)
		})
	}
}

func TestFindParsesParts(t *testing.T) {
	refs := Find("Ephesians 2:8-9")
	require.Len(t, refs, 1)
	assert.Equal(t, "Ephesians", refs[0].Book)
	assert.Equal(t, 2, refs[0].Chapter)
	assert.Equal(t, 8, refs[0].Verse)
	assert.Equal(t, 9, refs[0].EndVerse)
	assert.Equal(t, "Ephesians 2:8", refs[0].Context().String())
}

func TestSegmentsPreserveText(t *testing.T) {
	text := "God's love in John 3:16 and Romans 5:8, friend."
	segments := Segments(text)

	var rebuilt strings.Builder
	var markers []string
	for _, s := range segments {
		rebuilt.WriteString(s.Text)
		if s.Reference != nil {
			markers = append(markers, s.Text)
		}
	}

	assert.Equal(t, text, rebuilt.String())
	assert.Equal(t, []string{"John 3:16", "Romans 5:8"}, markers)
}

func TestLinkify(t *testing.T) {
	out := Linkify("Read John 3:16 and Romans 5:8.", func(r Reference) string {
		return fmt.Sprintf("[%s]", r.Label)
	})
	assert.Equal(t, "Read [John 3:16] and [Romans 5:8].", out)
}

func TestParse(t *testing.T) {
	tests := []struct {
		label   string
		book    string
		chapter int
		verse   int
		wantErr bool
	}{
		{"John 3:16", "John", 3, 16, false},
		{" 1 John 4:9 ", "1 John", 4, 9, false},
		{"Ephesians 2:8-9", "Ephesians", 2, 8, false},
		{"John 3", "", 0, 0, true},
		{"see John 3:16", "", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			ref, err := Parse(tt.label)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNotAReference)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.book, ref.Book)
			assert.Equal(t, tt.chapter, ref.Chapter)
			assert.Equal(t, tt.verse, ref.Verse)
		})
	}
}
