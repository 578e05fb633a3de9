package verse

import (
	"errors"
	"fmt"
)

// Canon lists the 66 books in canonical order, as they appear in references.
var Canon = []string{
	// Old Testament
	"Genesis", "Exodus", "Leviticus", "Numbers", "Deuteronomy",
	"Joshua", "Judges", "Ruth", "1 Samuel", "2 Samuel",
	"1 Kings", "2 Kings", "1 Chronicles", "2 Chronicles", "Ezra",
	"Nehemiah", "Esther", "Job", "Psalms", "Proverbs",
	"Ecclesiastes", "Song of Solomon", "Isaiah", "Jeremiah", "Lamentations",
	"Ezekiel", "Daniel", "Hosea", "Joel", "Amos",
	"Obadiah", "Jonah", "Micah", "Nahum", "Habakkuk",
	"Zephaniah", "Haggai", "Zechariah", "Malachi",
	// New Testament
	"Matthew", "Mark", "Luke", "John", "Acts",
	"Romans", "1 Corinthians", "2 Corinthians", "Galatians", "Ephesians",
	"Philippians", "Colossians", "1 Thessalonians", "2 Thessalonians", "1 Timothy",
	"2 Timothy", "Titus", "Philemon", "Hebrews", "James",
	"1 Peter", "2 Peter", "1 John", "2 John", "3 John",
	"Jude", "Revelation",
}

var canonIndex = func() map[string]int {
	m := make(map[string]int, len(Canon))
	for i, b := range Canon {
		m[b] = i
	}
	return m
}()

var (
	ErrUnknownBook  = errors.New("book is not in the canon")
	ErrInvalidVerse = errors.New("chapter and verse must be at least 1")
)

// IsCanonical reports whether book is one of the 66 canonical names.
func IsCanonical(book string) bool {
	_, ok := canonIndex[book]
	return ok
}

// Context is the scripture locus currently under discussion.
type Context struct {
	Book    string `json:"book" validate:"required"`
	Chapter int    `json:"chapter" validate:"gte=1"`
	Verse   int    `json:"verse" validate:"gte=1"`
}

func New(book string, chapter, verse int) (*Context, error) {
	c := &Context{Book: book, Chapter: chapter, Verse: verse}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c Context) Validate() error {
	if !IsCanonical(c.Book) {
		return fmt.Errorf("%w: %q", ErrUnknownBook, c.Book)
	}
	if c.Chapter < 1 || c.Verse < 1 {
		return ErrInvalidVerse
	}
	return nil
}

// String renders "Book Chapter:Verse".
func (c Context) String() string {
	return fmt.Sprintf("%s %d:%d", c.Book, c.Chapter, c.Verse)
}
