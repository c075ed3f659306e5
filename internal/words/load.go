// apps/go-server/internal/words/load.go
//
// Loading of the Spanish and English dictionaries.
//
// For each language:
//   1. If a file path is configured (WORDS_SPANISH_FILE / WORDS_ENGLISH_FILE),
//      read one word per line from it.
//   2. Otherwise fall back to the list embedded in the assets package.
//      The embedded lists are small samples for development and tests; real
//      play needs full lists configured through the file variables.
//
// Lines are trimmed and lowercased; blank lines and "#" comments are skipped.

package words

import (
	"errors"
	"fmt"
	"os"

	"github.com/robalobadob/games/apps/go-server/assets"
)

// Catalog holds the two language sets the server validates against.
type Catalog struct {
	Spanish *Set
	English *Set

	embedded []string // languages loaded from the embedded samples
}

// Sources configures where each language list is read from.
// Empty paths select the embedded defaults.
type Sources struct {
	SpanishFile string
	EnglishFile string
}

// Load builds a Catalog from src.
// Returns an error if a configured file cannot be read or both lists are empty.
func Load(src Sources) (*Catalog, error) {
	es, err := loadList(src.SpanishFile, assets.SpanishList)
	if err != nil {
		return nil, fmt.Errorf("words: spanish list: %w", err)
	}
	en, err := loadList(src.EnglishFile, assets.EnglishList)
	if err != nil {
		return nil, fmt.Errorf("words: english list: %w", err)
	}

	c := &Catalog{
		Spanish: NewSet("es", es),
		English: NewSet("en", en),
	}
	if src.SpanishFile == "" {
		c.embedded = append(c.embedded, c.Spanish.Name())
	}
	if src.EnglishFile == "" {
		c.embedded = append(c.embedded, c.English.Name())
	}
	if c.Spanish.Len() == 0 && c.English.Len() == 0 {
		return nil, errors.New("words: both dictionaries are empty")
	}
	return c, nil
}

func loadList(path string, fallback func() ([]string, error)) ([]string, error) {
	if path == "" {
		return fallback()
	}
	return readWordFile(path)
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return assets.ReadLines(f)
}

// Dictionary returns the union of both languages; the validator does not
// care which one matched.
func (c *Catalog) Dictionary() Dictionary {
	return Union{c.Spanish, c.English}
}

// Stats returns counts of loaded words: (spanish, english).
func (c *Catalog) Stats() (spanish int, english int) {
	return c.Spanish.Len(), c.English.Len()
}

// Embedded lists the languages served from the built-in sample lists.
func (c *Catalog) Embedded() []string {
	return append([]string(nil), c.embedded...)
}
