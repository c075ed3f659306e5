// Package assets embeds the default dictionaries shipped with the server.
//
// es.txt and en.txt are short samples so the binary runs without setup.
// Production deployments point WORDS_SPANISH_FILE and WORDS_ENGLISH_FILE
// at complete one-word-per-line lists.
package assets

import (
	"bufio"
	"embed"
	"io"
	"strings"
)

//go:embed es.txt en.txt
var FS embed.FS

// ReadLines parses a word list: one word per line, blank lines and
// "#" comments skipped, everything lowercased.
func ReadLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

func readEmbedded(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}

// SpanishList returns the embedded Spanish word list.
func SpanishList() ([]string, error) {
	return readEmbedded("es.txt")
}

// EnglishList returns the embedded English word list.
func EnglishList() ([]string, error) {
	return readEmbedded("en.txt")
}
