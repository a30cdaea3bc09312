// Package corpus loads the reference corpus: the full source text of
// each book, split into ordered sentences.
package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// AllBooksKey names the synthetic entry holding every book's sentences
// concatenated, for callers scoring against the whole corpus.
const AllBooksKey = "all_books"

// Corpus maps a normalized book title to its ordered sentences.
type Corpus struct {
	books map[string][]string
}

// NormalizeTitle canonicalizes a book identifier: trimmed, lower-cased,
// inner whitespace collapsed to underscores. "Aeneid Book3" and
// "aeneid_book3" key the same book.
func NormalizeTitle(title string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(title)))
	return strings.Join(fields, "_")
}

// Load reads a JSON mapping of book title to sentence list and builds
// the normalized index plus the synthetic all-books entry.
func Load(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse corpus: %w", err)
	}
	return FromMap(raw)
}

// FromMap builds a corpus from an in-memory title-to-sentences mapping.
func FromMap(raw map[string][]string) (*Corpus, error) {
	books := make(map[string][]string, len(raw)+1)
	titles := make([]string, 0, len(raw))
	for title, sentences := range raw {
		normalized := NormalizeTitle(title)
		if normalized == "" {
			return nil, fmt.Errorf("corpus has a book with an empty title")
		}
		if normalized == AllBooksKey {
			return nil, fmt.Errorf("corpus book title %q collides with the synthetic all-books entry", title)
		}
		if _, dup := books[normalized]; dup {
			return nil, fmt.Errorf("corpus has two books normalizing to %q", normalized)
		}
		books[normalized] = append([]string(nil), sentences...)
		titles = append(titles, normalized)
	}
	sort.Strings(titles)
	var all []string
	for _, title := range titles {
		all = append(all, books[title]...)
	}
	books[AllBooksKey] = all
	return &Corpus{books: books}, nil
}

// Sentences returns the ordered sentences for a (possibly unnormalized)
// book title.
func (c *Corpus) Sentences(title string) ([]string, bool) {
	sentences, ok := c.books[NormalizeTitle(title)]
	return sentences, ok
}

// Titles returns the normalized book titles, sorted, without the
// synthetic entry.
func (c *Corpus) Titles() []string {
	titles := make([]string, 0, len(c.books)-1)
	for title := range c.books {
		if title == AllBooksKey {
			continue
		}
		titles = append(titles, title)
	}
	sort.Strings(titles)
	return titles
}
