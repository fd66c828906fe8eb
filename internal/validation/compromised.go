package validation

import (
	_ "embed"
	"strings"
	"sync"
)

//go:embed corpus.txt
var corpusRaw string

// Corpus is an in-memory set of known-compromised passwords.
type Corpus struct {
	entries map[string]struct{}
}

var (
	embedded     *Corpus
	embeddedOnce sync.Once
)

// EmbeddedCorpus returns the corpus bundled with the binary. It is
// parsed once and shared.
func EmbeddedCorpus() *Corpus {
	embeddedOnce.Do(func() {
		embedded = NewCorpus(strings.Split(corpusRaw, "\n"))
	})
	return embedded
}

// NewCorpus builds a corpus from a list of passwords. Blank lines are
// ignored.
func NewCorpus(passwords []string) *Corpus {
	entries := make(map[string]struct{}, len(passwords))
	for _, pw := range passwords {
		pw = strings.TrimSpace(pw)
		if pw == "" {
			continue
		}
		entries[pw] = struct{}{}
	}
	return &Corpus{entries: entries}
}

// Compromised reports whether the password appears in the corpus.
func (c *Corpus) Compromised(password string) bool {
	_, found := c.entries[password]
	return found
}
