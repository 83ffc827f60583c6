// Package dictionary holds the read-only word dictionary consulted by the assistant.
package dictionary

import (
	"fmt"
	"sort"
	"strings"
)

// Entry is the meaning of a word and, optionally, its canonical gematria value.
type Entry struct {
	Meaning  string `yaml:"meaning" json:"meaning" validate:"required"`
	Gematria *int   `yaml:"gematria,omitempty" json:"gematria,omitempty" validate:"omitempty,gte=0"`
}

// HasGematria reports whether the entry carries a canonical gematria value.
func (e Entry) HasGematria() bool {
	return e.Gematria != nil && *e.Gematria != 0
}

// Dictionary is an immutable mapping from lowercase word to Entry.
type Dictionary struct {
	entries map[string]Entry
}

// Key normalizes a lookup word: surrounding whitespace is trimmed and the
// whole input is lowercased.
func Key(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// New copies entries into a Dictionary keyed by Key(word).
// Words sharing a Key keep the entry of the first word in byte order;
// sources reject such words with Duplicates before calling New.
func New(entries map[string]Entry) Dictionary {
	copied := make(map[string]Entry, len(entries))
	for _, word := range sortedWords(entries) {
		key := Key(word)
		if _, ok := copied[key]; ok {
			continue
		}
		entry := entries[word]
		if entry.Gematria != nil {
			v := *entry.Gematria
			entry.Gematria = &v
		}
		copied[key] = entry
	}
	return Dictionary{entries: copied}
}

// Duplicates describes every word whose Key is already taken by an
// earlier word in byte order, as "entry X duplicates Y".
func Duplicates(entries map[string]Entry) []string {
	var problems []string
	first := make(map[string]string, len(entries))
	for _, word := range sortedWords(entries) {
		key := Key(word)
		if prev, ok := first[key]; ok {
			problems = append(problems, fmt.Sprintf("entry %q duplicates %q", word, prev))
			continue
		}
		first[key] = word
	}
	return problems
}

func sortedWords(entries map[string]Entry) []string {
	words := make([]string, 0, len(entries))
	for word := range entries {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}

// Lookup finds the entry for the whole input, case-insensitively.
func (d Dictionary) Lookup(word string) (Entry, bool) {
	entry, ok := d.entries[Key(word)]
	if !ok {
		return Entry{}, false
	}
	if entry.Gematria != nil {
		v := *entry.Gematria
		entry.Gematria = &v
	}
	return entry, true
}

// Len returns the number of words.
func (d Dictionary) Len() int {
	return len(d.entries)
}

// Words returns all words in alphabetical order.
func (d Dictionary) Words() []string {
	words := make([]string, 0, len(d.entries))
	for word := range d.entries {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}

// Entries returns a copy of the underlying mapping.
func (d Dictionary) Entries() map[string]Entry {
	copied := make(map[string]Entry, len(d.entries))
	for _, word := range d.Words() {
		copied[word], _ = d.Lookup(word)
	}
	return copied
}
