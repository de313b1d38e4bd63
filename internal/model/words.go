package model

import (
	"sort"
	"strings"
)

// PlacedWord is a word embedded in the grid
type PlacedWord struct {
	Word        string      `json:"word"` // Lowercase
	Orientation Orientation `json:"orientation"`
	Anchor      Position    `json:"anchor"` // First letter
	Found       bool        `json:"found"`
}

// Span returns the cells the word occupies, anchor first
func (w PlacedWord) Span() []Position {
	return Span(w.Anchor, w.Orientation, len(w.Word))
}

// WordBank holds the placed words of a game in placement order
type WordBank struct {
	Words []PlacedWord `json:"words"`
}

// Len returns the number of placed words
func (b *WordBank) Len() int {
	return len(b.Words)
}

// Add appends a placed word
func (b *WordBank) Add(w PlacedWord) {
	b.Words = append(b.Words, w)
}

// FirstUnfound returns the first unfound word equal to candidate, ignoring case
func (b *WordBank) FirstUnfound(candidate string) (PlacedWord, bool) {
	for _, w := range b.Words {
		if !w.Found && strings.EqualFold(w.Word, candidate) {
			return w, true
		}
	}
	return PlacedWord{}, false
}

// MarkFound flips the first unfound entry for word to found.
// Returns false if no such entry exists.
func (b *WordBank) MarkFound(word string) bool {
	for i := range b.Words {
		if !b.Words[i].Found && strings.EqualFold(b.Words[i].Word, word) {
			b.Words[i].Found = true
			return true
		}
	}
	return false
}

// FoundCount returns how many words have been found
func (b *WordBank) FoundCount() int {
	count := 0
	for _, w := range b.Words {
		if w.Found {
			count++
		}
	}
	return count
}

// AllFound returns true once a non-empty bank is fully found
func (b *WordBank) AllFound() bool {
	return len(b.Words) > 0 && b.FoundCount() == len(b.Words)
}

// Sorted returns the words in alphabetical order
func (b *WordBank) Sorted() []PlacedWord {
	sorted := make([]PlacedWord, len(b.Words))
	copy(sorted, b.Words)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Word < sorted[j].Word
	})
	return sorted
}

// Clone returns a copy of the bank
func (b WordBank) Clone() WordBank {
	words := make([]PlacedWord, len(b.Words))
	copy(words, b.Words)
	return WordBank{Words: words}
}
