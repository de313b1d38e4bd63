package model

// SelectionResult is the outcome of validating a selection.
// A non-match is a value, not an error.
type SelectionResult struct {
	Matched     bool        `json:"matched"`
	Word        string      `json:"word,omitempty"`
	Orientation Orientation `json:"orientation,omitempty"`
	Span        []Position  `json:"span,omitempty"`
}

// NoMatch is the result for any selection that does not confirm a word
func NoMatch() SelectionResult {
	return SelectionResult{}
}
