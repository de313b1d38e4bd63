package generator

import (
	"github.com/mcoot/wordsearchgame-go/internal/dependencies/random"
	"github.com/mcoot/wordsearchgame-go/internal/model"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// placement holds the in-progress state of one Generate call
type placement struct {
	grid       *model.Grid
	bank       model.WordBank
	candidates []string
	used       map[string]bool
	shortest   int
	random     random.Random
	maxDraws   int
	onPlace    PlacementFunc
}

func newPlacement(size int, candidates []string, rnd random.Random, maxDraws int, onPlace PlacementFunc) *placement {
	shortest := size
	for _, w := range candidates {
		if len(w) < shortest {
			shortest = len(w)
		}
	}
	return &placement{
		grid:       model.NewGrid(size),
		candidates: candidates,
		used:       make(map[string]bool),
		shortest:   shortest,
		random:     rnd,
		maxDraws:   maxDraws,
		onPlace:    onPlace,
	}
}

// exhausted is true once every candidate has been placed
func (p *placement) exhausted() bool {
	return len(p.used) >= len(p.candidates)
}

// drawWord picks a random unused candidate no longer than maxLen.
// Gives up after maxDraws attempts.
func (p *placement) drawWord(maxLen int) (string, bool) {
	if maxLen < p.shortest {
		return "", false
	}
	for attempt := 0; attempt < p.maxDraws; attempt++ {
		if p.exhausted() {
			return "", false
		}
		word := p.candidates[p.random.Intn(len(p.candidates))]
		if p.used[word] || len(word) > maxLen {
			continue
		}
		return word, true
	}
	return "", false
}

// fits reports whether a run lies on the grid and touches no placed letter
func (p *placement) fits(anchor model.Position, o model.Orientation, length int) bool {
	for _, pos := range model.Span(anchor, o, length) {
		if !p.grid.IsValidPosition(pos) || !p.grid.IsEmpty(pos) {
			return false
		}
	}
	return true
}

func (p *placement) place(word string, anchor model.Position, o model.Orientation) {
	for i, pos := range model.Span(anchor, o, len(word)) {
		p.grid.SetLetter(pos, rune(word[i]))
	}
	placed := model.PlacedWord{
		Word:        word,
		Orientation: o,
		Anchor:      anchor,
	}
	p.bank.Add(placed)
	p.used[word] = true
	if p.onPlace != nil {
		p.onPlace(placed)
	}
}

// placeBands fills bands of rows (or columns), every spacing lines. Within
// a band, words are drawn at random offsets at or past the end of the last
// placement until the band runs out of room or the draw budget is spent.
// A draw whose span collides is abandoned and the next one tried. Row
// bands stop after their first word.
func (p *placement) placeBands(o model.Orientation, spacing int) {
	size := p.grid.Size
	for band := 0; band < size; band += spacing {
		cursor := 0
		for attempt := 0; attempt < p.maxDraws && cursor < size; attempt++ {
			if p.exhausted() {
				return
			}
			word, ok := p.drawWord(min(size-cursor, size-1))
			if !ok {
				break
			}
			offset := cursor + p.random.Intn(size-cursor-len(word)+1)

			anchor := model.Position{Row: band, Col: offset}
			if o == model.OrientationColumn {
				anchor = model.Position{Row: offset, Col: band}
			}
			if !p.fits(anchor, o, len(word)) {
				continue
			}
			p.place(word, anchor, o)
			if o == model.OrientationRow {
				break
			}
			cursor = offset + len(word)
		}
	}
}

// placeDiagonals visits every start cell and places a word wherever one
// fits on the grid without touching a placed letter
func (p *placement) placeDiagonals(o model.Orientation) {
	size := p.grid.Size
	for row := 0; row < size; row++ {
		for i := 0; i < size; i++ {
			if p.exhausted() {
				return
			}
			col := i
			if o == model.OrientationBackwardDiagonal {
				col = size - 1 - i
			}
			anchor := model.Position{Row: row, Col: col}
			if !p.grid.IsEmpty(anchor) {
				continue
			}
			word, ok := p.drawWord(diagonalRoom(anchor, o, size))
			if !ok || !p.fits(anchor, o, len(word)) {
				continue
			}
			p.place(word, anchor, o)
		}
	}
}

// diagonalRoom is the longest diagonal run from anchor that stays on the grid
func diagonalRoom(anchor model.Position, o model.Orientation, size int) int {
	down := size - anchor.Row
	across := size - anchor.Col
	if o == model.OrientationBackwardDiagonal {
		across = anchor.Col + 1
	}
	return min(down, across)
}

// fill writes a random letter into every empty cell
func (p *placement) fill() {
	for row := 0; row < p.grid.Size; row++ {
		for col := 0; col < p.grid.Size; col++ {
			pos := model.Position{Row: row, Col: col}
			if p.grid.IsEmpty(pos) {
				p.grid.SetLetter(pos, rune(alphabet[p.random.Intn(len(alphabet))]))
			}
		}
	}
}
