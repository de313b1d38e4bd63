// Package components holds the page fragments
package components

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/mcoot/wordsearchgame-go/internal/model"
	"github.com/mcoot/wordsearchgame-go/internal/web/viewmodel"
)

// Grid renders the letter grid, or a notice while the game is paused
func Grid(page viewmodel.GamePage) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if page.Paused() {
			_, err := io.WriteString(w, `<p id="paused">Game paused. Resume to see the grid.</p>`)
			return err
		}

		var b strings.Builder
		fmt.Fprintf(&b, `<table id="grid" class="grid" data-size="%d">`, page.GridSize)
		for _, row := range page.Rows {
			b.WriteString("<tr>")
			for _, cell := range row {
				fmt.Fprintf(&b, `<td class="cell%s" data-row="%d" data-col="%d">%s</td>`,
					cellClass(cell.State), cell.Row, cell.Col, templ.EscapeString(cell.Letter))
			}
			b.WriteString("</tr>")
		}
		b.WriteString("</table>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func cellClass(state model.CellState) string {
	switch state {
	case model.CellSelected:
		return " selected"
	case model.CellFound:
		return " found"
	default:
		return ""
	}
}

// WordBank renders the words to find, striking through found ones
func WordBank(words []viewmodel.Word) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<ul id="word-bank">`)
		for _, word := range words {
			text := templ.EscapeString(word.Text)
			if word.Found {
				fmt.Fprintf(&b, `<li class="found"><s>%s</s></li>`, text)
			} else {
				fmt.Fprintf(&b, `<li>%s</li>`, text)
			}
		}
		b.WriteString("</ul>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// Status renders the tier, progress and timer line
func Status(page viewmodel.GamePage) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<p id="status"><span id="tier">%s</span> · <span id="progress">%d / %d words found</span> · <span id="timer">%s</span> · <span id="state">%s</span></p>`,
			templ.EscapeString(page.Tier), page.Found, page.Total,
			templ.EscapeString(page.Elapsed), templ.EscapeString(string(page.State)))
		return err
	})
}
