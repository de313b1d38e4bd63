package components

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/mcoot/wordsearchgame-go/internal/web/viewmodel"
)

// ScoreTable renders one tier's completion times, fastest first
func ScoreTable(table viewmodel.ScoreTable) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, `<section class="board" id="%s"><h2>%s</h2>`,
			templ.EscapeString(table.ID), templ.EscapeString(table.Tier))
		if len(table.Rows) == 0 {
			b.WriteString(`<p class="empty">No scores yet</p>`)
		} else {
			b.WriteString(`<table><tr><th>#</th><th>Time</th><th>Game</th><th>Finished</th></tr>`)
			for _, row := range table.Rows {
				fmt.Fprintf(&b,
					`<tr class="score"><td class="rank">%d</td><td class="time">%s</td><td class="game"><a href="/games/%s">%s</a></td><td class="when">%s</td></tr>`,
					row.Rank, templ.EscapeString(row.Elapsed),
					templ.EscapeString(row.GameID), templ.EscapeString(row.GameID),
					templ.EscapeString(row.When))
			}
			b.WriteString("</table>")
		}
		b.WriteString("</section>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// Summary renders the latest result against the tier's best
func Summary(result, headline string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if result == "" {
			return nil
		}
		_, err := fmt.Fprintf(w, `<section id="summary"><p class="result">%s</p><p class="headline">%s</p></section>`,
			templ.EscapeString(result), templ.EscapeString(headline))
		return err
	})
}
