// Package pages holds the full HTML pages
package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/wordsearchgame-go/internal/web/templates/components"
	"github.com/mcoot/wordsearchgame-go/internal/web/templates/layout"
	"github.com/mcoot/wordsearchgame-go/internal/web/viewmodel"
)

// timerScript keeps the status line live from the game's event stream
const timerScript = `<script>
(function(){
  var board = document.getElementById("board");
  if (!board || !window.EventSource) { return; }
  var source = new EventSource(board.dataset.events);
  source.addEventListener("timer-tick", function(e){
    document.getElementById("timer").textContent = JSON.parse(e.data).elapsed;
  });
  ["word-found","game-paused","game-resumed","game-complete","game-abandoned"].forEach(function(name){
    source.addEventListener(name, function(){ window.location.reload(); });
  });
})();
</script>`

// Home renders the score board for every tier
func Home(page viewmodel.HomePage) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>High Scores</h1>`); err != nil {
			return err
		}
		if err := components.Summary(page.Result, page.Headline).Render(ctx, w); err != nil {
			return err
		}
		for _, table := range page.Tables {
			if err := components.ScoreTable(table).Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
	return layout.Base("High Scores", body)
}

// Game renders a single game's board
func Game(page viewmodel.GamePage) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h1>Game %s</h1><div id="board" data-events="%s">`,
			templ.EscapeString(page.GameID), templ.EscapeString(page.EventsURL)); err != nil {
			return err
		}
		for _, c := range []templ.Component{
			components.Status(page),
			components.Grid(page),
			components.WordBank(page.Words),
		} {
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`+timerScript)
		return err
	})
	return layout.Base(page.Tier+" Game", body)
}

// Error renders a message page
func Error(title, message string) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<h1>%s</h1><p id="error-message">%s</p><p><a href="/">Return to scores</a></p>`,
			templ.EscapeString(title), templ.EscapeString(message))
		return err
	})
	return layout.Base(title, body)
}
