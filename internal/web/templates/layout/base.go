// Package layout holds the page shell shared by every HTML page
package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Base wraps body in the HTML document
func Base(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`+
			templ.EscapeString(title)+` | Word Search</title><link rel="stylesheet" href="/static/style.css"></head><body>`+
			`<header><a href="/">Word Search</a></header><main>`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}
