package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// NotFound renders the catch-all view.
func NotFound(loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := newPrinter(w)
		p.raw(`<section class="not-found"><h1>404</h1><p>`)
		p.text(loc.Sprintf("not_found.message"))
		p.raw(`</p><a href="/login">`)
		p.text(loc.Sprintf("not_found.back"))
		p.raw(`</a></section>`)
		return p.err
	})
}
