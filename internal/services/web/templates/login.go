package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// LoginView holds the sign-in form state.
type LoginView struct {
	Username string
}

// Login renders the sign-in form.
func Login(view LoginView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := newPrinter(w)
		p.raw(`<section class="login"><h1>`)
		p.text(loc.Sprintf("login.heading"))
		p.raw(`</h1><form method="post" action="/login"><label>`)
		p.text(loc.Sprintf("login.username"))
		p.raw(`<input type="text" name="username" required`)
		p.attr("value", view.Username)
		p.raw(`></label><label>`)
		p.text(loc.Sprintf("login.password"))
		p.raw(`<input type="password" name="password" required></label><button type="submit">`)
		p.text(loc.Sprintf("login.submit"))
		p.raw(`</button></form></section>`)
		return p.err
	})
}
