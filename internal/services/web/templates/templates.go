// Package templates renders the event board views as templ components.
package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/message"
)

// Localizer formats localized copy.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// Alert is a one-time notice shown above the page content.
type Alert struct {
	Kind    string
	Message string
}

// PageOptions carries the shell inputs shared by every page.
type PageOptions struct {
	Title string
	Lang  string
	Alert *Alert
}

// Page wraps body in the HTML document shell.
func Page(opts PageOptions, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		lang := strings.TrimSpace(opts.Lang)
		if lang == "" {
			lang = "en-US"
		}
		p := newPrinter(w)
		p.raw(`<!DOCTYPE html><html lang="`)
		p.text(lang)
		p.raw(`"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		p.text(opts.Title)
		p.raw(`</title></head><body><main class="container">`)
		if opts.Alert != nil && strings.TrimSpace(opts.Alert.Message) != "" {
			p.raw(`<div class="alert alert-`)
			p.text(opts.Alert.Kind)
			p.raw(`" role="alert">`)
			p.text(opts.Alert.Message)
			p.raw(`</div>`)
		}
		if p.err != nil {
			return p.err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		p.raw(`</main></body></html>`)
		return p.err
	})
}

// printer accumulates the first write error so components read linearly.
type printer struct {
	w   io.Writer
	err error
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w}
}

func (p *printer) raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *printer) text(s string) {
	p.raw(templ.EscapeString(s))
}

func (p *printer) attr(name, value string) {
	p.raw(` ` + name + `="`)
	p.text(value)
	p.raw(`"`)
}
