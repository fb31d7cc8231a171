package templates

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/louisbranch/eventboard/internal/services/events/domain"
	"github.com/louisbranch/eventboard/internal/services/events/route"
)

// EventsView holds one rendered page of the listing.
type EventsView struct {
	Username      string
	Events        []domain.Event
	Query         domain.SearchQuery
	Page          int
	TotalPages    int
	FirstButton   int
	LastButton    int
	FilteredCount int
	Loading       bool
}

// Events renders the listing with its search, mutation forms and pagination bar.
func Events(view EventsView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := newPrinter(w)
		p.raw(`<header class="events-header"><h1>`)
		p.text(loc.Sprintf("events.heading"))
		p.raw(`</h1>`)
		if view.Username != "" {
			p.raw(`<span class="user">`)
			p.text(loc.Sprintf("events.signed_in_as", view.Username))
			p.raw(`</span>`)
		}
		p.raw(`<form method="post" action="` + route.Logout + `"><button type="submit">`)
		p.text(loc.Sprintf("events.sign_out"))
		p.raw(`</button></form></header>`)

		writeSearch(p, view.Query, loc)
		writeAddForm(p, loc)

		if view.Loading {
			p.raw(`<p class="loading">`)
			p.text(loc.Sprintf("events.loading"))
			p.raw(`</p>`)
		}
		p.raw(`<p class="total">`)
		p.text(loc.Sprintf("events.total", view.FilteredCount))
		p.raw(`</p>`)

		if len(view.Events) == 0 {
			p.raw(`<p class="empty">`)
			p.text(loc.Sprintf("events.empty"))
			p.raw(`</p>`)
		} else {
			p.raw(`<ul class="events">`)
			for _, event := range view.Events {
				writeEvent(p, event, loc)
			}
			p.raw(`</ul>`)
		}

		writePagination(p, view, loc)
		return p.err
	})
}

func writeSearch(p *printer, query domain.SearchQuery, loc Localizer) {
	p.raw(`<form class="search" method="get" action="` + route.Events + `">`)
	writeInput(p, "text", "name", loc.Sprintf("events.name"), query.Name, false)
	writeInput(p, "date", "date", loc.Sprintf("events.date"), query.Date, false)
	writeInput(p, "text", "participant", loc.Sprintf("events.participant"), query.Participant, false)
	p.raw(`<button type="submit">`)
	p.text(loc.Sprintf("events.search"))
	p.raw(`</button><a href="` + route.Events + `">`)
	p.text(loc.Sprintf("events.clear"))
	p.raw(`</a></form>`)
}

func writeAddForm(p *printer, loc Localizer) {
	p.raw(`<form class="add-event" method="post" action="` + route.Events + `">`)
	writeInput(p, "text", "name", loc.Sprintf("events.name"), "", true)
	writeInput(p, "date", "date", loc.Sprintf("events.date"), "", true)
	p.raw(`<button type="submit">`)
	p.text(loc.Sprintf("events.add"))
	p.raw(`</button></form>`)
}

func writeEvent(p *printer, event domain.Event, loc Localizer) {
	p.raw(`<li class="event"`)
	p.attr("id", "event-"+strconv.FormatInt(event.ID, 10))
	p.raw(`><h2>`)
	p.text(event.Name)
	p.raw(`</h2><p class="date">`)
	p.text(event.Date)
	p.raw(`</p>`)
	if event.CreatedBy != "" {
		p.raw(`<p class="created-by">`)
		p.text(loc.Sprintf("events.created_by", event.CreatedBy))
		p.raw(`</p>`)
	}

	p.raw(`<h3>`)
	p.text(loc.Sprintf("events.participants"))
	p.raw(`</h3><ul class="participants">`)
	for _, participant := range event.Participants {
		p.raw(`<li>`)
		p.text(participant.Name)
		p.raw(`<form method="post"`)
		p.attr("action", route.ParticipantDelete(event.ID, participant.ID))
		p.raw(`><button type="submit">`)
		p.text(loc.Sprintf("events.remove"))
		p.raw(`</button></form></li>`)
	}
	p.raw(`</ul>`)

	p.raw(`<form class="join" method="post"`)
	p.attr("action", route.EventJoin(event.ID))
	p.raw(`>`)
	writeInput(p, "text", "name", loc.Sprintf("events.join_name"), "", false)
	p.raw(`<button type="submit">`)
	p.text(loc.Sprintf("events.join"))
	p.raw(`</button></form>`)

	p.raw(`<form class="update" method="post"`)
	p.attr("action", route.Event(event.ID))
	p.raw(`>`)
	writeInput(p, "text", "name", loc.Sprintf("events.name"), event.Name, true)
	writeInput(p, "date", "date", loc.Sprintf("events.date"), event.Date, true)
	p.raw(`<button type="submit">`)
	p.text(loc.Sprintf("events.update"))
	p.raw(`</button></form>`)

	p.raw(`<form class="delete" method="post"`)
	p.attr("action", route.EventDelete(event.ID))
	p.raw(`><button type="submit">`)
	p.text(loc.Sprintf("events.delete"))
	p.raw(`</button></form></li>`)
}

func writeInput(p *printer, kind, name, label, value string, required bool) {
	p.raw(`<label>`)
	p.text(label)
	p.raw(`<input`)
	p.attr("type", kind)
	p.attr("name", name)
	if value != "" {
		p.attr("value", value)
	}
	if required {
		p.raw(` required`)
	}
	p.raw(`></label>`)
}

func writePagination(p *printer, view EventsView, loc Localizer) {
	if view.TotalPages <= 0 {
		return
	}
	p.raw(`<nav class="pagination">`)
	writePageLink(p, view.Query, domain.DirectionFirst, loc.Sprintf("pagination.first"), view.Page > 1)
	writePageLink(p, view.Query, domain.DirectionPrev, loc.Sprintf("pagination.prev"), view.Page > 1)
	for page := view.FirstButton; page > 0 && page <= view.LastButton; page++ {
		if page == view.Page {
			p.raw(`<span class="page current" aria-current="page">`)
		} else {
			p.raw(`<span class="page">`)
		}
		p.text(strconv.Itoa(page))
		p.raw(`</span>`)
	}
	writePageLink(p, view.Query, domain.DirectionNext, loc.Sprintf("pagination.next"), view.Page < view.TotalPages)
	writePageLink(p, view.Query, domain.DirectionLast, loc.Sprintf("pagination.last"), view.Page < view.TotalPages)
	p.raw(`<span class="page-status">`)
	p.text(loc.Sprintf("pagination.page", view.Page, view.TotalPages))
	p.raw(`</span></nav>`)
}

func writePageLink(p *printer, query domain.SearchQuery, dir domain.Direction, label string, enabled bool) {
	if !enabled {
		p.raw(`<span class="disabled">`)
		p.text(label)
		p.raw(`</span>`)
		return
	}
	p.raw(`<a`)
	p.attr("href", PageURL(dir, query))
	p.raw(`>`)
	p.text(label)
	p.raw(`</a>`)
}

// PageURL returns the listing URL that moves by dir while keeping query.
func PageURL(dir domain.Direction, query domain.SearchQuery) string {
	values := url.Values{}
	if dir != domain.DirectionNone {
		values.Set("dir", string(dir))
	}
	if query.Name != "" {
		values.Set("name", query.Name)
	}
	if query.Date != "" {
		values.Set("date", query.Date)
	}
	if query.Participant != "" {
		values.Set("participant", query.Participant)
	}
	if len(values) == 0 {
		return route.Events
	}
	return route.Events + "?" + values.Encode()
}
