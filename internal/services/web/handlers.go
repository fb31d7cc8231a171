package web

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	apperrors "github.com/louisbranch/eventboard/internal/platform/errors"
	"github.com/louisbranch/eventboard/internal/services/events/domain"
	"github.com/louisbranch/eventboard/internal/services/events/listing"
	"github.com/louisbranch/eventboard/internal/services/events/route"
	"github.com/louisbranch/eventboard/internal/services/web/platform/flash"
	"github.com/louisbranch/eventboard/internal/services/web/platform/httpx"
	"github.com/louisbranch/eventboard/internal/services/web/templates"
)

type handlers struct {
	listing  Listing
	sessions Sessions
	logger   *log.Logger
}

func (h *handlers) loginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "title.login", nil, func(loc templates.Localizer) templ.Component {
		return templates.Login(templates.LoginView{}, loc)
	})
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, route.Login, apperrors.Wrap(apperrors.KindInvalidInput, "error.credentials_required", "parse login form", err))
		return
	}
	ctx := httpx.RequestContext(r)
	user, err := h.sessions.Login(ctx, r.PostForm.Get("username"), r.PostForm.Get("password"))
	if err != nil {
		h.fail(w, r, route.Login, err)
		return
	}
	h.logger.Printf("login succeeded user_id=%d", user.ID)
	h.succeed(w, r, route.Events, "notice.signed_in")
}

func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(httpx.RequestContext(r)); err != nil {
		h.fail(w, r, route.Events, err)
		return
	}
	h.succeed(w, r, route.Login, "notice.signed_out")
}

func (h *handlers) eventsPage(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	dir := domain.ParseDirection(values.Get("dir"))
	query := domain.SearchQuery{
		Name:        values.Get("name"),
		Date:        values.Get("date"),
		Participant: values.Get("participant"),
	}
	ctx := httpx.RequestContext(r)

	status := http.StatusOK
	var fetchAlert *templates.Alert
	if err := h.listing.FetchEvents(ctx, dir, query); err != nil {
		h.logger.Printf("fetch events failed dir=%s err=%v", dir, err)
		status = apperrors.HTTPStatus(err)
		fetchAlert = &templates.Alert{Kind: string(flash.KindError), Message: errorKey(err)}
	}

	state := h.listing.Snapshot()
	username := h.sessions.Username(ctx)
	h.render(w, r, status, "title.events", fetchAlert, func(loc templates.Localizer) templ.Component {
		return templates.Events(eventsView(state, username), loc)
	})
}

func (h *handlers) addEvent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, h.listingURL(), apperrors.Wrap(apperrors.KindInvalidInput, "error.event_name_required", "parse event form", err))
		return
	}
	_, err := h.listing.AddEvent(httpx.RequestContext(r), domain.NewEvent{
		Name: r.PostForm.Get("name"),
		Date: r.PostForm.Get("date"),
	})
	if err != nil {
		h.fail(w, r, h.listingURL(), err)
		return
	}
	h.succeed(w, r, h.listingURL(), "notice.event_created")
}

func (h *handlers) updateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, h.listingURL(), apperrors.Wrap(apperrors.KindInvalidInput, "error.event_name_required", "parse event form", err))
		return
	}
	var patch domain.EventPatch
	if _, present := r.PostForm["name"]; present {
		name := r.PostForm.Get("name")
		patch.Name = &name
	}
	if _, present := r.PostForm["date"]; present {
		date := r.PostForm.Get("date")
		patch.Date = &date
	}
	if _, err := h.listing.UpdateEvent(httpx.RequestContext(r), id, patch); err != nil {
		h.fail(w, r, h.listingURL(), err)
		return
	}
	h.succeed(w, r, h.listingURL(), "notice.event_updated")
}

func (h *handlers) deleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.listing.DeleteEvent(httpx.RequestContext(r), id); err != nil {
		h.fail(w, r, h.listingURL(), err)
		return
	}
	h.succeed(w, r, h.listingURL(), "notice.event_deleted")
}

func (h *handlers) joinEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, h.listingURL(), apperrors.Wrap(apperrors.KindInvalidInput, "error.participant_name_required", "parse join form", err))
		return
	}
	if _, err := h.listing.JoinEventAnonymous(httpx.RequestContext(r), id, r.PostForm.Get("name")); err != nil {
		h.fail(w, r, h.listingURL(), err)
		return
	}
	h.succeed(w, r, h.listingURL(), "notice.event_joined")
}

func (h *handlers) deleteParticipant(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	participantID, ok := h.pathID(w, r, "participantID")
	if !ok {
		return
	}
	if _, err := h.listing.DeleteParticipant(httpx.RequestContext(r), id, participantID); err != nil {
		if apperrors.LocalizationKey(err) == "" {
			err = apperrors.Wrap(apperrors.KindOf(err), "error.participant_remove_failed", "remove participant", err)
		}
		h.fail(w, r, h.listingURL(), err)
		return
	}
	h.succeed(w, r, h.listingURL(), "notice.participant_removed")
}

func (h *handlers) notFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "title.not_found", nil, func(loc templates.Localizer) templ.Component {
		return templates.NotFound(loc)
	})
}

// render writes a full page. A pending flash notice takes the alert slot
// unless the handler supplied its own.
func (h *handlers) render(w http.ResponseWriter, r *http.Request, status int, titleKey string, alert *templates.Alert, body func(templates.Localizer) templ.Component) {
	loc, lang := resolveLocalizer(w, r)
	if alert == nil {
		if notice, ok := flash.ReadAndClear(w, r); ok {
			alert = &templates.Alert{Kind: string(notice.Kind), Message: notice.Key}
		}
	}
	if alert != nil {
		alert.Message = loc.Sprintf(alert.Message)
	}
	page := templates.Page(templates.PageOptions{
		Title: loc.Sprintf(titleKey),
		Lang:  lang,
		Alert: alert,
	}, body(loc))
	templ.Handler(page, templ.WithStatus(status)).ServeHTTP(w, r)
}

func (h *handlers) succeed(w http.ResponseWriter, r *http.Request, location, key string) {
	flash.Write(w, r, flash.NoticeSuccess(key))
	httpx.WriteRedirect(w, r, location)
}

func (h *handlers) fail(w http.ResponseWriter, r *http.Request, location string, err error) {
	h.logger.Printf("request failed method=%s path=%s kind=%s err=%v", r.Method, r.URL.Path, apperrors.KindOf(err), err)
	flash.Write(w, r, flash.NoticeError(errorKey(err)))
	httpx.WriteRedirect(w, r, location)
}

func (h *handlers) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(r.PathValue(name)), 10, 64)
	if err != nil || id <= 0 {
		h.fail(w, r, h.listingURL(), apperrors.EK(apperrors.KindInvalidInput, "error.event_id_invalid", "invalid "+name))
		return 0, false
	}
	return id, true
}

// listingURL returns the listing URL for the active search, so a mutation
// lands back on the same filtered view.
func (h *handlers) listingURL() string {
	return templates.PageURL(domain.DirectionNone, h.listing.Snapshot().Query)
}

func errorKey(err error) string {
	if key := apperrors.LocalizationKey(err); key != "" {
		return key
	}
	return "error.unknown"
}

func eventsView(state listing.State, username string) templates.EventsView {
	totalPages := state.TotalPages()
	first, last := listing.ButtonRange(state.Page, totalPages, state.MaxButtons)
	return templates.EventsView{
		Username:      username,
		Events:        state.Events,
		Query:         state.Query,
		Page:          state.Page,
		TotalPages:    totalPages,
		FirstButton:   first,
		LastButton:    last,
		FilteredCount: state.FilteredCount,
		Loading:       state.Loading,
	}
}
