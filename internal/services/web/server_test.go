package web

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/eventboard/internal/services/events/gateway"
	"github.com/louisbranch/eventboard/internal/services/events/listing"
	"github.com/louisbranch/eventboard/internal/services/events/session"
	"github.com/louisbranch/eventboard/internal/services/events/storage"
	"github.com/louisbranch/eventboard/internal/testkit/jsonserver"
)

type harness struct {
	handler  http.Handler
	fake     *jsonserver.Server
	sessions *session.Store
	cookies  map[string]*http.Cookie
}

func newHarness(t *testing.T, events int) *harness {
	t.Helper()
	fake := jsonserver.New(jsonserver.Users(), jsonserver.Events(events))
	t.Cleanup(fake.Close)

	client, err := gateway.New(gateway.Config{BaseURL: fake.URL(), Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("gateway.New() error = %v", err)
	}
	sessions, err := session.New(client, storage.NewMemory())
	if err != nil {
		t.Fatalf("session.New() error = %v", err)
	}
	logger := log.New(io.Discard, "", 0)
	engine, err := listing.New(client, listing.Options{Identity: sessions, Logger: logger})
	if err != nil {
		t.Fatalf("listing.New() error = %v", err)
	}
	handler, err := NewHandler(Config{Listing: engine, Sessions: sessions, Logger: logger})
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	return &harness{handler: handler, fake: fake, sessions: sessions, cookies: map[string]*http.Cookie{}}
}

// do sends one request, carrying cookies between calls like a browser.
func (h *harness) do(t *testing.T, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, cookie := range h.cookies {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	h.handler.ServeHTTP(rr, req)
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(h.cookies, cookie.Name)
			continue
		}
		h.cookies[cookie.Name] = cookie
	}
	return rr
}

func (h *harness) signIn(t *testing.T) {
	t.Helper()
	rr := h.do(t, http.MethodPost, "/login", url.Values{"username": {"admin"}, "password": {"admin123"}})
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/events" {
		t.Fatalf("login = %d %q, want 303 /events", rr.Code, rr.Header().Get("Location"))
	}
}

func assertRedirect(t *testing.T, rr *httptest.ResponseRecorder, code int, location string) {
	t.Helper()
	if rr.Code != code {
		t.Fatalf("status = %d, want %d", rr.Code, code)
	}
	if got := rr.Header().Get("Location"); got != location {
		t.Fatalf("Location = %q, want %q", got, location)
	}
}

func assertBody(t *testing.T, rr *httptest.ResponseRecorder, markers ...string) {
	t.Helper()
	body := rr.Body.String()
	for _, marker := range markers {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q: %s", marker, body)
		}
	}
}

func TestNewHandlerRequiresDependencies(t *testing.T) {
	t.Parallel()

	if _, err := NewHandler(Config{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewServerRequiresAddress(t *testing.T) {
	t.Parallel()

	if _, err := NewServer(context.Background(), Config{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestGuardRedirectsSignedOutVisitors(t *testing.T) {
	t.Parallel()

	h := newHarness(t, 3)
	assertRedirect(t, h.do(t, http.MethodGet, "/", nil), http.StatusFound, "/login")
	assertRedirect(t, h.do(t, http.MethodGet, "/events", nil), http.StatusFound, "/login")
	assertRedirect(t, h.do(t, http.MethodPost, "/events/1/delete", nil), http.StatusFound, "/login")
	if got := h.fake.CountRequests(http.MethodDelete, "/events/1"); got != 0 {
		t.Fatalf("DELETE count = %d, want 0", got)
	}

	rr := h.do(t, http.MethodGet, "/login", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	assertBody(t, rr, "<title>Sign In | Events</title>", `name="username"`)
}

func TestLoginFailureShowsLocalizedAlert(t *testing.T) {
	t.Parallel()

	h := newHarness(t, 3)
	rr := h.do(t, http.MethodPost, "/login", url.Values{"username": {"admin"}, "password": {"wrong"}})
	assertRedirect(t, rr, http.StatusSeeOther, "/login")
	if h.sessions.IsAuthenticated(context.Background()) {
		t.Fatal("session must stay signed out")
	}

	page := h.do(t, http.MethodGet, "/login", nil)
	assertBody(t, page, "alert-error", "Invalid username or password.")

	again := h.do(t, http.MethodGet, "/login", nil)
	if strings.Contains(again.Body.String(), "alert-error") {
		t.Fatal("flash alert must show only once")
	}
}

func TestSignedInFlow(t *testing.T) {
	t.Parallel()

	h := newHarness(t, 12)
	h.signIn(t)

	assertRedirect(t, h.do(t, http.MethodGet, "/login", nil), http.StatusFound, "/events")

	rr := h.do(t, http.MethodGet, "/events", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	assertBody(t, rr, "Welcome back.", "Signed in as admin", "Event 5", "12 events", "Page 1 of 3")
	if strings.Contains(rr.Body.String(), "Event 6<") {
		t.Fatal("page 1 must not include Event 6")
	}

	rr = h.do(t, http.MethodGet, "/events?dir=next", nil)
	assertBody(t, rr, "Event 6", "Event 10", "Page 2 of 3")

	rr = h.do(t, http.MethodGet, "/events?dir=last", nil)
	assertBody(t, rr, "Event 12", "Page 3 of 3")
}

func TestEventsFilterByParticipant(t *testing.T) {
	t.Parallel()

	h := newHarness(t, 12)
	h.signIn(t)

	rr := h.do(t, http.MethodGet, "/events?participant=juan", nil)
	assertBody(t, rr, "Event 1<", "1 events", "Page 1 of 1", `value="juan"`)
	if strings.Contains(rr.Body.String(), "Event 2<") {
		t.Fatal("filter must exclude Event 2")
	}
}

func TestEventMutations(t *testing.T) {
	t.Parallel()

	h := newHarness(t, 3)
	h.signIn(t)
	h.do(t, http.MethodGet, "/events", nil)

	rr := h.do(t, http.MethodPost, "/events", url.Values{"name": {"Launch"}, "date": {"2030-05-01"}})
	assertRedirect(t, rr, http.StatusSeeOther, "/events")
	created, ok := h.fake.Event(4)
	if !ok || created.Name != "Launch" || created.CreatedBy != "admin" {
		t.Fatalf("created = %+v, %t", created, ok)
	}
	assertBody(t, h.do(t, http.MethodGet, "/events", nil), "Event created.", "Launch")

	rr = h.do(t, http.MethodPost, "/events", url.Values{"name": {"Event 2"}, "date": {"2030-01-02"}})
	assertRedirect(t, rr, http.StatusSeeOther, "/events")
	assertBody(t, h.do(t, http.MethodGet, "/events", nil), "An event with this name and date already exists.")

	rr = h.do(t, http.MethodPost, "/events/2", url.Values{"name": {"Renamed"}, "date": {"2030-02-02"}})
	assertRedirect(t, rr, http.StatusSeeOther, "/events")
	if updated, _ := h.fake.Event(2); updated.Name != "Renamed" || updated.Date != "2030-02-02" {
		t.Fatalf("updated = %+v", updated)
	}

	rr = h.do(t, http.MethodPost, "/events/1/join", url.Values{"name": {"ignored"}})
	assertRedirect(t, rr, http.StatusSeeOther, "/events")
	joined, _ := h.fake.Event(1)
	last := joined.Participants[len(joined.Participants)-1]
	if last.ID != 10000000025435 || last.Name != "admin" {
		t.Fatalf("joined participant = %+v", last)
	}

	rr = h.do(t, http.MethodPost, "/events/1/participants/10000000010002/delete", nil)
	assertRedirect(t, rr, http.StatusSeeOther, "/events")
	pruned, _ := h.fake.Event(1)
	if pruned.HasParticipant(10000000010002) {
		t.Fatalf("participant not removed: %+v", pruned.Participants)
	}

	rr = h.do(t, http.MethodPost, "/events/3/delete", nil)
	assertRedirect(t, rr, http.StatusSeeOther, "/events")
	if _, ok := h.fake.Event(3); ok {
		t.Fatal("event 3 should be deleted")
	}
}

func TestMutationKeepsActiveSearch(t *testing.T) {
	t.Parallel()

	h := newHarness(t, 3)
	h.signIn(t)
	h.do(t, http.MethodGet, "/events?name=Event", nil)

	rr := h.do(t, http.MethodPost, "/events/2/delete", nil)
	assertRedirect(t, rr, http.StatusSeeOther, "/events?name=Event")
}

func TestInvalidPathIDRedirectsWithAlert(t *testing.T) {
	t.Parallel()

	h := newHarness(t, 1)
	h.signIn(t)
	rr := h.do(t, http.MethodPost, "/events/abc/delete", nil)
	assertRedirect(t, rr, http.StatusSeeOther, "/events")
	if got := h.fake.CountRequests(http.MethodDelete, "/events/abc"); got != 0 {
		t.Fatalf("DELETE count = %d, want 0", got)
	}
}

func TestGatewayFailureRendersAlert(t *testing.T) {
	t.Parallel()

	h := newHarness(t, 3)
	h.signIn(t)
	h.fake.FailNext("GET /events", http.StatusInternalServerError)

	rr := h.do(t, http.MethodGet, "/events", nil)
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadGateway)
	}
	assertBody(t, rr, "The events service returned an error.")
}

func TestUnknownPathRendersNotFound(t *testing.T) {
	t.Parallel()

	h := newHarness(t, 1)
	rr := h.do(t, http.MethodGet, "/missing", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	assertBody(t, rr, "<h1>404</h1>", "The page you are looking for does not exist.")
}

func TestLogout(t *testing.T) {
	t.Parallel()

	h := newHarness(t, 1)
	h.signIn(t)
	assertRedirect(t, h.do(t, http.MethodGet, "/logout", nil), http.StatusMethodNotAllowed, "")

	rr := h.do(t, http.MethodPost, "/logout", nil)
	assertRedirect(t, rr, http.StatusSeeOther, "/login")
	if h.sessions.IsAuthenticated(context.Background()) {
		t.Fatal("session must be cleared")
	}
	assertRedirect(t, h.do(t, http.MethodGet, "/events", nil), http.StatusFound, "/login")
}

func TestPortugueseViaQuery(t *testing.T) {
	t.Parallel()

	h := newHarness(t, 1)
	rr := h.do(t, http.MethodGet, "/login?lang=pt-BR", nil)
	assertBody(t, rr, `<html lang="pt-BR">`, "<h1>Entrar</h1>")

	// The choice sticks through the language cookie.
	rr = h.do(t, http.MethodGet, "/missing", nil)
	assertBody(t, rr, "A página que você procura não existe.")
}
