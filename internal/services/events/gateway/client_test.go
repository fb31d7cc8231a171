package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "github.com/louisbranch/eventboard/internal/platform/errors"
	"github.com/louisbranch/eventboard/internal/services/events/domain"
	"github.com/louisbranch/eventboard/internal/testkit/jsonserver"
)

func newTestClient(t *testing.T, fake *jsonserver.Server) *Client {
	t.Helper()
	client, err := New(Config{BaseURL: fake.URL(), Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client
}

func TestNewValidatesBaseURL(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "   ", "ftp://example.com", "://bad"} {
		if _, err := New(Config{BaseURL: raw}); err == nil {
			t.Fatalf("New(%q) expected error", raw)
		}
	}
	if _, err := New(Config{BaseURL: "http://localhost:3000/"}); err != nil {
		t.Fatalf("New() error = %v", err)
	}
}

func TestListEventsPageUsesTotalHeader(t *testing.T) {
	t.Parallel()

	fake := jsonserver.New(nil, jsonserver.Events(12))
	defer fake.Close()
	client := newTestClient(t, fake)

	page, err := client.ListEventsPage(context.Background(), 3, 5)
	if err != nil {
		t.Fatalf("ListEventsPage() error = %v", err)
	}
	if page.TotalCount != 12 {
		t.Fatalf("TotalCount = %d, want 12", page.TotalCount)
	}
	if len(page.Events) != 2 || page.Events[0].ID != 11 {
		t.Fatalf("Events = %+v, want ids 11 and 12", page.Events)
	}
	requests := fake.Requests()
	if got := requests[len(requests)-1].Query; got != "_limit=5&_page=3" {
		t.Fatalf("query = %q, want %q", got, "_limit=5&_page=3")
	}
}

func TestListEventsPageFallsBackToBodyLength(t *testing.T) {
	t.Parallel()

	fake := jsonserver.New(nil, jsonserver.Events(12))
	defer fake.Close()
	fake.OmitTotalHeader(true)
	client := newTestClient(t, fake)

	page, err := client.ListEventsPage(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("ListEventsPage() error = %v", err)
	}
	if page.TotalCount != 5 {
		t.Fatalf("TotalCount = %d, want 5", page.TotalCount)
	}
}

func TestListEventsPageRejectsInvalidTotalHeader(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(TotalCountHeader, "many")
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()
	client, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = client.ListEventsPage(context.Background(), 1, 5)
	if got := apperrors.KindOf(err); got != apperrors.KindParse {
		t.Fatalf("KindOf(err) = %q, want %q", got, apperrors.KindParse)
	}
}

func TestSearchEventsSendsOnlySetFilters(t *testing.T) {
	t.Parallel()

	fake := jsonserver.New(nil, jsonserver.Events(12))
	defer fake.Close()
	client := newTestClient(t, fake)

	events, err := client.SearchEvents(context.Background(), "event 1", "")
	if err != nil {
		t.Fatalf("SearchEvents() error = %v", err)
	}
	// Event 1, Event 10, Event 11, Event 12
	if len(events) != 4 {
		t.Fatalf("len(events) = %d, want 4", len(events))
	}
	requests := fake.Requests()
	if got := requests[len(requests)-1].Query; got != "name_like=event+1" {
		t.Fatalf("query = %q, want %q", got, "name_like=event+1")
	}
}

func TestCreateEventSendsEmptyParticipants(t *testing.T) {
	t.Parallel()

	fake := jsonserver.New(nil, jsonserver.Events(2))
	defer fake.Close()
	client := newTestClient(t, fake)

	created, err := client.CreateEvent(context.Background(), domain.NewEvent{Name: "Launch", Date: "2030-05-01", CreatedBy: "admin"})
	if err != nil {
		t.Fatalf("CreateEvent() error = %v", err)
	}
	if created.ID != 3 {
		t.Fatalf("created.ID = %d, want 3", created.ID)
	}
	requests := fake.Requests()
	body := requests[len(requests)-1].Body
	if !strings.Contains(body, `"participants":[]`) {
		t.Fatalf("request body = %s, want empty participants array", body)
	}
}

func TestPatchEventKeepsExplicitEmptyParticipants(t *testing.T) {
	t.Parallel()

	fake := jsonserver.New(nil, jsonserver.Events(1))
	defer fake.Close()
	client := newTestClient(t, fake)

	updated, err := client.PatchEvent(context.Background(), 1, domain.EventPatch{Participants: []domain.Participant{}})
	if err != nil {
		t.Fatalf("PatchEvent() error = %v", err)
	}
	if len(updated.Participants) != 0 {
		t.Fatalf("participants = %+v, want none", updated.Participants)
	}
	if updated.Name != "Event 1" {
		t.Fatalf("name = %q, want unchanged", updated.Name)
	}
}

func TestGetEventNotFound(t *testing.T) {
	t.Parallel()

	fake := jsonserver.New(nil, nil)
	defer fake.Close()
	client := newTestClient(t, fake)

	_, err := client.GetEvent(context.Background(), 99)
	if got := apperrors.KindOf(err); got != apperrors.KindNotFound {
		t.Fatalf("KindOf(err) = %q, want %q", got, apperrors.KindNotFound)
	}
}

func TestNonSuccessStatusIsUnavailable(t *testing.T) {
	t.Parallel()

	fake := jsonserver.New(jsonserver.Users(), nil)
	defer fake.Close()
	fake.FailNext("GET /users", http.StatusInternalServerError)
	client := newTestClient(t, fake)

	_, err := client.ListUsers(context.Background())
	if got := apperrors.KindOf(err); got != apperrors.KindUnavailable {
		t.Fatalf("KindOf(err) = %q, want %q", got, apperrors.KindUnavailable)
	}
	if got := apperrors.LocalizationKey(err); got != "error.gateway_status" {
		t.Fatalf("LocalizationKey(err) = %q", got)
	}
}

func TestTransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := New(Config{BaseURL: url})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	_, err = client.ListEvents(context.Background())
	if got := apperrors.KindOf(err); got != apperrors.KindTransport {
		t.Fatalf("KindOf(err) = %q, want %q", got, apperrors.KindTransport)
	}
}

func TestMalformedBodyIsParseError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()
	client, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = client.ListUsers(context.Background())
	if got := apperrors.KindOf(err); got != apperrors.KindParse {
		t.Fatalf("KindOf(err) = %q, want %q", got, apperrors.KindParse)
	}
}

func TestRequestIDPropagates(t *testing.T) {
	t.Parallel()

	seen := make(chan string, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- r.Header.Get(RequestIDHeader)
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()
	client, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx := WithRequestID(context.Background(), "req-42")
	if _, err := client.ListEvents(ctx); err != nil {
		t.Fatalf("ListEvents() error = %v", err)
	}
	if got := <-seen; got != "req-42" {
		t.Fatalf("request id = %q, want %q", got, "req-42")
	}
	if _, err := client.ListEvents(context.Background()); err != nil {
		t.Fatalf("ListEvents() error = %v", err)
	}
	if got := <-seen; got == "" {
		t.Fatal("expected generated request id")
	}
}

func TestDeleteEvent(t *testing.T) {
	t.Parallel()

	fake := jsonserver.New(nil, jsonserver.Events(2))
	defer fake.Close()
	client := newTestClient(t, fake)

	if err := client.DeleteEvent(context.Background(), 2); err != nil {
		t.Fatalf("DeleteEvent() error = %v", err)
	}
	if _, ok := fake.Event(2); ok {
		t.Fatal("expected event 2 to be deleted")
	}
	err := client.DeleteEvent(context.Background(), 2)
	if got := apperrors.KindOf(err); got != apperrors.KindNotFound {
		t.Fatalf("KindOf(err) = %q, want %q", got, apperrors.KindNotFound)
	}
}
