package route

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeAuth bool

func (f fakeAuth) IsAuthenticated(context.Context) bool { return bool(f) }

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path         string
		wantName     Name
		requiresAuth bool
	}{
		{path: "/", wantName: NameLogin},
		{path: "", wantName: NameLogin},
		{path: "/login", wantName: NameLogin},
		{path: "/login/", wantName: NameLogin},
		{path: "/events", wantName: NameEvents, requiresAuth: true},
		{path: "/events/4/delete", wantName: NameEvents, requiresAuth: true},
		{path: "/eventsx", wantName: NameNotFound},
		{path: "/nope", wantName: NameNotFound},
	}
	for _, tc := range tests {
		got := Resolve(tc.path)
		if got.Name != tc.wantName || got.RequiresAuth != tc.requiresAuth {
			t.Fatalf("Resolve(%q) = %+v, want name %q requiresAuth %t", tc.path, got, tc.wantName, tc.requiresAuth)
		}
	}
}

func TestPathBuilders(t *testing.T) {
	t.Parallel()

	if got := Event(7); got != "/events/7" {
		t.Fatalf("Event() = %q", got)
	}
	if got := EventDelete(7); got != "/events/7/delete" {
		t.Fatalf("EventDelete() = %q", got)
	}
	if got := EventJoin(7); got != "/events/7/join" {
		t.Fatalf("EventJoin() = %q", got)
	}
	if got := ParticipantDelete(7, 10000000010001); got != "/events/7/participants/10000000010001/delete" {
		t.Fatalf("ParticipantDelete() = %q", got)
	}
}

func TestGuardDecide(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		signedIn bool
		want     string
	}{
		{name: "protected signed out", path: "/events", want: Login},
		{name: "protected signed in", path: "/events", signedIn: true, want: ""},
		{name: "login signed in", path: "/login", signedIn: true, want: Events},
		{name: "login signed out", path: "/login", want: ""},
		{name: "not found signed out", path: "/missing", want: ""},
		{name: "logout signed in", path: "/logout", signedIn: true, want: ""},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			guard := NewGuard(fakeAuth(tc.signedIn))
			if got := guard.Decide(context.Background(), Resolve(tc.path)); got != tc.want {
				t.Fatalf("Decide(%q) = %q, want %q", tc.path, got, tc.want)
			}
		})
	}
}

func TestGuardDecideWithoutAuthenticator(t *testing.T) {
	t.Parallel()

	var guard *Guard
	if got := guard.Decide(context.Background(), Resolve("/events")); got != Login {
		t.Fatalf("Decide() = %q, want %q", got, Login)
	}
}

func TestGuardMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		method   string
		path     string
		signedIn bool
		wantCode int
		wantLoc  string
	}{
		{name: "root signed out", method: http.MethodGet, path: "/", wantCode: http.StatusFound, wantLoc: Login},
		{name: "root signed in", method: http.MethodGet, path: "/", signedIn: true, wantCode: http.StatusFound, wantLoc: Events},
		{name: "events signed out", method: http.MethodGet, path: "/events", wantCode: http.StatusFound, wantLoc: Login},
		{name: "mutation signed out", method: http.MethodPost, path: "/events/1/delete", wantCode: http.StatusFound, wantLoc: Login},
		{name: "events signed in", method: http.MethodGet, path: "/events", signedIn: true, wantCode: http.StatusOK},
		{name: "login signed in", method: http.MethodGet, path: "/login", signedIn: true, wantCode: http.StatusFound, wantLoc: Events},
		{name: "login post signed in", method: http.MethodPost, path: "/login", signedIn: true, wantCode: http.StatusOK},
		{name: "trailing slash", method: http.MethodGet, path: "/events/", wantCode: http.StatusMovedPermanently, wantLoc: "/events"},
		{name: "unknown path", method: http.MethodGet, path: "/missing", wantCode: http.StatusOK},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h := NewGuard(fakeAuth(tc.signedIn)).Middleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))
			req := httptest.NewRequest(tc.method, tc.path, nil)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			if rr.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d", rr.Code, tc.wantCode)
			}
			if got := rr.Header().Get("Location"); got != tc.wantLoc {
				t.Fatalf("Location = %q, want %q", got, tc.wantLoc)
			}
		})
	}
}
