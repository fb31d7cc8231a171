// Package route names the browser routes and gates navigation on the
// persisted session.
package route

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

const (
	Root   = "/"
	Login  = "/login"
	Logout = "/logout"
	Events = "/events"
)

// Name identifies a navigable view.
type Name string

const (
	NameLogin    Name = "login"
	NameEvents   Name = "events"
	NameNotFound Name = "not-found"
)

// Route is a resolved navigation target.
type Route struct {
	Name         Name
	Path         string
	RequiresAuth bool
}

// Resolve maps a request path onto a named route. The root path resolves to
// login; unknown paths resolve to not-found.
func Resolve(path string) Route {
	path = canonical(path)
	switch {
	case path == Root, path == Login:
		return Route{Name: NameLogin, Path: Login}
	case path == Logout:
		return Route{Name: NameLogin, Path: Logout}
	case path == Events, strings.HasPrefix(path, Events+"/"):
		return Route{Name: NameEvents, Path: path, RequiresAuth: true}
	default:
		return Route{Name: NameNotFound, Path: path}
	}
}

// Event returns the update path for one event.
func Event(id int64) string {
	return Events + "/" + strconv.FormatInt(id, 10)
}

// EventDelete returns the delete path for one event.
func EventDelete(id int64) string {
	return Event(id) + "/delete"
}

// EventJoin returns the join path for one event.
func EventJoin(id int64) string {
	return Event(id) + "/join"
}

// ParticipantDelete returns the removal path for one participant of an event.
func ParticipantDelete(eventID, participantID int64) string {
	return Event(eventID) + "/participants/" + strconv.FormatInt(participantID, 10) + "/delete"
}

// Authenticator reports whether a persisted session exists.
type Authenticator interface {
	IsAuthenticated(ctx context.Context) bool
}

// Guard decides whether a navigation proceeds or redirects.
type Guard struct {
	auth Authenticator
}

// NewGuard builds a Guard reading session presence from auth.
func NewGuard(auth Authenticator) *Guard {
	return &Guard{auth: auth}
}

// Decide returns the redirect target for a navigation to target, or "" when
// the navigation proceeds.
func (g *Guard) Decide(ctx context.Context, target Route) string {
	if target.Path == Logout {
		return ""
	}
	signedIn := g != nil && g.auth != nil && g.auth.IsAuthenticated(ctx)
	switch {
	case target.RequiresAuth && !signedIn:
		return Login
	case target.Name == NameLogin && signedIn:
		return Events
	default:
		return ""
	}
}

// Middleware applies Decide to GET navigations and the requires-auth rule to
// every other method. The root path always redirects to its resolved target.
func (g *Guard) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if RedirectTrailingSlash(w, r) {
				return
			}
			target := Resolve(r.URL.Path)
			ctx := r.Context()
			location := g.Decide(ctx, target)
			if r.Method != http.MethodGet && r.Method != http.MethodHead && target.Name == NameLogin {
				// Submitting credentials while signed in is allowed to fall through.
				location = ""
			}
			if location == "" && r.URL.Path == Root {
				location = Login
			}
			if location != "" {
				http.Redirect(w, r, location, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RedirectTrailingSlash canonicalizes request paths by stripping trailing "/"
// characters. It returns true when a redirect was written.
func RedirectTrailingSlash(w http.ResponseWriter, r *http.Request) bool {
	if w == nil || r == nil || r.URL == nil {
		return false
	}
	originalPath := r.URL.Path
	path := canonical(originalPath)
	if path == originalPath {
		return false
	}
	http.Redirect(w, r, path, http.StatusMovedPermanently)
	return true
}

func canonical(path string) string {
	path = strings.TrimRight(path, "/")
	if path == "" {
		return Root
	}
	return path
}
