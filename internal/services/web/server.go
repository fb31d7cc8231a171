// Package web hosts the browser-facing event board.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/louisbranch/eventboard/internal/platform/timeouts"
	"github.com/louisbranch/eventboard/internal/services/events/domain"
	"github.com/louisbranch/eventboard/internal/services/events/listing"
	"github.com/louisbranch/eventboard/internal/services/events/route"
	"github.com/louisbranch/eventboard/internal/services/web/platform/httpx"
	"github.com/louisbranch/eventboard/internal/services/web/platform/observability"
)

// Listing is the listing engine surface the handlers drive.
type Listing interface {
	Snapshot() listing.State
	FetchEvents(ctx context.Context, dir domain.Direction, query domain.SearchQuery) error
	AddEvent(ctx context.Context, input domain.NewEvent) (domain.Event, error)
	UpdateEvent(ctx context.Context, id int64, patch domain.EventPatch) (domain.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
	JoinEventAnonymous(ctx context.Context, eventID int64, name string) (domain.Event, error)
	DeleteParticipant(ctx context.Context, eventID, participantID int64) (domain.Event, error)
}

// Sessions is the session store surface the handlers drive.
type Sessions interface {
	Login(ctx context.Context, username, password string) (domain.User, error)
	Logout(ctx context.Context) error
	IsAuthenticated(ctx context.Context) bool
	Username(ctx context.Context) string
}

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr string
	Listing  Listing
	Sessions Sessions
	Logger   *log.Logger
}

// Server hosts the web HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// NewHandler builds the root handler: routes behind the route guard, wrapped
// in panic recovery, request ids and request logging.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Listing == nil {
		return nil, errors.New("listing is required")
	}
	if cfg.Sessions == nil {
		return nil, errors.New("sessions are required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	h := &handlers{listing: cfg.Listing, sessions: cfg.Sessions, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+route.Login, h.loginPage)
	mux.HandleFunc("POST "+route.Login, h.login)
	mux.Handle(route.Logout, httpx.RequireMethod(http.MethodPost)(http.HandlerFunc(h.logout)))
	mux.HandleFunc("GET "+route.Events, h.eventsPage)
	mux.HandleFunc("POST "+route.Events, h.addEvent)
	mux.HandleFunc("POST "+route.Events+"/{id}", h.updateEvent)
	mux.HandleFunc("POST "+route.Events+"/{id}/delete", h.deleteEvent)
	mux.HandleFunc("POST "+route.Events+"/{id}/join", h.joinEvent)
	mux.HandleFunc("POST "+route.Events+"/{id}/participants/{participantID}/delete", h.deleteParticipant)
	mux.HandleFunc("/", h.notFound)

	guard := route.NewGuard(cfg.Sessions)
	return httpx.Chain(mux,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		observability.RequestLogger(logger),
		guard.Middleware(),
	), nil
}

// NewServer validates config and constructs a web server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.httpAddr
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
