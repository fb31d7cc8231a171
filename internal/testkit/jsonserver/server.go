// Package jsonserver is an in-memory stand-in for the remote data gateway,
// served over httptest for client, engine and surface tests.
package jsonserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/louisbranch/eventboard/internal/services/events/domain"
)

// Request records one call received by the fake.
type Request struct {
	Method string
	Path   string
	Query  string
	Body   string
}

// Server is a configurable fake gateway.
type Server struct {
	mu        sync.Mutex
	users     []domain.User
	events    map[int64]domain.Event
	nextID    int64
	requests  []Request
	omitTotal bool
	failures  map[string]int

	httpServer *httptest.Server
}

// New starts a fake gateway seeded with users and events.
// Callers must Close it.
func New(users []domain.User, events []domain.Event) *Server {
	s := &Server{
		users:    append([]domain.User(nil), users...),
		events:   map[int64]domain.Event{},
		nextID:   1,
		failures: map[string]int{},
	}
	for _, event := range events {
		s.events[event.ID] = event
		if event.ID >= s.nextID {
			s.nextID = event.ID + 1
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /users", s.listUsers)
	mux.HandleFunc("GET /events", s.listEvents)
	mux.HandleFunc("POST /events", s.createEvent)
	mux.HandleFunc("GET /events/{id}", s.getEvent)
	mux.HandleFunc("PATCH /events/{id}", s.patchEvent)
	mux.HandleFunc("DELETE /events/{id}", s.deleteEvent)
	s.httpServer = httptest.NewServer(s.record(mux))
	return s
}

// URL returns the base URL of the fake.
func (s *Server) URL() string {
	return s.httpServer.URL
}

// Close stops the fake.
func (s *Server) Close() {
	s.httpServer.Close()
}

// OmitTotalHeader stops X-Total-Count from being sent on paged responses.
func (s *Server) OmitTotalHeader(omit bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.omitTotal = omit
}

// FailNext makes the next request matching "METHOD /path" answer with status.
func (s *Server) FailNext(methodAndPath string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[methodAndPath] = status
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// CountRequests returns how many requests used method on path.
func (s *Server) CountRequests(method, path string) int {
	count := 0
	for _, req := range s.Requests() {
		if req.Method == method && req.Path == path {
			count++
		}
	}
	return count
}

// Event returns the stored event with id.
func (s *Server) Event(id int64) (domain.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[id]
	return event, ok
}

// PutEvent stores event directly, bypassing the HTTP surface.
func (s *Server) PutEvent(event domain.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.ID] = event
	if event.ID >= s.nextID {
		s.nextID = event.ID + 1
	}
}

// RemoveEvent deletes the event directly, bypassing the HTTP surface.
func (s *Server) RemoveEvent(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.events, id)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = readAll(r)
		}
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Body:   string(body),
		})
		key := r.Method + " " + r.URL.Path
		status, fail := s.failures[key]
		if fail {
			delete(s.failures, key)
		}
		s.mu.Unlock()
		if fail {
			http.Error(w, http.StatusText(status), status)
			return
		}
		r.Body = newBody(body)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listUsers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	users := append([]domain.User(nil), s.users...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	s.mu.Lock()
	events := s.sortedLocked()
	omitTotal := s.omitTotal
	s.mu.Unlock()

	if nameLike := strings.ToLower(query.Get("name_like")); nameLike != "" {
		events = filter(events, func(e domain.Event) bool {
			return strings.Contains(strings.ToLower(e.Name), nameLike)
		})
	}
	if date := query.Get("date"); date != "" {
		events = filter(events, func(e domain.Event) bool { return e.Date == date })
	}

	rawPage, rawLimit := query.Get("_page"), query.Get("_limit")
	if rawPage == "" && rawLimit == "" {
		writeJSON(w, http.StatusOK, events)
		return
	}
	page, _ := strconv.Atoi(rawPage)
	if page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(rawLimit)
	if err != nil || limit < 0 {
		limit = 10
	}
	total := len(events)
	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	if !omitTotal {
		w.Header().Set("X-Total-Count", strconv.Itoa(total))
	}
	writeJSON(w, http.StatusOK, events[start:end])
}

func (s *Server) getEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	event, found := s.Event(id)
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]any{})
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (s *Server) createEvent(w http.ResponseWriter, r *http.Request) {
	var input domain.NewEvent
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	event := domain.Event{
		ID:           s.nextID,
		Name:         input.Name,
		Date:         input.Date,
		CreatedBy:    input.CreatedBy,
		CreatedAt:    input.CreatedAt,
		Participants: input.Participants,
	}
	if event.Participants == nil {
		event.Participants = []domain.Participant{}
	}
	s.events[event.ID] = event
	s.nextID++
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, event)
}

func (s *Server) patchEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	event, found := s.events[id]
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]any{})
		return
	}
	for key, raw := range fields {
		var err error
		switch key {
		case "name":
			err = json.Unmarshal(raw, &event.Name)
		case "date":
			err = json.Unmarshal(raw, &event.Date)
		case "participants":
			event.Participants = nil
			err = json.Unmarshal(raw, &event.Participants)
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	s.events[id] = event
	writeJSON(w, http.StatusOK, event)
}

func (s *Server) deleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	_, found := s.events[id]
	delete(s.events, id)
	s.mu.Unlock()
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]any{})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{})
}

func (s *Server) sortedLocked() []domain.Event {
	events := make([]domain.Event, 0, len(s.events))
	for _, event := range s.events {
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	return events
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]any{})
		return 0, false
	}
	return id, true
}

func filter(events []domain.Event, keep func(domain.Event) bool) []domain.Event {
	out := make([]domain.Event, 0, len(events))
	for _, event := range events {
		if keep(event) {
			out = append(out, event)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
