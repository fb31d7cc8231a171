// Package listing holds the client-side state of the event list: the loaded
// page, pagination counters and search mode, plus the mutations that keep
// that state in step with the remote data gateway.
//
// Every fetch takes a sequence token. A response is committed only if no
// newer fetch was issued meanwhile, and page movement is committed together
// with the results so a failed fetch leaves the previous state intact.
package listing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"

	apperrors "github.com/louisbranch/eventboard/internal/platform/errors"
	"github.com/louisbranch/eventboard/internal/services/events/domain"
	"github.com/louisbranch/eventboard/internal/services/events/gateway"
)

const (
	// DefaultPageSize is the configured page limit when none is given.
	DefaultPageSize = 5
	// DefaultMaxButtons is the pagination button count when none is given.
	DefaultMaxButtons = 5
	// AnonymousName is used when a signed-in user has no username.
	AnonymousName = "Anonymous"
)

// Gateway is the subset of the remote data gateway the engine uses.
type Gateway interface {
	ListEvents(ctx context.Context) ([]domain.Event, error)
	ListEventsPage(ctx context.Context, page, limit int) (gateway.Page, error)
	SearchEvents(ctx context.Context, name, date string) ([]domain.Event, error)
	GetEvent(ctx context.Context, id int64) (domain.Event, error)
	CreateEvent(ctx context.Context, input domain.NewEvent) (domain.Event, error)
	PatchEvent(ctx context.Context, id int64, patch domain.EventPatch) (domain.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
}

// Identity resolves the signed-in user, if any.
type Identity interface {
	CurrentUser(ctx context.Context) (domain.User, bool, error)
}

// Options configures an Engine.
type Options struct {
	PageSize   int
	MaxButtons int
	Identity   Identity
	Now        func() time.Time
	Logger     *log.Logger
}

// State is a snapshot of the listing.
type State struct {
	Events        []domain.Event
	Query         domain.SearchQuery
	Page          int
	Limit         int
	MaxButtons    int
	TotalCount    int
	FilteredCount int
	Loading       bool
}

// TotalPages returns the page count for the filtered listing.
func (s State) TotalPages() int {
	return TotalPages(s.FilteredCount, s.Limit)
}

// Engine owns the listing state for one client session.
type Engine struct {
	gateway    Gateway
	identity   Identity
	now        func() time.Time
	logger     *log.Logger
	pageSize   int
	maxButtons int

	mu            sync.Mutex
	events        []domain.Event
	query         domain.SearchQuery
	page          int
	limit         int
	totalCount    int
	filteredCount int
	cachedTotal   int
	cachedValid   bool
	latestToken   uint64
	inFlight      int
}

// New builds an Engine on top of gw.
func New(gw Gateway, opts Options) (*Engine, error) {
	if gw == nil {
		return nil, errors.New("gateway is required")
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.MaxButtons <= 0 {
		opts.MaxButtons = DefaultMaxButtons
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Engine{
		gateway:    gw,
		identity:   opts.Identity,
		now:        opts.Now,
		logger:     opts.Logger,
		pageSize:   opts.PageSize,
		maxButtons: opts.MaxButtons,
		page:       1,
		limit:      opts.PageSize,
	}, nil
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return State{
		Events:        cloneEvents(e.events),
		Query:         e.query,
		Page:          e.page,
		Limit:         e.limit,
		MaxButtons:    e.maxButtons,
		TotalCount:    e.totalCount,
		FilteredCount: e.filteredCount,
		Loading:       e.inFlight > 0,
	}
}

// EventByID returns the event with id from the loaded page.
func (e *Engine) EventByID(id int64) (domain.Event, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, event := range e.events {
		if event.ID == id {
			return cloneEvent(event), true
		}
	}
	return domain.Event{}, false
}

// InvalidateTotalCount forces the next FetchTotalCount to hit the gateway.
func (e *Engine) InvalidateTotalCount() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cachedValid = false
}

// FetchTotalCount returns the collection size, from cache unless force is
// set or the cache was invalidated. On failure it returns 0 and the error.
func (e *Engine) FetchTotalCount(ctx context.Context, force bool) (int, error) {
	e.mu.Lock()
	if e.cachedValid && !force {
		total := e.cachedTotal
		e.mu.Unlock()
		return total, nil
	}
	e.mu.Unlock()

	events, err := e.gateway.ListEvents(ctx)
	if err != nil {
		return 0, err
	}
	total := len(events)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.totalCount = total
	e.cachedTotal = total
	e.cachedValid = true
	if total > 0 {
		e.limit = e.effectiveLimit(total)
	}
	return total, nil
}

type fetchResult struct {
	events []domain.Event
	page   int
	limit  int
	total  int
}

// FetchEvents moves the cursor by dir and loads the matching page.
//
// With no active filter the gateway pages the collection. With any filter
// set, the name and date filters run on the gateway, the participant filter
// runs here, and the result is paged locally after clamping the page to the
// filtered range.
func (e *Engine) FetchEvents(ctx context.Context, dir domain.Direction, query domain.SearchQuery) error {
	query = query.Normalize()

	e.mu.Lock()
	e.latestToken++
	token := e.latestToken
	e.inFlight++
	page := Navigate(e.page, TotalPages(e.filteredCount, e.limit), dir)
	limit := e.limit
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.inFlight--
		e.mu.Unlock()
	}()

	var (
		result fetchResult
		err    error
	)
	if query.Active() {
		result, err = e.fetchFiltered(ctx, page, query)
	} else {
		result, err = e.fetchPaged(ctx, page, limit)
	}
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if token != e.latestToken {
		e.logger.Printf("fetch events discarded stale response token=%d latest=%d page=%d", token, e.latestToken, result.page)
		return nil
	}
	e.events = result.events
	e.query = query
	e.page = result.page
	e.limit = result.limit
	e.totalCount = result.total
	e.filteredCount = result.total
	if !query.Active() {
		e.cachedTotal = result.total
		e.cachedValid = true
	}
	return nil
}

// fetchPaged asks the gateway for one page. When the reported total changes
// the effective limit, or leaves the requested page past the end, the page
// is fetched once more with the corrected bounds.
func (e *Engine) fetchPaged(ctx context.Context, page, limit int) (fetchResult, error) {
	resp, err := e.gateway.ListEventsPage(ctx, page, limit)
	if err != nil {
		return fetchResult{}, err
	}
	nextLimit := e.effectiveLimit(resp.TotalCount)
	nextPage := ClampPage(page, resp.TotalCount, nextLimit)
	if nextLimit != limit || nextPage != page {
		resp, err = e.gateway.ListEventsPage(ctx, nextPage, nextLimit)
		if err != nil {
			return fetchResult{}, err
		}
	}
	return fetchResult{
		events: resp.Events,
		page:   nextPage,
		limit:  nextLimit,
		total:  resp.TotalCount,
	}, nil
}

func (e *Engine) fetchFiltered(ctx context.Context, page int, query domain.SearchQuery) (fetchResult, error) {
	all, err := e.gateway.SearchEvents(ctx, query.Name, query.Date)
	if err != nil {
		return fetchResult{}, err
	}
	if query.Participant != "" {
		all = filterByParticipant(all, query.Participant)
	}
	total := len(all)
	limit := e.effectiveLimit(total)
	page = ClampPage(page, total, limit)
	start, end := PageWindow(page, limit, total)
	return fetchResult{
		events: cloneEvents(all[start:end]),
		page:   page,
		limit:  limit,
		total:  total,
	}, nil
}

// effectiveLimit shrinks the page size to total when the listing has fewer
// items than pagination buttons. It never returns 0.
func (e *Engine) effectiveLimit(total int) int {
	if total > 0 && total < e.maxButtons {
		return total
	}
	return e.pageSize
}

func filterByParticipant(events []domain.Event, needle string) []domain.Event {
	folder := cases.Fold()
	needle = folder.String(needle)
	out := make([]domain.Event, 0, len(events))
	for _, event := range events {
		for _, participant := range event.Participants {
			if strings.Contains(folder.String(participant.Name), needle) {
				out = append(out, event)
				break
			}
		}
	}
	return out
}

// AddEvent creates an event. An event with the same name and date in the
// loaded page is rejected without a gateway call; the check does not see
// other pages.
func (e *Engine) AddEvent(ctx context.Context, input domain.NewEvent) (domain.Event, error) {
	input = input.Normalize()
	if input.Name == "" {
		return domain.Event{}, apperrors.EK(apperrors.KindInvalidInput, "error.event_name_required", "event name is required")
	}
	if input.Date == "" {
		return domain.Event{}, apperrors.EK(apperrors.KindInvalidInput, "error.event_date_required", "event date is required")
	}

	e.mu.Lock()
	for _, event := range e.events {
		if event.Name == input.Name && event.Date == input.Date {
			e.mu.Unlock()
			return domain.Event{}, apperrors.EK(apperrors.KindConflict, "error.event_exists", "an event with the same name and date already exists")
		}
	}
	e.mu.Unlock()

	if input.CreatedBy == "" {
		user, ok, err := e.currentUser(ctx)
		if err != nil {
			return domain.Event{}, err
		}
		input.CreatedBy = AnonymousName
		if ok && strings.TrimSpace(user.Username) != "" {
			input.CreatedBy = user.Username
		}
	}
	if input.CreatedAt == "" {
		input.CreatedAt = domain.FormatCreatedAt(e.now())
	}
	input.Participants = []domain.Participant{}

	created, err := e.gateway.CreateEvent(ctx, input)
	if err != nil {
		return domain.Event{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, cloneEvent(created))
	e.cachedValid = false
	return created, nil
}

// UpdateEvent applies patch on the gateway and replaces the loaded copy when
// the event is on the current page.
func (e *Engine) UpdateEvent(ctx context.Context, id int64, patch domain.EventPatch) (domain.Event, error) {
	if id <= 0 {
		return domain.Event{}, apperrors.EK(apperrors.KindInvalidInput, "error.event_id_invalid", "event id is invalid")
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return domain.Event{}, apperrors.EK(apperrors.KindInvalidInput, "error.event_name_required", "event name is required")
		}
		patch.Name = &name
	}
	if patch.Date != nil {
		date := strings.TrimSpace(*patch.Date)
		if date == "" {
			return domain.Event{}, apperrors.EK(apperrors.KindInvalidInput, "error.event_date_required", "event date is required")
		}
		patch.Date = &date
	}
	if patch.Empty() {
		return domain.Event{}, apperrors.E(apperrors.KindInvalidInput, "event update has no fields")
	}

	updated, err := e.gateway.PatchEvent(ctx, id, patch)
	if err != nil {
		return domain.Event{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.events {
		if e.events[i].ID == id {
			e.events[i] = cloneEvent(updated)
			break
		}
	}
	return updated, nil
}

// DeleteEvent deletes the event on the gateway and drops it from the loaded
// page. An event the gateway no longer has is dropped as well.
func (e *Engine) DeleteEvent(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.EK(apperrors.KindInvalidInput, "error.event_id_invalid", "event id is invalid")
	}
	if err := e.gateway.DeleteEvent(ctx, id); err != nil {
		if !apperrors.Is(err, apperrors.KindNotFound) {
			return err
		}
		e.logger.Printf("delete event already gone event_id=%d", id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	kept := e.events[:0:0]
	removed := false
	for _, event := range e.events {
		if event.ID == id {
			removed = true
			continue
		}
		kept = append(kept, event)
	}
	e.events = kept
	// The removed event was part of the listed set, so both counters drop.
	if removed {
		if e.totalCount > 0 {
			e.totalCount--
		}
		if e.filteredCount > 0 {
			e.filteredCount--
		}
	}
	e.cachedValid = false
	return nil
}

// JoinEventAnonymous adds the caller to an event. A signed-in user joins
// under their account id and username and name is ignored; otherwise name is
// required and a time-based id unique within the event is generated.
//
// The merge base is the freshly fetched event. A participant with the same
// id, or with exactly the same display name, is rejected.
func (e *Engine) JoinEventAnonymous(ctx context.Context, eventID int64, name string) (domain.Event, error) {
	if eventID <= 0 {
		return domain.Event{}, apperrors.EK(apperrors.KindInvalidInput, "error.event_id_invalid", "event id is invalid")
	}
	user, signedIn, err := e.currentUser(ctx)
	if err != nil {
		return domain.Event{}, err
	}

	var participant domain.Participant
	if signedIn {
		participant = domain.Participant{ID: user.ID, Name: strings.TrimSpace(user.Username)}
		if participant.Name == "" {
			participant.Name = AnonymousName
		}
	} else {
		participant.Name = strings.TrimSpace(name)
		if participant.Name == "" {
			return domain.Event{}, apperrors.EK(apperrors.KindInvalidInput, "error.participant_name_required", "participant name is required")
		}
	}

	event, err := e.gateway.GetEvent(ctx, eventID)
	if err != nil {
		return domain.Event{}, err
	}
	if signedIn && event.HasParticipant(participant.ID) {
		return domain.Event{}, duplicateParticipant()
	}
	if event.HasParticipantNamed(participant.Name) {
		return domain.Event{}, apperrors.EK(apperrors.KindConflict, "error.participant_name_taken", "a participant with this name already joined")
	}
	if !signedIn {
		participant.ID = e.generateParticipantID(event)
	}
	return e.appendParticipant(ctx, event, participant)
}

// JoinEvent adds a participant with an explicit id and name. The id is the
// uniqueness key.
func (e *Engine) JoinEvent(ctx context.Context, eventID int64, name string, participantID int64) (domain.Event, error) {
	if eventID <= 0 {
		return domain.Event{}, apperrors.EK(apperrors.KindInvalidInput, "error.event_id_invalid", "event id is invalid")
	}
	name = strings.TrimSpace(name)
	if participantID == 0 {
		return domain.Event{}, apperrors.EK(apperrors.KindInvalidInput, "error.participant_id_required", "participant id is required")
	}
	if name == "" {
		return domain.Event{}, apperrors.EK(apperrors.KindInvalidInput, "error.participant_name_required", "participant name is required")
	}

	event, err := e.gateway.GetEvent(ctx, eventID)
	if err != nil {
		return domain.Event{}, err
	}
	if event.HasParticipant(participantID) {
		return domain.Event{}, duplicateParticipant()
	}
	return e.appendParticipant(ctx, event, domain.Participant{ID: participantID, Name: name})
}

// DeleteParticipant removes participantID from the event and writes the list
// back. Unlike the other mutations every failure comes back wrapped with the
// operation name.
func (e *Engine) DeleteParticipant(ctx context.Context, eventID, participantID int64) (domain.Event, error) {
	if eventID <= 0 {
		return domain.Event{}, fmt.Errorf("delete participant: %w", apperrors.EK(apperrors.KindInvalidInput, "error.event_id_invalid", "event id is invalid"))
	}
	event, err := e.gateway.GetEvent(ctx, eventID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("delete participant: %w", err)
	}
	remaining := make([]domain.Participant, 0, len(event.Participants))
	for _, participant := range event.Participants {
		if participant.ID != participantID {
			remaining = append(remaining, participant)
		}
	}
	updated, err := e.UpdateEvent(ctx, eventID, domain.EventPatch{Participants: remaining})
	if err != nil {
		return domain.Event{}, fmt.Errorf("delete participant: %w", err)
	}
	return updated, nil
}

func (e *Engine) appendParticipant(ctx context.Context, event domain.Event, participant domain.Participant) (domain.Event, error) {
	participants := make([]domain.Participant, 0, len(event.Participants)+1)
	participants = append(participants, event.Participants...)
	participants = append(participants, participant)
	return e.UpdateEvent(ctx, event.ID, domain.EventPatch{Participants: participants})
}

// generateParticipantID derives an id from the clock, bumped past any id the
// event already uses.
func (e *Engine) generateParticipantID(event domain.Event) int64 {
	id := e.now().UnixMilli()
	for event.HasParticipant(id) {
		id++
	}
	return id
}

func (e *Engine) currentUser(ctx context.Context) (domain.User, bool, error) {
	if e.identity == nil {
		return domain.User{}, false, nil
	}
	return e.identity.CurrentUser(ctx)
}

func duplicateParticipant() error {
	return apperrors.EK(apperrors.KindConflict, "error.participant_exists", "participant already joined this event")
}

func cloneEvents(events []domain.Event) []domain.Event {
	if events == nil {
		return nil
	}
	out := make([]domain.Event, len(events))
	for i, event := range events {
		out[i] = cloneEvent(event)
	}
	return out
}

func cloneEvent(event domain.Event) domain.Event {
	if event.Participants != nil {
		participants := make([]domain.Participant, len(event.Participants))
		copy(participants, event.Participants)
		event.Participants = participants
	}
	return event
}
