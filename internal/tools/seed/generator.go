// Package seed generates db.json fixtures for a json-server style gateway.
//
// The fixture carries the static account set plus any number of synthetic
// events. Output is fully determined by the random source and the reference
// time, so a fixed seed reproduces the same file.
package seed

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/louisbranch/eventboard/internal/services/events/domain"
)

const (
	// ExtraParticipantIDMin is the lowest id assigned to a participant without an account.
	ExtraParticipantIDMin int64 = 10000000010000
	// ExtraParticipantIDMax is the highest id assigned to a participant without an account.
	ExtraParticipantIDMax int64 = 10099999999999

	maxEventDaysAhead   = 30
	maxCreatedDaysAgo   = 30 * 12 * 10
	maxParticipants     = 5
	secondsPerDay       = 86400
	defaultEventCount   = 1000
	fixtureIndentSpaces = "  "
)

// extraParticipantNames are people who join events without an account.
var extraParticipantNames = []string{"Maria Clara", "Juan Dela Cruz", "Andres Bonifacio", "Jose Rizal"}

// Fixture is the gateway database document.
type Fixture struct {
	Events []domain.Event `json:"events"`
	Users  []domain.User  `json:"users"`
}

// Options controls fixture generation.
type Options struct {
	Events int
	Now    time.Time
}

// DefaultOptions returns options for a fixture of the default size.
func DefaultOptions() Options {
	return Options{Events: defaultEventCount}
}

// Users returns the static account set.
func Users() []domain.User {
	return []domain.User{
		{ID: 10000000025435, Username: "admin", Password: "admin123", Name: "Ramoncito Pascua", Role: domain.RoleAdmin},
		{ID: 10000000000001, Username: "user1", Password: "user1", Name: "Gabriel Del Mundo", Role: domain.RoleMember},
		{ID: 10000000000002, Username: "user2", Password: "user2", Name: "Jerick Atchico", Role: domain.RoleMember},
		{ID: 10000000000003, Username: "user3", Password: "user3", Name: "Allen Garcia", Role: domain.RoleMember},
	}
}

// Generate builds a fixture with opts.Events events named "Event 1".."Event N".
func Generate(rng *rand.Rand, opts Options) (Fixture, error) {
	if rng == nil {
		return Fixture{}, errors.New("random source is required")
	}
	if opts.Events < 0 {
		return Fixture{}, fmt.Errorf("event count must not be negative: %d", opts.Events)
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	users := Users()
	pool := participantPool(rng, users)

	events := make([]domain.Event, 0, opts.Events)
	for i := 1; i <= opts.Events; i++ {
		events = append(events, generateEvent(rng, int64(i), pool, now))
	}
	return Fixture{Events: events, Users: users}, nil
}

// participantPool assigns every known name a stable id: account holders keep
// their user id, everyone else gets a random id once per fixture.
func participantPool(rng *rand.Rand, users []domain.User) []domain.Participant {
	pool := make([]domain.Participant, 0, len(users)+len(extraParticipantNames))
	for _, user := range users {
		pool = append(pool, domain.Participant{ID: user.ID, Name: user.Name})
	}
	for _, name := range extraParticipantNames {
		id := ExtraParticipantIDMin + rng.Int63n(ExtraParticipantIDMax-ExtraParticipantIDMin+1)
		pool = append(pool, domain.Participant{ID: id, Name: name})
	}
	return pool
}

func generateEvent(rng *rand.Rand, id int64, pool []domain.Participant, now time.Time) domain.Event {
	date := now.AddDate(0, 0, rng.Intn(maxEventDaysAhead+1))
	creator := pool[rng.Intn(len(pool))].Name

	createdAt := now.
		AddDate(0, 0, -rng.Intn(maxCreatedDaysAgo+1)).
		Add(-time.Duration(rng.Intn(secondsPerDay+1)) * time.Second)

	shuffled := append([]domain.Participant(nil), pool...)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	count := 1 + rng.Intn(min(maxParticipants, len(shuffled)))

	return domain.Event{
		ID:           id,
		Name:         fmt.Sprintf("Event %d", id),
		Date:         date.Format(domain.DateLayout),
		CreatedBy:    creator,
		CreatedAt:    domain.FormatCreatedAt(createdAt),
		Participants: shuffled[:count:count],
	}
}

// Write encodes the fixture as indented JSON.
func Write(w io.Writer, fixture Fixture) error {
	if w == nil {
		return errors.New("writer is required")
	}
	if fixture.Events == nil {
		fixture.Events = []domain.Event{}
	}
	if fixture.Users == nil {
		fixture.Users = []domain.User{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", fixtureIndentSpaces)
	if err := enc.Encode(fixture); err != nil {
		return fmt.Errorf("encode fixture: %w", err)
	}
	return nil
}
