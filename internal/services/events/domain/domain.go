// Package domain defines the event, participant and user records exchanged
// with the remote data gateway.
package domain

import (
	"strings"
	"time"
)

// DateLayout is the calendar-date layout used for Event.Date.
const DateLayout = "2006-01-02"

// Participant is a person attached to an event.
type Participant struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Event is a scheduled gathering with its participants.
type Event struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	Date         string        `json:"date"`
	CreatedBy    string        `json:"created_by"`
	CreatedAt    string        `json:"created_at"`
	Participants []Participant `json:"participants"`
}

// HasParticipant reports whether id is already in the participant list.
func (e Event) HasParticipant(id int64) bool {
	for _, participant := range e.Participants {
		if participant.ID == id {
			return true
		}
	}
	return false
}

// HasParticipantNamed reports whether a participant has exactly this display name.
func (e Event) HasParticipantNamed(name string) bool {
	for _, participant := range e.Participants {
		if participant.Name == name {
			return true
		}
	}
	return false
}

// Role distinguishes administrators from regular members.
type Role int

const (
	RoleAdmin  Role = 1
	RoleMember Role = 2
)

// User is an account known to the gateway.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	Name     string `json:"name,omitempty"`
	Role     Role   `json:"role,omitempty"`
}

// Public returns the user without its password.
func (u User) Public() User {
	u.Password = ""
	return u
}

// NewEvent is the payload for creating an event.
type NewEvent struct {
	Name         string        `json:"name"`
	Date         string        `json:"date"`
	CreatedBy    string        `json:"created_by"`
	CreatedAt    string        `json:"created_at"`
	Participants []Participant `json:"participants"`
}

// Normalize trims the user-supplied fields.
func (n NewEvent) Normalize() NewEvent {
	n.Name = strings.TrimSpace(n.Name)
	n.Date = strings.TrimSpace(n.Date)
	n.CreatedBy = strings.TrimSpace(n.CreatedBy)
	return n
}

// EventPatch is a partial update. Nil fields are left untouched.
type EventPatch struct {
	Name         *string       `json:"name,omitempty"`
	Date         *string       `json:"date,omitempty"`
	Participants []Participant `json:"participants,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p EventPatch) Empty() bool {
	return p.Name == nil && p.Date == nil && p.Participants == nil
}

// Apply returns a copy of event with the patch applied.
func (p EventPatch) Apply(event Event) Event {
	if p.Name != nil {
		event.Name = *p.Name
	}
	if p.Date != nil {
		event.Date = *p.Date
	}
	if p.Participants != nil {
		event.Participants = append([]Participant(nil), p.Participants...)
	}
	return event
}

// SearchQuery narrows the event list. Empty fields do not filter.
type SearchQuery struct {
	Name        string
	Date        string
	Participant string
}

// Normalize trims every field.
func (q SearchQuery) Normalize() SearchQuery {
	q.Name = strings.TrimSpace(q.Name)
	q.Date = strings.TrimSpace(q.Date)
	q.Participant = strings.TrimSpace(q.Participant)
	return q
}

// Active reports whether any filter is set.
func (q SearchQuery) Active() bool {
	q = q.Normalize()
	return q.Name != "" || q.Date != "" || q.Participant != ""
}

// Direction is a pagination move.
type Direction string

const (
	DirectionNone  Direction = ""
	DirectionNext  Direction = "next"
	DirectionPrev  Direction = "prev"
	DirectionFirst Direction = "first"
	DirectionLast  Direction = "last"
)

// ParseDirection maps a raw value to a Direction; unknown values map to none.
func ParseDirection(raw string) Direction {
	switch Direction(strings.ToLower(strings.TrimSpace(raw))) {
	case DirectionNext:
		return DirectionNext
	case DirectionPrev:
		return DirectionPrev
	case DirectionFirst:
		return DirectionFirst
	case DirectionLast:
		return DirectionLast
	default:
		return DirectionNone
	}
}

// FormatCreatedAt renders t the way the gateway stores creation timestamps.
func FormatCreatedAt(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
