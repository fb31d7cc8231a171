package domain

import (
	"github.com/louisbranch/eventboard/internal/services/events/domain"
	"github.com/louisbranch/eventboard/internal/services/events/listing"
)

// ParticipantResult represents one event participant.
type ParticipantResult struct {
	ID   int64  `json:"id" jsonschema:"participant identifier"`
	Name string `json:"name" jsonschema:"participant display name"`
}

// EventResult represents one event in tool output.
type EventResult struct {
	ID           int64               `json:"id" jsonschema:"event identifier"`
	Name         string              `json:"name" jsonschema:"event name"`
	Date         string              `json:"date" jsonschema:"event date (YYYY-MM-DD)"`
	CreatedBy    string              `json:"created_by,omitempty" jsonschema:"creator username"`
	CreatedAt    string              `json:"created_at,omitempty" jsonschema:"creation timestamp"`
	Participants []ParticipantResult `json:"participants" jsonschema:"event participants"`
}

// EventsListInput represents the MCP tool input for listing events.
type EventsListInput struct {
	Direction   string `json:"direction,omitempty" jsonschema:"pagination move: next, prev, first or last; empty reloads the current page"`
	Name        string `json:"name,omitempty" jsonschema:"optional event name substring filter"`
	Date        string `json:"date,omitempty" jsonschema:"optional exact event date filter"`
	Participant string `json:"participant,omitempty" jsonschema:"optional case-insensitive participant name filter"`
}

// EventsListResult represents one page of the listing.
type EventsListResult struct {
	Events        []EventResult `json:"events" jsonschema:"events on the current page"`
	Page          int           `json:"page" jsonschema:"current page number"`
	TotalPages    int           `json:"total_pages" jsonschema:"page count for the listing"`
	Limit         int           `json:"limit" jsonschema:"effective page size"`
	TotalCount    int           `json:"total_count" jsonschema:"collection size"`
	FilteredCount int           `json:"filtered_count" jsonschema:"size of the filtered listing"`
}

// EventsTotalInput represents the MCP tool input for the collection size.
type EventsTotalInput struct {
	Force bool `json:"force,omitempty" jsonschema:"bypass the cached count"`
}

// EventsTotalResult represents the collection size.
type EventsTotalResult struct {
	Total int `json:"total" jsonschema:"number of events"`
}

// EventCreateInput represents the MCP tool input for event creation.
type EventCreateInput struct {
	Name      string `json:"name" jsonschema:"event name"`
	Date      string `json:"date" jsonschema:"event date (YYYY-MM-DD)"`
	CreatedBy string `json:"created_by,omitempty" jsonschema:"optional creator; defaults to the signed-in user"`
}

// EventUpdateInput represents the MCP tool input for event updates. Empty
// fields are left unchanged.
type EventUpdateInput struct {
	ID   int64  `json:"id" jsonschema:"event identifier"`
	Name string `json:"name,omitempty" jsonschema:"new event name"`
	Date string `json:"date,omitempty" jsonschema:"new event date (YYYY-MM-DD)"`
}

// EventDeleteInput represents the MCP tool input for event deletion.
type EventDeleteInput struct {
	ID int64 `json:"id" jsonschema:"event identifier"`
}

// EventDeleteResult represents the outcome of an event deletion.
type EventDeleteResult struct {
	ID      int64 `json:"id" jsonschema:"deleted event identifier"`
	Deleted bool  `json:"deleted" jsonschema:"whether the event was removed"`
}

// EventJoinInput represents the MCP tool input for joining an event.
type EventJoinInput struct {
	EventID       int64  `json:"event_id" jsonschema:"event identifier"`
	Name          string `json:"name,omitempty" jsonschema:"participant display name"`
	ParticipantID int64  `json:"participant_id,omitempty" jsonschema:"explicit participant identifier; omit to join as the signed-in user or anonymously"`
}

// ParticipantRemoveInput represents the MCP tool input for removing a participant.
type ParticipantRemoveInput struct {
	EventID       int64 `json:"event_id" jsonschema:"event identifier"`
	ParticipantID int64 `json:"participant_id" jsonschema:"participant identifier"`
}

func eventResult(event domain.Event) EventResult {
	participants := make([]ParticipantResult, 0, len(event.Participants))
	for _, participant := range event.Participants {
		participants = append(participants, ParticipantResult{ID: participant.ID, Name: participant.Name})
	}
	return EventResult{
		ID:           event.ID,
		Name:         event.Name,
		Date:         event.Date,
		CreatedBy:    event.CreatedBy,
		CreatedAt:    event.CreatedAt,
		Participants: participants,
	}
}

func listResult(state listing.State) EventsListResult {
	events := make([]EventResult, 0, len(state.Events))
	for _, event := range state.Events {
		events = append(events, eventResult(event))
	}
	return EventsListResult{
		Events:        events,
		Page:          state.Page,
		TotalPages:    state.TotalPages(),
		Limit:         state.Limit,
		TotalCount:    state.TotalCount,
		FilteredCount: state.FilteredCount,
	}
}
