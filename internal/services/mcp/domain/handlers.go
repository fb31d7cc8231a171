package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/eventboard/internal/services/events/domain"
	"github.com/louisbranch/eventboard/internal/services/events/listing"
)

// Listing is the listing engine surface the tools drive.
type Listing interface {
	Snapshot() listing.State
	FetchTotalCount(ctx context.Context, force bool) (int, error)
	FetchEvents(ctx context.Context, dir domain.Direction, query domain.SearchQuery) error
	AddEvent(ctx context.Context, input domain.NewEvent) (domain.Event, error)
	UpdateEvent(ctx context.Context, id int64, patch domain.EventPatch) (domain.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
	JoinEvent(ctx context.Context, eventID int64, name string, participantID int64) (domain.Event, error)
	JoinEventAnonymous(ctx context.Context, eventID int64, name string) (domain.Event, error)
	DeleteParticipant(ctx context.Context, eventID, participantID int64) (domain.Event, error)
}

const (
	EventsListToolName        = "events_list"
	EventsTotalToolName       = "events_total"
	EventCreateToolName       = "event_create"
	EventUpdateToolName       = "event_update"
	EventDeleteToolName       = "event_delete"
	EventJoinToolName         = "event_join"
	ParticipantRemoveToolName = "participant_remove"
)

// EventsListTool defines the MCP tool schema for paging through events.
func EventsListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        EventsListToolName,
		Description: "Moves through the event listing and returns the current page, optionally filtered by name, date or participant",
	}
}

// EventsTotalTool defines the MCP tool schema for the collection size.
func EventsTotalTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        EventsTotalToolName,
		Description: "Returns the number of events, cached until a create or delete",
	}
}

// EventCreateTool defines the MCP tool schema for creating events.
func EventCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        EventCreateToolName,
		Description: "Creates an event unless one with the same name and date is on the loaded page",
	}
}

// EventUpdateTool defines the MCP tool schema for updating events.
func EventUpdateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        EventUpdateToolName,
		Description: "Updates an event's name or date",
	}
}

// EventDeleteTool defines the MCP tool schema for deleting events.
func EventDeleteTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        EventDeleteToolName,
		Description: "Deletes an event",
	}
}

// EventJoinTool defines the MCP tool schema for joining events.
func EventJoinTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        EventJoinToolName,
		Description: "Adds a participant to an event, as the signed-in user, an explicit participant or an anonymous name",
	}
}

// ParticipantRemoveTool defines the MCP tool schema for removing participants.
func ParticipantRemoveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        ParticipantRemoveToolName,
		Description: "Removes a participant from an event",
	}
}

// EventsListHandler executes a listing move.
func EventsListHandler(engine Listing) mcp.ToolHandlerFor[EventsListInput, EventsListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input EventsListInput) (*mcp.CallToolResult, EventsListResult, error) {
		query := domain.SearchQuery{Name: input.Name, Date: input.Date, Participant: input.Participant}
		if err := engine.FetchEvents(ctx, domain.ParseDirection(input.Direction), query); err != nil {
			return nil, EventsListResult{}, fmt.Errorf("events list failed: %w", err)
		}
		return nil, listResult(engine.Snapshot()), nil
	}
}

// EventsTotalHandler returns the collection size.
func EventsTotalHandler(engine Listing) mcp.ToolHandlerFor[EventsTotalInput, EventsTotalResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input EventsTotalInput) (*mcp.CallToolResult, EventsTotalResult, error) {
		total, err := engine.FetchTotalCount(ctx, input.Force)
		if err != nil {
			return nil, EventsTotalResult{}, fmt.Errorf("events total failed: %w", err)
		}
		return nil, EventsTotalResult{Total: total}, nil
	}
}

// EventCreateHandler executes an event creation.
func EventCreateHandler(engine Listing) mcp.ToolHandlerFor[EventCreateInput, EventResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input EventCreateInput) (*mcp.CallToolResult, EventResult, error) {
		created, err := engine.AddEvent(ctx, domain.NewEvent{
			Name:      input.Name,
			Date:      input.Date,
			CreatedBy: input.CreatedBy,
		})
		if err != nil {
			return nil, EventResult{}, fmt.Errorf("event create failed: %w", err)
		}
		return nil, eventResult(created), nil
	}
}

// EventUpdateHandler executes an event update.
func EventUpdateHandler(engine Listing) mcp.ToolHandlerFor[EventUpdateInput, EventResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input EventUpdateInput) (*mcp.CallToolResult, EventResult, error) {
		var patch domain.EventPatch
		if input.Name != "" {
			patch.Name = &input.Name
		}
		if input.Date != "" {
			patch.Date = &input.Date
		}
		updated, err := engine.UpdateEvent(ctx, input.ID, patch)
		if err != nil {
			return nil, EventResult{}, fmt.Errorf("event update failed: %w", err)
		}
		return nil, eventResult(updated), nil
	}
}

// EventDeleteHandler executes an event deletion.
func EventDeleteHandler(engine Listing) mcp.ToolHandlerFor[EventDeleteInput, EventDeleteResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input EventDeleteInput) (*mcp.CallToolResult, EventDeleteResult, error) {
		if err := engine.DeleteEvent(ctx, input.ID); err != nil {
			return nil, EventDeleteResult{}, fmt.Errorf("event delete failed: %w", err)
		}
		return nil, EventDeleteResult{ID: input.ID, Deleted: true}, nil
	}
}

// EventJoinHandler adds a participant. An explicit participant id selects the
// keyed join; otherwise the session identity or the supplied name is used.
func EventJoinHandler(engine Listing) mcp.ToolHandlerFor[EventJoinInput, EventResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input EventJoinInput) (*mcp.CallToolResult, EventResult, error) {
		var (
			updated domain.Event
			err     error
		)
		if input.ParticipantID != 0 {
			updated, err = engine.JoinEvent(ctx, input.EventID, input.Name, input.ParticipantID)
		} else {
			updated, err = engine.JoinEventAnonymous(ctx, input.EventID, input.Name)
		}
		if err != nil {
			return nil, EventResult{}, fmt.Errorf("event join failed: %w", err)
		}
		return nil, eventResult(updated), nil
	}
}

// ParticipantRemoveHandler removes a participant from an event.
func ParticipantRemoveHandler(engine Listing) mcp.ToolHandlerFor[ParticipantRemoveInput, EventResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ParticipantRemoveInput) (*mcp.CallToolResult, EventResult, error) {
		updated, err := engine.DeleteParticipant(ctx, input.EventID, input.ParticipantID)
		if err != nil {
			return nil, EventResult{}, err
		}
		return nil, eventResult(updated), nil
	}
}
