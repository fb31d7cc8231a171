package jsonserver

import (
	"fmt"

	"github.com/louisbranch/eventboard/internal/services/events/domain"
)

// Users returns the default account set: one admin and three regular users.
func Users() []domain.User {
	return []domain.User{
		{ID: 10000000025435, Username: "admin", Password: "admin123", Name: "Admin", Role: domain.RoleAdmin},
		{ID: 10000000000001, Username: "user1", Password: "user123", Name: "User One", Role: domain.RoleMember},
		{ID: 10000000000002, Username: "user2", Password: "user123", Name: "User Two", Role: domain.RoleMember},
		{ID: 10000000000003, Username: "user3", Password: "user123", Name: "User Three", Role: domain.RoleMember},
	}
}

// Events returns n events with ids 1..n named "Event <id>".
// Event 1 has participants Ana and Juan; every other event has Jose Rizal.
func Events(n int) []domain.Event {
	events := make([]domain.Event, 0, n)
	for i := 1; i <= n; i++ {
		participants := []domain.Participant{{ID: 10000000010001, Name: "Jose Rizal"}}
		if i == 1 {
			participants = []domain.Participant{
				{ID: 10000000010002, Name: "Ana Maria"},
				{ID: 10000000010003, Name: "Juan Dela Cruz"},
			}
		}
		events = append(events, domain.Event{
			ID:           int64(i),
			Name:         fmt.Sprintf("Event %d", i),
			Date:         fmt.Sprintf("2030-01-%02d", (i-1)%28+1),
			CreatedBy:    "admin",
			CreatedAt:    "2025-01-01T00:00:00.000Z",
			Participants: participants,
		})
	}
	return events
}
