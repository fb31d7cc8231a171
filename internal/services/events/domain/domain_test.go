package domain

import (
	"testing"
	"time"
)

func TestEventParticipantLookups(t *testing.T) {
	t.Parallel()

	event := Event{Participants: []Participant{{ID: 1, Name: "Jose Rizal"}}}
	if !event.HasParticipant(1) {
		t.Fatal("expected participant 1")
	}
	if event.HasParticipant(2) {
		t.Fatal("did not expect participant 2")
	}
	if !event.HasParticipantNamed("Jose Rizal") {
		t.Fatal("expected participant named Jose Rizal")
	}
	if event.HasParticipantNamed("jose rizal") {
		t.Fatal("name match must be exact")
	}
}

func TestEventPatchApply(t *testing.T) {
	t.Parallel()

	name := "Renamed"
	event := Event{ID: 7, Name: "Event 7", Date: "2026-01-01"}
	got := EventPatch{Name: &name}.Apply(event)
	if got.Name != "Renamed" || got.Date != "2026-01-01" || got.ID != 7 {
		t.Fatalf("Apply() = %+v", got)
	}
	if (EventPatch{}).Empty() != true {
		t.Fatal("expected empty patch")
	}
	if (EventPatch{Participants: []Participant{}}).Empty() {
		t.Fatal("explicit empty participant list is a change")
	}
}

func TestParseDirection(t *testing.T) {
	t.Parallel()

	tests := map[string]Direction{
		"next":  DirectionNext,
		" PREV": DirectionPrev,
		"first": DirectionFirst,
		"last":  DirectionLast,
		"":      DirectionNone,
		"up":    DirectionNone,
	}
	for raw, want := range tests {
		if got := ParseDirection(raw); got != want {
			t.Fatalf("ParseDirection(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestSearchQueryActive(t *testing.T) {
	t.Parallel()

	if (SearchQuery{Name: "  "}).Active() {
		t.Fatal("whitespace query should be inactive")
	}
	if !(SearchQuery{Participant: "ana"}).Active() {
		t.Fatal("participant query should be active")
	}
}

func TestFormatCreatedAt(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 3, 4, 5, 6, 7, 890_000_000, time.FixedZone("x", 3600))
	if got := FormatCreatedAt(ts); got != "2025-03-04T04:06:07.890Z" {
		t.Fatalf("FormatCreatedAt() = %q", got)
	}
}
