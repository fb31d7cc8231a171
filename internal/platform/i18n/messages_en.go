package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.AmericanEnglish

	// Titles
	message.SetString(lang, "title.login", "Sign In | Events")
	message.SetString(lang, "title.events", "Events")
	message.SetString(lang, "title.not_found", "Page not found")

	// Login
	message.SetString(lang, "login.heading", "Sign in")
	message.SetString(lang, "login.username", "Username")
	message.SetString(lang, "login.password", "Password")
	message.SetString(lang, "login.submit", "Sign in")

	// Events
	message.SetString(lang, "events.heading", "Events")
	message.SetString(lang, "events.signed_in_as", "Signed in as %s")
	message.SetString(lang, "events.sign_out", "Sign out")
	message.SetString(lang, "events.search", "Search")
	message.SetString(lang, "events.clear", "Clear")
	message.SetString(lang, "events.name", "Name")
	message.SetString(lang, "events.date", "Date")
	message.SetString(lang, "events.participant", "Participant")
	message.SetString(lang, "events.created_by", "Created by %s")
	message.SetString(lang, "events.participants", "Participants")
	message.SetString(lang, "events.add", "Add event")
	message.SetString(lang, "events.update", "Save")
	message.SetString(lang, "events.delete", "Delete")
	message.SetString(lang, "events.join", "Join")
	message.SetString(lang, "events.join_name", "Your name")
	message.SetString(lang, "events.remove", "Remove")
	message.SetString(lang, "events.empty", "No events found.")
	message.SetString(lang, "events.total", "%d events")
	message.SetString(lang, "events.loading", "Loading…")

	// Pagination
	message.SetString(lang, "pagination.first", "First")
	message.SetString(lang, "pagination.prev", "Previous")
	message.SetString(lang, "pagination.next", "Next")
	message.SetString(lang, "pagination.last", "Last")
	message.SetString(lang, "pagination.page", "Page %d of %d")

	// Not found
	message.SetString(lang, "not_found.message", "The page you are looking for does not exist.")
	message.SetString(lang, "not_found.back", "Back to sign in")

	// Notices
	message.SetString(lang, "notice.signed_in", "Welcome back.")
	message.SetString(lang, "notice.signed_out", "You have been signed out.")
	message.SetString(lang, "notice.event_created", "Event created.")
	message.SetString(lang, "notice.event_updated", "Event updated.")
	message.SetString(lang, "notice.event_deleted", "Event deleted.")
	message.SetString(lang, "notice.event_joined", "You joined the event.")
	message.SetString(lang, "notice.participant_removed", "Participant removed.")

	// Errors
	message.SetString(lang, "error.unknown", "Something went wrong. Please try again.")
	message.SetString(lang, "error.invalid_credentials", "Invalid username or password.")
	message.SetString(lang, "error.credentials_required", "Username and password are required.")
	message.SetString(lang, "error.event_name_required", "Event name is required.")
	message.SetString(lang, "error.event_date_required", "Event date is required.")
	message.SetString(lang, "error.event_id_invalid", "Event id is invalid.")
	message.SetString(lang, "error.event_exists", "An event with this name and date already exists.")
	message.SetString(lang, "error.event_not_found", "Event not found.")
	message.SetString(lang, "error.participant_name_required", "Participant name is required.")
	message.SetString(lang, "error.participant_id_required", "Participant id is required.")
	message.SetString(lang, "error.participant_exists", "This participant already joined the event.")
	message.SetString(lang, "error.participant_name_taken", "Someone with this name already joined the event.")
	message.SetString(lang, "error.participant_remove_failed", "Could not remove the participant.")
	message.SetString(lang, "error.gateway_unreachable", "The events service is unreachable.")
	message.SetString(lang, "error.gateway_status", "The events service returned an error.")
	message.SetString(lang, "error.gateway_decode", "The events service returned an unexpected response.")
	message.SetString(lang, "error.storage", "Local session storage failed.")
}
