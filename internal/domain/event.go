package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event represents a domain event that occurred.
// Events are immutable facts about something that happened.
type Event struct {
	ID        uuid.UUID
	Type      string
	Timestamp time.Time
	Data      map[string]any
}

// Event type constants
const (
	EventReportCreated = "report.created"
	EventReportUpdated = "report.updated"
	EventReportDeleted = "report.deleted"
	EventUserSignedUp  = "user.signed_up"
	EventUserLoggedIn  = "user.logged_in"
	EventUserLoggedOut = "user.logged_out"
)

// NewEvent creates a new domain event.
func NewEvent(eventType string, data map[string]any) Event {
	if data == nil {
		data = make(map[string]any)
	}
	return Event{
		ID:        uuid.New(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

func ReportCreatedEvent(r *Report) Event {
	return NewEvent(EventReportCreated, map[string]any{
		"id":    r.ID,
		"kind":  r.Kind,
		"owner": r.CreatedBy,
	})
}

func ReportUpdatedEvent(r *Report, field string) Event {
	return NewEvent(EventReportUpdated, map[string]any{
		"id":    r.ID,
		"field": field,
	})
}

func ReportDeletedEvent(id int) Event {
	return NewEvent(EventReportDeleted, map[string]any{
		"id": id,
	})
}

func UserSignedUpEvent(a *Account) Event {
	return NewEvent(EventUserSignedUp, map[string]any{
		"id":    a.ID,
		"email": a.Email,
	})
}

func UserLoggedInEvent(a *Account, ipAddress string) Event {
	return NewEvent(EventUserLoggedIn, map[string]any{
		"id":         a.ID,
		"email":      a.Email,
		"ip_address": ipAddress,
	})
}

func UserLoggedOutEvent(id int) Event {
	return NewEvent(EventUserLoggedOut, map[string]any{
		"id": id,
	})
}
