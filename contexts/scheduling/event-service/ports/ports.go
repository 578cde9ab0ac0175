package ports

import (
	"context"
	"time"

	"calendar/contexts/scheduling/event-service/domain/entities"
	"calendar/internal/shared/results"
)

// EventStore is the persistence gateway for calendar events. Every call
// reports its outcome through a store envelope; NotFound and faults are
// statuses, never panics.
type EventStore interface {
	// GetByID fetches one event.
	GetByID(ctx context.Context, eventID int) results.Store[entities.Event]
	// Add persists a new event and assigns its ID on the passed entity.
	Add(ctx context.Context, event *entities.Event) results.StoreAck
	// Update replaces the stored row for event.ID.
	Update(ctx context.Context, event entities.Event) results.StoreAck
	// Delete removes the event physically.
	Delete(ctx context.Context, eventID int) results.StoreAck
	// ListForUserOnDate returns the user's events whose date interval
	// contains the given date (inclusive, date granularity).
	ListForUserOnDate(ctx context.Context, userID string, date time.Time) results.Store[[]entities.Event]
	// ListForUserBetweenDates returns the user's events whose date interval
	// intersects [start, end] (inclusive on both ends, date granularity).
	ListForUserBetweenDates(ctx context.Context, userID string, start, end time.Time) results.Store[[]entities.Event]
}
