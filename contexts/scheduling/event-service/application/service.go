package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"calendar/contexts/scheduling/event-service/domain/entities"
	"calendar/contexts/scheduling/event-service/ports"
	"calendar/internal/shared/results"
)

const (
	// MsgStartBeforeEnd is matched verbatim by the SPA; do not reword.
	MsgStartBeforeEnd = "Start time should be before end time."
	// MsgRangeOrder guards the range query parameters.
	MsgRangeOrder = "start date must be inferior or equal to end date."
)

// CreateEventInput is the application-level create request. The owner is
// supplied separately by the transport layer from the verified token.
type CreateEventInput struct {
	Title       string
	Description string
	AllDay      bool
	StartTime   time.Time
	EndTime     time.Time
}

// UpdateEventInput replaces every mutable field of an event. AllDay is not
// part of the update surface: the stored flag governs normalization.
type UpdateEventInput struct {
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
}

// Service is the event validation and mutation engine. All operations report
// through the service result envelope; the store is never touched once a
// request has failed validation.
//
// EnforceOwner is the ownership policy for id-keyed operations. Historically
// those operations accepted any id from an authenticated caller; with the
// policy on, an event owned by someone else is reported as NotFound so its
// existence is not revealed. List queries always filter by owner.
type Service struct {
	Events       ports.EventStore
	Logger       *slog.Logger
	EnforceOwner bool
}

// GetByID fetches a single event.
func (s Service) GetByID(ctx context.Context, eventID int, callerID string) results.Result[entities.Event] {
	get := s.Events.GetByID(ctx, eventID)
	if get.IsOk() && !s.callerMayTouch(get.Entity(), callerID) {
		return results.NotFound[entities.Event]()
	}
	return results.FromStore(get, passthrough, fmt.Sprintf("failed to fetch event [%d]", eventID))
}

// Create validates and persists a new event owned by the caller.
func (s Service) Create(ctx context.Context, input CreateEventInput, ownerID string) results.Result[entities.Event] {
	if msg, ok := validateFields(input.Title, input.Description); !ok {
		return results.BadRequest[entities.Event](msg)
	}

	start, end := normalizeRange(input.AllDay, input.StartTime, input.EndTime)
	if !start.Before(end) {
		return results.Unprocessable[entities.Event](MsgStartBeforeEnd)
	}

	event := entities.Event{
		Title:       input.Title,
		Description: input.Description,
		AllDay:      input.AllDay,
		StartTime:   start,
		EndTime:     end,
		UserID:      ownerID,
	}

	if add := s.Events.Add(ctx, &event); add.IsError() {
		return results.Error[entities.Event](add.Message())
	}
	return results.Ok(event)
}

// Update replaces the mutable fields of an existing event. The entity is
// fetched first so normalization sees the stored AllDay flag; validation
// always runs on the final values that would be persisted.
func (s Service) Update(ctx context.Context, eventID int, input UpdateEventInput, callerID string) results.Result[entities.Event] {
	get := s.Events.GetByID(ctx, eventID)
	if get.IsNotFound() {
		return results.NotFound[entities.Event]()
	}
	if get.IsError() {
		return results.Error[entities.Event](fmt.Sprintf("failed to update event [%d]", eventID))
	}

	event := get.Entity()
	if !s.callerMayTouch(event, callerID) {
		return results.NotFound[entities.Event]()
	}

	if msg, ok := validateFields(input.Title, input.Description); !ok {
		return results.BadRequest[entities.Event](msg)
	}

	start, end := normalizeRange(event.AllDay, input.StartTime, input.EndTime)
	if !start.Before(end) {
		return results.Unprocessable[entities.Event](MsgStartBeforeEnd)
	}

	event.Title = input.Title
	event.Description = input.Description
	event.StartTime = start
	event.EndTime = end

	if save := s.Events.Update(ctx, event); !save.IsOk() {
		if save.IsNotFound() {
			return results.NotFound[entities.Event]()
		}
		return results.Error[entities.Event](fmt.Sprintf("failed to update event [%d]", eventID))
	}
	return results.Ok(event)
}

// Patch applies an ordered batch of field operations to an existing event.
// The batch is atomic: if any operation is invalid, or the patched values
// fail validation, nothing reaches the store.
func (s Service) Patch(ctx context.Context, eventID int, operations []PatchOperation, callerID string) results.Result[entities.Event] {
	get := s.Events.GetByID(ctx, eventID)
	if get.IsNotFound() {
		return results.NotFound[entities.Event]()
	}
	if get.IsError() {
		return results.Error[entities.Event](fmt.Sprintf("failed to patch event [%d]", eventID))
	}

	event := get.Entity()
	if !s.callerMayTouch(event, callerID) {
		return results.NotFound[entities.Event]()
	}

	view, err := applyPatch(event, operations)
	if err != nil {
		resolveLogger(s.Logger).Error("event patch application failed",
			"event", "event_patch_apply_failed",
			"module", "scheduling/event-service",
			"layer", "application",
			"event_id", eventID,
			"error", err.Error(),
		)
		return results.Unprocessable[entities.Event]("invalid patch document")
	}

	if msg, ok := validateFields(view.Title, view.Description); !ok {
		return results.BadRequest[entities.Event](msg)
	}

	start, end := normalizeRange(event.AllDay, view.StartTime, view.EndTime)
	if !start.Before(end) {
		return results.Unprocessable[entities.Event](MsgStartBeforeEnd)
	}

	event.Title = view.Title
	event.Description = view.Description
	event.StartTime = start
	event.EndTime = end

	if save := s.Events.Update(ctx, event); !save.IsOk() {
		if save.IsNotFound() {
			return results.NotFound[entities.Event]()
		}
		return results.Error[entities.Event](fmt.Sprintf("failed to patch event [%d]", eventID))
	}
	return results.Ok(event)
}

// Delete removes an event physically. Deleting an absent id is NotFound.
func (s Service) Delete(ctx context.Context, eventID int, callerID string) results.Ack {
	if s.EnforceOwner {
		get := s.Events.GetByID(ctx, eventID)
		if get.IsNotFound() {
			return results.AckNotFound()
		}
		if get.IsError() {
			return results.AckError(fmt.Sprintf("failed to delete event [%d]", eventID))
		}
		if !s.callerMayTouch(get.Entity(), callerID) {
			return results.AckNotFound()
		}
	}
	return results.FromStoreAck(s.Events.Delete(ctx, eventID), fmt.Sprintf("failed to delete event [%d]", eventID))
}

// ListOnDate returns the caller's events whose date interval contains the
// given date.
func (s Service) ListOnDate(ctx context.Context, userID string, date time.Time) results.Result[[]entities.Event] {
	return results.FromStore(s.Events.ListForUserOnDate(ctx, userID, date), passthroughList, "")
}

// ListBetween returns the caller's events whose date interval intersects
// [start, end]. The bounds are checked before the store is queried.
func (s Service) ListBetween(ctx context.Context, userID string, start, end time.Time) results.Result[[]entities.Event] {
	if !entities.SameOrBeforeDate(start, end) {
		return results.BadRequest[[]entities.Event](MsgRangeOrder)
	}
	return results.FromStore(s.Events.ListForUserBetweenDates(ctx, userID, start, end), passthroughList, "")
}

func (s Service) callerMayTouch(event entities.Event, callerID string) bool {
	if !s.EnforceOwner {
		return true
	}
	return event.UserID == callerID
}

func normalizeRange(allDay bool, start, end time.Time) (time.Time, time.Time) {
	if allDay {
		return entities.TruncateToDate(start), entities.TruncateToDate(end)
	}
	return start, end
}

func validateFields(title, description string) (string, bool) {
	if strings.TrimSpace(title) == "" {
		return "title is required", false
	}
	// Bounds count characters, not bytes.
	if utf8.RuneCountInString(title) > entities.MaxTitleLength {
		return fmt.Sprintf("title must be at most %d characters", entities.MaxTitleLength), false
	}
	if utf8.RuneCountInString(description) > entities.MaxDescriptionLength {
		return fmt.Sprintf("description must be at most %d characters", entities.MaxDescriptionLength), false
	}
	return "", true
}

func passthrough(event entities.Event) entities.Event { return event }

func passthroughList(events []entities.Event) []entities.Event { return events }
