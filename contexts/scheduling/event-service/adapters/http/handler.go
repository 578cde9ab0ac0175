// Package httpadapter maps HTTP DTOs to the event application service.
package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"calendar/contexts/scheduling/event-service/application"
	"calendar/contexts/scheduling/event-service/domain/entities"
	httptransport "calendar/contexts/scheduling/event-service/transport/http"
	"calendar/internal/shared/results"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) GetEventHandler(ctx context.Context, eventID int, callerID string) results.Result[httptransport.EventResponse] {
	return results.Map(h.Service.GetByID(ctx, eventID, callerID), toEventResponse)
}

func (h Handler) CreateEventHandler(ctx context.Context, request httptransport.EventCreateRequest, callerID string) results.Result[httptransport.EventResponse] {
	input := application.CreateEventInput{
		Title:       request.Title,
		Description: request.Description,
		AllDay:      request.AllDay,
		StartTime:   request.StartTime,
		EndTime:     request.EndTime,
	}
	return results.Map(h.Service.Create(ctx, input, callerID), toEventResponse)
}

func (h Handler) UpdateEventHandler(ctx context.Context, eventID int, request httptransport.EventUpdateRequest, callerID string) results.Result[httptransport.EventResponse] {
	input := application.UpdateEventInput{
		Title:       request.Title,
		Description: request.Description,
		StartTime:   request.StartTime,
		EndTime:     request.EndTime,
	}
	return results.Map(h.Service.Update(ctx, eventID, input, callerID), toEventResponse)
}

func (h Handler) PatchEventHandler(ctx context.Context, eventID int, operations []httptransport.PatchOperation, callerID string) results.Result[httptransport.EventResponse] {
	ops := make([]application.PatchOperation, 0, len(operations))
	for _, op := range operations {
		ops = append(ops, application.PatchOperation{Op: op.Op, Path: op.Path, Value: op.Value})
	}
	return results.Map(h.Service.Patch(ctx, eventID, ops, callerID), toEventResponse)
}

func (h Handler) DeleteEventHandler(ctx context.Context, eventID int, callerID string) results.Ack {
	return h.Service.Delete(ctx, eventID, callerID)
}

func (h Handler) ListOnDateHandler(ctx context.Context, callerID string, date time.Time) results.Result[[]httptransport.PartialEventResponse] {
	return results.Map(h.Service.ListOnDate(ctx, callerID, date), toPartialResponses)
}

func (h Handler) ListBetweenHandler(ctx context.Context, callerID string, start, end time.Time) results.Result[[]httptransport.PartialEventResponse] {
	return results.Map(h.Service.ListBetween(ctx, callerID, start, end), toPartialResponses)
}

func toEventResponse(event entities.Event) httptransport.EventResponse {
	return httptransport.EventResponse{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		AllDay:      event.AllDay,
		StartTime:   event.StartTime,
		EndTime:     event.EndTime,
	}
}

func toPartialResponses(events []entities.Event) []httptransport.PartialEventResponse {
	responses := make([]httptransport.PartialEventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, httptransport.PartialEventResponse{
			ID:        event.ID,
			Title:     event.Title,
			AllDay:    event.AllDay,
			StartTime: event.StartTime,
			EndTime:   event.EndTime,
		})
	}
	return responses
}
