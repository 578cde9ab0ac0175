package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	eventhttp "calendar/contexts/scheduling/event-service/transport/http"
)

// handleGetEvent godoc
//
//	@Summary  Get a calendar event
//	@Produce  json
//	@Param    eventId  path  int  true  "event id"
//	@Success  200  {object}  httptransport.EventResponse
//	@Failure  404  {object}  httptransport.ErrorResponse
//	@Router   /api/event/{eventId} [get]
func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request, userID string) {
	eventID, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	result := s.events.Handler.GetEventHandler(r.Context(), eventID, userID)
	if result.IsOk() {
		writeJSON(w, http.StatusOK, result.Value())
		return
	}
	writeResultStatus(w, result.Status(), result.Message(), writeEventError)
}

// handleCreateEvent godoc
//
//	@Summary  Add a new calendar event
//	@Accept   json
//	@Produce  json
//	@Success  201  {object}  httptransport.EventResponse
//	@Failure  422  {object}  httptransport.ErrorResponse
//	@Router   /api/event [post]
func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request, userID string) {
	var req eventhttp.EventCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEventError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	result := s.events.Handler.CreateEventHandler(r.Context(), req, userID)
	if result.IsOk() {
		w.Header().Set("Location", fmt.Sprintf("/api/event/%d", result.Value().ID))
		writeJSON(w, http.StatusCreated, result.Value())
		return
	}
	writeResultStatus(w, result.Status(), result.Message(), writeEventError)
}

// handleUpdateEvent godoc
//
//	@Summary  Replace a calendar event's fields
//	@Accept   json
//	@Produce  json
//	@Param    eventId  path  int  true  "event id"
//	@Success  200  {object}  httptransport.EventResponse
//	@Failure  422  {object}  httptransport.ErrorResponse
//	@Router   /api/event/{eventId} [patch]
func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request, userID string) {
	eventID, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	var req eventhttp.EventUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEventError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	result := s.events.Handler.UpdateEventHandler(r.Context(), eventID, req, userID)
	if result.IsOk() {
		writeJSON(w, http.StatusOK, result.Value())
		return
	}
	writeResultStatus(w, result.Status(), result.Message(), writeEventError)
}

// handlePatchEvent godoc
//
//	@Summary  Update specific fields of a calendar event
//	@Description  Accepts a JSON Patch document. Patchable paths: /title,
//	@Description  /description, /startTime, /endTime.
//	@Accept   json
//	@Produce  json
//	@Param    eventId  path  int  true  "event id"
//	@Success  200  {object}  httptransport.EventResponse
//	@Failure  422  {object}  httptransport.ErrorResponse
//	@Router   /api/event/{eventId}/partial [patch]
func (s *Server) handlePatchEvent(w http.ResponseWriter, r *http.Request, userID string) {
	eventID, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	var operations []eventhttp.PatchOperation
	if err := json.NewDecoder(r.Body).Decode(&operations); err != nil {
		writeEventError(w, http.StatusBadRequest, "invalid_json", "request body must be a JSON Patch document")
		return
	}
	if len(operations) == 0 {
		writeEventError(w, http.StatusBadRequest, "empty_patch", "patch document must contain at least one operation")
		return
	}
	result := s.events.Handler.PatchEventHandler(r.Context(), eventID, operations, userID)
	if result.IsOk() {
		writeJSON(w, http.StatusOK, result.Value())
		return
	}
	writeResultStatus(w, result.Status(), result.Message(), writeEventError)
}

// handleDeleteEvent godoc
//
//	@Summary  Delete a calendar event
//	@Param    eventId  path  int  true  "event id"
//	@Success  204
//	@Failure  404  {object}  httptransport.ErrorResponse
//	@Router   /api/event/{eventId} [delete]
func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request, userID string) {
	eventID, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	ack := s.events.Handler.DeleteEventHandler(r.Context(), eventID, userID)
	if ack.IsOk() {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeResultStatus(w, ack.Status(), ack.Message(), writeEventError)
}

// handleEventsOnDate godoc
//
//	@Summary  List the caller's events on a date
//	@Produce  json
//	@Param    date  path  string  true  "date (2006-01-02)"
//	@Success  200  {array}  httptransport.PartialEventResponse
//	@Router   /api/event/events/date/{date} [get]
func (s *Server) handleEventsOnDate(w http.ResponseWriter, r *http.Request, userID string) {
	date, err := parseDateParam(r.PathValue("date"))
	if err != nil {
		writeEventError(w, http.StatusBadRequest, "invalid_date", "date must be 2006-01-02 or RFC 3339")
		return
	}
	result := s.events.Handler.ListOnDateHandler(r.Context(), userID, date)
	if result.IsOk() {
		writeJSON(w, http.StatusOK, result.Value())
		return
	}
	writeResultStatus(w, result.Status(), result.Message(), writeEventError)
}

// handleEventsBetween godoc
//
//	@Summary  List the caller's events between two dates
//	@Produce  json
//	@Param    startDate  query  string  true  "start date (2006-01-02)"
//	@Param    endDate    query  string  true  "end date (2006-01-02)"
//	@Success  200  {array}  httptransport.PartialEventResponse
//	@Failure  400  {object}  httptransport.ErrorResponse
//	@Router   /api/event/events/range [get]
func (s *Server) handleEventsBetween(w http.ResponseWriter, r *http.Request, userID string) {
	query := r.URL.Query()
	start, err := parseDateParam(query.Get("startDate"))
	if err != nil {
		writeEventError(w, http.StatusBadRequest, "invalid_date", "startDate must be 2006-01-02 or RFC 3339")
		return
	}
	end, err := parseDateParam(query.Get("endDate"))
	if err != nil {
		writeEventError(w, http.StatusBadRequest, "invalid_date", "endDate must be 2006-01-02 or RFC 3339")
		return
	}
	result := s.events.Handler.ListBetweenHandler(r.Context(), userID, start, end)
	if result.IsOk() {
		writeJSON(w, http.StatusOK, result.Value())
		return
	}
	writeResultStatus(w, result.Status(), result.Message(), writeEventError)
}

func eventIDFromPath(w http.ResponseWriter, r *http.Request) (int, bool) {
	eventID, err := strconv.Atoi(r.PathValue("eventId"))
	if err != nil {
		writeEventError(w, http.StatusBadRequest, "invalid_event_id", "event id must be an integer")
		return 0, false
	}
	return eventID, true
}

func parseDateParam(value string) (time.Time, error) {
	if date, err := time.Parse("2006-01-02", value); err == nil {
		return date, nil
	}
	return time.Parse(time.RFC3339, value)
}

func writeEventError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, eventhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
