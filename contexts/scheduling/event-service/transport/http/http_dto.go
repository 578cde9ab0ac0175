package httptransport

import (
	"encoding/json"
	"time"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// EventCreateRequest is the request body for creating an event. The owner is
// never part of the body; it comes from the authenticated caller.
type EventCreateRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AllDay      bool      `json:"allDay"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
}

// EventUpdateRequest is the request body for a full update. AllDay is not
// mutable through this path; the stored flag governs normalization.
type EventUpdateRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
}

// PatchOperation is one RFC 6902 operation targeting a patchable event field
// (/title, /description, /startTime, /endTime).
type PatchOperation struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value"`
}

type EventResponse struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AllDay      bool      `json:"allDay"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
}

// PartialEventResponse is the trimmed shape used by the calendar grid list
// endpoints.
type PartialEventResponse struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	AllDay    bool      `json:"allDay"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}
