package application

import (
	"encoding/json"
	"fmt"
	"time"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"calendar/contexts/scheduling/event-service/domain/entities"
)

// PatchOperation is one field-level mutation instruction. Only the four
// patchable event fields are valid targets.
type PatchOperation struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value"`
}

// eventPatchView is the mutable projection patch documents apply to.
// Operations never touch the entity directly, so a failed batch leaves the
// stored event untouched. AllDay is deliberately absent: it is not patchable.
type eventPatchView struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
}

var patchablePaths = map[string]struct{}{
	"/title":       {},
	"/description": {},
	"/startTime":   {},
	"/endTime":     {},
}

// applyPatch applies the ordered operations to a projection of the event and
// returns the patched view. The batch is atomic: the first invalid operation
// fails the whole application.
func applyPatch(event entities.Event, operations []PatchOperation) (eventPatchView, error) {
	for _, op := range operations {
		switch op.Op {
		case "replace", "add":
		default:
			return eventPatchView{}, fmt.Errorf("unsupported patch op %q", op.Op)
		}
		if _, ok := patchablePaths[op.Path]; !ok {
			return eventPatchView{}, fmt.Errorf("unsupported patch path %q", op.Path)
		}
	}

	document, err := json.Marshal(operations)
	if err != nil {
		return eventPatchView{}, fmt.Errorf("encode patch document: %w", err)
	}
	patch, err := jsonpatch.DecodePatch(document)
	if err != nil {
		return eventPatchView{}, fmt.Errorf("decode patch document: %w", err)
	}

	view := eventPatchView{
		Title:       event.Title,
		Description: event.Description,
		StartTime:   event.StartTime,
		EndTime:     event.EndTime,
	}
	current, err := json.Marshal(view)
	if err != nil {
		return eventPatchView{}, fmt.Errorf("encode event projection: %w", err)
	}
	patched, err := patch.Apply(current)
	if err != nil {
		return eventPatchView{}, fmt.Errorf("apply patch: %w", err)
	}

	var out eventPatchView
	if err := json.Unmarshal(patched, &out); err != nil {
		return eventPatchView{}, fmt.Errorf("decode patched projection: %w", err)
	}
	return out, nil
}
