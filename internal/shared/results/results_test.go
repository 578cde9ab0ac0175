package results

import (
	"errors"
	"testing"
)

func TestFromStoreProjectsOnOk(t *testing.T) {
	store := StoreValue(41)
	result := FromStore(store, func(v int) int { return v + 1 }, "")
	if !result.IsOk() {
		t.Fatalf("expected ok, got %s", result.Status())
	}
	if result.Value() != 42 {
		t.Fatalf("expected projected value 42, got %d", result.Value())
	}
}

func TestFromStoreNotFound(t *testing.T) {
	store := StoreMissing[int]("7")
	result := FromStore(store, func(v int) int { return v }, "ignored override")
	if !result.IsNotFound() {
		t.Fatalf("expected not found, got %s", result.Status())
	}
	if result.Message() != "" {
		t.Fatalf("not found should carry no message, got %q", result.Message())
	}
}

func TestFromStoreErrorPrefersOverride(t *testing.T) {
	store := StoreFault[int](errors.New("underlying"), "stored message")
	result := FromStore(store, func(v int) int { return v }, "override wins")
	if !result.IsError() {
		t.Fatalf("expected error, got %s", result.Status())
	}
	if result.Message() != "override wins" {
		t.Fatalf("expected override message, got %q", result.Message())
	}
}

func TestFromStoreErrorFallsBackToCause(t *testing.T) {
	store := StoreFault[int](errors.New("underlying fault"), "")
	result := FromStore(store, func(v int) int { return v }, "")
	if result.Message() != "underlying fault" {
		t.Fatalf("expected cause message, got %q", result.Message())
	}
}

func TestFromStoreErrorFallsBackToStoredMessage(t *testing.T) {
	store := StoreFault[int](nil, "stored only")
	result := FromStore(store, func(v int) int { return v }, "")
	if result.Message() != "stored only" {
		t.Fatalf("expected stored message, got %q", result.Message())
	}
}

func TestFromStoreAckMatchesFromStore(t *testing.T) {
	cases := []struct {
		name     string
		store    StoreAck
		override string
		status   Status
		message  string
	}{
		{"ok", StoreOk(), "", StatusOk, ""},
		{"not found", StoreNotFound("3"), "", StatusNotFound, ""},
		{"override", StoreError(errors.New("x"), "y"), "delete failed", StatusError, "delete failed"},
		{"cause", StoreError(errors.New("boom"), ""), "", StatusError, "boom"},
		{"stored", StoreFailure("save to database failed"), "", StatusError, "save to database failed"},
	}
	for _, tc := range cases {
		ack := FromStoreAck(tc.store, tc.override)
		if ack.Status() != tc.status {
			t.Fatalf("%s: expected status %s, got %s", tc.name, tc.status, ack.Status())
		}
		if ack.Message() != tc.message {
			t.Fatalf("%s: expected message %q, got %q", tc.name, tc.message, ack.Message())
		}
	}
}

func TestOkResultCarriesPayload(t *testing.T) {
	r := Ok("payload")
	if !r.IsOk() || r.Value() != "payload" {
		t.Fatalf("ok result lost its payload: %+v", r)
	}
	if r.IsNotFound() || r.IsError() || r.IsUnprocessable() || r.IsBadRequest() || r.IsUnauthorized() {
		t.Fatal("ok result reports a second active status")
	}
}

func TestStatusStrings(t *testing.T) {
	pairs := map[Status]string{
		StatusOk:            "ok",
		StatusNotFound:      "not_found",
		StatusError:         "error",
		StatusUnprocessable: "unprocessable",
		StatusBadRequest:    "bad_request",
		StatusUnauthorized:  "unauthorized",
	}
	for status, want := range pairs {
		if status.String() != want {
			t.Fatalf("expected %q, got %q", want, status.String())
		}
	}
}
