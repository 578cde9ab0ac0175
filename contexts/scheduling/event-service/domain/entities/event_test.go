package entities

import (
	"testing"
	"time"
)

func TestTruncateToDate(t *testing.T) {
	in := time.Date(2024, 3, 10, 23, 59, 59, 999, time.UTC)
	got := TruncateToDate(in)
	want := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if got.Location() != in.Location() {
		t.Fatalf("truncation must not change the location")
	}
}

func TestSameOrBeforeDate(t *testing.T) {
	morning := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 3, 10, 22, 0, 0, 0, time.UTC)
	nextDay := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	if !SameOrBeforeDate(evening, morning) {
		t.Fatalf("instants on the same date compare equal at date granularity")
	}
	if !SameOrBeforeDate(morning, nextDay) {
		t.Fatalf("an earlier date is same-or-before a later one")
	}
	if SameOrBeforeDate(nextDay, evening) {
		t.Fatalf("a later date is not same-or-before an earlier one")
	}
}
