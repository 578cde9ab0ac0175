// Package memory is the in-memory event store used by tests and DSN-less
// local runs.
package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"calendar/contexts/scheduling/event-service/domain/entities"
	"calendar/internal/shared/results"
)

type Store struct {
	mu     sync.RWMutex
	events map[int]entities.Event
	nextID int

	// Fault, when set, makes every call report a store fault. Test hook for
	// the error propagation paths.
	Fault error
}

func NewStore() *Store {
	return &Store{events: make(map[int]entities.Event)}
}

func (s *Store) GetByID(_ context.Context, eventID int) results.Store[entities.Event] {
	if s.Fault != nil {
		return results.StoreFault[entities.Event](s.Fault, "")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	event, ok := s.events[eventID]
	if !ok {
		return results.StoreMissing[entities.Event](strconv.Itoa(eventID))
	}
	return results.StoreValue(event)
}

func (s *Store) Add(_ context.Context, event *entities.Event) results.StoreAck {
	if s.Fault != nil {
		return results.StoreError(s.Fault, "")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	event.ID = s.nextID
	s.events[event.ID] = *event
	return results.StoreOk()
}

func (s *Store) Update(_ context.Context, event entities.Event) results.StoreAck {
	if s.Fault != nil {
		return results.StoreError(s.Fault, "")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[event.ID]; !ok {
		return results.StoreNotFound(strconv.Itoa(event.ID))
	}
	s.events[event.ID] = event
	return results.StoreOk()
}

func (s *Store) Delete(_ context.Context, eventID int) results.StoreAck {
	if s.Fault != nil {
		return results.StoreError(s.Fault, "")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[eventID]; !ok {
		return results.StoreNotFound(strconv.Itoa(eventID))
	}
	delete(s.events, eventID)
	return results.StoreOk()
}

func (s *Store) ListForUserOnDate(ctx context.Context, userID string, date time.Time) results.Store[[]entities.Event] {
	return s.ListForUserBetweenDates(ctx, userID, date, date)
}

func (s *Store) ListForUserBetweenDates(_ context.Context, userID string, start, end time.Time) results.Store[[]entities.Event] {
	if s.Fault != nil {
		return results.StoreFault[[]entities.Event](s.Fault, "")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := make([]entities.Event, 0)
	for _, event := range s.events {
		if event.UserID != userID {
			continue
		}
		if entities.SameOrBeforeDate(event.StartTime, end) && entities.SameOrBeforeDate(start, event.EndTime) {
			matched = append(matched, event)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return results.StoreValue(matched)
}
