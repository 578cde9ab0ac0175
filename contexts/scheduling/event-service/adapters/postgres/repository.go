// Package postgresadapter persists calendar events through gorm.
package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"gorm.io/gorm"

	"calendar/contexts/scheduling/event-service/domain/entities"
	"calendar/internal/shared/results"
)

type eventModel struct {
	ID          int       `gorm:"primaryKey;autoIncrement"`
	Title       string    `gorm:"size:100;not null"`
	Description string    `gorm:"size:1000"`
	AllDay      bool      `gorm:"not null"`
	StartTime   time.Time `gorm:"not null;index"`
	EndTime     time.Time `gorm:"not null"`
	UserID      string    `gorm:"size:36;not null;index"`
}

func (eventModel) TableName() string { return "events" }

func (m eventModel) toEntity() entities.Event {
	return entities.Event{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		AllDay:      m.AllDay,
		StartTime:   m.StartTime,
		EndTime:     m.EndTime,
		UserID:      m.UserID,
	}
}

func fromEntity(e entities.Event) eventModel {
	return eventModel{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		AllDay:      e.AllDay,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		UserID:      e.UserID,
	}
}

// AutoMigrate creates or updates the events table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&eventModel{})
}

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) GetByID(ctx context.Context, eventID int) results.Store[entities.Event] {
	var row eventModel
	err := r.db.WithContext(ctx).First(&row, eventID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return results.StoreMissing[entities.Event](strconv.Itoa(eventID))
		}
		r.logStoreFault("event_store_get_failed", eventID, err)
		return results.StoreFault[entities.Event](err, "")
	}
	return results.StoreValue(row.toEntity())
}

func (r *Repository) Add(ctx context.Context, event *entities.Event) results.StoreAck {
	row := fromEntity(*event)
	res := r.db.WithContext(ctx).Create(&row)
	if res.Error != nil {
		r.logStoreFault("event_store_add_failed", 0, res.Error)
		return results.StoreError(res.Error, "")
	}
	if res.RowsAffected == 0 {
		return results.StoreFailure("save to database failed")
	}
	event.ID = row.ID
	return results.StoreOk()
}

func (r *Repository) Update(ctx context.Context, event entities.Event) results.StoreAck {
	row := fromEntity(event)
	res := r.db.WithContext(ctx).
		Model(&eventModel{ID: event.ID}).
		Select("title", "description", "all_day", "start_time", "end_time").
		Updates(row)
	if res.Error != nil {
		r.logStoreFault("event_store_update_failed", event.ID, res.Error)
		return results.StoreError(res.Error, "")
	}
	if res.RowsAffected == 0 {
		return results.StoreNotFound(strconv.Itoa(event.ID))
	}
	return results.StoreOk()
}

func (r *Repository) Delete(ctx context.Context, eventID int) results.StoreAck {
	res := r.db.WithContext(ctx).Delete(&eventModel{}, eventID)
	if res.Error != nil {
		r.logStoreFault("event_store_delete_failed", eventID, res.Error)
		return results.StoreError(res.Error, "")
	}
	if res.RowsAffected == 0 {
		return results.StoreNotFound(strconv.Itoa(eventID))
	}
	return results.StoreOk()
}

func (r *Repository) ListForUserOnDate(ctx context.Context, userID string, date time.Time) results.Store[[]entities.Event] {
	return r.ListForUserBetweenDates(ctx, userID, date, date)
}

func (r *Repository) ListForUserBetweenDates(ctx context.Context, userID string, start, end time.Time) results.Store[[]entities.Event] {
	var rows []eventModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("start_time::date <= ?::date", end).
		Where("end_time::date >= ?::date", start).
		Order("id").
		Find(&rows).
		Error
	if err != nil {
		r.logger.Error("event store list failed",
			"event", "event_store_list_failed",
			"module", "scheduling/event-service",
			"layer", "adapters",
			"user_id", userID,
			"start", start,
			"end", end,
			"error", err.Error(),
		)
		return results.StoreFault[[]entities.Event](err, "")
	}
	events := make([]entities.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, row.toEntity())
	}
	return results.StoreValue(events)
}

func (r *Repository) logStoreFault(event string, eventID int, err error) {
	r.logger.Error("event store operation failed",
		"event", event,
		"module", "scheduling/event-service",
		"layer", "adapters",
		"event_id", eventID,
		"error", err.Error(),
	)
}
