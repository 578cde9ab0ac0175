// Package postgresadapter persists accounts and sessions through gorm.
package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"calendar/contexts/identity-access/account-service/domain/entities"
	"calendar/contexts/identity-access/account-service/ports"
	"calendar/internal/shared/results"
)

const uniqueViolationCode = "23505"

type userModel struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Username     string    `gorm:"size:30;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:72;not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (userModel) TableName() string { return "users" }

type sessionModel struct {
	ID        string    `gorm:"primaryKey;size:36"`
	UserID    string    `gorm:"size:36;not null;index"`
	CreatedAt time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null"`
}

func (sessionModel) TableName() string { return "sessions" }

// AutoMigrate creates or updates the users and sessions tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&userModel{}, &sessionModel{})
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

func (r *Repository) FindByUsername(ctx context.Context, username string) results.Store[entities.User] {
	var row userModel
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return results.StoreMissing[entities.User](username)
		}
		r.logFault("account_store_find_failed", username, err)
		return results.StoreFault[entities.User](err, "")
	}
	return results.StoreValue(entities.User{
		ID:           row.ID,
		Username:     row.Username,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
	})
}

func (r *Repository) Add(ctx context.Context, user entities.User) results.StoreAck {
	row := userModel{
		ID:           user.ID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return results.StoreError(ports.ErrUsernameTaken, "")
		}
		r.logFault("account_store_add_failed", user.Username, err)
		return results.StoreError(err, "")
	}
	return results.StoreOk()
}

func (r *Repository) Open(ctx context.Context, session entities.Session) results.StoreAck {
	row := sessionModel{
		ID:        session.ID,
		UserID:    session.UserID,
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		r.logFault("session_store_open_failed", session.UserID, err)
		return results.StoreError(err, "")
	}
	return results.StoreOk()
}

func (r *Repository) Revoke(ctx context.Context, sessionID string) results.StoreAck {
	res := r.db.WithContext(ctx).Delete(&sessionModel{}, "id = ?", sessionID)
	if res.Error != nil {
		r.logFault("session_store_revoke_failed", sessionID, res.Error)
		return results.StoreError(res.Error, "")
	}
	if res.RowsAffected == 0 {
		return results.StoreNotFound(sessionID)
	}
	return results.StoreOk()
}

func (r *Repository) logFault(event, subject string, err error) {
	r.logger.Error("account store operation failed",
		"event", event,
		"module", "identity-access/account-service",
		"layer", "adapters",
		"subject", subject,
		"error", err.Error(),
	)
}
