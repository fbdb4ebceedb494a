package repository

import (
	"errors"
	"fmt"
	"time"

	"sharefm/model"

	"gorm.io/gorm"
)

// gormSessionRepository implements SessionRepository on the GORM connection.
type gormSessionRepository struct {
	db *gorm.DB
}

// NewGormSessionRepository creates a new instance of gormSessionRepository.
func NewGormSessionRepository(db *gorm.DB) SessionRepository {
	return &gormSessionRepository{db: db}
}

func (r *gormSessionRepository) Create(session *model.AccessSession) error {
	if err := r.db.Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *gormSessionRepository) Get(id string) (*model.AccessSession, error) {
	session := &model.AccessSession{}
	err := r.db.First(session, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Session not found
		}
		return nil, fmt.Errorf("failed to get session %s: %w", id, err)
	}
	return session, nil
}

func (r *gormSessionRepository) Delete(id string) error {
	if err := r.db.Delete(&model.AccessSession{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return nil
}

func (r *gormSessionRepository) DeleteExpired(now time.Time) (int64, error) {
	res := r.db.Where("expires_at <= ?", now).Delete(&model.AccessSession{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", res.Error)
	}
	return res.RowsAffected, nil
}
