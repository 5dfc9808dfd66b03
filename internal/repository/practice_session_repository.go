package repository

import (
	"sdet_prep_backend/internal/model"

	"gorm.io/gorm"
)

// PracticeSessionRepository is an append-only session log. Sessions are never
// updated or deleted here; queries preserve insertion order.
type PracticeSessionRepository struct {
	DB *gorm.DB
}

func NewPracticeSessionRepository(db *gorm.DB) *PracticeSessionRepository {
	return &PracticeSessionRepository{DB: db}
}

func (r *PracticeSessionRepository) Append(session *model.PracticeSession) error {
	return r.DB.Create(session).Error
}

func (r *PracticeSessionRepository) FindByUser(userID uint) ([]model.PracticeSession, error) {
	var sessions []model.PracticeSession
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *PracticeSessionRepository) FindByTopic(userID uint, topic string) ([]model.PracticeSession, error) {
	var sessions []model.PracticeSession
	err := r.DB.Where("user_id = ? AND topic = ?", userID, topic).
		Order("created_at ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *PracticeSessionRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.PracticeSession{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
