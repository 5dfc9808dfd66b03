package repository

import (
	"sdet_prep_backend/internal/model"

	"gorm.io/gorm"
)

type RecordingRepository struct {
	DB *gorm.DB
}

func NewRecordingRepository(db *gorm.DB) *RecordingRepository {
	return &RecordingRepository{DB: db}
}

func (r *RecordingRepository) Create(recording *model.Recording) error {
	return r.DB.Create(recording).Error
}

func (r *RecordingRepository) FindByID(id string) (*model.Recording, error) {
	var recording model.Recording
	err := r.DB.Where("id = ?", id).First(&recording).Error
	if err != nil {
		return nil, err
	}
	return &recording, nil
}

func (r *RecordingRepository) FindByIDForUser(id string, userID uint) (*model.Recording, error) {
	var recording model.Recording
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&recording).Error
	if err != nil {
		return nil, err
	}
	return &recording, nil
}
