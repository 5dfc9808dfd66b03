package repository

import (
	"sdet_prep_backend/internal/model"

	"gorm.io/gorm"
)

type EntitlementRepository struct {
	DB *gorm.DB
}

func NewEntitlementRepository(db *gorm.DB) *EntitlementRepository {
	return &EntitlementRepository{DB: db}
}

func (r *EntitlementRepository) FindByUserID(userID uint) (*model.EntitlementState, error) {
	var state model.EntitlementState
	err := r.DB.Where("user_id = ?", userID).First(&state).Error
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// Save writes the full state, inserting on first use.
func (r *EntitlementRepository) Save(state *model.EntitlementState) error {
	return r.DB.Save(state).Error
}
