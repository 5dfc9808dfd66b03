package repository

import (
	"sdet_prep_backend/internal/model"

	"gorm.io/gorm"
)

type TopicProgressRepository struct {
	DB *gorm.DB
}

func NewTopicProgressRepository(db *gorm.DB) *TopicProgressRepository {
	return &TopicProgressRepository{DB: db}
}

func (r *TopicProgressRepository) FindByUserAndTopic(userID uint, topic string) (*model.TopicProgress, error) {
	var progress model.TopicProgress
	err := r.DB.Where("user_id = ? AND topic = ?", userID, topic).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *TopicProgressRepository) FindByUser(userID uint) ([]model.TopicProgress, error) {
	var progress []model.TopicProgress
	err := r.DB.Where("user_id = ?", userID).Order("topic").Find(&progress).Error
	return progress, err
}

func (r *TopicProgressRepository) Save(progress *model.TopicProgress) error {
	return r.DB.Save(progress).Error
}
