package repository

import (
	"sdet_prep_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) ListTopics() ([]string, error) {
	var topics []string
	err := r.DB.Model(&model.InterviewQuestion{}).
		Distinct("topic").
		Order("topic").
		Pluck("topic", &topics).Error
	return topics, err
}

func (r *QuestionRepository) FindRandomByTopic(topic string) (*model.InterviewQuestion, error) {
	var question model.InterviewQuestion
	err := r.DB.Where("topic = ?", topic).
		Order("RAND()").
		First(&question).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) FindRandom() (*model.InterviewQuestion, error) {
	var question model.InterviewQuestion
	err := r.DB.Order("RAND()").First(&question).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) CountByTopic(topic string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.InterviewQuestion{}).
		Where("topic = ?", topic).
		Count(&count).Error
	return count, err
}
