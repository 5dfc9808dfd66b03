package repository

import (
	"sdet_prep_backend/internal/model"

	"gorm.io/gorm"
)

type AnswerTemplateRepository struct {
	DB *gorm.DB
}

func NewAnswerTemplateRepository(db *gorm.DB) *AnswerTemplateRepository {
	return &AnswerTemplateRepository{DB: db}
}

func (r *AnswerTemplateRepository) FindByTopic(topic string) ([]model.AnswerTemplate, error) {
	var templates []model.AnswerTemplate
	err := r.DB.Where("topic = ?", topic).Find(&templates).Error
	return templates, err
}

func (r *AnswerTemplateRepository) FindByTopicAndQuestion(topic, question string) (*model.AnswerTemplate, error) {
	var template model.AnswerTemplate
	err := r.DB.Where("topic = ? AND question = ?", topic, question).First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}
