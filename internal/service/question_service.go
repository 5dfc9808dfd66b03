package service

import (
	"errors"
	"sdet_prep_backend/internal/model"
	"sdet_prep_backend/internal/repository"
	"sdet_prep_backend/internal/util"

	"gorm.io/gorm"
)

// TopicSummary pairs a topic name with the size of its question pool.
type TopicSummary struct {
	Topic         string `json:"topic"`
	QuestionCount int64  `json:"questionCount"`
}

// QuestionService serves the interview question bank and the curated answer
// templates.
type QuestionService struct {
	questions *repository.QuestionRepository
	templates *repository.AnswerTemplateRepository
}

func NewQuestionService(questions *repository.QuestionRepository, templates *repository.AnswerTemplateRepository) *QuestionService {
	return &QuestionService{questions: questions, templates: templates}
}

func (s *QuestionService) Topics() ([]TopicSummary, error) {
	topics, err := s.questions.ListTopics()
	if err != nil {
		return nil, err
	}

	summaries := make([]TopicSummary, 0, len(topics))
	for _, topic := range topics {
		count, err := s.questions.CountByTopic(topic)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, TopicSummary{Topic: topic, QuestionCount: count})
	}
	return summaries, nil
}

func (s *QuestionService) RandomQuestion(topic string) (*model.InterviewQuestion, error) {
	question, err := s.questions.FindRandomByTopic(topic)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) RandomAnyQuestion() (*model.InterviewQuestion, error) {
	question, err := s.questions.FindRandom()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) TemplatesForTopic(topic string) ([]model.AnswerTemplate, error) {
	templates, err := s.templates.FindByTopic(topic)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, util.ErrTemplateNotFound
	}
	return templates, nil
}
