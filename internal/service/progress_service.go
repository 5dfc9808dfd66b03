package service

import (
	"errors"
	"sdet_prep_backend/internal/model"
	"sdet_prep_backend/internal/util"
	"sdet_prep_backend/pkg/clock"
	"sdet_prep_backend/pkg/logger"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProgressRepo is the persistence surface the aggregator needs.
type ProgressRepo interface {
	FindByUserAndTopic(userID uint, topic string) (*model.TopicProgress, error)
	FindByUser(userID uint) ([]model.TopicProgress, error)
	Save(progress *model.TopicProgress) error
}

// ProgressService maintains per-user per-topic rolling statistics. Averages
// are updated incrementally from the previous value and the new score, so a
// record never needs the full session history to stay correct.
type ProgressService struct {
	repo ProgressRepo
	clk  clock.Clock

	// Serializes read-modify-write cycles on progress rows. Contention is
	// per-process; one evaluation per user at a time keeps this cheap.
	mu sync.Mutex
}

func NewProgressService(repo ProgressRepo, clk clock.Clock) *ProgressService {
	return &ProgressService{repo: repo, clk: clk}
}

// RecordResult folds one scored session into the topic's aggregate. The
// strengths and improvement lists are snapshots of the latest evaluation,
// not accumulations.
func (s *ProgressService) RecordResult(userID uint, topic string, result *model.EvaluationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	progress, err := s.repo.FindByUserAndTopic(userID, topic)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		progress = &model.TopicProgress{UserID: userID, Topic: topic}
	}

	progress.QuestionsAnswered++
	n := float64(progress.QuestionsAnswered)
	progress.AverageTechnical = rollAverage(progress.AverageTechnical, n, float64(result.TechnicalScore))
	progress.AverageCommunication = rollAverage(progress.AverageCommunication, n, float64(result.CommunicationScore))
	progress.AverageScore = rollAverage(progress.AverageScore, n, float64(result.OverallScore))

	if result.OverallScore >= util.PassThreshold {
		progress.CorrectAnswers++
	}

	progress.Strengths = result.Strengths
	progress.AreasToImprove = result.Improvements
	progress.LastPracticeDate = s.clk.Now()

	if err := s.repo.Save(progress); err != nil {
		logger.Log.Error("failed to save topic progress",
			zap.Uint("userID", userID), zap.String("topic", topic), zap.Error(err))
		return err
	}
	return nil
}

// TopicProgress returns the aggregate for one topic, or a zero-valued row
// when the user has not practiced it yet.
func (s *ProgressService) TopicProgress(userID uint, topic string) (*model.TopicProgress, error) {
	progress, err := s.repo.FindByUserAndTopic(userID, topic)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.TopicProgress{UserID: userID, Topic: topic}, nil
		}
		return nil, err
	}
	return progress, nil
}

// Overview summarizes a user's practice across every topic they have
// touched.
type ProgressOverview struct {
	TotalQuestions int                   `json:"totalQuestions"`
	TotalCorrect   int                   `json:"totalCorrect"`
	AverageScore   float64               `json:"averageScore"`
	LastPractice   *time.Time            `json:"lastPractice,omitempty"`
	Topics         []model.TopicProgress `json:"topics"`
}

func (s *ProgressService) Overview(userID uint) (*ProgressOverview, error) {
	rows, err := s.repo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	overview := &ProgressOverview{Topics: rows}
	var weighted float64
	for i := range rows {
		row := &rows[i]
		overview.TotalQuestions += row.QuestionsAnswered
		overview.TotalCorrect += row.CorrectAnswers
		weighted += row.AverageScore * float64(row.QuestionsAnswered)
		if overview.LastPractice == nil || row.LastPracticeDate.After(*overview.LastPractice) {
			t := row.LastPracticeDate
			overview.LastPractice = &t
		}
	}
	if overview.TotalQuestions > 0 {
		overview.AverageScore = weighted / float64(overview.TotalQuestions)
	}
	return overview, nil
}

// rollAverage computes the running mean after the n-th observation.
func rollAverage(prev float64, n float64, score float64) float64 {
	return (prev*(n-1) + score) / n
}
