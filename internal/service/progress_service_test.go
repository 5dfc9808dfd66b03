package service

import (
	"fmt"
	"sdet_prep_backend/internal/model"
	"sdet_prep_backend/pkg/clock"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeProgressRepo struct {
	rows map[string]*model.TopicProgress
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{rows: map[string]*model.TopicProgress{}}
}

func progressKey(userID uint, topic string) string {
	return fmt.Sprintf("%d/%s", userID, topic)
}

func (r *fakeProgressRepo) FindByUserAndTopic(userID uint, topic string) (*model.TopicProgress, error) {
	row, ok := r.rows[progressKey(userID, topic)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *row
	return &copied, nil
}

func (r *fakeProgressRepo) FindByUser(userID uint) ([]model.TopicProgress, error) {
	var out []model.TopicProgress
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (r *fakeProgressRepo) Save(progress *model.TopicProgress) error {
	copied := *progress
	r.rows[progressKey(progress.UserID, progress.Topic)] = &copied
	return nil
}

func result(technical, communication, overall int) *model.EvaluationResult {
	return &model.EvaluationResult{
		TechnicalScore:     technical,
		CommunicationScore: communication,
		OverallScore:       overall,
		Strengths:          []string{},
		Improvements:       []string{},
	}
}

func newTestProgress() (*ProgressService, *fakeProgressRepo) {
	repo := newFakeProgressRepo()
	clk := &clock.Fixed{T: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	return NewProgressService(repo, clk), repo
}

func TestRunningAverageOverThreeSessions(t *testing.T) {
	svc, _ := newTestProgress()

	assert.NoError(t, svc.RecordResult(1, "Java", result(80, 80, 80)))
	assert.NoError(t, svc.RecordResult(1, "Java", result(90, 90, 90)))
	assert.NoError(t, svc.RecordResult(1, "Java", result(70, 70, 70)))

	progress, err := svc.TopicProgress(1, "Java")
	assert.NoError(t, err)
	assert.Equal(t, 3, progress.QuestionsAnswered)
	assert.InDelta(t, 80.0, progress.AverageScore, 0.001)
	assert.InDelta(t, 80.0, progress.AverageTechnical, 0.001)
	assert.InDelta(t, 80.0, progress.AverageCommunication, 0.001)
}

func TestCorrectAnswerThreshold(t *testing.T) {
	svc, _ := newTestProgress()

	// 70 is a pass, 60 is not.
	svc.RecordResult(1, "SQL", result(60, 60, 60))
	svc.RecordResult(1, "SQL", result(70, 70, 70))
	svc.RecordResult(1, "SQL", result(75, 75, 75))

	progress, _ := svc.TopicProgress(1, "SQL")
	assert.Equal(t, 3, progress.QuestionsAnswered)
	assert.Equal(t, 2, progress.CorrectAnswers)
}

func TestStrengthsAreSnapshotsNotAccumulated(t *testing.T) {
	svc, _ := newTestProgress()

	first := result(80, 80, 80)
	first.Strengths = []string{"clear structure"}
	first.Improvements = []string{"add examples"}
	svc.RecordResult(1, "Selenium", first)

	second := result(85, 85, 85)
	second.Strengths = []string{"good examples"}
	second.Improvements = []string{"mention waits"}
	svc.RecordResult(1, "Selenium", second)

	progress, _ := svc.TopicProgress(1, "Selenium")
	assert.Equal(t, []string{"good examples"}, progress.Strengths)
	assert.Equal(t, []string{"mention waits"}, progress.AreasToImprove)
}

func TestUnpracticedTopicReturnsZeroes(t *testing.T) {
	svc, _ := newTestProgress()

	progress, err := svc.TopicProgress(1, "Git")
	assert.NoError(t, err)
	assert.Equal(t, 0, progress.QuestionsAnswered)
	assert.Equal(t, 0, progress.CorrectAnswers)
	assert.Zero(t, progress.AverageScore)
}

func TestOverviewAggregatesAcrossTopics(t *testing.T) {
	svc, _ := newTestProgress()

	svc.RecordResult(1, "Java", result(80, 80, 80))
	svc.RecordResult(1, "Java", result(90, 90, 90))
	svc.RecordResult(1, "SQL", result(60, 60, 60))

	overview, err := svc.Overview(1)
	assert.NoError(t, err)
	assert.Equal(t, 3, overview.TotalQuestions)
	assert.Equal(t, 2, overview.TotalCorrect)
	assert.InDelta(t, (80.0+90.0+60.0)/3.0, overview.AverageScore, 0.001)
	assert.Len(t, overview.Topics, 2)
}
