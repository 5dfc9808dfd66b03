package service

import (
	"context"
	"errors"
	"sdet_prep_backend/internal/model"
	"sdet_prep_backend/internal/util"
	"sdet_prep_backend/pkg/logger"
	"sdet_prep_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RecordingStore resolves uploaded recordings for the user who owns them.
type RecordingStore interface {
	FindByIDForUser(id string, userID uint) (*model.Recording, error)
}

// SessionStore is the append-only session log the practice flow writes to.
type SessionStore interface {
	Append(session *model.PracticeSession) error
	FindByUser(userID uint) ([]model.PracticeSession, error)
	FindByTopic(userID uint, topic string) ([]model.PracticeSession, error)
}

// PracticeService ties the daily entitlement, the evaluation pipeline, the
// session log and the progress aggregates into the answer-submission flow.
type PracticeService struct {
	entitlement *EntitlementService
	pipeline    *PipelineService
	progress    *ProgressService
	recordings  RecordingStore
	sessions    SessionStore
}

func NewPracticeService(
	entitlement *EntitlementService,
	pipeline *PipelineService,
	progress *ProgressService,
	recordings RecordingStore,
	sessions SessionStore,
) *PracticeService {
	return &PracticeService{
		entitlement: entitlement,
		pipeline:    pipeline,
		progress:    progress,
		recordings:  recordings,
		sessions:    sessions,
	}
}

type SubmitAnswerInput struct {
	RecordingID string
	Topic       string
	Question    string
}

type SubmitAnswerOutput struct {
	Session     *model.PracticeSession  `json:"session,omitempty"`
	Result      *model.EvaluationResult `json:"result"`
	FailedStage string                  `json:"failedStage,omitempty"`
	Remaining   int                     `json:"remainingQuestions"`
}

// SubmitAnswer runs one recorded answer through the full flow. The quota is
// checked before any expensive work and consumed only after the evaluation
// stage completes, so a failed transcription or evaluation does not burn a
// question. Sessions and progress are likewise written only on completion.
func (s *PracticeService) SubmitAnswer(ctx context.Context, userID uint, in SubmitAnswerInput) (*SubmitAnswerOutput, error) {
	if !s.entitlement.CanProceed(userID) {
		monitoring.QuotaRejections.Inc()
		return nil, util.ErrDailyLimitReached
	}

	recording, err := s.recordings.FindByIDForUser(in.RecordingID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrRecordingNotFound
		}
		return nil, err
	}

	isPremium := s.entitlement.IsPremium(userID)
	outcome, err := s.pipeline.Process(ctx, userID, ProcessInput{
		AudioPath: recording.LocalPath,
		Question:  in.Question,
		Topic:     in.Topic,
		IsPremium: isPremium,
	})
	if err != nil {
		return nil, err
	}

	out := &SubmitAnswerOutput{
		Result:      outcome.Result,
		FailedStage: outcome.FailedStage,
	}

	if outcome.Completed() {
		session := &model.PracticeSession{
			UserID:                userID,
			Topic:                 in.Topic,
			Question:              in.Question,
			Transcript:            outcome.Transcript,
			Feedback:              outcome.Result.Feedback,
			AnswerDurationSeconds: recording.DurationSeconds,
			TechnicalScore:        outcome.Result.TechnicalScore,
			CommunicationScore:    outcome.Result.CommunicationScore,
			OverallScore:          outcome.Result.OverallScore,
			Strengths:             outcome.Result.Strengths,
			Improvements:          outcome.Result.Improvements,
		}
		if err := s.sessions.Append(session); err != nil {
			logger.Log.Error("failed to append practice session",
				zap.Uint("userID", userID), zap.Error(err))
			return nil, err
		}
		out.Session = session

		if err := s.progress.RecordResult(userID, in.Topic, outcome.Result); err != nil {
			// The session is already durable; surface the aggregate failure
			// in logs but do not fail the submission.
			logger.Log.Error("failed to update progress",
				zap.Uint("userID", userID), zap.String("topic", in.Topic), zap.Error(err))
		}

		s.entitlement.RecordQuestionAsked(userID)
	}

	out.Remaining = s.entitlement.RemainingQuestions(userID)
	return out, nil
}

// SampleAnswer returns the model answer for a question. Premium only.
func (s *PracticeService) SampleAnswer(ctx context.Context, userID uint, question string) (*model.SampleAnswer, error) {
	if !s.entitlement.IsPremium(userID) {
		return nil, util.ErrSampleRequiresPlan
	}
	return s.pipeline.SampleAnswerFor(ctx, question)
}

// Sessions lists a user's history in the order it was recorded, optionally
// narrowed to one topic.
func (s *PracticeService) Sessions(userID uint, topic string) ([]model.PracticeSession, error) {
	if topic != "" {
		return s.sessions.FindByTopic(userID, topic)
	}
	return s.sessions.FindByUser(userID)
}
