package service

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"sdet_prep_backend/internal/model"
	"sdet_prep_backend/internal/util"
	"sdet_prep_backend/pkg/logger"
	"sdet_prep_backend/pkg/monitoring"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Pipeline stages, in order. A run is Idle -> Transcribing -> Evaluating ->
// (premium: GeneratingSample) -> Done, with Failed(stage) reachable from any
// non-terminal stage.
const (
	StageTranscribe = "transcribe"
	StageEvaluate   = "evaluate"
	StageSample     = "sample"
)

// minTranscriptLength is the shortest transcript accepted as a plausible
// answer; anything shorter is treated as a transcription failure.
const minTranscriptLength = 5

// PipelineOutcome is the result of one pipeline run. Result is always
// non-nil so every failure path stays displayable; FailedStage is empty when
// stage 2 completed, including the degraded-fallback path.
type PipelineOutcome struct {
	Result      *model.EvaluationResult
	Transcript  string
	FailedStage string
}

// Completed reports whether the evaluation stage finished, which is the
// condition for recording the session and updating progress.
func (o *PipelineOutcome) Completed() bool {
	return o.FailedStage == ""
}

// PipelineService orchestrates the transcribe -> evaluate -> sample-answer
// chain against the external speech and AI services. At most one pipeline
// runs per user; a second Process call while one is in flight is rejected
// with util.ErrEvaluationInFlight rather than queued or cancelled.
type PipelineService struct {
	speech *SpeechService
	ai     *AIService
	rdb    *redis.Client

	sampleTTL time.Duration

	mu       sync.Mutex
	inFlight map[uint]bool
}

func NewPipelineService(speech *SpeechService, ai *AIService, rdb *redis.Client, sampleTTL time.Duration) *PipelineService {
	return &PipelineService{
		speech:    speech,
		ai:        ai,
		rdb:       rdb,
		sampleTTL: sampleTTL,
		inFlight:  make(map[uint]bool),
	}
}

type ProcessInput struct {
	AudioPath string
	Question  string
	Topic     string
	IsPremium bool
}

// Process runs one evaluation pipeline. Stage 1 and 2 are strictly
// sequential; the premium sample-answer stage is fired after the primary
// result is ready and never delays it. On context cancellation the error is
// returned and the caller must not record anything.
func (s *PipelineService) Process(ctx context.Context, userID uint, in ProcessInput) (*PipelineOutcome, error) {
	if !s.acquire(userID) {
		return nil, util.ErrEvaluationInFlight
	}
	defer s.release(userID)

	// Stage 1: transcription. Hard failure only; there is no sensible
	// fallback transcript.
	transcript, err := s.speech.Transcribe(ctx, in.AudioPath)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		monitoring.PipelineStageCounter.WithLabelValues(StageTranscribe, "failed").Inc()
		logger.Log.Warn("transcription failed", zap.Uint("userID", userID), zap.Error(err))
		return &PipelineOutcome{
			Result:      transcriptionFailedResult(),
			FailedStage: StageTranscribe,
		}, nil
	}
	if len(strings.TrimSpace(transcript)) < minTranscriptLength {
		monitoring.PipelineStageCounter.WithLabelValues(StageTranscribe, "failed").Inc()
		return &PipelineOutcome{
			Result:      transcriptionFailedResult(),
			FailedStage: StageTranscribe,
		}, nil
	}
	monitoring.PipelineStageCounter.WithLabelValues(StageTranscribe, "ok").Inc()

	// Stage 2: evaluation. Schema mismatches degrade inside the AI client;
	// only transport-level failure ends the run here.
	result, err := s.ai.EvaluateAnswer(ctx, in.Question, transcript, in.IsPremium)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		monitoring.PipelineStageCounter.WithLabelValues(StageEvaluate, "failed").Inc()
		logger.Log.Warn("evaluation failed", zap.Uint("userID", userID), zap.Error(err))
		return &PipelineOutcome{
			Result:      evaluationFailedResult(),
			Transcript:  transcript,
			FailedStage: StageEvaluate,
		}, nil
	}
	monitoring.PipelineStageCounter.WithLabelValues(StageEvaluate, "ok").Inc()

	// Stage 3: premium sample answer, detached from the caller's context so
	// delivery of the primary result is never held up. Best-effort cache
	// warming; the result is fetched later via SampleAnswerFor.
	if in.IsPremium {
		go s.warmSampleAnswer(in.Question)
	}

	return &PipelineOutcome{
		Result:     result,
		Transcript: transcript,
	}, nil
}

// SampleAnswerFor returns the structured model answer for a question,
// serving from the redis cache when possible.
func (s *PipelineService) SampleAnswerFor(ctx context.Context, question string) (*model.SampleAnswer, error) {
	if cached := s.cachedSample(ctx, question); cached != nil {
		return cached, nil
	}

	sample, err := s.ai.GenerateSampleAnswer(ctx, question)
	if err != nil {
		monitoring.PipelineStageCounter.WithLabelValues(StageSample, "failed").Inc()
		return nil, err
	}
	monitoring.PipelineStageCounter.WithLabelValues(StageSample, "ok").Inc()

	s.cacheSample(ctx, question, sample)
	return sample, nil
}

func (s *PipelineService) warmSampleAnswer(question string) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if _, err := s.SampleAnswerFor(ctx, question); err != nil {
		logger.Log.Debug("sample answer warmup failed", zap.Error(err))
	}
}

func (s *PipelineService) cachedSample(ctx context.Context, question string) *model.SampleAnswer {
	if s.rdb == nil {
		return nil
	}

	data, err := s.rdb.Get(ctx, sampleCacheKey(question)).Bytes()
	if err != nil {
		return nil
	}

	var sample model.SampleAnswer
	if err := json.Unmarshal(data, &sample); err != nil {
		return nil
	}
	return &sample
}

func (s *PipelineService) cacheSample(ctx context.Context, question string, sample *model.SampleAnswer) {
	if s.rdb == nil {
		return
	}

	data, err := json.Marshal(sample)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, sampleCacheKey(question), data, s.sampleTTL).Err(); err != nil {
		logger.Log.Debug("failed to cache sample answer", zap.Error(err))
	}
}

func sampleCacheKey(question string) string {
	sum := sha1.Sum([]byte(question))
	return "sample_answer:" + hex.EncodeToString(sum[:])
}

func (s *PipelineService) acquire(userID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[userID] {
		return false
	}
	s.inFlight[userID] = true
	return true
}

func (s *PipelineService) release(userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, userID)
}

func transcriptionFailedResult() *model.EvaluationResult {
	return &model.EvaluationResult{
		Feedback:           "We couldn't understand your answer. Please check your microphone and try again.",
		TechnicalScore:     0,
		CommunicationScore: 0,
		OverallScore:       0,
		Strengths:          []string{},
		Improvements:       []string{},
		RelatedConcepts:    []string{},
	}
}

func evaluationFailedResult() *model.EvaluationResult {
	return &model.EvaluationResult{
		Feedback:           "The evaluation service is unavailable right now. Your answer was not scored; please try again later.",
		TechnicalScore:     0,
		CommunicationScore: 0,
		OverallScore:       0,
		Strengths:          []string{},
		Improvements:       []string{},
		RelatedConcepts:    []string{},
	}
}
