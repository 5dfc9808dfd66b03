package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sdet_prep_backend/internal/config"
	"sdet_prep_backend/internal/util"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "answer.m4a")
	require.NoError(t, os.WriteFile(path, []byte("fake audio bytes"), 0644))
	return path
}

// fakeSpeechServer returns the given transcript for every request.
func fakeSpeechServer(t *testing.T, transcript string, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		json.NewEncoder(w).Encode(map[string]string{"text": transcript})
	}))
}

func chatResponse(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	}
}

// fakeAIServer answers every chat completion with the given content.
func fakeAIServer(t *testing.T, content string, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		json.NewEncoder(w).Encode(chatResponse(content))
	}))
}

func newTestPipeline(speechURL, aiURL string) *PipelineService {
	speech := NewSpeechService(config.SpeechConfig{BaseURL: speechURL, Model: "whisper-1"})
	ai := NewAIService(config.AIConfig{BaseURL: aiURL, Model: "test-model"})
	return NewPipelineService(speech, ai, nil, time.Hour)
}

func TestPipelineHappyPathPremium(t *testing.T) {
	evaluation := `{"feedback":"Solid answer","technicalScore":85,"communicationScore":80,"overallScore":83,"strengths":["accurate"],"improvements":["more depth"],"relatedConcepts":["OOP"]}`
	speechSrv := fakeSpeechServer(t, "Polymorphism lets one interface serve many types.", nil)
	defer speechSrv.Close()
	aiSrv := fakeAIServer(t, evaluation, nil)
	defer aiSrv.Close()

	pipeline := newTestPipeline(speechSrv.URL, aiSrv.URL)
	outcome, err := pipeline.Process(context.Background(), 1, ProcessInput{
		AudioPath: writeTempAudio(t),
		Question:  "What is polymorphism?",
		Topic:     "Java",
		IsPremium: true,
	})

	require.NoError(t, err)
	assert.True(t, outcome.Completed())
	assert.Empty(t, outcome.FailedStage)
	assert.Equal(t, "Polymorphism lets one interface serve many types.", outcome.Transcript)
	assert.Equal(t, 83, outcome.Result.OverallScore)
	assert.Equal(t, "Solid answer", outcome.Result.Feedback)
}

func TestPipelineNonPremiumScoresStayZero(t *testing.T) {
	speechSrv := fakeSpeechServer(t, "An explicit wait polls for a condition.", nil)
	defer speechSrv.Close()
	aiSrv := fakeAIServer(t, "Feedback: good start.\n\nCorrect Answer: ...", nil)
	defer aiSrv.Close()

	pipeline := newTestPipeline(speechSrv.URL, aiSrv.URL)
	outcome, err := pipeline.Process(context.Background(), 1, ProcessInput{
		AudioPath: writeTempAudio(t),
		Question:  "What is an explicit wait?",
		Topic:     "Selenium",
		IsPremium: false,
	})

	require.NoError(t, err)
	assert.True(t, outcome.Completed())
	assert.Equal(t, 0, outcome.Result.OverallScore)
	assert.Equal(t, 0, outcome.Result.TechnicalScore)
	assert.NotEmpty(t, outcome.Result.Feedback)
}

func TestPipelineTranscriptionFailureSkipsEvaluator(t *testing.T) {
	speechSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer speechSrv.Close()

	var aiCalls int32
	aiSrv := fakeAIServer(t, "should never be called", &aiCalls)
	defer aiSrv.Close()

	pipeline := newTestPipeline(speechSrv.URL, aiSrv.URL)
	outcome, err := pipeline.Process(context.Background(), 1, ProcessInput{
		AudioPath: writeTempAudio(t),
		Question:  "What is polymorphism?",
		IsPremium: true,
	})

	require.NoError(t, err)
	assert.False(t, outcome.Completed())
	assert.Equal(t, StageTranscribe, outcome.FailedStage)
	assert.Equal(t, 0, outcome.Result.OverallScore)
	assert.Equal(t, 0, outcome.Result.TechnicalScore)
	assert.NotEmpty(t, outcome.Result.Feedback)
	assert.Zero(t, atomic.LoadInt32(&aiCalls))
}

func TestPipelineTooShortTranscriptIsFailure(t *testing.T) {
	speechSrv := fakeSpeechServer(t, "uh", nil)
	defer speechSrv.Close()

	var aiCalls int32
	aiSrv := fakeAIServer(t, "should never be called", &aiCalls)
	defer aiSrv.Close()

	pipeline := newTestPipeline(speechSrv.URL, aiSrv.URL)
	outcome, err := pipeline.Process(context.Background(), 1, ProcessInput{
		AudioPath: writeTempAudio(t),
		Question:  "What is polymorphism?",
		IsPremium: false,
	})

	require.NoError(t, err)
	assert.Equal(t, StageTranscribe, outcome.FailedStage)
	assert.Zero(t, atomic.LoadInt32(&aiCalls))
}

func TestPipelineEvaluationFailure(t *testing.T) {
	speechSrv := fakeSpeechServer(t, "A reasonable answer about joins.", nil)
	defer speechSrv.Close()
	aiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer aiSrv.Close()

	pipeline := newTestPipeline(speechSrv.URL, aiSrv.URL)
	outcome, err := pipeline.Process(context.Background(), 1, ProcessInput{
		AudioPath: writeTempAudio(t),
		Question:  "INNER vs LEFT JOIN?",
		IsPremium: false,
	})

	require.NoError(t, err)
	assert.False(t, outcome.Completed())
	assert.Equal(t, StageEvaluate, outcome.FailedStage)
	assert.Equal(t, "A reasonable answer about joins.", outcome.Transcript)
}

func TestPipelineRejectsConcurrentRunForSameUser(t *testing.T) {
	release := make(chan struct{})
	var speechCalls int32
	speechSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Only the first request blocks; later ones complete immediately.
		if atomic.AddInt32(&speechCalls, 1) == 1 {
			<-release
		}
		json.NewEncoder(w).Encode(map[string]string{"text": "a sufficiently long answer"})
	}))
	defer speechSrv.Close()
	aiSrv := fakeAIServer(t, "Feedback: ok", nil)
	defer aiSrv.Close()

	pipeline := newTestPipeline(speechSrv.URL, aiSrv.URL)
	audio := writeTempAudio(t)

	done := make(chan struct{})
	go func() {
		defer close(done)
		pipeline.Process(context.Background(), 1, ProcessInput{AudioPath: audio, Question: "q"})
	}()

	// Wait for the first run to take the slot.
	assert.Eventually(t, func() bool {
		pipeline.mu.Lock()
		defer pipeline.mu.Unlock()
		return pipeline.inFlight[1]
	}, time.Second, 5*time.Millisecond)

	_, err := pipeline.Process(context.Background(), 1, ProcessInput{AudioPath: audio, Question: "q"})
	assert.ErrorIs(t, err, util.ErrEvaluationInFlight)

	// A different user is not blocked.
	_, err = pipeline.Process(context.Background(), 2, ProcessInput{AudioPath: audio, Question: "q"})
	assert.NotErrorIs(t, err, util.ErrEvaluationInFlight)

	close(release)
	<-done

	// The slot is released after completion.
	_, err = pipeline.Process(context.Background(), 1, ProcessInput{AudioPath: audio, Question: "q"})
	assert.NotErrorIs(t, err, util.ErrEvaluationInFlight)
}

func TestPipelineContextCancellation(t *testing.T) {
	speechSrv := fakeSpeechServer(t, "some transcript text", nil)
	defer speechSrv.Close()
	aiSrv := fakeAIServer(t, "Feedback: ok", nil)
	defer aiSrv.Close()

	pipeline := newTestPipeline(speechSrv.URL, aiSrv.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pipeline.Process(ctx, 1, ProcessInput{
		AudioPath: writeTempAudio(t),
		Question:  "q",
	})
	assert.Error(t, err)
}

func TestSampleAnswerForParsesSchema(t *testing.T) {
	sample := `{"mainAnswer":"Use waits","keyPoints":["k1"],"bestPractices":["b1"],"commonPitfalls":["p1"]}`
	aiSrv := fakeAIServer(t, sample, nil)
	defer aiSrv.Close()

	pipeline := newTestPipeline("http://unused", aiSrv.URL)
	got, err := pipeline.SampleAnswerFor(context.Background(), "What is an explicit wait?")

	require.NoError(t, err)
	assert.Equal(t, "Use waits", got.MainAnswer)
	assert.Equal(t, []string{"k1"}, got.KeyPoints)
}

func TestSampleAnswerForSchemaMismatchIsError(t *testing.T) {
	aiSrv := fakeAIServer(t, "just plain prose, not JSON", nil)
	defer aiSrv.Close()

	pipeline := newTestPipeline("http://unused", aiSrv.URL)
	_, err := pipeline.SampleAnswerFor(context.Background(), "q")
	assert.Error(t, err)
}
