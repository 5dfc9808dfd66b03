package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sdet_prep_backend/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAIWithServer(t *testing.T, handler http.HandlerFunc) (*AIService, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewAIService(config.AIConfig{BaseURL: srv.URL, APIKey: "test", Model: "test-model"}), srv
}

func TestEvaluatePremiumParsesStructuredResponse(t *testing.T) {
	content := `{"feedback":"Good","technicalScore":90,"communicationScore":85,"overallScore":88,"strengths":["s1"],"improvements":["i1"],"relatedConcepts":["c1"]}`
	ai, _ := newAIWithServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req ChatCompletionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.Equal(t, 1000, req.MaxTokens)
		json.NewEncoder(w).Encode(chatResponse(content))
	})

	result, err := ai.EvaluateAnswer(context.Background(), "q", "a", true)
	require.NoError(t, err)
	assert.Equal(t, 88, result.OverallScore)
	assert.Equal(t, []string{"s1"}, result.Strengths)
}

func TestEvaluatePremiumMalformedResponseDegrades(t *testing.T) {
	ai, _ := newAIWithServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatResponse("Sorry, here is some prose instead of JSON."))
	})

	result, err := ai.EvaluateAnswer(context.Background(), "q", "a", true)
	require.NoError(t, err)
	assert.Equal(t, 70, result.TechnicalScore)
	assert.Equal(t, 70, result.CommunicationScore)
	assert.Equal(t, 70, result.OverallScore)
	assert.Equal(t, "Sorry, here is some prose instead of JSON.", result.Feedback)
	assert.NotEmpty(t, result.Strengths)
	assert.NotEmpty(t, result.Improvements)
}

func TestEvaluateNonPremiumKeepsScoresAtZero(t *testing.T) {
	ai, _ := newAIWithServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req ChatCompletionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 500, req.MaxTokens)
		json.NewEncoder(w).Encode(chatResponse("Feedback: decent.\n\nCorrect Answer: ..."))
	})

	result, err := ai.EvaluateAnswer(context.Background(), "q", "a", false)
	require.NoError(t, err)
	assert.Equal(t, 0, result.OverallScore)
	assert.Equal(t, 0, result.TechnicalScore)
	assert.Equal(t, 0, result.CommunicationScore)
	assert.Contains(t, result.Feedback, "decent")
}

func TestEvaluateClampsOutOfRangeScores(t *testing.T) {
	content := `{"feedback":"f","technicalScore":150,"communicationScore":-10,"overallScore":101}`
	ai, _ := newAIWithServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatResponse(content))
	})

	result, err := ai.EvaluateAnswer(context.Background(), "q", "a", true)
	require.NoError(t, err)
	assert.Equal(t, 100, result.TechnicalScore)
	assert.Equal(t, 0, result.CommunicationScore)
	assert.Equal(t, 100, result.OverallScore)
}

func TestEvaluateUpstreamErrorIsHardFailure(t *testing.T) {
	ai, _ := newAIWithServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	})

	_, err := ai.EvaluateAnswer(context.Background(), "q", "a", true)
	assert.Error(t, err)
}

func TestEvaluateNoChoicesIsError(t *testing.T) {
	ai, _ := newAIWithServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	})

	_, err := ai.EvaluateAnswer(context.Background(), "q", "a", false)
	assert.Error(t, err)
}

func TestGenerateSampleAnswer(t *testing.T) {
	content := `{"mainAnswer":"m","keyPoints":["k"],"codeExample":"code","bestPractices":["b"],"commonPitfalls":["p"]}`
	ai, _ := newAIWithServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatResponse(content))
	})

	sample, err := ai.GenerateSampleAnswer(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "m", sample.MainAnswer)
	assert.Equal(t, "code", sample.CodeExample)
}
