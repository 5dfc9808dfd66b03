package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sdet_prep_backend/internal/config"
	"sdet_prep_backend/internal/model"
)

// AIService is the client for the OpenAI-compatible chat completions endpoint
// used for answer evaluation and sample answer generation.
type AIService struct {
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{},
	}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model       string          `json:"model"`
	Messages    []AIChatMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

const evaluationSystemPrompt = `You are an expert SDET instructor. Evaluate the answer and provide:
1. Brief feedback on the response's accuracy and completeness
2. A concise but correct answer to the question
3. Prepare your answers for a person who knows Java, Selenium, JUnit, TestNG, Cucumber and RestAssured

For premium users, also include detailed scoring and analysis in JSON format:
{
    "feedback": "Main feedback message",
    "technicalScore": 0-100,
    "communicationScore": 0-100,
    "overallScore": 0-100,
    "strengths": ["strength1", "strength2"],
    "improvements": ["improvement1", "improvement2"],
    "sampleCode": "Optional code example if relevant",
    "relatedConcepts": ["concept1", "concept2"]
}

For non-premium users, format the response as:
"Feedback: [brief feedback]

Correct Answer: [concise correct answer]"`

const sampleAnswerSystemPrompt = `You are an expert SDET instructor. Generate a comprehensive sample answer for the given interview question in JSON format with the following structure:
{
    "mainAnswer": "Detailed answer",
    "keyPoints": ["point1", "point2", "point3"],
    "codeExample": "Optional code example",
    "bestPractices": ["practice1", "practice2", "practice3"],
    "commonPitfalls": ["pitfall1", "pitfall2", "pitfall3"]
}`

// EvaluateAnswer scores a transcribed answer against the question. Transport
// errors and non-2xx statuses are hard failures. For premium requests a
// structured response is expected; if the model's output does not parse as
// the expected schema the result degrades to neutral 70/70/70 scores with
// the raw text as feedback rather than failing. Non-premium responses are
// plain feedback with all scores at zero (overall 0 means "not computed").
func (s *AIService) EvaluateAnswer(ctx context.Context, question, answer string, isPremium bool) (*model.EvaluationResult, error) {
	suffix := "\nProvide basic feedback."
	maxTokens := 500
	if isPremium {
		suffix = "\nProvide detailed feedback with JSON."
		maxTokens = 1000
	}

	content, err := s.chat(ctx, evaluationSystemPrompt,
		fmt.Sprintf("Question: %s\nUser's Answer: %s%s", question, answer, suffix), maxTokens)
	if err != nil {
		return nil, err
	}

	if !isPremium {
		return &model.EvaluationResult{
			Feedback:           content,
			TechnicalScore:     0,
			CommunicationScore: 0,
			OverallScore:       0,
			Strengths:          []string{},
			Improvements:       []string{},
			RelatedConcepts:    []string{},
		}, nil
	}

	var result model.EvaluationResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		// Schema mismatch is a soft failure: keep the text, neutral scores.
		return &model.EvaluationResult{
			Feedback:           content,
			TechnicalScore:     70,
			CommunicationScore: 70,
			OverallScore:       70,
			Strengths:          []string{"Good attempt"},
			Improvements:       []string{"Could be more detailed"},
			RelatedConcepts:    []string{},
		}, nil
	}

	result.TechnicalScore = clampScore(result.TechnicalScore)
	result.CommunicationScore = clampScore(result.CommunicationScore)
	result.OverallScore = clampScore(result.OverallScore)
	return &result, nil
}

// GenerateSampleAnswer requests a structured model answer for the question.
// Best-effort: any failure, including a schema mismatch, is returned as an
// error and the caller decides whether to surface it.
func (s *AIService) GenerateSampleAnswer(ctx context.Context, question string) (*model.SampleAnswer, error) {
	content, err := s.chat(ctx, sampleAnswerSystemPrompt,
		"Generate a sample answer for: "+question, 1000)
	if err != nil {
		return nil, err
	}

	var sample model.SampleAnswer
	if err := json.Unmarshal([]byte(content), &sample); err != nil {
		return nil, fmt.Errorf("sample answer did not match expected schema: %w", err)
	}

	return &sample, nil
}

func (s *AIService) chat(ctx context.Context, systemPrompt, userPrompt string, maxTokens int) (string, error) {
	reqBody := ChatCompletionRequest{
		Model: s.config.Model,
		Messages: []AIChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0.7,
		MaxTokens:   maxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("AI returned no choices")
	}

	return result.Choices[0].Message.Content, nil
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
