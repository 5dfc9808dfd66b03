package util

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRegistered      = errors.New("email already registered")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrQuestionNotFound     = errors.New("no question available for topic")
	ErrRecordingNotFound    = errors.New("recording not found")
	ErrTemplateNotFound     = errors.New("answer template not found")
	ErrDailyLimitReached    = errors.New("daily question limit reached")
	ErrEvaluationInFlight   = errors.New("an evaluation is already in progress for this user")
	ErrSampleRequiresPlan   = errors.New("sample answers require a premium plan")
	ErrEmptyTranscript      = errors.New("transcript empty or too short")
	ErrUpstreamUnavailable  = errors.New("upstream AI service unavailable")
	ErrUnsupportedAudioType = errors.New("unsupported audio file type")
)
