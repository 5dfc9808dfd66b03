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

func TestTranscribeSendsMultipartAndReturnsText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))

		_, header, err := r.FormFile("file")
		if assert.NoError(t, err) {
			assert.Equal(t, "answer.m4a", header.Filename)
		}

		json.NewEncoder(w).Encode(map[string]string{"text": "hello world"})
	}))
	defer srv.Close()

	speech := NewSpeechService(config.SpeechConfig{BaseURL: srv.URL, Model: "whisper-1"})
	text, err := speech.Transcribe(context.Background(), writeTempAudio(t))

	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
}

func TestTranscribeEmptyTextIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"text": "   "})
	}))
	defer srv.Close()

	speech := NewSpeechService(config.SpeechConfig{BaseURL: srv.URL})
	_, err := speech.Transcribe(context.Background(), writeTempAudio(t))
	assert.Error(t, err)
}

func TestTranscribeNon200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad audio", http.StatusBadRequest)
	}))
	defer srv.Close()

	speech := NewSpeechService(config.SpeechConfig{BaseURL: srv.URL})
	_, err := speech.Transcribe(context.Background(), writeTempAudio(t))
	assert.Error(t, err)
}

func TestTranscribeMissingFileIsError(t *testing.T) {
	speech := NewSpeechService(config.SpeechConfig{BaseURL: "http://unused"})
	_, err := speech.Transcribe(context.Background(), "/nonexistent/audio.m4a")
	assert.Error(t, err)
}
