package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sdet_prep_backend/internal/model"
	"sdet_prep_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRecordingStore struct {
	recordings map[string]*model.Recording
}

func (s *fakeRecordingStore) FindByIDForUser(id string, userID uint) (*model.Recording, error) {
	rec, ok := s.recordings[id]
	if !ok || rec.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return rec, nil
}

type fakeSessionStore struct {
	sessions []model.PracticeSession
}

func (s *fakeSessionStore) Append(session *model.PracticeSession) error {
	s.sessions = append(s.sessions, *session)
	return nil
}

func (s *fakeSessionStore) FindByUser(userID uint) ([]model.PracticeSession, error) {
	var out []model.PracticeSession
	for _, sess := range s.sessions {
		if sess.UserID == userID {
			out = append(out, sess)
		}
	}
	return out, nil
}

func (s *fakeSessionStore) FindByTopic(userID uint, topic string) ([]model.PracticeSession, error) {
	var out []model.PracticeSession
	for _, sess := range s.sessions {
		if sess.UserID == userID && sess.Topic == topic {
			out = append(out, sess)
		}
	}
	return out, nil
}

type practiceFixture struct {
	practice    *PracticeService
	entitlement *EntitlementService
	sessions    *fakeSessionStore
	progress    *fakeProgressRepo
}

func newPracticeFixture(t *testing.T, speechURL, aiURL string, audioPath string) *practiceFixture {
	t.Helper()

	entitlement, _, clk := newTestEntitlement(2)
	progressRepo := newFakeProgressRepo()
	progress := NewProgressService(progressRepo, clk)
	pipeline := newTestPipeline(speechURL, aiURL)

	recordings := &fakeRecordingStore{recordings: map[string]*model.Recording{
		"rec-1": {UserID: 1, LocalPath: audioPath, DurationSeconds: 30},
	}}
	sessions := &fakeSessionStore{}

	return &practiceFixture{
		practice:    NewPracticeService(entitlement, pipeline, progress, recordings, sessions),
		entitlement: entitlement,
		sessions:    sessions,
		progress:    progressRepo,
	}
}

func TestSubmitAnswerRecordsSessionAndProgress(t *testing.T) {
	speechSrv := fakeSpeechServer(t, "Inheritance lets a class reuse another class's behavior.", nil)
	defer speechSrv.Close()
	aiSrv := fakeAIServer(t, `{"feedback":"Nice","technicalScore":80,"communicationScore":75,"overallScore":78,"strengths":["s"],"improvements":["i"]}`, nil)
	defer aiSrv.Close()

	f := newPracticeFixture(t, speechSrv.URL, aiSrv.URL, writeTempAudio(t))
	f.entitlement.SetPremium(1, true)

	out, err := f.practice.SubmitAnswer(context.Background(), 1, SubmitAnswerInput{
		RecordingID: "rec-1",
		Topic:       "Java",
		Question:    "What is inheritance?",
	})

	require.NoError(t, err)
	require.NotNil(t, out.Session)
	assert.Equal(t, 78, out.Session.OverallScore)
	assert.Equal(t, float64(30), out.Session.AnswerDurationSeconds)
	assert.Len(t, f.sessions.sessions, 1)

	progress, err := f.progress.FindByUserAndTopic(1, "Java")
	require.NoError(t, err)
	assert.Equal(t, 1, progress.QuestionsAnswered)
}

func TestSubmitAnswerFreeUserConsumesOneQuestion(t *testing.T) {
	speechSrv := fakeSpeechServer(t, "A long enough answer.", nil)
	defer speechSrv.Close()
	aiSrv := fakeAIServer(t, "Feedback: ok", nil)
	defer aiSrv.Close()

	f := newPracticeFixture(t, speechSrv.URL, aiSrv.URL, writeTempAudio(t))

	_, err := f.practice.SubmitAnswer(context.Background(), 1, SubmitAnswerInput{
		RecordingID: "rec-1", Topic: "Java", Question: "q",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, f.entitlement.QuestionsAskedToday(1))
}

func TestSubmitAnswerRejectedWhenQuotaExhausted(t *testing.T) {
	speechSrv := fakeSpeechServer(t, "A long enough answer.", nil)
	defer speechSrv.Close()
	aiSrv := fakeAIServer(t, "Feedback: ok", nil)
	defer aiSrv.Close()

	f := newPracticeFixture(t, speechSrv.URL, aiSrv.URL, writeTempAudio(t))
	f.entitlement.RecordQuestionAsked(1)
	f.entitlement.RecordQuestionAsked(1)

	_, err := f.practice.SubmitAnswer(context.Background(), 1, SubmitAnswerInput{
		RecordingID: "rec-1", Topic: "Java", Question: "q",
	})
	assert.ErrorIs(t, err, util.ErrDailyLimitReached)
	assert.Empty(t, f.sessions.sessions)
}

func TestSubmitAnswerFailedPipelineWritesNothing(t *testing.T) {
	speechSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer speechSrv.Close()
	aiSrv := fakeAIServer(t, "unused", nil)
	defer aiSrv.Close()

	f := newPracticeFixture(t, speechSrv.URL, aiSrv.URL, writeTempAudio(t))

	out, err := f.practice.SubmitAnswer(context.Background(), 1, SubmitAnswerInput{
		RecordingID: "rec-1", Topic: "Java", Question: "q",
	})

	require.NoError(t, err)
	assert.Nil(t, out.Session)
	assert.Equal(t, StageTranscribe, out.FailedStage)
	assert.Empty(t, f.sessions.sessions)
	// The failed run did not burn a question.
	assert.Equal(t, 0, f.entitlement.QuestionsAskedToday(1))
}

func TestSubmitAnswerUnknownRecording(t *testing.T) {
	speechSrv := fakeSpeechServer(t, "unused", nil)
	defer speechSrv.Close()
	aiSrv := fakeAIServer(t, "unused", nil)
	defer aiSrv.Close()

	f := newPracticeFixture(t, speechSrv.URL, aiSrv.URL, writeTempAudio(t))

	_, err := f.practice.SubmitAnswer(context.Background(), 1, SubmitAnswerInput{
		RecordingID: "missing", Topic: "Java", Question: "q",
	})
	assert.ErrorIs(t, err, util.ErrRecordingNotFound)
}

func TestSampleAnswerRequiresPremium(t *testing.T) {
	speechSrv := fakeSpeechServer(t, "unused", nil)
	defer speechSrv.Close()
	aiSrv := fakeAIServer(t, `{"mainAnswer":"m","keyPoints":[],"bestPractices":[],"commonPitfalls":[]}`, nil)
	defer aiSrv.Close()

	f := newPracticeFixture(t, speechSrv.URL, aiSrv.URL, writeTempAudio(t))

	_, err := f.practice.SampleAnswer(context.Background(), 1, "q")
	assert.ErrorIs(t, err, util.ErrSampleRequiresPlan)

	f.entitlement.SetPremium(1, true)
	sample, err := f.practice.SampleAnswer(context.Background(), 1, "q")
	require.NoError(t, err)
	assert.Equal(t, "m", sample.MainAnswer)
}

func TestSessionsPreserveInsertionOrder(t *testing.T) {
	speechSrv := fakeSpeechServer(t, "A long enough answer.", nil)
	defer speechSrv.Close()
	aiSrv := fakeAIServer(t, "Feedback: ok", nil)
	defer aiSrv.Close()

	f := newPracticeFixture(t, speechSrv.URL, aiSrv.URL, writeTempAudio(t))
	f.entitlement.SetPremium(1, true)

	for _, q := range []string{"q1", "q2", "q3"} {
		_, err := f.practice.SubmitAnswer(context.Background(), 1, SubmitAnswerInput{
			RecordingID: "rec-1", Topic: "Java", Question: q,
		})
		require.NoError(t, err)
	}

	sessions, err := f.practice.Sessions(1, "")
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, "q1", sessions[0].Question)
	assert.Equal(t, "q3", sessions[2].Question)
}
