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

// EntitlementRepo is the persistence boundary for quota state. The gorm
// repository satisfies it in production; tests plug in an in-memory fake.
type EntitlementRepo interface {
	FindByUserID(userID uint) (*model.EntitlementState, error)
	Save(state *model.EntitlementState) error
}

// PremiumChangedFn is notified after a user's premium flag changes.
type PremiumChangedFn func(userID uint, isPremium bool)

// EntitlementService gates feature access under the free/premium daily quota
// model. The in-memory state is authoritative for the process lifetime;
// persistence failures are logged and never surfaced to callers. The daily
// reset happens lazily on the first read after a calendar-day transition,
// never via a background timer, so it stays correct across process
// suspension, DST shifts and timezone changes.
type EntitlementService struct {
	repo     EntitlementRepo
	clk      clock.Clock
	maxDaily int

	mu          sync.Mutex
	states      map[uint]*model.EntitlementState
	subscribers []PremiumChangedFn
}

func NewEntitlementService(repo EntitlementRepo, clk clock.Clock, maxDaily int) *EntitlementService {
	return &EntitlementService{
		repo:     repo,
		clk:      clk,
		maxDaily: maxDaily,
		states:   make(map[uint]*model.EntitlementState),
	}
}

// Subscribe registers an observer for premium-status changes. Observers are
// notified synchronously; they must not call back into the service.
func (s *EntitlementService) Subscribe(fn PremiumChangedFn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// CanProceed reports whether the user may start another question today.
// The store does not cap the counter itself; callers are expected to check
// before invoking the pipeline.
func (s *EntitlementService) CanProceed(userID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.loadLocked(userID)
	s.refreshLocked(state)
	return state.IsPremium || state.QuestionsAskedToday < s.maxDaily
}

// RecordQuestionAsked increments today's counter. No-op for premium users.
func (s *EntitlementService) RecordQuestionAsked(userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.loadLocked(userID)
	s.refreshLocked(state)
	if state.IsPremium {
		return
	}

	state.QuestionsAskedToday++
	s.persistLocked(state)
}

// SetPremium sets and persists the premium flag and notifies subscribers.
// Calling it twice with the same value leaves state unchanged.
func (s *EntitlementService) SetPremium(userID uint, isPremium bool) {
	s.mu.Lock()
	state := s.loadLocked(userID)
	s.refreshLocked(state)
	changed := state.IsPremium != isPremium
	state.IsPremium = isPremium
	s.persistLocked(state)
	subscribers := make([]PremiumChangedFn, len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	if changed {
		for _, fn := range subscribers {
			fn(userID, isPremium)
		}
	}
}

// RemainingQuestions returns how many free questions are left today, or
// util.UnlimitedQuestions (-1) for premium users.
func (s *EntitlementService) RemainingQuestions(userID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.loadLocked(userID)
	s.refreshLocked(state)
	if state.IsPremium {
		return util.UnlimitedQuestions
	}
	remaining := s.maxDaily - state.QuestionsAskedToday
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// QuestionsAskedToday returns today's counter after the lazy reset check.
func (s *EntitlementService) QuestionsAskedToday(userID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.loadLocked(userID)
	s.refreshLocked(state)
	return state.QuestionsAskedToday
}

func (s *EntitlementService) IsPremium(userID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.loadLocked(userID)
	s.refreshLocked(state)
	return state.IsPremium
}

// SetDailyLimit replaces the free-tier allowance, used when the config file
// is reloaded at runtime. Counters already accumulated today are kept.
func (s *EntitlementService) SetDailyLimit(maxDaily int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if maxDaily > 0 {
		s.maxDaily = maxDaily
	}
}

// TimeUntilReset is the duration until the next local midnight.
func (s *EntitlementService) TimeUntilReset() time.Duration {
	return clock.UntilReset(s.clk.Now())
}

// MarkIntroSeen records that the user has seen today's intro overlay.
func (s *EntitlementService) MarkIntroSeen(userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.loadLocked(userID)
	state.LastIntroDate = clock.DateString(s.clk.Now())
	s.persistLocked(state)
}

func (s *EntitlementService) HasSeenIntroToday(userID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.loadLocked(userID)
	return state.LastIntroDate == clock.DateString(s.clk.Now())
}

// loadLocked fetches the cached state, falling back to the repository and
// finally to fresh defaults. Missing or corrupt persisted state is treated
// as a fresh non-premium state with zero questions asked today.
func (s *EntitlementService) loadLocked(userID uint) *model.EntitlementState {
	if state, ok := s.states[userID]; ok {
		return state
	}

	state, err := s.repo.FindByUserID(userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Log.Warn("failed to load entitlement state, starting fresh",
				zap.Uint("userID", userID), zap.Error(err))
		}
		state = &model.EntitlementState{
			UserID:        userID,
			LastResetDate: clock.DateString(s.clk.Now()),
		}
		s.persistLocked(state)
	}

	s.states[userID] = state
	return state
}

// refreshLocked applies the lazy daily reset: when the stored reset date no
// longer matches today's local calendar date, zero the counter and persist
// before the caller evaluates quota. A garbled stored date simply compares
// unequal and resets.
func (s *EntitlementService) refreshLocked(state *model.EntitlementState) {
	today := clock.DateString(s.clk.Now())
	if state.LastResetDate == today {
		return
	}

	state.QuestionsAskedToday = 0
	state.LastResetDate = today
	s.persistLocked(state)
}

// persistLocked writes through to the repository. Failures are logged only:
// the in-memory copy stays authoritative for the rest of the process.
func (s *EntitlementService) persistLocked(state *model.EntitlementState) {
	if err := s.repo.Save(state); err != nil {
		logger.Log.Warn("failed to persist entitlement state, continuing in memory",
			zap.Uint("userID", state.UserID), zap.Error(err))
	}
}
