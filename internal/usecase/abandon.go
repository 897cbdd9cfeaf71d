package usecase

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Cratosart/Badzi/internal/domain"
)

const DefaultAbandonTimeout = 30 * time.Minute

type armedTimer struct {
	attemptID string
	timer     *time.Timer
}

// AbandonScheduler проверяет заявку через фиксированную задержку после начала записи
// и, если она так и не завершена, сообщает оператору и удаляет её.
// Новый Arm для того же пользователя заменяет предыдущий таймер.
type AbandonScheduler struct {
	leads    domain.LeadStore
	notifier LeadNotifier
	delay    time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	timers  map[int64]armedTimer
	stopped bool
}

func NewAbandonScheduler(leads domain.LeadStore, notifier LeadNotifier, delay time.Duration, logger *zap.Logger) *AbandonScheduler {
	if delay <= 0 {
		delay = DefaultAbandonTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AbandonScheduler{
		leads:    leads,
		notifier: notifier,
		delay:    delay,
		logger:   logger,
		timers:   make(map[int64]armedTimer),
	}
}

func (s *AbandonScheduler) Arm(userID int64, attemptID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if prev, ok := s.timers[userID]; ok {
		prev.timer.Stop()
	}
	s.timers[userID] = armedTimer{
		attemptID: attemptID,
		timer:     time.AfterFunc(s.delay, func() { s.fire(userID, attemptID) }),
	}
}

func (s *AbandonScheduler) Disarm(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[userID]; ok {
		t.timer.Stop()
		delete(s.timers, userID)
	}
}

// Stop гасит все таймеры; дальнейшие Arm игнорируются.
func (s *AbandonScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for id, t := range s.timers {
		t.timer.Stop()
		delete(s.timers, id)
	}
}

// Pending — число взведённых таймеров.
func (s *AbandonScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *AbandonScheduler) fire(userID int64, attemptID string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("abandon check panicked", zap.Int64("user_id", userID), zap.Any("panic", r))
		}
	}()

	s.mu.Lock()
	if t, ok := s.timers[userID]; ok && t.attemptID == attemptID {
		delete(s.timers, userID)
	}
	s.mu.Unlock()

	var abandoned domain.Lead
	var taken bool
	s.leads.Update(userID, func(lead *domain.Lead, exists bool) domain.LeadAction {
		if !exists || lead.Completed || lead.AttemptID != attemptID {
			return domain.LeadKeep
		}
		abandoned, taken = *lead, true
		return domain.LeadDelete
	})
	if !taken {
		return
	}
	s.logger.Info("lead abandoned", zap.Int64("user_id", userID), zap.String("attempt_id", attemptID))
	s.notifier.Abandoned(abandoned)
}
