package usecase

import (
	"errors"
	"sync"
	"time"

	"github.com/Cratosart/Badzi/internal/domain"
)

type sentMessage struct {
	ChatID   int64
	Text     string
	Keyboard domain.Keyboard
}

type fakeSender struct {
	mu   sync.Mutex
	msgs []sentMessage
	fail bool
}

func (f *fakeSender) SendText(chatID int64, text string, kb domain.Keyboard) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, sentMessage{ChatID: chatID, Text: text, Keyboard: kb})
	if f.fail {
		return errors.New("telegram is down")
	}
	return nil
}

func (f *fakeSender) messages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.msgs...)
}

type recordingNotifier struct {
	mu        sync.Mutex
	attempts  []domain.Lead
	abandoned []domain.Lead
	completed []domain.Lead
}

func (n *recordingNotifier) NewAttempt(lead domain.Lead) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.attempts = append(n.attempts, lead)
}

func (n *recordingNotifier) Abandoned(lead domain.Lead) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.abandoned = append(n.abandoned, lead)
}

func (n *recordingNotifier) Completed(lead domain.Lead) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.completed = append(n.completed, lead)
}

func (n *recordingNotifier) counts() (attempts, abandoned, completed int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.attempts), len(n.abandoned), len(n.completed)
}

func (n *recordingNotifier) lastAbandoned() domain.Lead {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.abandoned[len(n.abandoned)-1]
}

// mapLeadStore — минимальное хранилище для тестов юзкейсов (memory импортирует usecase).
type mapLeadStore struct {
	mu    sync.Mutex
	leads map[int64]domain.Lead
}

func newMapLeadStore() *mapLeadStore {
	return &mapLeadStore{leads: make(map[int64]domain.Lead)}
}

func (s *mapLeadStore) Get(userID int64) (domain.Lead, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.leads[userID]
	return l, ok
}

func (s *mapLeadStore) Upsert(lead domain.Lead) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads[lead.UserID] = lead
}

func (s *mapLeadStore) Remove(userID int64) (domain.Lead, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.leads[userID]
	delete(s.leads, userID)
	return l, ok
}

func (s *mapLeadStore) Update(userID int64, fn func(*domain.Lead, bool) domain.LeadAction) (domain.Lead, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.leads[userID]
	switch fn(&l, ok) {
	case domain.LeadSave:
		l.UserID = userID
		s.leads[userID] = l
	case domain.LeadDelete:
		delete(s.leads, userID)
	}
	return l, ok
}

type mapSessions struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func newMapSessions() *mapSessions {
	return &mapSessions{sessions: make(map[int64]*Session)}
}

func (m *mapSessions) Get(userID int64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok {
		s = NewSession(userID)
		m.sessions[userID] = s
	}
	return s
}

func (m *mapSessions) Save(*Session) {}

type fixture struct {
	leads     *mapLeadStore
	notifier  *recordingNotifier
	scheduler *AbandonScheduler
	signup    *Signup
	router    *Router
}

var testUser = domain.User{ID: 42, DisplayName: "Анна Петрова", Handle: "anna"}

func newFixture(delay time.Duration) *fixture {
	leads := newMapLeadStore()
	notifier := &recordingNotifier{}
	scheduler := NewAbandonScheduler(leads, notifier, delay, nil)
	signup := NewSignup(leads, newMapSessions(), scheduler, notifier, nil)
	return &fixture{
		leads:     leads,
		notifier:  notifier,
		scheduler: scheduler,
		signup:    signup,
		router:    NewRouter(signup),
	}
}

func textFrom(u domain.User, text string) domain.Inbound {
	return domain.Inbound{User: u, ChatID: u.ID, Text: text}
}

func actionFrom(u domain.User, action string) domain.Inbound {
	return domain.Inbound{User: u, ChatID: u.ID, MessageID: 7, Action: action}
}

func commandFrom(u domain.User, cmd string) domain.Inbound {
	return domain.Inbound{User: u, ChatID: u.ID, Text: "/" + cmd, Command: cmd}
}
