package memory

import (
	"sync"

	"github.com/Cratosart/Badzi/internal/domain"
)

const leadShards = 32

type leadShard struct {
	mu    sync.Mutex
	leads map[int64]domain.Lead
}

// LeadStore — заявки в памяти, разбитые на шарды, чтобы разные пользователи не ждали друг друга.
type LeadStore struct {
	shards [leadShards]*leadShard
}

func NewLeadStore() *LeadStore {
	s := &LeadStore{}
	for i := range s.shards {
		s.shards[i] = &leadShard{leads: make(map[int64]domain.Lead)}
	}
	return s
}

func (s *LeadStore) shard(userID int64) *leadShard {
	idx := userID % leadShards
	if idx < 0 {
		idx = -idx
	}
	return s.shards[idx]
}

func (s *LeadStore) Get(userID int64) (domain.Lead, bool) {
	sh := s.shard(userID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	lead, ok := sh.leads[userID]
	return lead, ok
}

func (s *LeadStore) Upsert(lead domain.Lead) {
	sh := s.shard(lead.UserID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.leads[lead.UserID] = lead
}

func (s *LeadStore) Remove(userID int64) (domain.Lead, bool) {
	sh := s.shard(userID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	lead, ok := sh.leads[userID]
	if ok {
		delete(sh.leads, userID)
	}
	return lead, ok
}

// Update вызывает fn под блокировкой шарда и применяет возвращённое действие.
// Возвращает запись в том виде, в каком её оставил fn, и признак того, что она существовала до вызова.
func (s *LeadStore) Update(userID int64, fn func(lead *domain.Lead, exists bool) domain.LeadAction) (domain.Lead, bool) {
	sh := s.shard(userID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	lead, exists := sh.leads[userID]
	action := fn(&lead, exists)
	switch action {
	case domain.LeadSave:
		lead.UserID = userID
		sh.leads[userID] = lead
	case domain.LeadDelete:
		delete(sh.leads, userID)
	}
	return lead, exists
}

// Len — число незавершённых заявок.
func (s *LeadStore) Len() int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		n += len(sh.leads)
		sh.mu.Unlock()
	}
	return n
}
