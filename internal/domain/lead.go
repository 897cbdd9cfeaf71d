package domain

import "time"

// Lead — незавершённая заявка пользователя на консультацию.
type Lead struct {
	UserID      int64
	AttemptID   string
	DisplayName string
	Handle      string
	StartedAt   time.Time
	BirthInfo   string
	QueryText   string
	Completed   bool
}

func NewLead(u User, attemptID string, startedAt time.Time) Lead {
	return Lead{
		UserID:      u.ID,
		AttemptID:   attemptID,
		DisplayName: u.DisplayName,
		Handle:      u.Handle,
		StartedAt:   startedAt,
	}
}

// LeadAction говорит хранилищу, что сделать с записью после Update.
type LeadAction int

const (
	LeadKeep LeadAction = iota
	LeadSave
	LeadDelete
)

// LeadStore хранит не более одной заявки на пользователя.
// Update выполняет fn как одну критическую секцию по ключу userID.
type LeadStore interface {
	Get(userID int64) (Lead, bool)
	Upsert(lead Lead)
	Remove(userID int64) (Lead, bool)
	Update(userID int64, fn func(lead *Lead, exists bool) LeadAction) (Lead, bool)
}
