package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Cratosart/Badzi/internal/domain"
)

func TestFireSkipsMissingOrCompletedLead(t *testing.T) {
	leads := newMapLeadStore()
	notifier := &recordingNotifier{}
	s := NewAbandonScheduler(leads, notifier, time.Hour, nil)
	defer s.Stop()

	s.fire(1, "missing")

	leads.Upsert(domain.Lead{UserID: 2, AttemptID: "a", Completed: true})
	s.fire(2, "a")

	_, abandoned, _ := notifier.counts()
	assert.Zero(t, abandoned)
	_, ok := leads.Get(2)
	assert.True(t, ok)
}

func TestFireReportsPartialLead(t *testing.T) {
	leads := newMapLeadStore()
	notifier := &recordingNotifier{}
	s := NewAbandonScheduler(leads, notifier, time.Hour, nil)
	defer s.Stop()

	leads.Upsert(domain.Lead{UserID: 3, AttemptID: "a", BirthInfo: "1985-05-05"})
	s.fire(3, "a")
	s.fire(3, "a")

	_, abandoned, _ := notifier.counts()
	assert.Equal(t, 1, abandoned)
	assert.Equal(t, "1985-05-05", notifier.lastAbandoned().BirthInfo)
	_, ok := leads.Get(3)
	assert.False(t, ok)
}

type panickingNotifier struct{ recordingNotifier }

func (p *panickingNotifier) Abandoned(domain.Lead) { panic("boom") }

func TestFireRecoversFromNotifierPanic(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	leads := newMapLeadStore()
	s := NewAbandonScheduler(leads, &panickingNotifier{}, time.Hour, zap.New(core))
	defer s.Stop()

	leads.Upsert(domain.Lead{UserID: 4, AttemptID: "a"})
	assert.NotPanics(t, func() { s.fire(4, "a") })
	assert.Equal(t, 1, logs.FilterMessage("abandon check panicked").Len())
	_, ok := leads.Get(4)
	assert.False(t, ok)
}

func TestDisarmAndStop(t *testing.T) {
	leads := newMapLeadStore()
	notifier := &recordingNotifier{}
	s := NewAbandonScheduler(leads, notifier, 20*time.Millisecond, nil)

	leads.Upsert(domain.Lead{UserID: 5, AttemptID: "a"})
	leads.Upsert(domain.Lead{UserID: 6, AttemptID: "b"})
	s.Arm(5, "a")
	s.Arm(6, "b")
	assert.Equal(t, 2, s.Pending())

	s.Disarm(5)
	s.Stop()
	assert.Zero(t, s.Pending())
	s.Arm(5, "a")
	assert.Zero(t, s.Pending())

	time.Sleep(60 * time.Millisecond)
	_, abandoned, _ := notifier.counts()
	assert.Zero(t, abandoned)
}

func TestDefaultDelay(t *testing.T) {
	s := NewAbandonScheduler(newMapLeadStore(), &recordingNotifier{}, 0, nil)
	assert.Equal(t, DefaultAbandonTimeout, s.delay)
}
