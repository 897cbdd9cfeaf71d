package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Cratosart/Badzi/internal/domain"
)

// Reply — ровно одно исходящее сообщение в ответ на событие.
type Reply struct {
	Text     string
	Keyboard domain.Keyboard
	// Edit просит заменить сообщение, на кнопку которого нажали, вместо отправки нового
	Edit bool
}

// AbandonTimer взводит проверку брошенной заявки.
type AbandonTimer interface {
	Arm(userID int64, attemptID string)
	Disarm(userID int64)
}

// Signup ведёт пользователя по анкете: данные рождения, затем запрос.
type Signup struct {
	leads    domain.LeadStore
	sessions SessionRepository
	timer    AbandonTimer
	notifier LeadNotifier
	logger   *zap.Logger

	now       func() time.Time
	attemptID func() string
}

func NewSignup(leads domain.LeadStore, sessions SessionRepository, timer AbandonTimer, notifier LeadNotifier, logger *zap.Logger) *Signup {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Signup{
		leads:     leads,
		sessions:  sessions,
		timer:     timer,
		notifier:  notifier,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
		attemptID: func() string { return uuid.NewString() },
	}
}

// State — текущий шаг диалога пользователя.
func (s *Signup) State(userID int64) State {
	return s.sessions.Get(userID).State()
}

// Begin создаёт заявку, взводит тайм-аут и просит данные рождения.
func (s *Signup) Begin(ctx context.Context, u domain.User) Reply {
	lead := domain.NewLead(u, s.attemptID(), s.now())
	s.leads.Upsert(lead)
	s.timer.Arm(u.ID, lead.AttemptID)
	s.transition(ctx, u.ID, eventBegin)
	s.logger.Info("signup started", zap.Int64("user_id", u.ID), zap.String("attempt_id", lead.AttemptID))
	s.notifier.NewAttempt(lead)
	return Reply{Text: AskBirthText, Keyboard: flowKeyboard(), Edit: true}
}

// Receive обрабатывает свободный ввод в зависимости от шага диалога.
func (s *Signup) Receive(ctx context.Context, in domain.Inbound) Reply {
	switch s.State(in.User.ID) {
	case StateAwaitingBirthInfo:
		if !in.HasText() {
			return Reply{Text: AskBirthText, Keyboard: flowKeyboard()}
		}
		return s.birthInfo(ctx, in.User, strings.TrimSpace(in.Text))
	case StateAwaitingQuery:
		if !in.HasText() {
			return Reply{Text: AskQueryText, Keyboard: flowKeyboard()}
		}
		return s.query(ctx, in.User, strings.TrimSpace(in.Text))
	default:
		return Reply{Text: ChooseActionText, Keyboard: mainMenuKeyboard()}
	}
}

func (s *Signup) birthInfo(ctx context.Context, u domain.User, info string) Reply {
	lead, existed := s.leads.Update(u.ID, func(lead *domain.Lead, exists bool) domain.LeadAction {
		if !exists {
			*lead = domain.NewLead(u, s.attemptID(), s.now())
		}
		lead.BirthInfo = info
		// запрос уже был получен, когда заявку пришлось восстанавливать
		if lead.QueryText != "" {
			lead.Completed = true
			return domain.LeadDelete
		}
		return domain.LeadSave
	})
	if lead.Completed {
		return s.complete(ctx, lead)
	}
	if !existed {
		s.restored(u.ID, lead.AttemptID, "birth_info")
	}
	s.transition(ctx, u.ID, eventBirthInfo)
	return Reply{Text: AskQueryText, Keyboard: flowKeyboard()}
}

// query завершает заявку. Если данные рождения потерялись вместе с заявкой,
// запрос сохраняется, а пользователя просят прислать данные рождения ещё раз:
// завершённая заявка всегда содержит оба ответа.
func (s *Signup) query(ctx context.Context, u domain.User, query string) Reply {
	lead, existed := s.leads.Update(u.ID, func(lead *domain.Lead, exists bool) domain.LeadAction {
		if !exists {
			*lead = domain.NewLead(u, s.attemptID(), s.now())
		}
		lead.QueryText = query
		if lead.BirthInfo == "" {
			return domain.LeadSave
		}
		lead.Completed = true
		return domain.LeadDelete
	})
	if lead.Completed {
		return s.complete(ctx, lead)
	}
	if !existed {
		s.restored(u.ID, lead.AttemptID, "query")
	}
	s.transition(ctx, u.ID, eventRestore)
	return Reply{Text: AskBirthAgainText, Keyboard: flowKeyboard()}
}

func (s *Signup) complete(ctx context.Context, lead domain.Lead) Reply {
	s.timer.Disarm(lead.UserID)
	s.transition(ctx, lead.UserID, eventQuery)
	s.logger.Info("signup completed", zap.Int64("user_id", lead.UserID), zap.String("attempt_id", lead.AttemptID))
	s.notifier.Completed(lead)
	return Reply{Text: ThanksText, Keyboard: mainMenuKeyboard()}
}

// restored взводит тайм-аут для заявки, собранной заново посреди анкеты.
func (s *Signup) restored(userID int64, attemptID, step string) {
	s.timer.Arm(userID, attemptID)
	s.logger.Info("lead restored", zap.Int64("user_id", userID), zap.String("attempt_id", attemptID), zap.String("step", step))
}

// Cancel удаляет заявку и возвращает пользователя в StateIdle.
func (s *Signup) Cancel(ctx context.Context, u domain.User) Reply {
	if s.State(u.ID) == StateIdle {
		return Reply{Text: NothingToCancel, Keyboard: mainMenuKeyboard()}
	}
	s.leads.Remove(u.ID)
	s.timer.Disarm(u.ID)
	s.transition(ctx, u.ID, eventCancel)
	s.logger.Info("signup cancelled", zap.Int64("user_id", u.ID))
	return Reply{Text: CancelledText, Keyboard: mainMenuKeyboard()}
}

// Menu сбрасывает шаг диалога, но заявку и таймер не трогает:
// брошенная так заявка всё равно уйдёт оператору по тайм-ауту.
func (s *Signup) Menu(ctx context.Context, u domain.User, text string) Reply {
	s.transition(ctx, u.ID, eventMenu)
	return Reply{Text: text, Keyboard: mainMenuKeyboard()}
}

func (s *Signup) transition(ctx context.Context, userID int64, event string) {
	sess := s.sessions.Get(userID)
	from := sess.State()
	if err := sess.fire(ctx, event); err != nil {
		s.logger.Error("conversation transition failed",
			zap.Int64("user_id", userID),
			zap.String("event", event),
			zap.String("state", string(from)),
			zap.Error(err),
		)
		return
	}
	s.sessions.Save(sess)
	s.logger.Debug("conversation state changed",
		zap.Int64("user_id", userID),
		zap.String("from", string(from)),
		zap.String("to", string(sess.State())),
	)
}
