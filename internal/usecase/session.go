package usecase

import (
	"context"
	"errors"

	"github.com/looplab/fsm"
)

// State — шаг диалога записи, на котором находится пользователь.
type State string

const (
	StateIdle              State = "idle"
	StateAwaitingBirthInfo State = "awaiting_birth_info"
	StateAwaitingQuery     State = "awaiting_query"
)

const (
	eventBegin     = "begin"
	eventBirthInfo = "birth_info"
	eventQuery     = "query"
	eventCancel    = "cancel"
	eventMenu      = "menu"
	eventRestore   = "restore"
)

var allStates = []string{string(StateIdle), string(StateAwaitingBirthInfo), string(StateAwaitingQuery)}

// Session хранит текущее состояние диалога одного пользователя.
type Session struct {
	UserID int64
	fsm    *fsm.FSM
}

type SessionRepository interface {
	// Get возвращает сессию пользователя, создавая её в StateIdle при отсутствии.
	Get(userID int64) *Session
	// Save сообщает хранилищу, что шаг диалога сменился.
	Save(s *Session)
}

func NewSession(userID int64) *Session {
	return &Session{
		UserID: userID,
		fsm: fsm.NewFSM(
			string(StateIdle),
			fsm.Events{
				{Name: eventBegin, Src: allStates, Dst: string(StateAwaitingBirthInfo)},
				{Name: eventBirthInfo, Src: []string{string(StateAwaitingBirthInfo)}, Dst: string(StateAwaitingQuery)},
				{Name: eventQuery, Src: []string{string(StateAwaitingBirthInfo), string(StateAwaitingQuery)}, Dst: string(StateIdle)},
				{Name: eventRestore, Src: []string{string(StateAwaitingQuery)}, Dst: string(StateAwaitingBirthInfo)},
				{Name: eventCancel, Src: []string{string(StateAwaitingBirthInfo), string(StateAwaitingQuery)}, Dst: string(StateIdle)},
				{Name: eventMenu, Src: allStates, Dst: string(StateIdle)},
			},
			fsm.Callbacks{},
		),
	}
}

func (s *Session) State() State { return State(s.fsm.Current()) }

// fire переводит сессию по событию; переход в то же состояние ошибкой не считается.
func (s *Session) fire(ctx context.Context, event string) error {
	err := s.fsm.Event(ctx, event)
	var noTransition fsm.NoTransitionError
	if err != nil && !errors.As(err, &noTransition) {
		return err
	}
	return nil
}
