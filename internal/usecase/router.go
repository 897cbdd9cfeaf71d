package usecase

import (
	"context"
	"fmt"

	"github.com/Cratosart/Badzi/internal/domain"
)

// Router сопоставляет входящее событие с переходом диалога. Своих данных не держит.
type Router struct {
	signup *Signup
}

func NewRouter(signup *Signup) *Router {
	return &Router{signup: signup}
}

func (r *Router) Route(ctx context.Context, in domain.Inbound) Reply {
	u := in.User

	if in.IsCommand() {
		switch in.Command {
		case CmdStart:
			return r.signup.Menu(ctx, u, WelcomeText)
		case CmdMenu:
			return r.signup.Menu(ctx, u, MainMenuText)
		case CmdID:
			return Reply{Text: fmt.Sprintf(ChatIDTextFormat, in.ChatID)}
		case CmdCancel:
			return r.signup.Cancel(ctx, u)
		}
		// незнакомые команды идут как обычный текст
	}

	if in.IsAction() {
		switch in.Action {
		case ActionFormat:
			return Reply{Text: FormatText, Keyboard: formatKeyboard(), Edit: true}
		case ActionBackIntro:
			return Reply{Text: IntroText, Keyboard: introKeyboard(), Edit: true}
		case ActionSignup:
			return r.signup.Begin(ctx, u)
		case ActionBackToMenu:
			return r.signup.Menu(ctx, u, MainMenuText)
		case ActionCancel:
			return r.signup.Cancel(ctx, u)
		}
		return Reply{Text: ChooseActionText, Keyboard: mainMenuKeyboard()}
	}

	if in.Text == IntroBtn {
		return Reply{Text: IntroText, Keyboard: introKeyboard()}
	}

	return r.signup.Receive(ctx, in)
}
