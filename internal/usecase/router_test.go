package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Cratosart/Badzi/internal/domain"
)

func TestRouterMenuScreens(t *testing.T) {
	f := newFixture(time.Hour)
	defer f.scheduler.Stop()
	ctx := context.Background()

	tests := []struct {
		name string
		in   domain.Inbound
		text string
		kind domain.KeyboardKind
		edit bool
	}{
		{"intro button", textFrom(testUser, IntroBtn), IntroText, domain.KeyboardInline, false},
		{"format", actionFrom(testUser, ActionFormat), FormatText, domain.KeyboardInline, true},
		{"back to intro", actionFrom(testUser, ActionBackIntro), IntroText, domain.KeyboardInline, true},
		{"menu command", commandFrom(testUser, CmdMenu), MainMenuText, domain.KeyboardReply, false},
		{"chat id", commandFrom(testUser, CmdID), fmt.Sprintf(ChatIDTextFormat, testUser.ID), domain.KeyboardNone, false},
		{"unknown action", actionFrom(testUser, "nope"), ChooseActionText, domain.KeyboardReply, false},
		{"idle text", textFrom(testUser, "hello"), ChooseActionText, domain.KeyboardReply, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := f.router.Route(ctx, tt.in)
			assert.Equal(t, tt.text, reply.Text)
			assert.Equal(t, tt.kind, reply.Keyboard.Kind)
			assert.Equal(t, tt.edit, reply.Edit)
		})
	}

	attempts, _, _ := f.notifier.counts()
	assert.Zero(t, attempts)
}

func TestRouterIntroKeepsFlowState(t *testing.T) {
	f := newFixture(time.Hour)
	defer f.scheduler.Stop()
	ctx := context.Background()

	f.router.Route(ctx, actionFrom(testUser, ActionSignup))
	f.router.Route(ctx, textFrom(testUser, IntroBtn))
	assert.Equal(t, StateAwaitingBirthInfo, f.signup.State(testUser.ID))
}

func TestRouterUnknownCommandIsText(t *testing.T) {
	f := newFixture(time.Hour)
	defer f.scheduler.Stop()
	ctx := context.Background()

	f.router.Route(ctx, actionFrom(testUser, ActionSignup))
	reply := f.router.Route(ctx, commandFrom(testUser, "help"))
	assert.Equal(t, AskQueryText, reply.Text)

	lead, ok := f.leads.Get(testUser.ID)
	assert.True(t, ok)
	assert.Equal(t, "/help", lead.BirthInfo)
}

func TestRouterStartClearsState(t *testing.T) {
	f := newFixture(time.Hour)
	defer f.scheduler.Stop()
	ctx := context.Background()

	f.router.Route(ctx, actionFrom(testUser, ActionSignup))
	reply := f.router.Route(ctx, commandFrom(testUser, CmdStart))
	assert.Equal(t, WelcomeText, reply.Text)
	assert.Equal(t, StateIdle, f.signup.State(testUser.ID))
	_, ok := f.leads.Get(testUser.ID)
	assert.True(t, ok)
}
