package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Cratosart/Badzi/internal/domain"
	"github.com/Cratosart/Badzi/internal/usecase"
)

// queueSize — запас очереди каждого воркера. Отчёты оператору отправляются
// на воркере пользователя, так что медленный Telegram API заполняет очередь быстрее.
const queueSize = 256

type Handler struct {
	bot     botAPI
	sender  *Sender
	router  *usecase.Router
	workers int
	logger  *zap.Logger
}

func NewHandler(bot botAPI, router *usecase.Router, workers int, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		bot:     bot,
		sender:  NewSender(bot),
		router:  router,
		workers: workers,
		logger:  logger,
	}
}

// Run читает обновления long polling'ом, пока не отменят ctx.
func (h *Handler) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := h.bot.GetUpdatesChan(u)

	pool := newDispatchPool(h.workers, queueSize)
	defer pool.close()

	for {
		select {
		case <-ctx.Done():
			h.bot.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			in, callbackID, ok := toInbound(update)
			if !ok {
				continue
			}
			job := func() { h.handle(ctx, in, callbackID) }
			if err := pool.trySubmit(in.User.ID, job); err != nil {
				h.logger.Warn("worker queue is full, waiting", zap.Int64("user_id", in.User.ID))
				if err := pool.submit(ctx, in.User.ID, job); err != nil {
					h.bot.StopReceivingUpdates()
					return nil
				}
			}
		}
	}
}

func (h *Handler) handle(ctx context.Context, in domain.Inbound, callbackID string) {
	if callbackID != "" {
		if err := h.sender.AnswerCallback(callbackID); err != nil {
			h.logger.Warn("callback answer failed", zap.Int64("user_id", in.User.ID), zap.Error(err))
		}
	}
	reply := h.router.Route(ctx, in)
	h.deliver(in, reply)
}

func (h *Handler) deliver(in domain.Inbound, r usecase.Reply) {
	if r.Edit && in.MessageID != 0 && r.Keyboard.Kind != domain.KeyboardReply {
		err := h.sender.EditText(in.ChatID, in.MessageID, r.Text, r.Keyboard)
		if err == nil {
			return
		}
		h.logger.Warn("edit message failed, sending new one", zap.Int64("chat_id", in.ChatID), zap.Error(err))
	}
	if err := h.sender.SendText(in.ChatID, r.Text, r.Keyboard); err != nil {
		h.logger.Error("send reply failed", zap.Int64("chat_id", in.ChatID), zap.Error(err))
	}
	// ответ пришёл новым сообщением: кнопки под нажатым сообщением больше не актуальны
	if in.IsAction() && in.MessageID != 0 {
		if err := h.sender.ClearMarkup(in.ChatID, in.MessageID); err != nil {
			h.logger.Warn("clear keyboard failed", zap.Int64("chat_id", in.ChatID), zap.Int("message_id", in.MessageID), zap.Error(err))
		}
	}
}

// toInbound переводит обновление Telegram в событие; второй результат — id callback-запроса.
func toInbound(update tgbotapi.Update) (domain.Inbound, string, bool) {
	switch {
	case update.Message != nil:
		m := update.Message
		if m.From == nil || m.Chat == nil {
			return domain.Inbound{}, "", false
		}
		in := domain.Inbound{
			User:      toUser(m.From),
			ChatID:    m.Chat.ID,
			MessageID: m.MessageID,
			Text:      m.Text,
		}
		if m.IsCommand() {
			in.Command = m.Command()
		}
		return in, "", true
	case update.CallbackQuery != nil:
		q := update.CallbackQuery
		if q.From == nil {
			return domain.Inbound{}, "", false
		}
		in := domain.Inbound{
			User:   toUser(q.From),
			ChatID: q.From.ID,
			Action: q.Data,
		}
		if q.Message != nil && q.Message.Chat != nil {
			in.ChatID = q.Message.Chat.ID
			in.MessageID = q.Message.MessageID
		}
		return in, q.ID, true
	default:
		return domain.Inbound{}, "", false
	}
}

func toUser(u *tgbotapi.User) domain.User {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	return domain.User{ID: u.ID, DisplayName: name, Handle: u.UserName}
}
