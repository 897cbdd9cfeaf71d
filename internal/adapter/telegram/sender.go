package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Cratosart/Badzi/internal/domain"
)

// botAPI — часть *tgbotapi.BotAPI, которой пользуется адаптер.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Реализация отправителя для юзкейсов
type Sender struct{ bot botAPI }

func NewSender(bot botAPI) *Sender { return &Sender{bot: bot} }

func (s *Sender) SendText(chatID int64, text string, kb domain.Keyboard) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup := replyMarkup(kb); markup != nil {
		msg.ReplyMarkup = markup
	}
	_, err := s.bot.Send(msg)
	return err
}

// EditText заменяет текст сообщения. Telegram позволяет прикрепить к правке только inline-клавиатуру.
func (s *Sender) EditText(chatID int64, messageID int, text string, kb domain.Keyboard) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if kb.Kind == domain.KeyboardInline {
		markup := inlineKeyboard(kb.Buttons)
		edit.ReplyMarkup = &markup
	}
	_, err := s.bot.Send(edit)
	return err
}

// ClearMarkup снимает inline-клавиатуру с сообщения, чтобы старые кнопки больше не нажимались.
func (s *Sender) ClearMarkup(chatID int64, messageID int) error {
	empty := tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
	_, err := s.bot.Request(tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, empty))
	return err
}

// AnswerCallback гасит «часики» на нажатой inline-кнопке.
func (s *Sender) AnswerCallback(callbackID string) error {
	_, err := s.bot.Request(tgbotapi.NewCallback(callbackID, ""))
	return err
}

func replyMarkup(kb domain.Keyboard) interface{} {
	switch kb.Kind {
	case domain.KeyboardReply:
		rows := make([][]tgbotapi.KeyboardButton, 0, len(kb.Buttons))
		for _, b := range kb.Buttons {
			rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(b.Text)))
		}
		markup := tgbotapi.NewReplyKeyboard(rows...)
		markup.ResizeKeyboard = true
		return markup
	case domain.KeyboardInline:
		return inlineKeyboard(kb.Buttons)
	case domain.KeyboardRemove:
		return tgbotapi.NewRemoveKeyboard(true)
	default:
		return nil
	}
}

func inlineKeyboard(buttons []domain.Button) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(buttons))
	for _, b := range buttons {
		data := b.Data
		if data == "" {
			data = b.Text
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.Text, data),
		))
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}
