package domain

import "strings"

type User struct {
	ID          int64
	DisplayName string
	Handle      string
}

// Inbound — одно входящее событие от мессенджера.
type Inbound struct {
	User      User
	ChatID    int64
	MessageID int
	Text      string
	// Command без ведущего слэша, пусто если это не команда
	Command string
	// Action — payload нажатой inline-кнопки
	Action string
}

func (in Inbound) IsCommand() bool { return in.Command != "" }

func (in Inbound) IsAction() bool { return in.Action != "" }

// HasText сообщает, пришёл ли непустой текст (фото, стикеры и пробелы не считаются).
func (in Inbound) HasText() bool { return strings.TrimSpace(in.Text) != "" }

// Abstraction for sending messages (implemented by Telegram adapter)
type MessageSender interface {
	SendText(chatID int64, text string, kb Keyboard) error
}
