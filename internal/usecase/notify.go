package usecase

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Cratosart/Badzi/internal/domain"
)

// LeadNotifier сообщает оператору о судьбе заявки. Ошибок наружу не отдаёт.
type LeadNotifier interface {
	NewAttempt(lead domain.Lead)
	Abandoned(lead domain.Lead)
	Completed(lead domain.Lead)
}

const placeholder = "—"

// Notifier отправляет отчёты о заявках в один операторский чат.
type Notifier struct {
	sender      domain.MessageSender
	adminChatID int64
	logger      *zap.Logger
}

func NewNotifier(sender domain.MessageSender, adminChatID int64, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	if adminChatID == 0 {
		logger.Warn("admin chat id is not set, operator notifications are disabled")
	}
	return &Notifier{sender: sender, adminChatID: adminChatID, logger: logger}
}

func (n *Notifier) NewAttempt(lead domain.Lead) {
	text := "🟡 Новая попытка записи (пока незавершена)\n\n" +
		userLines(lead) +
		fmt.Sprintf("Начато: %s", formatStarted(lead.StartedAt))
	n.send("attempt", lead, text)
}

func (n *Notifier) Abandoned(lead domain.Lead) {
	text := "🟥 Попытка записи НЕ завершена (тайм-аут)\n\n" +
		userLines(lead) +
		fmt.Sprintf("Начато: %s\n\n", formatStarted(lead.StartedAt)) +
		"Введено:\n" +
		fmt.Sprintf("— Данные рождения: %s\n", orPlaceholder(lead.BirthInfo)) +
		fmt.Sprintf("— Запрос: %s", orPlaceholder(lead.QueryText))
	n.send("abandoned", lead, text)
}

func (n *Notifier) Completed(lead domain.Lead) {
	text := "🟢 Новая запись на консультацию\n\n" +
		userLines(lead) +
		"Заявка:\n" +
		fmt.Sprintf("— Данные рождения: %s\n", orPlaceholder(lead.BirthInfo)) +
		fmt.Sprintf("— Запрос: %s\n", orPlaceholder(lead.QueryText))
	n.send("completed", lead, text)
}

func (n *Notifier) send(kind string, lead domain.Lead, text string) {
	if n.adminChatID == 0 || n.sender == nil {
		return
	}
	if err := n.sender.SendText(n.adminChatID, text, domain.Keyboard{}); err != nil {
		n.logger.Error("admin notification failed",
			zap.String("kind", kind),
			zap.Int64("user_id", lead.UserID),
			zap.String("attempt_id", lead.AttemptID),
			zap.Error(err),
		)
		return
	}
	n.logger.Info("admin notified",
		zap.String("kind", kind),
		zap.Int64("user_id", lead.UserID),
		zap.String("attempt_id", lead.AttemptID),
	)
}

func userLines(lead domain.Lead) string {
	return fmt.Sprintf("Пользователь: %s (@%s)\nUser ID: %d\n", lead.DisplayName, orPlaceholder(lead.Handle), lead.UserID)
}

func formatStarted(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04") + " UTC"
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}
