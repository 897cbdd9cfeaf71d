package usecase

import "github.com/Cratosart/Badzi/internal/domain"

// Тексты и кнопки, которые видит пользователь

const (
	IntroBtn = "Хочу на консультацию Ба-Цзы"

	IntroText = "Консультация Ба-Цзы — это разбор характера человека и его судьбы по дате и времени рождения на основе " +
		"китайской метафизики ☯️ Разбор — это встреча со своим внутренним я, с сильными и слабыми качествами личности; " +
		"это ясный взгляд на здоровье, семью, финансы, профессию, совместимость и другие аспекты вашей жизни."

	FormatText = "Формат консультации:\n\n" +
		"🪷 живая встреча в Москве/Петербурге или онлайн созвон\n" +
		"🪷 длительность консультации 2 часа\n" +
		"🪷 полный разбор вашей карты ба-цзы\n" +
		"🪷 стоимость 26 000₽"

	AskBirthText = "Введите ваши данные рождения: дату, время и город\n" +
		"(если не знаете время рождения — не беда, для консультации проводится восстановление времени рождения)."
	AskQueryText      = "Расскажите, какой запрос привёл вас на консультацию?"
	AskBirthAgainText = "Запрос записала 🙏 Но ваши данные рождения потерялись — пришлите, пожалуйста, ещё раз дату, время и город рождения."
	ThanksText        = "Благодарю 🙌 Я скоро свяжусь с вами!"
	CancelledText     = "Запись отменена. Если передумаете — нажмите кнопку в меню."
	NothingToCancel   = "Сейчас нечего отменять."

	WelcomeText      = "Добро пожаловать! Выберите действие:"
	MainMenuText     = "Главное меню:"
	ChooseActionText = "Выберите действие:"
	ChatIDTextFormat = "Ваш chat_id: %d"
)

// Команды и payload inline-кнопок
const (
	CmdStart  = "start"
	CmdID     = "id"
	CmdMenu   = "menu"
	CmdCancel = "cancel"

	ActionFormat     = "format"
	ActionSignup     = "signup"
	ActionBackIntro  = "back_intro"
	ActionBackToMenu = "back_to_menu"
	ActionCancel     = "cancel"
)

func mainMenuKeyboard() domain.Keyboard {
	return domain.ReplyKeyboard(IntroBtn)
}

func introKeyboard() domain.Keyboard {
	return domain.InlineKeyboard(
		domain.Button{Text: "• Формат и стоимость", Data: ActionFormat},
		domain.Button{Text: "• Записаться на консультацию", Data: ActionSignup},
	)
}

func formatKeyboard() domain.Keyboard {
	return domain.InlineKeyboard(domain.Button{Text: "⬅️ Назад", Data: ActionBackIntro})
}

// flowKeyboard прикладывается к вопросам анкеты
func flowKeyboard() domain.Keyboard {
	return domain.InlineKeyboard(
		domain.Button{Text: "✖️ Отменить запись", Data: ActionCancel},
		domain.Button{Text: "⬅️ В меню", Data: ActionBackToMenu},
	)
}
