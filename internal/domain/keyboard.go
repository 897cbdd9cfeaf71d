package domain

type KeyboardKind int

const (
	KeyboardNone KeyboardKind = iota
	KeyboardReply
	KeyboardInline
	KeyboardRemove
)

type Button struct {
	Text string
	Data string
}

// Keyboard описывает кнопки независимо от транспорта; по одной кнопке в ряд.
type Keyboard struct {
	Kind    KeyboardKind
	Buttons []Button
}

func ReplyKeyboard(labels ...string) Keyboard {
	buttons := make([]Button, 0, len(labels))
	for _, l := range labels {
		buttons = append(buttons, Button{Text: l})
	}
	return Keyboard{Kind: KeyboardReply, Buttons: buttons}
}

func InlineKeyboard(buttons ...Button) Keyboard {
	return Keyboard{Kind: KeyboardInline, Buttons: buttons}
}
