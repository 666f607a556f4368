package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	callbackYes = "answer_yes"
	callbackNo  = "answer_no"
)

// CreateYesNoKeyboard creates the keyboard attached to confirmation prompts
func CreateYesNoKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Yes", callbackYes),
			tgbotapi.NewInlineKeyboardButtonData("❌ No", callbackNo),
		),
	)
}
