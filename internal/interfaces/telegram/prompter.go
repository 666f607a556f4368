package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	cancelCommand = "/cancel"
	keepCommand   = "/keep"
)

// ErrUpdatesClosed is returned when the update stream ends before a chat is bound
var ErrUpdatesClosed = errors.New("telegram updates channel closed")

// Messenger sends messages to Telegram chats
type Messenger interface {
	SendMessage(chatID int64, text string) error
	SendMessageWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error
	AnswerCallbackQuery(callbackID string, text string) error
}

// Prompter runs blocking dialogs over a single chat. Messages from any other
// chat are ignored. Sending /cancel cancels the pending dialog.
type Prompter struct {
	bot     Messenger
	updates <-chan tgbotapi.Update
	chatID  int64
	log     *zap.Logger
}

// NewPrompter creates a new Telegram prompter. With chatID zero the prompter
// binds to the first chat that writes.
func NewPrompter(bot Messenger, updates <-chan tgbotapi.Update, chatID int64, log *zap.Logger) *Prompter {
	return &Prompter{
		bot:     bot,
		updates: updates,
		chatID:  chatID,
		log:     log,
	}
}

// ChatID returns the bound chat or zero
func (p *Prompter) ChatID() int64 {
	return p.chatID
}

// WaitForChat blocks until the bound chat sends anything
func (p *Prompter) WaitForChat(ctx context.Context) error {
	if _, ok := p.receive(ctx); !ok {
		if err := ctx.Err(); err != nil {
			return err
		}
		return ErrUpdatesClosed
	}
	return nil
}

// AskText sends prompt and waits for a text reply. /keep returns initial.
func (p *Prompter) AskText(ctx context.Context, prompt, initial string) (string, bool) {
	text := prompt
	if initial != "" {
		text += fmt.Sprintf("\n\nCurrent: %s\nSend %s to keep it.", initial, keepCommand)
	}
	p.send(text)

	for {
		r, ok := p.receive(ctx)
		if !ok {
			return "", false
		}

		switch {
		case r.data != "":
			// button from an earlier prompt
			continue
		case r.text == cancelCommand:
			return "", false
		case r.text == keepCommand:
			return initial, true
		case r.text == "":
			continue
		}

		return r.text, true
	}
}

// AskYesNo sends prompt with a Yes/No keyboard. Typed yes/no answers are
// accepted too; /cancel counts as no.
func (p *Prompter) AskYesNo(ctx context.Context, prompt string) bool {
	if err := p.bot.SendMessageWithKeyboard(p.chatID, prompt, CreateYesNoKeyboard()); err != nil {
		p.log.Warn("failed to send confirmation", zap.Int64("chat_id", p.chatID), zap.Error(err))
	}

	for {
		r, ok := p.receive(ctx)
		if !ok {
			return false
		}

		switch r.data {
		case callbackYes:
			return true
		case callbackNo:
			return false
		}

		switch strings.ToLower(r.text) {
		case "":
			continue
		case "yes", "y":
			return true
		case "no", "n", cancelCommand:
			return false
		}

		p.send("Please answer yes or no.")
	}
}

// ShowInfo sends an informational message
func (p *Prompter) ShowInfo(_ context.Context, title, body string) {
	p.send(title + "\n\n" + body)
}

// ShowError sends an error message
func (p *Prompter) ShowError(_ context.Context, title, body string) {
	p.send("⚠️ " + title + "\n\n" + body)
}

func (p *Prompter) send(text string) {
	if p.chatID == 0 {
		p.log.Warn("no chat bound, dropping message", zap.String("text", text))
		return
	}
	if err := p.bot.SendMessage(p.chatID, text); err != nil {
		p.log.Warn("failed to send message", zap.Int64("chat_id", p.chatID), zap.Error(err))
	}
}

type reply struct {
	text string
	data string
}

// receive returns the next message or button press from the bound chat
func (p *Prompter) receive(ctx context.Context) (reply, bool) {
	for {
		var update tgbotapi.Update
		select {
		case <-ctx.Done():
			return reply{}, false
		case u, ok := <-p.updates:
			if !ok {
				return reply{}, false
			}
			update = u
		}

		chatID, r, ok := p.parse(update)
		if !ok {
			continue
		}

		if p.chatID == 0 {
			p.chatID = chatID
			p.log.Info("bound to chat", zap.Int64("chat_id", chatID))
		}

		if chatID != p.chatID {
			p.log.Debug("ignoring update from another chat", zap.Int64("chat_id", chatID))
			continue
		}

		return r, true
	}
}

func (p *Prompter) parse(update tgbotapi.Update) (int64, reply, bool) {
	switch {
	case update.Message != nil && update.Message.Chat != nil:
		return update.Message.Chat.ID, reply{text: strings.TrimSpace(update.Message.Text)}, true
	case update.CallbackQuery != nil:
		callback := update.CallbackQuery
		if err := p.bot.AnswerCallbackQuery(callback.ID, ""); err != nil {
			p.log.Warn("failed to answer callback query", zap.Error(err))
		}

		switch {
		case callback.Message != nil && callback.Message.Chat != nil:
			return callback.Message.Chat.ID, reply{data: callback.Data}, true
		case callback.From != nil:
			return callback.From.ID, reply{data: callback.Data}, true
		}
	}

	return 0, reply{}, false
}
