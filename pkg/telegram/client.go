package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// Telegram allows roughly one message per second into a single chat.
const (
	messagesPerSecond = 1
	messageBurst      = 3
)

// Notifier sends operator notifications: anomaly alerts and exhausted stream retries.
type Notifier interface {
	SendMessage(text string) error
}

// sender is the slice of the bot API the client needs.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type client struct {
	bot     sender
	chatID  int64
	limiter *rate.Limiter
}

// NewClient connects to the Bot API and returns a notifier posting into chatID.
func NewClient(botToken string, chatID int64) (Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to connect telegram bot: %w", err)
	}
	return newClient(bot, chatID), nil
}

func newClient(bot sender, chatID int64) *client {
	return &client{
		bot:     bot,
		chatID:  chatID,
		limiter: rate.NewLimiter(rate.Limit(messagesPerSecond), messageBurst),
	}
}

// SendMessage posts text as Markdown. Text Telegram cannot parse as Markdown, such as a ticker
// with an underscore, is resent as plain text.
func (c *client) SendMessage(text string) error {
	if err := c.limiter.Wait(context.Background()); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(c.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err := c.bot.Send(msg)
	if err == nil || !isParseError(err) {
		return err
	}

	plain := tgbotapi.NewMessage(c.chatID, text)
	if _, err := c.bot.Send(plain); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}

func isParseError(err error) bool {
	return strings.Contains(err.Error(), "can't parse entities")
}

// NewNotifier returns a Telegram client when a bot token is configured and a no-op notifier otherwise.
func NewNotifier(botToken string, chatID int64) (Notifier, error) {
	if botToken == "" {
		return nopNotifier{}, nil
	}
	return NewClient(botToken, chatID)
}

type nopNotifier struct{}

func (nopNotifier) SendMessage(string) error { return nil }
