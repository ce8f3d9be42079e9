// Package telegram runs the chat service as a Telegram bot.
package telegram

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	tele "gopkg.in/telebot.v3"

	"weatherbot/internal/chat"
)

// maxMessageLen stays under Telegram's 4096 character limit.
const maxMessageLen = 4000

const welcomeText = "👋 Hi, I'm WeatherBot! Ask me things like \"weather in Paris tomorrow\" or \"when is sunset in Lyon on friday?\"."

// ErrMissingToken is returned by NewBot without a bot token.
var ErrMissingToken = errors.New("telegram_token (or WEATHERBOT_TELEGRAM_TOKEN) is required")

// Bot relays text messages to a chat.Responder. Replies carry no state
// between messages, so every chat shares one responder.
type Bot struct {
	bot       *tele.Bot
	responder chat.Responder
	log       zerolog.Logger
}

// NewBot creates the bot. offline skips the getMe call, for tests.
func NewBot(token string, r chat.Responder, log zerolog.Logger, offline bool) (*Bot, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	b, err := tele.NewBot(tele.Settings{
		Token:   token,
		Poller:  &tele.LongPoller{Timeout: 10 * time.Second},
		Offline: offline,
		OnError: func(err error, c tele.Context) {
			log.Error().Err(err).Msg("telegram handler failed")
		},
	})
	if err != nil {
		return nil, err
	}

	adapter := &Bot{
		bot:       b,
		responder: r,
		log:       log.With().Str("component", "telegram").Logger(),
	}
	adapter.setupHandlers()
	return adapter, nil
}

// Start polls for updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	b.log.Info().Str("username", b.bot.Me.Username).Msg("starting telegram bot")

	go func() {
		<-ctx.Done()
		b.log.Info().Msg("shutting down telegram bot")
		b.bot.Stop()
	}()

	b.bot.Start()
	return nil
}

func (b *Bot) setupHandlers() {
	b.bot.Handle("/start", func(c tele.Context) error {
		return c.Send(welcomeText)
	})
	b.bot.Handle("/help", func(c tele.Context) error {
		return c.Send(welcomeText)
	})
	b.bot.Handle(tele.OnText, b.handleMessage)
}

func (b *Bot) handleMessage(c tele.Context) error {
	_ = c.Notify(tele.Typing)

	var chatID int64
	if ch := c.Chat(); ch != nil {
		chatID = ch.ID
	}

	turnCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	reply, intent := b.responder.Chat(turnCtx, c.Text())
	b.log.Debug().Int64("chat", chatID).Str("intent", intent.String()).Msg("telegram message answered")

	if reply == "" {
		return c.Send("🤷 I don't have a response for that.")
	}
	return sendLongMessage(c, reply)
}

// sendLongMessage sends text in chunks that fit one Telegram message.
func sendLongMessage(c tele.Context, text string) error {
	for _, chunk := range splitMessage(text, maxMessageLen) {
		if err := c.Send(chunk); err != nil {
			return err
		}
	}
	return nil
}

// splitMessage cuts text into pieces of at most max runes, never inside a
// UTF-8 sequence.
func splitMessage(text string, max int) []string {
	runes := []rune(text)
	var out []string
	for len(runes) > max {
		out = append(out, string(runes[:max]))
		runes = runes[max:]
	}
	if len(runes) > 0 {
		out = append(out, string(runes))
	}
	return out
}
