// Package telegram sends notifications as Telegram messages from a bot to a
// single user.
package telegram

import (
	"context"
	"net/http"
	"time"

	"github.com/gabapcia/walletsentry/internal/action"
	"github.com/gabapcia/walletsentry/internal/message"

	"golang.org/x/time/rate"
	tele "gopkg.in/telebot.v4"
)

// DefaultRatePerSec keeps bursts of notifications under the Telegram bot limits.
const DefaultRatePerSec = 1

type sender struct {
	bot       *tele.Bot
	recipient tele.Recipient
	limiter   *rate.Limiter
	renderer  *message.Renderer
}

var _ action.Action = (*sender)(nil)

type config struct {
	apiURL string
	client *http.Client
}

type Option func(*config)

// WithAPIURL points the bot at another Bot API server. Default: the telebot default.
func WithAPIURL(url string) Option {
	return func(c *config) {
		c.apiURL = url
	}
}

// WithHTTPClient sets the client used for Bot API calls.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) {
		c.client = client
	}
}

// New authenticates the bot token against the Bot API.
func New(cfg action.TelegramConfig, renderer *message.Renderer, opts ...Option) (*sender, error) {
	c := config{
		client: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(&c)
	}

	bot, err := tele.NewBot(tele.Settings{
		URL:    c.apiURL,
		Token:  cfg.BotToken,
		Client: c.client,
	})
	if err != nil {
		return nil, err
	}

	rps := cfg.RatePerSec
	if rps <= 0 {
		rps = DefaultRatePerSec
	}

	return &sender{
		bot:       bot,
		recipient: tele.ChatID(cfg.UserID),
		limiter:   rate.NewLimiter(rate.Limit(rps), 1),
		renderer:  renderer,
	}, nil
}

func (s *sender) Name() string {
	return string(action.KindTelegram)
}

// Execute sends the subject and body as one plain text message.
func (s *sender) Execute(ctx context.Context, mctx *message.Context) error {
	subject, err := s.renderer.Subject(mctx)
	if err != nil {
		return err
	}

	body, err := s.renderer.Body(mctx)
	if err != nil {
		return err
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	_, err = s.bot.Send(s.recipient, subject+"\n"+body)
	return err
}
