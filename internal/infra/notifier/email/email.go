// Package email sends notifications over SMTP. Markdown and HTML bodies are
// sent as multipart/alternative with a plain text part.
package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"

	"github.com/gabapcia/walletsentry/internal/action"
	"github.com/gabapcia/walletsentry/internal/message"

	"github.com/wneessen/go-mail"
	"github.com/yuin/goldmark"
)

// Default ports per connection type.
const (
	DefaultTLSPort      = 465
	DefaultStartTLSPort = 587
	DefaultPlainPort    = 25
)

type sender struct {
	client   *mail.Client
	from     string
	to       string
	renderer *message.Renderer
	markdown goldmark.Markdown
}

var _ action.Action = (*sender)(nil)

// New prepares the SMTP client. No connection is made until the first Execute.
func New(cfg action.EmailConfig, renderer *message.Renderer) (*sender, error) {
	connection := cfg.Connection
	if connection == "" {
		connection = action.EmailConnectionTLS
	}

	port := cfg.Port
	if port == 0 {
		port = defaultPort(connection)
	}

	opts := []mail.Option{mail.WithPort(port)}
	switch connection {
	case action.EmailConnectionTLS:
		opts = append(opts, mail.WithSSL())
	case action.EmailConnectionStartTLS:
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	default:
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	if cfg.SelfSignedCert {
		opts = append(opts, mail.WithTLSConfig(&tls.Config{
			ServerName:         cfg.Server,
			InsecureSkipVerify: true, //nolint:gosec // opted in by configuration
		}))
	}

	if cfg.Credentials != nil {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Credentials.Username),
			mail.WithPassword(cfg.Credentials.Password),
		)
	}

	if cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(cfg.Timeout))
	}

	client, err := mail.NewClient(cfg.Server, opts...)
	if err != nil {
		return nil, err
	}

	to := cfg.To
	if to == "" {
		to = cfg.From
	}

	return &sender{
		client:   client,
		from:     cfg.From,
		to:       to,
		renderer: renderer,
		markdown: goldmark.New(),
	}, nil
}

func defaultPort(connection action.EmailConnection) int {
	switch connection {
	case action.EmailConnectionStartTLS:
		return DefaultStartTLSPort
	case action.EmailConnectionPlain:
		return DefaultPlainPort
	default:
		return DefaultTLSPort
	}
}

func (s *sender) Name() string {
	return string(action.KindEmail)
}

func (s *sender) Execute(ctx context.Context, mctx *message.Context) error {
	subject, err := s.renderer.Subject(mctx)
	if err != nil {
		return err
	}

	body, err := s.renderer.Body(mctx)
	if err != nil {
		return err
	}

	msg, err := s.newMsg(subject, body)
	if err != nil {
		return err
	}

	return s.client.DialAndSendWithContext(ctx, msg)
}

func (s *sender) newMsg(subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return nil, fmt.Errorf("invalid from address %q: %w", s.from, err)
	}
	if err := msg.To(s.to); err != nil {
		return nil, fmt.Errorf("invalid to address %q: %w", s.to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	switch s.renderer.Format() {
	case message.FormatMarkdown:
		var html bytes.Buffer
		if err := s.markdown.Convert([]byte(body), &html); err != nil {
			return nil, err
		}
		msg.AddAlternativeString(mail.TypeTextHTML, "<!DOCTYPE html><html><body>"+html.String()+"</body></html>")
	case message.FormatHTML:
		msg.AddAlternativeString(mail.TypeTextHTML, body)
	}

	return msg, nil
}
