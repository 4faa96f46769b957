package action

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gabapcia/walletsentry/internal/pkg/validator"

	"go.yaml.in/yaml/v3"
)

// Config is a tagged union: Type selects the backend and exactly the matching
// parameter block is set. Parameters sit next to the type key in YAML:
//
//	- type: ntfy
//	  topic: my-wallets
//	  priority: 4
type Config struct {
	Type Kind `yaml:"type" validate:"required"`

	Command     *CommandConfig     `yaml:"-" validate:"required_if=Type command"`
	Ntfy        *NtfyConfig        `yaml:"-" validate:"required_if=Type ntfy"`
	Telegram    *TelegramConfig    `yaml:"-" validate:"required_if=Type telegram"`
	Email       *EmailConfig       `yaml:"-" validate:"required_if=Type email"`
	RedisStream *RedisStreamConfig `yaml:"-" validate:"required_if=Type redis_stream"`
	Nostr       *NostrConfig       `yaml:"-" validate:"required_if=Type nostr"`

	// decodeErr holds a parameter decoding failure so it only disables
	// this action instead of the whole configuration file.
	decodeErr error
}

type CommandConfig struct {
	Cmd            string            `yaml:"cmd" validate:"required"`
	Args           []string          `yaml:"args"`
	Envs           map[string]string `yaml:"envs"`
	ClearParentEnv bool              `yaml:"clear_parent_env"`
	WorkingDir     string            `yaml:"working_dir"`
}

type Credentials struct {
	Username string `yaml:"username" validate:"required"`
	Password string `yaml:"password"`
}

type NtfyConfig struct {
	URL         string       `yaml:"url" validate:"omitempty,url"`
	Topic       string       `yaml:"topic"`
	Credentials *Credentials `yaml:"credentials"`
	Priority    int          `yaml:"priority" validate:"omitempty,min=1,max=5"`
	Tags        []string     `yaml:"tags"`
	Proxy       string       `yaml:"proxy" validate:"omitempty,url"`
}

type TelegramConfig struct {
	BotToken   string  `yaml:"bot_token" validate:"required"`
	UserID     int64   `yaml:"user_id" validate:"required"`
	RatePerSec float64 `yaml:"rate_per_sec" validate:"gte=0"`
}

// EmailConnection is the SMTP transport security.
type EmailConnection string

const (
	EmailConnectionPlain    EmailConnection = "plain"
	EmailConnectionStartTLS EmailConnection = "starttls"
	EmailConnectionTLS      EmailConnection = "tls"
)

type EmailConfig struct {
	Server         string          `yaml:"server" validate:"required,hostname|ip"`
	Port           int             `yaml:"port" validate:"omitempty,min=1,max=65535"`
	Connection     EmailConnection `yaml:"connection" validate:"omitempty,oneof=plain starttls tls"`
	SelfSignedCert bool            `yaml:"self_signed_cert"`
	Credentials    *Credentials    `yaml:"credentials"`
	From           string          `yaml:"from" validate:"required,email"`
	To             string          `yaml:"to" validate:"omitempty,email"`
	Timeout        time.Duration   `yaml:"timeout"`
}

type RedisStreamConfig struct {
	Addr     string `yaml:"addr" validate:"required,hostname_port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" validate:"gte=0"`
	Stream   string `yaml:"stream" validate:"required"`
	MaxLen   int64  `yaml:"maxlen" validate:"gte=0"`
}

type NostrConfig struct {
	// Relays default to a set of public relays when empty.
	Relays []string `yaml:"relays" validate:"dive,url"`

	// Recipient is an npub, a hex public key or a NIP-05 identifier.
	Recipient string `yaml:"recipient" validate:"required"`

	// SecretKey signs the messages, as an nsec or hex. A key is generated
	// and persisted in the user cache dir when empty.
	SecretKey string `yaml:"secret_key"`

	BotMetadata       *NostrMetadata `yaml:"bot_metadata"`
	ResendBotMetadata bool           `yaml:"resend_bot_metadata"`
}

// NostrMetadata is the profile published for the sending key.
type NostrMetadata struct {
	Name        string `yaml:"name" json:"name,omitempty"`
	DisplayName string `yaml:"display_name" json:"display_name,omitempty"`
	About       string `yaml:"about" json:"about,omitempty"`
	Picture     string `yaml:"picture" json:"picture,omitempty" validate:"omitempty,url"`
	Website     string `yaml:"website" json:"website,omitempty" validate:"omitempty,url"`
}

// UnmarshalYAML decodes the type key and then the parameter block it selects.
// Parameters are decoded strictly: unknown keys and malformed values are kept
// as an ErrInvalidConfig reported by Validate. Unknown kinds decode without
// parameters and are rejected by the Registry.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	var tag struct {
		Type Kind `yaml:"type"`
	}
	if err := node.Decode(&tag); err != nil {
		return err
	}

	*c = Config{Type: tag.Type}

	var params any
	switch c.Type {
	case KindCommand:
		c.Command = &CommandConfig{}
		params = c.Command
	case KindNtfy:
		c.Ntfy = &NtfyConfig{}
		params = c.Ntfy
	case KindTelegram:
		c.Telegram = &TelegramConfig{}
		params = c.Telegram
	case KindEmail:
		c.Email = &EmailConfig{}
		params = c.Email
	case KindRedisStream:
		c.RedisStream = &RedisStreamConfig{}
		params = c.RedisStream
	case KindNostr:
		c.Nostr = &NostrConfig{}
		params = c.Nostr
	case KindTerminalPrint, KindDesktopNotification:
		params = &struct{}{}
	default:
		return nil
	}

	if err := decodeStrict(withoutKey(node, "type"), params); err != nil {
		c.decodeErr = fmt.Errorf("%w: %s: %v", ErrInvalidConfig, c.Type, err)
	}
	return nil
}

// withoutKey returns a copy of the mapping node without key.
func withoutKey(node *yaml.Node, key string) *yaml.Node {
	out := *node
	out.Content = make([]*yaml.Node, 0, len(node.Content))
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			continue
		}
		out.Content = append(out.Content, node.Content[i], node.Content[i+1])
	}
	return &out
}

// decodeStrict decodes node into out rejecting unknown keys.
func decodeStrict(node *yaml.Node, out any) error {
	data, err := yaml.Marshal(node)
	if err != nil {
		return err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks the type tag and the parameter block it selects.
func (c Config) Validate() error {
	if c.decodeErr != nil {
		return c.decodeErr
	}
	return validator.Validate(c)
}
