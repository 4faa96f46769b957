// Package config loads the walletsentry configuration: a YAML file found
// through a fixed discovery order, a few environment overrides and the
// defaults every component starts from.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gabapcia/walletsentry/internal/action"
	"github.com/gabapcia/walletsentry/internal/chain"
	"github.com/gabapcia/walletsentry/internal/infra/blockchain/esplora"
	"github.com/gabapcia/walletsentry/internal/message"
	"github.com/gabapcia/walletsentry/internal/pkg/validator"

	"github.com/kelseyhightower/envconfig"
	"go.yaml.in/yaml/v3"
)

// EnvPrefix prefixes every environment variable read by the application.
const EnvPrefix = "WALLETSENTRY"

// Defaults resolved at load time.
const (
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "json"
	DefaultHeightInterval  = 60 * time.Second
	DefaultMonitorInterval = 10 * time.Second
	DefaultServiceName     = "walletsentry"
)

var (
	// ErrNoWallets is returned when the configuration declares no wallet.
	ErrNoWallets = errors.New("no wallets configured")

	// ErrDuplicateWallet is returned when two wallets share a name.
	ErrDuplicateWallet = errors.New("duplicate wallet name")
)

// Env holds the settings read from WALLETSENTRY_* environment variables.
type Env struct {
	Config        string `envconfig:"CONFIG"`
	LogLevel      string `envconfig:"LOG_LEVEL"`
	LogFormat     string `envconfig:"LOG_FORMAT"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
}

// LoadEnv reads the environment overrides.
func LoadEnv() (Env, error) {
	var env Env
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return Env{}, err
	}
	return env, nil
}

type Config struct {
	Log       LogConfig       `yaml:"log"`
	Chain     ChainConfig     `yaml:"chain"`
	Monitor   MonitorConfig   `yaml:"monitor"`
	Storage   StorageConfig   `yaml:"storage"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Message   MessageConfig   `yaml:"message"`
	Wallets   []WalletConfig  `yaml:"wallets" validate:"dive"`

	// Actions are validated one by one when the backends are built, so a
	// broken entry only disables itself.
	Actions []action.Config `yaml:"actions"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json console"`
}

type ChainConfig struct {
	Network        chain.Network `yaml:"network"`
	URL            string        `yaml:"url" validate:"omitempty,url"`
	Proxy          string        `yaml:"proxy" validate:"omitempty,url"`
	GapLimit       int           `yaml:"gap_limit" validate:"gte=0"`
	HeightInterval time.Duration `yaml:"height_interval" validate:"gte=0"`
}

type MonitorConfig struct {
	Interval    *time.Duration `yaml:"interval" validate:"omitempty,gte=0"`
	InitialSync *bool          `yaml:"initial_sync"`
}

type StorageConfig struct {
	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig enables the persisted seen-set when Addr is set.
type RedisConfig struct {
	Addr      string `yaml:"addr" validate:"omitempty,hostname_port"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db" validate:"gte=0"`
	KeyPrefix string `yaml:"key_prefix"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

type MessageConfig struct {
	Subject        string                   `yaml:"subject"`
	Body           string                   `yaml:"body"`
	Format         message.Format           `yaml:"format"`
	BlockExplorers map[chain.Network]string `yaml:"block_explorers"`
}

// WalletConfig describes a watched wallet: either an extended public key or
// a fixed address list.
type WalletConfig struct {
	Name             string              `yaml:"name" validate:"required"`
	Descriptor       string              `yaml:"descriptor" validate:"required_without_all=XPub Addresses"`
	ChangeDescriptor string              `yaml:"change_descriptor" validate:"excluded_without=Descriptor"`
	XPub             string              `yaml:"xpub" validate:"required_without_all=Descriptor Addresses"`
	Kind             esplora.AddressKind `yaml:"kind"`
	Addresses        []string            `yaml:"addresses" validate:"required_without_all=Descriptor XPub"`
	GapLimit         int                 `yaml:"gap_limit" validate:"gte=0"`
}

// LoadOption adjusts how Load treats the decoded file.
type LoadOption func(*loadOptions)

type loadOptions struct {
	withoutWallets bool
}

// WithoutWallets drops the wallets section before validation. It serves
// commands that only need the message and actions sections.
func WithoutWallets() LoadOption {
	return func(o *loadOptions) {
		o.withoutWallets = true
	}
}

// Load reads the file at path, applies env on top of it and validates the result.
func Load(path string, env Env, opts ...LoadOption) (*Config, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cfg.applyEnv(env)

	validate := cfg.Validate
	if o.withoutWallets {
		cfg.Wallets = nil
		validate = func() error {
			if err := validator.Validate(cfg); err != nil {
				return err
			}
			return cfg.validateMessage()
		}
	}

	if err := validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes a YAML document and fills in defaults. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyEnv(env Env) {
	if env.LogLevel != "" {
		c.Log.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		c.Log.Format = env.LogFormat
	}
	if env.RedisPassword != "" {
		c.Storage.Redis.Password = env.RedisPassword
	}
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	if c.Chain.GapLimit == 0 {
		c.Chain.GapLimit = esplora.DefaultGapLimit
	}
	if c.Chain.HeightInterval == 0 {
		c.Chain.HeightInterval = DefaultHeightInterval
	}
	if c.Monitor.Interval == nil {
		interval := DefaultMonitorInterval
		c.Monitor.Interval = &interval
	}
	if c.Monitor.InitialSync == nil {
		enabled := true
		c.Monitor.InitialSync = &enabled
	}
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = DefaultServiceName
	}
	if c.Message.Subject == "" {
		c.Message.Subject = message.DefaultSubject
	}
	if c.Message.Body == "" {
		c.Message.Body = message.DefaultBody
	}
	if c.Message.Format == "" {
		c.Message.Format = message.FormatPlain
	}

	for i := range c.Wallets {
		if c.Wallets[i].GapLimit == 0 {
			c.Wallets[i].GapLimit = c.Chain.GapLimit
		}
	}
}

// Validate checks the structure, the wallet set and the message templates.
func (c *Config) Validate() error {
	if err := validator.Validate(c); err != nil {
		return err
	}

	if len(c.Wallets) == 0 {
		return ErrNoWallets
	}

	names := make(map[string]struct{}, len(c.Wallets))
	for _, w := range c.Wallets {
		if _, ok := names[w.Name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateWallet, w.Name)
		}
		names[w.Name] = struct{}{}
	}

	return c.validateMessage()
}

// validateMessage checks the message templates and the block explorers.
func (c *Config) validateMessage() error {
	if err := message.ValidateTemplate(c.Message.Subject); err != nil {
		return fmt.Errorf("message.subject: %w", err)
	}
	if err := message.ValidateTemplate(c.Message.Body); err != nil {
		return fmt.Errorf("message.body: %w", err)
	}

	explorers := message.DefaultExplorers()
	for network, tmpl := range c.Message.BlockExplorers {
		explorers[network] = tmpl
	}
	if err := explorers.Validate(); err != nil {
		return fmt.Errorf("message.block_explorers: %w", err)
	}

	return nil
}
