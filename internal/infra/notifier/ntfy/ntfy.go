// Package ntfy publishes notifications to an ntfy server (https://ntfy.sh or
// self-hosted) through its JSON publishing endpoint.
package ntfy

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabapcia/walletsentry/internal/action"
	"github.com/gabapcia/walletsentry/internal/message"
	"github.com/gabapcia/walletsentry/internal/pkg/logger"
	httpclient "github.com/gabapcia/walletsentry/internal/pkg/transport/http"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	DefaultURL      = "https://ntfy.sh"
	DefaultPriority = 3
	DefaultTag      = "rotating_light"

	topicLength   = 16
	topicAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	stateDir      = "walletsentry"
	stateFile     = "ntfy.json"
)

var ErrUnexpectedStatus = errors.New("unexpected ntfy status")

// payload is the body of a JSON publish request.
type payload struct {
	Topic    string   `json:"topic"`
	Title    string   `json:"title,omitempty"`
	Message  string   `json:"message"`
	Priority int      `json:"priority,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Click    string   `json:"click,omitempty"`
	Markdown bool     `json:"markdown,omitempty"`
}

// state is what gets persisted when the topic is generated.
type state struct {
	Topic string `json:"topic"`
}

type publisher struct {
	client      *retryablehttp.Client
	url         string
	topic       string
	priority    int
	tags        []string
	credentials *action.Credentials
	renderer    *message.Renderer
}

var _ action.Action = (*publisher)(nil)

type config struct {
	client   *retryablehttp.Client
	cacheDir string
}

type Option func(*config)

// WithHTTPClient replaces the retrying HTTP client built from the action config.
func WithHTTPClient(c *retryablehttp.Client) Option {
	return func(cfg *config) {
		cfg.client = c
	}
}

// WithCacheDir sets where a generated topic is persisted.
// Default: os.UserCacheDir().
func WithCacheDir(dir string) Option {
	return func(cfg *config) {
		cfg.cacheDir = dir
	}
}

// New builds the publisher. Without a configured topic a random one is
// generated once and reused across restarts.
func New(ctx context.Context, cfg action.NtfyConfig, renderer *message.Renderer, opts ...Option) (*publisher, error) {
	var c config
	for _, opt := range opts {
		opt(&c)
	}

	if c.client == nil {
		client, err := httpclient.NewClient(httpclient.WithProxy(cfg.Proxy), httpclient.WithTimeout(10*time.Second))
		if err != nil {
			return nil, err
		}
		c.client = client
	}

	p := &publisher{
		client:      c.client,
		url:         strings.TrimRight(cfg.URL, "/"),
		topic:       cfg.Topic,
		priority:    cfg.Priority,
		tags:        cfg.Tags,
		credentials: cfg.Credentials,
		renderer:    renderer,
	}
	if p.url == "" {
		p.url = DefaultURL
	}
	if p.priority == 0 {
		p.priority = DefaultPriority
	}
	if len(p.tags) == 0 {
		p.tags = []string{DefaultTag}
	}

	if p.topic == "" {
		topic, err := loadTopic(c.cacheDir)
		if err != nil {
			return nil, err
		}
		p.topic = topic
	}

	logger.Info(ctx, "using ntfy topic", "ntfy.topic", p.topic, "ntfy.subscribe_url", p.url+"/"+p.topic)

	return p, nil
}

func (p *publisher) Name() string {
	return string(action.KindNtfy)
}

func (p *publisher) Execute(ctx context.Context, mctx *message.Context) error {
	title, err := p.renderer.Subject(mctx)
	if err != nil {
		return err
	}

	body, err := p.renderer.Body(mctx)
	if err != nil {
		return err
	}

	msg := payload{
		Topic:    p.topic,
		Title:    title,
		Message:  body,
		Priority: p.priority,
		Tags:     p.tags,
		Markdown: p.renderer.Format().IsRich(),
	}

	if mctx != nil {
		if click, err := p.renderer.TxURL(mctx); err == nil {
			msg.Click = click
		}
	}

	return p.publish(ctx, msg)
}

func (p *publisher) publish(ctx context.Context, msg payload) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	if p.credentials != nil {
		req.SetBasicAuth(p.credentials.Username, p.credentials.Password)
	}

	res, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, res.StatusCode, strings.TrimSpace(string(body)))
	}

	return nil
}

// loadTopic reads the persisted topic under cacheDir, generating and
// persisting a new one when there is none.
func loadTopic(cacheDir string) (string, error) {
	if cacheDir == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("cannot locate cache dir for the ntfy topic: %w", err)
		}
		cacheDir = dir
	}
	path := filepath.Join(cacheDir, stateDir, stateFile)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var s state
		if err := json.Unmarshal(data, &s); err != nil {
			return "", fmt.Errorf("cannot read ntfy data from %s: %w", path, err)
		}
		if s.Topic != "" {
			return s.Topic, nil
		}
	case !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("cannot read ntfy data from %s: %w", path, err)
	}

	topic, err := randomTopic()
	if err != nil {
		return "", err
	}

	data, err = json.Marshal(state{Topic: topic})
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("could not write ntfy data to %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("could not write ntfy data to %s: %w", path, err)
	}

	return topic, nil
}

func randomTopic() (string, error) {
	alphabetLen := big.NewInt(int64(len(topicAlphabet)))

	b := make([]byte, topicLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", err
		}
		b[i] = topicAlphabet[n.Int64()]
	}
	return string(b), nil
}
