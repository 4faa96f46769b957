// Package nostr sends notifications as encrypted direct messages (NIP-04)
// to a recipient over a set of Nostr relays.
package nostr

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gabapcia/walletsentry/internal/action"
	"github.com/gabapcia/walletsentry/internal/message"
	"github.com/gabapcia/walletsentry/internal/pkg/logger"

	gonostr "github.com/nbd-wtf/go-nostr"
	"github.com/nbd-wtf/go-nostr/nip04"
	"github.com/nbd-wtf/go-nostr/nip05"
	"github.com/nbd-wtf/go-nostr/nip19"
)

const (
	kindProfileMetadata        = 0
	kindEncryptedDirectMessage = 4

	stateDir  = "walletsentry"
	stateFile = "nostr.json"

	metadataTimeout = 10 * time.Second
)

var (
	ErrInvalidKey       = errors.New("invalid nostr key")
	ErrInvalidRecipient = errors.New("invalid nostr recipient")

	// ErrNotPublished is returned when no relay accepted an event.
	ErrNotPublished = errors.New("event not accepted by any relay")
)

// DefaultRelays are used when the action config lists none.
var DefaultRelays = []string{
	"wss://nostr.bitcoiner.social",
	"wss://nostr.oxtr.dev",
	"wss://relay.damus.io",
	"wss://nos.lol",
}

// DefaultBotMetadata is the profile published for a generated key.
var DefaultBotMetadata = action.NostrMetadata{
	Name:        "walletsentrybot",
	DisplayName: "walletsentry bot",
	About:       "Watches bitcoin wallets and notifies every new transaction.",
}

// state is what gets persisted when the key is generated.
type state struct {
	Key         string `json:"key"`
	MetadataSet bool   `json:"metadata_set"`
}

type messenger struct {
	pool      *gonostr.SimplePool
	relays    []string
	secretKey string
	publicKey string
	recipient string
	shared    []byte
	renderer  *message.Renderer
}

var _ action.Action = (*messenger)(nil)

type config struct {
	cacheDir string
}

type Option func(*config)

// WithCacheDir sets where a generated key is persisted.
// Default: os.UserCacheDir().
func WithCacheDir(dir string) Option {
	return func(c *config) {
		c.cacheDir = dir
	}
}

// New resolves the keys and the recipient and publishes the bot profile when
// it was never published for the key, or when ResendBotMetadata is set.
func New(ctx context.Context, cfg action.NostrConfig, renderer *message.Renderer, opts ...Option) (*messenger, error) {
	var c config
	for _, opt := range opts {
		opt(&c)
	}

	relays := cfg.Relays
	if len(relays) == 0 {
		relays = DefaultRelays
	}

	var (
		st        state
		statePath string
	)
	if cfg.SecretKey != "" {
		st.Key = cfg.SecretKey
	} else {
		var err error
		if statePath, err = stateFilePath(c.cacheDir); err != nil {
			return nil, err
		}
		if st, err = loadState(statePath); err != nil {
			return nil, err
		}
	}

	sk, err := parseSecretKey(st.Key)
	if err != nil {
		return nil, err
	}
	pk, err := gonostr.GetPublicKey(sk)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	recipient, err := resolveRecipient(ctx, cfg.Recipient)
	if err != nil {
		return nil, err
	}

	shared, err := nip04.ComputeSharedSecret(recipient, sk)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecipient, err)
	}

	m := &messenger{
		pool:      gonostr.NewSimplePool(context.WithoutCancel(ctx)),
		relays:    relays,
		secretKey: sk,
		publicKey: pk,
		recipient: recipient,
		shared:    shared,
		renderer:  renderer,
	}

	if !st.MetadataSet || cfg.ResendBotMetadata {
		metadata := DefaultBotMetadata
		if cfg.BotMetadata != nil {
			metadata = *cfg.BotMetadata
		}

		ctx, cancel := context.WithTimeout(ctx, metadataTimeout)
		defer cancel()

		if err := m.publishMetadata(ctx, metadata); err != nil {
			return nil, fmt.Errorf("could not publish nostr bot metadata: %w", err)
		}

		if statePath != "" {
			st.MetadataSet = true
			if err := saveState(statePath, st); err != nil {
				return nil, err
			}
		}
	}

	npub, _ := nip19.EncodePublicKey(pk)
	logger.Info(ctx, "using nostr key", "nostr.npub", npub, "nostr.relays", len(relays))

	return m, nil
}

func (m *messenger) Name() string {
	return string(action.KindNostr)
}

func (m *messenger) Execute(ctx context.Context, mctx *message.Context) error {
	subject, err := m.renderer.Subject(mctx)
	if err != nil {
		return err
	}

	body, err := m.renderer.Body(mctx)
	if err != nil {
		return err
	}

	content, err := nip04.Encrypt(subject+"\n"+body, m.shared)
	if err != nil {
		return err
	}

	return m.publish(ctx, gonostr.Event{
		Kind:    kindEncryptedDirectMessage,
		Tags:    gonostr.Tags{{"p", m.recipient}},
		Content: content,
	})
}

func (m *messenger) publishMetadata(ctx context.Context, metadata action.NostrMetadata) error {
	content, err := json.Marshal(metadata)
	if err != nil {
		return err
	}

	return m.publish(ctx, gonostr.Event{
		Kind:    kindProfileMetadata,
		Tags:    gonostr.Tags{},
		Content: string(content),
	})
}

// publish signs ev and sends it to every relay concurrently. It succeeds
// when at least one relay accepted the event.
func (m *messenger) publish(ctx context.Context, ev gonostr.Event) error {
	ev.PubKey = m.publicKey
	ev.CreatedAt = gonostr.Now()
	if err := ev.Sign(m.secretKey); err != nil {
		return err
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		errs     []error
		accepted bool
	)
	for _, url := range m.relays {
		wg.Add(1)
		go func() {
			defer wg.Done()

			err := m.publishTo(ctx, url, ev)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", url, err))
				return
			}
			accepted = true
		}()
	}
	wg.Wait()

	if accepted {
		for _, err := range errs {
			logger.Debug(ctx, "nostr relay rejected event", "error", err)
		}
		return nil
	}

	return fmt.Errorf("%w: %w", ErrNotPublished, errors.Join(errs...))
}

func (m *messenger) publishTo(ctx context.Context, url string, ev gonostr.Event) error {
	relay, err := m.pool.EnsureRelay(url)
	if err != nil {
		return err
	}
	return relay.Publish(ctx, ev)
}

func parseSecretKey(key string) (string, error) {
	if strings.HasPrefix(key, "nsec") {
		prefix, value, err := nip19.Decode(key)
		if err != nil || prefix != "nsec" {
			return "", fmt.Errorf("%w: cannot decode nsec", ErrInvalidKey)
		}
		key, _ = value.(string)
	}

	if !isHexKey(key) {
		return "", fmt.Errorf("%w: expected an nsec or 64 hex characters", ErrInvalidKey)
	}
	return strings.ToLower(key), nil
}

// resolveRecipient accepts an npub, a hex public key or a NIP-05 identifier.
func resolveRecipient(ctx context.Context, recipient string) (string, error) {
	switch {
	case strings.HasPrefix(recipient, "npub"):
		prefix, value, err := nip19.Decode(recipient)
		if err != nil || prefix != "npub" {
			return "", fmt.Errorf("%w: cannot decode %q", ErrInvalidRecipient, recipient)
		}
		pk, _ := value.(string)
		return pk, nil
	case isHexKey(recipient):
		return strings.ToLower(recipient), nil
	case strings.Contains(recipient, "@") || strings.Contains(recipient, "."):
		pp, err := nip05.QueryIdentifier(ctx, recipient)
		if err != nil {
			return "", fmt.Errorf("%w: %q: %v", ErrInvalidRecipient, recipient, err)
		}
		return pp.PublicKey, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRecipient, recipient)
	}
}

func isHexKey(s string) bool {
	if len(s) != 64 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

func stateFilePath(cacheDir string) (string, error) {
	if cacheDir == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("cannot locate cache dir for the nostr key: %w", err)
		}
		cacheDir = dir
	}
	return filepath.Join(cacheDir, stateDir, stateFile), nil
}

// loadState reads the persisted key, generating and persisting a new one
// when there is none.
func loadState(path string) (state, error) {
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var s state
		if err := json.Unmarshal(data, &s); err != nil {
			return state{}, fmt.Errorf("cannot read nostr data from %s: %w", path, err)
		}
		if s.Key != "" {
			return s, nil
		}
	case !errors.Is(err, os.ErrNotExist):
		return state{}, fmt.Errorf("cannot read nostr data from %s: %w", path, err)
	}

	nsec, err := nip19.EncodePrivateKey(gonostr.GeneratePrivateKey())
	if err != nil {
		return state{}, err
	}

	s := state{Key: nsec}
	if err := saveState(path, s); err != nil {
		return state{}, err
	}
	return s, nil
}

func saveState(path string, s state) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("could not write nostr data to %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("could not write nostr data to %s: %w", path, err)
	}
	return nil
}
