// Package alert delivers error notifications to Discord or Telegram.
// Alerts for the same service+operation+code combination are rate limited
// by a cooldown window to avoid flooding the channel.
package alert

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/code19m/errx"
)

const (
	providerDiscord  = "discord"
	providerTelegram = "telegram"
	providerNoop     = "noop"
)

// Config selects the notification backend and its delivery settings.
type Config struct {
	// Provider selects the notification backend: "discord", "telegram"
	// or "noop". Default is "noop".
	Provider string `yaml:"provider" validate:"oneof=discord telegram noop" default:"noop"`

	// CooldownMinutes is the minimum interval in minutes between alerts
	// for the same service+operation+code combination.
	CooldownMinutes int `yaml:"cooldown_minutes" default:"5"`

	// SendTimeout bounds the delivery of a single notification.
	SendTimeout time.Duration `yaml:"send_timeout" default:"3s"`

	// TelegramBotToken authenticates the Telegram bot. Required when
	// Provider is "telegram".
	TelegramBotToken string `yaml:"telegram_bot_token" mask:"true"`

	// TelegramChatIDs lists the Telegram chats that receive alerts.
	TelegramChatIDs []int64 `yaml:"telegram_chat_ids"`

	// DiscordBotToken authenticates the Discord bot. Required when
	// Provider is "discord".
	DiscordBotToken string `yaml:"discord_bot_token" mask:"true"`

	// DiscordChannelIDs lists the Discord channels that receive alerts.
	DiscordChannelIDs []string `yaml:"discord_channel_ids"`
}

// Provider sends error alerts.
type Provider interface {
	// SendError delivers one error occurrence. errCode identifies the
	// error, msg is the human-readable message, operation names the
	// operation that failed and details carries extra context pairs.
	// Delivery may be suppressed by the cooldown window.
	SendError(ctx context.Context, errCode, msg, operation string, details map[string]string) error
}

// NewProvider builds a Provider from cfg. A "noop" provider discards
// every alert.
func NewProvider(cfg Config) (Provider, error) {
	if cfg.Provider == providerNoop {
		return &noopProvider{}, nil
	}

	n, err := newNotifier(cfg)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return &alertProvider{
		cfg:      cfg,
		notifier: n,
		windows:  make(map[string]*alertWindow),
	}, nil
}

// noopProvider discards all alerts.
type noopProvider struct{}

func (*noopProvider) SendError(_ context.Context, _, _, _ string, _ map[string]string) error {
	return nil
}

// providerBox keeps the concrete type stored in globalStore uniform,
// which atomic.Value requires across Store calls.
type providerBox struct {
	p Provider
}

//nolint:gochecknoglobals // package-level singleton backing the global SendError
var (
	globalStore  atomic.Value // holds a providerBox
	bindOnce     sync.Once    // guards SetGlobal
	fallbackOnce sync.Once    // guards the lazily installed noop provider
)

// SetGlobal installs the global alert provider used by SendError.
// Call it once during application startup. It fails when the provider
// cannot be built or when called a second time.
func SetGlobal(cfg Config) error {
	var err error
	bound := false

	bindOnce.Do(func() {
		// Burn the fallback so a later getGlobal cannot replace this provider.
		fallbackOnce.Do(func() {})

		p, buildErr := NewProvider(cfg)
		if buildErr != nil {
			err = fmt.Errorf("[alert]: failed to initialize global alert provider: %w", buildErr)
			globalStore.Store(providerBox{&noopProvider{}})
			return
		}
		globalStore.Store(providerBox{p})
		bound = true
	})

	if !bound && err == nil {
		return errors.New("[alert]: SetGlobal can only be called once")
	}
	return err
}

// SendError delivers an alert through the global provider. Before SetGlobal
// is called, alerts are silently discarded.
func SendError(ctx context.Context, errCode, msg, operation string, details map[string]string) error {
	return getGlobal().SendError(ctx, errCode, msg, operation, details)
}

func getGlobal() Provider {
	if v := globalStore.Load(); v != nil {
		return mustProvider(v)
	}

	fallbackOnce.Do(func() {
		globalStore.Store(providerBox{&noopProvider{}})
	})

	return mustProvider(globalStore.Load())
}

func mustProvider(v any) Provider {
	box, ok := v.(providerBox)
	if !ok || box.p == nil {
		panic("[alert]: global store holds an invalid type")
	}
	return box.p
}
