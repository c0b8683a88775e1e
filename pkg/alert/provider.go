package alert

import (
	"context"
	"sync"
	"time"

	"github.com/rise-and-shine/filedrop/pkg/meta"
)

// errorInfo carries one error occurrence through rendering and delivery.
type errorInfo struct {
	code      string
	message   string
	service   string
	operation string
	details   map[string]string

	frequency        int
	frequencyMinutes int
}

// alertWindow tracks the notification state for one service+operation+code key.
type alertWindow struct {
	lastSentAt time.Time
	seen       int // occurrences accumulated since the last sent alert
}

// alertProvider implements the Provider interface with in-memory cooldown
// management and notification delivery to Discord or Telegram.
type alertProvider struct {
	cfg      Config
	notifier notifier

	mu      sync.Mutex
	windows map[string]*alertWindow
}

func (ap *alertProvider) SendError(
	ctx context.Context,
	errCode, msg, operation string,
	details map[string]string,
) error {
	serviceName, serviceVersion := meta.ServiceInfo()

	if details == nil {
		details = make(map[string]string)
	}
	details["service_version"] = serviceVersion

	info := errorInfo{
		code:      errCode,
		message:   msg,
		service:   serviceName,
		operation: operation,
		details:   details,
	}

	frequency, due := ap.admit(windowKey(info.service, info.operation, info.code), time.Now())
	if !due {
		return nil
	}

	info.frequency = frequency
	info.frequencyMinutes = ap.cfg.CooldownMinutes

	if ap.cfg.SendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ap.cfg.SendTimeout)
		defer cancel()
	}

	return ap.notifier.notify(ctx, info)
}

// admit decides whether an alert for the given window key is due.
// It returns the number of occurrences accumulated since the previous
// sent alert, including the current one.
func (ap *alertProvider) admit(key string, now time.Time) (int, bool) {
	ap.mu.Lock()
	defer ap.mu.Unlock()

	w, ok := ap.windows[key]
	if !ok {
		ap.windows[key] = &alertWindow{lastSentAt: now}
		return 1, true
	}

	w.seen++

	cooldown := time.Duration(ap.cfg.CooldownMinutes) * time.Minute
	if now.Sub(w.lastSentAt) < cooldown {
		return 0, false
	}

	frequency := w.seen
	w.seen = 0
	w.lastSentAt = now

	return frequency, true
}

func windowKey(service, operation, code string) string {
	return service + ":" + operation + ":" + code
}
