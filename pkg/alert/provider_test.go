package alert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAdmit_CooldownWindow(t *testing.T) {
	ap := &alertProvider{
		cfg:     Config{CooldownMinutes: 5},
		windows: make(map[string]*alertWindow),
	}

	key := windowKey("filedrop", "POST /upload", "FILE_SAVE_FAILED")
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	// first occurrence alerts immediately
	freq, due := ap.admit(key, base)
	assert.True(t, due)
	assert.Equal(t, 1, freq)

	// occurrences inside the cooldown window are suppressed
	for i := 1; i <= 3; i++ {
		_, due = ap.admit(key, base.Add(time.Duration(i)*time.Minute))
		assert.False(t, due)
	}

	// once the window has passed, the alert is due and carries the
	// number of occurrences seen since the last sent alert
	freq, due = ap.admit(key, base.Add(6*time.Minute))
	assert.True(t, due)
	assert.Equal(t, 4, freq)

	// window restarts after a sent alert
	_, due = ap.admit(key, base.Add(7*time.Minute))
	assert.False(t, due)
}

func TestAdmit_ZeroCooldownAlwaysDue(t *testing.T) {
	ap := &alertProvider{
		cfg:     Config{CooldownMinutes: 0},
		windows: make(map[string]*alertWindow),
	}

	key := windowKey("filedrop", "GET /files", "FILE_LIST_FAILED")
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		_, due := ap.admit(key, base.Add(time.Duration(i)*time.Second))
		assert.True(t, due)
	}
}

func TestAdmit_IndependentKeys(t *testing.T) {
	ap := &alertProvider{
		cfg:     Config{CooldownMinutes: 5},
		windows: make(map[string]*alertWindow),
	}

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	_, due := ap.admit(windowKey("filedrop", "POST /upload", "FILE_SAVE_FAILED"), base)
	assert.True(t, due)

	// a different code on the same operation keeps its own window
	_, due = ap.admit(windowKey("filedrop", "POST /upload", "ROUTER_ERROR"), base.Add(time.Second))
	assert.True(t, due)
}
