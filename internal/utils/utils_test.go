package utils

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSafeUint64ToInt64(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(0), SafeUint64ToInt64(0))
	assert.Equal(t, int64(42), SafeUint64ToInt64(42))
	assert.Equal(t, int64(math.MaxInt64), SafeUint64ToInt64(math.MaxUint64))
}

func TestRandomDuration(t *testing.T) {
	t.Parallel()

	minDur := 200 * time.Millisecond
	maxDur := 500 * time.Millisecond

	for range 100 {
		duration := RandomDuration(minDur, maxDur)
		assert.GreaterOrEqual(t, duration, minDur)
		assert.Less(t, duration, maxDur)
	}

	assert.Equal(t, minDur, RandomDuration(minDur, minDur))

	// Inverted bounds are swapped, not an error.
	inverted := RandomDuration(maxDur, minDur)
	assert.GreaterOrEqual(t, inverted, minDur)
	assert.Less(t, inverted, maxDur)
}

func TestIsTextContentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		contentType string
		want        bool
	}{
		{"text/plain", true},
		{"text/html; charset=utf-8", true},
		{"application/json", true},
		{"application/json; charset=US-ASCII", true},
		{"application/json; charset=euc-kr", false},
		{"application/octet-stream", false},
		{"image/png", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, IsTextContentType(tt.contentType))
		})
	}
}

func TestContainsFold(t *testing.T) {
	t.Parallel()

	assert.True(t, ContainsFold("https://login.example/CAPTCHA/check", "captcha"))
	assert.True(t, ContainsFold("deviceConfirm", "DEVICECONFIRM"))
	assert.False(t, ContainsFold("https://login.example/form", "captcha"))
}

func TestPooledFingerprintProvider(t *testing.T) {
	t.Parallel()

	custom := []Fingerprint{{UserAgent: "agent-1", ViewportWidth: 800, ViewportHeight: 600}}
	provider := NewPooledFingerprintProvider(custom)

	for range 10 {
		assert.Equal(t, custom[0], provider.GetFingerprint())
	}
}

// TestPooledFingerprintProviderDefaults tests that an empty pool
// falls back to the built-in fingerprints.
func TestPooledFingerprintProviderDefaults(t *testing.T) {
	t.Parallel()

	provider := NewPooledFingerprintProvider(nil)

	fingerprint := provider.GetFingerprint()
	assert.NotEmpty(t, fingerprint.UserAgent)
	assert.NotEmpty(t, fingerprint.AcceptLanguage)
	assert.Positive(t, fingerprint.ViewportWidth)
	assert.Positive(t, fingerprint.ViewportHeight)
}
