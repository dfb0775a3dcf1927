package utils

import "math/rand/v2"

//go:generate $MOCKGEN -source=fingerprint_provider.go -destination=mocks/fingerprint_provider_mock.go

// Fingerprint describes the browser identity presented to the target site.
type Fingerprint struct {
	// UserAgent is the User-Agent string reported by the page.
	UserAgent string
	// AcceptLanguage is the Accept-Language header and navigator locale.
	AcceptLanguage string
	// ViewportWidth is the emulated viewport width in pixels.
	ViewportWidth int
	// ViewportHeight is the emulated viewport height in pixels.
	ViewportHeight int
}

// FingerprintProvider is an interface that defines a method for retrieving a browser fingerprint.
type FingerprintProvider interface {
	// GetFingerprint returns a fingerprint for a single session.
	GetFingerprint() Fingerprint
}

// defaultFingerprints is a small pool of realistic desktop fingerprints.
// Each session picks one at random so concurrent sessions do not all look identical.
//
//nolint:gochecknoglobals,lll // This is an immutable pool used as a constant.
var defaultFingerprints = []Fingerprint{
	{
		UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
		AcceptLanguage: "ko-KR,ko;q=0.9,en-US;q=0.8",
		ViewportWidth:  1280,
		ViewportHeight: 720,
	},
	{
		UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/130.0.0.0 Safari/537.36",
		AcceptLanguage: "ko-KR,ko;q=0.9,en;q=0.7",
		ViewportWidth:  1366,
		ViewportHeight: 768,
	},
	{
		UserAgent:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
		AcceptLanguage: "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7",
		ViewportWidth:  1440,
		ViewportHeight: 900,
	},
}

// PooledFingerprintProvider returns a random fingerprint from a fixed pool.
type PooledFingerprintProvider struct {
	// pool is the set of fingerprints to choose from.
	pool []Fingerprint
}

// NewPooledFingerprintProvider creates a provider backed by the given pool.
// An empty pool falls back to the built-in defaults.
func NewPooledFingerprintProvider(pool []Fingerprint) FingerprintProvider {
	if len(pool) == 0 {
		pool = defaultFingerprints
	}

	return &PooledFingerprintProvider{pool: pool}
}

// GetFingerprint returns a fingerprint for a single session.
func (p *PooledFingerprintProvider) GetFingerprint() Fingerprint {
	//nolint:gosec // Weak random is fine for fingerprint selection.
	return p.pool[rand.IntN(len(p.pool))]
}
