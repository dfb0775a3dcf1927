package login

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/oshokin/authgate/internal/config"
	"github.com/oshokin/authgate/internal/logger"
	"github.com/oshokin/authgate/internal/utils"
)

// OutcomeClassifier inspects post-submit page location, session cookies, and
// timing to classify a login attempt. The target site's redirect behavior and
// cookie set are not contractually stable, so classification is layered and
// conservative: success is never asserted without direct evidence (the
// canonical redirect or an authentication-marker cookie).
type OutcomeClassifier struct {
	// markers is the versioned, site-coupled classification data.
	markers config.MarkerSet
	// loginLocation is the login page's host and path, used to detect a bounce-back.
	loginLocation string
	// timeout bounds the wait for the post-submit redirect.
	timeout time.Duration
	// pollInterval is the interval between location checks.
	pollInterval time.Duration
}

// NewOutcomeClassifier creates a classifier for the given marker set and login URL.
func NewOutcomeClassifier(markers config.MarkerSet, loginURL string, timeout time.Duration) *OutcomeClassifier {
	return &OutcomeClassifier{
		markers:       markers,
		loginLocation: urlLocation(loginURL),
		timeout:       timeout,
		pollInterval:  classifyPollInterval,
	}
}

// Classify waits up to the configured timeout for the canonical authenticated
// landing location, then walks the decision ladder over the observed state.
// Errors during classification produce an Indeterminate outcome with an empty
// cookie set; they are never propagated.
func (c *OutcomeClassifier) Classify(ctx context.Context, page Page) Outcome {
	logger.Debugf(ctx, "Classifying attempt against marker set %q", c.markers.Version)

	currentURL, reached := c.waitForSuccessLocation(ctx, page)
	if reached {
		cookies, err := c.collectCookies(page)
		if err != nil {
			return Indeterminate("authenticated location reached but cookies unreadable: "+err.Error(),
				currentURL, nil)
		}

		return Authenticated(cookies)
	}

	// The redirect did not happen in time; judge by where the page ended up.
	currentURL, err := page.CurrentURL()
	if err != nil {
		return Indeterminate("page location unreadable: "+err.Error(), "", nil)
	}

	switch {
	case c.matchesChallengeMarker(currentURL):
		return ChallengeRequired("captcha or additional verification required")
	case c.isLoginLocation(currentURL):
		return Rejected("invalid credentials")
	case c.isUnderAuthDomain(currentURL):
		return ChallengeRequired("manual verification needed")
	default:
		// Landed somewhere unrelated. Cookies decide.
		cookies, cookiesErr := c.collectCookies(page)
		if cookiesErr != nil {
			return Indeterminate("cookies unreadable after navigation: "+cookiesErr.Error(),
				currentURL, nil)
		}

		if c.hasAuthMarkerCookie(cookies) {
			return Authenticated(cookies)
		}

		return Indeterminate("navigated to an unrecognized location without authentication evidence",
			currentURL, cookies)
	}
}

// waitForSuccessLocation polls the page location until it matches the canonical
// success URL or the timeout elapses. It returns the last observed URL.
func (c *OutcomeClassifier) waitForSuccessLocation(ctx context.Context, page Page) (string, bool) {
	var (
		deadline = time.Now().Add(c.timeout)
		lastURL  string
	)

	for {
		currentURL, err := page.CurrentURL()
		if err == nil {
			lastURL = currentURL
			if c.isSuccessLocation(currentURL) {
				return lastURL, true
			}
		}

		if time.Now().After(deadline) {
			return lastURL, false
		}

		select {
		case <-ctx.Done():
			return lastURL, false
		case <-time.After(c.pollInterval):
		}
	}
}

func (c *OutcomeClassifier) collectCookies(page Page) (map[string]string, error) {
	cookies, err := page.Cookies()
	if err != nil {
		return nil, err
	}

	return cookiesToMap(cookies), nil
}

func (c *OutcomeClassifier) isSuccessLocation(currentURL string) bool {
	location := urlLocation(currentURL)
	successLocation := urlLocation(c.markers.SuccessURL)

	if successLocation == "" || !strings.HasPrefix(location, successLocation) {
		return false
	}

	// The prefix must end on a path boundary, otherwise a colliding host
	// (portal.example vs portal.example.evil.tld) would count as success.
	return len(location) == len(successLocation) || location[len(successLocation)] == '/'
}

func (c *OutcomeClassifier) isLoginLocation(currentURL string) bool {
	return c.loginLocation != "" && strings.Contains(urlLocation(currentURL), c.loginLocation)
}

func (c *OutcomeClassifier) matchesChallengeMarker(currentURL string) bool {
	for _, marker := range c.markers.ChallengeMarkers {
		if marker != "" && utils.ContainsFold(currentURL, marker) {
			return true
		}
	}

	return false
}

func (c *OutcomeClassifier) isUnderAuthDomain(currentURL string) bool {
	parsed, err := url.Parse(currentURL)
	if err != nil {
		return false
	}

	host := strings.ToLower(parsed.Hostname())
	for _, domain := range c.markers.AuthDomains {
		domain = strings.ToLower(strings.TrimSpace(domain))
		if domain == "" {
			continue
		}

		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}

	return false
}

func (c *OutcomeClassifier) hasAuthMarkerCookie(cookies map[string]string) bool {
	for _, name := range c.markers.AuthCookieNames {
		if value, ok := cookies[name]; ok && value != "" {
			return true
		}
	}

	return false
}

// urlLocation strips the scheme and trailing slash so locations compare by
// host and path rather than by exact string.
func urlLocation(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Host == "" {
		return strings.TrimRight(strings.TrimSpace(rawURL), "/")
	}

	return strings.TrimRight(parsed.Host+parsed.Path, "/")
}
