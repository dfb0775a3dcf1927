package login

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/oshokin/authgate/internal/config"
)

func testMarkerSet() config.MarkerSet {
	return config.MarkerSet{
		Version:          "test-1",
		SuccessURL:       "https://www.portal.example/",
		AuthDomains:      []string{"login.portal.example"},
		ChallengeMarkers: []string{"captcha", "verify"},
		AuthCookieNames:  []string{"NID_AUT", "NID_SES"},
	}
}

func newTestClassifier(timeout time.Duration) *OutcomeClassifier {
	classifier := NewOutcomeClassifier(
		testMarkerSet(),
		"https://login.portal.example/member/login",
		timeout,
	)
	classifier.pollInterval = time.Millisecond

	return classifier
}

// TestClassifyDecisionLadder tests the layered, first-match-wins classification.
func TestClassifyDecisionLadder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		page            *fakePage
		timeout         time.Duration
		expectedStatus  Status
		expectedCookies map[string]string
	}{
		{
			name: "canonical redirect means authenticated",
			page: &fakePage{
				urls:    []string{"https://www.portal.example/"},
				cookies: []Cookie{{Name: "NID_SES", Value: "s"}, {Name: "lang", Value: "ko"}},
			},
			expectedStatus:  StatusAuthenticated,
			expectedCookies: map[string]string{"NID_SES": "s", "lang": "ko"},
		},
		{
			name: "late redirect within the timeout still counts",
			page: &fakePage{
				urls: []string{
					"https://login.portal.example/member/login",
					"https://login.portal.example/member/login",
					"https://www.portal.example/",
				},
				cookies: []Cookie{{Name: "NID_AUT", Value: "a"}},
			},
			timeout:         time.Second,
			expectedStatus:  StatusAuthenticated,
			expectedCookies: map[string]string{"NID_AUT": "a"},
		},
		{
			name: "subpage under the success location still counts",
			page: &fakePage{
				urls:    []string{"https://www.portal.example/home?from=login"},
				cookies: []Cookie{{Name: "NID_SES", Value: "s"}},
			},
			expectedStatus:  StatusAuthenticated,
			expectedCookies: map[string]string{"NID_SES": "s"},
		},
		{
			name: "host extending the success location is not success",
			page: &fakePage{
				urls: []string{"https://www.portal.example.evil.tld/"},
			},
			expectedStatus: StatusIndeterminate,
		},
		{
			name: "challenge marker in location wins over cookies",
			page: &fakePage{
				urls:    []string{"https://login.portal.example/member/login/Captcha?k=1"},
				cookies: []Cookie{{Name: "NID_AUT", Value: "a"}},
			},
			expectedStatus: StatusChallengeRequired,
		},
		{
			name: "still on the login page means rejected",
			page: &fakePage{
				urls: []string{"https://login.portal.example/member/login?err=1"},
			},
			expectedStatus: StatusRejected,
		},
		{
			name: "elsewhere under the auth domain means manual verification",
			page: &fakePage{
				urls: []string{"https://login.portal.example/member/device/confirm"},
			},
			expectedStatus: StatusChallengeRequired,
		},
		{
			name: "unrelated location with a marker cookie means authenticated",
			page: &fakePage{
				urls:    []string{"https://news.portal.example/home"},
				cookies: []Cookie{{Name: "NID_AUT", Value: "a"}, {Name: "theme", Value: "dark"}},
			},
			expectedStatus:  StatusAuthenticated,
			expectedCookies: map[string]string{"NID_AUT": "a", "theme": "dark"},
		},
		{
			name: "unrelated location without evidence is indeterminate",
			page: &fakePage{
				urls:    []string{"https://news.portal.example/home"},
				cookies: []Cookie{{Name: "theme", Value: "dark"}},
			},
			expectedStatus:  StatusIndeterminate,
			expectedCookies: map[string]string{"theme": "dark"},
		},
		{
			name: "empty-valued marker cookie is not evidence",
			page: &fakePage{
				urls:    []string{"https://news.portal.example/home"},
				cookies: []Cookie{{Name: "NID_AUT", Value: ""}},
			},
			expectedStatus: StatusIndeterminate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			timeout := tt.timeout
			if timeout == 0 {
				timeout = 5 * time.Millisecond
			}

			classifier := newTestClassifier(timeout)
			outcome := classifier.Classify(context.Background(), tt.page)

			assert.Equal(t, tt.expectedStatus, outcome.Status, "reason: %s", outcome.Reason)

			if tt.expectedCookies != nil {
				assert.Equal(t, tt.expectedCookies, outcome.Cookies)
			}
		})
	}
}

// TestClassifyErrorsBecomeIndeterminate tests that classification never propagates errors.
func TestClassifyErrorsBecomeIndeterminate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		page *fakePage
	}{
		{
			name: "page location unreadable",
			page: &fakePage{currentErr: errProbe},
		},
		{
			name: "cookies unreadable after navigation",
			page: &fakePage{
				urls:       []string{"https://news.portal.example/home"},
				cookiesErr: errProbe,
			},
		},
		{
			name: "cookies unreadable on the success location",
			page: &fakePage{
				urls:       []string{"https://www.portal.example/"},
				cookiesErr: errProbe,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			classifier := newTestClassifier(5 * time.Millisecond)
			outcome := classifier.Classify(context.Background(), tt.page)

			assert.Equal(t, StatusIndeterminate, outcome.Status)
			assert.Empty(t, outcome.Cookies)
		})
	}
}

// TestClassifyCookieRoundTrip tests that classification returns the full cookie
// set visible on the context, folding duplicates by last value.
func TestClassifyCookieRoundTrip(t *testing.T) {
	t.Parallel()

	page := &fakePage{
		urls: []string{"https://www.portal.example/"},
		cookies: []Cookie{
			{Name: "NID_SES", Value: "first"},
			{Name: "lang", Value: "ko"},
			{Name: "NID_SES", Value: "second"},
		},
	}

	classifier := newTestClassifier(5 * time.Millisecond)
	outcome := classifier.Classify(context.Background(), page)

	assert.Equal(t, StatusAuthenticated, outcome.Status)
	assert.Equal(t, map[string]string{"NID_SES": "second", "lang": "ko"}, outcome.Cookies)
}

// TestURLLocation tests the scheme and slash normalization.
func TestURLLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "full URL",
			input:    "https://www.portal.example/home/",
			expected: "www.portal.example/home",
		},
		{
			name:     "bare domain",
			input:    "https://www.portal.example",
			expected: "www.portal.example",
		},
		{
			name:     "query is ignored",
			input:    "https://login.portal.example/member/login?err=1",
			expected: "login.portal.example/member/login",
		},
		{
			name:     "not a URL",
			input:    "plain-text/",
			expected: "plain-text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, urlLocation(tt.input))
		})
	}
}
