package login

import (
	"context"
	"fmt"
	"slices"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/oshokin/authgate/internal/logger"
)

// RemoteBrowserConnector establishes a connection to a remote browser service,
// trying an ordered list of endpoint variants derived from the configured target.
type RemoteBrowserConnector struct {
	// dial opens the control channel to a single candidate endpoint.
	dial DialFunc
	// lastGood remembers the endpoint variant that last worked per target,
	// so subsequent attempts try it first. This is retry policy state only;
	// no browser resources are pooled or reused across attempts.
	lastGood *lru.Cache[string, string]
}

// NewRemoteBrowserConnector creates a connector dialing real CDP endpoints.
func NewRemoteBrowserConnector() *RemoteBrowserConnector {
	return newConnectorWithDialer(dialRemote)
}

func newConnectorWithDialer(dial DialFunc) *RemoteBrowserConnector {
	// The constructor only fails on a non-positive size.
	cache, _ := lru.New[string, string](connectorCacheSize)

	return &RemoteBrowserConnector{
		dial:     dial,
		lastGood: cache,
	}
}

// Connect tries each candidate endpoint in order and returns the first usable browser.
// A handle whose liveness probe fails is still accepted as a degraded success.
// If every candidate fails, the last underlying error is wrapped in ErrConnectionFailed.
func (c *RemoteBrowserConnector) Connect(ctx context.Context, target string) (Browser, error) {
	candidates := connectionCandidates(target)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: empty connection target", ErrConnectionFailed)
	}

	if preferred, ok := c.lastGood.Get(target); ok {
		candidates = prioritizeCandidate(candidates, preferred)
	}

	var lastErr error

	for _, candidate := range candidates {
		logger.Debugf(ctx, "Trying browser endpoint: %s", candidate)

		browser, err := c.dial(ctx, candidate)
		if err != nil {
			logger.Debugf(ctx, "Browser endpoint %s failed: %v", candidate, err)

			lastErr = err

			continue
		}

		if probeErr := browser.Probe(ctx); probeErr != nil {
			// The handle was obtained, so keep it: the probe page can fail
			// (capacity limits, slow targets) while the real task still works.
			logger.Warnf(ctx, "Browser liveness probe failed for %s, using handle anyway: %v",
				candidate, probeErr)
		}

		c.lastGood.Add(target, candidate)
		logger.Debugf(ctx, "Connected to browser endpoint: %s", candidate)

		return browser, nil
	}

	return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, lastErr)
}

// connectionCandidates derives the ordered endpoint variants for a target:
// the raw endpoint first, then protocol and DevTools path variants.
func connectionCandidates(target string) []string {
	target = strings.TrimRight(strings.TrimSpace(target), "/")
	if target == "" {
		return nil
	}

	candidates := []string{target}

	switch {
	case strings.HasPrefix(target, "ws://"), strings.HasPrefix(target, "wss://"):
		// Already a control channel URL.
	case strings.HasPrefix(target, "http://"):
		candidates = append(candidates, "ws://"+strings.TrimPrefix(target, "http://"))
	case strings.HasPrefix(target, "https://"):
		candidates = append(candidates, "wss://"+strings.TrimPrefix(target, "https://"))
	default:
		// Bare host:port.
		candidates = append(candidates, "ws://"+target)
	}

	// Some deployments expose the control channel only under the DevTools path.
	for _, candidate := range slices.Clone(candidates) {
		if strings.HasPrefix(candidate, "ws") && !strings.Contains(candidate, "/devtools/") {
			candidates = append(candidates, candidate+"/devtools/browser")
		}
	}

	return slices.Compact(candidates)
}

// prioritizeCandidate moves preferred to the front if it is among the candidates.
func prioritizeCandidate(candidates []string, preferred string) []string {
	index := slices.Index(candidates, preferred)
	if index <= 0 {
		return candidates
	}

	reordered := make([]string, 0, len(candidates))
	reordered = append(reordered, preferred)
	reordered = append(reordered, candidates[:index]...)
	reordered = append(reordered, candidates[index+1:]...)

	return reordered
}
