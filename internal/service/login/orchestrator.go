package login

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oshokin/authgate/internal/config"
	"github.com/oshokin/authgate/internal/logger"
	"github.com/oshokin/authgate/internal/utils"
)

// connector abstracts the browser connection step for fault injection in tests.
type connector interface {
	Connect(ctx context.Context, target string) (Browser, error)
}

// Orchestrator composes connector, resolver, input driver, and classifier into
// one end-to-end login attempt and owns the session's resource lifecycle.
type Orchestrator struct {
	cfg          *config.Config
	connector    connector
	resolver     *SelectorResolver
	input        *HumanLikeInputDriver
	classifier   *OutcomeClassifier
	fingerprints utils.FingerprintProvider
}

// NewOrchestrator creates an orchestrator from validated configuration.
// A missing browser endpoint is a configuration error and fails here,
// before any session resources can be opened.
func NewOrchestrator(cfg *config.Config) (*Orchestrator, error) {
	if strings.TrimSpace(cfg.BrowserControlURL) == "" {
		return nil, config.ErrMissingControlURL
	}

	return &Orchestrator{
		cfg:          cfg,
		connector:    NewRemoteBrowserConnector(),
		resolver:     NewSelectorResolver(),
		input:        NewHumanLikeInputDriver(cfg.ParsedTypingDelayMin, cfg.ParsedTypingDelayMax),
		classifier:   NewOutcomeClassifier(cfg.Markers, cfg.LoginURL, cfg.ParsedClassifyTimeout),
		fingerprints: utils.NewPooledFingerprintProvider(nil),
	}, nil
}

// Attempt performs one complete login attempt and returns exactly one outcome.
// It never returns an error for runtime failures - those become Rejected or
// Indeterminate outcomes with a diagnostic. The only error category that
// escapes is configuration (missing browser endpoint), surfaced before any
// browser resource is opened.
//
//nolint:funlen // The attempt sequence is a single linear flow with per-step failure routing.
func (o *Orchestrator) Attempt(ctx context.Context, credential Credential) (Outcome, error) {
	if strings.TrimSpace(o.cfg.BrowserControlURL) == "" {
		return Outcome{}, config.ErrMissingControlURL
	}

	attemptID := uuid.NewString()
	ctx = logger.WithAttemptID(ctx, attemptID)

	logger.InfoKV(ctx, "Starting login attempt", "attempt_id", attemptID)

	// Resources are acquired in connection, context, page order and released
	// in strict reverse order on every exit path. The handles are declared
	// up front so the deferred cleanup never depends on how far we got.
	var (
		browser     Browser
		browsingCtx BrowsingContext
		page        Page
	)

	defer func() {
		if page != nil {
			if err := page.Close(); err != nil {
				logger.Debugf(ctx, "Page close error (suppressed): %v", err)
			}
		}

		if browsingCtx != nil {
			if err := browsingCtx.Close(); err != nil {
				logger.Debugf(ctx, "Browsing context close error (suppressed): %v", err)
			}
		}

		if browser != nil {
			if err := browser.Close(); err != nil {
				logger.Debugf(ctx, "Browser close error (suppressed): %v", err)
			}
		}
	}()

	var err error

	browser, err = o.connector.Connect(ctx, o.cfg.BrowserControlURL)
	if err != nil {
		logger.Errorf(ctx, "Browser connection failed: %v", err)

		return Indeterminate("browser connection failed: "+err.Error(), "", nil), nil
	}

	browsingCtx, err = browser.NewContext(ctx)
	if err != nil {
		logger.Errorf(ctx, "Failed to open browsing context: %v", err)

		return Indeterminate("failed to open browsing context: "+err.Error(), "", nil), nil
	}

	fingerprint := o.fingerprints.GetFingerprint()
	logger.DebugKV(ctx, "Opening session page",
		"user_agent", fingerprint.UserAgent,
		"viewport_width", fingerprint.ViewportWidth,
		"viewport_height", fingerprint.ViewportHeight)

	page, err = browsingCtx.NewPage(ctx, fingerprint)
	if err != nil {
		logger.Errorf(ctx, "Failed to open page: %v", err)

		return Indeterminate("failed to open page: "+err.Error(), "", nil), nil
	}

	o.warmUp(ctx, page)

	logger.Infof(ctx, "Navigating to login page")

	if err = page.Navigate(o.cfg.LoginURL); err != nil {
		logger.Errorf(ctx, "Failed to open login page: %v", err)

		return Indeterminate("failed to open login page: "+err.Error(), "", nil), nil
	}

	if err = page.WaitStable(o.cfg.ParsedNavigationTimeout); err != nil {
		// The page may still be usable; the element resolution below decides.
		logger.Debugf(ctx, "Login page did not settle in time: %v", err)
	}

	identityField, err := o.resolveWithTimeout(ctx, page, RoleIdentity, o.cfg.IdentitySelectors)
	if err != nil {
		return Rejected("identity field not found on login page"), nil
	}

	secretField, err := o.resolveWithTimeout(ctx, page, RoleSecret, o.cfg.SecretSelectors)
	if err != nil {
		return Rejected("secret field not found on login page"), nil
	}

	if err = o.input.Type(ctx, page, identityField, credential.Identity); err != nil {
		logger.Errorf(ctx, "Failed to fill identity field: %v", err)

		return Rejected("failed to fill identity field: " + err.Error()), nil
	}

	if err = o.input.Type(ctx, page, secretField, credential.Secret); err != nil {
		// The error may wrap driver internals; it never carries the secret itself.
		logger.Errorf(ctx, "Failed to fill secret field: %v", err)

		return Rejected("failed to fill secret field"), nil
	}

	if err = o.submit(ctx, page, secretField); err != nil {
		return Rejected("submit control not found"), nil
	}

	outcome := o.classifier.Classify(ctx, page)

	logger.InfoKV(ctx, "Login attempt classified",
		"status", outcome.Status.String(),
		"reason", outcome.Reason,
		"cookie_count", len(outcome.Cookies))

	return outcome, nil
}

// warmUp optionally visits a neutral page first so the login navigation
// carries a plausible referrer and history. Failures are not fatal.
func (o *Orchestrator) warmUp(ctx context.Context, page Page) {
	if o.cfg.WarmupURL == "" {
		return
	}

	logger.Debugf(ctx, "Visiting warm-up page: %s", o.cfg.WarmupURL)

	if err := page.Navigate(o.cfg.WarmupURL); err != nil {
		logger.Debugf(ctx, "Warm-up navigation failed (ignored): %v", err)

		return
	}

	if err := page.WaitStable(o.cfg.ParsedNavigationTimeout); err != nil {
		logger.Debugf(ctx, "Warm-up page did not settle (ignored): %v", err)
	}

	simulateHumanBehavior(ctx, page)
}

// resolveWithTimeout retries resolution while the form hydrates,
// bounded by the configured element timeout.
func (o *Orchestrator) resolveWithTimeout(
	ctx context.Context,
	page Page,
	role Role,
	candidates []string,
) (Element, error) {
	deadline := time.Now().Add(o.cfg.ParsedElementTimeout)

	for {
		element, err := o.resolver.Resolve(ctx, page, role, candidates)
		if err == nil {
			return element, nil
		}

		if time.Now().After(deadline) {
			logger.Warnf(ctx, "Could not resolve %s within %s", role, o.cfg.ParsedElementTimeout)

			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(resolvePollInterval):
		}
	}
}

// submit clicks the resolved submit control, falling back to a terminal Enter
// on the secret field when no control can be resolved or clicked.
func (o *Orchestrator) submit(ctx context.Context, page Page, secretField Element) error {
	submitControl, err := o.resolveWithTimeout(ctx, page, RoleSubmit, o.cfg.SubmitSelectors)
	if err == nil {
		if clickErr := o.input.Click(ctx, page, submitControl); clickErr == nil {
			return nil
		}

		logger.Debugf(ctx, "Submit control click failed, falling back to key submit")
	}

	if keyErr := o.input.SubmitWithKey(ctx, page, secretField); keyErr != nil {
		logger.Errorf(ctx, "Key submit fallback failed: %v", keyErr)

		return keyErr
	}

	return nil
}
