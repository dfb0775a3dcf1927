package login

import (
	"context"
	"fmt"

	"github.com/oshokin/authgate/internal/logger"
)

// Role is the semantic form role a locator list resolves.
type Role string

const (
	// RoleIdentity is the identity (login name) input field.
	RoleIdentity Role = "identity field"
	// RoleSecret is the secret (password) input field.
	RoleSecret Role = "secret field"
	// RoleSubmit is the form submit control.
	RoleSubmit Role = "submit control"
)

// SelectorResolver finds the first visible, interactable element
// for a semantic role from a ranked list of candidate locators.
type SelectorResolver struct{}

// NewSelectorResolver creates a resolver.
func NewSelectorResolver() *SelectorResolver {
	return &SelectorResolver{}
}

// Resolve iterates candidates in priority order and returns the first element
// that exists and is currently visible. Errors while probing an individual
// candidate count as a non-match for that candidate only; they never abort the
// whole resolution. Exhausting the list returns ErrElementNotFound.
//
// Disabled state is deliberately not a disqualifier: async form hydration
// frequently leaves a perfectly clickable control programmatically disabled,
// so a visually present submit control is still attempted.
func (r *SelectorResolver) Resolve(ctx context.Context, page Page, role Role, candidates []string) (Element, error) {
	for _, selector := range candidates {
		element, found, err := page.Probe(selector)
		if err != nil {
			logger.Debugf(ctx, "Locator %q for %s errored, treating as non-match: %v", selector, role, err)

			continue
		}

		if !found {
			continue
		}

		visible, err := element.Visible()
		if err != nil {
			logger.Debugf(ctx, "Visibility check for %q (%s) errored, treating as non-match: %v",
				selector, role, err)

			continue
		}

		if !visible {
			continue
		}

		logger.Debugf(ctx, "Resolved %s via locator %q", role, selector)

		return element, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrElementNotFound, role)
}
