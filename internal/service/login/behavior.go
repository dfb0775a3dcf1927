package login

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/oshokin/authgate/internal/logger"
	"github.com/oshokin/authgate/internal/utils"
)

// simulateHumanBehavior performs random mouse movements and scrolling to appear more human-like.
// It is best effort: any failure is logged and swallowed.
func simulateHumanBehavior(ctx context.Context, page Page) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debugf(ctx, "simulateHumanBehavior panic recovered: %v", r)
		}
	}()

	maxX, maxY, err := page.ViewportSize()
	if err != nil || maxX <= 0 || maxY <= 0 {
		return
	}

	for range mouseMovementsPerDwell {
		//nolint:gosec // Weak random is fine for simulating human behavior.
		x := rand.IntN(maxX)
		//nolint:gosec // Weak random is fine for simulating human behavior.
		y := rand.IntN(maxY)

		if moveErr := page.MoveMouse(float64(x), float64(y)); moveErr != nil {
			return
		}

		utils.RandomPause(mouseMovementMinDelay, mouseMovementMaxDelay)
	}

	// Occasionally scroll a bit.
	//nolint:gosec // Weak random is fine for simulating human behavior.
	if rand.IntN(scrollProbability) == 0 {
		//nolint:gosec // Weak random is fine for simulating human behavior.
		scrollAmount := rand.IntN(scrollMaxAmount-scrollMinAmount) + scrollMinAmount

		_ = page.Scroll(float64(scrollAmount))
	}
}

// dwell pauses for a human-like duration, optionally honoring context cancellation.
func dwell(ctx context.Context, minDelay, maxDelay time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(utils.RandomDuration(minDelay, maxDelay)):
		return nil
	}
}
