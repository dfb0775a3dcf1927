package login

import (
	"context"
	"fmt"
	"time"
)

// HumanLikeInputDriver types and clicks with randomized timing and incidental
// pointer movement. It is a mechanical actuator only: it performs no validation
// of input content and never logs it.
type HumanLikeInputDriver struct {
	// delayMin is the lower bound of the inter-keystroke delay.
	delayMin time.Duration
	// delayMax is the upper bound of the inter-keystroke delay.
	delayMax time.Duration
	// dwellMin is the lower bound of the pause before a field interaction.
	dwellMin time.Duration
	// dwellMax is the upper bound of the pause before a field interaction.
	dwellMax time.Duration
}

// NewHumanLikeInputDriver creates a driver with the given inter-keystroke delay bounds.
func NewHumanLikeInputDriver(delayMin, delayMax time.Duration) *HumanLikeInputDriver {
	return &HumanLikeInputDriver{
		delayMin: delayMin,
		delayMax: delayMax,
		dwellMin: dwellMinDelay,
		dwellMax: dwellMaxDelay,
	}
}

// Type fills the target field with text, one discrete keystroke at a time.
//
// The existing value is cleared through an explicit select-all plus delete
// rather than a bulk value assignment: the downstream form's listeners react
// to key events, not to property writes. Each character gets an independently
// randomized delay so the typing cadence has no constant interval.
func (d *HumanLikeInputDriver) Type(ctx context.Context, page Page, target Element, text string) error {
	simulateHumanBehavior(ctx, page)

	if err := dwell(ctx, d.dwellMin, d.dwellMax); err != nil {
		return err
	}

	if err := target.Click(); err != nil {
		return fmt.Errorf("failed to focus field: %w", err)
	}

	if err := target.SelectAllText(); err != nil {
		return fmt.Errorf("failed to select existing value: %w", err)
	}

	if err := page.PressBackspace(); err != nil {
		return fmt.Errorf("failed to clear existing value: %w", err)
	}

	for _, char := range text {
		if err := target.Input(string(char)); err != nil {
			return fmt.Errorf("failed to dispatch keystroke: %w", err)
		}

		if err := dwell(ctx, d.delayMin, d.delayMax); err != nil {
			return err
		}
	}

	return nil
}

// Click clicks the target after a human-like pause and incidental pointer movement.
func (d *HumanLikeInputDriver) Click(ctx context.Context, page Page, target Element) error {
	simulateHumanBehavior(ctx, page)

	if err := dwell(ctx, d.dwellMin, d.dwellMax); err != nil {
		return err
	}

	return target.Click()
}

// SubmitWithKey focuses the field and submits the form with a terminal Enter keystroke.
// It is the fallback used when no submit control can be resolved.
func (d *HumanLikeInputDriver) SubmitWithKey(ctx context.Context, page Page, field Element) error {
	if err := dwell(ctx, d.dwellMin, d.dwellMax); err != nil {
		return err
	}

	if err := field.Click(); err != nil {
		return fmt.Errorf("failed to focus field for key submit: %w", err)
	}

	return page.PressEnter()
}
