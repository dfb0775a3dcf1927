package login

import "time"

const (
	// connectorCacheSize bounds the per-target memory of last good endpoint variants.
	connectorCacheSize = 16

	// resolvePollInterval is the interval between resolution passes while a form hydrates.
	resolvePollInterval = 250 * time.Millisecond

	// classifyPollInterval is the interval for polling the post-submit location.
	classifyPollInterval = 500 * time.Millisecond

	// dwellMinDelay is the minimum pause before a field interaction.
	dwellMinDelay = 300 * time.Millisecond
	// dwellMaxDelay is the maximum pause before a field interaction.
	dwellMaxDelay = 1200 * time.Millisecond

	// mouseMovementsPerDwell is the number of random mouse movements before an interaction.
	mouseMovementsPerDwell = 2

	// mouseMovementMinDelay is the minimum delay between mouse movements.
	mouseMovementMinDelay = 100 * time.Millisecond
	// mouseMovementMaxDelay is the maximum delay between mouse movements.
	mouseMovementMaxDelay = 400 * time.Millisecond

	// scrollProbability is the probability of an incidental scroll (1 in N).
	scrollProbability = 3
	// scrollMinAmount is the minimum scroll amount in pixels.
	scrollMinAmount = -100
	// scrollMaxAmount is the maximum scroll amount in pixels.
	scrollMaxAmount = 200
)
