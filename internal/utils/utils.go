package utils

import (
	"math"
	"math/rand/v2"
	"mime"
	"regexp"
	"strings"
	"time"
)

// textContentTypePatterns is a slice of regular expressions that match content types
// considered to be text-based. This includes "text/*" and "application/json".
//
//nolint:gochecknoglobals // These are immutable, pre-compiled regex patterns and used as constants.
var textContentTypePatterns = []*regexp.Regexp{
	regexp.MustCompile("^text/.+"),
	regexp.MustCompile("^application/json$"),
}

// SafeUint64ToInt64 converts a uint64 value to an int64 safely,
// ensuring that the value does not exceed the maximum limit of int64.
func SafeUint64ToInt64(val uint64) int64 {
	if val > math.MaxInt64 {
		return math.MaxInt64
	}

	return int64(val)
}

// RandomDuration returns a random duration drawn uniformly from [minDur, maxDur).
// Inverted bounds are swapped; equal bounds return minDur.
func RandomDuration(minDur, maxDur time.Duration) time.Duration {
	if minDur > maxDur {
		minDur, maxDur = maxDur, minDur
	}

	if minDur == maxDur {
		return minDur
	}

	//nolint:gosec // Weak random is fine for timing jitter.
	return minDur + time.Duration(rand.Int64N(int64(maxDur-minDur)))
}

// RandomPause sleeps for a random duration between minPause and maxPause.
func RandomPause(minPause, maxPause time.Duration) {
	time.Sleep(RandomDuration(minPause, maxPause))
}

// IsTextContentType determines whether the given content type is text-based.
// It supports common text content types like "text/*" and "application/json".
// It also checks that the charset, if present, is either "utf-8" or "us-ascii".
func IsTextContentType(contentType string) bool {
	parsedType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	for _, pattern := range textContentTypePatterns {
		if !pattern.MatchString(parsedType) {
			continue
		}

		charset := strings.ToLower(params["charset"])

		return charset == "" || charset == "utf-8" || charset == "us-ascii"
	}

	return false
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
