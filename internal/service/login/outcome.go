package login

// Credential is a single identity/secret pair forwarded verbatim to the
// remote form. The secret must never appear in logs or error messages.
type Credential struct {
	// Identity is the account identifier (login name).
	Identity string
	// Secret is the account secret.
	Secret string
}

// Status is the classification of a completed login attempt.
type Status uint8

const (
	// StatusAuthenticated means the session was established with direct evidence.
	StatusAuthenticated Status = iota + 1
	// StatusRejected means the attempt was refused (bad credentials or broken form).
	StatusRejected
	// StatusChallengeRequired means the site demands CAPTCHA or extra verification.
	StatusChallengeRequired
	// StatusIndeterminate means the evidence is insufficient to assert either way.
	StatusIndeterminate
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusAuthenticated:
		return "authenticated"
	case StatusRejected:
		return "rejected"
	case StatusChallengeRequired:
		return "challenge_required"
	case StatusIndeterminate:
		return "indeterminate"
	default:
		return "unknown"
	}
}

// Outcome is the single tagged result of one login attempt.
type Outcome struct {
	// Status is the classification variant.
	Status Status
	// Reason is a human-readable diagnostic. Never contains the secret.
	Reason string
	// CurrentURL is the page location observed at classification time, when known.
	CurrentURL string
	// Cookies are the session cookies collected from the browsing context.
	// Keys are unique; the last write per name wins.
	Cookies map[string]string
}

// Authenticated builds a successful outcome carrying the session cookies.
func Authenticated(cookies map[string]string) Outcome {
	return Outcome{
		Status:  StatusAuthenticated,
		Reason:  "login successful",
		Cookies: cookies,
	}
}

// Rejected builds a refused outcome with a diagnostic reason.
func Rejected(reason string) Outcome {
	return Outcome{
		Status: StatusRejected,
		Reason: reason,
	}
}

// ChallengeRequired builds an outcome for CAPTCHA or extra verification demands.
func ChallengeRequired(reason string) Outcome {
	return Outcome{
		Status: StatusChallengeRequired,
		Reason: reason,
	}
}

// Indeterminate builds an outcome for insufficient evidence.
func Indeterminate(reason, currentURL string, cookies map[string]string) Outcome {
	return Outcome{
		Status:     StatusIndeterminate,
		Reason:     reason,
		CurrentURL: currentURL,
		Cookies:    cookies,
	}
}

// cookiesToMap folds cookies into a name-to-value mapping.
// Duplicate names are resolved by keeping the last value seen.
func cookiesToMap(cookies []Cookie) map[string]string {
	result := make(map[string]string, len(cookies))
	for _, cookie := range cookies {
		result[cookie.Name] = cookie.Value
	}

	return result
}
