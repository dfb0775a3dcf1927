package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/authgate/internal/logger"
	"github.com/oshokin/authgate/internal/utils"
)

// Config holds all configuration settings.
type Config struct {
	// ListenAddress is the address the HTTP server binds to (e.g., ":8080").
	ListenAddress string `mapstructure:"listen_address"`
	// BrowserControlURL is the CDP endpoint of the remote browser service.
	// The core treats it as an opaque string; it only has to be non-empty.
	BrowserControlURL string `mapstructure:"browser_control_url"`
	// LoginURL is the address of the target login page.
	LoginURL string `mapstructure:"login_url"`
	// WarmupURL is an optional neutral page visited before the login page
	// to establish referrer and history plausibility. Empty disables the warm-up.
	WarmupURL string `mapstructure:"warmup_url"`
	// Markers holds the versioned classification marker set.
	// These values drift with the target site and are data, not constants.
	Markers MarkerSet `mapstructure:"markers"`
	// MarkerSetFile optionally points to a YAML file overriding Markers.
	MarkerSetFile string `mapstructure:"marker_set_file"`
	// IdentitySelectors are candidate locators for the identity field, most reliable first.
	IdentitySelectors []string `mapstructure:"identity_selectors"`
	// SecretSelectors are candidate locators for the secret field, most reliable first.
	SecretSelectors []string `mapstructure:"secret_selectors"`
	// SubmitSelectors are candidate locators for the submit control, most reliable first.
	SubmitSelectors []string `mapstructure:"submit_selectors"`
	// TypingDelayMin is the minimum inter-keystroke delay (e.g., "200ms").
	TypingDelayMin string `mapstructure:"typing_delay_min"`
	// TypingDelayMax is the maximum inter-keystroke delay (e.g., "500ms").
	TypingDelayMax string `mapstructure:"typing_delay_max"`
	// NavigationTimeout bounds waiting for page loads (e.g., "30s").
	NavigationTimeout string `mapstructure:"navigation_timeout"`
	// ElementTimeout bounds waiting for a form element to appear (e.g., "10s").
	ElementTimeout string `mapstructure:"element_timeout"`
	// ClassifyTimeout bounds waiting for the post-submit redirect (e.g., "15s").
	ClassifyTimeout string `mapstructure:"classify_timeout"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`
	// MaxRequestBodySize caps inbound request bodies (e.g., "64KB").
	MaxRequestBodySize string `mapstructure:"max_request_body_size"`
	// ParsedTypingDelayMin is the parsed minimum inter-keystroke delay.
	ParsedTypingDelayMin time.Duration
	// ParsedTypingDelayMax is the parsed maximum inter-keystroke delay.
	ParsedTypingDelayMax time.Duration
	// ParsedNavigationTimeout is the parsed navigation timeout.
	ParsedNavigationTimeout time.Duration
	// ParsedElementTimeout is the parsed element timeout.
	ParsedElementTimeout time.Duration
	// ParsedClassifyTimeout is the parsed classification timeout.
	ParsedClassifyTimeout time.Duration
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level
	// ParsedMaxRequestBodySize is the parsed request body cap in bytes.
	ParsedMaxRequestBodySize int64
}

// MarkerSet is the versioned, site-coupled classification data:
// where an authenticated session lands, which locations signal a challenge,
// and which cookie names count as positive authentication evidence.
type MarkerSet struct {
	// Version identifies the marker revision so drift is visible in logs.
	Version string `mapstructure:"version" yaml:"version"`
	// SuccessURL is the canonical post-login landing location.
	SuccessURL string `mapstructure:"success_url" yaml:"success_url"`
	// AuthDomains are domains belonging to the authentication flow.
	AuthDomains []string `mapstructure:"auth_domains" yaml:"auth_domains"`
	// ChallengeMarkers are URL substrings signalling CAPTCHA or extra verification.
	ChallengeMarkers []string `mapstructure:"challenge_markers" yaml:"challenge_markers"`
	// AuthCookieNames are cookie names treated as authentication evidence.
	AuthCookieNames []string `mapstructure:"auth_cookie_names" yaml:"auth_cookie_names"`
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".authgate.yaml"

	// DefaultListenAddress is the default HTTP bind address.
	DefaultListenAddress = ":8080"

	// DefaultMaxLogLength is the default maximum size (in bytes) for logged request/response dumps.
	DefaultMaxLogLength = 1 * 1024 * 1024 // 1 MB

	// envPrefix is the prefix for environment variable overrides.
	envPrefix = "AUTHGATE"
)

// Static error definitions for better error handling.
var (
	// ErrMissingControlURL indicates that the remote browser endpoint is not configured.
	ErrMissingControlURL = errors.New("browser control URL cannot be empty")
	// ErrMissingLoginURL indicates that the login page URL is not configured.
	ErrMissingLoginURL = errors.New("login URL cannot be empty")
	// ErrMissingSuccessURL indicates that the canonical success URL is not configured.
	ErrMissingSuccessURL = errors.New("markers.success_url cannot be empty")
	// ErrNoIdentitySelectors indicates that no identity field locators are configured.
	ErrNoIdentitySelectors = errors.New("identity_selectors cannot be empty")
	// ErrNoSecretSelectors indicates that no secret field locators are configured.
	ErrNoSecretSelectors = errors.New("secret_selectors cannot be empty")
	// ErrInvalidTypingDelay indicates that the typing delay bounds are invalid.
	ErrInvalidTypingDelay = errors.New("typing delay bounds must be positive")
	// ErrTypingDelayInverted indicates that typing_delay_min exceeds typing_delay_max.
	ErrTypingDelayInverted = errors.New("typing_delay_min cannot exceed typing_delay_max")
	// ErrInvalidNavigationTimeout indicates that the navigation timeout is invalid.
	ErrInvalidNavigationTimeout = errors.New("navigation_timeout must be positive")
	// ErrInvalidElementTimeout indicates that the element timeout is invalid.
	ErrInvalidElementTimeout = errors.New("element_timeout must be positive")
	// ErrInvalidClassifyTimeout indicates that the classification timeout is invalid.
	ErrInvalidClassifyTimeout = errors.New("classify_timeout must be positive")
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
)

// LoadConfig loads configuration settings from a YAML file,
// with environment variables taking precedence over file values.
func LoadConfig(configFilename string) (*Config, error) {
	if configFilename == "" {
		configFilename = DefaultConfigFilename
	}

	viper.SetConfigFile(configFilename)
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config from file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ValidateConfig checks the configuration for validity and sets derived fields.
//
//nolint:funlen,gocognit,cyclop // Validation functions naturally have high complexity and length due to sequential checks.
func ValidateConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.BrowserControlURL) == "" {
		return ErrMissingControlURL
	}

	if strings.TrimSpace(cfg.LoginURL) == "" {
		return ErrMissingLoginURL
	}

	if cfg.ListenAddress == "" {
		cfg.ListenAddress = DefaultListenAddress
	}

	if cfg.MarkerSetFile != "" {
		markers, err := LoadMarkerSet(cfg.MarkerSetFile)
		if err != nil {
			return fmt.Errorf("failed to load marker set: %w", err)
		}

		cfg.Markers = *markers
	}

	if strings.TrimSpace(cfg.Markers.SuccessURL) == "" {
		return ErrMissingSuccessURL
	}

	if len(cfg.IdentitySelectors) == 0 {
		return ErrNoIdentitySelectors
	}

	if len(cfg.SecretSelectors) == 0 {
		return ErrNoSecretSelectors
	}

	var err error

	cfg.ParsedTypingDelayMin, err = time.ParseDuration(cfg.TypingDelayMin)
	if err != nil {
		return fmt.Errorf("failed to parse typing delay minimum: %w", err)
	}

	cfg.ParsedTypingDelayMax, err = time.ParseDuration(cfg.TypingDelayMax)
	if err != nil {
		return fmt.Errorf("failed to parse typing delay maximum: %w", err)
	}

	if cfg.ParsedTypingDelayMin <= 0 || cfg.ParsedTypingDelayMax <= 0 {
		return ErrInvalidTypingDelay
	}

	if cfg.ParsedTypingDelayMin > cfg.ParsedTypingDelayMax {
		return ErrTypingDelayInverted
	}

	cfg.ParsedNavigationTimeout, err = time.ParseDuration(cfg.NavigationTimeout)
	if err != nil {
		return fmt.Errorf("failed to parse navigation timeout: %w", err)
	}

	if cfg.ParsedNavigationTimeout <= 0 {
		return ErrInvalidNavigationTimeout
	}

	cfg.ParsedElementTimeout, err = time.ParseDuration(cfg.ElementTimeout)
	if err != nil {
		return fmt.Errorf("failed to parse element timeout: %w", err)
	}

	if cfg.ParsedElementTimeout <= 0 {
		return ErrInvalidElementTimeout
	}

	cfg.ParsedClassifyTimeout, err = time.ParseDuration(cfg.ClassifyTimeout)
	if err != nil {
		return fmt.Errorf("failed to parse classify timeout: %w", err)
	}

	if cfg.ParsedClassifyTimeout <= 0 {
		return ErrInvalidClassifyTimeout
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	maxRequestBodySize := strings.TrimSpace(cfg.MaxRequestBodySize)
	if maxRequestBodySize != "" && maxRequestBodySize != "0" {
		parsedSize, parseErr := humanize.ParseBytes(maxRequestBodySize)
		if parseErr != nil {
			return fmt.Errorf("failed to parse max request body size: %w", parseErr)
		}

		// http.MaxBytesReader accepts only int64 so we transform it safely in order to use it later.
		cfg.ParsedMaxRequestBodySize = utils.SafeUint64ToInt64(parsedSize)
	}

	return nil
}

// LoadMarkerSet reads a versioned marker set from a YAML file.
func LoadMarkerSet(path string) (*MarkerSet, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read marker set file: %w", err)
	}

	var markers MarkerSet
	if err = yaml.Unmarshal(content, &markers); err != nil {
		return nil, fmt.Errorf("failed to parse marker set file: %w", err)
	}

	return &markers, nil
}
