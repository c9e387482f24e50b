package constants

import "time"

var Timeouts = struct {
	Navigation     time.Duration
	DOMWait        time.Duration
	SelectorProbe  time.Duration
	ContentExtract time.Duration
	Request        time.Duration
	Shutdown       time.Duration
}{
	Navigation:     90 * time.Second,  // full page load budget
	DOMWait:        12 * time.Second,  // profile container presence wait
	SelectorProbe:  4 * time.Second,   // search input visibility probe
	ContentExtract: 8 * time.Second,   // primary content container wait
	Request:        180 * time.Second, // whole-request ceiling
	Shutdown:       10 * time.Second,
}

var Search = struct {
	TypingDelay    time.Duration
	SuggestionWait time.Duration
	PostSubmitWait time.Duration
}{
	TypingDelay:    120 * time.Millisecond, // per-character, human pace
	SuggestionWait: 2500 * time.Millisecond,
	PostSubmitWait: 1500 * time.Millisecond,
}

var AIInputLimits = struct {
	MaxPageTextChars int
}{
	MaxPageTextChars: 48000,
}

var Workers = struct {
	Min     int
	Max     int
	Default int
}{
	Min:     1,
	Max:     5,
	Default: 2,
}

var CacheTTL = struct {
	ResolvedURL time.Duration
}{
	ResolvedURL: 24 * time.Hour,
}

var SinkRetry = struct {
	MaxAttempts uint
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}{
	MaxAttempts: 3,
	BaseDelay:   500 * time.Millisecond,
	MaxDelay:    5 * time.Second,
}

var CircuitBreakerConfig = struct {
	FailureThreshold    int
	ResetTimeout        time.Duration
	RateLimitTimeout    time.Duration
	HealthCheckInterval time.Duration
	HealthCheckTimeout  time.Duration
}{
	FailureThreshold:    3,
	ResetTimeout:        30 * time.Second,
	RateLimitTimeout:    1 * time.Hour,
	HealthCheckInterval: 10 * time.Minute,
	HealthCheckTimeout:  10 * time.Second,
}

// SearchInputSelectors are probed in order; the first visible one wins.
// The site alternates between a few markup variants depending on load.
var SearchInputSelectors = []string{
	`input[placeholder*="Search"]`,
	`input[type="search"]`,
	`input.search-input`,
	`form[role="search"] input`,
}

// SuggestionSelectors match the autocomplete dropdown options.
var SuggestionSelectors = []string{
	`.autocomplete-results a`,
	`.search-results__item a`,
	`[class*="suggestion"] a`,
}

// SearchSubmitSelectors match the magnifier icon used as a second-chance
// trigger when pressing Enter leaves the URL unchanged.
var SearchSubmitSelectors = []string{
	`button[type="submit"] svg`,
	`.search-submit`,
	`button[aria-label="Search"]`,
}

// ProfileContentSelectors mark a rendered profile; used to raise confidence
// after navigation and as the primary text-extraction container.
var ProfileContentSelectors = []string{
	`main`,
	`.content-container`,
	`#app main`,
}

// BlockedResourceSuffixes are media assets the scraper never needs.
var BlockedResourceSuffixes = []string{
	"*.png", "*.jpg", "*.jpeg", "*.gif", "*.webp", "*.svg",
	"*.woff", "*.woff2", "*.ttf", "*.mp4", "*.webm",
}
