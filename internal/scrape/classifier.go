package scrape

import "strings"

// PageState is the coarse classification of the browser's current URL.
type PageState string

const (
	StateHome             PageState = "HOME"
	StateSearchResults    PageState = "SEARCH_RESULTS"
	StateProfileOrUnknown PageState = "PROFILE_OR_UNKNOWN"
)

// Classify decides whether the current URL is the game's home page, a
// search results page, or something else. It is a cheap string heuristic,
// invoked once right after the initial navigation and once after all
// interaction attempts; by URL alone a genuine profile cannot be told apart
// from an arbitrary non-home page, so everything else is
// PROFILE_OR_UNKNOWN and DOM presence checks raise confidence downstream.
func Classify(currentURL, baseURL string) PageState {
	current := strings.TrimSuffix(strings.TrimSpace(currentURL), "/")
	base := strings.TrimSuffix(strings.TrimSpace(baseURL), "/")

	if current == base {
		return StateHome
	}
	if strings.Contains(currentURL, "search?") {
		return StateSearchResults
	}
	return StateProfileOrUnknown
}
