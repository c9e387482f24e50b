package domain

import "strings"

// GameProfile is the static per-game configuration: the tracker site base
// URL, the mapping from input platform aliases to URL slugs, and whether
// the site has a stable direct profile URL pattern for the game.
type GameProfile struct {
	GameKey       string
	BaseURL       string
	PlatformSlugs map[string]string
	DirectURL     bool
}

// gameRegistry is loaded once and never mutated at request time.
var gameRegistry = map[string]GameProfile{
	"warzone": {
		GameKey: "warzone",
		BaseURL: "https://tracker.gg/warzone",
		PlatformSlugs: map[string]string{
			"psn":         "psn",
			"ps":          "psn",
			"playstation": "psn",
			"xbox":        "xbl",
			"xbl":         "xbl",
			"pc":          "battlenet",
			"battlenet":   "battlenet",
			"battle.net":  "battlenet",
			"activision":  "atvi",
		},
		DirectURL: true,
	},
	"apex": {
		GameKey: "apex",
		BaseURL: "https://apex.tracker.gg",
		PlatformSlugs: map[string]string{
			"psn":    "psn",
			"xbox":   "xbl",
			"xbl":    "xbl",
			"pc":     "origin",
			"origin": "origin",
		},
		DirectURL: true,
	},
	"valorant": {
		GameKey: "valorant",
		BaseURL: "https://tracker.gg/valorant",
		PlatformSlugs: map[string]string{
			"riot": "riot",
			"pc":   "riot",
		},
		DirectURL: true,
	},
	// The marvel rivals tracker has no stable direct-link pattern; profiles
	// are only reachable through the site search.
	"marvel-rivals": {
		GameKey:   "marvel-rivals",
		BaseURL:   "https://tracker.gg/marvel-rivals",
		DirectURL: false,
	},
}

// LookupGame returns the profile for a game key, case-insensitively.
func LookupGame(gameKey string) (GameProfile, bool) {
	profile, ok := gameRegistry[strings.ToLower(strings.TrimSpace(gameKey))]
	return profile, ok
}

// KnownGames lists registered game keys.
func KnownGames() []string {
	keys := make([]string, 0, len(gameRegistry))
	for key := range gameRegistry {
		keys = append(keys, key)
	}
	return keys
}
