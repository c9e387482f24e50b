package scrape

import (
	"net/url"
	"strings"

	"github.com/eshaam/trackergg-scraper/internal/domain"
)

// ResolveProfileURL maps (game, username, platform) to the best-guess
// canonical profile URL. It returns false when the game is unknown, either
// input is empty, or the game's tracker has no stable direct-link pattern.
//
// Platform aliases are matched case-insensitively against the game's slug
// map; an unknown platform passes through unchanged, producing a guess that
// may well 404 but costs nothing to try. Pure and deterministic.
func ResolveProfileURL(game, username, platform string) (string, bool) {
	if username == "" || platform == "" {
		return "", false
	}

	profile, ok := domain.LookupGame(game)
	if !ok || !profile.DirectURL {
		return "", false
	}

	slug, ok := profile.PlatformSlugs[strings.ToLower(platform)]
	if !ok {
		slug = platform
	}

	return profile.BaseURL + "/profile/" + slug + "/" + url.PathEscape(username) + "/overview", true
}
