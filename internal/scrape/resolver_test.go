package scrape

import "testing"

func TestResolveProfileURLDirectGames(t *testing.T) {
	tests := []struct {
		name     string
		game     string
		username string
		platform string
		want     string
	}{
		{
			name:     "warzone psn alias",
			game:     "warzone",
			username: "Foo",
			platform: "psn",
			want:     "https://tracker.gg/warzone/profile/psn/Foo/overview",
		},
		{
			name:     "warzone platform alias mapped case-insensitively",
			game:     "warzone",
			username: "Foo",
			platform: "Xbox",
			want:     "https://tracker.gg/warzone/profile/xbl/Foo/overview",
		},
		{
			name:     "unknown platform passes through unchanged",
			game:     "warzone",
			username: "Foo",
			platform: "steamdeck",
			want:     "https://tracker.gg/warzone/profile/steamdeck/Foo/overview",
		},
		{
			name:     "unknown platform keeps its casing",
			game:     "warzone",
			username: "Foo",
			platform: "SteamDeck",
			want:     "https://tracker.gg/warzone/profile/SteamDeck/Foo/overview",
		},
		{
			name:     "username is percent-encoded",
			game:     "warzone",
			username: "Player One#123",
			platform: "psn",
			want:     "https://tracker.gg/warzone/profile/psn/Player%20One%23123/overview",
		},
		{
			name:     "apex pc maps to origin",
			game:     "apex",
			username: "Bar",
			platform: "pc",
			want:     "https://apex.tracker.gg/profile/origin/Bar/overview",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveProfileURL(tt.game, tt.username, tt.platform)
			if !ok {
				t.Fatalf("ResolveProfileURL(%q, %q, %q) returned not ok", tt.game, tt.username, tt.platform)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveProfileURLReturnsNone(t *testing.T) {
	tests := []struct {
		name     string
		game     string
		username string
		platform string
	}{
		{"unknown game", "fortnite", "Foo", "psn"},
		{"empty username", "warzone", "", "psn"},
		{"empty platform", "warzone", "Foo", ""},
		{"non-direct game despite base url", "marvel-rivals", "Foo", "pc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if url, ok := ResolveProfileURL(tt.game, tt.username, tt.platform); ok {
				t.Errorf("expected none, got %q", url)
			}
		})
	}
}

func TestResolveProfileURLIsPure(t *testing.T) {
	first, ok1 := ResolveProfileURL("warzone", "Foo", "psn")
	second, ok2 := ResolveProfileURL("warzone", "Foo", "psn")
	if ok1 != ok2 || first != second {
		t.Errorf("resolver is not deterministic: %q vs %q", first, second)
	}
}
