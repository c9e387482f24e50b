package scrape

import "testing"

func TestClassify(t *testing.T) {
	base := "https://tracker.gg/warzone"

	tests := []struct {
		name       string
		currentURL string
		want       PageState
	}{
		{"exact home", "https://tracker.gg/warzone", StateHome},
		{"home with trailing slash", "https://tracker.gg/warzone/", StateHome},
		{"search results", "https://tracker.gg/warzone/search?query=Foo", StateSearchResults},
		{"profile url", "https://tracker.gg/warzone/profile/psn/Foo/overview", StateProfileOrUnknown},
		{"arbitrary page", "https://tracker.gg/warzone/leaderboards", StateProfileOrUnknown},
		{"empty current url", "", StateProfileOrUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.currentURL, base); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.currentURL, got, tt.want)
			}
		})
	}
}

func TestClassifyBaseTrailingSlash(t *testing.T) {
	if got := Classify("https://tracker.gg/warzone", "https://tracker.gg/warzone/"); got != StateHome {
		t.Errorf("trailing slash on base should still classify as HOME, got %v", got)
	}
}

func TestClassifyIsPure(t *testing.T) {
	url := "https://tracker.gg/warzone/search?query=x"
	if Classify(url, "https://tracker.gg/warzone") != Classify(url, "https://tracker.gg/warzone") {
		t.Error("classifier is not deterministic")
	}
}
