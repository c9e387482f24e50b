package domain

// PlayerSpec is one element of the input players file. Each listed game
// expands into an independent ProfileRequest.
type PlayerSpec struct {
	Username string   `json:"username"`
	Platform string   `json:"platform"`
	Games    []string `json:"games"`
	MarvelID string   `json:"marvelId,omitempty"`
}

// ProfileRequest identifies one profile lookup. Immutable once created.
type ProfileRequest struct {
	Game     string
	Username string
	Platform string
	MarvelID string
}

// NavigationOutcome is produced once per request by the pipeline and
// consumed when the result record is built.
type NavigationOutcome struct {
	FinalURL           string
	ReachedProfile     bool
	UsedFallbackSearch bool
}
