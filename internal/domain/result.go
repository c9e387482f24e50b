package domain

import "encoding/json"

// StructuredStats is the fixed schema the model is asked to fill. Every
// field is nullable: a value the model cannot find in the page text stays
// nil, it is never guessed.
type StructuredStats struct {
	Username      *string `json:"username"`
	Rank          *string `json:"rank"`
	Kills         *string `json:"kills"`
	MatchesPlayed *string `json:"matchesPlayed"`
	WinRate       *string `json:"winRate"`
}

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// ResultRecord is the single externally observable output per request.
// Status is "failed" exactly when the final page classification was still
// home or search results; nil Stats on a reached profile is still a
// success.
type ResultRecord struct {
	Status string
	Game   string
	User   string
	URL    string
	Stats  *StructuredStats
	Error  string
}

func SuccessRecord(game, user, url string, stats *StructuredStats) *ResultRecord {
	return &ResultRecord{
		Status: StatusSuccess,
		Game:   game,
		User:   user,
		URL:    url,
		Stats:  stats,
	}
}

func FailedRecord(game, user, url, errMsg string) *ResultRecord {
	return &ResultRecord{
		Status: StatusFailed,
		Game:   game,
		User:   user,
		URL:    url,
		Error:  errMsg,
	}
}

// MarshalJSON emits the two record shapes: success records always carry a
// stats field (JSON null when extraction produced nothing), failure records
// carry an error and omit stats entirely. The url field is dropped from
// failures that never produced one.
func (r *ResultRecord) MarshalJSON() ([]byte, error) {
	if r.Status == StatusFailed {
		failure := struct {
			Status string `json:"status"`
			Game   string `json:"game"`
			User   string `json:"user"`
			URL    string `json:"url,omitempty"`
			Error  string `json:"error"`
		}{r.Status, r.Game, r.User, r.URL, r.Error}
		return json.Marshal(failure)
	}

	success := struct {
		Status string           `json:"status"`
		Game   string           `json:"game"`
		User   string           `json:"user"`
		URL    string           `json:"url"`
		Stats  *StructuredStats `json:"stats"`
	}{r.Status, r.Game, r.User, r.URL, r.Stats}
	return json.Marshal(success)
}
