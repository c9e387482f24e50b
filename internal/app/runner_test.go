package app

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/eshaam/trackergg-scraper/internal/domain"
)

func TestExpandRequestsSkipsUnknownGames(t *testing.T) {
	players := []domain.PlayerSpec{
		{Username: "Foo", Platform: "psn", Games: []string{"warzone", "nosuchgame"}},
		{Username: "Bar", Platform: "pc", Games: []string{"marvel-rivals"}, MarvelID: "12345"},
	}

	requests := ExpandRequests(players, zap.NewNop())

	if len(requests) != 2 {
		t.Fatalf("expected 2 requests (unknown game skipped before record generation), got %d", len(requests))
	}
	if requests[0].Game != "warzone" || requests[0].Username != "Foo" {
		t.Errorf("unexpected first request: %+v", requests[0])
	}
	if requests[1].MarvelID != "12345" {
		t.Errorf("marvel id not carried through: %+v", requests[1])
	}
}

func TestExpandRequestsSkipsIncompletePlayers(t *testing.T) {
	players := []domain.PlayerSpec{
		{Username: "", Platform: "psn", Games: []string{"warzone"}},
		{Username: "Foo", Platform: "", Games: []string{"warzone"}},
	}
	if requests := ExpandRequests(players, zap.NewNop()); len(requests) != 0 {
		t.Errorf("expected no requests, got %v", requests)
	}
}

func TestLoadPlayers(t *testing.T) {
	players := []domain.PlayerSpec{
		{Username: "Foo", Platform: "psn", Games: []string{"warzone", "apex"}},
	}
	data, err := json.Marshal(players)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "players.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadPlayers(path)
	if err != nil {
		t.Fatalf("LoadPlayers failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Username != "Foo" || len(loaded[0].Games) != 2 {
		t.Errorf("unexpected players: %+v", loaded)
	}
}

func TestLoadPlayersMissingFile(t *testing.T) {
	if _, err := LoadPlayers(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing players file")
	}
}
