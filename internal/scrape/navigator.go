package scrape

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/eshaam/trackergg-scraper/internal/constants"
	"github.com/eshaam/trackergg-scraper/internal/domain"
)

// ErrSearchInputNotFound means no candidate search input was visible. It is
// a recoverable condition: the caller logs it and continues to the final
// classification, because the page may still have landed somewhere usable.
var ErrSearchInputNotFound = errors.New("search input not found")

// Navigator drives the site's search UI when direct navigation was
// unavailable or landed back on the home page. The site intermittently
// serves either a JS autocomplete dropdown or a plain submit form depending
// on load, so selection runs through an ordered list of strategies and the
// first one that takes effect wins.
type Navigator struct {
	driver Driver
	logger *zap.Logger
}

func NewNavigator(driver Driver, logger *zap.Logger) *Navigator {
	return &Navigator{driver: driver, logger: logger}
}

// Search types the username into the site search and tries to land on a
// profile. Every step can fail independently; any error is returned for
// logging only and must not fail the request.
func (n *Navigator) Search(req domain.ProfileRequest) error {
	input, err := n.findSearchInput()
	if err != nil {
		return err
	}

	n.logger.Debug("Search input found",
		zap.String("selector", input),
		zap.String("user", req.Username))

	// Human-paced typing: triggers the autocomplete and keeps keystroke
	// timing away from the instantaneous form-fill signature.
	if err := n.driver.ClearAndType(input, req.Username, constants.Search.TypingDelay); err != nil {
		return fmt.Errorf("typing into search input failed: %w", err)
	}

	// The suggestion list renders asynchronously.
	n.driver.Sleep(constants.Search.SuggestionWait)

	strategies := []selectionStrategy{
		{"marvel-id-suggestion", func() (bool, error) { return n.clickMarvelSuggestion(req) }},
		{"first-suggestion", n.clickFirstSuggestion},
		{"submit-and-icon", func() (bool, error) { return n.submitWithFallbackIcon(input) }},
	}

	for _, strategy := range strategies {
		done, err := strategy.run()
		if err != nil {
			n.logger.Warn("Search selection strategy failed",
				zap.String("strategy", strategy.name),
				zap.Error(err))
			continue
		}
		if done {
			n.logger.Debug("Search selection strategy succeeded",
				zap.String("strategy", strategy.name))
			return nil
		}
	}

	return nil
}

// selectionStrategy is one capability probe: run reports whether it took
// effect, so the list short-circuits at the first applicable one.
type selectionStrategy struct {
	name string
	run  func() (bool, error)
}

func (n *Navigator) findSearchInput() (string, error) {
	for _, selector := range constants.SearchInputSelectors {
		if n.driver.IsVisible(selector, constants.Timeouts.SelectorProbe) {
			return selector, nil
		}
	}
	return "", ErrSearchInputNotFound
}

// clickMarvelSuggestion prefers the suggestion whose link carries the
// request's marvel id, when one was supplied.
func (n *Navigator) clickMarvelSuggestion(req domain.ProfileRequest) (bool, error) {
	if req.MarvelID == "" {
		return false, nil
	}
	for _, selector := range constants.SuggestionSelectors {
		target := fmt.Sprintf(`%s[href*="%s"]`, selector, req.MarvelID)
		if n.driver.IsVisible(target, constants.Timeouts.SelectorProbe) {
			if err := n.driver.Click(target); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

func (n *Navigator) clickFirstSuggestion() (bool, error) {
	for _, selector := range constants.SuggestionSelectors {
		if n.driver.IsVisible(selector, constants.Timeouts.SelectorProbe) {
			if err := n.driver.Click(selector); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// submitWithFallbackIcon presses Enter and, when the URL did not move and a
// search marker is present, clicks the magnifier icon as a second-chance
// trigger for the plain-form variant of the UI.
func (n *Navigator) submitWithFallbackIcon(input string) (bool, error) {
	before, _ := n.driver.CurrentURL()

	if err := n.driver.PressEnter(input); err != nil {
		return false, err
	}
	n.driver.Sleep(constants.Search.PostSubmitWait)

	after, err := n.driver.CurrentURL()
	if err != nil {
		return false, err
	}

	if after == before && strings.Contains(after, "search?") {
		for _, selector := range constants.SearchSubmitSelectors {
			if n.driver.IsVisible(selector, constants.Timeouts.SelectorProbe) {
				if err := n.driver.Click(selector); err != nil {
					return false, err
				}
				break
			}
		}
		n.driver.Sleep(constants.Search.PostSubmitWait)
	}

	return true, nil
}
