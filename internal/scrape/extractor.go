package scrape

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/eshaam/trackergg-scraper/internal/constants"
	"github.com/eshaam/trackergg-scraper/internal/util"
)

// ExtractPageText pulls a plain-text snapshot of the rendered page: first
// the primary content container, then the whole document body when the
// container never shows up. No length cap is applied here; shaping the text
// for transmission is the stats extractor's concern.
func ExtractPageText(driver Driver, logger *zap.Logger) (string, error) {
	for _, selector := range constants.ProfileContentSelectors {
		text, err := driver.Text(selector, constants.Timeouts.ContentExtract)
		if err == nil && text != "" {
			return text, nil
		}
	}

	logger.Debug("Primary content container missing, falling back to body text")

	html, err := driver.OuterHTML()
	if err != nil {
		return "", fmt.Errorf("body fallback failed: %w", err)
	}
	return bodyText(html)
}

// bodyText reduces a rendered document to its visible body text.
func bodyText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse document: %w", err)
	}
	doc.Find("script, style, noscript").Remove()
	return util.CollapseWhitespace(doc.Find("body").Text()), nil
}
