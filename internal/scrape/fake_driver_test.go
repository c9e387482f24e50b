package scrape

import (
	"fmt"
	"time"
)

type typedEntry struct {
	selector string
	text     string
}

// fakeDriver is an in-memory Driver so navigation logic runs without a
// browser. URL transitions are scripted per action.
type fakeDriver struct {
	currentURL       string
	navigateErr      error
	visibleSelectors map[string]bool
	textBySelector   map[string]string
	outerHTML        string

	urlAfterNavigate func(target string) string
	urlAfterClick    map[string]string
	urlAfterEnter    string

	navigations  []string
	typed        []typedEntry
	clicked      []string
	enterPressed bool
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		visibleSelectors: make(map[string]bool),
		textBySelector:   make(map[string]string),
		urlAfterClick:    make(map[string]string),
	}
}

func (d *fakeDriver) Navigate(url string, _ time.Duration) error {
	d.navigations = append(d.navigations, url)
	if d.navigateErr != nil {
		return d.navigateErr
	}
	if d.urlAfterNavigate != nil {
		d.currentURL = d.urlAfterNavigate(url)
	} else {
		d.currentURL = url
	}
	return nil
}

func (d *fakeDriver) CurrentURL() (string, error) {
	return d.currentURL, nil
}

func (d *fakeDriver) IsVisible(selector string, _ time.Duration) bool {
	return d.visibleSelectors[selector]
}

func (d *fakeDriver) Click(selector string) error {
	d.clicked = append(d.clicked, selector)
	if url, ok := d.urlAfterClick[selector]; ok {
		d.currentURL = url
	}
	return nil
}

func (d *fakeDriver) ClearAndType(selector, text string, _ time.Duration) error {
	d.typed = append(d.typed, typedEntry{selector: selector, text: text})
	return nil
}

func (d *fakeDriver) PressEnter(_ string) error {
	d.enterPressed = true
	if d.urlAfterEnter != "" {
		d.currentURL = d.urlAfterEnter
	}
	return nil
}

func (d *fakeDriver) Text(selector string, _ time.Duration) (string, error) {
	if text, ok := d.textBySelector[selector]; ok {
		return text, nil
	}
	return "", fmt.Errorf("no visible node for %q", selector)
}

func (d *fakeDriver) OuterHTML() (string, error) {
	return d.outerHTML, nil
}

func (d *fakeDriver) Sleep(_ time.Duration) {}
