package scrape

import "time"

// Driver is the browser surface the pipeline consumes. The production
// implementation is browser.Session; tests use fakes so no Chrome process
// is needed to exercise the navigation logic.
type Driver interface {
	Navigate(url string, timeout time.Duration) error
	CurrentURL() (string, error)
	IsVisible(selector string, timeout time.Duration) bool
	Click(selector string) error
	ClearAndType(selector, text string, perChar time.Duration) error
	PressEnter(selector string) error
	Text(selector string, timeout time.Duration) (string, error)
	OuterHTML() (string, error)
	Sleep(d time.Duration)
}
