package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
	"go.uber.org/zap"

	"github.com/eshaam/trackergg-scraper/internal/constants"
	"github.com/eshaam/trackergg-scraper/pkg/errors"
)

// Session owns one browser tab for the duration of one request. It is
// created from the per-request context, so the whole-request deadline
// propagates into every CDP call. Sessions are never shared across
// concurrent requests.
type Session struct {
	ctx             context.Context
	cancelTab       context.CancelFunc
	cancelAllocator context.CancelFunc
	logger          *zap.Logger
}

// NewSession launches a browser tab, installs the stealth script and blocks
// media resources the scraper never needs.
func NewSession(parent context.Context, opts Options, logger *zap.Logger) (*Session, error) {
	allocatorCtx, cancelAllocator := newAllocator(parent, opts)
	tabCtx, cancelTab := chromedp.NewContext(allocatorCtx)

	s := &Session{
		ctx:             tabCtx,
		cancelTab:       cancelTab,
		cancelAllocator: cancelAllocator,
		logger:          logger,
	}

	err := chromedp.Run(tabCtx,
		network.Enable(),
		network.SetBlockedURLs(constants.BlockedResourceSuffixes),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(stealthScript).Do(ctx)
			return err
		}),
	)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to start browser session: %w", err)
	}

	s.logger.Debug("Browser session ready")
	return s, nil
}

// Close tears down the tab and its allocator.
func (s *Session) Close() {
	if s.cancelTab != nil {
		s.cancelTab()
	}
	if s.cancelAllocator != nil {
		s.cancelAllocator()
	}
}

// Navigate loads url and waits for the body to be ready, within timeout.
func (s *Session) Navigate(url string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()

	err := chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return errors.NewNavigationError("navigation failed", url, err)
	}
	return nil
}

// CurrentURL reports the tab's location.
func (s *Session) CurrentURL() (string, error) {
	var url string
	if err := chromedp.Run(s.ctx, chromedp.Location(&url)); err != nil {
		return "", fmt.Errorf("failed to read location: %w", err)
	}
	return url, nil
}

// IsVisible reports whether selector is visible within timeout. A timeout
// is an answer, not an error.
func (s *Session) IsVisible(selector string, timeout time.Duration) bool {
	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()

	err := chromedp.Run(ctx, chromedp.WaitVisible(selector, chromedp.ByQuery))
	return err == nil
}

// Click clicks the first node matching selector.
func (s *Session) Click(selector string) error {
	ctx, cancel := context.WithTimeout(s.ctx, constants.Timeouts.SelectorProbe)
	defer cancel()

	if err := chromedp.Run(ctx, chromedp.Click(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("click %q failed: %w", selector, err)
	}
	return nil
}

// ClearAndType empties the field, then sends text one character at a time
// with a fixed delay. The per-character pacing is what triggers the site's
// autocomplete and keeps the keystroke timing off the bot heuristics; do
// not collapse it into a single SetValue.
func (s *Session) ClearAndType(selector, text string, perChar time.Duration) error {
	if err := chromedp.Run(s.ctx,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.SetValue(selector, "", chromedp.ByQuery),
		chromedp.Click(selector, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("failed to focus %q: %w", selector, err)
	}

	for _, r := range text {
		if err := chromedp.Run(s.ctx,
			chromedp.SendKeys(selector, string(r), chromedp.ByQuery),
			chromedp.Sleep(perChar),
		); err != nil {
			return fmt.Errorf("failed to type into %q: %w", selector, err)
		}
	}
	return nil
}

// PressEnter submits the focused input.
func (s *Session) PressEnter(selector string) error {
	if err := chromedp.Run(s.ctx, chromedp.SendKeys(selector, kb.Enter, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("failed to press enter on %q: %w", selector, err)
	}
	return nil
}

// Text returns the visible text of the first node matching selector,
// waiting up to timeout for it to appear.
func (s *Session) Text(selector string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()

	var text string
	err := chromedp.Run(ctx,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Text(selector, &text, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("text extraction from %q failed: %w", selector, err)
	}
	return strings.TrimSpace(text), nil
}

// OuterHTML captures the whole rendered document.
func (s *Session) OuterHTML() (string, error) {
	var html string
	if err := chromedp.Run(s.ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("failed to capture document: %w", err)
	}
	return html, nil
}

// Sleep waits without burning the deadline past cancellation.
func (s *Session) Sleep(d time.Duration) {
	_ = chromedp.Run(s.ctx, chromedp.Sleep(d))
}
