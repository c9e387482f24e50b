package browser

import (
	"context"
	"math/rand"

	"github.com/chromedp/chromedp"
)

// defaultUserAgents rotate per session so consecutive workers do not share
// a fingerprint.
var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
}

// stealthScript papers over the obvious headless tells before any page
// script runs.
const stealthScript = `
Object.defineProperty(navigator, 'webdriver', {get: () => undefined});
Object.defineProperty(navigator, 'languages', {get: () => ['en-US', 'en']});
Object.defineProperty(navigator, 'plugins', {get: () => [1, 2, 3]});
window.chrome = window.chrome || { runtime: {} };
`

// Options configures a browser session.
type Options struct {
	ChromePath  string
	ProxyServer string
	Headless    bool
	UserAgent   string // empty picks one at random
}

func (o Options) userAgent() string {
	if o.UserAgent != "" {
		return o.UserAgent
	}
	return defaultUserAgents[rand.Intn(len(defaultUserAgents))]
}

// newAllocator builds an exec allocator with the hardened flag set. The
// AutomationControlled blink feature and the enable-automation switch are
// what the tracker site sniffs for first.
func newAllocator(parent context.Context, opts Options) (context.Context, context.CancelFunc) {
	allocatorOptions := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	allocatorOptions = append(allocatorOptions,
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("enable-automation", false),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-component-extensions-with-background-pages", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
		chromedp.Flag("mute-audio", true),
		chromedp.UserAgent(opts.userAgent()),
	)

	if opts.ProxyServer != "" {
		allocatorOptions = append(allocatorOptions, chromedp.ProxyServer(opts.ProxyServer))
	}
	if opts.ChromePath != "" {
		allocatorOptions = append(allocatorOptions, chromedp.ExecPath(opts.ChromePath))
	}

	return chromedp.NewExecAllocator(parent, allocatorOptions...)
}
