package browser

import (
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Session represents one browser instance with its associated resources.
// A session is exclusively owned by the control flow that opened it and is
// never shared between goroutines.
type Session struct {
	// browser is the Playwright browser instance
	browser playwright.Browser

	// context is the browser context (isolated profile)
	context playwright.BrowserContext

	// page is the single page driven by this session
	page playwright.Page

	// downloadDir is where accepted downloads are saved
	downloadDir string

	// headless indicates if the browser is running without a visible window
	headless bool

	// createdAt is the timestamp when the session was opened
	createdAt time.Time

	closeOnce sync.Once
	closeErr  error
}

// Options configures a new browser session.
type Options struct {
	// DownloadDir is the directory downloads are saved into. Required.
	DownloadDir string

	// Headless controls whether the browser runs without a visible window.
	Headless bool

	// Timeout sets the default timeout for page operations. Zero means
	// DefaultTimeout.
	Timeout time.Duration
}

// Default values for session operations.
const (
	DefaultTimeout        = 30 * time.Second
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
)
