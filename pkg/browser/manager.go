package browser

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Manager owns the Playwright driver process and opens browser sessions.
type Manager struct {
	mu         sync.Mutex
	playwright *playwright.Playwright
	started    bool
}

// NewManager creates a new manager. Start must be called before opening
// any sessions.
func NewManager() *Manager {
	return &Manager{}
}

// Start installs (if needed) and launches the Playwright driver.
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return nil
	}

	// Discard driver output so it does not interleave with our own logging
	opts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if err := playwright.Install(opts); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	m.playwright = pw
	m.started = true
	return nil
}

// Open launches a browser configured to save downloads into
// opts.DownloadDir and returns the session that owns it.
func (m *Manager) Open(opts Options) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started {
		return nil, fmt.Errorf("manager not started")
	}
	if opts.DownloadDir == "" {
		return nil, fmt.Errorf("download directory is required")
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless:      playwright.Bool(opts.Headless),
		DownloadsPath: playwright.String(opts.DownloadDir),
	}
	browser, err := m.playwright.Firefox.Launch(launchOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	contextOpts := playwright.BrowserNewContextOptions{
		AcceptDownloads: playwright.Bool(true),
		Viewport: &playwright.Size{
			Width:  DefaultViewportWidth,
			Height: DefaultViewportHeight,
		},
	}
	context, err := browser.NewContext(contextOpts)
	if err != nil {
		browser.Close()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		context.Close()
		browser.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	page.SetDefaultTimeout(float64(opts.Timeout.Milliseconds()))

	session := &Session{
		browser:     browser,
		context:     context,
		page:        page,
		downloadDir: opts.DownloadDir,
		headless:    opts.Headless,
		createdAt:   time.Now(),
	}

	// Pin every download to the configured directory under the server's
	// suggested name. SaveAs blocks until the transfer finishes, so the
	// handler runs on Playwright's event goroutine, not ours.
	page.OnDownload(func(d playwright.Download) {
		_ = d.SaveAs(session.downloadPath(d.SuggestedFilename()))
	})

	return session, nil
}

// Stop shuts down the Playwright driver. Sessions must be closed first.
func (m *Manager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started || m.playwright == nil {
		return nil
	}
	if err := m.playwright.Stop(); err != nil {
		return fmt.Errorf("failed to stop playwright: %w", err)
	}
	m.started = false
	return nil
}
