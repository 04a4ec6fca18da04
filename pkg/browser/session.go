package browser

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"
)

// DownloadDir returns the directory this session saves downloads into.
func (s *Session) DownloadDir() string {
	return s.downloadDir
}

// Headless reports whether the browser runs without a visible window.
func (s *Session) Headless() bool {
	return s.headless
}

// CreatedAt returns the time the session was opened.
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// URL returns the page's current URL.
func (s *Session) URL() string {
	return s.page.URL()
}

func (s *Session) downloadPath(name string) string {
	return filepath.Join(s.downloadDir, filepath.Base(name))
}

// Navigate loads the given URL and waits for the DOM to be ready.
func (s *Session) Navigate(url string) error {
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	if err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

// Fill sets the value of the input element matching the selector.
func (s *Session) Fill(selector, value string) error {
	if err := s.page.Fill(selector, value); err != nil {
		return fmt.Errorf("fill failed: %w", err)
	}
	return nil
}

// SelectLabel selects the option with the given visible label in the
// select element matching the selector.
func (s *Session) SelectLabel(selector, label string) error {
	_, err := s.page.SelectOption(selector, playwright.SelectOptionValues{
		Labels: &[]string{label},
	})
	if err != nil {
		return fmt.Errorf("select failed: %w", err)
	}
	return nil
}

// Check checks the radio or checkbox element matching the selector.
func (s *Session) Check(selector string) error {
	if err := s.page.Check(selector); err != nil {
		return fmt.Errorf("check failed: %w", err)
	}
	return nil
}

// Click clicks the element matching the selector.
func (s *Session) Click(selector string) error {
	if err := s.page.Click(selector); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}
	return nil
}

// WaitVisible waits until the element matching the selector is visible.
func (s *Session) WaitVisible(selector string, timeout time.Duration) error {
	_, err := s.page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("wait failed: %w", err)
	}
	return nil
}

// WaitHidden waits until the element matching the selector is hidden or
// detached. A selector that never matched counts as hidden.
func (s *Session) WaitHidden(selector string, timeout time.Duration) error {
	_, err := s.page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateHidden,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("wait failed: %w", err)
	}
	return nil
}

// IsVisible reports whether the element matching the selector is visible.
// A selector that matches nothing is not visible, not an error.
func (s *Session) IsVisible(selector string) (bool, error) {
	visible, err := s.page.IsVisible(selector)
	if err != nil {
		return false, fmt.Errorf("visibility query failed: %w", err)
	}
	return visible, nil
}

// TextContent returns the text content of the element matching the selector.
func (s *Session) TextContent(selector string) (string, error) {
	text, err := s.page.TextContent(selector)
	if err != nil {
		return "", fmt.Errorf("text extraction failed: %w", err)
	}
	return text, nil
}

// InnerHTML returns the inner HTML of the element matching the selector.
func (s *Session) InnerHTML(selector string) (string, error) {
	html, err := s.page.InnerHTML(selector)
	if err != nil {
		return "", fmt.Errorf("html extraction failed: %w", err)
	}
	return html, nil
}

// Close releases the page, context, and browser process. Only the first
// call tears resources down; later calls return the first call's result.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		_ = s.page.Close()    // Ignore errors, continue cleanup
		_ = s.context.Close() // Ignore errors, continue cleanup
		s.closeErr = s.browser.Close()
	})
	return s.closeErr
}
