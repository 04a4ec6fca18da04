package slicer

import "time"

// Page is the page-automation capability the slicer needs. It is satisfied
// by *browser.Session; tests substitute a fake so job logic runs without a
// browser, and the driver technology stays swappable.
type Page interface {
	// Navigate loads the given URL and waits for the DOM to be ready.
	Navigate(url string) error

	// Fill sets the value of the input matching the selector.
	Fill(selector, value string) error

	// SelectLabel selects the option with the given visible label.
	SelectLabel(selector, label string) error

	// Check checks the radio or checkbox matching the selector.
	Check(selector string) error

	// Click clicks the element matching the selector.
	Click(selector string) error

	// WaitVisible waits, bounded by timeout, for the element to be visible.
	WaitVisible(selector string, timeout time.Duration) error

	// WaitHidden waits, bounded by timeout, for the element to be hidden
	// or absent.
	WaitHidden(selector string, timeout time.Duration) error

	// IsVisible reports whether the element is currently visible; a
	// selector matching nothing is not visible, not an error.
	IsVisible(selector string) (bool, error)

	// TextContent returns the element's text content.
	TextContent(selector string) (string, error)

	// InnerHTML returns the element's inner HTML.
	InnerHTML(selector string) (string, error)
}

// Session is a Page bundled with its teardown. Implemented by
// *browser.Session.
type Session interface {
	Page
	Close() error
}

// OpenFunc opens a browser session configured for a download directory and
// visibility mode. The Runner uses it so session construction stays outside
// job logic.
type OpenFunc func(downloadDir string, headless bool) (Session, error)
