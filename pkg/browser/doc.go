// Package browser provides the web page automation capability through Playwright.
//
// The package is built around two concepts:
//
// 1. Manager: owns the Playwright driver process for the lifetime of the program
// 2. Session: one browser instance with its context and page, exclusively owned
// by the control flow that opened it
//
// # Session Lifecycle
//
// Sessions follow this lifecycle:
//
//  1. Start: Manager.Start installs and launches the Playwright driver
//  2. Open: Manager.Open launches a browser configured for a download directory
//  3. Use: navigation, form interaction, and content reads operate on the session
//  4. Close: Session.Close releases the page, context, and browser process
//
// Close is safe to call more than once; only the first call tears resources
// down. This lets callers defer Close on every exit path without tracking
// which path ran first.
//
// # Downloads
//
// A session accepts downloads unconditionally and saves each one into the
// download directory it was opened with, under the server's suggested
// filename. Detecting that a download has finished is the caller's concern:
// the browser exposes no reliable completion signal, so callers watch the
// directory instead.
package browser
