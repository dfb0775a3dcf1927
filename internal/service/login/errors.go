package login

import "errors"

var (
	// ErrConnectionFailed is returned when no connection candidate yielded a usable browser.
	ErrConnectionFailed = errors.New("no browser connection candidate succeeded")

	// ErrElementNotFound is returned when no candidate locator resolved to a visible element.
	ErrElementNotFound = errors.New("form element not found")
)
