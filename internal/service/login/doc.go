// Package login implements scripted authentication against a third-party
// login flow through a remote browser driven over CDP.
//
// A single attempt connects to the remote browser service, opens an isolated
// browsing context with a realistic fingerprint, locates the form fields
// through ranked candidate locators, fills and submits them with human-like
// input timing, and classifies the observable post-submit state into exactly
// one outcome. All browser resources are torn down at the end of the attempt
// regardless of how it ends.
package login
