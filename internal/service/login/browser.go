package login

import (
	"context"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/oshokin/authgate/internal/utils"
)

// Cookie is a single session cookie scoped to a browsing context.
type Cookie struct {
	// Name is the cookie name.
	Name string
	// Value is the cookie value.
	Value string
}

// Browser is a connected remote browser handle.
type Browser interface {
	// NewContext opens an isolated, cookie-scoped browsing context.
	NewContext(ctx context.Context) (BrowsingContext, error)
	// Probe performs a cheap liveness check by opening and closing a throwaway page.
	Probe(ctx context.Context) error
	// Close releases the browser handle and its control channel.
	Close() error
}

// BrowsingContext is an incognito-like sandbox within a browser instance.
// It is owned exclusively by one attempt and never shared.
type BrowsingContext interface {
	// NewPage opens a stealth page presenting the given fingerprint.
	NewPage(ctx context.Context, fingerprint utils.Fingerprint) (Page, error)
	// Close disposes the browsing context.
	Close() error
}

// Page is the surface of a single browser tab used by an attempt.
type Page interface {
	// Navigate drives the page to the given URL.
	Navigate(url string) error
	// WaitStable waits for the page to load and network activity to settle.
	WaitStable(timeout time.Duration) error
	// CurrentURL returns the page's current location.
	CurrentURL() (string, error)
	// Probe queries a single locator, reporting whether it matched.
	Probe(selector string) (Element, bool, error)
	// Cookies returns all cookies visible to the browsing context.
	Cookies() ([]Cookie, error)
	// ViewportSize returns the page's inner dimensions in pixels.
	ViewportSize() (width, height int, err error)
	// MoveMouse moves the pointer to the given coordinates.
	MoveMouse(x, y float64) error
	// Scroll scrolls the page vertically by delta pixels.
	Scroll(delta float64) error
	// PressEnter dispatches an Enter keystroke to the focused element.
	PressEnter() error
	// PressBackspace dispatches a Backspace keystroke to the focused element.
	PressBackspace() error
	// Close closes the page.
	Close() error
}

// Element is a resolved, interactable DOM element.
type Element interface {
	// Visible reports whether the element is currently rendered.
	Visible() (bool, error)
	// Click moves to and clicks the element.
	Click() error
	// SelectAllText selects the element's current text content.
	SelectAllText() error
	// Input dispatches the given text as key events into the element.
	Input(text string) error
}

// DialFunc establishes a control channel to a single candidate endpoint.
type DialFunc func(ctx context.Context, controlURL string) (Browser, error)

// dialRemote connects to a remote browser over CDP.
// Non-websocket endpoints are resolved through the DevTools discovery endpoint first.
func dialRemote(ctx context.Context, controlURL string) (Browser, error) {
	resolvedURL := controlURL
	if !strings.HasPrefix(resolvedURL, "ws://") && !strings.HasPrefix(resolvedURL, "wss://") {
		var err error

		resolvedURL, err = launcher.ResolveURL(resolvedURL)
		if err != nil {
			return nil, err
		}
	}

	browser := rod.New().Context(ctx).ControlURL(resolvedURL)
	if err := browser.Connect(); err != nil {
		return nil, err
	}

	return &rodBrowser{browser: browser}, nil
}

// rodBrowser adapts a connected rod browser to the Browser interface.
type rodBrowser struct {
	browser *rod.Browser
}

func (b *rodBrowser) NewContext(_ context.Context) (BrowsingContext, error) {
	incognito, err := b.browser.Incognito()
	if err != nil {
		return nil, err
	}

	return &rodContext{browser: incognito}, nil
}

func (b *rodBrowser) Probe(_ context.Context) error {
	page, err := b.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return err
	}

	return page.Close()
}

func (b *rodBrowser) Close() error {
	return b.browser.Close()
}

// rodContext adapts an incognito browser context to the BrowsingContext interface.
type rodContext struct {
	browser *rod.Browser
}

func (c *rodContext) NewPage(_ context.Context, fingerprint utils.Fingerprint) (Page, error) {
	page, err := stealth.Page(c.browser)
	if err != nil {
		return nil, err
	}

	err = page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      fingerprint.UserAgent,
		AcceptLanguage: fingerprint.AcceptLanguage,
	})
	if err != nil {
		_ = page.Close()

		return nil, err
	}

	err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             fingerprint.ViewportWidth,
		Height:            fingerprint.ViewportHeight,
		DeviceScaleFactor: 1,
	})
	if err != nil {
		_ = page.Close()

		return nil, err
	}

	return &rodPage{page: page}, nil
}

func (c *rodContext) Close() error {
	return proto.TargetDisposeBrowserContext{
		BrowserContextID: c.browser.BrowserContextID,
	}.Call(c.browser)
}

// rodPage adapts a rod page to the Page interface.
type rodPage struct {
	page *rod.Page
}

func (p *rodPage) Navigate(url string) error {
	return p.page.Navigate(url)
}

func (p *rodPage) WaitStable(timeout time.Duration) error {
	page := p.page.Timeout(timeout)

	if err := page.WaitLoad(); err != nil {
		return err
	}

	return page.WaitIdle(timeout)
}

func (p *rodPage) CurrentURL() (string, error) {
	info, err := p.page.Info()
	if err != nil {
		return "", err
	}

	return info.URL, nil
}

func (p *rodPage) Probe(selector string) (Element, bool, error) {
	found, element, err := p.page.Has(selector)
	if err != nil || !found {
		return nil, false, err
	}

	return &rodElement{element: element}, true, nil
}

func (p *rodPage) Cookies() ([]Cookie, error) {
	rawCookies, err := p.page.Cookies(nil)
	if err != nil {
		return nil, err
	}

	cookies := make([]Cookie, 0, len(rawCookies))
	for _, cookie := range rawCookies {
		cookies = append(cookies, Cookie{Name: cookie.Name, Value: cookie.Value})
	}

	return cookies, nil
}

func (p *rodPage) ViewportSize() (int, int, error) {
	eval, err := p.page.Eval(`() => ({width: window.innerWidth, height: window.innerHeight})`)
	if err != nil {
		return 0, 0, err
	}

	dims := eval.Value.Map()

	return int(dims["width"].Num()), int(dims["height"].Num()), nil
}

func (p *rodPage) MoveMouse(x, y float64) error {
	return p.page.Mouse.MoveTo(proto.Point{X: x, Y: y})
}

func (p *rodPage) Scroll(delta float64) error {
	return p.page.Mouse.Scroll(0, delta, 1)
}

func (p *rodPage) PressEnter() error {
	return p.page.Keyboard.Press(input.Enter)
}

func (p *rodPage) PressBackspace() error {
	return p.page.Keyboard.Press(input.Backspace)
}

func (p *rodPage) Close() error {
	return p.page.Close()
}

// rodElement adapts a rod element to the Element interface.
type rodElement struct {
	element *rod.Element
}

func (e *rodElement) Visible() (bool, error) {
	return e.element.Visible()
}

func (e *rodElement) Click() error {
	return e.element.Click(proto.InputMouseButtonLeft, 1)
}

func (e *rodElement) SelectAllText() error {
	return e.element.SelectAllText()
}

func (e *rodElement) Input(text string) error {
	return e.element.Input(text)
}
