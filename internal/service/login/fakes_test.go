package login

import (
	"context"
	"errors"
	"time"

	"github.com/oshokin/authgate/internal/utils"
)

// errProbe is the generic probe failure used across tests.
var errProbe = errors.New("probe failed")

// fakeElement records interactions for assertions.
type fakeElement struct {
	visible    bool
	visibleErr error
	clickErr   error
	selectErr  error
	inputErr   error

	clicks      int
	selectAlls  int
	typedRunes  []string
	typedResult string
}

func (e *fakeElement) Visible() (bool, error) {
	return e.visible, e.visibleErr
}

func (e *fakeElement) Click() error {
	e.clicks++

	return e.clickErr
}

func (e *fakeElement) SelectAllText() error {
	e.selectAlls++

	return e.selectErr
}

func (e *fakeElement) Input(text string) error {
	if e.inputErr != nil {
		return e.inputErr
	}

	e.typedRunes = append(e.typedRunes, text)
	e.typedResult += text

	return nil
}

// fakePage is a scriptable Page: selectors map to elements, the current URL
// can change over successive reads, and every operation can be forced to fail.
type fakePage struct {
	elements map[string]*fakeElement
	probeErr map[string]error

	urls       []string
	urlReads   int
	currentErr error

	cookies    []Cookie
	cookiesErr error

	navigated   []string
	navigateErr error
	stableErr   error

	enterPresses     int
	enterErr         error
	backspacePresses int

	closed int
}

func (p *fakePage) Navigate(url string) error {
	if p.navigateErr != nil {
		return p.navigateErr
	}

	p.navigated = append(p.navigated, url)

	return nil
}

func (p *fakePage) WaitStable(_ time.Duration) error {
	return p.stableErr
}

func (p *fakePage) CurrentURL() (string, error) {
	if p.currentErr != nil {
		return "", p.currentErr
	}

	if len(p.urls) == 0 {
		return "", nil
	}

	index := p.urlReads
	if index >= len(p.urls) {
		index = len(p.urls) - 1
	}

	p.urlReads++

	return p.urls[index], nil
}

func (p *fakePage) Probe(selector string) (Element, bool, error) {
	if err, ok := p.probeErr[selector]; ok {
		return nil, false, err
	}

	element, ok := p.elements[selector]
	if !ok {
		return nil, false, nil
	}

	return element, true, nil
}

func (p *fakePage) Cookies() ([]Cookie, error) {
	if p.cookiesErr != nil {
		return nil, p.cookiesErr
	}

	return p.cookies, nil
}

func (p *fakePage) ViewportSize() (int, int, error) {
	return 0, 0, errProbe
}

func (p *fakePage) MoveMouse(_, _ float64) error { return nil }

func (p *fakePage) Scroll(_ float64) error { return nil }

func (p *fakePage) PressEnter() error {
	p.enterPresses++

	return p.enterErr
}

func (p *fakePage) PressBackspace() error {
	p.backspacePresses++

	return nil
}

func (p *fakePage) Close() error {
	p.closed++

	return nil
}

// fakeContext is a scriptable BrowsingContext.
type fakeContext struct {
	page    *fakePage
	pageErr error
	closed  int
}

func (c *fakeContext) NewPage(_ context.Context, _ utils.Fingerprint) (Page, error) {
	if c.pageErr != nil {
		return nil, c.pageErr
	}

	return c.page, nil
}

func (c *fakeContext) Close() error {
	c.closed++

	return nil
}

// fakeBrowser is a scriptable Browser.
type fakeBrowser struct {
	context    *fakeContext
	contextErr error
	probeErr   error
	closed     int
}

func (b *fakeBrowser) NewContext(_ context.Context) (BrowsingContext, error) {
	if b.contextErr != nil {
		return nil, b.contextErr
	}

	return b.context, nil
}

func (b *fakeBrowser) Probe(_ context.Context) error {
	return b.probeErr
}

func (b *fakeBrowser) Close() error {
	b.closed++

	return nil
}

// fakeConnector hands out a pre-built browser or fails.
type fakeConnector struct {
	browser *fakeBrowser
	err     error
}

func (c *fakeConnector) Connect(_ context.Context, _ string) (Browser, error) {
	if c.err != nil {
		return nil, c.err
	}

	return c.browser, nil
}
