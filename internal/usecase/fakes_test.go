package usecase

import (
	"context"
	"errors"
	"time"

	"fizzo-agent/internal/config"
	"fizzo-agent/internal/ports"
	"fizzo-agent/internal/selector"
)

func testConfig() *config.Config {
	return &config.Config{
		AppConfig:    &config.AppConfig{LogLevel: "debug"},
		ServerConfig: &config.ServerConfig{},
		BrowserConfig: &config.BrowserConfig{
			ScreenshotDir: "/tmp",
			Screenshots:   false,
		},
		FizzoConfig: &config.FizzoConfig{
			LoginURL:         "https://fizzo.org/login",
			MaxLoginRetries:  3,
			RetryBaseDelay:   time.Millisecond,
			FormSettleDelay:  0,
			LoginSettleDelay: 0,
			ClickSettleDelay: 0,
			SelectorTimeout:  10,
			MinChapterLength: 1000,
			MaxChapterLength: 60000,
		},
	}
}

type fakeElement struct {
	attrs  map[string]string
	text   string
	title  *fakeElement
	filled string
}

func (e *fakeElement) GetAttribute(name string) (string, error) {
	return e.attrs[name], nil
}

func (e *fakeElement) TextContent() (string, error) {
	return e.text, nil
}

func (e *fakeElement) Query(sel string) (ports.Element, error) {
	if sel == selector.NovelTitle && e.title != nil {
		return e.title, nil
	}

	return nil, errors.New("no match")
}

func (e *fakeElement) Fill(value string) error {
	e.filled = value

	return nil
}

func (e *fakeElement) Click() error {
	return nil
}

// fakeBrowser is an in-memory BrowserManager. Page state is a visibility
// map plus an element map; hooks let tests flip state on click or on the
// nth navigation.
type fakeBrowser struct {
	visible    map[string]bool
	elements   map[string][]ports.Element
	currentURL string

	launchErr error
	navErr    error

	launches    int
	closes      int
	navigations int
	clicks      []string
	pressed     []string
	fills       map[string]string

	onClick    func(selector string)
	onNavigate func(n int)

	ready bool
}

func newFakeBrowser() *fakeBrowser {
	return &fakeBrowser{
		visible:  make(map[string]bool),
		elements: make(map[string][]ports.Element),
		fills:    make(map[string]string),
	}
}

func (b *fakeBrowser) Launch(context.Context) error {
	b.launches++

	if b.launchErr != nil {
		return b.launchErr
	}

	b.ready = true

	return nil
}

func (b *fakeBrowser) Close(context.Context) error {
	b.closes++
	b.ready = false

	return nil
}

func (b *fakeBrowser) Navigate(context.Context, string) error {
	b.navigations++

	if b.onNavigate != nil {
		b.onNavigate(b.navigations)
	}

	return b.navErr
}

func (b *fakeBrowser) IsVisible(_ context.Context, sel string, _ int) bool {
	return b.visible[sel]
}

func (b *fakeBrowser) Click(_ context.Context, sel string) error {
	b.clicks = append(b.clicks, sel)

	if b.onClick != nil {
		b.onClick(sel)
	}

	return nil
}

func (b *fakeBrowser) Fill(_ context.Context, sel, value string) error {
	b.fills[sel] = value

	return nil
}

func (b *fakeBrowser) Press(_ context.Context, key string) error {
	b.pressed = append(b.pressed, key)

	return nil
}

func (b *fakeBrowser) QueryAll(_ context.Context, sel string) ([]ports.Element, error) {
	return b.elements[sel], nil
}

func (b *fakeBrowser) CurrentURL(context.Context) string {
	return b.currentURL
}

func (b *fakeBrowser) Screenshot(context.Context, string) error {
	return nil
}

func (b *fakeBrowser) IsReady() bool {
	return b.ready
}

type fakeFactory struct {
	browser *fakeBrowser
	calls   int
}

func (f *fakeFactory) NewBrowser() ports.BrowserManager {
	f.calls++

	return f.browser
}

// loginFormVisible marks the direct credential form (no interstitial) with a
// clickable submit control; clicking it reveals the dashboard marker.
func loginFormVisible(b *fakeBrowser) {
	b.visible[`input[type="email"]`] = true
	b.visible[`input[type="password"]`] = true
	b.visible[`button:has-text("Lanjut")`] = true

	b.onClick = func(sel string) {
		if sel == `button:has-text("Lanjut")` {
			b.visible[`text="Dashboard"`] = true
		}
	}
}

func novelItem(id, title string) *fakeElement {
	return &fakeElement{
		attrs: map[string]string{"href": "/novel/" + id + "/edit"},
		title: &fakeElement{text: title},
	}
}
