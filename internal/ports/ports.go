package ports

import (
	"context"
)

// BrowserManager is the rendered-page capability the automation drives. Every
// call is fallible and possibly slow; visibility checks carry their own
// bounded timeout so an absent element degrades to a negative answer rather
// than blocking.
type BrowserManager interface {
	Launch(ctx context.Context) error
	Close(ctx context.Context) error
	Navigate(ctx context.Context, url string) error
	IsVisible(ctx context.Context, selector string, timeoutMs int) bool
	Click(ctx context.Context, selector string) error
	Fill(ctx context.Context, selector string, value string) error
	Press(ctx context.Context, key string) error
	QueryAll(ctx context.Context, selector string) ([]Element, error)
	CurrentURL(ctx context.Context) string
	Screenshot(ctx context.Context, path string) error
	IsReady() bool
}

// Element is a handle to one matched DOM node.
type Element interface {
	GetAttribute(name string) (string, error)
	TextContent() (string, error)
	Query(selector string) (Element, error)
	Fill(value string) error
	Click() error
}

// BrowserFactory hands out a fresh, unlaunched manager. Each public
// invocation owns exactly one manager for its lifetime, so concurrent
// invocations never share page state.
type BrowserFactory interface {
	NewBrowser() BrowserManager
}
