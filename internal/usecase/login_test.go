package usecase

import (
	"context"
	"errors"
	"testing"

	"fizzo-agent/internal/entity"
	"fizzo-agent/internal/ports"
	"fizzo-agent/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var testCreds = entity.Credentials{Identity: "u@x.com", Secret: "p"}

func newTestFlow(b *fakeBrowser) *loginFlow {
	b.ready = true

	return newLoginFlow(testConfig(), zap.NewNop(), otel.Tracer("test"), b, "test")
}

func TestLoginFlow_DirectFormSucceeds(t *testing.T) {
	browser := newFakeBrowser()
	loginFormVisible(browser)
	flow := newTestFlow(browser)

	err := flow.Run(context.Background(), testCreds)

	require.NoError(t, err)
	assert.Equal(t, 1, browser.navigations)
	assert.Equal(t, "u@x.com", browser.fills[`input[type="email"]`])
	assert.Equal(t, "p", browser.fills[`input[type="password"]`])
	assert.Contains(t, browser.clicks, `button:has-text("Lanjut")`)
}

func TestLoginFlow_InterstitialDismissedFirst(t *testing.T) {
	browser := newFakeBrowser()
	browser.visible[`text="Lanjutkan dengan Email"`] = true
	loginFormVisible(browser)
	flow := newTestFlow(browser)

	err := flow.Run(context.Background(), testCreds)

	require.NoError(t, err)
	assert.Equal(t, `text="Lanjutkan dengan Email"`, browser.clicks[0])
}

func TestLoginFlow_SubmitFallsBackToEnter(t *testing.T) {
	browser := newFakeBrowser()
	browser.visible[`input[type="email"]`] = true
	browser.visible[`input[type="password"]`] = true
	browser.currentURL = "https://fizzo.org/mobile/dashboard"
	flow := newTestFlow(browser)

	err := flow.Run(context.Background(), testCreds)

	require.NoError(t, err)
	assert.Contains(t, browser.pressed, "Enter")
	assert.Empty(t, browser.clicks)
}

func TestLoginFlow_VerifiedByURLFragment(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{name: "dashboard path", url: "https://fizzo.org/dashboard", want: true},
		{name: "mobile path", url: "https://fizzo.org/mobile/write", want: true},
		{name: "home path", url: "https://fizzo.org/home", want: true},
		{name: "still on login", url: "https://fizzo.org/login", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			browser := newFakeBrowser()
			browser.visible[`input[type="email"]`] = true
			browser.visible[`input[type="password"]`] = true
			browser.currentURL = tt.url
			flow := newTestFlow(browser)

			err := flow.Run(context.Background(), testCreds)

			if tt.want {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLoginFlow_CredentialFallbackToVisibleInputs(t *testing.T) {
	first := &fakeElement{}
	second := &fakeElement{}
	browser := newFakeBrowser()
	browser.elements[`input:visible`] = []ports.Element{first, second}
	browser.currentURL = "https://fizzo.org/home"
	flow := newTestFlow(browser)

	err := flow.Run(context.Background(), testCreds)

	require.NoError(t, err)
	assert.Equal(t, "u@x.com", first.filled)
	assert.Equal(t, "p", second.filled)
}

func TestLoginFlow_SecretFieldNeedsSecondInput(t *testing.T) {
	// One visible input covers the identity fallback but not the secret.
	browser := newFakeBrowser()
	browser.elements[`input:visible`] = []ports.Element{&fakeElement{}}
	flow := newTestFlow(browser)

	err := flow.Run(context.Background(), testCreds)

	require.Error(t, err)
	assert.Equal(t, apperr.CodeAuthFailed, apperr.CodeOf(err))
}

func TestLoginFlow_RetryBound(t *testing.T) {
	// Credential form never renders: every attempt fails, navigation runs
	// exactly once per attempt, and the flow ends with auth_failed.
	browser := newFakeBrowser()
	flow := newTestFlow(browser)

	err := flow.Run(context.Background(), testCreds)

	require.Error(t, err)
	assert.Equal(t, 3, browser.navigations)
	assert.Equal(t, apperr.CodeAuthFailed, apperr.CodeOf(err))
}

func TestLoginFlow_SucceedsOnSecondAttempt(t *testing.T) {
	browser := newFakeBrowser()
	browser.onNavigate = func(n int) {
		if n == 2 {
			loginFormVisible(browser)
		}
	}
	flow := newTestFlow(browser)

	err := flow.Run(context.Background(), testCreds)

	require.NoError(t, err)
	assert.Equal(t, 2, browser.navigations)
}

func TestLoginFlow_NavigationErrorRetries(t *testing.T) {
	browser := newFakeBrowser()
	browser.navErr = errors.New("net::ERR_CONNECTION_RESET")
	flow := newTestFlow(browser)

	err := flow.Run(context.Background(), testCreds)

	require.Error(t, err)
	assert.Equal(t, 3, browser.navigations)
}
