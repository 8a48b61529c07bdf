package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"fizzo-agent/internal/config"
	"fizzo-agent/internal/entity"
	"fizzo-agent/internal/ports"
	"fizzo-agent/internal/selector"
	"fizzo-agent/pkg/apperr"
	"fizzo-agent/pkg/logg"
	"fizzo-agent/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const loginFailedMessage = "login failed after repeated attempts"

// loginFlow drives one browser through the multi-step login sequence:
// navigate, dismiss the email interstitial if the site presents one, enter
// credentials, submit, verify. The whole sequence is retried as a unit;
// page state is not reset between attempts because the re-navigation in
// step one re-establishes a clean starting point.
type loginFlow struct {
	config   *config.Config
	logger   *zap.Logger
	tracer   trace.Tracer
	browser  ports.BrowserManager
	resolver *selector.Resolver
	snapTag  string
}

func newLoginFlow(conf *config.Config, logger *zap.Logger, tracer trace.Tracer, browser ports.BrowserManager, snapTag string) *loginFlow {
	return &loginFlow{
		config:   conf,
		logger:   logger,
		tracer:   tracer,
		browser:  browser,
		resolver: selector.NewResolver(browser, logger, conf.FizzoConfig.SelectorTimeout),
		snapTag:  snapTag,
	}
}

// Run retries the login sequence up to the configured bound with linearly
// increasing backoff. Returns nil once a success signal fires, or an
// auth_failed error when every attempt is exhausted.
func (f *loginFlow) Run(ctx context.Context, creds entity.Credentials) (err error) {
	const op = "Login"
	logger := f.logger.With(
		zap.String(logg.Operation, op),
		zap.String(logg.User, logg.MaskIdentity(creds.Identity)))

	ctx, step := tracing.StartSpan(ctx, f.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	maxRetries := f.config.FizzoConfig.MaxLoginRetries

	for retry := 0; retry < maxRetries; retry++ {
		attempt := entity.NewSessionAttempt(retry + 1)
		attemptLogger := logger.With(
			zap.Int(logg.Attempt, attempt.Number),
			zap.String(logg.AttemptID, attempt.ID.String()))

		step.AddEvent("login attempt", attribute.Int("attempt", attempt.Number))
		attemptLogger.Info("Starting login attempt")

		attemptErr := f.attempt(ctx, creds, attempt)
		if attemptErr == nil {
			attempt.State = entity.LoginStateSucceeded
			attemptLogger.Info("Login succeeded")

			return nil
		}

		attempt.State = entity.LoginStateFailed
		attemptLogger.Warn("Login attempt failed", zap.Error(attemptErr))

		if retry < maxRetries-1 {
			backoff := time.Duration(retry+1) * f.config.FizzoConfig.RetryBaseDelay
			attemptLogger.Info("Waiting before next attempt", zap.Duration("backoff", backoff))
			time.Sleep(backoff)
		}
	}

	return apperr.Wrap(op, apperr.CodeAuthFailed, errors.New(loginFailedMessage), map[string]any{
		apperr.MetaReason:  "retries_exhausted",
		apperr.MetaStage:   apperr.StageLogin,
		apperr.MetaAttempt: maxRetries,
	})
}

// attempt is one pass through the login sequence. Any error fails only this
// attempt; the caller decides whether to retry.
func (f *loginFlow) attempt(ctx context.Context, creds entity.Credentials, attempt *entity.SessionAttempt) (err error) {
	const op = "loginAttempt"
	logger := f.logger.With(zap.String(logg.Operation, op), zap.Int(logg.Attempt, attempt.Number))

	ctx, step := tracing.StartSpan(ctx, f.tracer, logger, op, attribute.Int("attempt", attempt.Number))
	defer func() {
		step.End(err)
	}()

	// Step 1: navigation. Load completion from the capability is not fully
	// trusted for this dynamically rendered UI, hence the settle delay.
	step.AddEvent("navigating to login page")

	if err := f.browser.Navigate(ctx, f.config.FizzoConfig.LoginURL); err != nil {
		return err
	}
	attempt.State = entity.LoginStateNavigated

	time.Sleep(f.config.FizzoConfig.FormSettleDelay)
	f.snapshot(ctx, fmt.Sprintf("%s_login_attempt%d", f.snapTag, attempt.Number))

	// Step 2: the site sometimes interposes a "continue with email" choice.
	// Absence means the credential form is already showing.
	step.AddEvent("dismissing email interstitial")

	if f.resolver.ResolveAndClick(ctx, selector.EmailInterstitial) {
		logger.Info("Email interstitial dismissed")
		time.Sleep(f.config.FizzoConfig.ClickSettleDelay)
	}
	attempt.State = entity.LoginStateInterstitialHandled

	// Steps 3-4: credential entry.
	step.AddEvent("entering credentials")

	if err := f.fillCredentialField(ctx, selector.EmailField, creds.Identity, 0); err != nil {
		return err
	}

	if err := f.fillCredentialField(ctx, selector.PasswordField, creds.Secret, 1); err != nil {
		return err
	}
	attempt.State = entity.LoginStateCredentialsEntered

	// Step 5: submit, falling back to the keyboard when no control resolves.
	step.AddEvent("submitting login form")

	if f.resolver.ResolveAndClick(ctx, selector.SubmitControl) {
		logger.Info("Submit control clicked")
	} else {
		logger.Info("No submit control found, pressing Enter")

		if err := f.browser.Press(ctx, "Enter"); err != nil {
			return err
		}
	}
	attempt.State = entity.LoginStateSubmitted

	// Step 6: settle while the client-side redirect runs.
	time.Sleep(f.config.FizzoConfig.LoginSettleDelay)
	f.snapshot(ctx, fmt.Sprintf("%s_after_login%d", f.snapTag, attempt.Number))

	// Step 7: success verification, either signal sufficient.
	attempt.State = entity.LoginStateVerifying
	step.AddEvent("verifying login")

	if f.verified(ctx, logger) {
		return nil
	}

	return apperr.WrapErrorWithReason(op, apperr.CodeAuthFailed, "no_success_signal")
}

// fillCredentialField resolves the candidate set for one credential role and
// fills it. When no candidate resolves, the fallback is the nth visible
// input on the page.
func (f *loginFlow) fillCredentialField(ctx context.Context, set selector.CandidateSet, value string, fallbackIndex int) error {
	const op = "fillCredentialField"

	if f.resolver.ResolveAndFill(ctx, set, value) {
		return nil
	}

	f.logger.Info("No candidate resolved, falling back to visible inputs",
		zap.String(logg.Role, set.Role))

	inputs, err := f.browser.QueryAll(ctx, selector.VisibleInputs)
	if err == nil && len(inputs) > fallbackIndex {
		if fillErr := inputs[fallbackIndex].Fill(value); fillErr == nil {
			return nil
		}
	}

	return apperr.ElementNotFound(op, set.Role)
}

// verified checks the two independent success signals: a known post-login
// URL fragment, or any authenticated-only UI marker.
func (f *loginFlow) verified(ctx context.Context, logger *zap.Logger) bool {
	currentURL := f.browser.CurrentURL(ctx)
	logger.Info("URL after login", zap.String(logg.URL, currentURL))

	for _, fragment := range selector.SuccessPathFragments {
		if strings.Contains(currentURL, fragment) {
			logger.Info("Login verified by URL fragment", zap.String("fragment", fragment))

			return true
		}
	}

	if marker, ok := f.resolver.Resolve(ctx, selector.DashboardMarkers); ok {
		logger.Info("Login verified by dashboard marker", zap.String(logg.Selector, marker))

		return true
	}

	return false
}

// snapshot captures a diagnostic screenshot. Strictly best-effort: failures
// are logged and swallowed, never allowed to affect the login flow.
func (f *loginFlow) snapshot(ctx context.Context, name string) {
	if !f.config.BrowserConfig.Screenshots {
		return
	}

	path := filepath.Join(f.config.BrowserConfig.ScreenshotDir, name+".jpg")

	if err := f.browser.Screenshot(ctx, path); err != nil {
		f.logger.Debug("Snapshot capture failed", zap.String("path", path), zap.Error(err))

		return
	}

	f.logger.Info("Snapshot captured", zap.String("path", path))
}
