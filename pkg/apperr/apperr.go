package apperr

import (
	"errors"
	"fmt"
)

const (
	MetaReason   = "reason"
	MetaStage    = "stage"
	MetaField    = "field"
	MetaRole     = "role"
	MetaAttempt  = "attempt"
	MetaSelector = "selector"
	MetaURL      = "url"

	StageBrowser     = "browser"
	StageNavigation  = "navigation"
	StageInteraction = "interaction"
	StageLogin       = "login"
	StageExtraction  = "extraction"
	StagePublish     = "publish"
	StageScreenshot  = "screenshot"

	CodeInternal        = "internal"
	CodeInvalidArgument = "invalid_argument"
	CodeNotFound        = "not_found"
	CodeTimeout         = "timeout"
	CodeBrowserNotReady = "browser_not_ready"
	CodeActionFailed    = "action_failed"
	CodeElementNotFound = "element_not_found"
	CodeAuthFailed      = "auth_failed"
)

type Error struct {
	Op       string
	Code     string
	Err      error
	Metadata map[string]any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}

	return e.Op
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Wrap(op, code string, err error, metadata map[string]any) error {
	if metadata == nil {
		metadata = make(map[string]any)
	}

	return &Error{
		Op:       op,
		Code:     code,
		Err:      err,
		Metadata: metadata,
	}
}

func WrapWithReason(op, code string, err error, reason string) error {
	return Wrap(op, code, err, map[string]any{
		MetaReason: reason,
	})
}

func WrapErrorWithReason(op, code, reason string) error {
	return Wrap(op, code, errors.New(reason), map[string]any{
		MetaReason: reason,
	})
}

func InvalidReqError(op, field string, err error) error {
	return Wrap(op, CodeInvalidArgument, err, map[string]any{
		MetaField:  field,
		MetaReason: "invalid_request",
	})
}

// ElementNotFound marks a required UI role that no candidate selector or
// fallback could resolve. Eligible for a login retry.
func ElementNotFound(op, role string) error {
	return Wrap(op, CodeElementNotFound, fmt.Errorf("%s not found", role), map[string]any{
		MetaRole:   role,
		MetaReason: "element_not_found",
	})
}

// CodeOf extracts the code from an error produced by this package,
// or CodeInternal for anything else.
func CodeOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}

	return CodeInternal
}
