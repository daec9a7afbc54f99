package common

import (
	"errors"
	"fmt"
	"io"

	"go-bank-ledger/logger"

	"github.com/sirupsen/logrus"
)

var (
	ErrNotFound          = errors.New("account not found")
	ErrDuplicate         = errors.New("account ID already exists")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrFileUnavailable   = errors.New("account file unavailable")
	ErrNoAccounts        = errors.New("no accounts registered")
	ErrUniqueIDExhausted = errors.New("no unique ID available")
)

// AppError is a failure ready to be shown to the operator. Kind is one of the
// sentinels above, Err the underlying cause (logged, never printed).
type AppError struct {
	Kind    error
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() []error {
	var errs []error
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func NewAppError(kind error, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Report logs the internal error, if any, and prints the message to w.
func (e *AppError) Report(w io.Writer) {
	if e.Err != nil {
		fields := logrus.Fields{"internal_error": e.Err.Error()}
		if e.Kind != nil {
			fields["kind"] = e.Kind.Error()
		}
		logger.Log.WithFields(fields).Error(e.Message)
	}

	fmt.Fprintln(w, e.Message)
}
