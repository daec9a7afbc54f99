package handler

import (
	"context"
	"errors"
	"io"

	"go-bank-ledger/common"
)

// HandlerFunc runs one menu operation.
type HandlerFunc func(ctx context.Context) *common.AppError

// ErrorHandlingMiddleware reports a failed operation to out. Closed input is
// passed through unreported so the menu loop can shut down.
func ErrorHandlingMiddleware(out io.Writer, next HandlerFunc) HandlerFunc {
	return func(ctx context.Context) *common.AppError {
		err := next(ctx)
		if err != nil && !errors.Is(err, io.EOF) {
			err.Report(out)
		}
		return err
	}
}

func inputClosed(err error) *common.AppError {
	return common.NewAppError(io.EOF, "Input closed.", err)
}
