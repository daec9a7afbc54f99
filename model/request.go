// file: model/request.go

package model

// CreateAccountRequest carries the operator input for opening an account.
// -1 is a valid initial balance; it is only a cancel sentinel at the account ID prompt.
type CreateAccountRequest struct {
	AccountID      int    `validate:"min=0"`
	OwnerName      string `validate:"required,alphaspace"`
	InitialBalance int    `validate:"min=-1"`
}
