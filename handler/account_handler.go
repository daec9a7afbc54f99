package handler

import (
	"context"
	"errors"

	"go-bank-ledger/common"
	"go-bank-ledger/logger"
	"go-bank-ledger/model"
	"go-bank-ledger/service"
)

// cancelAccountID at the account ID prompt aborts opening an account.
const cancelAccountID = -1

type AccountHandler struct {
	service *service.AccountService
	console *Console
}

func NewAccountHandler(service *service.AccountService, console *Console) *AccountHandler {
	return &AccountHandler{service: service, console: console}
}

// OpenAccount prompts for an account ID, owner name and initial balance,
// reprompting until each one is valid, and creates the account.
func (h *AccountHandler) OpenAccount(ctx context.Context) *common.AppError {
	h.console.Println("[Open Account]")

	var req model.CreateAccountRequest
	for {
		id, err := h.console.ReadInt("Account ID (-1 to cancel): ")
		if err != nil && !errors.Is(err, common.ErrInvalidInput) {
			return inputClosed(err)
		}
		if err != nil || id < cancelAccountID {
			h.console.Println("Please enter a valid integer.")
			continue
		}
		if id == cancelAccountID {
			h.console.Println("Account creation cancelled.")
			return nil
		}
		if h.service.Exists(id) {
			h.console.Println("Account ID already exists. Please enter another one.")
			continue
		}
		req.AccountID = id
		break
	}

	for {
		line, err := h.console.ReadLine("Name: ")
		if err != nil {
			return inputClosed(err)
		}
		name := common.NormalizeName(line)
		if name == "" || !common.IsValidName(line) {
			h.console.Println("Please enter a valid name (letters and spaces only).")
			continue
		}
		req.OwnerName = name
		break
	}

	for {
		balance, err := h.console.ReadInt("Initial deposit: ")
		if err != nil && !errors.Is(err, common.ErrInvalidInput) {
			return inputClosed(err)
		}
		if err != nil || balance < -1 {
			h.console.Println("Please enter a valid integer.")
			continue
		}
		req.InitialBalance = balance
		break
	}

	account, err := h.service.Create(ctx, req)
	switch {
	case err == nil:
		h.console.Printf("Account opened. Unique ID: %d\n", account.UniqueID)
		return nil
	case errors.Is(err, common.ErrFileUnavailable):
		h.console.Printf("Account opened. Unique ID: %d\n", account.UniqueID)
		return common.NewAppError(common.ErrFileUnavailable, "Could not open the account file.", err)
	case errors.Is(err, common.ErrDuplicate):
		return common.NewAppError(common.ErrDuplicate, "Account ID already exists.", nil)
	case errors.Is(err, common.ErrUniqueIDExhausted):
		return common.NewAppError(common.ErrUniqueIDExhausted, "No unique ID is available, the account was not opened.", err)
	default:
		return common.NewAppError(common.ErrInvalidInput, "Could not open the account.", err)
	}
}

// Deposit credits an amount to an existing account.
func (h *AccountHandler) Deposit(ctx context.Context) *common.AppError {
	h.console.Println("[Deposit]")

	accountID, appErr := h.readAccountID("Account ID: ")
	if appErr != nil {
		return appErr
	}
	amount, appErr := h.readID("Deposit amount: ")
	if appErr != nil {
		return appErr
	}

	balance, err := h.service.Deposit(accountID, amount)
	if err != nil {
		return notFound(err)
	}
	h.console.Printf("Deposit completed. Current balance: %d\n", balance)
	return nil
}

// Withdraw debits an amount from an existing account when the balance covers it.
func (h *AccountHandler) Withdraw(ctx context.Context) *common.AppError {
	h.console.Println("[Withdraw]")

	accountID, appErr := h.readAccountID("Account ID: ")
	if appErr != nil {
		return appErr
	}
	amount, appErr := h.readID("Withdrawal amount: ")
	if appErr != nil {
		return appErr
	}

	balance, err := h.service.Withdraw(accountID, amount)
	if errors.Is(err, common.ErrInsufficientFunds) {
		return common.NewAppError(common.ErrInsufficientFunds, "Insufficient funds.", nil)
	}
	if err != nil {
		return notFound(err)
	}
	h.console.Printf("Withdrawal completed. Current balance: %d\n", balance)
	return nil
}

// ListAccounts prints every account in store order.
func (h *AccountHandler) ListAccounts(ctx context.Context) *common.AppError {
	accounts, err := h.service.ListAll()
	if errors.Is(err, common.ErrNoAccounts) {
		h.console.Println("No accounts registered.")
		return nil
	}
	if err != nil {
		return common.NewAppError(common.ErrInvalidInput, "Could not list accounts.", err)
	}

	h.console.Println("[All Accounts]")
	for acc := range accounts {
		h.console.Println(acc.String())
	}
	return nil
}

// DeleteAccount removes an account by ID.
func (h *AccountHandler) DeleteAccount(ctx context.Context) *common.AppError {
	h.console.Println("[Delete Account]")

	accountID, appErr := h.readID("Account ID to delete: ")
	if appErr != nil {
		return appErr
	}
	if err := h.service.Delete(accountID); err != nil {
		return notFound(err)
	}
	h.console.Println("Account deleted.")
	return nil
}

// Exit rewrites the storage with the current accounts. A failed save is
// reported but does not keep the program running.
func (h *AccountHandler) Exit(ctx context.Context) *common.AppError {
	defer h.console.Println("Exiting the program.")

	if err := h.service.Save(ctx); err != nil {
		return common.NewAppError(common.ErrFileUnavailable, "Could not open the account file.", err)
	}
	logger.Log.Info("Accounts saved on exit")
	return nil
}

// readID reads an integer, an account ID or an amount, without checking that
// any account exists.
func (h *AccountHandler) readID(prompt string) (int, *common.AppError) {
	id, err := h.console.ReadInt(prompt)
	if errors.Is(err, common.ErrInvalidInput) {
		return 0, common.NewAppError(common.ErrInvalidInput, "Please enter a valid integer.", nil)
	}
	if err != nil {
		return 0, inputClosed(err)
	}
	return id, nil
}

// readAccountID reads an account ID and fails early when no such account exists.
func (h *AccountHandler) readAccountID(prompt string) (int, *common.AppError) {
	id, appErr := h.readID(prompt)
	if appErr != nil {
		return 0, appErr
	}
	if !h.service.Exists(id) {
		return 0, notFound(common.ErrNotFound)
	}
	return id, nil
}

func notFound(err error) *common.AppError {
	if errors.Is(err, common.ErrNotFound) {
		return common.NewAppError(common.ErrNotFound, "Account ID does not exist.", nil)
	}
	return common.NewAppError(common.ErrInvalidInput, "The operation failed.", err)
}
