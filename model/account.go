package model

import "fmt"

type Account struct {
	AccountID int    `json:"account_id"`
	OwnerName string `json:"owner_name"`
	Balance   int    `json:"balance"`
	UniqueID  int    `json:"unique_id"`
}

// Deposit adds amount to the balance. The amount is not checked.
func (a *Account) Deposit(amount int) {
	a.Balance += amount
}

// Withdraw subtracts amount when the balance covers it and reports whether it did.
func (a *Account) Withdraw(amount int) bool {
	if a.Balance >= amount {
		a.Balance -= amount
		return true
	}
	return false
}

func (a Account) String() string {
	return fmt.Sprintf("Account ID: %d  Name: %s  Balance: %d  Unique ID: %d",
		a.AccountID, a.OwnerName, a.Balance, a.UniqueID)
}
