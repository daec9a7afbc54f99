package repository

import (
	"fmt"
	"strconv"
	"strings"

	"go-bank-ledger/model"
)

// EncodeAccount renders an account as one line of the account file, without
// the trailing newline: "accountID ownerName balance uniqueID".
func EncodeAccount(a *model.Account) string {
	return fmt.Sprintf("%d %s %d %d", a.AccountID, a.OwnerName, a.Balance, a.UniqueID)
}

// DecodeAccount parses a line produced by EncodeAccount. The first token is the
// account ID and the last two are balance and unique ID; everything between
// them is the owner name, so names containing spaces decode correctly.
func DecodeAccount(line string) (*model.Account, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return nil, fmt.Errorf("expected at least 4 fields, got %d", len(fields))
	}

	accountID, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("account ID %q: %w", fields[0], err)
	}
	n := len(fields)
	balance, err := strconv.Atoi(fields[n-2])
	if err != nil {
		return nil, fmt.Errorf("balance %q: %w", fields[n-2], err)
	}
	uniqueID, err := strconv.Atoi(fields[n-1])
	if err != nil {
		return nil, fmt.Errorf("unique ID %q: %w", fields[n-1], err)
	}

	return &model.Account{
		AccountID: accountID,
		OwnerName: strings.Join(fields[1:n-2], " "),
		Balance:   balance,
		UniqueID:  uniqueID,
	}, nil
}
