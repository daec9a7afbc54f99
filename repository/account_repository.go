package repository

import (
	"context"
	"database/sql"
	"fmt"
	"go-bank-ledger/common"
	"go-bank-ledger/logger"
	"go-bank-ledger/model"

	"github.com/sirupsen/logrus"
)

// IAccountRepository defines the contract for persisting the account set.
type IAccountRepository interface {
	LoadAccounts(ctx context.Context) ([]*model.Account, error)
	SaveAccounts(ctx context.Context, accounts []*model.Account) error
	AppendAccount(ctx context.Context, account *model.Account) error
}

var (
	_ IAccountRepository = (*FileRepository)(nil)
	_ IAccountRepository = (*AccountRepository)(nil)
	_ IAccountRepository = (*RedisRepository)(nil)
)

// AccountRepository stores accounts in PostgreSQL. Rows are kept in insertion
// order through the seq column, like lines in the account file.
type AccountRepository struct {
	DB *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{DB: db}
}

// LoadAccounts retrieves all account rows in insertion order.
func (r *AccountRepository) LoadAccounts(ctx context.Context) ([]*model.Account, error) {
	log := logger.Log
	log.Info("Executing query to load all accounts")

	query := `SELECT account_id, owner_name, balance, unique_id FROM accounts ORDER BY seq`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for all accounts")
		return nil, fmt.Errorf("%w: %v", common.ErrFileUnavailable, err)
	}
	defer rows.Close()

	var accounts []*model.Account
	for rows.Next() {
		var acc model.Account
		if err := rows.Scan(&acc.AccountID, &acc.OwnerName, &acc.Balance, &acc.UniqueID); err != nil {
			log.WithError(err).Error("Failed to scan account row")
			return nil, fmt.Errorf("%w: %v", common.ErrFileUnavailable, err)
		}
		accounts = append(accounts, &acc)
	}
	if err := rows.Err(); err != nil {
		log.WithError(err).Error("Failed to iterate account rows")
		return nil, fmt.Errorf("%w: %v", common.ErrFileUnavailable, err)
	}
	return accounts, nil
}

// SaveAccounts replaces the table contents with accounts in a single transaction.
func (r *AccountRepository) SaveAccounts(ctx context.Context, accounts []*model.Account) error {
	log := logger.Log.WithField("count", len(accounts))
	log.Info("Executing transaction to rewrite all accounts")

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.WithError(err).Error("Failed to begin transaction")
		return fmt.Errorf("%w: %v", common.ErrFileUnavailable, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM accounts`); err != nil {
		log.WithError(err).Error("Failed to clear accounts table")
		return fmt.Errorf("%w: %v", common.ErrFileUnavailable, err)
	}

	query := `INSERT INTO accounts (account_id, owner_name, balance, unique_id) VALUES ($1, $2, $3, $4)`
	for _, acc := range accounts {
		if _, err := tx.ExecContext(ctx, query, acc.AccountID, acc.OwnerName, acc.Balance, acc.UniqueID); err != nil {
			log.WithError(err).WithField("account_id", acc.AccountID).Error("Failed to insert account row")
			return fmt.Errorf("%w: %v", common.ErrFileUnavailable, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.WithError(err).Error("Failed to commit account rewrite")
		return fmt.Errorf("%w: %v", common.ErrFileUnavailable, err)
	}
	return nil
}

// AppendAccount inserts a single account row.
func (r *AccountRepository) AppendAccount(ctx context.Context, account *model.Account) error {
	log := logger.Log.WithFields(logrus.Fields{
		"account_id": account.AccountID,
		"unique_id":  account.UniqueID,
	})
	log.Info("Executing query to append a new account")

	query := `INSERT INTO accounts (account_id, owner_name, balance, unique_id) VALUES ($1, $2, $3, $4)`
	if _, err := r.DB.ExecContext(ctx, query, account.AccountID, account.OwnerName, account.Balance, account.UniqueID); err != nil {
		log.WithError(err).Error("Failed to execute append account query")
		return fmt.Errorf("%w: %v", common.ErrFileUnavailable, err)
	}
	return nil
}
