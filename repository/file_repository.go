package repository

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go-bank-ledger/common"
	"go-bank-ledger/logger"
	"go-bank-ledger/model"

	"github.com/sirupsen/logrus"
)

// FileRepository keeps accounts in a plain text file, one account per line.
type FileRepository struct {
	Path string
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{Path: path}
}

// LoadAccounts reads every well-formed line of the file. A missing file yields
// no accounts and no error; malformed lines are skipped.
func (r *FileRepository) LoadAccounts(ctx context.Context) ([]*model.Account, error) {
	log := logger.Log.WithField("path", r.Path)
	log.Info("Loading accounts from file")

	file, err := os.Open(r.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Info("Account file does not exist, starting empty")
			return nil, nil
		}
		log.WithError(err).Error("Failed to open account file")
		return nil, fmt.Errorf("%w: %v", common.ErrFileUnavailable, err)
	}
	defer file.Close()

	var accounts []*model.Account
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		acc, err := DecodeAccount(line)
		if err != nil {
			log.WithFields(logrus.Fields{"line": lineNo, "error": err}).Warn("Skipping malformed account line")
			continue
		}
		accounts = append(accounts, acc)
	}
	if err := scanner.Err(); err != nil {
		log.WithError(err).Error("Failed to read account file")
		return nil, fmt.Errorf("%w: %v", common.ErrFileUnavailable, err)
	}

	log.WithField("count", len(accounts)).Info("Accounts loaded from file")
	return accounts, nil
}

// SaveAccounts truncates the file and writes every account.
func (r *FileRepository) SaveAccounts(ctx context.Context, accounts []*model.Account) error {
	log := logger.Log.WithFields(logrus.Fields{"path": r.Path, "count": len(accounts)})
	log.Info("Rewriting account file")

	file, err := os.OpenFile(r.Path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		log.WithError(err).Error("Failed to open account file for writing")
		return fmt.Errorf("%w: %v", common.ErrFileUnavailable, err)
	}

	w := bufio.NewWriter(file)
	for _, acc := range accounts {
		if _, err := fmt.Fprintln(w, EncodeAccount(acc)); err != nil {
			file.Close()
			log.WithError(err).Error("Failed to write account line")
			return fmt.Errorf("%w: %v", common.ErrFileUnavailable, err)
		}
	}
	if err := w.Flush(); err != nil {
		file.Close()
		log.WithError(err).Error("Failed to flush account file")
		return fmt.Errorf("%w: %v", common.ErrFileUnavailable, err)
	}
	if err := file.Close(); err != nil {
		log.WithError(err).Error("Failed to close account file")
		return fmt.Errorf("%w: %v", common.ErrFileUnavailable, err)
	}
	return nil
}

// AppendAccount adds one line to the end of the file, creating it if needed.
func (r *FileRepository) AppendAccount(ctx context.Context, account *model.Account) error {
	log := logger.Log.WithFields(logrus.Fields{"path": r.Path, "account_id": account.AccountID})
	log.Info("Appending account to file")

	file, err := os.OpenFile(r.Path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		log.WithError(err).Error("Failed to open account file for append")
		return fmt.Errorf("%w: %v", common.ErrFileUnavailable, err)
	}

	if _, err := fmt.Fprintln(file, EncodeAccount(account)); err != nil {
		file.Close()
		log.WithError(err).Error("Failed to append account line")
		return fmt.Errorf("%w: %v", common.ErrFileUnavailable, err)
	}
	if err := file.Close(); err != nil {
		log.WithError(err).Error("Failed to close account file")
		return fmt.Errorf("%w: %v", common.ErrFileUnavailable, err)
	}
	return nil
}
