// file: service/account_service.go

package service

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"math/rand/v2"
	"slices"
	"sync"

	"go-bank-ledger/common"
	"go-bank-ledger/logger"
	"go-bank-ledger/model"
	"go-bank-ledger/repository"

	"github.com/sirupsen/logrus"
)

// Options tunes unique ID generation. Zero values fall back to DefaultOptions.
type Options struct {
	UniqueIDMin   int
	UniqueIDMax   int
	MaxIDAttempts int
	Rand          *rand.Rand
}

func DefaultOptions() Options {
	return Options{
		UniqueIDMin:   1000,
		UniqueIDMax:   9999,
		MaxIDAttempts: 100000,
	}
}

// AccountService is the in-memory account store. Accounts are kept in creation
// (or load) order and handed out as copies.
type AccountService struct {
	repo repository.IAccountRepository
	opts Options

	mu       sync.Mutex
	accounts []*model.Account

	// saveMu serializes full rewrites of the repository.
	saveMu sync.Mutex
}

func NewAccountService(repo repository.IAccountRepository, opts Options) *AccountService {
	def := DefaultOptions()
	if opts.UniqueIDMin == 0 && opts.UniqueIDMax == 0 {
		opts.UniqueIDMin, opts.UniqueIDMax = def.UniqueIDMin, def.UniqueIDMax
	}
	if opts.MaxIDAttempts <= 0 {
		opts.MaxIDAttempts = def.MaxIDAttempts
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &AccountService{repo: repo, opts: opts}
}

// Load replaces the store with the repository contents. On failure the store
// is left empty and the error is returned for reporting.
func (s *AccountService) Load(ctx context.Context) error {
	loaded, err := s.repo.LoadAccounts(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = nil
	if err != nil {
		return fmt.Errorf("could not load accounts: %w", err)
	}

	for _, acc := range loaded {
		if i := s.indexOf(acc.AccountID); i >= 0 {
			// The append log may still hold a deleted account under the same ID.
			logger.Log.WithField("account_id", acc.AccountID).Warn("Duplicate account ID in storage, keeping the later record")
			s.accounts = slices.Delete(s.accounts, i, i+1)
		}
		if s.uniqueIDTaken(acc.UniqueID) {
			fresh, err := s.generateUniqueID()
			if err != nil {
				s.accounts = nil
				return fmt.Errorf("could not reassign unique ID for account %d: %w", acc.AccountID, err)
			}
			logger.Log.WithFields(logrus.Fields{
				"account_id":    acc.AccountID,
				"old_unique_id": acc.UniqueID,
				"new_unique_id": fresh,
			}).Warn("Unique ID collision in storage, assigned a new one")
			acc.UniqueID = fresh
		}
		cp := *acc
		s.accounts = append(s.accounts, &cp)
	}

	logger.Log.WithField("count", len(s.accounts)).Info("Account store loaded")
	return nil
}

// Save rewrites the whole repository with the current store. Concurrent
// saves run one after the other.
func (s *AccountService) Save(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	snapshot := s.snapshot()
	s.mu.Unlock()

	if err := s.repo.SaveAccounts(ctx, snapshot); err != nil {
		return fmt.Errorf("could not save accounts: %w", err)
	}
	logger.Log.WithField("count", len(snapshot)).Info("Account store saved")
	return nil
}

// GenerateUniqueID draws a unique ID that no account currently holds.
func (s *AccountService) GenerateUniqueID() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generateUniqueID()
}

func (s *AccountService) generateUniqueID() (int, error) {
	lo, hi := s.opts.UniqueIDMin, s.opts.UniqueIDMax
	span := hi - lo + 1

	inRange := 0
	for _, acc := range s.accounts {
		if acc.UniqueID >= lo && acc.UniqueID <= hi {
			inRange++
		}
	}
	if inRange >= span {
		return 0, common.ErrUniqueIDExhausted
	}

	for range s.opts.MaxIDAttempts {
		candidate := lo + s.opts.Rand.IntN(span)
		if !s.uniqueIDTaken(candidate) {
			return candidate, nil
		}
	}
	return 0, fmt.Errorf("%w: gave up after %d attempts", common.ErrUniqueIDExhausted, s.opts.MaxIDAttempts)
}

// FindByAccountID returns a copy of the account with the given ID.
func (s *AccountService) FindByAccountID(accountID int) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(accountID)
	if i < 0 {
		return model.Account{}, common.ErrNotFound
	}
	return *s.accounts[i], nil
}

// Create opens a new account and appends it to the repository. When only the
// append fails, the account is kept in memory, returned, and the error wraps
// common.ErrFileUnavailable.
func (s *AccountService) Create(ctx context.Context, req model.CreateAccountRequest) (model.Account, error) {
	if !common.IsValidName(req.OwnerName) {
		return model.Account{}, fmt.Errorf("%w: owner name %q has characters other than letters and spaces", common.ErrInvalidInput, req.OwnerName)
	}
	req.OwnerName = common.NormalizeName(req.OwnerName)
	if err := common.Validate(req); err != nil {
		return model.Account{}, err
	}

	log := logger.Log.WithFields(logrus.Fields{
		"account_id":      req.AccountID,
		"initial_balance": req.InitialBalance,
	})

	s.mu.Lock()
	if s.indexOf(req.AccountID) >= 0 {
		s.mu.Unlock()
		log.Info("Rejected duplicate account ID")
		return model.Account{}, common.ErrDuplicate
	}
	uniqueID, err := s.generateUniqueID()
	if err != nil {
		s.mu.Unlock()
		log.WithError(err).Error("Failed to generate unique ID")
		return model.Account{}, err
	}
	account := &model.Account{
		AccountID: req.AccountID,
		OwnerName: req.OwnerName,
		Balance:   req.InitialBalance,
		UniqueID:  uniqueID,
	}
	s.accounts = append(s.accounts, account)
	created := *account
	s.mu.Unlock()

	log = log.WithField("unique_id", created.UniqueID)
	log.Info("Account created")

	if err := s.repo.AppendAccount(ctx, &created); err != nil {
		log.WithError(err).Warn("Account created but not appended to storage")
		return created, fmt.Errorf("account %d created but not persisted: %w", created.AccountID, err)
	}
	return created, nil
}

// Deposit adds amount to the account balance and returns the new balance.
func (s *AccountService) Deposit(accountID, amount int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(accountID)
	if i < 0 {
		return 0, common.ErrNotFound
	}
	acc := s.accounts[i]
	acc.Deposit(amount)

	logger.Log.WithFields(logrus.Fields{
		"account_id":  accountID,
		"amount":      amount,
		"new_balance": acc.Balance,
	}).Info("Deposit completed")
	return acc.Balance, nil
}

// Withdraw subtracts amount when the balance covers it and returns the new balance.
func (s *AccountService) Withdraw(accountID, amount int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(accountID)
	if i < 0 {
		return 0, common.ErrNotFound
	}
	acc := s.accounts[i]

	log := logger.Log.WithFields(logrus.Fields{
		"account_id": accountID,
		"amount":     amount,
	})
	if !acc.Withdraw(amount) {
		log.WithField("balance", acc.Balance).Info("Withdrawal rejected, insufficient funds")
		return acc.Balance, common.ErrInsufficientFunds
	}

	log.WithField("new_balance", acc.Balance).Info("Withdrawal completed")
	return acc.Balance, nil
}

// Delete removes the account with the given ID.
func (s *AccountService) Delete(accountID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(accountID)
	if i < 0 {
		return common.ErrNotFound
	}
	s.accounts = slices.Delete(s.accounts, i, i+1)

	logger.Log.WithField("account_id", accountID).Info("Account deleted")
	return nil
}

// ListAll returns a sequence over a snapshot of the store in store order. The
// sequence can be ranged over more than once. An empty store yields
// common.ErrNoAccounts.
func (s *AccountService) ListAll() (iter.Seq[model.Account], error) {
	s.mu.Lock()
	snapshot := s.snapshot()
	s.mu.Unlock()

	if len(snapshot) == 0 {
		return nil, common.ErrNoAccounts
	}
	return func(yield func(model.Account) bool) {
		for _, acc := range snapshot {
			if !yield(*acc) {
				return
			}
		}
	}, nil
}

func (s *AccountService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accounts)
}

// Exists reports whether an account with the given ID is open.
func (s *AccountService) Exists(accountID int) bool {
	_, err := s.FindByAccountID(accountID)
	return !errors.Is(err, common.ErrNotFound)
}

// Assumes s.mu is held.
func (s *AccountService) indexOf(accountID int) int {
	return slices.IndexFunc(s.accounts, func(a *model.Account) bool {
		return a.AccountID == accountID
	})
}

// Assumes s.mu is held.
func (s *AccountService) uniqueIDTaken(uniqueID int) bool {
	return slices.ContainsFunc(s.accounts, func(a *model.Account) bool {
		return a.UniqueID == uniqueID
	})
}

// snapshot copies the store. Assumes s.mu is held.
func (s *AccountService) snapshot() []*model.Account {
	out := make([]*model.Account, len(s.accounts))
	for i, acc := range s.accounts {
		cp := *acc
		out[i] = &cp
	}
	return out
}
