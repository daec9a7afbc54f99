// file: repository/redis_repository.go

package repository

import (
	"context"
	"fmt"

	"go-bank-ledger/common"
	"go-bank-ledger/logger"
	"go-bank-ledger/model"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// IListClient is the subset of the Redis client the repository needs.
// *redis.Client satisfies it.
type IListClient interface {
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisRepository stores accounts as encoded lines in a Redis list.
type RedisRepository struct {
	client IListClient
	key    string
}

func NewRedisRepository(client IListClient, key string) *RedisRepository {
	return &RedisRepository{client: client, key: key}
}

func (r *RedisRepository) LoadAccounts(ctx context.Context) ([]*model.Account, error) {
	log := logger.Log.WithField("key", r.key)
	log.Info("Loading accounts from redis list")

	lines, err := r.client.LRange(ctx, r.key, 0, -1).Result()
	if err != nil {
		log.WithError(err).Error("Failed to read redis list")
		return nil, fmt.Errorf("%w: %v", common.ErrFileUnavailable, err)
	}

	accounts := make([]*model.Account, 0, len(lines))
	for i, line := range lines {
		acc, err := DecodeAccount(line)
		if err != nil {
			log.WithFields(logrus.Fields{"index": i, "error": err}).Warn("Skipping malformed account entry")
			continue
		}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

// SaveAccounts deletes the list and pushes every account again. The two steps
// are not atomic.
func (r *RedisRepository) SaveAccounts(ctx context.Context, accounts []*model.Account) error {
	log := logger.Log.WithFields(logrus.Fields{"key": r.key, "count": len(accounts)})
	log.Info("Rewriting redis account list")

	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		log.WithError(err).Error("Failed to delete redis list")
		return fmt.Errorf("%w: %v", common.ErrFileUnavailable, err)
	}
	if len(accounts) == 0 {
		return nil
	}

	values := make([]interface{}, len(accounts))
	for i, acc := range accounts {
		values[i] = EncodeAccount(acc)
	}
	if err := r.client.RPush(ctx, r.key, values...).Err(); err != nil {
		log.WithError(err).Error("Failed to push accounts to redis list")
		return fmt.Errorf("%w: %v", common.ErrFileUnavailable, err)
	}
	return nil
}

func (r *RedisRepository) AppendAccount(ctx context.Context, account *model.Account) error {
	log := logger.Log.WithFields(logrus.Fields{"key": r.key, "account_id": account.AccountID})
	log.Info("Appending account to redis list")

	if err := r.client.RPush(ctx, r.key, EncodeAccount(account)).Err(); err != nil {
		log.WithError(err).Error("Failed to append account to redis list")
		return fmt.Errorf("%w: %v", common.ErrFileUnavailable, err)
	}
	return nil
}
