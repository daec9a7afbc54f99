package repository

import (
	"context"
	"errors"
	"testing"

	"go-bank-ledger/common"
	"go-bank-ledger/model"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeListClient keeps Redis lists in memory.
type fakeListClient struct {
	lists map[string][]string
	err   error
}

func newFakeListClient() *fakeListClient {
	return &fakeListClient{lists: make(map[string][]string)}
}

func (f *fakeListClient) LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd {
	if f.err != nil {
		return redis.NewStringSliceResult(nil, f.err)
	}
	out := make([]string, len(f.lists[key]))
	copy(out, f.lists[key])
	return redis.NewStringSliceResult(out, nil)
}

func (f *fakeListClient) RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	for _, v := range values {
		f.lists[key] = append(f.lists[key], v.(string))
	}
	return redis.NewIntResult(int64(len(f.lists[key])), nil)
}

func (f *fakeListClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.lists[k]; ok {
			delete(f.lists, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestRedisRepository_RoundTrip(t *testing.T) {
	client := newFakeListClient()
	repo := NewRedisRepository(client, "ledger:accounts")
	ctx := context.Background()

	loaded, err := repo.LoadAccounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)

	accounts := []*model.Account{
		{AccountID: 1, OwnerName: "Alice", Balance: 100, UniqueID: 1234},
		{AccountID: 2, OwnerName: "Bob Lee", Balance: 0, UniqueID: 5678},
	}
	require.NoError(t, repo.SaveAccounts(ctx, accounts))
	assert.Equal(t, []string{"1 Alice 100 1234", "2 Bob Lee 0 5678"}, client.lists["ledger:accounts"])

	require.NoError(t, repo.AppendAccount(ctx, &model.Account{AccountID: 3, OwnerName: "Carol", Balance: 7, UniqueID: 4444}))

	loaded, err = repo.LoadAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, accounts[1], loaded[1])
	assert.Equal(t, 3, loaded[2].AccountID)

	require.NoError(t, repo.SaveAccounts(ctx, nil))
	_, exists := client.lists["ledger:accounts"]
	assert.False(t, exists)
}

func TestRedisRepository_SkipsMalformedEntries(t *testing.T) {
	client := newFakeListClient()
	client.lists["k"] = []string{"1 Alice 100 1234", "broken", "2 Bob 5 2222"}

	loaded, err := NewRedisRepository(client, "k").LoadAccounts(context.Background())

	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, 2, loaded[1].AccountID)
}

func TestRedisRepository_Unavailable(t *testing.T) {
	client := newFakeListClient()
	client.err = errors.New("dial tcp: connection refused")
	repo := NewRedisRepository(client, "k")
	ctx := context.Background()

	_, err := repo.LoadAccounts(ctx)
	assert.ErrorIs(t, err, common.ErrFileUnavailable)
	assert.ErrorIs(t, repo.SaveAccounts(ctx, nil), common.ErrFileUnavailable)
	assert.ErrorIs(t, repo.AppendAccount(ctx, &model.Account{AccountID: 1}), common.ErrFileUnavailable)
}
