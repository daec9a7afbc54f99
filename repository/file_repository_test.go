package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go-bank-ledger/common"
	"go-bank-ledger/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRepository_LoadMissingFile(t *testing.T) {
	repo := NewFileRepository(filepath.Join(t.TempDir(), "accounts.txt"))

	accounts, err := repo.LoadAccounts(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestFileRepository_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.txt")
	repo := NewFileRepository(path)
	ctx := context.Background()

	accounts := []*model.Account{
		{AccountID: 1, OwnerName: "Alice", Balance: 100, UniqueID: 1234},
		{AccountID: 2, OwnerName: "Bob Lee", Balance: -1, UniqueID: 5678},
		{AccountID: 0, OwnerName: "Zed", Balance: 0, UniqueID: 9999},
	}
	require.NoError(t, repo.SaveAccounts(ctx, accounts))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1 Alice 100 1234\n2 Bob Lee -1 5678\n0 Zed 0 9999\n", string(raw))

	loaded, err := repo.LoadAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, accounts, loaded)
}

func TestFileRepository_SaveTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.txt")
	repo := NewFileRepository(path)
	ctx := context.Background()

	require.NoError(t, repo.SaveAccounts(ctx, []*model.Account{
		{AccountID: 1, OwnerName: "Alice", Balance: 1, UniqueID: 1111},
		{AccountID: 2, OwnerName: "Bob", Balance: 2, UniqueID: 2222},
	}))
	require.NoError(t, repo.SaveAccounts(ctx, []*model.Account{
		{AccountID: 2, OwnerName: "Bob", Balance: 2, UniqueID: 2222},
	}))

	loaded, err := repo.LoadAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 2, loaded[0].AccountID)

	require.NoError(t, repo.SaveAccounts(ctx, nil))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestFileRepository_Append(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.txt")
	repo := NewFileRepository(path)
	ctx := context.Background()

	require.NoError(t, repo.AppendAccount(ctx, &model.Account{AccountID: 1, OwnerName: "Alice", Balance: 5, UniqueID: 1111}))
	require.NoError(t, repo.AppendAccount(ctx, &model.Account{AccountID: 2, OwnerName: "Bob", Balance: 6, UniqueID: 2222}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1 Alice 5 1111\n2 Bob 6 2222\n", string(raw))
}

func TestFileRepository_SkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.txt")
	content := "1 Alice 100 1234\n" +
		"garbage\n" +
		"\n" +
		"2 Bob notanumber 5678\n" +
		"3 Carol 300 3333\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	loaded, err := NewFileRepository(path).LoadAccounts(context.Background())

	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, 1, loaded[0].AccountID)
	assert.Equal(t, 3, loaded[1].AccountID)
}

func TestFileRepository_Unavailable(t *testing.T) {
	dir := t.TempDir()
	// A directory cannot be opened for writing, nor scanned as a file.
	repo := NewFileRepository(dir)
	ctx := context.Background()

	_, err := repo.LoadAccounts(ctx)
	assert.ErrorIs(t, err, common.ErrFileUnavailable)

	err = repo.SaveAccounts(ctx, nil)
	assert.ErrorIs(t, err, common.ErrFileUnavailable)

	err = repo.AppendAccount(ctx, &model.Account{AccountID: 1, OwnerName: "Alice"})
	assert.ErrorIs(t, err, common.ErrFileUnavailable)
}
