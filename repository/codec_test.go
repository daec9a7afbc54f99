package repository

import (
	"testing"

	"go-bank-ledger/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeAccount(t *testing.T) {
	acc := &model.Account{AccountID: 12, OwnerName: "Alice", Balance: -1, UniqueID: 4821}
	assert.Equal(t, "12 Alice -1 4821", EncodeAccount(acc))
}

func TestDecodeAccount(t *testing.T) {
	t.Run("single word name", func(t *testing.T) {
		acc, err := DecodeAccount("1 Alice 150 1234")
		require.NoError(t, err)
		assert.Equal(t, &model.Account{AccountID: 1, OwnerName: "Alice", Balance: 150, UniqueID: 1234}, acc)
	})

	t.Run("multi word name", func(t *testing.T) {
		acc, err := DecodeAccount("7 Mary Ann Lee -20 9999")
		require.NoError(t, err)
		assert.Equal(t, "Mary Ann Lee", acc.OwnerName)
		assert.Equal(t, -20, acc.Balance)
		assert.Equal(t, 9999, acc.UniqueID)
	})

	t.Run("round trip", func(t *testing.T) {
		in := &model.Account{AccountID: 3, OwnerName: "Jean Luc", Balance: 77, UniqueID: 1001}
		out, err := DecodeAccount(EncodeAccount(in))
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("malformed", func(t *testing.T) {
		for _, line := range []string{
			"",
			"1 Alice 150",
			"x Alice 150 1234",
			"1 Alice lots 1234",
			"1 Alice 150 id",
		} {
			_, err := DecodeAccount(line)
			assert.Error(t, err, "line %q", line)
		}
	})
}
