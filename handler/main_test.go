// handler/main_test.go
package handler

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-bank-ledger/logger"
	"go-bank-ledger/model"
	"go-bank-ledger/repository"
	"go-bank-ledger/service"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	logger.Log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type testEnv struct {
	handler *AccountHandler
	service *service.AccountService
	out     *bytes.Buffer
	path    string
}

// newTestEnv wires a handler over a file repository in a temp dir, reading
// operator input from input.
func newTestEnv(t *testing.T, input string) *testEnv {
	t.Helper()
	path := filepath.Join(t.TempDir(), "accounts.txt")
	svc := service.NewAccountService(repository.NewFileRepository(path), service.DefaultOptions())
	out := new(bytes.Buffer)
	console := NewConsole(strings.NewReader(input), out)
	return &testEnv{
		handler: NewAccountHandler(svc, console),
		service: svc,
		out:     out,
		path:    path,
	}
}

func (e *testEnv) seed(t *testing.T, id int, name string, balance int) model.Account {
	t.Helper()
	acc, err := e.service.Create(context.Background(), model.CreateAccountRequest{
		AccountID:      id,
		OwnerName:      name,
		InitialBalance: balance,
	})
	require.NoError(t, err)
	return acc
}

func (e *testEnv) fileContents(t *testing.T) string {
	t.Helper()
	raw, err := os.ReadFile(e.path)
	require.NoError(t, err)
	return string(raw)
}
