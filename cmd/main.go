// cmd/main.go
package main

import (
	"go-bank-ledger/app"
)

// Console bank ledger: open accounts, deposit, withdraw, list and delete them,
// persisting the account set between runs.
func main() {
	app.Run()
}
