// Package token is a minimal fungible token used as a voting gate in tests.
// It exposes NEP-17 balanceOf and lets anyone set an arbitrary balance.
package token

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const balancePrefix = "b"

// Symbol returns token symbol.
func Symbol() string {
	return "RGT"
}

// Decimals returns token decimals.
func Decimals() int {
	return 0
}

// BalanceOf returns the balance of the account.
func BalanceOf(account interop.Hash160) int {
	val := storage.Get(storage.GetReadOnlyContext(), append([]byte(balancePrefix), account...))
	if val == nil {
		return 0
	}
	return val.(int)
}

// SetBalance overwrites the balance of the account.
func SetBalance(account interop.Hash160, amount int) {
	ctx := storage.GetContext()
	key := append([]byte(balancePrefix), account...)
	if amount <= 0 {
		storage.Delete(ctx, key)
		return
	}
	storage.Put(ctx, key, amount)
}
