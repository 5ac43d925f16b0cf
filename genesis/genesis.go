// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"encoding/json"
	"log/slog"
	"math/big"
	"os"

	"github.com/pkg/errors"

	"github.com/meterio/sealed-auction/meter"
	"github.com/meterio/sealed-auction/state"
)

var appliedKey = meter.Blake2b([]byte("genesis-applied-key"))

// Account one funded account of the genesis allocation.
type Account struct {
	Address string `json:"address"`
	Balance string `json:"balance"` // wei, decimal string
}

// LoadAccounts reads a genesis allocation file.
func LoadAccounts(path string) ([]Account, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read genesis file %v", path)
	}
	var accounts []Account
	if err := json.Unmarshal(raw, &accounts); err != nil {
		return nil, errors.Wrap(err, "parse genesis file")
	}
	return accounts, nil
}

// Build funds the allocation exactly once per store. A second call on the
// same store is a no-op, so restarting the daemon never re-mints balances.
func Build(st *state.State, accounts []Account) error {
	applied := false
	st.DecodeStorage(meter.AuctionAccountAddr, appliedKey, func(raw []byte) error {
		applied = len(raw) > 0
		return nil
	})
	if applied {
		slog.Debug("genesis already applied, skipping")
		return nil
	}

	for _, acc := range accounts {
		addr, err := meter.ParseAddress(acc.Address)
		if err != nil {
			return errors.WithMessagef(err, "genesis account %v", acc.Address)
		}
		balance, ok := new(big.Int).SetString(acc.Balance, 10)
		if !ok || balance.Sign() < 0 {
			return errors.Errorf("invalid genesis balance %v for %v", acc.Balance, acc.Address)
		}
		st.SetEnergy(addr, balance)
		slog.Info("genesis account funded", "address", addr, "balance", balance)
	}

	st.EncodeStorage(meter.AuctionAccountAddr, appliedKey, func() ([]byte, error) {
		return []byte{1}, nil
	})
	return st.Commit()
}
