package types

// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

import (
	"errors"
	"math/big"

	"github.com/meterio/sealed-auction/meter"
)

// ==================== account operation ===========================
// from addr ==> AuctionAccountAddr
func (env *ScriptEnv) TransferMTRToAuction(addr meter.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	state := env.GetState()

	meterBalance := state.GetEnergy(addr)
	if meterBalance.Cmp(amount) < 0 {
		return errors.New("not enough meter")
	}

	state.SubEnergy(addr, amount)
	state.AddEnergy(meter.AuctionAccountAddr, amount)
	env.AddTransfer(addr, meter.AuctionAccountAddr, amount, meter.MTR)
	return nil
}

// from AuctionAccountAddr ==> addr. Used for refund payouts and for the
// beneficiary release; the escrow account must already hold the amount.
func (env *ScriptEnv) TransferAuctionMTRTo(addr meter.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	state := env.GetState()

	meterBalance := state.GetEnergy(meter.AuctionAccountAddr)
	if meterBalance.Cmp(amount) < 0 {
		return errors.New("not enough meter in auction account")
	}

	state.SubEnergy(meter.AuctionAccountAddr, amount)
	state.AddEnergy(addr, amount)
	env.AddTransfer(meter.AuctionAccountAddr, addr, amount, meter.MTR)
	return nil
}
