// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"fmt"

	"github.com/meterio/sealed-auction/meter"
)

// BlockContext block context. Number is the ambient chain height at call
// time; it is read once per call and treated as a stable snapshot for the
// whole decision procedure.
type BlockContext struct {
	Number uint32
	Time   uint64
}

// TransactionContext transaction context. Origin is the implicit caller
// identity supplied by the invoking environment.
type TransactionContext struct {
	ID     meter.Bytes32
	Origin meter.Address
	Nonce  uint64
}

func (ctx *TransactionContext) String() string {
	return fmt.Sprintf("txCtx{ID:%s Origin:%s Nonce:%d}", ctx.ID.String(), ctx.Origin.String(), ctx.Nonce)
}
