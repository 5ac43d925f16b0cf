// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"fmt"
	"math/big"

	"github.com/meterio/sealed-auction/meter"
)

// Event notification record emitted by a native module. Every call produces
// exactly one event: rejections carry the reason code, acceptances carry the
// affected address and amount.
type Event struct {
	Code    uint32
	Address meter.Address
	Amount  *big.Int
}

// Events slice of event records.
type Events []*Event

func (ev *Event) String() string {
	return fmt.Sprintf("Event(code=%v, address=%v, amount=%v)", ev.Code, ev.Address, ev.Amount)
}
