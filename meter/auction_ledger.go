// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package meter

import (
	"bytes"
	"fmt"
	"math/big"
	"strings"
)

// PendingReturn amount owed back to an address because a later, higher bid
// displaced theirs.
type PendingReturn struct {
	Address Address
	Amount  *big.Int
}

func (p *PendingReturn) ToString() string {
	return fmt.Sprintf("PendingReturn(addr=%v, amount=%v)", p.Address, p.Amount.String())
}

// AuctionLedger the authoritative mutable state of the auction. A single
// instance lives in storage under AuctionLedgerKey. HighestBidder is nil
// until the first bid is accepted; PendingReturns is kept sorted by address
// so the encoded form is deterministic.
type AuctionLedger struct {
	Ended          bool
	HighestBid     *big.Int
	HighestBidder  *Address
	PendingReturns []*PendingReturn

	// total value ever transferred in, for the escrow accounting invariant
	RcvdMTR *big.Int
}

func NewAuctionLedger() *AuctionLedger {
	return &AuctionLedger{
		Ended:          false,
		HighestBid:     big.NewInt(0),
		HighestBidder:  nil,
		PendingReturns: make([]*PendingReturn, 0),
		RcvdMTR:        big.NewInt(0),
	}
}

// HasLeader returns whether any bid has ever been accepted.
func (l *AuctionLedger) HasLeader() bool {
	return l.HighestBidder != nil
}

func (l *AuctionLedger) indexOf(addr Address) (int, int) {
	// return values:
	//     first parameter: if found, the index of the item
	//     second parameter: if not found, the correct insert index of the item
	if len(l.PendingReturns) <= 0 {
		return -1, 0
	}
	left := 0
	right := len(l.PendingReturns)
	for left < right {
		m := (left + right) / 2
		cmp := bytes.Compare(addr.Bytes(), l.PendingReturns[m].Address.Bytes())
		if cmp < 0 {
			right = m
		} else if cmp > 0 {
			left = m + 1
		} else {
			return m, -1
		}
	}
	return -1, right
}

// PendingOf returns the amount owed to addr, zero if nothing is owed.
func (l *AuctionLedger) PendingOf(addr Address) *big.Int {
	index, _ := l.indexOf(addr)
	if index < 0 {
		return big.NewInt(0)
	}
	return new(big.Int).Set(l.PendingReturns[index].Amount)
}

// CreditPending adds amount to the balance owed to addr. A single address
// may be outbid multiple times, so an existing entry accumulates.
func (l *AuctionLedger) CreditPending(addr Address, amount *big.Int) {
	index, insertIndex := l.indexOf(addr)
	if index >= 0 {
		entry := l.PendingReturns[index]
		entry.Amount = new(big.Int).Add(entry.Amount, amount)
		return
	}
	entry := &PendingReturn{Address: addr, Amount: new(big.Int).Set(amount)}
	if len(l.PendingReturns) == 0 {
		l.PendingReturns = append(l.PendingReturns, entry)
		return
	}
	newList := make([]*PendingReturn, insertIndex)
	copy(newList, l.PendingReturns[:insertIndex])
	newList = append(newList, entry)
	newList = append(newList, l.PendingReturns[insertIndex:]...)
	l.PendingReturns = newList
}

// ClearPending removes the entry for addr and returns the amount that was
// owed. The second return is false if nothing was owed.
func (l *AuctionLedger) ClearPending(addr Address) (*big.Int, bool) {
	index, _ := l.indexOf(addr)
	if index < 0 {
		return big.NewInt(0), false
	}
	amount := l.PendingReturns[index].Amount
	l.PendingReturns = append(l.PendingReturns[:index], l.PendingReturns[index+1:]...)
	return amount, true
}

// TotalPending sums every pending return balance.
func (l *AuctionLedger) TotalPending() *big.Int {
	total := big.NewInt(0)
	for _, p := range l.PendingReturns {
		total = total.Add(total, p.Amount)
	}
	return total
}

func (l *AuctionLedger) Count() int {
	return len(l.PendingReturns)
}

func (l *AuctionLedger) ToString() string {
	leader := "nil"
	if l.HighestBidder != nil {
		leader = l.HighestBidder.String()
	}
	s := []string{fmt.Sprintf("AuctionLedger(ended=%v, highestBid=%v, highestBidder=%v, rcvdMTR=%v)",
		l.Ended, l.HighestBid.String(), leader, l.RcvdMTR.String())}
	for i, p := range l.PendingReturns {
		s = append(s, fmt.Sprintf("  %d.%v", i, p.ToString()))
	}
	return strings.Join(s, "\n")
}
