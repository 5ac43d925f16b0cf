package meter_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meterio/sealed-auction/meter"
)

func addr(b byte) meter.Address {
	return meter.BytesToAddress([]byte{b})
}

func TestNewAuctionLedger(t *testing.T) {
	ledger := meter.NewAuctionLedger()

	assert.False(t, ledger.Ended)
	assert.False(t, ledger.HasLeader())
	assert.Nil(t, ledger.HighestBidder)
	assert.Equal(t, 0, ledger.HighestBid.Sign())
	assert.Equal(t, 0, ledger.Count())
}

func TestCreditPendingAdditive(t *testing.T) {
	ledger := meter.NewAuctionLedger()
	a := addr(0x01)

	ledger.CreditPending(a, big.NewInt(10))
	assert.Equal(t, big.NewInt(10), ledger.PendingOf(a))

	// outbid again, the displaced amounts accumulate
	ledger.CreditPending(a, big.NewInt(15))
	assert.Equal(t, big.NewInt(25), ledger.PendingOf(a))
	assert.Equal(t, 1, ledger.Count())
}

func TestPendingSortedByAddress(t *testing.T) {
	ledger := meter.NewAuctionLedger()

	ledger.CreditPending(addr(0x30), big.NewInt(3))
	ledger.CreditPending(addr(0x10), big.NewInt(1))
	ledger.CreditPending(addr(0x20), big.NewInt(2))

	assert.Equal(t, 3, ledger.Count())
	for i := 0; i < ledger.Count()-1; i++ {
		assert.True(t, ledger.PendingReturns[i].Address.Compare(ledger.PendingReturns[i+1].Address) < 0)
	}
	assert.Equal(t, big.NewInt(1), ledger.PendingOf(addr(0x10)))
	assert.Equal(t, big.NewInt(2), ledger.PendingOf(addr(0x20)))
	assert.Equal(t, big.NewInt(3), ledger.PendingOf(addr(0x30)))
}

func TestClearPending(t *testing.T) {
	ledger := meter.NewAuctionLedger()
	a := addr(0x01)
	b := addr(0x02)

	ledger.CreditPending(a, big.NewInt(10))
	ledger.CreditPending(b, big.NewInt(20))

	amount, owed := ledger.ClearPending(a)
	assert.True(t, owed)
	assert.Equal(t, big.NewInt(10), amount)
	assert.Equal(t, 1, ledger.Count())
	assert.Equal(t, 0, ledger.PendingOf(a).Sign())

	// already cleared, nothing owed
	amount, owed = ledger.ClearPending(a)
	assert.False(t, owed)
	assert.Equal(t, 0, amount.Sign())

	// never credited
	_, owed = ledger.ClearPending(addr(0x99))
	assert.False(t, owed)
}

func TestTotalPending(t *testing.T) {
	ledger := meter.NewAuctionLedger()

	assert.Equal(t, 0, ledger.TotalPending().Sign())

	ledger.CreditPending(addr(0x01), big.NewInt(10))
	ledger.CreditPending(addr(0x02), big.NewInt(20))
	ledger.CreditPending(addr(0x01), big.NewInt(5))

	assert.Equal(t, big.NewInt(35), ledger.TotalPending())
}

func TestPendingOfReturnsCopy(t *testing.T) {
	ledger := meter.NewAuctionLedger()
	a := addr(0x01)
	ledger.CreditPending(a, big.NewInt(10))

	got := ledger.PendingOf(a)
	got.SetInt64(999)
	assert.Equal(t, big.NewInt(10), ledger.PendingOf(a))
}
