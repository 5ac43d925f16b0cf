package state_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meterio/sealed-auction/lvldb"
	"github.com/meterio/sealed-auction/meter"
	"github.com/meterio/sealed-auction/state"
)

func newState(t *testing.T) (*state.State, *lvldb.LevelDB) {
	store, err := lvldb.NewMem()
	assert.Nil(t, err)
	st, err := state.New(store)
	assert.Nil(t, err)
	return st, store
}

func TestEnergy(t *testing.T) {
	st, _ := newState(t)
	addr := meter.BytesToAddress([]byte("a1"))

	assert.Equal(t, 0, st.GetEnergy(addr).Sign())

	st.AddEnergy(addr, big.NewInt(100))
	assert.Equal(t, big.NewInt(100), st.GetEnergy(addr))

	ok := st.SubEnergy(addr, big.NewInt(30))
	assert.True(t, ok)
	assert.Equal(t, big.NewInt(70), st.GetEnergy(addr))

	// insufficient balance leaves the account untouched
	ok = st.SubEnergy(addr, big.NewInt(71))
	assert.False(t, ok)
	assert.Equal(t, big.NewInt(70), st.GetEnergy(addr))

	assert.Nil(t, st.Err())
}

func TestCommitAndDiscard(t *testing.T) {
	st, store := newState(t)
	addr := meter.BytesToAddress([]byte("a1"))

	st.AddEnergy(addr, big.NewInt(42))
	assert.Nil(t, st.Commit())

	// a fresh state sees the committed write
	st2, err := state.New(store)
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(42), st2.GetEnergy(addr))

	// uncommitted writes never reach the store
	st2.AddEnergy(addr, big.NewInt(1000))
	st3, err := state.New(store)
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(42), st3.GetEnergy(addr))
}

func TestAuctionLedgerRoundTrip(t *testing.T) {
	st, store := newState(t)

	// empty storage yields a fresh ledger
	ledger := st.GetAuctionLedger()
	assert.NotNil(t, ledger)
	assert.False(t, ledger.HasLeader())

	bidder := meter.BytesToAddress([]byte("bidder"))
	loser := meter.BytesToAddress([]byte("loser"))
	ledger.HighestBid = big.NewInt(20)
	ledger.HighestBidder = &bidder
	ledger.CreditPending(loser, big.NewInt(10))
	ledger.RcvdMTR = big.NewInt(30)
	st.SetAuctionLedger(ledger)
	assert.Nil(t, st.Commit())

	st2, err := state.New(store)
	assert.Nil(t, err)
	loaded := st2.GetAuctionLedger()
	assert.True(t, loaded.HasLeader())
	assert.Equal(t, bidder, *loaded.HighestBidder)
	assert.Equal(t, big.NewInt(20), loaded.HighestBid)
	assert.Equal(t, big.NewInt(10), loaded.PendingOf(loser))
	assert.Equal(t, big.NewInt(30), loaded.RcvdMTR)
	assert.Nil(t, st2.Err())
}

func TestAuctionConfigRoundTrip(t *testing.T) {
	st, store := newState(t)

	// nil until deployed
	assert.Nil(t, st.GetAuctionConfig())

	beneficiary := meter.BytesToAddress([]byte("beneficiary"))
	config, err := meter.NewAuctionConfig(100, 50, beneficiary)
	assert.Nil(t, err)
	st.SetAuctionConfig(config)
	assert.Nil(t, st.Commit())

	st2, err := state.New(store)
	assert.Nil(t, err)
	loaded := st2.GetAuctionConfig()
	assert.NotNil(t, loaded)
	assert.Equal(t, uint32(100), loaded.StartHeight)
	assert.Equal(t, uint32(50), loaded.Duration)
	assert.Equal(t, beneficiary, loaded.Beneficiary)
}
