package logdb_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meterio/sealed-auction/logdb"
	"github.com/meterio/sealed-auction/meter"
	"github.com/meterio/sealed-auction/tx"
)

func newTestDB(t *testing.T) *logdb.LogDB {
	db, err := logdb.NewMem()
	assert.Nil(t, err)
	return db
}

func TestLogAndFilterEvents(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	bidder := meter.BytesToAddress([]byte("bidder"))
	other := meter.BytesToAddress([]byte("other"))

	events := tx.Events{
		&tx.Event{Code: 4, Address: bidder, Amount: big.NewInt(10)},
	}
	assert.Nil(t, db.Log(120, meter.Blake2b([]byte("tx1")), bidder, events, nil))

	events = tx.Events{
		&tx.Event{Code: 5, Address: other, Amount: big.NewInt(20)},
	}
	assert.Nil(t, db.Log(130, meter.Blake2b([]byte("tx2")), other, events, nil))

	// no criteria matches everything
	got, err := db.FilterEvents(context.Background(), &logdb.EventFilter{})
	assert.Nil(t, err)
	assert.Equal(t, 2, len(got))

	// filter by code
	code := uint32(5)
	got, err = db.FilterEvents(context.Background(), &logdb.EventFilter{Code: &code})
	assert.Nil(t, err)
	assert.Equal(t, 1, len(got))
	assert.Equal(t, other, got[0].Address)
	assert.Equal(t, big.NewInt(20), got[0].Amount)

	// filter by address
	got, err = db.FilterEvents(context.Background(), &logdb.EventFilter{Address: &bidder})
	assert.Nil(t, err)
	assert.Equal(t, 1, len(got))
	assert.Equal(t, uint32(4), got[0].Code)

	// block range is inclusive on both ends
	got, err = db.FilterEvents(context.Background(), &logdb.EventFilter{Range: &logdb.Range{From: 125, To: 135}})
	assert.Nil(t, err)
	assert.Equal(t, 1, len(got))
	assert.Equal(t, uint32(130), got[0].BlockNumber)

	// descending order
	got, err = db.FilterEvents(context.Background(), &logdb.EventFilter{Order: logdb.DESC})
	assert.Nil(t, err)
	assert.Equal(t, 2, len(got))
	assert.Equal(t, uint32(130), got[0].BlockNumber)

	// limit
	got, err = db.FilterEvents(context.Background(), &logdb.EventFilter{Options: &logdb.Options{Limit: 1}})
	assert.Nil(t, err)
	assert.Equal(t, 1, len(got))
}

func TestLogAndFilterTransfers(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	bidder := meter.BytesToAddress([]byte("bidder"))
	escrow := meter.BytesToAddress([]byte("auction-account"))

	transfers := tx.Transfers{
		&tx.Transfer{Sender: bidder, Recipient: escrow, Amount: big.NewInt(10), Token: meter.MTR},
	}
	assert.Nil(t, db.Log(120, meter.Blake2b([]byte("tx1")), bidder, nil, transfers))

	transfers = tx.Transfers{
		&tx.Transfer{Sender: escrow, Recipient: bidder, Amount: big.NewInt(10), Token: meter.MTR},
	}
	assert.Nil(t, db.Log(141, meter.Blake2b([]byte("tx2")), bidder, nil, transfers))

	got, err := db.FilterTransfers(context.Background(), &logdb.TransferFilter{})
	assert.Nil(t, err)
	assert.Equal(t, 2, len(got))

	got, err = db.FilterTransfers(context.Background(), &logdb.TransferFilter{Sender: &bidder})
	assert.Nil(t, err)
	assert.Equal(t, 1, len(got))
	assert.Equal(t, escrow, got[0].Recipient)

	got, err = db.FilterTransfers(context.Background(), &logdb.TransferFilter{Recipient: &bidder})
	assert.Nil(t, err)
	assert.Equal(t, 1, len(got))
	assert.Equal(t, uint32(141), got[0].BlockNumber)
}

func TestEmptyLogIsNoop(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	assert.Nil(t, db.Log(100, meter.Blake2b([]byte("tx")), meter.Address{}, nil, nil))

	got, err := db.FilterEvents(context.Background(), &logdb.EventFilter{})
	assert.Nil(t, err)
	assert.Equal(t, 0, len(got))
}
