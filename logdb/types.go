// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"math/big"

	"github.com/meterio/sealed-auction/meter"
	"github.com/meterio/sealed-auction/tx"
)

// Event represents tx.Event that can be stored in db.
type Event struct {
	Index       uint32
	BlockNumber uint32
	TxID        meter.Bytes32
	TxOrigin    meter.Address
	Code        uint32
	Address     meter.Address
	Amount      *big.Int
}

// newEvent converts tx.Event to Event.
func newEvent(blockNumber uint32, index uint32, txID meter.Bytes32, txOrigin meter.Address, txEvent *tx.Event) *Event {
	return &Event{
		Index:       index,
		BlockNumber: blockNumber,
		TxID:        txID,
		TxOrigin:    txOrigin,
		Code:        txEvent.Code,
		Address:     txEvent.Address,
		Amount:      txEvent.Amount,
	}
}

// Transfer represents tx.Transfer that can be stored in db.
type Transfer struct {
	Index       uint32
	BlockNumber uint32
	TxID        meter.Bytes32
	TxOrigin    meter.Address
	Sender      meter.Address
	Recipient   meter.Address
	Amount      *big.Int
	Token       uint32
}

// newTransfer converts tx.Transfer to Transfer.
func newTransfer(blockNumber uint32, index uint32, txID meter.Bytes32, txOrigin meter.Address, transfer *tx.Transfer) *Transfer {
	return &Transfer{
		Index:       index,
		BlockNumber: blockNumber,
		TxID:        txID,
		TxOrigin:    txOrigin,
		Sender:      transfer.Sender,
		Recipient:   transfer.Recipient,
		Amount:      transfer.Amount,
		Token:       uint32(transfer.Token),
	}
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Options limit and offset of a query.
type Options struct {
	Offset uint64
	Limit  uint64
}

// Range half-open block number range of a query.
type Range struct {
	From uint32
	To   uint32
}

// EventFilter filter of the event query. Nil criteria match everything.
type EventFilter struct {
	Range   *Range
	Code    *uint32
	Address *meter.Address
	Order   Order
	Options *Options
}

// TransferFilter filter of the transfer query.
type TransferFilter struct {
	Range     *Range
	TxOrigin  *meter.Address
	Sender    *meter.Address
	Recipient *meter.Address
	Order     Order
	Options   *Options
}

const eventTableSchema = `CREATE TABLE IF NOT EXISTS event (
	blockNumber INTEGER NOT NULL,
	eventIndex INTEGER NOT NULL,
	txID BLOB NOT NULL,
	txOrigin BLOB NOT NULL,
	code INTEGER NOT NULL,
	address BLOB NOT NULL,
	amount BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS event_block_number ON event(blockNumber);
CREATE INDEX IF NOT EXISTS event_code ON event(code);
CREATE INDEX IF NOT EXISTS event_address ON event(address);`

const transferTableSchema = `CREATE TABLE IF NOT EXISTS transfer (
	blockNumber INTEGER NOT NULL,
	transferIndex INTEGER NOT NULL,
	txID BLOB NOT NULL,
	txOrigin BLOB NOT NULL,
	sender BLOB NOT NULL,
	recipient BLOB NOT NULL,
	amount BLOB NOT NULL,
	token INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS transfer_block_number ON transfer(blockNumber);
CREATE INDEX IF NOT EXISTS transfer_sender ON transfer(sender);
CREATE INDEX IF NOT EXISTS transfer_recipient ON transfer(recipient);`
