// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"database/sql"
	"fmt"
	"math/big"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/meterio/sealed-auction/meter"
	"github.com/meterio/sealed-auction/tx"
)

// LogDB the notification sink: every outbound event and transfer record of
// the auction engine is appended here after the state commit. It is never
// consulted by the decision procedures.
type LogDB struct {
	path          string
	db            *sql.DB
	driverVersion string
}

var (
	GlobalLogDBInstance *LogDB
)

func setGlobalLogDBInstance(db *LogDB) {
	GlobalLogDBInstance = db
}

func GetGlobalLogDBInstance() *LogDB {
	return GlobalLogDBInstance
}

// New create or open log db at given path.
func New(path string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			err := db.Close()
			if err != nil {
				fmt.Println("could not close logdb error:", err)
			}
		}
	}()
	if _, err := db.Exec(eventTableSchema + transferTableSchema); err != nil {
		return nil, err
	}

	driverVer, _, _ := sqlite3.Version()
	logdbInstance := &LogDB{
		path,
		db,
		driverVer,
	}
	setGlobalLogDBInstance(logdbInstance)
	return logdbInstance, nil
}

// NewMem create a log db in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close close the log db.
func (db *LogDB) Close() {
	err := db.db.Close()
	if err != nil {
		fmt.Println("could not close logdb error:", err)
	}
}

func (db *LogDB) Path() string {
	return db.path
}

// Log appends every event and transfer of one call in a single sql
// transaction.
func (db *LogDB) Log(blockNumber uint32, txID meter.Bytes32, txOrigin meter.Address, events tx.Events, transfers tx.Transfers) error {
	sqlTx, err := db.db.Begin()
	if err != nil {
		return err
	}
	for i, ev := range events {
		rec := newEvent(blockNumber, uint32(i), txID, txOrigin, ev)
		if _, err := sqlTx.Exec(
			"INSERT INTO event(blockNumber, eventIndex, txID, txOrigin, code, address, amount) VALUES(?,?,?,?,?,?,?)",
			rec.BlockNumber, rec.Index, rec.TxID.Bytes(), rec.TxOrigin.Bytes(), rec.Code, rec.Address.Bytes(), rec.Amount.Bytes(),
		); err != nil {
			sqlTx.Rollback()
			return err
		}
	}
	for i, tr := range transfers {
		rec := newTransfer(blockNumber, uint32(i), txID, txOrigin, tr)
		if _, err := sqlTx.Exec(
			"INSERT INTO transfer(blockNumber, transferIndex, txID, txOrigin, sender, recipient, amount, token) VALUES(?,?,?,?,?,?,?,?)",
			rec.BlockNumber, rec.Index, rec.TxID.Bytes(), rec.TxOrigin.Bytes(), rec.Sender.Bytes(), rec.Recipient.Bytes(), rec.Amount.Bytes(), rec.Token,
		); err != nil {
			sqlTx.Rollback()
			return err
		}
	}
	return sqlTx.Commit()
}

func (db *LogDB) FilterEvents(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	if filter == nil {
		return db.queryEvents(ctx, "SELECT * FROM event ORDER BY blockNumber ASC,eventIndex ASC")
	}
	var args []interface{}
	stmt := "SELECT * FROM event WHERE 1"
	if filter.Range != nil {
		args = append(args, filter.Range.From)
		stmt += " AND blockNumber >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND blockNumber <= ? "
		}
	}
	if filter.Code != nil {
		args = append(args, *filter.Code)
		stmt += " AND code = ? "
	}
	if filter.Address != nil {
		args = append(args, filter.Address.Bytes())
		stmt += " AND address = ? "
	}

	if filter.Order == DESC {
		stmt += " ORDER BY blockNumber DESC,eventIndex DESC "
	} else {
		stmt += " ORDER BY blockNumber ASC,eventIndex ASC "
	}

	if filter.Options != nil {
		stmt += " limit ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryEvents(ctx, stmt, args...)
}

func (db *LogDB) FilterTransfers(ctx context.Context, filter *TransferFilter) ([]*Transfer, error) {
	if filter == nil {
		return db.queryTransfers(ctx, "SELECT * FROM transfer ORDER BY blockNumber ASC,transferIndex ASC")
	}
	var args []interface{}
	stmt := "SELECT * FROM transfer WHERE 1"
	if filter.Range != nil {
		args = append(args, filter.Range.From)
		stmt += " AND blockNumber >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND blockNumber <= ? "
		}
	}
	if filter.TxOrigin != nil {
		args = append(args, filter.TxOrigin.Bytes())
		stmt += " AND txOrigin = ? "
	}
	if filter.Sender != nil {
		args = append(args, filter.Sender.Bytes())
		stmt += " AND sender = ? "
	}
	if filter.Recipient != nil {
		args = append(args, filter.Recipient.Bytes())
		stmt += " AND recipient = ? "
	}
	if filter.Order == DESC {
		stmt += " ORDER BY blockNumber DESC,transferIndex DESC "
	} else {
		stmt += " ORDER BY blockNumber ASC,transferIndex ASC "
	}
	if filter.Options != nil {
		stmt += " limit ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryTransfers(ctx, stmt, args...)
}

func (db *LogDB) queryEvents(ctx context.Context, stmt string, args ...interface{}) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			blockNumber uint32
			index       uint32
			txID        []byte
			txOrigin    []byte
			code        uint32
			address     []byte
			amount      []byte
		)
		if err := rows.Scan(
			&blockNumber,
			&index,
			&txID,
			&txOrigin,
			&code,
			&address,
			&amount,
		); err != nil {
			return nil, err
		}
		events = append(events, &Event{
			Index:       index,
			BlockNumber: blockNumber,
			TxID:        meter.BytesToBytes32(txID),
			TxOrigin:    meter.BytesToAddress(txOrigin),
			Code:        code,
			Address:     meter.BytesToAddress(address),
			Amount:      new(big.Int).SetBytes(amount),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (db *LogDB) queryTransfers(ctx context.Context, stmt string, args ...interface{}) ([]*Transfer, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var transfers []*Transfer
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			blockNumber uint32
			index       uint32
			txID        []byte
			txOrigin    []byte
			sender      []byte
			recipient   []byte
			amount      []byte
			token       uint32
		)
		if err := rows.Scan(
			&blockNumber,
			&index,
			&txID,
			&txOrigin,
			&sender,
			&recipient,
			&amount,
			&token,
		); err != nil {
			return nil, err
		}
		transfers = append(transfers, &Transfer{
			Index:       index,
			BlockNumber: blockNumber,
			TxID:        meter.BytesToBytes32(txID),
			TxOrigin:    meter.BytesToAddress(txOrigin),
			Sender:      meter.BytesToAddress(sender),
			Recipient:   meter.BytesToAddress(recipient),
			Amount:      new(big.Int).SetBytes(amount),
			Token:       token,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return transfers, nil
}
