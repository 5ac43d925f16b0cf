// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"encoding/gob"
	"log/slog"

	"github.com/meterio/sealed-auction/meter"
)

// Auction Ledger
func (s *State) GetAuctionLedger() (result *meter.AuctionLedger) {
	s.DecodeStorage(meter.AuctionAccountAddr, meter.AuctionLedgerKey, func(raw []byte) error {
		decoder := gob.NewDecoder(bytes.NewBuffer(raw))
		var ledger meter.AuctionLedger
		err := decoder.Decode(&ledger)
		if err != nil {
			if err.Error() == "EOF" && len(raw) == 0 {
				// empty raw, fresh ledger
			} else {
				slog.Warn("error during decoding auction ledger, set it as empty", "err", err)
			}
			result = meter.NewAuctionLedger()
			return nil
		}
		result = &ledger
		return nil
	})
	return
}

func (s *State) SetAuctionLedger(ledger *meter.AuctionLedger) {
	s.EncodeStorage(meter.AuctionAccountAddr, meter.AuctionLedgerKey, func() ([]byte, error) {
		buf := bytes.NewBuffer([]byte{})
		encoder := gob.NewEncoder(buf)
		err := encoder.Encode(ledger)
		return buf.Bytes(), err
	})
}

// Auction Config. Written once at deployment, read-only afterwards; a nil
// result means no auction has been deployed on this store yet.
func (s *State) GetAuctionConfig() (result *meter.AuctionConfig) {
	s.DecodeStorage(meter.AuctionAccountAddr, meter.AuctionConfigKey, func(raw []byte) error {
		if len(raw) == 0 {
			result = nil
			return nil
		}
		decoder := gob.NewDecoder(bytes.NewBuffer(raw))
		var config meter.AuctionConfig
		if err := decoder.Decode(&config); err != nil {
			slog.Warn("error during decoding auction config", "err", err)
			result = nil
			return nil
		}
		result = &config
		return nil
	})
	return
}

func (s *State) SetAuctionConfig(config *meter.AuctionConfig) {
	s.EncodeStorage(meter.AuctionAccountAddr, meter.AuctionConfigKey, func() ([]byte, error) {
		buf := bytes.NewBuffer([]byte{})
		encoder := gob.NewEncoder(buf)
		err := encoder.Encode(config)
		return buf.Bytes(), err
	})
}
