// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/meterio/sealed-auction/meter"
)

// AuctionBody the decoded payload of one auction call. Bidder must match the
// transaction origin; Amount is only meaningful for OP_BID.
type AuctionBody struct {
	Opcode    uint32
	Version   uint32
	Bidder    meter.Address
	Amount    *big.Int
	Timestamp uint64
	Nonce     uint64
}

func (ab *AuctionBody) ToString() string {
	return fmt.Sprintf("AuctionBody: Opcode=%v, Version=%v, Bidder=%v, Amount=%v, Timestamp=%v, Nonce=%v",
		ab.Opcode, ab.Version, ab.Bidder.String(), ab.Amount.String(), ab.Timestamp, ab.Nonce)
}

func (ab *AuctionBody) String() string {
	return ab.ToString()
}

// Rejections reported to the caller. Timing and value rejections are
// recoverable by retrying later or resubmitting a higher amount; a
// nothing-to-withdraw rejection is not retryable without new activity.
var (
	errTooEarly          = errors.New("auction not open yet")
	errTooLate           = errors.New("auction already closed")
	errBidTooLow         = errors.New("bid not higher than current highest")
	errNotEnoughMTR      = errors.New("not enough MTR balance")
	errNothingToWithdraw = errors.New("nothing to withdraw")
	errStillOpenOrEnded  = errors.New("auction still open or already ended")
	errNotDeployed       = errors.New("auction not deployed")
)

func EncodeBytes(ab *AuctionBody) []byte {
	auctionBytes, err := rlp.EncodeToBytes(ab)
	if err != nil {
		log.Error("rlp encode failed", "error", err)
		return []byte{}
	}
	return auctionBytes
}

func DecodeFromBytes(bytes []byte) (*AuctionBody, error) {
	ab := AuctionBody{}
	err := rlp.DecodeBytes(bytes, &ab)
	return &ab, err
}
