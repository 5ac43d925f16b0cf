// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"errors"
	"log/slog"

	"github.com/meterio/sealed-auction/meter"
	setypes "github.com/meterio/sealed-auction/script/types"
	"github.com/meterio/sealed-auction/state"
	"github.com/meterio/sealed-auction/xenv"
)

var (
	AuctionGlobInst *Auction
	log             = slog.Default().With("pkg", "auction")
)

// Auction the native auction module. One instance handles every operation;
// the surrounding engine serializes calls.
type Auction struct {
	stateCreator *state.Creator
	logger       *slog.Logger
}

func GetAuctionGlobInst() *Auction {
	return AuctionGlobInst
}

func SetAuctionGlobInst(inst *Auction) {
	AuctionGlobInst = inst
}

func NewAuction(sc *state.Creator) *Auction {
	auction := &Auction{
		stateCreator: sc,
		logger:       slog.Default().With("pkg", "auction"),
	}
	SetAuctionGlobInst(auction)
	return auction
}

func (a *Auction) Start() error {
	log.Info("auction module started")
	return nil
}

// PrepareAuctionHandler returns the call handler registered with the script
// engine. The handler decodes the payload, checks the caller identity, and
// dispatches by opcode. Events and transfers are collected on the env; the
// engine commits state only when err is nil.
func (a *Auction) PrepareAuctionHandler() func(data []byte, to *meter.Address, txCtx *xenv.TransactionContext, blockCtx *xenv.BlockContext, state *state.State) (*setypes.ScriptEngineOutput, error) {

	return func(data []byte, to *meter.Address, txCtx *xenv.TransactionContext, blockCtx *xenv.BlockContext, state *state.State) (*setypes.ScriptEngineOutput, error) {
		ab, err := DecodeFromBytes(data)
		if err != nil {
			log.Error("decode auction body failed", "error", err)
			return nil, err
		}

		env := setypes.NewScriptEnv(state, blockCtx, txCtx, to)

		log.Debug("received auction call", "body", ab.ToString())
		switch ab.Opcode {
		case OP_BID:
			if txCtx.Origin != ab.Bidder {
				return nil, errors.New("bidder address is not the same as transaction origin")
			}
			err = a.HandleBid(env, ab)

		case OP_WITHDRAW:
			err = a.HandleWithdraw(env, ab)

		case OP_END:
			err = a.HandleClose(env, ab)

		default:
			log.Error("unknown Opcode", "Opcode", ab.Opcode)
			return nil, errors.New("unknown auction opcode")
		}
		log.Debug("leaving auction handler", "op", GetOpName(ab.Opcode))
		return env.GetOutput(), err
	}
}
