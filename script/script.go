// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package script

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/meterio/sealed-auction/meter"
	"github.com/meterio/sealed-auction/script/auction"
	setypes "github.com/meterio/sealed-auction/script/types"
	"github.com/meterio/sealed-auction/state"
	"github.com/meterio/sealed-auction/xenv"
)

var (
	ScriptGlobInst *ScriptEngine
)

// ScriptEngine dispatches script calls to native modules. The mutex
// serializes calls end-to-end, reproducing the non-interruptible-call model:
// each operation observes either nothing or everything of any other.
type ScriptEngine struct {
	mu           sync.Mutex
	stateCreator *state.Creator
	logger       *slog.Logger
	modReg       Registry
}

// Glob Instance
func GetScriptGlobInst() *ScriptEngine {
	return ScriptGlobInst
}

func SetScriptGlobInst(inst *ScriptEngine) {
	ScriptGlobInst = inst
}

func NewScriptEngine(stateCreator *state.Creator) *ScriptEngine {
	se := &ScriptEngine{
		stateCreator: stateCreator,
		logger:       slog.Default().With("pkg", "se"),
	}
	SetScriptGlobInst(se)

	// start all sub modules
	se.StartAllModules()
	return se
}

func (se *ScriptEngine) StartAllModules() {
	ModuleAuctionInit(se)
}

// DeployAuction writes the deployment-time parameters and a fresh ledger.
// It fails if an auction already lives on this store; the config is
// read-only for the lifetime of the instance.
func (se *ScriptEngine) DeployAuction(config *meter.AuctionConfig) error {
	se.mu.Lock()
	defer se.mu.Unlock()

	st, err := se.stateCreator.NewState()
	if err != nil {
		return err
	}
	if st.GetAuctionConfig() != nil {
		return errors.New("auction already deployed")
	}
	st.SetAuctionConfig(config)
	st.SetAuctionLedger(meter.NewAuctionLedger())
	if err := st.Commit(); err != nil {
		return err
	}
	se.logger.Info("auction deployed", "config", config.ToString())
	return nil
}

// HandleScriptData runs one operation as an atomic unit: decode the
// envelope, dispatch to the module, and commit state only when the handler
// reports success. A handler error discards every pending mutation while the
// collected rejection notification is still returned to the caller.
func (se *ScriptEngine) HandleScriptData(data []byte, to *meter.Address, txCtx *xenv.TransactionContext, blockCtx *xenv.BlockContext) (seOutput *setypes.ScriptEngineOutput, err error) {
	se.mu.Lock()
	defer se.mu.Unlock()

	if len(data) < len(ScriptPattern) || !bytes.Equal(data[:len(ScriptPattern)], ScriptPattern[:]) {
		return nil, fmt.Errorf("pattern mismatch, pattern = %v", hex.EncodeToString(data[:min(len(data), len(ScriptPattern))]))
	}
	script, err := ScriptDecodeFromBytes(data[len(ScriptPattern):])
	if err != nil {
		se.logger.Error("decode script message failed", "err", err)
		return nil, err
	}

	header := script.Header
	mod, find := se.modReg.Find(header.GetModID())
	if !find {
		return nil, fmt.Errorf("could not address module %v", header.GetModID())
	}

	st, err := se.stateCreator.NewState()
	if err != nil {
		return nil, err
	}

	seOutput, err = mod.modHandler(script.Payload, to, txCtx, blockCtx, st)
	if err != nil {
		return seOutput, err
	}
	if stErr := st.Err(); stErr != nil {
		return seOutput, stErr
	}
	if commitErr := st.Commit(); commitErr != nil {
		return seOutput, commitErr
	}
	return seOutput, nil
}

// EncodeScriptData wraps a module body into the script envelope.
func EncodeScriptData(body interface{}) ([]byte, error) {
	modId := uint32(999)
	switch body.(type) {
	case auction.AuctionBody:
		modId = AUCTION_MODULE_ID
	case *auction.AuctionBody:
		modId = AUCTION_MODULE_ID
	default:
		return []byte{}, errors.New("unrecognized body")
	}
	payload, err := rlp.EncodeToBytes(body)
	if err != nil {
		fmt.Printf("rlp encode body failed, %s\n", err.Error())
		return []byte{}, err
	}
	s := &Script{Header: ScriptHeader{Version: uint32(0), ModID: modId}, Payload: payload}
	data, err := rlp.EncodeToBytes(s)
	if err != nil {
		fmt.Printf("rlp encode script data failed, %s\n", err.Error())
		return []byte{}, err
	}
	data = append(ScriptPattern[:], data...)
	return data, nil
}
