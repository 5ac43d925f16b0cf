package auction

import (
	"math/big"
	"time"

	"github.com/meterio/sealed-auction/meter"
	setypes "github.com/meterio/sealed-auction/script/types"
)

// HandleWithdraw pays out the caller's refundable balance exactly once per
// accrual. The ledger entry is cleared before the transfer is issued; a
// re-entering call would observe nothing owed. Entry-clear and payout commit
// as one unit: a transfer error aborts the call and the uncommitted state is
// discarded by the engine.
func (a *Auction) HandleWithdraw(env *setypes.ScriptEnv, ab *AuctionBody) (err error) {
	var ret []byte
	start := time.Now()
	defer func() {
		if err != nil {
			ret = []byte(err.Error())
		}
		env.SetReturnData(ret)
		a.logger.Debug("withdraw completed", "elapsed", meter.PrettyDuration(time.Since(start)))
	}()

	state := env.GetState()
	if state.GetAuctionConfig() == nil {
		err = errNotDeployed
		return
	}
	ledger := state.GetAuctionLedger()
	caller := env.GetTxCtx().Origin

	amount, owed := ledger.ClearPending(caller)
	if !owed || amount.Sign() == 0 {
		a.logger.Info("withdraw rejected, nothing owed", "caller", caller)
		env.AddEvent(EV_NOTHING_TO_WITHDRAW, caller, big.NewInt(0))
		err = errNothingToWithdraw
		return
	}

	// ledger mutation first, external transfer second
	state.SetAuctionLedger(ledger)
	if err = env.TransferAuctionMTRTo(caller, amount); err != nil {
		a.logger.Error("withdraw transfer failed", "caller", caller, "amount", amount, "err", err)
		return
	}

	env.AddEvent(EV_MONEY_SENT, caller, amount)
	withdrawCounter.Inc()
	a.logger.Info("withdraw paid", "caller", caller, "amount", amount)
	return
}
