package auction

import (
	"time"

	"github.com/meterio/sealed-auction/meter"
	setypes "github.com/meterio/sealed-auction/script/types"
)

// HandleClose finalizes the auction: flips the lifecycle flag and releases
// the winning amount to the beneficiary. The Ended flag guards idempotence,
// so the payout fires exactly once however many times close is invoked.
func (a *Auction) HandleClose(env *setypes.ScriptEnv, ab *AuctionBody) (err error) {
	var ret []byte
	start := time.Now()
	defer func() {
		if err != nil {
			ret = []byte(err.Error())
		}
		env.SetReturnData(ret)
		a.logger.Debug("close completed", "elapsed", meter.PrettyDuration(time.Since(start)))
	}()

	state := env.GetState()
	config := state.GetAuctionConfig()
	if config == nil {
		err = errNotDeployed
		return
	}
	ledger := state.GetAuctionLedger()
	number := env.GetBlockNum()
	caller := env.GetTxCtx().Origin

	// finalize is legal only strictly after EndHeight, bidding stays legal
	// through EndHeight inclusive
	if number <= config.EndHeight() || ledger.Ended {
		a.logger.Info("close rejected", "height", number, "endHeight", config.EndHeight(), "ended", ledger.Ended)
		env.AddEvent(EV_AUCTION_STILL_OPEN, caller, ledger.HighestBid)
		err = errStillOpenOrEnded
		return
	}

	ledger.Ended = true
	state.SetAuctionLedger(ledger)

	env.AddEvent(EV_AUCTION_ENDED, config.Beneficiary, ledger.HighestBid)
	if err = env.TransferAuctionMTRTo(config.Beneficiary, ledger.HighestBid); err != nil {
		a.logger.Error("beneficiary payout failed", "beneficiary", config.Beneficiary, "amount", ledger.HighestBid, "err", err)
		return
	}

	auctionEndedGauge.Set(1)
	a.logger.Info("auction ended", "beneficiary", config.Beneficiary, "winningBid", ledger.HighestBid, "height", number)
	return
}
