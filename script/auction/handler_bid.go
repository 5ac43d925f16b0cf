package auction

import (
	"math/big"
	"time"

	"github.com/meterio/sealed-auction/meter"
	setypes "github.com/meterio/sealed-auction/script/types"
)

// HandleBid runs the bid decision procedure: guard clauses evaluated in
// order, first match wins. Only the final accept clause mutates the ledger;
// displacing the previous leader and installing the new one happen in the
// same call frame, so no intermediate state is observable.
func (a *Auction) HandleBid(env *setypes.ScriptEnv, ab *AuctionBody) (err error) {
	var ret []byte
	start := time.Now()
	defer func() {
		if err != nil {
			ret = []byte(err.Error())
		}
		env.SetReturnData(ret)
		a.logger.Debug("bid completed", "elapsed", meter.PrettyDuration(time.Since(start)))
	}()

	state := env.GetState()
	config := state.GetAuctionConfig()
	if config == nil {
		err = errNotDeployed
		return
	}
	ledger := state.GetAuctionLedger()
	number := env.GetBlockNum()

	// bidding is legal exactly on (StartHeight, EndHeight]
	if number <= config.StartHeight {
		a.logger.Info("bid rejected, auction not open yet", "bidder", ab.Bidder, "height", number, "startHeight", config.StartHeight)
		env.AddEvent(EV_TOO_EARLY, ab.Bidder, ab.Amount)
		bidRejectedCounter.WithLabelValues("tooEarly").Inc()
		err = errTooEarly
		return
	}

	if ledger.Ended || number >= config.EndHeight()+1 {
		a.logger.Info("bid rejected, auction closed", "bidder", ab.Bidder, "height", number, "endHeight", config.EndHeight(), "ended", ledger.Ended)
		env.AddEvent(EV_TOO_LATE, ab.Bidder, ab.Amount)
		bidRejectedCounter.WithLabelValues("tooLate").Inc()
		err = errTooLate
		return
	}

	// strictly-greater comparison, a bid equal to the current highest loses
	if ab.Amount.Cmp(ledger.HighestBid) <= 0 {
		a.logger.Info("bid rejected, not higher than current highest", "bidder", ab.Bidder, "amount", ab.Amount, "highestBid", ledger.HighestBid)
		env.AddEvent(EV_BID_TOO_LOW, ab.Bidder, ab.Amount)
		bidRejectedCounter.WithLabelValues("bidTooLow").Inc()
		err = errBidTooLow
		return
	}

	// accept the incoming value transfer; irreversible from here on
	if err = env.TransferMTRToAuction(ab.Bidder, ab.Amount); err != nil {
		a.logger.Warn("bid transfer failed", "bidder", ab.Bidder, "amount", ab.Amount, "err", err)
		env.AddEvent(EV_NOT_ENOUGH_MTR, ab.Bidder, ab.Amount)
		bidRejectedCounter.WithLabelValues("notEnoughMTR").Inc()
		err = errNotEnoughMTR
		return
	}

	code := EV_FIRST_BID_ACCEPTED
	if ledger.HasLeader() {
		// the displaced leader's stake becomes refundable; additive because
		// a single address may be outbid multiple times
		ledger.CreditPending(*ledger.HighestBidder, ledger.HighestBid)
		code = EV_BID_ACCEPTED
	}

	bidder := ab.Bidder
	ledger.HighestBidder = &bidder
	ledger.HighestBid = new(big.Int).Set(ab.Amount)
	ledger.RcvdMTR = new(big.Int).Add(ledger.RcvdMTR, ab.Amount)

	state.SetAuctionLedger(ledger)
	env.AddEvent(code, ab.Bidder, ab.Amount)

	bidAcceptedCounter.Inc()
	highestBidGauge.Set(float64(new(big.Int).Div(ledger.HighestBid, big.NewInt(1e18)).Int64()))
	a.logger.Info("bid accepted", "bidder", ab.Bidder, "amount", ab.Amount, "height", number)
	return
}
