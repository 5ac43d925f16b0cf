package auction

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	bidAcceptedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "auction_bid_accepted_total",
		Help: "Total number of accepted bids",
	})
	bidRejectedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auction_bid_rejected_total",
		Help: "Total number of rejected bids",
	}, []string{"reason"})
	withdrawCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "auction_withdraw_paid_total",
		Help: "Total number of paid withdrawals",
	})
	highestBidGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "auction_highest_bid_mtr",
		Help: "Current highest bid in MTR",
	})
	auctionEndedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "auction_ended",
		Help: "Whether the auction has been finalized",
	})
)

func init() {
	prometheus.MustRegister(bidAcceptedCounter)
	prometheus.MustRegister(bidRejectedCounter)
	prometheus.MustRegister(withdrawCounter)
	prometheus.MustRegister(highestBidGauge)
	prometheus.MustRegister(auctionEndedGauge)
}
