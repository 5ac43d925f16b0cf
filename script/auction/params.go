package auction

// Operations of the auction module.
const (
	OP_BID      = uint32(1)
	OP_WITHDRAW = uint32(2)
	OP_END      = uint32(3)
)

// Notification codes. Every call emits exactly one record: rejections carry
// the reason, acceptances carry the affected address and amount.
const (
	EV_TOO_EARLY           = uint32(1)
	EV_TOO_LATE            = uint32(2)
	EV_BID_TOO_LOW         = uint32(3)
	EV_FIRST_BID_ACCEPTED  = uint32(4)
	EV_BID_ACCEPTED        = uint32(5)
	EV_MONEY_SENT          = uint32(6)
	EV_NOTHING_TO_WITHDRAW = uint32(7)
	EV_AUCTION_STILL_OPEN  = uint32(8)
	EV_AUCTION_ENDED       = uint32(9)
	EV_NOT_ENOUGH_MTR      = uint32(10)
)

func GetOpName(op uint32) string {
	switch op {
	case OP_BID:
		return "Bid"
	case OP_WITHDRAW:
		return "Withdraw"
	case OP_END:
		return "End"
	default:
		return "Unknown"
	}
}

func GetEventName(code uint32) string {
	switch code {
	case EV_TOO_EARLY:
		return "TooEarly"
	case EV_TOO_LATE:
		return "TooLate"
	case EV_BID_TOO_LOW:
		return "BidTooLow"
	case EV_FIRST_BID_ACCEPTED:
		return "FirstBidAccepted"
	case EV_BID_ACCEPTED:
		return "BidAccepted"
	case EV_MONEY_SENT:
		return "MoneySent"
	case EV_NOTHING_TO_WITHDRAW:
		return "NothingToWithdraw"
	case EV_AUCTION_STILL_OPEN:
		return "AuctionStillOpenOrAlreadyEnded"
	case EV_AUCTION_ENDED:
		return "AuctionEnded"
	case EV_NOT_ENOUGH_MTR:
		return "NotEnoughMTR"
	default:
		return "Unknown"
	}
}
