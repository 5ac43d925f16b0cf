package auction

import (
	"github.com/meterio/sealed-auction/logdb"
	"github.com/meterio/sealed-auction/meter"
	"github.com/meterio/sealed-auction/script/auction"
)

type Config struct {
	StartHeight uint32 `json:"startHeight"`
	Duration    uint32 `json:"duration"`
	EndHeight   uint32 `json:"endHeight"`
	Beneficiary string `json:"beneficiary"`
}

type PendingReturn struct {
	Address string `json:"address"`
	Amount  string `json:"amount"`
}

type Ledger struct {
	Ended          bool            `json:"ended"`
	Phase          string          `json:"phase"`
	Height         uint32          `json:"height"`
	HighestBid     string          `json:"highestBid"`
	HighestBidder  *string         `json:"highestBidder"`
	RcvdMTR        string          `json:"rcvdMTR"`
	PendingReturns []PendingReturn `json:"pendingReturns"`
}

type Event struct {
	BlockNumber uint32 `json:"blockNumber"`
	Code        uint32 `json:"code"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Amount      string `json:"amount"`
	TxID        string `json:"txID"`
	TxOrigin    string `json:"txOrigin"`
}

type Transfer struct {
	BlockNumber uint32 `json:"blockNumber"`
	Sender      string `json:"sender"`
	Recipient   string `json:"recipient"`
	Amount      string `json:"amount"`
	TxID        string `json:"txID"`
	TxOrigin    string `json:"txOrigin"`
}

type SubmitRequest struct {
	Raw    string `json:"raw"`
	Origin string `json:"origin"`
}

type SubmitResult struct {
	Success    bool       `json:"success"`
	Error      string     `json:"error,omitempty"`
	ReturnData string     `json:"returnData,omitempty"`
	Height     uint32     `json:"height"`
	Events     []Event    `json:"events"`
	Transfers  []Transfer `json:"transfers"`
}

func convertConfig(c *meter.AuctionConfig) *Config {
	return &Config{
		StartHeight: c.StartHeight,
		Duration:    c.Duration,
		EndHeight:   c.EndHeight(),
		Beneficiary: c.Beneficiary.String(),
	}
}

func convertLedger(l *meter.AuctionLedger, phase meter.Phase, height uint32) *Ledger {
	var leader *string
	if l.HighestBidder != nil {
		s := l.HighestBidder.String()
		leader = &s
	}
	pendings := make([]PendingReturn, 0, len(l.PendingReturns))
	for _, p := range l.PendingReturns {
		pendings = append(pendings, PendingReturn{
			Address: p.Address.String(),
			Amount:  p.Amount.String(),
		})
	}
	return &Ledger{
		Ended:          l.Ended,
		Phase:          phase.String(),
		Height:         height,
		HighestBid:     l.HighestBid.String(),
		HighestBidder:  leader,
		RcvdMTR:        l.RcvdMTR.String(),
		PendingReturns: pendings,
	}
}

func convertEvent(ev *logdb.Event) Event {
	return Event{
		BlockNumber: ev.BlockNumber,
		Code:        ev.Code,
		Name:        auction.GetEventName(ev.Code),
		Address:     ev.Address.String(),
		Amount:      ev.Amount.String(),
		TxID:        ev.TxID.String(),
		TxOrigin:    ev.TxOrigin.String(),
	}
}

func convertTransfer(tr *logdb.Transfer) Transfer {
	return Transfer{
		BlockNumber: tr.BlockNumber,
		Sender:      tr.Sender.String(),
		Recipient:   tr.Recipient.String(),
		Amount:      tr.Amount.String(),
		TxID:        tr.TxID.String(),
		TxOrigin:    tr.TxOrigin.String(),
	}
}
