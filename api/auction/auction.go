package auction

import (
	"encoding/binary"
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/meterio/sealed-auction/api/utils"
	"github.com/meterio/sealed-auction/chain"
	"github.com/meterio/sealed-auction/logdb"
	"github.com/meterio/sealed-auction/meter"
	"github.com/meterio/sealed-auction/script"
	"github.com/meterio/sealed-auction/state"
	"github.com/meterio/sealed-auction/xenv"
)

// Auction read surface plus the submit endpoint. Reads go straight to state;
// submissions run through the script engine, and their notifications are
// appended to the log db afterwards.
type Auction struct {
	stateCreator *state.Creator
	chain        *chain.Chain
	engine       *script.ScriptEngine
	logDB        *logdb.LogDB
}

func New(stateCreator *state.Creator, ch *chain.Chain, engine *script.ScriptEngine, logDB *logdb.LogDB) *Auction {
	return &Auction{
		stateCreator: stateCreator,
		chain:        ch,
		engine:       engine,
		logDB:        logDB,
	}
}

func (at *Auction) handleGetConfig(w http.ResponseWriter, req *http.Request) error {
	st, err := at.stateCreator.NewState()
	if err != nil {
		return err
	}
	config := st.GetAuctionConfig()
	if config == nil {
		return utils.HTTPError(errors.New("auction not deployed"), http.StatusNotFound)
	}
	return utils.WriteJSON(w, convertConfig(config))
}

func (at *Auction) handleGetLedger(w http.ResponseWriter, req *http.Request) error {
	st, err := at.stateCreator.NewState()
	if err != nil {
		return err
	}
	config := st.GetAuctionConfig()
	if config == nil {
		return utils.HTTPError(errors.New("auction not deployed"), http.StatusNotFound)
	}
	height := at.chain.BestNumber()
	return utils.WriteJSON(w, convertLedger(st.GetAuctionLedger(), config.PhaseAt(height), height))
}

func (at *Auction) handleGetPending(w http.ResponseWriter, req *http.Request) error {
	addr, err := meter.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	st, err := at.stateCreator.NewState()
	if err != nil {
		return err
	}
	ledger := st.GetAuctionLedger()
	return utils.WriteJSON(w, &PendingReturn{
		Address: addr.String(),
		Amount:  ledger.PendingOf(addr).String(),
	})
}

func (at *Auction) handleGetEvents(w http.ResponseWriter, req *http.Request) error {
	filter, err := parseEventFilter(req)
	if err != nil {
		return utils.BadRequest(err)
	}
	events, err := at.logDB.FilterEvents(req.Context(), filter)
	if err != nil {
		return err
	}
	converted := make([]Event, 0, len(events))
	for _, ev := range events {
		converted = append(converted, convertEvent(ev))
	}
	return utils.WriteJSON(w, converted)
}

func (at *Auction) handleGetTransfers(w http.ResponseWriter, req *http.Request) error {
	filter, err := parseTransferFilter(req)
	if err != nil {
		return utils.BadRequest(err)
	}
	transfers, err := at.logDB.FilterTransfers(req.Context(), filter)
	if err != nil {
		return err
	}
	converted := make([]Transfer, 0, len(transfers))
	for _, tr := range transfers {
		converted = append(converted, convertTransfer(tr))
	}
	return utils.WriteJSON(w, converted)
}

func (at *Auction) handleSubmit(w http.ResponseWriter, req *http.Request) error {
	var sr SubmitRequest
	if err := utils.ParseJSON(req.Body, &sr); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	origin, err := meter.ParseAddress(sr.Origin)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "origin"))
	}
	raw, err := hex.DecodeString(strings.TrimPrefix(sr.Raw, "0x"))
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "raw"))
	}

	height := at.chain.BestNumber()
	now := uint64(time.Now().UnixNano())
	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], now)
	txCtx := &xenv.TransactionContext{
		ID:     meter.Blake2b(raw, origin.Bytes(), nonce[:]),
		Origin: origin,
		Nonce:  now,
	}
	blockCtx := &xenv.BlockContext{
		Number: height,
		Time:   uint64(time.Now().Unix()),
	}

	out, execErr := at.engine.HandleScriptData(raw, &meter.AuctionAccountAddr, txCtx, blockCtx)

	result := &SubmitResult{
		Success:   execErr == nil,
		Height:    height,
		Events:    make([]Event, 0),
		Transfers: make([]Transfer, 0),
	}
	if execErr != nil {
		result.Error = execErr.Error()
	}
	if out != nil {
		if data := out.GetData(); len(data) > 0 {
			result.ReturnData = string(data)
		}
		// rejections carry their notification too
		if err := at.logDB.Log(height, txCtx.ID, origin, out.GetEvents(), out.GetTransfers()); err != nil {
			return err
		}
		for _, ev := range out.GetEvents() {
			result.Events = append(result.Events, convertEvent(&logdb.Event{
				BlockNumber: height,
				TxID:        txCtx.ID,
				TxOrigin:    origin,
				Code:        ev.Code,
				Address:     ev.Address,
				Amount:      ev.Amount,
			}))
		}
		for _, tr := range out.GetTransfers() {
			result.Transfers = append(result.Transfers, convertTransfer(&logdb.Transfer{
				BlockNumber: height,
				TxID:        txCtx.ID,
				TxOrigin:    origin,
				Sender:      tr.Sender,
				Recipient:   tr.Recipient,
				Amount:      tr.Amount,
				Token:       uint32(tr.Token),
			}))
		}
	}
	return utils.WriteJSON(w, result)
}

func parseEventFilter(req *http.Request) (*logdb.EventFilter, error) {
	filter := &logdb.EventFilter{}
	query := req.URL.Query()
	rng, err := parseRange(query.Get("from"), query.Get("to"))
	if err != nil {
		return nil, err
	}
	filter.Range = rng
	if s := query.Get("code"); s != "" {
		code, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return nil, errors.WithMessage(err, "code")
		}
		c := uint32(code)
		filter.Code = &c
	}
	if s := query.Get("address"); s != "" {
		addr, err := meter.ParseAddress(s)
		if err != nil {
			return nil, errors.WithMessage(err, "address")
		}
		filter.Address = &addr
	}
	if query.Get("order") == "desc" {
		filter.Order = logdb.DESC
	}
	filter.Options, err = parseOptions(query.Get("offset"), query.Get("limit"))
	if err != nil {
		return nil, err
	}
	return filter, nil
}

func parseTransferFilter(req *http.Request) (*logdb.TransferFilter, error) {
	filter := &logdb.TransferFilter{}
	query := req.URL.Query()
	rng, err := parseRange(query.Get("from"), query.Get("to"))
	if err != nil {
		return nil, err
	}
	filter.Range = rng
	if s := query.Get("sender"); s != "" {
		addr, err := meter.ParseAddress(s)
		if err != nil {
			return nil, errors.WithMessage(err, "sender")
		}
		filter.Sender = &addr
	}
	if s := query.Get("recipient"); s != "" {
		addr, err := meter.ParseAddress(s)
		if err != nil {
			return nil, errors.WithMessage(err, "recipient")
		}
		filter.Recipient = &addr
	}
	if query.Get("order") == "desc" {
		filter.Order = logdb.DESC
	}
	filter.Options, err = parseOptions(query.Get("offset"), query.Get("limit"))
	if err != nil {
		return nil, err
	}
	return filter, nil
}

func parseRange(fromStr, toStr string) (*logdb.Range, error) {
	if fromStr == "" && toStr == "" {
		return nil, nil
	}
	rng := &logdb.Range{}
	if fromStr != "" {
		from, err := strconv.ParseUint(fromStr, 10, 32)
		if err != nil {
			return nil, errors.WithMessage(err, "from")
		}
		rng.From = uint32(from)
	}
	if toStr != "" {
		to, err := strconv.ParseUint(toStr, 10, 32)
		if err != nil {
			return nil, errors.WithMessage(err, "to")
		}
		rng.To = uint32(to)
	} else {
		rng.To = ^uint32(0)
	}
	return rng, nil
}

func parseOptions(offsetStr, limitStr string) (*logdb.Options, error) {
	if offsetStr == "" && limitStr == "" {
		return nil, nil
	}
	opts := &logdb.Options{Limit: 1000}
	if offsetStr != "" {
		offset, err := strconv.ParseUint(offsetStr, 10, 64)
		if err != nil {
			return nil, errors.WithMessage(err, "offset")
		}
		opts.Offset = offset
	}
	if limitStr != "" {
		limit, err := strconv.ParseUint(limitStr, 10, 64)
		if err != nil {
			return nil, errors.WithMessage(err, "limit")
		}
		opts.Limit = limit
	}
	return opts, nil
}

func (at *Auction) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/config").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(at.handleGetConfig))
	sub.Path("/ledger").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(at.handleGetLedger))
	sub.Path("/pending/{address}").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(at.handleGetPending))
	sub.Path("/events").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(at.handleGetEvents))
	sub.Path("/transfers").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(at.handleGetTransfers))
	sub.Path("/submit").Methods("POST").HandlerFunc(utils.WrapHandlerFunc(at.handleSubmit))
}
