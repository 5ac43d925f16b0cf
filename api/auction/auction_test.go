package auction_test

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	apiauction "github.com/meterio/sealed-auction/api/auction"
	"github.com/meterio/sealed-auction/chain"
	"github.com/meterio/sealed-auction/logdb"
	"github.com/meterio/sealed-auction/lvldb"
	"github.com/meterio/sealed-auction/meter"
	"github.com/meterio/sealed-auction/script"
	"github.com/meterio/sealed-auction/script/auction"
	"github.com/meterio/sealed-auction/state"
)

var (
	bidderA     = meter.BytesToAddress([]byte("api-bidder-a"))
	bidderB     = meter.BytesToAddress([]byte("api-bidder-b"))
	beneficiary = meter.BytesToAddress([]byte("api-beneficiary"))
)

type testServer struct {
	url   string
	chain *chain.Chain
}

func initServer(t *testing.T) *testServer {
	store, err := lvldb.NewMem()
	assert.Nil(t, err)
	creator := state.NewCreator(store)
	engine := script.NewScriptEngine(creator)

	config, err := meter.NewAuctionConfig(100, 50, beneficiary)
	assert.Nil(t, err)
	assert.Nil(t, engine.DeployAuction(config))

	st, err := creator.NewState()
	assert.Nil(t, err)
	st.AddEnergy(bidderA, big.NewInt(1000))
	st.AddEnergy(bidderB, big.NewInt(1000))
	assert.Nil(t, st.Commit())

	// a huge block interval pins the derived height at 0, so the forced
	// height is the only time source
	ch, err := chain.New(store, 1<<30)
	assert.Nil(t, err)

	logDB, err := logdb.NewMem()
	assert.Nil(t, err)

	router := mux.NewRouter()
	apiauction.New(creator, ch, engine, logDB).Mount(router, "/auction")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)

	return &testServer{url: ts.URL, chain: ch}
}

func (ts *testServer) get(t *testing.T, path string, out interface{}) int {
	res, err := http.Get(ts.url + path)
	assert.Nil(t, err)
	defer res.Body.Close()
	if out != nil && res.StatusCode == http.StatusOK {
		body, err := io.ReadAll(res.Body)
		assert.Nil(t, err)
		assert.Nil(t, json.Unmarshal(body, out))
	}
	return res.StatusCode
}

func (ts *testServer) submit(t *testing.T, body *auction.AuctionBody, origin meter.Address, height uint32) *apiauction.SubmitResult {
	ts.chain.ForceBestNumber(height)
	raw, err := script.EncodeScriptData(body)
	assert.Nil(t, err)
	reqBody, err := json.Marshal(&apiauction.SubmitRequest{
		Raw:    "0x" + hex.EncodeToString(raw),
		Origin: origin.String(),
	})
	assert.Nil(t, err)

	res, err := http.Post(ts.url+"/auction/submit", "application/json", bytes.NewReader(reqBody))
	assert.Nil(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var result apiauction.SubmitResult
	resBody, err := io.ReadAll(res.Body)
	assert.Nil(t, err)
	assert.Nil(t, json.Unmarshal(resBody, &result))
	return &result
}

func TestGetConfig(t *testing.T) {
	ts := initServer(t)

	var config apiauction.Config
	assert.Equal(t, http.StatusOK, ts.get(t, "/auction/config", &config))
	assert.Equal(t, uint32(100), config.StartHeight)
	assert.Equal(t, uint32(50), config.Duration)
	assert.Equal(t, uint32(150), config.EndHeight)
	assert.Equal(t, beneficiary.String(), config.Beneficiary)
}

func TestSubmitBidAndReadLedger(t *testing.T) {
	ts := initServer(t)

	result := ts.submit(t, &auction.AuctionBody{
		Opcode: auction.OP_BID,
		Bidder: bidderA,
		Amount: big.NewInt(10),
		Nonce:  1,
	}, bidderA, 120)
	assert.True(t, result.Success)
	assert.Equal(t, 1, len(result.Events))
	assert.Equal(t, "FirstBidAccepted", result.Events[0].Name)
	assert.Equal(t, 1, len(result.Transfers))

	result = ts.submit(t, &auction.AuctionBody{
		Opcode: auction.OP_BID,
		Bidder: bidderB,
		Amount: big.NewInt(20),
		Nonce:  2,
	}, bidderB, 130)
	assert.True(t, result.Success)
	assert.Equal(t, "BidAccepted", result.Events[0].Name)

	var ledger apiauction.Ledger
	assert.Equal(t, http.StatusOK, ts.get(t, "/auction/ledger", &ledger))
	assert.False(t, ledger.Ended)
	assert.Equal(t, "Open", ledger.Phase)
	assert.Equal(t, "20", ledger.HighestBid)
	assert.NotNil(t, ledger.HighestBidder)
	assert.Equal(t, bidderB.String(), *ledger.HighestBidder)
	assert.Equal(t, 1, len(ledger.PendingReturns))
	assert.Equal(t, bidderA.String(), ledger.PendingReturns[0].Address)
	assert.Equal(t, "10", ledger.PendingReturns[0].Amount)

	var pending apiauction.PendingReturn
	assert.Equal(t, http.StatusOK, ts.get(t, "/auction/pending/"+bidderA.String(), &pending))
	assert.Equal(t, "10", pending.Amount)

	// events of both calls were logged
	var events []apiauction.Event
	assert.Equal(t, http.StatusOK, ts.get(t, "/auction/events", &events))
	assert.Equal(t, 2, len(events))

	var transfers []apiauction.Transfer
	assert.Equal(t, http.StatusOK, ts.get(t, "/auction/transfers?recipient="+meter.AuctionAccountAddr.String(), &transfers))
	assert.Equal(t, 2, len(transfers))
}

func TestSubmitRejectionIsLogged(t *testing.T) {
	ts := initServer(t)

	result := ts.submit(t, &auction.AuctionBody{
		Opcode: auction.OP_BID,
		Bidder: bidderA,
		Amount: big.NewInt(10),
		Nonce:  1,
	}, bidderA, 99)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
	assert.Equal(t, 1, len(result.Events))
	assert.Equal(t, "TooEarly", result.Events[0].Name)

	// the rejection notification is queryable afterwards
	var events []apiauction.Event
	assert.Equal(t, http.StatusOK, ts.get(t, "/auction/events?code=1", &events))
	assert.Equal(t, 1, len(events))
	assert.Equal(t, bidderA.String(), events[0].Address)
}

func TestSubmitBadRequests(t *testing.T) {
	ts := initServer(t)

	res, err := http.Post(ts.url+"/auction/submit", "application/json", bytes.NewReader([]byte("{not json")))
	assert.Nil(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	body, err := json.Marshal(&apiauction.SubmitRequest{Raw: "0xzz", Origin: bidderA.String()})
	assert.Nil(t, err)
	res, err = http.Post(ts.url+"/auction/submit", "application/json", bytes.NewReader(body))
	assert.Nil(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestGetPendingBadAddress(t *testing.T) {
	ts := initServer(t)
	assert.Equal(t, http.StatusBadRequest, ts.get(t, "/auction/pending/xyz", nil))
}
