package genesis_test

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meterio/sealed-auction/genesis"
	"github.com/meterio/sealed-auction/lvldb"
	"github.com/meterio/sealed-auction/meter"
	"github.com/meterio/sealed-auction/state"
)

func TestLoadAccounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genesis.json")
	content := `[{"address":"0x0000000000000000000000000000000000000001","balance":"1000"}]`
	assert.Nil(t, os.WriteFile(path, []byte(content), 0600))

	accounts, err := genesis.LoadAccounts(path)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(accounts))
	assert.Equal(t, "1000", accounts[0].Balance)

	_, err = genesis.LoadAccounts(filepath.Join(t.TempDir(), "missing.json"))
	assert.NotNil(t, err)
}

func TestBuildAppliesOnce(t *testing.T) {
	store, err := lvldb.NewMem()
	assert.Nil(t, err)
	creator := state.NewCreator(store)

	accounts := []genesis.Account{
		{Address: "0x0000000000000000000000000000000000000001", Balance: "1000"},
	}
	addr := meter.MustParseAddress("0x0000000000000000000000000000000000000001")

	st, err := creator.NewState()
	assert.Nil(t, err)
	assert.Nil(t, genesis.Build(st, accounts))

	st2, err := creator.NewState()
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(1000), st2.GetEnergy(addr))

	// spend some, then re-run genesis: balances are not re-minted
	st2.SubEnergy(addr, big.NewInt(400))
	assert.Nil(t, st2.Commit())

	st3, err := creator.NewState()
	assert.Nil(t, err)
	assert.Nil(t, genesis.Build(st3, accounts))

	st4, err := creator.NewState()
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(600), st4.GetEnergy(addr))
}

func TestBuildRejectsBadInput(t *testing.T) {
	store, err := lvldb.NewMem()
	assert.Nil(t, err)
	creator := state.NewCreator(store)

	st, err := creator.NewState()
	assert.Nil(t, err)
	err = genesis.Build(st, []genesis.Account{{Address: "not-an-address", Balance: "10"}})
	assert.NotNil(t, err)

	st, err = creator.NewState()
	assert.Nil(t, err)
	err = genesis.Build(st, []genesis.Account{{Address: "0x0000000000000000000000000000000000000001", Balance: "-5"}})
	assert.NotNil(t, err)
}
