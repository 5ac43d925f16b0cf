package chain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meterio/sealed-auction/chain"
	"github.com/meterio/sealed-auction/lvldb"
)

func TestGenesisTimePersisted(t *testing.T) {
	store, err := lvldb.NewMem()
	assert.Nil(t, err)

	c1, err := chain.New(store, 10)
	assert.Nil(t, err)

	// reopening on the same store keeps the genesis instant
	c2, err := chain.New(store, 10)
	assert.Nil(t, err)
	assert.Equal(t, c1.GenesisTime(), c2.GenesisTime())
}

func TestForceBestNumberMonotonic(t *testing.T) {
	store, err := lvldb.NewMem()
	assert.Nil(t, err)
	c, err := chain.New(store, 10)
	assert.Nil(t, err)

	c.ForceBestNumber(120)
	assert.True(t, c.BestNumber() >= 120)

	// heights never go backwards
	c.ForceBestNumber(50)
	assert.True(t, c.BestNumber() >= 120)

	c.ForceBestNumber(151)
	assert.True(t, c.BestNumber() >= 151)
}
