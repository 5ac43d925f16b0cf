// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/meterio/sealed-auction/kv"
)

var (
	bestHeightGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "best_height",
		Help: "Best block height",
	})
	registerOnce sync.Once
)

var genesisTimeKey = []byte("c/genesis-time")

// Chain is the height oracle: a monotonically increasing block counter used
// as the engine's sole time source. Height is derived from wall-clock time
// since the persisted genesis instant, one block per BlockInterval seconds,
// and can only move forward. It's thread-safe.
type Chain struct {
	rw          sync.RWMutex
	genesisTime uint64
	interval    uint64
	forcedBest  uint32
}

// New opens the chain on the given store, persisting the genesis instant on
// first use so the height survives restarts.
func New(store kv.GetPutter, blockInterval uint64) (*Chain, error) {
	registerOnce.Do(func() {
		prometheus.MustRegister(bestHeightGauge)
	})

	var genesisTime uint64
	has, err := store.Has(genesisTimeKey)
	if err != nil {
		return nil, err
	}
	if has {
		raw, err := store.Get(genesisTimeKey)
		if err != nil {
			return nil, err
		}
		genesisTime = binary.BigEndian.Uint64(raw)
	} else {
		genesisTime = uint64(time.Now().Unix())
		var raw [8]byte
		binary.BigEndian.PutUint64(raw[:], genesisTime)
		if err := store.Put(genesisTimeKey, raw[:]); err != nil {
			return nil, err
		}
	}

	return &Chain{
		genesisTime: genesisTime,
		interval:    blockInterval,
	}, nil
}

// GenesisTime unix seconds of block 0.
func (c *Chain) GenesisTime() uint64 {
	return c.genesisTime
}

// BestNumber current block height snapshot.
func (c *Chain) BestNumber() uint32 {
	c.rw.RLock()
	defer c.rw.RUnlock()

	now := uint64(time.Now().Unix())
	derived := uint32(0)
	if now > c.genesisTime {
		derived = uint32((now - c.genesisTime) / c.interval)
	}
	best := derived
	if c.forcedBest > best {
		best = c.forcedBest
	}
	bestHeightGauge.Set(float64(best))
	return best
}

// ForceBestNumber moves the height forward to at least n. Heights never go
// backwards; a lower n is ignored.
func (c *Chain) ForceBestNumber(n uint32) {
	c.rw.Lock()
	defer c.rw.Unlock()
	if n > c.forcedBest {
		c.forcedBest = n
	}
}
