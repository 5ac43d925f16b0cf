// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"

	"github.com/meterio/sealed-auction/kv"
	"github.com/meterio/sealed-auction/meter"
)

// State manages account balances and per-account storage slots on top of a
// key-value store. Reads go through an in-memory journal first, so a state
// instance sees its own pending writes; nothing reaches the underlying store
// until Commit. Discarding a state instance that was never committed leaves
// the store untouched, which is how a failed operation rolls back as one
// indivisible unit.
type State struct {
	kv      kv.GetPutter
	journal map[string][]byte
	err     error
}

// New create a state object backed by the given kv store.
func New(kv kv.GetPutter) (*State, error) {
	return &State{
		kv:      kv,
		journal: make(map[string][]byte),
	}, nil
}

// Err returns the first error encountered by any accessor.
func (s *State) Err() error {
	return s.err
}

func (s *State) setError(err error) {
	if s.err == nil {
		s.err = err
	}
}

func energyKey(addr meter.Address) []byte {
	return append([]byte("a/"), addr.Bytes()...)
}

func storageKey(addr meter.Address, key meter.Bytes32) []byte {
	k := append([]byte("s/"), addr.Bytes()...)
	return append(k, key.Bytes()...)
}

func (s *State) getRaw(key []byte) []byte {
	if v, ok := s.journal[string(key)]; ok {
		return v
	}
	has, err := s.kv.Has(key)
	if err != nil {
		s.setError(err)
		return nil
	}
	if !has {
		return nil
	}
	v, err := s.kv.Get(key)
	if err != nil {
		s.setError(err)
		return nil
	}
	return v
}

func (s *State) setRaw(key, value []byte) {
	s.journal[string(key)] = value
}

// GetEnergy returns the MTR balance of the given account.
func (s *State) GetEnergy(addr meter.Address) *big.Int {
	raw := s.getRaw(energyKey(addr))
	if len(raw) == 0 {
		return big.NewInt(0)
	}
	return new(big.Int).SetBytes(raw)
}

// SetEnergy sets the MTR balance of the given account.
func (s *State) SetEnergy(addr meter.Address, balance *big.Int) {
	s.setRaw(energyKey(addr), balance.Bytes())
}

// AddEnergy adds amount to the account's MTR balance.
func (s *State) AddEnergy(addr meter.Address, amount *big.Int) {
	if amount.Sign() == 0 {
		return
	}
	s.SetEnergy(addr, new(big.Int).Add(s.GetEnergy(addr), amount))
}

// SubEnergy subtracts amount from the account's MTR balance. It returns
// false and leaves the balance untouched if the balance is insufficient.
func (s *State) SubEnergy(addr meter.Address, amount *big.Int) bool {
	if amount.Sign() == 0 {
		return true
	}
	balance := s.GetEnergy(addr)
	if balance.Cmp(amount) < 0 {
		return false
	}
	s.SetEnergy(addr, new(big.Int).Sub(balance, amount))
	return true
}

// EncodeStorage set storage value encoded by given enc method.
func (s *State) EncodeStorage(addr meter.Address, key meter.Bytes32, enc func() ([]byte, error)) {
	raw, err := enc()
	if err != nil {
		s.setError(err)
		return
	}
	s.setRaw(storageKey(addr, key), raw)
}

// DecodeStorage get and decode storage value.
func (s *State) DecodeStorage(addr meter.Address, key meter.Bytes32, dec func([]byte) error) {
	raw := s.getRaw(storageKey(addr, key))
	if err := dec(raw); err != nil {
		s.setError(err)
	}
}

// Commit flushes journaled writes into the underlying kv store as one batch.
func (s *State) Commit() error {
	if s.err != nil {
		return s.err
	}
	type batcher interface {
		NewBatch() kv.Batch
	}
	if b, ok := s.kv.(batcher); ok {
		batch := b.NewBatch()
		for k, v := range s.journal {
			if err := batch.Put([]byte(k), v); err != nil {
				return err
			}
		}
		if err := batch.Write(); err != nil {
			return err
		}
	} else {
		for k, v := range s.journal {
			if err := s.kv.Put([]byte(k), v); err != nil {
				return err
			}
		}
	}
	s.journal = make(map[string][]byte)
	return nil
}
