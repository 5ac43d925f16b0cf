// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package meter

import (
	"errors"
	"fmt"
)

// Phase of the auction derived from the ambient block height.
type Phase uint8

const (
	PhaseNotStarted Phase = iota
	PhaseOpen
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "NotStarted"
	case PhaseOpen:
		return "Open"
	case PhaseClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// AuctionConfig deployment-time parameters, set once and read-only for the
// lifetime of the instance. Bids are legal on the half-open height interval
// (StartHeight, StartHeight+Duration].
type AuctionConfig struct {
	StartHeight uint32
	Duration    uint32
	Beneficiary Address
}

func NewAuctionConfig(startHeight, duration uint32, beneficiary Address) (*AuctionConfig, error) {
	if duration == 0 {
		return nil, errors.New("auction duration must be positive")
	}
	return &AuctionConfig{
		StartHeight: startHeight,
		Duration:    duration,
		Beneficiary: beneficiary,
	}, nil
}

// EndHeight last height at which bidding is still legal.
func (c *AuctionConfig) EndHeight() uint32 {
	return c.StartHeight + c.Duration
}

// PhaseAt derives the auction phase from a height snapshot. The open
// boundary is exclusive, the close boundary inclusive: a bid exactly at
// StartHeight is still NotStarted, a bid exactly at EndHeight is still Open.
func (c *AuctionConfig) PhaseAt(height uint32) Phase {
	if height <= c.StartHeight {
		return PhaseNotStarted
	}
	if height <= c.EndHeight() {
		return PhaseOpen
	}
	return PhaseClosed
}

func (c *AuctionConfig) ToString() string {
	return fmt.Sprintf("AuctionConfig(startHeight=%v, duration=%v, endHeight=%v, beneficiary=%v)",
		c.StartHeight, c.Duration, c.EndHeight(), c.Beneficiary)
}
