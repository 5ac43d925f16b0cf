// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package meter

// Token kinds handled by the auction engine. Only MTR is escrowed; the
// constant keeps transfer records self-describing.
const (
	MTR byte = 0
)

// Well-known account addresses.
var (
	// AuctionAccountAddr holds every escrowed bid until it is either
	// refunded to an outbid bidder or released to the beneficiary.
	// 0x000000000061756374696f6e2d6163636f756e74
	AuctionAccountAddr = BytesToAddress([]byte("auction-account"))
)

// Storage keys under AuctionAccountAddr.
var (
	AuctionConfigKey = Blake2b([]byte("auction-config-key"))
	AuctionLedgerKey = Blake2b([]byte("auction-ledger-key"))
)
