// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package meter

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Address address of account.
type Address common.Address

var (
	// ZeroAddress the all-zero address, used as the sender of mint transfers.
	ZeroAddress = BytesToAddress([]byte{})
)

// String implements the stringer interface.
func (a Address) String() string {
	return common.Address(a).Hex()
}

// AbbrevString returns the abbreviated form 0xab...cdef.
func (a Address) AbbrevString() string {
	hex := common.Address(a).Hex()
	return hex[:4] + "..." + hex[len(hex)-4:]
}

// Bytes returns byte slice form of address.
func (a Address) Bytes() []byte {
	return a[:]
}

// IsZero returns if address is all zero.
func (a Address) IsZero() bool {
	return a == Address{}
}

// Compare compares two addresses byte-wise.
func (a Address) Compare(b Address) int {
	return bytes.Compare(a.Bytes(), b.Bytes())
}

// ParseAddress convert string presented address into Address type.
func ParseAddress(s string) (Address, error) {
	if len(s) == 2*common.AddressLength {
		// try to append prefix
		s = "0x" + s
	} else if len(s) != 2*common.AddressLength+2 {
		return Address{}, fmt.Errorf("address literal must have 40 hex chars with optional 0x prefix")
	}
	if !common.IsHexAddress(s) {
		return Address{}, fmt.Errorf("invalid address literal %q", s)
	}
	return Address(common.HexToAddress(s)), nil
}

// MustParseAddress convert string presented address into Address type, panic on error.
func MustParseAddress(s string) Address {
	addr, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return addr
}

// BytesToAddress converts bytes slice into address.
// If b is larger than address legnth, b will be cropped (from the left).
// If b is smaller than address length, b will be extended (from the left).
func BytesToAddress(b []byte) Address {
	return Address(common.BytesToAddress(b))
}
