package domain

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

var (
	Big0  = big.NewInt(0)
	Big1  = big.NewInt(1)
	Big10 = big.NewInt(10)
)

type SortDir int8

const (
	SortDirAsc  = 1
	SortDirDesc = -1
)

type ChainId int32

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

// BurnAddress receives tokens that are taken out of circulation
const BurnAddress = Address("0x000000000000000000000000000000000000dead")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

// Checksum returns the EIP-55 form of the address
func (a Address) Checksum() string {
	return common.HexToAddress(string(a)).Hex()
}

// IsHex reports whether a is a 20 bytes hex address
func (a Address) IsHex() bool {
	return common.IsHexAddress(string(a))
}

// ToBigInt parses base 10 integer strings
func ToBigInt(nums []string) ([]*big.Int, error) {
	var bns []*big.Int
	for _, n := range nums {
		bn, ok := new(big.Int).SetString(n, 10)
		if !ok {
			return nil, ErrInvalidNumberFormat
		}
		bns = append(bns, bn)
	}
	return bns, nil
}

// CopyBig returns a detached copy, nil is treated as zero
func CopyBig(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}

// ParseBig parses a base 10 integer, the empty string is zero
func ParseBig(s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}
	bn, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, ErrInvalidNumberFormat
	}
	return bn, nil
}

// BigString formats v in base 10, nil is zero
func BigString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
