// Copyright 2024 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package program is a small fluent bytecode builder for assembling legacy
// and EOF code slices without hand-encoding opcode bytes. The driver's own
// tests in core/vm build their fixtures by hand and do not use it. It knows opcode byte values; it knows nothing about opcode
// semantics, which is out of the driver's scope.
package program

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/ethdual/evmcore/core/vm"
)

// Program accumulates bytecode. The zero value is not usable; start with
// New.
type Program struct {
	code []byte
}

// New returns an empty program.
func New() *Program {
	return &Program{code: make([]byte, 0, 32)}
}

// Op appends one or more raw opcode bytes.
func (p *Program) Op(ops ...vm.OpCode) *Program {
	for _, op := range ops {
		p.code = append(p.code, byte(op))
	}
	return p
}

// Append appends raw bytes verbatim, e.g. embedded data or another
// program's output.
func (p *Program) Append(b []byte) *Program {
	p.code = append(p.code, b...)
	return p
}

// Push encodes val as the smallest PUSH instruction that fits it. Accepted
// types mirror what test fixtures actually need: fixed-width ints, *big.Int,
// uint256 values, addresses, and raw byte slices.
func (p *Program) Push(val interface{}) *Program {
	b := trimLeadingZeros(toBytes(val))
	if len(b) == 0 {
		b = []byte{0}
	}
	if len(b) > 32 {
		b = b[len(b)-32:]
	}
	p.code = append(p.code, byte(vm.PUSH1)+byte(len(b)-1))
	p.code = append(p.code, b...)
	return p
}

func toBytes(val interface{}) []byte {
	switch v := val.(type) {
	case nil:
		return nil
	case int:
		return big.NewInt(int64(v)).Bytes()
	case uint8:
		return []byte{v}
	case uint16:
		return big.NewInt(int64(v)).Bytes()
	case uint32:
		return big.NewInt(int64(v)).Bytes()
	case uint64:
		return big.NewInt(int64(v)).Bytes()
	case *big.Int:
		if v == nil {
			return nil
		}
		return v.Bytes()
	case *uint256.Int:
		if v == nil {
			return nil
		}
		b := v.Bytes32()
		return b[:]
	case uint256.Int:
		b := v.Bytes32()
		return b[:]
	case common.Address:
		return v.Bytes()
	case *common.Address:
		if v == nil {
			return nil
		}
		return v.Bytes()
	case []byte:
		return v
	default:
		panic(fmt.Sprintf("program: unsupported Push value type %T", val))
	}
}

func trimLeadingZeros(b []byte) []byte {
	i := 0
	for i < len(b) && b[i] == 0 {
		i++
	}
	return b[i:]
}

// Mstore writes data into memory starting at offset, one byte per MSTORE8 --
// simple and unambiguous for building test fixtures, at the cost of a
// longer program than a 32-byte-word MSTORE sequence would produce.
func (p *Program) Mstore(data []byte, offset int) *Program {
	for i, b := range data {
		p.Push(int(b)).Push(offset + i).Op(vm.MSTORE8)
	}
	return p
}

// Sstore stores value at slot.
func (p *Program) Sstore(slot, value interface{}) *Program {
	return p.Push(value).Push(slot).Op(vm.SSTORE)
}

// Return emits a RETURN of the size bytes at offset.
func (p *Program) Return(offset, size int) *Program {
	return p.Push(size).Push(offset).Op(vm.RETURN)
}

// ReturnData writes data into memory at offset 0 and returns it.
func (p *Program) ReturnData(data []byte) *Program {
	return p.Mstore(data, 0).Return(0, len(data))
}

// Stop appends the STOP terminator the analysis pass is assumed to have
// already guaranteed trails every legacy code slice; test
// fixtures built with this package call it explicitly instead.
func (p *Program) Stop() *Program {
	return p.Op(vm.STOP)
}

// Bytes returns the accumulated code.
func (p *Program) Bytes() []byte {
	return p.code
}

// Hex returns the accumulated code as a lowercase hex string with no "0x"
// prefix, matching the convention go-ethereum's program tests use.
func (p *Program) Hex() string {
	return hex.EncodeToString(p.code)
}
