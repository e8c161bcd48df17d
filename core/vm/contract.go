// Copyright 2014 The go-ethereum Authors
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

package vm

import (
	"crypto/sha256"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// codeKind classifies a contract's bytecode at construction time. The classification is cheap to check once and branch on at the top
// of Run rather than per instruction.
type codeKind uint8

const (
	codeKindLegacy codeKind = iota
	codeKindSectionFormat
	codeKindRISCV
)

// Contract is the immutable descriptor of the code being executed: the
// bytecode itself, the call's input, the two addresses involved, and the
// value transferred. It is constructed once per Interpreter and never
// mutated.
type Contract struct {
	Code          []byte
	CodeHash      common.Hash
	Input         []byte
	TargetAddress common.Address
	CallerAddress common.Address
	Value         *uint256.Int

	kind      codeKind
	container *Container // non-nil iff kind == codeKindSectionFormat
}

// NewContract builds a contract descriptor. The caller is responsible for
// having run the analysis pass already -- Code must be padded so its last
// byte is STOP. Classification happens here, once.
func NewContract(caller, target common.Address, value *uint256.Int, code, input []byte) (*Contract, error) {
	if value == nil {
		value = uint256.NewInt(0)
	}
	c := &Contract{
		Code:          code,
		CodeHash:      codeHash(code),
		Input:         input,
		TargetAddress: target,
		CallerAddress: caller,
		Value:         value,
	}
	switch {
	case len(code) > 0 && code[0] == RISCVSentinel:
		c.kind = codeKindRISCV
	case IsEOF(code):
		container, err := parseContainerCached(c.CodeHash, code)
		if err != nil {
			return nil, err
		}
		c.kind = codeKindSectionFormat
		c.container = container
	default:
		c.kind = codeKindLegacy
	}
	return c, nil
}

func codeHash(code []byte) common.Hash {
	return sha256.Sum256(code)
}

// IsLegacy reports whether this contract runs on the plain stack VM with a
// single flat code slice.
func (c *Contract) IsLegacy() bool { return c.kind == codeKindLegacy }

// IsSectionFormat reports whether this contract is an EOF container with an
// internal function-call stack.
func (c *Contract) IsSectionFormat() bool { return c.kind == codeKindSectionFormat }

// IsRISCV reports whether this contract routes to the RISC-V engine.
func (c *Contract) IsRISCV() bool { return c.kind == codeKindRISCV }

// Container returns the parsed EOF container, or nil for non-section-format
// contracts.
func (c *Contract) Container() *Container { return c.container }

// codeSlice returns the flat bytecode slice the stack VM should start
// executing: the whole (padded) legacy code, or section 0 of an EOF
// container.
func (c *Contract) codeSlice() []byte {
	switch c.kind {
	case codeKindSectionFormat:
		code, _ := c.container.Code(0)
		return code
	default:
		return c.Code
	}
}
