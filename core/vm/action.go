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

package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// InstructionResult is the sum type a single step (or the top-level run)
// settles on. Continue means "keep stepping"; every other value ends the
// step loop.
type InstructionResult uint8

const (
	Continue InstructionResult = iota
	Stop
	Return
	Revert
	ReturnContract // section-format success terminator, distinct from Return
	SelfDestruct

	// Runtime error results.
	OutOfGas
	StackUnderflowResult
	StackOverflowResult
	InvalidOpcodeResult
	InvalidMemoryAccess

	// External/programmer error classes.
	FatalExternalError
)

// IsError reports whether the result represents an abnormal stop (anything
// other than a clean Stop/Return/Revert/ReturnContract/SelfDestruct).
func (r InstructionResult) IsError() bool {
	switch r {
	case OutOfGas, StackUnderflowResult, StackOverflowResult, InvalidOpcodeResult, InvalidMemoryAccess, FatalExternalError:
		return true
	default:
		return false
	}
}

// IsRevert reports whether r is the Revert terminator.
func (r InstructionResult) IsRevert() bool {
	return r == Revert
}

// isSuccess reports whether r is any of the "clean halt" terminators other
// than the distinct section-format success result (used by
// InsertCallOutcome / InsertCreateOutcome).
func (r InstructionResult) isSuccess() bool {
	switch r {
	case Stop, Return, SelfDestruct:
		return true
	default:
		return false
	}
}

// InterpreterResult bundles a terminal instruction result with its output
// bytes and the gas meter at that point.
type InterpreterResult struct {
	Result InstructionResult
	Output []byte
	Gas    Gas
}

// ActionKind discriminates the InterpreterAction variants.
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	ActionReturn
	ActionCall
	ActionCreate
	ActionEOFCreate
)

// CallInputs describes a pending CALL-family sub-call the driver has
// suspended on.
type CallInputs struct {
	Input     []byte
	GasLimit  uint64
	Target    common.Address
	Caller    common.Address
	Value     *uint256.Int
	IsStatic  bool
	RetOffset uint64
	RetLength uint64
}

// CreateInputs describes a pending CREATE/CREATE2.
type CreateInputs struct {
	Input    []byte
	GasLimit uint64
	Caller   common.Address
	Value    *uint256.Int
	Salt     *uint256.Int // nil for CREATE, set for CREATE2
}

// EOFCreateInputs describes a pending section-format EOFCREATE.
type EOFCreateInputs struct {
	Input    []byte
	GasLimit uint64
	Caller   common.Address
	Value    *uint256.Int
}

// InterpreterAction is the tagged value Run suspends with, or the terminal
// Return it halts with. Exactly one non-None variant is populated at any
// suspension point.
type InterpreterAction struct {
	Kind ActionKind

	ReturnResult *InterpreterResult
	Call         *CallInputs
	Create       *CreateInputs
	EOFCreate    *EOFCreateInputs
}

func (a *InterpreterAction) isNone() bool { return a == nil || a.Kind == ActionNone }

// CallOutcome is the reconciled result of a sub-call performed externally in
// response to an ActionCall suspension.
type CallOutcome struct {
	Result      InstructionResult
	Output      []byte
	Gas         Gas
	MemoryStart uint64
	MemoryLen   uint64
}

// CreateOutcome is the reconciled result of a CREATE/CREATE2.
type CreateOutcome struct {
	Result  InstructionResult
	Output  []byte
	Gas     Gas
	Address *common.Address // nil if creation did not produce an address
}

// EOFCreateOutcome is the reconciled result of an EOFCREATE. Unlike
// CreateOutcome its address is always present on the success path, whose
// result is ReturnContract rather than the generic success class.
type EOFCreateOutcome struct {
	Result  InstructionResult
	Output  []byte
	Gas     Gas
	Address common.Address
}
