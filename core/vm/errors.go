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
	"errors"
	"fmt"
)

var (
	// ErrOutOfGas is returned when the gas meter could not afford a cost.
	ErrOutOfGas = errors.New("out of gas")
	// ErrGasUintOverflow is returned when a gas computation overflows uint64.
	ErrGasUintOverflow = errors.New("gas uint64 overflow")
	// ErrExecutionReverted is the explicit-revert runtime error.
	ErrExecutionReverted = errors.New("execution reverted")
	// ErrInvalidOpcode names the condition of an opcode byte with no handler
	// in the jump table. The driver itself does not return it: step sets the
	// terminal result to InvalidOpcodeResult instead.
	ErrInvalidOpcode = errors.New("invalid opcode")

	// ErrInvalidCodeSection is returned (wrapped) by ParseContainer, and so by
	// NewContract, for a malformed EOF container; the driver's own
	// LoadEOFCode is a programmer-error panic instead.
	ErrInvalidCodeSection = errors.New("invalid EOF code section")

	// ErrDRAMAccess names the condition of the RISC-V adapter failing to
	// read/write the requested DRAM slice. The adapter does not return it:
	// it sets the terminal result to InvalidMemoryAccess instead.
	ErrDRAMAccess = errors.New("riscv: dram slice access out of bounds")

	// ErrUnknownSyscall names the condition of the RISC-V adapter receiving
	// a t0 value with no entry in the syscall table. The adapter does not
	// return it: it sets the terminal result to Revert, not a fatal error.
	ErrUnknownSyscall = errors.New("riscv: unrecognized syscall")
)

// ErrStackUnderflow is returned when an operation needs more items on the
// stack than are present.
type ErrStackUnderflow struct {
	stackLen int
	required int
}

func (e *ErrStackUnderflow) Error() string {
	return fmt.Sprintf("stack underflow (%d <=> %d)", e.stackLen, e.required)
}

// ErrStackOverflow is returned when an operation would grow the stack beyond
// STACK_LIMIT.
type ErrStackOverflow struct {
	stackLen int
	limit    int
}

func (e *ErrStackOverflow) Error() string {
	return fmt.Sprintf("stack limit reached %d (%d)", e.stackLen, e.limit)
}

// FatalError wraps an error the interpreter must never swallow: it
// propagates out of InsertCallOutcome / InsertCreateOutcome /
// InsertEOFCreateOutcome via panic, the same way a programmer error panics
// out of driver construction and LoadEOFCode misuse.
type FatalError struct {
	msg string
}

func (e *FatalError) Error() string { return e.msg }

func newFatalError(format string, args ...interface{}) *FatalError {
	return &FatalError{msg: fmt.Sprintf(format, args...)}
}
