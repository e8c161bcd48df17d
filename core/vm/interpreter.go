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

// Package vm implements the execution core shared by two bytecode engines: a
// legacy/EOF stack machine and a RISC-V register machine, both driven
// through the same re-entrant Interpreter.
package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
)

// Interpreter drives one contract call's execution. It is re-entrant: Run
// either halts with a terminal ActionReturn or suspends on a pending
// Call/Create/EOFCreate, at which point the caller performs the sub-call and
// feeds the result back through InsertCallOutcome/InsertCreateOutcome/
// InsertEOFCreateOutcome before calling Run again.
type Interpreter struct {
	pc       int
	codeSlice []byte

	gas      Gas
	contract *Contract

	instructionResult InstructionResult

	isEOF     bool
	isEOFInit bool

	sharedMemory  *Memory
	stack         *Stack
	functionStack *FunctionStack

	returnDataBuffer []byte

	isStatic bool

	nextAction InterpreterAction

	riscv *riscvState
}

// New constructs an Interpreter for contract. It panics if the bytecode is
// not execution-ready: that invariant is the analysis pass's job, and
// reaching New without it having run is a programmer error, not a runtime
// condition callers should recover from.
func New(contract *Contract, gasLimit uint64, isStatic bool) *Interpreter {
	if !isExecutionReady(contract) {
		panic(newFatalError("interpreter: contract bytecode is not execution-ready (missing analysis pass): %x", contract.Code))
	}

	in := &Interpreter{
		contract:          contract,
		gas:               NewGas(gasLimit),
		instructionResult: Continue,
		isEOF:             contract.IsSectionFormat(),
		isStatic:          isStatic,
		sharedMemory:      emptySharedMemory,
		stack:             newstack(),
		codeSlice:         contract.codeSlice(),
	}
	if in.isEOF {
		in.functionStack = NewFunctionStack()
	}
	if contract.IsRISCV() {
		in.riscv = newRiscvState(contract.Code[1:], contract.Input)
	}
	return in
}

// isExecutionReady reports whether contract's bytecode is in the shape each
// engine requires before it can be run: legacy code must be padded so its
// last byte is STOP (so step() never reads past the end), section-format
// code must have parsed into a container, and RISC-V images need no
// padding at all.
func isExecutionReady(contract *Contract) bool {
	switch {
	case contract.IsRISCV():
		return len(contract.Code) > 0
	case contract.IsSectionFormat():
		return contract.Container() != nil
	default:
		return len(contract.Code) > 0 && contract.Code[len(contract.Code)-1] == byte(STOP)
	}
}

// SetIsEOFInit marks this run as a section-format init (creation) call,
// enabling the RETURNCONTRACT terminator.
func (in *Interpreter) SetIsEOFInit() { in.isEOFInit = true }

// IsEOFInit reports whether SetIsEOFInit has been called.
func (in *Interpreter) IsEOFInit() bool { return in.isEOFInit }

// Eof reports whether this contract runs on the section-format engine.
func (in *Interpreter) Eof() bool { return in.isEOF }

// LoadEOFCode switches the interpreter to code section idx at offset pc
// within it. It is the section-format CALLF/JUMPF/RETF handlers'
// responsibility to compute a valid (idx, pc) pair; an invalid one is a
// programmer error.
func (in *Interpreter) LoadEOFCode(idx, pc int) {
	if !in.isEOF {
		panic(newFatalError("interpreter: LoadEOFCode called on non-section-format contract"))
	}
	code, ok := in.contract.Container().Code(idx)
	if !ok {
		panic(newFatalError("interpreter: code section %d not found", idx))
	}
	in.codeSlice = code
	in.pc = pc
}

// CurrentOpcode returns the byte at the current program counter, or
// byte(STOP) past the end of the code slice.
func (in *Interpreter) CurrentOpcode() OpCode {
	if in.pc >= len(in.codeSlice) {
		return STOP
	}
	return OpCode(in.codeSlice[in.pc])
}

// ProgramCounter returns the offset into the currently executing code slice.
func (in *Interpreter) ProgramCounter() int { return in.pc }

// SetProgramCounter sets the offset into the currently executing code
// slice, for jump-family handlers.
func (in *Interpreter) SetProgramCounter(pc int) { in.pc = pc }

// Contract returns the contract descriptor this interpreter was built for.
func (in *Interpreter) Contract() *Contract { return in.contract }

// Gas returns a pointer to the live gas meter.
func (in *Interpreter) Gas() *Gas { return &in.gas }

// Stack returns the live operand stack.
func (in *Interpreter) Stack() *Stack { return in.stack }

// FunctionStack returns the live EOF call-frame stack, or nil for contracts
// that are not section-format.
func (in *Interpreter) FunctionStack() *FunctionStack { return in.functionStack }

// Memory returns the shared memory buffer currently owned by this
// interpreter. Before the first Run and after TakeMemory it is the
// canonical empty sentinel; after Run returns it is still the buffer that
// Run was given, until TakeMemory hands it back.
func (in *Interpreter) Memory() *Memory { return in.sharedMemory }

// IsStatic reports whether this call runs under a staticcall-style
// restriction on state mutation.
func (in *Interpreter) IsStatic() bool { return in.isStatic }

// ReturnDataBuffer returns the most recent sub-call's output, or this run's
// own output once it has halted.
func (in *Interpreter) ReturnDataBuffer() []byte { return in.returnDataBuffer }

// ResizeMemory grows shared memory to newSize, metering the quadratic
// expansion cost against the gas meter. It reports whether the meter could
// afford it.
func (in *Interpreter) ResizeMemory(newSize uint64) bool {
	return resizeMemory(in.sharedMemory, &in.gas, newSize)
}

// Halt ends the step loop with a terminal result, recording output for the
// eventual ActionReturn.
func (in *Interpreter) Halt(result InstructionResult, output []byte) {
	in.instructionResult = result
	in.returnDataBuffer = output
}

// SuspendCall parks a pending CALL-family sub-call; Run returns an
// ActionCall immediately once the current step finishes.
func (in *Interpreter) SuspendCall(inputs *CallInputs) {
	in.nextAction = InterpreterAction{Kind: ActionCall, Call: inputs}
}

// SuspendCreate parks a pending CREATE/CREATE2.
func (in *Interpreter) SuspendCreate(inputs *CreateInputs) {
	in.nextAction = InterpreterAction{Kind: ActionCreate, Create: inputs}
}

// SuspendEOFCreate parks a pending EOFCREATE.
func (in *Interpreter) SuspendEOFCreate(inputs *EOFCreateInputs) {
	in.nextAction = InterpreterAction{Kind: ActionEOFCreate, EOFCreate: inputs}
}

// step executes the instruction at the current program counter and advances
// it by one. The analysis pass guarantees legacy/EOF code is padded so the
// last byte is STOP, so stepping off the end of the slice never happens in
// practice; step still bounds-checks so a malformed LoadEOFCode jump fails
// safe rather than panicking.
func (in *Interpreter) step(table *JumpTable, host Host) {
	if in.pc >= len(in.codeSlice) {
		in.instructionResult = Stop
		return
	}
	op := in.codeSlice[in.pc]
	in.pc++

	handler := table[op]
	if handler == nil {
		in.instructionResult = InvalidOpcodeResult
		return
	}
	handler(in, host)
}

// Run executes the interpreter until it halts or suspends. Ownership of
// memory passes to the interpreter for the duration of the call; use
// TakeMemory to get it back out once Run returns.
func (in *Interpreter) Run(memory *Memory, table *JumpTable, host Host) InterpreterAction {
	in.nextAction = InterpreterAction{}
	in.sharedMemory = memory

	var resizeTo uint64
	var hasResize bool

	if in.riscv != nil {
		resizeTo, hasResize = in.runRISCV(host)
	} else {
		for in.instructionResult == Continue && in.nextAction.isNone() {
			in.step(table, host)
		}
	}

	if hasResize {
		if !in.ResizeMemory(resizeTo) {
			in.instructionResult = OutOfGas
		}
	}

	if !in.nextAction.isNone() {
		action := in.nextAction
		in.nextAction = InterpreterAction{}
		log.Trace("vm: run suspended", "kind", action.Kind, "target", in.contract.TargetAddress)
		return action
	}

	return InterpreterAction{
		Kind: ActionReturn,
		ReturnResult: &InterpreterResult{
			Result: in.instructionResult,
			Output: in.returnDataBuffer,
			Gas:    in.gas,
		},
	}
}

// TakeMemory hands shared memory back to the caller, leaving the
// interpreter holding the canonical empty sentinel until the next Run.
func (in *Interpreter) TakeMemory() *Memory {
	taken := in.sharedMemory
	in.sharedMemory = emptySharedMemory
	return taken
}

// Release returns this interpreter's stack to the shared pool. Callers must
// not use the interpreter again afterwards.
func (in *Interpreter) Release() {
	returnStack(in.stack)
	in.stack = nil
}

func (in *Interpreter) forcePush(v *uint256.Int) {
	if err := in.stack.Push(v); err != nil {
		in.instructionResult = StackOverflowResult
	}
}

func pushAddress(addr common.Address) *uint256.Int {
	return new(uint256.Int).SetBytes(addr.Bytes())
}

// InsertCreateOutcome reconciles a CREATE/CREATE2 sub-call's outcome: on
// success it pushes the created address and refunds unspent gas; on revert
// it preserves the output as return data and pushes zero; a fatal external
// error is never supposed to reach here and panics if it does.
func (in *Interpreter) InsertCreateOutcome(outcome CreateOutcome) {
	log.Debug("vm: run resumed", "action", "create", "result", outcome.Result, "target", in.contract.TargetAddress)
	in.instructionResult = Continue

	if outcome.Result == Revert {
		in.returnDataBuffer = outcome.Output
	} else {
		in.returnDataBuffer = nil
	}

	switch {
	case outcome.Result.isSuccess():
		var addr common.Address
		if outcome.Address != nil {
			addr = *outcome.Address
		}
		in.forcePush(pushAddress(addr))
		in.gas.EraseCost(outcome.Gas.Remaining())
		in.gas.RecordRefund(outcome.Gas.Refunded())
	case outcome.Result == Revert:
		in.forcePush(uint256.NewInt(0))
		in.gas.EraseCost(outcome.Gas.Remaining())
	case outcome.Result == FatalExternalError:
		log.Error("vm: fatal external error reconciling create outcome", "target", in.contract.TargetAddress)
		panic(newFatalError("fatal external error in insert_create_outcome"))
	default:
		in.forcePush(uint256.NewInt(0))
	}
}

// InsertEOFCreateOutcome reconciles an EOFCREATE outcome. Its success class
// is ReturnContract, distinct from the generic success results
// InsertCreateOutcome handles.
func (in *Interpreter) InsertEOFCreateOutcome(outcome EOFCreateOutcome) {
	log.Debug("vm: run resumed", "action", "eofcreate", "result", outcome.Result, "target", in.contract.TargetAddress)
	in.instructionResult = Continue

	if outcome.Result == Revert {
		in.returnDataBuffer = outcome.Output
	} else {
		in.returnDataBuffer = nil
	}

	switch outcome.Result {
	case ReturnContract:
		in.forcePush(pushAddress(outcome.Address))
		in.gas.EraseCost(outcome.Gas.Remaining())
		in.gas.RecordRefund(outcome.Gas.Refunded())
	case Revert:
		in.forcePush(uint256.NewInt(0))
		in.gas.EraseCost(outcome.Gas.Remaining())
	case FatalExternalError:
		log.Error("vm: fatal external error reconciling EOFCREATE outcome", "target", in.contract.TargetAddress)
		panic(newFatalError("fatal external error in insert_eofcreate_outcome"))
	default:
		in.forcePush(uint256.NewInt(0))
	}
}

// InsertCallOutcome reconciles a CALL-family sub-call's outcome: it copies
// output into shared memory at the call site's requested offset/length,
// refunds unspent gas on success, and pushes a 1/0 success marker. The
// memory argument is the same buffer Run was (or will be) called with;
// callers that round-tripped memory through TakeMemory/Run pass it back in
// here before the next Run.
func (in *Interpreter) InsertCallOutcome(memory *Memory, outcome CallOutcome) {
	log.Debug("vm: run resumed", "action", "call", "result", outcome.Result, "target", in.contract.TargetAddress)
	in.instructionResult = Continue
	in.returnDataBuffer = outcome.Output

	outOffset := outcome.MemoryStart
	outLen := outcome.MemoryLen
	targetLen := outLen
	if uint64(len(in.returnDataBuffer)) < targetLen {
		targetLen = uint64(len(in.returnDataBuffer))
	}

	switch {
	case outcome.Result.isSuccess():
		in.gas.EraseCost(outcome.Gas.Remaining())
		in.gas.RecordRefund(outcome.Gas.Refunded())
		memory.Set(outOffset, targetLen, in.returnDataBuffer[:targetLen])
		in.forcePush(uint256.NewInt(1))
	case outcome.Result == Revert:
		in.gas.EraseCost(outcome.Gas.Remaining())
		memory.Set(outOffset, targetLen, in.returnDataBuffer[:targetLen])
		in.forcePush(uint256.NewInt(0))
	case outcome.Result == FatalExternalError:
		log.Error("vm: fatal external error reconciling call outcome", "target", in.contract.TargetAddress)
		panic(newFatalError("fatal external error in insert_call_outcome"))
	default:
		in.forcePush(uint256.NewInt(0))
	}
}
