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

	"github.com/ethdual/evmcore/internal/riscv"
)

// riscvState is the embedded register-machine image for a contract whose
// code begins with RISCVSentinel. It is a one-shot companion to the
// Interpreter: constructed once in New, consulted and mutated only from
// runRISCV.
type riscvState struct {
	emu *riscv.Emulator

	// returnedDataDestiny records where in DRAM the next Syscall::Call's
	// return data must land, set when a Call trap suspends and consumed at
	// the top of the following Run once the host has reconciled the
	// outcome.
	returnedDataDestinyStart uint64
	returnedDataDestinyLen   uint64
	hasReturnedDataDestiny   bool
}

func newRiscvState(image, input []byte) *riscvState {
	return &riscvState{emu: riscv.NewEmulator(image, input)}
}

// Syscall selectors read out of register t0/x5.
const (
	syscallReturn = 0
	syscallSLoad  = 1
	syscallSStore = 2
	syscallCall   = 3
	syscallRevert = 4
)

// runRISCV drives the embedded emulator until it halts or suspends on a
// pending Call, translating each ecall trap through the syscall table. It
// returns a pending memory size the caller must grow shared memory to after
// the loop exits rather than growing it inline: a Call trap's return-data
// slot has to be sized before the following Run's deferred copy-back runs,
// so the resize is deferred to that single call site instead of happening
// twice.
func (in *Interpreter) runRISCV(host Host) (resizeTo uint64, hasResize bool) {
	st := in.riscv

	if st.hasReturnedDataDestiny {
		st.hasReturnedDataDestiny = false
		dst, err := st.emu.GetDRAMSlice(st.returnedDataDestinyStart, st.returnedDataDestinyLen)
		if err != nil {
			in.instructionResult = InvalidMemoryAccess
			return 0, false
		}
		copy(dst, in.sharedMemory.GetPtr(0, int64(len(dst))))
	}

	for {
		trap, err := st.emu.Start()
		if err != nil || trap != riscv.TrapEnvironmentCallFromMMode {
			in.instructionResult = Revert
			return resizeTo, hasResize
		}

		t0 := st.emu.ReadReg(5)
		switch t0 {
		case syscallReturn:
			retOffset := st.emu.ReadReg(10)
			retSize := st.emu.ReadReg(11)
			var data []byte
			if retSize != 0 {
				data, err = st.emu.GetDRAMSlice(retOffset, retSize)
				if err != nil {
					in.instructionResult = InvalidMemoryAccess
					return resizeTo, hasResize
				}
			}
			out := make([]byte, len(data))
			copy(out, data)
			in.nextAction = InterpreterAction{
				Kind: ActionReturn,
				ReturnResult: &InterpreterResult{
					Result: Return,
					Output: out,
					Gas:    in.gas,
				},
			}
			return resizeTo, hasResize

		case syscallSLoad:
			key := st.emu.ReadReg(10)
			value, _, ok := host.SLoad(in.contract.TargetAddress, uint256.NewInt(key))
			if !ok {
				in.instructionResult = Revert
				return resizeTo, hasResize
			}
			st.emu.WriteReg(10, value.Uint64())

		case syscallSStore:
			key := st.emu.ReadReg(10)
			value := st.emu.ReadReg(11)
			host.SStore(in.contract.TargetAddress, uint256.NewInt(key), uint256.NewInt(value))

		case syscallCall:
			a0 := st.emu.ReadReg(10)
			addrBytes, err := st.emu.GetDRAMSlice(a0, 20)
			if err != nil {
				in.instructionResult = InvalidMemoryAccess
				return resizeTo, hasResize
			}
			target := common.BytesToAddress(addrBytes)
			value := st.emu.ReadReg(11)
			argsOffset := st.emu.ReadReg(12)
			argsSize := st.emu.ReadReg(13)
			retOffset := st.emu.ReadReg(14)
			retSize := st.emu.ReadReg(15)

			st.returnedDataDestinyStart = retOffset
			st.returnedDataDestinyLen = retSize
			st.hasReturnedDataDestiny = true

			if in.sharedMemory.Len() < int(retSize) {
				resizeTo = retSize
				hasResize = true
			}

			args, err := st.emu.GetDRAMSlice(argsOffset, argsSize)
			if err != nil {
				in.instructionResult = InvalidMemoryAccess
				return resizeTo, hasResize
			}
			input := make([]byte, len(args))
			copy(input, args)

			gasLimit := in.gas.Limit()
			if env := host.EnvContext(); env != nil {
				gasLimit = env.Tx.GasLimit
			}
			in.nextAction = InterpreterAction{
				Kind: ActionCall,
				Call: &CallInputs{
					Input:     input,
					GasLimit:  gasLimit,
					Target:    target,
					Caller:    in.contract.TargetAddress,
					Value:     uint256.NewInt(value),
					IsStatic:  false,
					RetOffset: retOffset,
					RetLength: retSize,
				},
			}
			return resizeTo, hasResize

		case syscallRevert:
			in.nextAction = InterpreterAction{
				Kind: ActionReturn,
				ReturnResult: &InterpreterResult{
					Result: Revert,
					Output: make([]byte, 4),
					Gas:    in.gas,
				},
			}
			return resizeTo, hasResize

		default:
			// Unrecognized syscall selector: treated as a revert rather
			// than a fatal error. ErrUnknownSyscall documents the condition
			// for callers that want to distinguish it, but the driver
			// itself never returns that error, it only sets the terminal
			// result.
			in.instructionResult = Revert
			return resizeTo, hasResize
		}
	}
}
