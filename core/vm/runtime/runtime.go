// Copyright 2015 The go-ethereum Authors
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

// Package runtime is a convenience harness for driving a single contract
// through the interpreter to completion, the way core/vm/runtime lets
// go-ethereum users execute a snippet of bytecode without standing up a
// full chain. It is not part of the driver itself: it exists so tools like
// cmd/runvm and ad-hoc tests can run a contract without hand-wiring a
// Contract, a JumpTable, and a Host every time.
package runtime

import (
	"errors"
	"math"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/ethdual/evmcore/core/vm"
)

// Config bundles the inputs Execute needs beyond the code itself. Table is
// required for legacy/section-format code (instruction semantics are the
// caller's concern); it may be left nil for a RISC-V contract, whose
// semantics are entirely internal to the embedded emulator.
type Config struct {
	Origin     common.Address
	TargetAddr common.Address
	GasLimit   uint64
	Value      *uint256.Int
	Input      []byte
	Table      *vm.JumpTable
	Storage    *StorageHost

	// MaxCallDepth bounds the recursive sub-call dispatch Execute performs
	// when the interpreter suspends on an ActionCall. Zero means sub-calls
	// are rejected outright.
	MaxCallDepth int

	// GetCode resolves a target address to its code for a suspended
	// ActionCall. A nil GetCode also rejects sub-calls.
	GetCode func(common.Address) []byte
}

func setDefaults(cfg *Config) {
	if cfg.GasLimit == 0 {
		cfg.GasLimit = math.MaxUint64 / 2
	}
	if cfg.Value == nil {
		cfg.Value = uint256.NewInt(0)
	}
	if cfg.Storage == nil {
		cfg.Storage = NewStorageHost()
	}
	if cfg.Table == nil {
		// A nil *JumpTable would panic on the first opcode dispatch for
		// legacy/section-format code (step indexes through the pointer);
		// an empty table instead makes every opcode resolve to
		// InvalidOpcodeResult, which is the correct "no handlers supplied"
		// behavior for a RISC-V-only caller.
		cfg.Table = new(vm.JumpTable)
	}
}

// ErrCallDepthExceeded is returned when a contract suspends on more nested
// ActionCalls than cfg.MaxCallDepth allows.
var ErrCallDepthExceeded = errors.New("runtime: call depth exceeded")

// ErrNoCodeGetter is returned when a contract suspends on ActionCall but
// the Config has no GetCode to resolve the target.
var ErrNoCodeGetter = errors.New("runtime: suspended on call with no GetCode configured")

// Execute runs code to completion, dispatching any ActionCall suspensions
// through cfg.GetCode up to cfg.MaxCallDepth, and returns the final output,
// the gas left, and any error the driver reported.
func Execute(code []byte, cfg *Config) ([]byte, uint64, error) {
	if cfg == nil {
		cfg = new(Config)
	}
	setDefaults(cfg)
	return execute(code, cfg, 0)
}

func execute(code []byte, cfg *Config, depth int) ([]byte, uint64, error) {
	contract, err := vm.NewContract(cfg.Origin, cfg.TargetAddr, cfg.Value, code, cfg.Input)
	if err != nil {
		return nil, 0, err
	}
	in := vm.New(contract, cfg.GasLimit, false)
	memory := vm.NewMemory()
	host := cfg.Storage.asHost(cfg.GasLimit)

	for {
		action := in.Run(memory, cfg.Table, host)
		switch action.Kind {
		case vm.ActionReturn:
			res := action.ReturnResult
			if res.Result.IsError() {
				return res.Output, res.Gas.Remaining(), errorFor(res.Result)
			}
			return res.Output, res.Gas.Remaining(), nil

		case vm.ActionCall:
			out, leftover, callErr := dispatchCall(action.Call, cfg, depth)
			if errors.Is(callErr, ErrNoCodeGetter) || errors.Is(callErr, ErrCallDepthExceeded) {
				return nil, in.Gas().Remaining(), callErr
			}
			memory = in.TakeMemory()
			result := vm.Return
			if callErr != nil {
				result = vm.Revert
			}
			in.InsertCallOutcome(memory, vm.CallOutcome{
				Result:      result,
				Output:      out,
				Gas:         vm.NewGas(leftover),
				MemoryStart: action.Call.RetOffset,
				MemoryLen:   action.Call.RetLength,
			})

		default:
			return nil, 0, errors.New("runtime: unsupported suspension kind")
		}
	}
}

func dispatchCall(call *vm.CallInputs, cfg *Config, depth int) ([]byte, uint64, error) {
	if cfg.GetCode == nil {
		return nil, 0, ErrNoCodeGetter
	}
	if depth >= cfg.MaxCallDepth {
		return nil, 0, ErrCallDepthExceeded
	}
	target := cfg.GetCode(call.Target)
	if target == nil {
		return nil, call.GasLimit, nil
	}
	sub := &Config{
		Origin:       call.Caller,
		TargetAddr:   call.Target,
		GasLimit:     call.GasLimit,
		Value:        call.Value,
		Input:        call.Input,
		Table:        cfg.Table,
		Storage:      cfg.Storage,
		MaxCallDepth: cfg.MaxCallDepth,
		GetCode:      cfg.GetCode,
	}
	return execute(target, sub, depth+1)
}

func errorFor(result vm.InstructionResult) error {
	switch result {
	case vm.OutOfGas:
		return errors.New("runtime: out of gas")
	case vm.StackUnderflowResult:
		return errors.New("runtime: stack underflow")
	case vm.StackOverflowResult:
		return errors.New("runtime: stack overflow")
	case vm.InvalidOpcodeResult:
		return errors.New("runtime: invalid opcode")
	case vm.InvalidMemoryAccess:
		return errors.New("runtime: invalid memory access")
	case vm.FatalExternalError:
		return errors.New("runtime: fatal external error")
	default:
		return nil
	}
}
