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

// TxContext carries the handful of transaction-scoped fields the RISC-V
// syscall table consults. Everything else about the environment is outside this core's
// scope.
type TxContext struct {
	GasLimit uint64
}

// Env is the subset of block/transaction context the core consumes.
type Env struct {
	Tx TxContext
}

// Host is the external capability the driver and the RISC-V adapter
// consume for storage and environment access. Everything else
// an opcode handler might need (balances, logs, block hashes, ...) lives
// outside this driver's scope and is reached through the caller-supplied
// instruction table instead, not through this interface.
type Host interface {
	// SLoad reads a storage slot. The returned bool mirrors a cold/warm
	// access marker; ok is false if the slot could not be read at all.
	SLoad(addr common.Address, key *uint256.Int) (value *uint256.Int, cold bool, ok bool)
	// SStore writes a storage slot.
	SStore(addr common.Address, key, value *uint256.Int)
	// EnvContext returns the current block/transaction context.
	EnvContext() *Env
}
