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

// fakeHost is a minimal, in-memory Host used by this package's own tests.
// It is deliberately not exported: production callers bring their own Host
// backed by real state.
type fakeHost struct {
	storage map[common.Address]map[uint256.Int]*uint256.Int
	env     *Env
}

func newFakeHost(gasLimit uint64) *fakeHost {
	return &fakeHost{
		storage: make(map[common.Address]map[uint256.Int]*uint256.Int),
		env:     &Env{Tx: TxContext{GasLimit: gasLimit}},
	}
}

func (h *fakeHost) SLoad(addr common.Address, key *uint256.Int) (*uint256.Int, bool, bool) {
	slots, ok := h.storage[addr]
	if !ok {
		return uint256.NewInt(0), false, true
	}
	if v, ok := slots[*key]; ok {
		return v, false, true
	}
	return uint256.NewInt(0), false, true
}

func (h *fakeHost) SStore(addr common.Address, key, value *uint256.Int) {
	slots, ok := h.storage[addr]
	if !ok {
		slots = make(map[uint256.Int]*uint256.Int)
		h.storage[addr] = slots
	}
	slots[*key] = new(uint256.Int).Set(value)
}

func (h *fakeHost) EnvContext() *Env { return h.env }
