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

package runtime

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/ethdual/evmcore/core/vm"
)

// StorageHost is an in-memory vm.Host backing for Execute: a flat map of
// account storage, good enough to run a contract and inspect the resulting
// state afterwards, with no real state database behind it.
type StorageHost struct {
	slots map[common.Address]map[uint256.Int]*uint256.Int
}

// NewStorageHost returns an empty StorageHost.
func NewStorageHost() *StorageHost {
	return &StorageHost{slots: make(map[common.Address]map[uint256.Int]*uint256.Int)}
}

// Get reads back a storage slot set during execution, for callers that want
// to assert on post-state after Execute returns.
func (s *StorageHost) Get(addr common.Address, key *uint256.Int) *uint256.Int {
	if slots, ok := s.slots[addr]; ok {
		if v, ok := slots[*key]; ok {
			return v
		}
	}
	return uint256.NewInt(0)
}

func (s *StorageHost) asHost(gasLimit uint64) *storageHostAdapter {
	return &storageHostAdapter{s: s, env: &vm.Env{Tx: vm.TxContext{GasLimit: gasLimit}}}
}

// storageHostAdapter implements vm.Host over a StorageHost; split out so
// StorageHost itself stays a plain data holder callers can construct and
// inspect without going through the vm.Host interface.
type storageHostAdapter struct {
	s   *StorageHost
	env *vm.Env
}

func (h *storageHostAdapter) SLoad(addr common.Address, key *uint256.Int) (*uint256.Int, bool, bool) {
	return h.s.Get(addr, key), false, true
}

func (h *storageHostAdapter) SStore(addr common.Address, key, value *uint256.Int) {
	slots, ok := h.s.slots[addr]
	if !ok {
		slots = make(map[uint256.Int]*uint256.Int)
		h.s.slots[addr] = slots
	}
	slots[*key] = new(uint256.Int).Set(value)
}

func (h *storageHostAdapter) EnvContext() *vm.Env { return h.env }
