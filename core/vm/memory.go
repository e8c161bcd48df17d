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
	"github.com/holiman/uint256"
)

// emptySharedMemory is the canonical zero-value buffer the driver holds
// while no run is in flight.
var emptySharedMemory = NewMemory()

// Memory is a word-growable byte buffer. Its length is always a multiple of
// 32; growth is metered through resizeMemory, never through
// Memory itself, which stays a dumb byte-slice wrapper.
type Memory struct {
	store       []byte
	lastGasCost uint64
}

// NewMemory creates an empty shared memory buffer.
func NewMemory() *Memory {
	return &Memory{}
}

// Len returns the number of bytes backing the buffer.
func (m *Memory) Len() int {
	return len(m.store)
}

// Data returns the full backing slice.
func (m *Memory) Data() []byte {
	return m.store
}

// Resize grows the buffer to size bytes, zero-filling the new tail. size must
// already be word-aligned and monotonically non-decreasing; callers resize
// through resizeMemory (core/vm/memory_gas.go) which enforces both.
func (m *Memory) Resize(size uint64) {
	if uint64(len(m.store)) >= size {
		return
	}
	m.store = append(m.store, make([]byte, size-uint64(len(m.store)))...)
}

// Set writes value into the buffer at offset, for size bytes. The caller
// must have already grown the buffer to fit.
func (m *Memory) Set(offset, size uint64, value []byte) {
	if size == 0 {
		return
	}
	if offset+size > uint64(len(m.store)) {
		return
	}
	copy(m.store[offset:offset+size], value)
}

// Set32 writes a 256-bit word at offset, big-endian, zero-padding val to 32
// bytes.
func (m *Memory) Set32(offset uint64, val *uint256.Int) {
	if offset+32 > uint64(len(m.store)) {
		return
	}
	b32 := val.Bytes32()
	copy(m.store[offset:offset+32], b32[:])
}

// GetCopy returns a fresh copy of size bytes starting at offset.
func (m *Memory) GetCopy(offset, size int64) []byte {
	if size == 0 {
		return nil
	}
	if len(m.store) > int(offset) {
		cpy := make([]byte, size)
		copy(cpy, m.store[offset:offset+size])
		return cpy
	}
	return make([]byte, size)
}

// GetPtr returns a slice view of size bytes starting at offset, no copy. If
// offset is at or past the end of the buffer it returns a fresh zero-filled
// slice instead of a view.
func (m *Memory) GetPtr(offset, size int64) []byte {
	if size == 0 {
		return nil
	}
	if len(m.store) > int(offset) {
		return m.store[offset : offset+size]
	}
	return make([]byte, size)
}

// Copy implements EIP-5656 MCOPY semantics: copy len bytes from src to dst
// within the same buffer, correctly handling overlap.
func (m *Memory) Copy(dst, src, len uint64) {
	if len == 0 {
		return
	}
	copy(m.store[dst:dst+len], m.store[src:src+len])
}

// currentExpansionCost returns the quadratic expansion cost already paid for
// the buffer's current size, used by resizeMemory to charge only the delta
// for further growth.
func (m *Memory) currentExpansionCost() uint64 {
	return m.lastGasCost
}
