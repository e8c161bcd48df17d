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
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestMemorySetAndGet(t *testing.T) {
	mem := NewMemory()
	mem.Resize(64)
	mem.Set(0, 3, []byte{1, 2, 3})

	require.Equal(t, []byte{1, 2, 3}, mem.GetCopy(0, 3))
	require.Equal(t, 64, mem.Len())
}

func TestMemorySet32(t *testing.T) {
	mem := NewMemory()
	mem.Resize(32)
	mem.Set32(0, uint256.NewInt(0xff))

	got := mem.GetCopy(0, 32)
	require.Equal(t, byte(0xff), got[31])
	for i := 0; i < 31; i++ {
		require.Equal(t, byte(0), got[i])
	}
}

func TestMemoryCopyOverlapping(t *testing.T) {
	mem := NewMemory()
	mem.Resize(64)
	mem.Set(0, 4, []byte{1, 2, 3, 4})

	// MCOPY semantics: copy 4 bytes from offset 0 to offset 2, overlapping.
	mem.Copy(2, 0, 4)

	require.Equal(t, []byte{1, 2, 3, 4}, mem.GetCopy(2, 4))
}

func TestMemoryGetPtrBeyondLenReturnsZeros(t *testing.T) {
	mem := NewMemory()
	got := mem.GetPtr(0, 4)
	require.Equal(t, []byte{0, 0, 0, 0}, got)
}

func TestNumWords(t *testing.T) {
	require.Equal(t, uint64(0), numWords(0))
	require.Equal(t, uint64(1), numWords(1))
	require.Equal(t, uint64(1), numWords(32))
	require.Equal(t, uint64(2), numWords(33))
}

func TestMemoryGasCostQuadratic(t *testing.T) {
	require.Equal(t, uint64(3), memoryGasCost(1))
	// 512 words: linear term 1536, quadratic term 512*512/512 = 512.
	require.Equal(t, uint64(1536+512), memoryGasCost(512))
}

func TestResizeMemoryChargesDeltaOnly(t *testing.T) {
	mem := NewMemory()
	gas := NewGas(1_000_000)

	require.True(t, resizeMemory(mem, &gas, 32))
	spentAfterFirst := gas.Spent()
	require.Equal(t, memoryGasCost(1), spentAfterFirst)

	// Growing to the same size charges nothing further.
	require.True(t, resizeMemory(mem, &gas, 32))
	require.Equal(t, spentAfterFirst, gas.Spent())

	// Growing further only charges the incremental cost.
	require.True(t, resizeMemory(mem, &gas, 64))
	require.Equal(t, memoryGasCost(2), gas.Spent())
}

func TestResizeMemoryOutOfGas(t *testing.T) {
	mem := NewMemory()
	gas := NewGas(1)

	require.False(t, resizeMemory(mem, &gas, 64))
	require.Equal(t, 0, mem.Len())
}
