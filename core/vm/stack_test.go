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

func TestStackPushPop(t *testing.T) {
	st := newstack()
	defer returnStack(st)

	require.NoError(t, st.Push(uint256.NewInt(1)))
	require.NoError(t, st.Push(uint256.NewInt(2)))
	require.Equal(t, 2, st.Len())

	top := st.Pop()
	require.Equal(t, uint256.NewInt(2), &top)
	require.Equal(t, 1, st.Len())
}

func TestStackOverflow(t *testing.T) {
	st := newstack()
	defer returnStack(st)

	for i := 0; i < STACK_LIMIT; i++ {
		require.NoError(t, st.Push(uint256.NewInt(uint64(i))))
	}
	err := st.Push(uint256.NewInt(0))
	require.Error(t, err)
	var overflow *ErrStackOverflow
	require.ErrorAs(t, err, &overflow)
	require.Equal(t, STACK_LIMIT, st.Len())
}

func TestStackRequire(t *testing.T) {
	st := newstack()
	defer returnStack(st)

	err := st.require(1)
	require.Error(t, err)
	var underflow *ErrStackUnderflow
	require.ErrorAs(t, err, &underflow)

	require.NoError(t, st.Push(uint256.NewInt(1)))
	require.NoError(t, st.require(1))
}

func TestStackBackAndPeek(t *testing.T) {
	st := newstack()
	defer returnStack(st)

	require.NoError(t, st.Push(uint256.NewInt(1)))
	require.NoError(t, st.Push(uint256.NewInt(2)))
	require.NoError(t, st.Push(uint256.NewInt(3)))

	require.Equal(t, uint256.NewInt(3), st.peek())
	require.Equal(t, uint256.NewInt(3), st.Back(0))
	require.Equal(t, uint256.NewInt(2), st.Back(1))
	require.Equal(t, uint256.NewInt(1), st.Back(2))
}

func TestStackSwapAndDup(t *testing.T) {
	st := newstack()
	defer returnStack(st)

	require.NoError(t, st.Push(uint256.NewInt(1)))
	require.NoError(t, st.Push(uint256.NewInt(2)))

	st.swap(2)
	require.Equal(t, uint256.NewInt(1), st.peek())

	st.dup(1)
	require.Equal(t, 3, st.Len())
	require.Equal(t, uint256.NewInt(1), st.peek())
}

func BenchmarkStackPush(b *testing.B) {
	st := newstack()
	defer returnStack(st)
	value := uint256.NewInt(0x1337)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		st.push(value)
	}
}

func BenchmarkStackPop(b *testing.B) {
	st := newstack()
	defer returnStack(st)
	value := uint256.NewInt(0x1337)
	for i := 0; i < b.N; i++ {
		st.push(value)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		st.pop()
	}
}
