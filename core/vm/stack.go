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
	"sync"

	"github.com/holiman/uint256"
)

// STACK_LIMIT is the maximum number of 256-bit words the operand stack may
// hold at once.
const STACK_LIMIT = 1024

var stackPool = sync.Pool{
	New: func() interface{} {
		return &Stack{data: make([]uint256.Int, 0, 16)}
	},
}

// Stack is a bounded LIFO of 256-bit words.
type Stack struct {
	data []uint256.Int
}

// newstack pulls a reset stack from the shared pool.
func newstack() *Stack {
	return stackPool.Get().(*Stack)
}

// returnStack resets and pools a stack once its owning run finishes with it.
func returnStack(s *Stack) {
	s.data = s.data[:0]
	stackPool.Put(s)
}

// Data returns the live backing slice, bottom first.
func (st *Stack) Data() []uint256.Int {
	return st.data
}

func (st *Stack) push(d *uint256.Int) {
	st.data = append(st.data, *d)
}

func (st *Stack) pop() (ret uint256.Int) {
	ret = st.data[len(st.data)-1]
	st.data = st.data[:len(st.data)-1]
	return
}

func (st *Stack) len() int {
	return len(st.data)
}

func (st *Stack) swap(n int) {
	st.data[st.len()-n], st.data[st.len()-1] = st.data[st.len()-1], st.data[st.len()-n]
}

func (st *Stack) dup(n int) {
	st.push(&st.data[st.len()-n])
}

// peek returns the top of the stack without popping it.
func (st *Stack) peek() *uint256.Int {
	return &st.data[st.len()-1]
}

// Back returns the n-th item from the top, where Back(0) is the top itself.
func (st *Stack) Back(n int) *uint256.Int {
	return &st.data[st.len()-n-1]
}

// Push appends a word to the stack, reporting overflow rather than growing
// past STACK_LIMIT.
func (st *Stack) Push(d *uint256.Int) error {
	if st.len() >= STACK_LIMIT {
		return &ErrStackOverflow{stackLen: st.len(), limit: STACK_LIMIT}
	}
	st.push(d)
	return nil
}

// Pop removes and returns the top of the stack. Callers must have checked
// Len() first; popping an empty stack panics, matching go-ethereum's
// unchecked pop used behind jump-table stack validation.
func (st *Stack) Pop() uint256.Int {
	return st.pop()
}

// Len returns the number of words currently on the stack.
func (st *Stack) Len() int {
	return st.len()
}

// require fails if the stack does not hold at least n items.
func (st *Stack) require(n int) error {
	if st.len() < n {
		return &ErrStackUnderflow{stackLen: st.len(), required: n}
	}
	return nil
}

// checkSize fails if pushing would grow the stack past STACK_LIMIT.
func (st *Stack) checkSize() error {
	if st.len() >= STACK_LIMIT {
		return &ErrStackOverflow{stackLen: st.len(), limit: STACK_LIMIT}
	}
	return nil
}
