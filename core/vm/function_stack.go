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

// MaxFunctionStackDepth bounds CALLF nesting in section-format contracts,
// mirroring the 1024-deep limit the legacy call stack uses elsewhere in the
// teacher's EVM.
const MaxFunctionStackDepth = 1024

// functionFrame is one CALLF activation record: which code section the
// callee returns into, and at what offset within it.
type functionFrame struct {
	sectionIndex int
	returnPC     int
}

// FunctionStack is the LIFO of call frames the section-format code opcodes
// (CALLF/RETF) push and pop. It only exists for section-format contracts;
// legacy and RISC-V contracts never touch it.
type FunctionStack struct {
	frames []functionFrame
}

// NewFunctionStack returns an empty function stack.
func NewFunctionStack() *FunctionStack {
	return &FunctionStack{frames: make([]functionFrame, 0, 8)}
}

// Len reports the current call depth.
func (f *FunctionStack) Len() int {
	return len(f.frames)
}

// Push records a return address, failing if it would exceed
// MaxFunctionStackDepth.
func (f *FunctionStack) Push(sectionIndex, returnPC int) error {
	if len(f.frames) >= MaxFunctionStackDepth {
		return &ErrStackOverflow{stackLen: len(f.frames), limit: MaxFunctionStackDepth}
	}
	f.frames = append(f.frames, functionFrame{sectionIndex: sectionIndex, returnPC: returnPC})
	return nil
}

// Pop removes and returns the most recent frame. It is a programmer error to
// call Pop on an empty stack (RETF with no matching CALLF is rejected by the
// EOF validator upstream of this driver).
func (f *FunctionStack) Pop() (sectionIndex, returnPC int) {
	last := f.frames[len(f.frames)-1]
	f.frames = f.frames[:len(f.frames)-1]
	return last.sectionIndex, last.returnPC
}
