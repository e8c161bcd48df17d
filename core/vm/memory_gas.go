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

// numWords rounds size up to a whole number of 32-byte words.
func numWords(size uint64) uint64 {
	if size > 0x1fffffffe0 {
		// would overflow the quadratic term below; callers already bound
		// size well under this in practice.
		return 0x1fffffffe0 / 32
	}
	return (size + 31) / 32
}

// memoryGasCost is the quadratic expansion-cost curve: 3 gas per word plus
// word^2/512, identical in shape to go-ethereum's own memory gas formula.
func memoryGasCost(words uint64) uint64 {
	linCoef := words * 3
	quadCoef := (words * words) / 512
	return linCoef + quadCoef
}

// resizeMemory rounds newSize up to a whole number of words, charges the gas
// delta against the meter, and grows the buffer only if that succeeds. It
// returns whether the growth happened; false means out-of-gas.
func resizeMemory(mem *Memory, gas *Gas, newSize uint64) bool {
	newWords := numWords(newSize)
	newCost := memoryGasCost(newWords)
	currentCost := mem.currentExpansionCost()
	if newCost <= currentCost {
		// Already paid for at least this many words.
		return true
	}
	delta := newCost - currentCost
	if !gas.RecordCost(delta) {
		return false
	}
	mem.lastGasCost = newCost
	mem.Resize(newWords * 32)
	return true
}
