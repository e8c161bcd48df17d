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

// Instruction is a single opcode handler. It may mutate any field on in
// (stack, memory, gas, the program counter via in.SetProgramCounter or
// in.LoadEOFCode), set
// in.instructionResult to end the step loop, or set in.nextAction to
// suspend with a pending Call/Create/EOFCreate. The 256 concrete handlers
// that fill a JumpTable are out of this driver's scope; callers
// supply their own.
type Instruction func(in *Interpreter, host Host)

// JumpTable is the 256-entry dispatch table indexed by opcode byte.
type JumpTable [256]Instruction
