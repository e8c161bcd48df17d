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

// Gas tracks one execution's budget: what's left, what's been spent, and
// refunds accrued along the way. It never prices the cost of individual
// opcodes -- callers pass in whatever cost the
// instruction table or the RISC-V adapter computed.
type Gas struct {
	limit     uint64
	remaining uint64
	refunded  uint64
	spent     uint64
}

// NewGas creates a gas meter with the given limit fully available.
func NewGas(limit uint64) Gas {
	return Gas{limit: limit, remaining: limit}
}

// Limit returns the original gas limit this meter was constructed with.
func (g *Gas) Limit() uint64 { return g.limit }

// Remaining returns the gas left to spend.
func (g *Gas) Remaining() uint64 { return g.remaining }

// Refunded returns the accumulated refund.
func (g *Gas) Refunded() uint64 { return g.refunded }

// Spent returns the total gas consumed so far (not counting refunds).
func (g *Gas) Spent() uint64 { return g.spent }

// RecordCost deducts cost from the remaining balance. It returns false
// (without mutating the meter) if the balance can't afford it; callers must
// treat false as an out-of-gas condition.
func (g *Gas) RecordCost(cost uint64) bool {
	if g.remaining < cost {
		return false
	}
	g.remaining -= cost
	g.spent += cost
	return true
}

// EraseCost credits gas back, e.g. returning a sub-call's unspent gas to the
// caller on reconciliation.
func (g *Gas) EraseCost(cost uint64) {
	g.remaining += cost
	if g.spent >= cost {
		g.spent -= cost
	} else {
		g.spent = 0
	}
}

// RecordRefund accumulates a refund. Refunds are bookkeeping only: they are
// never subtracted from remaining gas here, the caller applies them against
// the total gas used at the end of a transaction.
func (g *Gas) RecordRefund(refund uint64) {
	g.refunded += refund
}
