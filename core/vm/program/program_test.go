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

package program

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/ethdual/evmcore/core/vm"
)

func TestPush(t *testing.T) {
	tests := []struct {
		input    interface{}
		expected string
	}{
		{0, "6000"},
		{0xfff, "610fff"},
		{nil, "6000"},
		{uint8(1), "6001"},
		{uint16(1), "6001"},
		{uint32(1), "6001"},
		{uint64(1), "6001"},
		{big.NewInt(0), "6000"},
		{big.NewInt(1), "6001"},
		{big.NewInt(0xfff), "610fff"},
		{uint256.NewInt(1), "6001"},
		{common.HexToAddress("0xdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef"),
			"73deadbeefdeadbeefdeadbeefdeadbeefdeadbeef"},
		{&common.Address{}, "6000"},
	}
	for i, tc := range tests {
		have := New().Push(tc.input).Hex()
		require.Equalf(t, tc.expected, have, "test %d", i)
	}
}

func TestOpAppend(t *testing.T) {
	have := New().Op(vm.PUSH1, 0x2a, vm.PUSH1, 0x01, vm.ADD).Stop().Bytes()
	require.Equal(t, []byte{byte(vm.PUSH1), 0x2a, byte(vm.PUSH1), 0x01, byte(vm.ADD), byte(vm.STOP)}, have)

	have = New().Append([]byte{0xde, 0xad}).Bytes()
	require.Equal(t, []byte{0xde, 0xad}, have)
}

func TestMstore(t *testing.T) {
	have := New().Mstore([]byte{0xaa, 0xbb}, 0).Hex()
	want := "60aa60005360bb600153"
	require.Equal(t, want, have)
}

func TestSstore(t *testing.T) {
	have := New().Sstore(0x1337, []byte("1234")).Hex()
	want := "633132333461133755"
	require.Equal(t, want, have)
}

func TestReturnData(t *testing.T) {
	have := New().ReturnData([]byte{0xff}).Hex()
	want := "60ff60005360016000f3"
	require.Equal(t, want, have)
}

// TestLegacyStopPadded checks that a program ending in Stop() meets the
// analysis-pass invariant: non-empty and terminated by STOP.
func TestLegacyStopPadded(t *testing.T) {
	code := New().Push(1).Push(2).Op(vm.ADD).Stop().Bytes()
	require.NotEmpty(t, code)
	require.Equal(t, byte(vm.STOP), code[len(code)-1])
}
