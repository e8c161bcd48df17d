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
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestNewContractClassifiesLegacy(t *testing.T) {
	code := []byte{byte(PUSH1), 0x01, byte(STOP)}
	c, err := NewContract(common.Address{}, common.Address{1}, uint256.NewInt(0), code, nil)
	require.NoError(t, err)
	require.True(t, c.IsLegacy())
	require.False(t, c.IsSectionFormat())
	require.False(t, c.IsRISCV())
	require.Equal(t, code, c.codeSlice())
}

func TestNewContractClassifiesRISCV(t *testing.T) {
	code := []byte{RISCVSentinel, 0x01, 0x02, 0x03}
	c, err := NewContract(common.Address{}, common.Address{1}, nil, code, nil)
	require.NoError(t, err)
	require.True(t, c.IsRISCV())
	require.Equal(t, uint256.NewInt(0), c.Value, "nil value defaults to zero")
}

func TestNewContractClassifiesSectionFormat(t *testing.T) {
	raw := buildEOF(t, [][]byte{{byte(STOP)}}, nil)
	c, err := NewContract(common.Address{}, common.Address{1}, uint256.NewInt(0), raw, nil)
	require.NoError(t, err)
	require.True(t, c.IsSectionFormat())
	require.NotNil(t, c.Container())
	require.Equal(t, []byte{byte(STOP)}, c.codeSlice())
}

func TestNewContractRejectsMalformedEOF(t *testing.T) {
	raw := buildEOF(t, [][]byte{{byte(STOP)}}, nil)
	_, err := NewContract(common.Address{}, common.Address{1}, uint256.NewInt(0), raw[:len(raw)-1], nil)
	require.Error(t, err)
}
