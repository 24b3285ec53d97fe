// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/mmt/genesis"
	"github.com/vechain/mmt/mmt"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want *big.Int
	}{
		{"1", mmt.Tokens(1)},
		{"12.5", new(big.Int).Add(mmt.Tokens(12), big.NewInt(5e17))},
		{"0.000000000000000001", big.NewInt(1)},
		{".5", big.NewInt(5e17)},
		{"0x10", big.NewInt(16)},
	}
	for _, tt := range tests {
		got, err := parseAmount(tt.in)
		require.NoError(t, err, tt.in)
		assert.Zero(t, tt.want.Cmp(got), tt.in)
	}

	for _, in := range []string{"", "abc", "-1", "1.0000000000000000001", "0xzz"} {
		_, err := parseAmount(in)
		assert.Error(t, err, in)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0", formatAmount(nil))
	assert.Equal(t, "1009", formatAmount(mmt.Tokens(1009)))
	assert.Equal(t, "1001.5", formatAmount(new(big.Int).Add(mmt.Tokens(1001), big.NewInt(5e17))))
	assert.Equal(t, "-0.25", formatAmount(big.NewInt(-25e16)))
	assert.Equal(t, "0.000000000000000001", formatAmount(big.NewInt(1)))
}

func TestParseAccount(t *testing.T) {
	addr, err := parseAccount("1")
	require.NoError(t, err)
	assert.Equal(t, genesis.DevAccounts()[1].Address, addr)

	_, err = parseAccount("10")
	assert.Error(t, err)

	addr, err = parseAccount("0x000000000000000000000000000000000000aaaa")
	require.NoError(t, err)
	assert.Equal(t, mmt.MustParseAddress("0x000000000000000000000000000000000000aaaa"), addr)

	_, err = parseAccount("0x12")
	assert.Error(t, err)
}

func TestParsePrediction(t *testing.T) {
	for in, want := range map[string]bool{"yes": true, "Y": true, "no": false, "reject": false} {
		got, err := parsePrediction(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := parsePrediction("maybe")
	assert.Error(t, err)
}
