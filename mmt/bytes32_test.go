// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package mmt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytes32(t *testing.T) {
	b := BytesToBytes32([]byte("quorum"))
	parsed, err := ParseBytes32(b.String())
	assert.NoError(t, err)
	assert.Equal(t, b, parsed)
	assert.False(t, b.IsZero())

	_, err = ParseBytes32("0x1234")
	assert.EqualError(t, err, "invalid length")

	assert.Panics(t, func() { MustParseBytes32("zz") })
}

func TestBlake2b(t *testing.T) {
	// multi-part input hashes the concatenation
	assert.Equal(t, Blake2b([]byte("ab")), Blake2b([]byte("a"), []byte("b")))
	assert.NotEqual(t, Blake2b([]byte("a")), Blake2b([]byte("b")))
	assert.NotEqual(t, Keccak256([]byte("a")), Blake2b([]byte("a")))
}

func TestBytes32Text(t *testing.T) {
	b := BytesToBytes32([]byte{1, 2, 3})

	data, err := json.Marshal(map[Bytes32]Bytes32{b: b})
	assert.NoError(t, err)
	key := `"0x0000000000000000000000000000000000000000000000000000000000010203"`
	assert.Equal(t, "{"+key+":"+key+"}", string(data))

	var decoded map[Bytes32]Bytes32
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, b, decoded[b])

	noPrefix, err := ParseBytes32(b.String()[2:])
	assert.NoError(t, err)
	assert.Equal(t, b, noPrefix)

	assert.Equal(t, "0x00000000…00010203", b.AbbrevString())
}
