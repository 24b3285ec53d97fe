// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/mmt/kv"
)

func TestLevelDB(t *testing.T) {
	var (
		key        = []byte("123")
		value      = []byte("456")
		inValidKey = []byte("abc")
	)

	persisted, err := New(filepath.Join(t.TempDir(), "main.db"), Options{16, 16})
	require.NoError(t, err)
	defer persisted.Close()

	mem, err := NewMem()
	require.NoError(t, err)
	defer mem.Close()

	for _, ldb := range []*LevelDB{persisted, mem} {
		assert.NoError(t, ldb.Put(key, value))

		got, err := ldb.Get(key)
		assert.NoError(t, err)
		assert.Equal(t, value, got)

		has, err := ldb.Has(key)
		assert.NoError(t, err)
		assert.True(t, has)

		has, err = ldb.Has(inValidKey)
		assert.NoError(t, err)
		assert.False(t, has)

		assert.NoError(t, ldb.Delete(key))
		_, err = ldb.Get(key)
		assert.True(t, ldb.IsNotFound(err))
	}
}

func TestBatchAndIterator(t *testing.T) {
	ldb, err := NewMem()
	require.NoError(t, err)
	defer ldb.Close()

	batch := ldb.NewBatch()
	assert.NoError(t, batch.Put([]byte("s1"), []byte("a")))
	assert.NoError(t, batch.Put([]byte("s2"), []byte("b")))
	assert.NoError(t, batch.Put([]byte("t1"), []byte("c")))
	assert.Equal(t, 3, batch.Len())

	// nothing visible before write
	_, err = ldb.Get([]byte("s1"))
	assert.True(t, ldb.IsNotFound(err))

	assert.NoError(t, batch.Write())

	it := ldb.NewIterator(kv.PrefixRange([]byte("s")))
	defer it.Release()

	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}
	assert.NoError(t, it.Error())
	assert.Equal(t, []string{"s1", "s2"}, keys)
}

func TestStats(t *testing.T) {
	ldb, err := New(filepath.Join(t.TempDir(), "main.db"), Options{})
	require.NoError(t, err)
	defer ldb.Close()

	assert.NoError(t, ldb.NewBatch().Write())
	for i := range 100 {
		require.NoError(t, ldb.Put([]byte{byte(i)}, make([]byte, 64)))
	}

	stats, err := ldb.Stats()
	require.NoError(t, err)
	assert.NotZero(t, stats.Writes)
	assert.Zero(t, stats.Alive)

	it := ldb.NewIterator(kv.Range{})
	stats, err = ldb.Stats()
	require.NoError(t, err)
	assert.Equal(t, int32(1), stats.Alive)
	it.Release()
}
