// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package lvldb stores the ledger state in goleveldb.
package lvldb

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/vechain/mmt/kv"
)

var _ kv.Store = (*LevelDB)(nil)

// Options tunes a persistent database. Values below 16 are raised to 16.
type Options struct {
	CacheSize              int // in MiB, split between block cache and write buffer
	OpenFilesCacheCapacity int
}

var (
	writeOpt = opt.WriteOptions{Sync: true}
	readOpt  = opt.ReadOptions{}
)

// LevelDB is the kv.Store of the ledger state.
type LevelDB struct {
	db *leveldb.DB
}

// Stats is a summary of the database IO since open.
type Stats struct {
	Reads       uint64
	Writes      uint64
	Compactions uint32
	Alive       int32
}

// New opens the database at path, creating it when absent.
func New(path string, opts Options) (*LevelDB, error) {
	stg, err := storage.OpenFile(path, false)
	if err != nil {
		return nil, errors.Wrapf(err, "open storage %v", path)
	}
	return openLevelDB(stg, opts.CacheSize, opts.OpenFilesCacheCapacity)
}

// NewMem creates a database that lives in memory only.
func NewMem() (*LevelDB, error) {
	return openLevelDB(storage.NewMemStorage(), 0, 0)
}

func openLevelDB(stg storage.Storage, cacheSize, openFilesCacheCapacity int) (*LevelDB, error) {
	if cacheSize < 16 {
		cacheSize = 16
	}

	if openFilesCacheCapacity < 16 {
		openFilesCacheCapacity = 16
	}

	db, err := leveldb.Open(stg, &opt.Options{
		OpenFilesCacheCapacity: openFilesCacheCapacity,
		BlockCacheCapacity:     cacheSize / 2 * opt.MiB,
		WriteBuffer:            cacheSize / 4 * opt.MiB, // Two of these are used internally
		Filter:                 filter.NewBloomFilter(10),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open level db")
	}
	return &LevelDB{db: db}, nil
}

// IsNotFound reports whether err is the missing key error of Get.
func (ldb *LevelDB) IsNotFound(err error) bool {
	return errors.Is(err, leveldb.ErrNotFound)
}

// Stats returns IO counters of the database.
func (ldb *LevelDB) Stats() (Stats, error) {
	var st leveldb.DBStats
	if err := ldb.db.Stats(&st); err != nil {
		return Stats{}, errors.Wrap(err, "level db stats")
	}
	return Stats{
		Reads:       st.IORead,
		Writes:      st.IOWrite,
		Compactions: st.MemComp + st.Level0Comp + st.NonLevel0Comp + st.SeekComp,
		Alive:       st.AliveSnapshots + st.AliveIterators,
	}, nil
}

// Get returns the value of key. A missing key is an error, see IsNotFound.
func (ldb *LevelDB) Get(key []byte) ([]byte, error) {
	return ldb.db.Get(key, &readOpt)
}

// Has reports whether key exists.
func (ldb *LevelDB) Has(key []byte) (bool, error) {
	return ldb.db.Has(key, &readOpt)
}

// Put sets the value of key.
func (ldb *LevelDB) Put(key, value []byte) error {
	return ldb.db.Put(key, value, &writeOpt)
}

// Delete removes key.
func (ldb *LevelDB) Delete(key []byte) error {
	return ldb.db.Delete(key, &writeOpt)
}

// Close releases the database. Later calls fail.
func (ldb *LevelDB) Close() error {
	return ldb.db.Close()
}

// NewBatch creates a batch whose ops are applied atomically by Write.
func (ldb *LevelDB) NewBatch() kv.Batch {
	return &batch{db: ldb.db, ops: new(leveldb.Batch)}
}

// NewIterator iterates the keys in r in ascending order.
func (ldb *LevelDB) NewIterator(r kv.Range) kv.Iterator {
	return ldb.db.NewIterator(&util.Range{
		Start: r.From,
		Limit: r.To,
	}, &readOpt)
}

type batch struct {
	db  *leveldb.DB
	ops *leveldb.Batch
}

func (b *batch) Put(key, value []byte) error {
	b.ops.Put(key, value)
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.ops.Delete(key)
	return nil
}

func (b *batch) Len() int {
	return b.ops.Len()
}

// Write performs all ops in this batch. An empty batch is a no-op.
func (b *batch) Write() error {
	if b.ops.Len() == 0 {
		return nil
	}
	return b.db.Write(b.ops, &writeOpt)
}
