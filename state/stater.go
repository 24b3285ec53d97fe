// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"io"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/mmt/cache"
	"github.com/vechain/mmt/kv"
	"github.com/vechain/mmt/log"
	"github.com/vechain/mmt/metrics"
	"github.com/vechain/mmt/mmt"
)

const defaultCacheSize = 4096

var (
	logger             = log.WithContext("pkg", "state")
	metricCacheHitRate = metrics.LazyLoadGauge("state_cache_hit_permille")
)

// Stater is the state creator. It owns the committed storage and its read cache.
type Stater struct {
	db    kv.Store
	cache *cache.LRU[storageKey, rlp.RawValue]
}

// NewStater create a new stater.
func NewStater(db kv.Store) *Stater {
	lru, _ := cache.NewLRU[storageKey, rlp.RawValue](defaultCacheSize)
	return &Stater{db: db, cache: lru}
}

// NewState create a new state object on top of the committed storage.
func (s *Stater) NewState() *State {
	return newState(s.loadStorage)
}

func (s *Stater) loadStorage(key storageKey) (rlp.RawValue, error) {
	return s.cache.GetOrLoad(key, func(key storageKey) (rlp.RawValue, error) {
		data, err := s.db.Get(key.dbKey())
		if err != nil {
			if s.db.IsNotFound(err) {
				return rlp.RawValue(nil), nil
			}
			return nil, err
		}
		return rlp.RawValue(data), nil
	})
}

// Commit writes the stage atomically and refreshes the read cache.
func (s *Stater) Commit(stage *Stage) error {
	batch := s.db.NewBatch()
	if err := stage.Commit(batch); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return errors.Wrap(err, "write state batch")
	}
	for _, c := range stage.changes {
		s.cache.Add(c.key, c.value)
	}
	if stats, changed := s.cache.Stats(); changed {
		logger.Debug("state cache stats", "hit", stats.Hits, "miss", stats.Misses, "rate", stats.HitRate())
		metricCacheHitRate().Set(int64(stats.HitRate() * 1000))
	}
	return nil
}

// Checksum computes the checksum over all committed storage slots.
// Two data dirs built from the same command log have equal checksums.
func (s *Stater) Checksum() (mmt.Bytes32, error) {
	it := s.db.NewIterator(kv.PrefixRange([]byte(storagePrefix)))
	defer it.Release()

	sum := mmt.Blake2bFn(func(w io.Writer) {
		for it.Next() {
			w.Write(it.Key())
			w.Write(it.Value())
		}
	})
	if err := it.Error(); err != nil {
		return mmt.Bytes32{}, errors.Wrap(err, "iterate storage")
	}
	return sum, nil
}
