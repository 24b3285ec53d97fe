// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/pkg/errors"

	"github.com/vechain/mmt/builtin"
	"github.com/vechain/mmt/builtin/reverts"
	"github.com/vechain/mmt/co"
	"github.com/vechain/mmt/log"
	"github.com/vechain/mmt/logdb"
	"github.com/vechain/mmt/mmt"
	"github.com/vechain/mmt/state"
	"github.com/vechain/mmt/tx"
	"github.com/vechain/mmt/xenv"
)

var logger = log.WithContext("pkg", "runtime")

const receiptQueueSize = 256

// Runtime is the single writer of the ledger. Commands execute one at a time,
// in submission order, each against a checkpoint of the committed state.
type Runtime struct {
	mu      sync.RWMutex
	stater  *state.Stater
	logDB   *logdb.LogDB
	nextSeq uint64
	clock   func() uint64

	receiptFeed event.Feed
	scope       event.SubscriptionScope
	queue       chan *tx.Receipt
	goes        co.Goes
}

// New creates a runtime over the committed state. Command numbering resumes
// after the last command found in logDB.
func New(ctx context.Context, stater *state.Stater, logDB *logdb.LogDB) (*Runtime, error) {
	next, err := logDB.NextSeq(ctx)
	if err != nil {
		return nil, err
	}
	rt := &Runtime{
		stater:  stater,
		logDB:   logDB,
		nextSeq: next,
		clock:   func() uint64 { return uint64(time.Now().Unix()) },
		queue:   make(chan *tx.Receipt, receiptQueueSize),
	}
	rt.goes.Go(rt.deliverLoop)
	return rt, nil
}

// SetClock replaces the timestamp source of new commands.
// Returns this runtime.
func (rt *Runtime) SetClock(clock func() uint64) *Runtime {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.clock = clock
	return rt
}

// NextSeq returns the seq the next command will take.
func (rt *Runtime) NextSeq() uint64 {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.nextSeq
}

// Close stops receipt delivery and unsubscribes all subscribers.
func (rt *Runtime) Close() {
	rt.goes.Stop()
	rt.scope.Close()
	rt.goes.Wait()
}

// SubscribeReceipts delivers the receipt of every logged command, in seq order.
func (rt *Runtime) SubscribeReceipts(ch chan *tx.Receipt) event.Subscription {
	return rt.scope.Track(rt.receiptFeed.Subscribe(ch))
}

func (rt *Runtime) deliverLoop(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case receipt := <-rt.queue:
			rt.receiptFeed.Send(receipt)
		}
	}
}

// Execute runs the clause as a command of origin. The command is logged
// whether it succeeds or reverts; state changes are committed only on success.
// A reverted command returns its receipt together with the revert error.
func (rt *Runtime) Execute(ctx context.Context, origin mmt.Address, clause *tx.Clause) (*tx.Receipt, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	trx := new(tx.Builder).
		Origin(origin).
		Clause(clause).
		Timestamp(rt.clock()).
		Nonce(rt.nextSeq).
		Build()

	start := time.Now()
	receipt, stage, execErr := apply(rt.stater.NewState(), trx)
	if receipt == nil {
		return nil, execErr
	}

	if err := rt.logDB.Write(ctx, trx, receipt); err != nil {
		return nil, err
	}
	if stage != nil {
		if err := rt.stater.Commit(stage); err != nil {
			return nil, errors.Wrapf(err, "commit command %v", trx.Nonce())
		}
	}
	rt.nextSeq++

	metricsHandleCommand(rt.stater, receipt, time.Since(start))
	logger.Debug("command executed",
		"seq", trx.Nonce(),
		"method", receipt.Method,
		"origin", origin,
		"reverted", receipt.Reverted,
		"events", len(receipt.Events),
	)

	select {
	case rt.queue <- receipt:
	case <-rt.goes.Stopping():
	}

	return receipt, execErr
}

// Call runs a read-only method against the committed state and returns its
// rlp encoded output. Nothing is logged.
func (rt *Runtime) Call(origin mmt.Address, clause *tx.Clause) ([]byte, error) {
	method, ok := builtin.FindNativeMethod(clause.Method())
	if !ok {
		return nil, errors.WithMessage(reverts.ErrUnknownMethod, clause.Method())
	}
	if !method.ReadOnly() {
		return nil, errors.Errorf("method %v is not read-only", clause.Method())
	}

	rt.mu.RLock()
	defer rt.mu.RUnlock()

	env := xenv.New(
		rt.stater.NewState(),
		&xenv.TransactionContext{Origin: origin, Timestamp: rt.clock()},
		clause.Args(),
	)
	return method.Call(env)
}

// View runs f against the committed state. Changes f makes are discarded.
func (rt *Runtime) View(f func(st *state.State) error) error {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return f(rt.stater.NewState())
}

// apply executes trx on st. A successful command yields the stage to commit.
// A reverted one yields its receipt along with the revert. Any other error
// aborts the command and yields no receipt.
func apply(st *state.State, trx *tx.Transaction) (*tx.Receipt, *state.Stage, error) {
	clause := trx.Clause()
	receipt := &tx.Receipt{
		TxID:      trx.ID(),
		Nonce:     trx.Nonce(),
		Origin:    trx.Origin(),
		Method:    clause.Method(),
		Timestamp: trx.Timestamp(),
	}

	env := xenv.New(st, &xenv.TransactionContext{
		ID:        trx.ID(),
		Origin:    trx.Origin(),
		Timestamp: trx.Timestamp(),
		Nonce:     trx.Nonce(),
	}, clause.Args())

	checkpoint := st.NewCheckpoint()
	output, err := builtin.Call(env, clause.Method())
	if err != nil {
		if !reverts.IsRevertErr(err) {
			return nil, nil, errors.WithMessagef(err, "execute command %v", trx.Nonce())
		}
		st.RevertTo(checkpoint)
		receipt.Reverted = true
		receipt.Error = err.Error()
		return receipt, nil, err
	}

	receipt.Output = output
	receipt.Events = env.Events()
	if receipt.Events == nil {
		receipt.Events = tx.Events{}
	}
	return receipt, st.Stage(), nil
}
