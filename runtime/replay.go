// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"bytes"
	"context"

	"github.com/pkg/errors"

	"github.com/vechain/mmt/logdb"
	"github.com/vechain/mmt/state"
)

const replayPageSize = 1000

// Replay re-executes every command of logDB, in seq order, on stater, which must
// hold the genesis the log was recorded on. It fails on the first command whose
// outcome differs from the logged one, and returns the number of replayed commands.
func Replay(ctx context.Context, stater *state.Stater, logDB *logdb.LogDB) (uint64, error) {
	var n uint64
	for {
		cmds, err := logDB.FilterCommands(ctx, &logdb.CommandFilter{
			Range:   &logdb.Range{Unit: logdb.Seq, From: n},
			Options: &logdb.Options{Limit: replayPageSize},
		})
		if err != nil {
			return n, err
		}
		for _, cmd := range cmds {
			select {
			case <-ctx.Done():
				return n, ctx.Err()
			default:
			}
			if cmd.Seq != n {
				return n, errors.Errorf("command log gap: expected seq %v, got %v", n, cmd.Seq)
			}
			receipt, stage, execErr := apply(stater.NewState(), cmd.Tx)
			if receipt == nil {
				return n, execErr
			}
			if receipt.Reverted != cmd.Reverted || !bytes.Equal(receipt.Output, cmd.Output) {
				return n, errors.Errorf("command %v diverged: reverted %v, logged reverted %v", n, receipt.Reverted, cmd.Reverted)
			}
			if stage != nil {
				if err := stater.Commit(stage); err != nil {
					return n, errors.Wrapf(err, "commit command %v", n)
				}
			}
			n++
		}
		if len(cmds) < replayPageSize {
			logger.Info("replay done", "commands", n)
			return n, nil
		}
		logger.Debug("replaying", "commands", n)
	}
}
