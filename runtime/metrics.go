// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"math/big"
	"time"

	"github.com/vechain/mmt/builtin"
	"github.com/vechain/mmt/metrics"
	"github.com/vechain/mmt/mmt"
	"github.com/vechain/mmt/state"
	"github.com/vechain/mmt/tx"
)

var (
	metricCommandCount    = metrics.LazyLoadCounterVec("runtime_command_count", []string{"method", "outcome"})
	metricCommandDuration = metrics.LazyLoadHistogram("runtime_command_duration_us", metrics.BucketCommandMicros)
	metricPendingEscrow   = metrics.LazyLoadGauge("staking_pending_escrow_tokens")
	metricProposals       = metrics.LazyLoadGaugeVec("staking_proposals", []string{"status"})
)

func metricsHandleCommand(stater *state.Stater, receipt *tx.Receipt, elapsed time.Duration) {
	if metrics.NoOp() {
		return
	}

	outcome := "accepted"
	if receipt.Reverted {
		outcome = "reverted"
	}
	metricCommandCount().AddWithLabel(1, map[string]string{"method": receipt.Method, "outcome": outcome})
	metricCommandDuration().Observe(elapsed.Microseconds())

	if receipt.Reverted {
		return
	}
	st := stater.NewState()
	switch receipt.Method {
	case "createMergeRequest", "stakeOnMerge":
		total, err := builtin.Proposals.Native(st, nil).MergeCount()
		if err != nil {
			return
		}
		staking := builtin.Staking.Native(st, nil)
		finalized, err := staking.FinalizedCount()
		if err != nil {
			return
		}
		metricProposals().SetWithLabel(int64(total-finalized), map[string]string{"status": "pending"})
		metricProposals().SetWithLabel(int64(finalized), map[string]string{"status": "finalized"})

		if escrow, err := staking.PendingEscrow(); err == nil {
			metricPendingEscrow().Set(new(big.Int).Div(escrow, mmt.E18).Int64())
		}
	}
}
