// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestGoesWait(t *testing.T) {
	defer goleak.VerifyNone(t)

	var (
		goes Goes
		n    atomic.Int32
	)
	for range 10 {
		goes.Go(func(<-chan struct{}) { n.Add(1) })
	}
	goes.Wait()
	assert.Equal(t, int32(10), n.Load())
}

func TestGoesStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	var (
		goes    Goes
		stopped atomic.Int32
	)
	for range 3 {
		goes.Go(func(stop <-chan struct{}) {
			<-stop
			stopped.Add(1)
		})
	}

	select {
	case <-goes.Stopping():
		t.Fatal("stopping before Stop")
	case <-time.After(10 * time.Millisecond):
	}
	assert.Zero(t, stopped.Load())

	goes.Stop()
	goes.Stop()
	goes.Wait()
	assert.Equal(t, int32(3), stopped.Load())

	// routines started after Stop see the closed channel at once
	goes.Go(func(stop <-chan struct{}) { <-stop })
	goes.Wait()
}
