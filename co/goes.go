// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package co manages background go routines of the ledger processes.
package co

import "sync"

// Goes runs go routines that share one stop signal.
// The zero value is ready to use.
type Goes struct {
	wg       sync.WaitGroup
	initOnce sync.Once
	stopOnce sync.Once
	stop     chan struct{}
}

func (g *Goes) stopCh() chan struct{} {
	g.initOnce.Do(func() { g.stop = make(chan struct{}) })
	return g.stop
}

// Go runs f in a go routine. f should return once stop is closed.
func (g *Goes) Go(f func(stop <-chan struct{})) {
	stop := g.stopCh()
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		f(stop)
	}()
}

// Stopping returns the channel closed by Stop.
func (g *Goes) Stopping() <-chan struct{} {
	return g.stopCh()
}

// Stop signals all go routines to return. It does not wait.
func (g *Goes) Stop() {
	stop := g.stopCh()
	g.stopOnce.Do(func() { close(stop) })
}

// Wait blocks until every go routine started by Go has returned.
func (g *Goes) Wait() {
	g.wg.Wait()
}
