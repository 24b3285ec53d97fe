// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/mmt/co"
	"github.com/vechain/mmt/log"
	"github.com/vechain/mmt/metrics"
)

const shutdownTimeout = 3 * time.Second

var logger = log.WithContext("pkg", "httpserver")

// MetricsServer exposes the collected ledger metrics for scraping.
type MetricsServer struct {
	srv  *http.Server
	addr net.Addr
	goes co.Goes
}

// StartMetricsServer listens on addr and serves GET /metrics.
func StartMetricsServer(addr string) (*MetricsServer, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "listen metrics addr [%v]", addr)
	}

	router := mux.NewRouter()
	router.Path("/metrics").Methods(http.MethodGet).Handler(metrics.HTTPHandler())

	s := &MetricsServer{
		srv: &http.Server{
			Handler:           handlers.CompressHandler(router),
			ReadHeaderTimeout: time.Second,
			ReadTimeout:       5 * time.Second,
		},
		addr: listener.Addr(),
	}
	s.goes.Go(func(<-chan struct{}) {
		if err := s.srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Warn("metrics server stopped", "err", err)
		}
	})
	return s, nil
}

// URL returns the scrape url.
func (s *MetricsServer) URL() string {
	return "http://" + s.addr.String() + "/metrics"
}

// Close shuts the server down, waiting briefly for in-flight scrapes.
func (s *MetricsServer) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		s.srv.Close()
	}
	s.goes.Wait()
}
