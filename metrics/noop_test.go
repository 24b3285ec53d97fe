// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoopMetrics(t *testing.T) {
	metrics = defaultNoopMetrics()

	for _, a := range []any{
		Gauge("noopGauge"),
		GaugeVec("noopGaugeVec", []string{"status"}),
		Counter("noopCounter"),
		CounterVec("noopCounter", nil),
		Histogram("noopHist", nil),
	} {
		require.IsType(t, &noopMeters{}, a)
	}

	Counter("count1").Add(1)
	CounterVec("countVec1", []string{"method"}).AddWithLabel(1, map[string]string{"thisIsNonsense": "butDoesntBreak"})
	Histogram("hist1", nil).Observe(10)
	Gauge("gauge1").Set(3)
	GaugeVec("gaugeVec1", []string{"status"}).SetWithLabel(2, map[string]string{"status": "pending"})

	rec := httptest.NewRecorder()
	HTTPHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.True(t, NoOp())
}
