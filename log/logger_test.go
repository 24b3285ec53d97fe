// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithContextFollowsDefault(t *testing.T) {
	logger := WithContext("pkg", "staking")

	var buf bytes.Buffer
	SetDefault(NewHandler(&buf, LegacyLevelInfo, true))
	defer SetDefault(DiscardHandler())

	logger.Info("stake recorded", "mergeId", 1)
	logger.Debug("filtered out")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &rec))
	assert.Equal(t, "stake recorded", rec["msg"])
	assert.Equal(t, "staking", rec["pkg"])
	assert.Equal(t, float64(1), rec["mergeId"])
}

func TestTerminalHandler(t *testing.T) {
	var buf bytes.Buffer
	SetDefault(NewHandler(&buf, LegacyLevelDebug, false))
	defer SetDefault(DiscardHandler())

	Debug("proposal finalized", "outcome", "accepted")
	assert.Contains(t, buf.String(), "proposal finalized")
	assert.Contains(t, buf.String(), "outcome=accepted")
	assert.False(t, useColor(&buf))
}
