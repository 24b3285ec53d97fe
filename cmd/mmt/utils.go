// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/vechain/mmt/genesis"
	"github.com/vechain/mmt/mmt"
)

const decimals = 18

// parseAccount accepts an address or the index of a dev account.
func parseAccount(s string) (mmt.Address, error) {
	if i, err := strconv.Atoi(s); err == nil {
		accs := genesis.DevAccounts()
		if i < 0 || i >= len(accs) {
			return mmt.Address{}, fmt.Errorf("dev account index out of range [0, %d)", len(accs))
		}
		return accs[i].Address, nil
	}
	addr, err := mmt.ParseAddress(s)
	if err != nil {
		return mmt.Address{}, errors.Wrapf(err, "parse address %q", s)
	}
	return addr, nil
}

// parseAmount parses a token amount with up to 18 decimals, e.g. "12.5".
// Hex input is taken as wei.
func parseAmount(s string) (*big.Int, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, ok := math.ParseBig256(s)
		if !ok {
			return nil, fmt.Errorf("invalid amount %q", s)
		}
		return v, nil
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	if len(frac) > decimals {
		return nil, fmt.Errorf("invalid amount %q: more than %d decimals", s, decimals)
	}
	digits := whole + frac + strings.Repeat("0", decimals-len(frac))
	v, ok := new(big.Int).SetString(digits, 10)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	return v, nil
}

// formatAmount renders wei as tokens, trimming trailing zeros.
func formatAmount(v *big.Int) string {
	if v == nil {
		return "0"
	}
	abs := new(big.Int).Abs(v)
	whole, frac := new(big.Int).QuoRem(abs, mmt.E18, new(big.Int))

	s := whole.String()
	if frac.Sign() > 0 {
		fs := fmt.Sprintf("%018s", frac.String())
		s += "." + strings.TrimRight(fs, "0")
	}
	if v.Sign() < 0 {
		s = "-" + s
	}
	return s
}

func parseUint(s, name string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %s", name)
	}
	return v, nil
}

func parsePrediction(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "y", "true", "accept":
		return true, nil
	case "no", "n", "false", "reject":
		return false, nil
	}
	return false, fmt.Errorf("invalid prediction %q, want yes or no", s)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
