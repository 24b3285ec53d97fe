// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import "errors"

// ErrRevert is a business rule violation. A command failing with it is rejected
// and leaves no state change behind.
type ErrRevert struct {
	message string
}

func New(message string) *ErrRevert {
	return &ErrRevert{
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

var (
	ErrInsufficientBalance   = New("insufficient balance")
	ErrSupplyExceeded        = New("max supply exceeded")
	ErrModelNotFound         = New("model does not exist")
	ErrProposalNotFound      = New("merge request does not exist")
	ErrProposalNotPending    = New("merge request is not pending")
	ErrInvalidAmount         = New("amount must be greater than 0")
	ErrUnauthorized          = New("caller is not the owner")
	ErrConflictingPrediction = New("prediction conflicts with existing stake")
	ErrArithmeticOverflow    = New("arithmetic overflow")
	ErrUnknownMethod         = New("unknown method")
	ErrInvalidArgs           = New("invalid arguments")
	ErrReservedOrigin        = New("origin is a builtin contract")
)

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// AsRevert returns the revert in the error chain, or nil.
func AsRevert(err error) *ErrRevert {
	var ve *ErrRevert
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
