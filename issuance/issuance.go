// Copyright (C) 2024, Keypom. All rights reserved.
// See the file LICENSE for licensing terms.

// Package issuance defines the wire payloads exchanged with the issuance
// service (the Keypom contract). The issuance side is NEAR-derived, so
// payloads are borsh-encoded.
package issuance

import (
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/near/borsh-go"

	"github.com/ava-labs/hypersdk/codec"
)

var ErrMalformedPayload = errors.New("malformed issuance payload")

// TransferRequest asks the issuance service to transfer the access key of
// [Drop] to [NewOwner]. [Intent] correlates the eventual outcome report back
// to the purchase attempt that dispatched the request.
type TransferRequest struct {
	Drop     ids.ID
	NewOwner codec.Address
	Intent   ids.ID
}

// TransferOutcome is the issuance service's report on a dispatched transfer
// request. [ApprovalRevoked] marks failures that permanently invalidated the
// marketplace's transfer approval (as opposed to transient ones).
type TransferOutcome struct {
	Success         bool
	Reason          string
	ApprovalRevoked bool
}

// ApprovalRelease notifies the issuance service that the marketplace no
// longer intends to exercise a held approval (listing cancelled).
type ApprovalRelease struct {
	Drop       ids.ID
	ApprovalID uint64
}

func (r *TransferRequest) Bytes() ([]byte, error) {
	return borsh.Serialize(*r)
}

func ParseTransferRequest(b []byte) (TransferRequest, error) {
	var req TransferRequest
	if err := borsh.Deserialize(&req, b); err != nil {
		return TransferRequest{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return req, nil
}

func (o *TransferOutcome) Bytes() ([]byte, error) {
	return borsh.Serialize(*o)
}

func ParseTransferOutcome(b []byte) (TransferOutcome, error) {
	var outcome TransferOutcome
	if err := borsh.Deserialize(&outcome, b); err != nil {
		return TransferOutcome{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return outcome, nil
}

func (r *ApprovalRelease) Bytes() ([]byte, error) {
	return borsh.Serialize(*r)
}

func ParseApprovalRelease(b []byte) (ApprovalRelease, error) {
	var release ApprovalRelease
	if err := borsh.Deserialize(&release, b); err != nil {
		return ApprovalRelease{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return release, nil
}
