// Copyright (C) 2024, Keypom. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/consts"
	"github.com/ava-labs/hypersdk/state"
)

const ApprovalChunks uint16 = 1

// Approval records that [Holder] currently holds a transfer approval for
// [drop] on the issuance service, and that the marketplace may exercise it
// under [ApprovalID]. The registry is written only by the issuance-service
// account; the marketplace treats the record as a capability reference, not
// as ownership.
type Approval struct {
	Holder     codec.Address `json:"holder"`
	ApprovalID uint64        `json:"approvalID"`
}

const approvalLen = codec.AddressLen + consts.Uint64Len

// [approvalPrefix] + [drop]
func ApprovalKey(drop ids.ID) []byte {
	k := make([]byte, 1+ids.IDLen+consts.Uint16Len)
	k[0] = approvalPrefix
	copy(k[1:], drop[:])
	binary.BigEndian.PutUint16(k[1+ids.IDLen:], ApprovalChunks)
	return k
}

func SetApproval(
	ctx context.Context,
	mu state.Mutable,
	drop ids.ID,
	approval Approval,
) error {
	v := make([]byte, approvalLen)
	copy(v, approval.Holder[:])
	binary.BigEndian.PutUint64(v[codec.AddressLen:], approval.ApprovalID)
	return mu.Insert(ctx, ApprovalKey(drop), v)
}

func GetApproval(
	ctx context.Context,
	im state.Immutable,
	drop ids.ID,
) (Approval, bool, error) {
	v, err := im.GetValue(ctx, ApprovalKey(drop))
	return innerGetApproval(v, err)
}

// Used to serve RPC queries
func GetApprovalFromState(
	ctx context.Context,
	f ReadState,
	drop ids.ID,
) (Approval, bool, error) {
	values, errs := f(ctx, [][]byte{ApprovalKey(drop)})
	return innerGetApproval(values[0], errs[0])
}

func innerGetApproval(v []byte, err error) (Approval, bool, error) {
	if errors.Is(err, database.ErrNotFound) {
		return Approval{}, false, nil
	}
	if err != nil {
		return Approval{}, false, err
	}
	if len(v) != approvalLen {
		return Approval{}, false, ErrMalformedRecord
	}
	var approval Approval
	copy(approval.Holder[:], v[:codec.AddressLen])
	approval.ApprovalID = binary.BigEndian.Uint64(v[codec.AddressLen:])
	return approval, true, nil
}

func RemoveApproval(
	ctx context.Context,
	mu state.Mutable,
	drop ids.ID,
) error {
	return mu.Remove(ctx, ApprovalKey(drop))
}
