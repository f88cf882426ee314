// Copyright (c) 2015-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

// Lane identifies which of the two interleaved block schedules a block
// belongs to. Primary-lane and auxiliary-lane blocks share a single height
// sequence but are mined on independent schedules, so difficulty for a
// candidate block is always derived from the most recent block of the same
// lane.
type Lane uint8

const (
	// LanePrimary is the native proof-of-work lane.
	LanePrimary Lane = iota

	// LaneAuxPow is the merge-mined auxiliary proof-of-work lane.
	LaneAuxPow
)

// String returns the lane as a human-readable string.
func (lane Lane) String() string {
	if lane == LaneAuxPow {
		return "auxpow"
	}
	return "primary"
}

// BlockNode is the summary of a block that has already been accepted into
// validated history. Nodes are linked toward the genesis block through
// Parent and, once published, are never mutated or relinked; the difficulty
// code performs read-only ancestor traversal over them.
type BlockNode struct {
	// Parent is the block this node extends. It is a lookup relation
	// into immutable history, not an owned value; only the genesis
	// node's Parent is nil.
	Parent *BlockNode

	// Timestamp is the block time in Unix seconds.
	Timestamp int64

	// Height is the position of the block in the chain.
	Height int64

	// Bits is the compact target the block committed to.
	Bits uint32

	// Lane is the schedule this block was mined on.
	Lane Lane
}

// BlockHeader is the view of a candidate block under difficulty evaluation.
// The candidate is not yet part of validated history, so only the fields the
// difficulty algorithms consume are present.
type BlockHeader struct {
	// Timestamp is the claimed block time in Unix seconds.
	Timestamp int64

	// Lane is the schedule the candidate is being mined on.
	Lane Lane
}
