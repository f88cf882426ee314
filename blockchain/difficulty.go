// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"math/big"
	"time"

	"github.com/pkg/errors"

	"github.com/tandemnet/tandemd/chaincfg"
	"github.com/tandemnet/tandemd/infrastructure/logger"
	"github.com/tandemnet/tandemd/util/difficulty"
)

// anchorBits returns the anchor's legacy compact target for the given lane.
func anchorBits(anchor *chaincfg.ASERTAnchor, lane Lane) uint32 {
	if lane == LaneAuxPow {
		return anchor.BitsAuxPow
	}
	return anchor.BitsLegacy
}

// NextWorkRequired returns the compact target a candidate block extending
// parent must satisfy. parent is the already-validated tip the candidate
// builds on; header is the candidate's view.
//
// Blocks at or before the ASERT anchor height are governed by the anchor's
// fixed per-lane legacy target; blocks after it by the ASERT algorithm,
// evaluated at the most recent same-lane ancestor. A nil parent is an
// integrity error in the caller's data and panics.
func NextWorkRequired(parent *BlockNode, header *BlockHeader, params *chaincfg.Params) uint32 {
	if parent == nil {
		panic(errors.New("NextWorkRequired cannot handle the genesis block: parent is nil"))
	}

	// Special rule for simnet: we never retarget.
	if params.PowNoRetargeting {
		return parent.Bits
	}

	anchor := &params.ASERTAnchor
	if anchor.Height <= 0 {
		panic(errors.Errorf("malformed ASERT anchor height %d", anchor.Height))
	}
	if parent.Height <= anchor.Height {
		return anchorBits(anchor, header.Lane)
	}

	// Special difficulty rule for testnet: if the new block's timestamp
	// is more than twice the auxiliary-lane spacing, allow mining of a
	// minimum-difficulty block.
	if params.PowAllowMinDifficultyBlocks &&
		header.Timestamp > parent.Timestamp+2*int64(params.TargetTimePerBlockAuxPow/time.Second) {
		return difficulty.BigToCompact(params.PowMax)
	}

	// Walk back until we find the most recent block on the candidate's
	// lane. The two lanes interleave at the same heights but must not be
	// compared directly for elapsed-height purposes.
	ref := parent
	for ref.Lane != header.Lane {
		if ref.Height <= anchor.Height {
			return anchorBits(anchor, header.Lane)
		}
		ref = ref.Parent
	}

	if ref.Height <= anchor.Height {
		return anchorBits(anchor, header.Lane)
	}

	return nextASERTWorkRequired(ref, header, params)
}

// nextASERTWorkRequired computes the next required proof of work using an
// absolutely scheduled exponentially weighted target (ASERT).
//
// With ASERT, we define an ideal schedule for block issuance (e.g. 1 block
// every 600 seconds) and calculate the difficulty based on how far the most
// recent same-lane block's timestamp is ahead of or behind that schedule.
// Targets are set exponentially: for every half-life worth of drift ahead of
// or behind schedule, the difficulty is halved or doubled.
func nextASERTWorkRequired(ref *BlockNode, header *BlockHeader, params *chaincfg.Params) uint32 {
	// This cannot handle the genesis block and early blocks in general.
	if ref == nil {
		panic(errors.New("nextASERTWorkRequired: reference node is nil"))
	}

	anchor := &params.ASERTAnchor

	// We make no further assumptions other than the height of the
	// reference block must be beyond that of the anchor block.
	if anchor.Height <= 0 {
		panic(errors.Errorf("malformed ASERT anchor height %d", anchor.Height))
	}
	if ref.Height <= anchor.Height {
		panic(errors.Errorf("reference height %d is not beyond anchor height %d",
			ref.Height, anchor.Height))
	}

	// The anchor's predecessor must exist in validated history: the
	// absolute formulation of ASERT measures elapsed time from the
	// timestamp of block M-1 when the anchor is M, which is the value
	// recorded in anchor.BlockTime.
	if ref.Parent == nil {
		panic(errors.New("nextASERTWorkRequired: reference node has no parent"))
	}

	bits := anchorBits(anchor, header.Lane)
	targetSpacing := int64(params.TargetTimePerBlock / time.Second)
	if header.Lane == LaneAuxPow {
		targetSpacing = int64(params.TargetTimePerBlockAuxPow / time.Second)
	}
	refTarget := difficulty.CompactToBig(bits)

	// Time difference is from the anchor's recorded (predecessor) time,
	// height difference from the reference block to the anchor block.
	timeDiff := ref.Timestamp - anchor.BlockTime
	heightDiff := ref.Height - anchor.Height

	// Each foreign-lane block between the anchor and the reference
	// occupies a height on the shared sequence without advancing this
	// lane's schedule, so it is deducted from the height difference.
	onEnd := logger.LogAndMeasureExecutionTime(log, "nextASERTWorkRequired height diff walk")
	for node := ref; node != nil && node.Height > anchor.Height; node = node.Parent {
		if node.Lane != header.Lane {
			heightDiff--
		}
	}
	onEnd()

	nextTarget := CalculateASERT(refTarget, targetSpacing, timeDiff,
		heightDiff, params.PowMax, int64(params.ASERTHalfLife/time.Second))

	// CalculateASERT already clamps to params.PowMax.
	return difficulty.BigToCompact(nextTarget)
}

// CalculateNextWorkRequired computes the legacy periodic retarget: the
// required proof of work for the block after parent, given the timestamp of
// the first block of the closing adjustment window. Retained for validating
// pre-anchor history.
func CalculateNextWorkRequired(parent *BlockNode, firstBlockTime int64, params *chaincfg.Params) uint32 {
	if params.PowNoRetargeting {
		return parent.Bits
	}

	// Limit the adjustment step.
	targetTimespan := int64(params.TargetTimespan / time.Second)
	actualTimespan := parent.Timestamp - firstBlockTime
	if actualTimespan < targetTimespan/4 {
		actualTimespan = targetTimespan / 4
	}
	if actualTimespan > targetTimespan*4 {
		actualTimespan = targetTimespan * 4
	}

	// Retarget. Multiply before dividing to preserve precision.
	newTarget := difficulty.CompactToBig(parent.Bits)
	newTarget.Mul(newTarget, big.NewInt(actualTimespan))
	newTarget.Div(newTarget, big.NewInt(targetTimespan))

	if newTarget.Cmp(params.PowMax) > 0 {
		newTarget.Set(params.PowMax)
	}

	return difficulty.BigToCompact(newTarget)
}

// PermittedDifficultyTransition independently re-checks that an observed
// legacy-regime retarget does not increase or decrease the difficulty beyond
// the permitted limits. height is the height of the block carrying newBits;
// oldBits is its predecessor's compact target.
//
// Both bounds are re-encoded through the compact format before comparison:
// the encoding loses precision and both sides of history re-derive targets
// from it, so comparing un-rounded values would reject honest retargets.
func PermittedDifficultyTransition(params *chaincfg.Params, height int64, oldBits, newBits uint32) bool {
	if params.PowAllowMinDifficultyBlocks {
		return true
	}

	if height%params.DifficultyAdjustmentInterval() == 0 {
		targetTimespan := int64(params.TargetTimespan / time.Second)
		smallestTimespan := targetTimespan / 4
		largestTimespan := targetTimespan * 4

		observedNewTarget := difficulty.CompactToBig(newBits)

		// Calculate the largest target value possible.
		largestDifficultyTarget := difficulty.CompactToBig(oldBits)
		largestDifficultyTarget.Mul(largestDifficultyTarget, big.NewInt(largestTimespan))
		largestDifficultyTarget.Div(largestDifficultyTarget, big.NewInt(targetTimespan))

		if largestDifficultyTarget.Cmp(params.PowMax) > 0 {
			largestDifficultyTarget.Set(params.PowMax)
		}

		// Round through the compact encoding and then compare the
		// calculated value to what is observed.
		maximumNewTarget := difficulty.CompactToBig(difficulty.BigToCompact(largestDifficultyTarget))
		if maximumNewTarget.Cmp(observedNewTarget) < 0 {
			return false
		}

		// Calculate the smallest target value possible.
		smallestDifficultyTarget := difficulty.CompactToBig(oldBits)
		smallestDifficultyTarget.Mul(smallestDifficultyTarget, big.NewInt(smallestTimespan))
		smallestDifficultyTarget.Div(smallestDifficultyTarget, big.NewInt(targetTimespan))

		if smallestDifficultyTarget.Cmp(params.PowMax) > 0 {
			smallestDifficultyTarget.Set(params.PowMax)
		}

		// Round through the compact encoding and then compare the
		// calculated value to what is observed.
		minimumNewTarget := difficulty.CompactToBig(difficulty.BigToCompact(smallestDifficultyTarget))
		if minimumNewTarget.Cmp(observedNewTarget) > 0 {
			return false
		}
	} else if oldBits != newBits {
		return false
	}
	return true
}
