// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"
	"time"
)

// These variables are the chain proof-of-work limit parameters for each
// default network.
var (
	// bigOne is 1 represented as a big.Int. It is defined here to avoid
	// the overhead of creating it multiple times.
	bigOne = big.NewInt(1)

	// mainPowMax is the highest proof of work value a tandem block can
	// have for the main network. It is the value 0xffff * 2^208. The 32
	// leading zero bits leave headroom for overflow detection in the
	// retargeting arithmetic.
	mainPowMax = new(big.Int).Lsh(big.NewInt(0xffff), 208)

	// testnetPowMax is the highest proof of work value a tandem block
	// can have for the test network. It is the value 0xffff * 2^208.
	testnetPowMax = new(big.Int).Lsh(big.NewInt(0xffff), 208)

	// simnetPowMax is the highest proof of work value a tandem block
	// can have for the simulation test network. It is the value
	// 2^255 - 1. Simnet never retargets, so the headroom requirement of
	// the ASERT arithmetic does not apply to it.
	simnetPowMax = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)
)

// ASERTAnchor is the fixed reference point from which the ASERT difficulty
// algorithm measures elapsed time and height. Blocks at or before Height are
// governed by the legacy periodic retarget; blocks after it by ASERT.
type ASERTAnchor struct {
	// Height is the chain height of the anchor block. Must be positive.
	Height int64

	// BlockTime is the timestamp (Unix seconds) of the anchor block's
	// parent. The absolute formulation of ASERT measures elapsed time
	// from the predecessor of the anchor, not from the anchor itself.
	BlockTime int64

	// BitsLegacy is the compact target of the anchor block on the
	// primary lane. It doubles as the fixed target for all pre-anchor
	// primary-lane evaluation.
	BitsLegacy uint32

	// BitsAuxPow is the compact target of the anchor block on the
	// merge-mined auxiliary lane.
	BitsAuxPow uint32
}

// Params defines a tandem network by its parameters. These parameters may be
// used by tandem applications to differentiate networks as well as consensus
// rules for one network from those intended for use on another network.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// PowMax defines the highest allowed proof of work value for a block
	// as a uint256. Also called the proof-of-work ceiling: it is the
	// easiest admissible target.
	PowMax *big.Int

	// TargetTimePerBlock is the desired amount of time to generate each
	// primary-lane block.
	TargetTimePerBlock time.Duration

	// TargetTimePerBlockAuxPow is the desired amount of time to generate
	// each merge-mined auxiliary-lane block.
	TargetTimePerBlockAuxPow time.Duration

	// TargetTimespan is the amount of time a legacy difficulty
	// adjustment window is supposed to take.
	TargetTimespan time.Duration

	// ASERTHalfLife is the amount of schedule drift that doubles or
	// halves the difficulty under ASERT.
	ASERTHalfLife time.Duration

	// ASERTAnchor fixes the reference block for ASERT retargeting.
	ASERTAnchor ASERTAnchor

	// PowNoRetargeting defines whether the network has difficulty
	// retargeting enabled or not. This should only be set to true for
	// simulation networks.
	PowNoRetargeting bool

	// PowAllowMinDifficultyBlocks defines whether the network should
	// allow minimum difficulty blocks after an idle stretch. This should
	// only be set to true for test networks.
	PowAllowMinDifficultyBlocks bool
}

// DifficultyAdjustmentInterval is the number of blocks between legacy
// difficulty retargets.
func (p *Params) DifficultyAdjustmentInterval() int64 {
	return int64(p.TargetTimespan / p.TargetTimePerBlock)
}

// MainnetParams defines the network parameters for the main tandem network.
var MainnetParams = Params{
	Name: "mainnet",

	// Chain parameters
	PowMax:                   mainPowMax,
	TargetTimePerBlock:       time.Minute * 10,
	TargetTimePerBlockAuxPow: time.Second * 150,
	TargetTimespan:           time.Hour * 24 * 14,
	ASERTHalfLife:            time.Hour * 24 * 2,
	ASERTAnchor: ASERTAnchor{
		Height:     1356793,
		BlockTime:  1605447844,
		BitsLegacy: 0x1a08b2c5,
		BitsAuxPow: 0x1a2f71d1,
	},
	PowNoRetargeting:            false,
	PowAllowMinDifficultyBlocks: false,
}

// TestnetParams defines the network parameters for the test tandem network.
var TestnetParams = Params{
	Name: "testnet",

	// Chain parameters
	PowMax:                   testnetPowMax,
	TargetTimePerBlock:       time.Minute * 10,
	TargetTimePerBlockAuxPow: time.Second * 150,
	TargetTimespan:           time.Hour * 24 * 14,
	ASERTHalfLife:            time.Hour,
	ASERTAnchor: ASERTAnchor{
		Height:     16844,
		BlockTime:  1603949133,
		BitsLegacy: 0x1d00ffff,
		BitsAuxPow: 0x1d00ffff,
	},
	PowNoRetargeting:            false,
	PowAllowMinDifficultyBlocks: true,
}

// SimnetParams defines the network parameters for the simulation test tandem
// network. This network is similar to the test network except it is intended
// for private use within a group of individuals doing simulation testing,
// so difficulty never retargets.
var SimnetParams = Params{
	Name: "simnet",

	// Chain parameters
	PowMax:                   simnetPowMax,
	TargetTimePerBlock:       time.Minute * 10,
	TargetTimePerBlockAuxPow: time.Second * 150,
	TargetTimespan:           time.Hour * 24 * 14,
	ASERTHalfLife:            time.Hour * 24 * 2,
	ASERTAnchor: ASERTAnchor{
		Height:     1,
		BlockTime:  1401292357,
		BitsLegacy: 0x207fffff,
		BitsAuxPow: 0x207fffff,
	},
	PowNoRetargeting:            true,
	PowAllowMinDifficultyBlocks: true,
}
