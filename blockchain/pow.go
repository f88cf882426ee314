// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"github.com/tandemnet/tandemd/chaincfg"
	"github.com/tandemnet/tandemd/util/chainhash"
	"github.com/tandemnet/tandemd/util/difficulty"
)

// CheckProofOfWork returns whether hash satisfies the proof of work claimed
// by bits. The compact target must decode to a value in (0, PowMax]; a
// decode that signals a negative value or a 256-bit overflow fails the
// check, as does a hash above the decoded target.
func CheckProofOfWork(hash *chainhash.Hash, bits uint32, params *chaincfg.Params) bool {
	target, isNegative, isOverflow := difficulty.CompactToBigWithFlags(bits)

	// Check range.
	if isNegative || isOverflow || target.Sign() == 0 ||
		target.Cmp(params.PowMax) > 0 {
		return false
	}

	// The block hash must be less than or equal to the claimed target.
	return chainhash.HashToBig(hash).Cmp(target) <= 0
}
