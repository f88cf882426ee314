package blockchain

import (
	"math/big"

	"github.com/pkg/errors"
)

// asertMaxDeviation bounds |timeDiff - targetSpacing*heightDiff| so that the
// exponent computation below cannot overflow an int64 once scaled by 2^16.
const asertMaxDeviation = int64(1) << (63 - 16)

// CalculateASERT computes the next proof-of-work target from a reference
// target using the absolutely scheduled exponentially weighted retargeting
// (aserti3-2d) algorithm.
//
// The algorithm approximates
//
//	nextTarget = refTarget * 2^((timeDiff - targetSpacing*heightDiff) / halfLife)
//
// using only fixed-point integer arithmetic, so that every conforming
// implementation produces bit-identical results. timeDiff is the time
// elapsed since the parent of the anchor block, heightDiff the number of
// same-lane blocks since the anchor, both measured at the lane-matched
// reference node. The result is always in (0, powMax]; it is clamped, never
// wrapped.
//
// Malformed inputs are integrity errors on the caller's side and panic: the
// reference target must be in (0, powMax], heightDiff must be positive,
// spacing and half-life must be positive, and powMax must leave at least 32
// leading zero bits of headroom for the widening multiplication.
func CalculateASERT(refTarget *big.Int, targetSpacing int64, timeDiff int64,
	heightDiff int64, powMax *big.Int, halfLife int64) *big.Int {

	// Input target must never be zero nor exceed powMax.
	if refTarget.Sign() <= 0 || refTarget.Cmp(powMax) > 0 {
		panic(errors.Errorf("reference target %064x is outside (0, %064x]",
			refTarget, powMax))
	}

	// We need some leading zero bits in powMax in order to have room to
	// handle overflows easily. 32 leading zero bits is more than enough.
	if powMax.BitLen() > 224 {
		panic(errors.Errorf("powMax %064x is missing the 32 leading zero "+
			"bits of headroom the fixed-point arithmetic requires", powMax))
	}

	if targetSpacing <= 0 || halfLife <= 0 {
		panic(errors.Errorf("non-positive spacing %d or half-life %d",
			targetSpacing, halfLife))
	}

	// Height diff should NOT be negative.
	if heightDiff <= 0 {
		panic(errors.Errorf("non-positive height diff %d", heightDiff))
	}

	// First, calculate the exponent in units of 1/65536ths of a doubling.
	// The deviation magnitude is pre-validated so that truncating division
	// here is unambiguous across implementations.
	deviation := timeDiff - targetSpacing*heightDiff
	if deviation >= asertMaxDeviation || deviation <= -asertMaxDeviation {
		panic(errors.Errorf("schedule deviation %d overflows the exponent "+
			"computation", deviation))
	}
	exponent := (deviation * 65536) / halfLife

	// Next, use the 2^x = 2 * 2^(x-1) identity to shift the exponent into
	// the [0, 1) interval. Decompose it into 'integer' and 'fractional'
	// parts. The integer part must be taken with an arithmetic right
	// shift, which floors negative values, rather than division by 65536,
	// which would truncate them toward zero.
	shifts := exponent >> 16
	frac := uint16(exponent)

	// Multiply the target by 65536 * 2^(fractional part).
	// 2^x ~= (1 + 0.695502049*x + 0.2262698*x**2 + 0.0782318*x**3) for 0 <= x < 1
	// Error versus actual 2^x is less than 0.013%.
	factor := 65536 + ((195766423245049*uint64(frac) +
		971821376*uint64(frac)*uint64(frac) +
		5127*uint64(frac)*uint64(frac)*uint64(frac) +
		(1 << 47)) >> 48)

	// This is always < 2^241 since refTarget < 2^224.
	nextTarget := new(big.Int).Mul(refTarget, new(big.Int).SetUint64(factor))

	// Multiply by 2^(integer part) / 65536.
	shifts -= 16
	if shifts <= 0 {
		rsh := -shifts
		// nextTarget is below 2^241, so any deeper shift already
		// zeroes it; capping keeps the conversion to uint safe.
		if rsh > 256 {
			rsh = 256
		}
		nextTarget.Rsh(nextTarget, uint(rsh))
	} else if shifts > 256 || nextTarget.BitLen()+int(shifts) > 256 {
		// The shift would discard high bits of a 256-bit magnitude.
		// With wider integers the final value would be >= 2^256, so it
		// would have ended up as powMax anyway.
		nextTarget.Set(powMax)
	} else {
		nextTarget.Lsh(nextTarget, uint(shifts))
	}

	if nextTarget.Sign() == 0 {
		// 0 is not a valid target, but 1 is.
		nextTarget.SetInt64(1)
	} else if nextTarget.Cmp(powMax) > 0 {
		nextTarget.Set(powMax)
	}

	return nextTarget
}
