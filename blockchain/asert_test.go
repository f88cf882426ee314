package blockchain

import (
	"math/big"
	"testing"
	"time"

	"github.com/tandemnet/tandemd/chaincfg"
)

// asertTestSpacing and asertTestHalfLife mirror the mainnet primary-lane
// schedule in plain seconds.
const (
	asertTestSpacing  = int64(600)
	asertTestHalfLife = int64(2 * 24 * time.Hour / time.Second)
)

// TestCalculateASERTExactPaths ensures the pure power-of-two paths of the
// fixed-point exponential are bit-exact: on schedule the reference target is
// returned unchanged, one half-life behind doubles it and one half-life
// ahead halves it.
func TestCalculateASERTExactPaths(t *testing.T) {
	powMax := chaincfg.MainnetParams.PowMax
	refTarget := new(big.Int).Rsh(powMax, 4)

	tests := []struct {
		name       string
		timeDiff   int64
		heightDiff int64
		expected   *big.Int
	}{
		{
			name:       "exactly on schedule",
			timeDiff:   asertTestSpacing * 50,
			heightDiff: 50,
			expected:   new(big.Int).Set(refTarget),
		},
		{
			name:       "one half-life behind schedule",
			timeDiff:   asertTestSpacing*50 + asertTestHalfLife,
			heightDiff: 50,
			expected:   new(big.Int).Lsh(refTarget, 1),
		},
		{
			name:       "one half-life ahead of schedule",
			timeDiff:   asertTestSpacing*50 - asertTestHalfLife,
			heightDiff: 50,
			expected:   new(big.Int).Rsh(refTarget, 1),
		},
		{
			name:       "two half-lives behind schedule",
			timeDiff:   asertTestSpacing*50 + 2*asertTestHalfLife,
			heightDiff: 50,
			expected:   new(big.Int).Lsh(refTarget, 2),
		},
	}

	for i, test := range tests {
		result := CalculateASERT(refTarget, asertTestSpacing, test.timeDiff,
			test.heightDiff, powMax, asertTestHalfLife)
		if result.Cmp(test.expected) != 0 {
			t.Errorf("TestCalculateASERTExactPaths test #%d (%s) failed: "+
				"got %064x want %064x", i, test.name, result, test.expected)
		}
	}
}

// TestCalculateASERTFractionalAccuracy checks the degree-3 polynomial on a
// non-trivial fractional exponent: half a half-life behind schedule must
// scale the target by sqrt(2) within the documented 0.013% relative error.
func TestCalculateASERTFractionalAccuracy(t *testing.T) {
	powMax := chaincfg.MainnetParams.PowMax
	refTarget := new(big.Int).Rsh(powMax, 20)

	result := CalculateASERT(refTarget, asertTestSpacing,
		asertTestSpacing*100+asertTestHalfLife/2, 100, powMax, asertTestHalfLife)

	// sqrt(2) = 1.4142135...; 0.013% of it is ~0.00019, so the scaled
	// ratio must land in [141393, 141450].
	ratio := new(big.Int).Mul(result, big.NewInt(100000))
	ratio.Div(ratio, refTarget)
	if ratio.Int64() < 141393 || ratio.Int64() > 141450 {
		t.Errorf("TestCalculateASERTFractionalAccuracy failed: ratio "+
			"%d/100000 is outside the sqrt(2) error bound", ratio.Int64())
	}
}

// TestCalculateASERTClamping ensures results are clamped into (0, powMax]
// rather than wrapped.
func TestCalculateASERTClamping(t *testing.T) {
	powMax := chaincfg.MainnetParams.PowMax

	// Far behind schedule from a target already at the ceiling: must
	// clamp to powMax, including through the left-shift overflow path.
	result := CalculateASERT(new(big.Int).Set(powMax), asertTestSpacing,
		asertTestSpacing+1000*asertTestHalfLife, 1, powMax, asertTestHalfLife)
	if result.Cmp(powMax) != 0 {
		t.Errorf("TestCalculateASERTClamping ceiling clamp failed: got "+
			"%064x want %064x", result, powMax)
	}

	// Far ahead of schedule from the smallest possible target: zero is
	// never a valid target, so the result must clamp to 1.
	result = CalculateASERT(big.NewInt(1), asertTestSpacing,
		asertTestSpacing-1000*asertTestHalfLife, 1, powMax, asertTestHalfLife)
	if result.Cmp(big.NewInt(1)) != 0 {
		t.Errorf("TestCalculateASERTClamping floor clamp failed: got %064x "+
			"want 1", result)
	}
}

// TestCalculateASERTMonotonicity sweeps the schedule deviation and elapsed
// height and verifies the output is monotonically non-decreasing in elapsed
// time and non-increasing in elapsed height.
func TestCalculateASERTMonotonicity(t *testing.T) {
	powMax := chaincfg.MainnetParams.PowMax
	refTarget := new(big.Int).Rsh(powMax, 16)

	const heightDiff = int64(1000)
	onSchedule := asertTestSpacing * heightDiff

	prev := CalculateASERT(refTarget, asertTestSpacing,
		onSchedule-3*asertTestHalfLife, heightDiff, powMax, asertTestHalfLife)
	for timeDiff := onSchedule - 3*asertTestHalfLife + 997; timeDiff <= onSchedule+3*asertTestHalfLife; timeDiff += 997 {
		result := CalculateASERT(refTarget, asertTestSpacing, timeDiff,
			heightDiff, powMax, asertTestHalfLife)
		if result.Cmp(prev) < 0 {
			t.Fatalf("TestCalculateASERTMonotonicity failed: target "+
				"decreased from %064x to %064x at timeDiff %d", prev, result,
				timeDiff)
		}
		prev = result
	}

	timeDiff := onSchedule
	prev = CalculateASERT(refTarget, asertTestSpacing, timeDiff, 1, powMax,
		asertTestHalfLife)
	for hd := int64(2); hd <= 2000; hd += 13 {
		result := CalculateASERT(refTarget, asertTestSpacing, timeDiff, hd,
			powMax, asertTestHalfLife)
		if result.Cmp(prev) > 0 {
			t.Fatalf("TestCalculateASERTMonotonicity failed: target "+
				"increased from %064x to %064x at heightDiff %d", prev,
				result, hd)
		}
		prev = result
	}
}

// TestCalculateASERTPreconditions ensures malformed inputs panic rather than
// silently computing garbage.
func TestCalculateASERTPreconditions(t *testing.T) {
	powMax := chaincfg.MainnetParams.PowMax

	tests := []struct {
		name string
		call func()
	}{
		{
			name: "zero reference target",
			call: func() {
				CalculateASERT(big.NewInt(0), asertTestSpacing, 600, 1,
					powMax, asertTestHalfLife)
			},
		},
		{
			name: "reference target above ceiling",
			call: func() {
				tooBig := new(big.Int).Lsh(powMax, 1)
				CalculateASERT(tooBig, asertTestSpacing, 600, 1, powMax,
					asertTestHalfLife)
			},
		},
		{
			name: "non-positive height diff",
			call: func() {
				CalculateASERT(big.NewInt(1000), asertTestSpacing, 600, 0,
					powMax, asertTestHalfLife)
			},
		},
		{
			name: "ceiling without headroom",
			call: func() {
				noHeadroom := new(big.Int).Lsh(big.NewInt(1), 255)
				CalculateASERT(big.NewInt(1000), asertTestSpacing, 600, 1,
					noHeadroom, asertTestHalfLife)
			},
		},
	}

	for i, test := range tests {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("TestCalculateASERTPreconditions test #%d (%s) "+
						"failed: expected a panic", i, test.name)
				}
			}()
			test.call()
		}()
	}
}
