// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainhash

import (
	"math/big"
	"testing"
)

// mainnetGenesisLikeHash is a realistic looking low hash used across tests.
const mainnetGenesisLikeHash = "000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f"

// TestNewHashFromStr ensures hash strings round-trip through parsing and
// String, and that oversized strings are rejected.
func TestNewHashFromStr(t *testing.T) {
	hash, err := NewHashFromStr(mainnetGenesisLikeHash)
	if err != nil {
		t.Fatalf("TestNewHashFromStr failed: %s", err)
	}
	if hash.String() != mainnetGenesisLikeHash {
		t.Errorf("TestNewHashFromStr round-trip failed: got %s want %s",
			hash.String(), mainnetGenesisLikeHash)
	}

	// A short string is zero-padded at the end of the hash (the high
	// bytes of the displayed form).
	hash, err = NewHashFromStr("1")
	if err != nil {
		t.Fatalf("TestNewHashFromStr short string failed: %s", err)
	}
	if hash[0] != 1 {
		t.Errorf("TestNewHashFromStr short string failed: got %d want 1", hash[0])
	}

	_, err = NewHashFromStr(mainnetGenesisLikeHash + "00")
	if err != ErrHashStrSize {
		t.Errorf("TestNewHashFromStr oversized string failed: got %v want "+
			"%v", err, ErrHashStrSize)
	}
}

// TestHashToBig ensures the numeric interpretation of a hash matches its
// displayed (byte-reversed) hex form.
func TestHashToBig(t *testing.T) {
	tests := []string{
		"0000000000000000000000000000000000000000000000000000000000000000",
		"1111111111111111111111111111111111111111111111111111111111111111",
		mainnetGenesisLikeHash,
		"00000000ffff0000000000000000000000000000000000000000000000000000",
	}

	for x, test := range tests {
		hash, err := NewHashFromStr(test)
		if err != nil {
			t.Fatalf("TestHashToBig test #%d failed: %s", x, err)
		}
		want, _ := new(big.Int).SetString(test, 16)
		if result := HashToBig(hash); result.Cmp(want) != 0 {
			t.Errorf("TestHashToBig test #%d failed: got %x want %x", x,
				result, want)
		}
	}
}

// TestHashCmpAndIsEqual exercises the comparison helpers.
func TestHashCmpAndIsEqual(t *testing.T) {
	hash0, _ := NewHashFromStr("00")
	hash1, _ := NewHashFromStr("01")
	hash1Again, _ := NewHashFromStr("01")

	if hash0.IsEqual(hash1) {
		t.Errorf("TestHashCmpAndIsEqual failed: %s equals %s", hash0, hash1)
	}
	if !hash1.IsEqual(hash1Again) {
		t.Errorf("TestHashCmpAndIsEqual failed: %s does not equal itself", hash1)
	}
	if !hash0.IsEqual(hash0) {
		t.Errorf("TestHashCmpAndIsEqual failed: self equality is broken")
	}
	var nilHash *Hash
	if nilHash.IsEqual(hash0) || !nilHash.IsEqual(nil) {
		t.Errorf("TestHashCmpAndIsEqual failed: nil handling is broken")
	}
	if hash0.Cmp(hash1) == 0 || hash1.Cmp(hash1Again) != 0 {
		t.Errorf("TestHashCmpAndIsEqual failed: Cmp is inconsistent")
	}
}
