//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package yao

import (
	"testing"

	"github.com/markkurossi/mpc/ot"
)

func TestLowBitRoundtrip(t *testing.T) {
	prng, err := NewPRNG([]byte("low-bit-roundtrip"))
	if err != nil {
		t.Fatalf("NewPRNG: %s", err)
	}
	l := freshZeroKey(prng, 80)

	setLowBit(&l, 0)
	if lowBit(l) != 0 {
		t.Fatalf("setLowBit(0) did not clear low bit")
	}
	setLowBit(&l, 1)
	if lowBit(l) != 1 {
		t.Fatalf("setLowBit(1) did not set low bit")
	}
}

func TestFreshRHasLowBitSet(t *testing.T) {
	prng, err := NewPRNG([]byte("fresh-r"))
	if err != nil {
		t.Fatalf("NewPRNG: %s", err)
	}
	r := freshR(prng, 80)
	if lowBit(r) != 1 {
		t.Fatalf("freshR: low bit not forced to 1")
	}
}

func TestClearMaskForBitCount(t *testing.T) {
	full := ot.Label{D0: ^uint64(0), D1: ^uint64(0)}
	for _, k := range []int{8, 63, 64, 65, 80, 127, 128} {
		masked := maskTo(full, clearMaskFor(k))
		var count int
		for _, w := range []uint64{masked.D0, masked.D1} {
			for w != 0 {
				count += int(w & 1)
				w >>= 1
			}
		}
		if count != k {
			t.Fatalf("clearMaskFor(%d): mask has %d set bits, want %d", k, count, k)
		}
	}
}

func TestMaskToClearsHighBits(t *testing.T) {
	full := ot.Label{D0: ^uint64(0), D1: ^uint64(0)}
	m := clearMaskFor(10)
	masked := maskTo(full, m)
	if masked.D0 != 0 {
		t.Fatalf("mask for k=10 leaked into D0: %x", masked.D0)
	}
	if masked.D1 != (1<<10)-1 {
		t.Fatalf("mask for k=10 wrong D1: %x", masked.D1)
	}
}

func TestKeyBytesLabelFromKeyBytesRoundtrip(t *testing.T) {
	prng, err := NewPRNG([]byte("key-bytes-roundtrip"))
	if err != nil {
		t.Fatalf("NewPRNG: %s", err)
	}
	k := 80
	n := (k + 7) / 8
	mask := clearMaskFor(k)

	orig := maskTo(freshZeroKey(prng, k), mask)
	key := keyBytes(orig, n)
	if len(key) != n {
		t.Fatalf("keyBytes length = %d, want %d", len(key), n)
	}
	back := labelFromKeyBytes(key)
	if back != orig {
		t.Fatalf("labelFromKeyBytes(keyBytes(l)) != l: %v != %v", back, orig)
	}
}

func TestXorBytesSelfInverse(t *testing.T) {
	a := []byte{1, 2, 3, 4}
	b := []byte{4, 3, 2, 1}
	c := xorBytes(a, b)
	back := xorBytes(c, b)
	for i := range a {
		if back[i] != a[i] {
			t.Fatalf("xorBytes not self-inverse at %d: %d != %d", i, back[i], a[i])
		}
	}
}
