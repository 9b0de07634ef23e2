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

func TestKDFDeterministic(t *testing.T) {
	key := make([]byte, 16)
	kdf, err := NewKDF(key)
	if err != nil {
		t.Fatalf("NewKDF: %s", err)
	}
	a := ot.Label{D0: 1, D1: 2}
	b := ot.Label{D0: 3, D1: 4}

	h1 := kdf.H256(7, a, b)
	h2 := kdf.H256(7, a, b)
	if h1 != h2 {
		t.Fatalf("H256 not deterministic: %v != %v", h1, h2)
	}
}

func TestKDFTweakSeparation(t *testing.T) {
	key := make([]byte, 16)
	kdf, err := NewKDF(key)
	if err != nil {
		t.Fatalf("NewKDF: %s", err)
	}
	a := ot.Label{D0: 1, D1: 2}
	b := ot.Label{D0: 3, D1: 4}

	h1 := kdf.H256(1, a, b)
	h2 := kdf.H256(2, a, b)
	if h1 == h2 {
		t.Fatalf("H256 output identical across different tweaks")
	}
}

func TestKDFInputSeparation(t *testing.T) {
	key := make([]byte, 16)
	kdf, err := NewKDF(key)
	if err != nil {
		t.Fatalf("NewKDF: %s", err)
	}
	a := ot.Label{D0: 1, D1: 2}
	b := ot.Label{D0: 3, D1: 4}

	h1 := kdf.H256(9, a, b)
	h2 := kdf.H256(9, b, a)
	if h1 == h2 {
		t.Fatalf("H256(a,b) == H256(b,a): order-independence would break the free-XOR construction")
	}
}

func TestH128Deterministic(t *testing.T) {
	key := make([]byte, 16)
	kdf, err := NewKDF(key)
	if err != nil {
		t.Fatalf("NewKDF: %s", err)
	}
	a := ot.Label{D0: 1, D1: 2}

	h1 := kdf.H128(3, a)
	h2 := kdf.H128(3, a)
	if h1 != h2 {
		t.Fatalf("H128 not deterministic: %v != %v", h1, h2)
	}
	if h3 := kdf.H128(4, a); h3 == h1 {
		t.Fatalf("H128 output identical across different tweaks")
	}
}
