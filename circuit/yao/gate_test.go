//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package yao

import "testing"

func TestGateArity(t *testing.T) {
	cases := []struct {
		gate Gate
		want int
	}{
		{Gate{Tag: GateGenInput}, 0},
		{Gate{Tag: GateEvalInput}, 0},
		{Gate{Tag: GateInternal, Table: []byte{0, 1}}, 1},
		{Gate{Tag: GateInternal, Table: []byte{0, 1, 1, 0}}, 2},
		{Gate{Tag: GateInternal, Table: []byte{0, 1, 1}}, -1},
	}
	for i, c := range cases {
		if got := c.gate.Arity(); got != c.want {
			t.Errorf("case %d: Arity() = %d, want %d", i, got, c.want)
		}
	}
}

func TestGateIsXOR(t *testing.T) {
	xor2 := Gate{Tag: GateInternal, Table: []byte{0, 1, 1, 0}}
	if !xor2.IsXOR() {
		t.Errorf("2-input XOR table not recognised")
	}
	and2 := Gate{Tag: GateInternal, Table: []byte{0, 0, 0, 1}}
	if and2.IsXOR() {
		t.Errorf("AND table misclassified as XOR")
	}
	xor1 := Gate{Tag: GateInternal, Table: []byte{0, 1}}
	if !xor1.IsXOR() {
		t.Errorf("1-input identity table not recognised as free-XOR alias")
	}
	inv1 := Gate{Tag: GateInternal, Table: []byte{1, 0}}
	if inv1.IsXOR() {
		t.Errorf("INV table misclassified as XOR")
	}
	genInp := Gate{Tag: GateGenInput}
	if genInp.IsXOR() {
		t.Errorf("input gate misclassified as XOR")
	}
}

func TestGateTagString(t *testing.T) {
	if GateGenInput.String() != "GEN_INP" {
		t.Errorf("GateGenInput.String() = %q", GateGenInput.String())
	}
	if GateEvalInput.String() != "EVL_INP" {
		t.Errorf("GateEvalInput.String() = %q", GateEvalInput.String())
	}
	if GateInternal.String() != "INTERNAL" {
		t.Errorf("GateInternal.String() = %q", GateInternal.String())
	}
}
