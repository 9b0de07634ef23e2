//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package yao

import "testing"

// runInputHash drives a small fixed 2-generator-input circuit to
// completion with genBits, then feeds row/kx into the matching
// GenInputHash/EvalInputHash pair and returns the evaluator's decoded
// hash bit for kx.
func runInputHash(t *testing.T, genBits []byte, row []byte, kx uint64) byte {
	t.Helper()

	c := circuit{
		numWires: 3,
		gates: []Gate{
			{Tag: GateGenInput, Wire: 0},
			{Tag: GateGenInput, Wire: 1},
			{Tag: GateInternal, Wire: 2, In0: 0, In1: 1,
				Table: []byte{0, 1, 1, 0}, Output: OutputEval},
		},
	}

	gen, ev := run(t, testCfg(), []byte("inputhash-seed"), c, genBits, nil)

	if err := gen.GenInputHash(row, kx); err != nil {
		t.Fatalf("GenInputHash: %s", err)
	}
	data := gen.Out.Drain()

	cursor := NewInputCursor(data)
	if err := ev.EvalInputHash(row, kx, cursor); err != nil {
		t.Fatalf("EvalInputHash: %s", err)
	}
	if cursor.Remaining() != 0 {
		t.Fatalf("%d unconsumed bytes after EvalInputHash", cursor.Remaining())
	}

	return bit(ev.GenInpHash(), int(kx))
}

func TestInputHashAgreesOnEvenParity(t *testing.T) {
	row := []byte{0b11}

	zeros := runInputHash(t, []byte{0, 0}, row, 0)
	ones := runInputHash(t, []byte{1, 1}, row, 0)

	if zeros != ones {
		t.Fatalf("even-parity generator inputs {0,0} and {1,1} produced different hash bits")
	}
}

func TestInputHashFlipsOnOddParity(t *testing.T) {
	row := []byte{0b11}

	even := runInputHash(t, []byte{0, 0}, row, 0)
	odd := runInputHash(t, []byte{1, 0}, row, 0)

	if even == odd {
		t.Fatalf("odd-parity generator input {1,0} did not flip the hash bit")
	}
}

func TestInputHashRowSelectsSubset(t *testing.T) {
	// Selecting only generator-input wire 1 in the row ignores wire 0's
	// value entirely.
	row := []byte{0b10}

	a := runInputHash(t, []byte{0, 0}, row, 0)
	b := runInputHash(t, []byte{1, 0}, row, 0)

	if a != b {
		t.Fatalf("row excluding wire 0 was still sensitive to wire 0's value")
	}
}

func TestEvalInputHashUnderrun(t *testing.T) {
	c := circuit{
		numWires: 1,
		gates:    []Gate{{Tag: GateGenInput, Wire: 0}},
	}
	_, ev := run(t, testCfg(), []byte("underrun-seed"), c, []byte{0}, nil)

	cursor := NewInputCursor([]byte{1, 2, 3})
	if err := ev.EvalInputHash([]byte{1}, 0, cursor); err == nil {
		t.Fatalf("EvalInputHash with a truncated cursor succeeded")
	}
}
