//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package yao

import (
	"bytes"
	"testing"

	"github.com/markkurossi/mpc/env"
)

// circuit is a small in-test description of a topologically ordered
// gate list and its wire count, used to drive a Generator/Evaluator
// pair through the same wire protocol an outer cut-and-choose would.
// The input bits are passed to run separately.
type circuit struct {
	gates    []Gate
	numWires int
}

func packBits(vals []byte) []byte {
	out := make([]byte, (len(vals)+7)/8)
	for i, v := range vals {
		if v != 0 {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	return out
}

// run garbles and evaluates c with the given per-gate-order generator
// and evaluator input bits, returning the generator and the evaluator
// so callers can inspect the decoded EvlOut/GenOut bit vectors.
func run(t *testing.T, cfg *env.Config, seed []byte, c circuit,
	genBits, evlBits []byte) (*Generator, *Evaluator) {
	t.Helper()

	n := cfg.KeyBytes()

	var genInpCnt, evlInpCnt, evlOutCnt, genOutCnt int
	for _, g := range c.gates {
		switch g.Tag {
		case GateGenInput:
			genInpCnt++
		case GateEvalInput:
			evlInpCnt++
		}
		switch g.Output {
		case OutputEval:
			evlOutCnt++
		case OutputGen:
			genOutCnt++
		}
	}
	if genInpCnt != len(genBits) {
		t.Fatalf("circuit has %d GEN_INP gates, got %d bits", genInpCnt, len(genBits))
	}
	if evlInpCnt != len(evlBits) {
		t.Fatalf("circuit has %d EVL_INP gates, got %d bits", evlInpCnt, len(evlBits))
	}

	otKeyPairs := make([]OTKeyPair, evlInpCnt)
	evalOtKeys := make([][]byte, evlInpCnt)
	for j := range otKeyPairs {
		k0 := bytes.Repeat([]byte{byte(2*j + 1)}, n)
		k1 := bytes.Repeat([]byte{byte(2*j + 2)}, n)
		otKeyPairs[j] = OTKeyPair{K0: k0, K1: k1}
		if evlBits[j] == 0 {
			evalOtKeys[j] = k0
		} else {
			evalOtKeys[j] = k1
		}
	}

	genInpMaskBits := make([]byte, genInpCnt)
	maskedGenInpBits := make([]byte, genInpCnt)
	for j := range genInpMaskBits {
		genInpMaskBits[j] = byte(j+1) & 1 // arbitrary fixed mask pattern
		maskedGenInpBits[j] = genBits[j] ^ genInpMaskBits[j]
	}

	gen, err := NewGenerator(cfg, otKeyPairs, packBits(genInpMaskBits), seed,
		c.numWires, genInpCnt)
	if err != nil {
		t.Fatalf("NewGenerator: %s", err)
	}

	ev, err := NewEvaluator(cfg, gen.KDFKey(), evalOtKeys,
		packBits(maskedGenInpBits), packBits(evlBits), c.numWires, genInpCnt,
		evlOutCnt, genOutCnt)
	if err != nil {
		t.Fatalf("NewEvaluator: %s", err)
	}

	genInpSeen := 0
	for i := range c.gates {
		gate := c.gates[i]
		if err := gen.NextGate(&gate); err != nil {
			t.Fatalf("gate %d: generator NextGate: %s", i, err)
		}
		data := gen.Out.Drain()

		if gate.Tag == GateGenInput {
			j := genInpSeen
			masked := int(maskedGenInpBits[j])
			ev.SetGenInputDecommitment(j, gen.Decommitment(2*j+masked))
			genInpSeen++
		}

		cursor := NewInputCursor(data)
		if err := ev.NextGate(&gate, cursor); err != nil {
			t.Fatalf("gate %d: evaluator NextGate: %s", i, err)
		}
		if cursor.Remaining() != 0 {
			t.Fatalf("gate %d: %d unconsumed bytes", i, cursor.Remaining())
		}
	}

	return gen, ev
}

func testCfg() *env.Config {
	return &env.Config{K: 80, FreeXOR: true, GRR: true}
}

func TestS1SingleANDGate(t *testing.T) {
	c := circuit{
		numWires: 3,
		gates: []Gate{
			{Tag: GateEvalInput, Wire: 0},
			{Tag: GateGenInput, Wire: 1},
			{Tag: GateInternal, Wire: 2, In0: 0, In1: 1,
				Table: []byte{0, 0, 0, 1}, Output: OutputEval},
		},
	}

	_, ev := run(t, testCfg(), []byte("s1-seed"), c,
		[]byte{1}, []byte{1})
	if bit(ev.EvlOut, 0) != 1 {
		t.Fatalf("AND(1,1) decoded to 0")
	}

	_, ev = run(t, testCfg(), []byte("s1-seed"), c,
		[]byte{0}, []byte{1})
	if bit(ev.EvlOut, 0) != 0 {
		t.Fatalf("AND(1,0) decoded to 1")
	}
}

func TestS2XORIdentityIsFree(t *testing.T) {
	c := circuit{
		numWires: 2,
		gates: []Gate{
			{Tag: GateGenInput, Wire: 0},
			{Tag: GateInternal, Wire: 1, In0: 0, In1: 0,
				Table: []byte{0, 1, 1, 0}, Output: OutputEval},
		},
	}

	for _, a := range []byte{0, 1} {
		gen, ev := run(t, testCfg(), []byte("s2-seed"), c, []byte{a}, nil)
		if bit(ev.EvlOut, 0) != 0 {
			t.Fatalf("a XOR a decoded to nonzero for a=%d", a)
		}
		_ = gen
	}
}

func majority(x, y, z byte) byte {
	return (x & y) ^ (y & z) ^ (x & z)
}

func TestS3ThreeInputMajority(t *testing.T) {
	// wire0=x (GEN_INP), wire1=y (EVL_INP), wire2=z (GEN_INP)
	// wire3 = x XOR y, wire4 = x XOR z, wire5 = wire3 AND wire4
	// wire6 = x XOR wire5 = Maj(x,y,z)
	c := circuit{
		numWires: 7,
		gates: []Gate{
			{Tag: GateGenInput, Wire: 0},
			{Tag: GateEvalInput, Wire: 1},
			{Tag: GateGenInput, Wire: 2},
			{Tag: GateInternal, Wire: 3, In0: 0, In1: 1, Table: []byte{0, 1, 1, 0}},
			{Tag: GateInternal, Wire: 4, In0: 0, In1: 2, Table: []byte{0, 1, 1, 0}},
			{Tag: GateInternal, Wire: 5, In0: 3, In1: 4, Table: []byte{0, 0, 0, 1}},
			{Tag: GateInternal, Wire: 6, In0: 0, In1: 5, Table: []byte{0, 1, 1, 0},
				Output: OutputEval},
		},
	}

	for x := byte(0); x <= 1; x++ {
		for y := byte(0); y <= 1; y++ {
			for z := byte(0); z <= 1; z++ {
				_, ev := run(t, testCfg(), []byte("s3-seed"), c,
					[]byte{x, z}, []byte{y})
				want := majority(x, y, z)
				if got := bit(ev.EvlOut, 0); got != want {
					t.Fatalf("Maj(%d,%d,%d) = %d, want %d", x, y, z, got, want)
				}
			}
		}
	}
}

func TestS4OutputHintFlipsDecodedBit(t *testing.T) {
	c := circuit{
		numWires: 3,
		gates: []Gate{
			{Tag: GateEvalInput, Wire: 0},
			{Tag: GateGenInput, Wire: 1},
			{Tag: GateInternal, Wire: 2, In0: 0, In1: 1,
				Table: []byte{0, 0, 0, 1}, Output: OutputEval},
		},
	}

	cfg := testCfg()
	n := cfg.KeyBytes()

	gen, err := NewGenerator(cfg, []OTKeyPair{{
		K0: bytes.Repeat([]byte{1}, n), K1: bytes.Repeat([]byte{2}, n),
	}}, packBits([]byte{0}), []byte("s4-seed"), c.numWires, 1)
	if err != nil {
		t.Fatalf("NewGenerator: %s", err)
	}
	ev, err := NewEvaluator(cfg, gen.KDFKey(), [][]byte{bytes.Repeat([]byte{2}, n)},
		packBits([]byte{1}), packBits([]byte{1}), c.numWires, 1, 1, 0)
	if err != nil {
		t.Fatalf("NewEvaluator: %s", err)
	}

	var drained [][]byte
	genInpSeen := 0
	for i := range c.gates {
		gate := c.gates[i]
		if err := gen.NextGate(&gate); err != nil {
			t.Fatalf("gate %d: %s", i, err)
		}
		data := gen.Out.Drain()
		if gate.Tag == GateGenInput {
			// mask bit is 0, masked bit is 1, so the actual generator
			// input bit is 1 and the decommitment to open is slot 1.
			ev.SetGenInputDecommitment(genInpSeen, gen.Decommitment(genInpSeen*2+1))
			genInpSeen++
		}
		drained = append(drained, data)
	}

	// Flip the last gate's trailing hint byte before evaluation.
	last := drained[len(drained)-1]
	last[len(last)-1] ^= 1

	for i := range c.gates {
		gate := c.gates[i]
		cursor := NewInputCursor(drained[i])
		if err := ev.NextGate(&gate, cursor); err != nil {
			t.Fatalf("gate %d: %s", i, err)
		}
	}

	// Re-run untouched for comparison.
	gen2, err := NewGenerator(cfg, []OTKeyPair{{
		K0: bytes.Repeat([]byte{1}, n), K1: bytes.Repeat([]byte{2}, n),
	}}, packBits([]byte{0}), []byte("s4-seed"), c.numWires, 1)
	if err != nil {
		t.Fatalf("NewGenerator: %s", err)
	}
	ev2, err := NewEvaluator(cfg, gen2.KDFKey(), [][]byte{bytes.Repeat([]byte{2}, n)},
		packBits([]byte{1}), packBits([]byte{1}), c.numWires, 1, 1, 0)
	if err != nil {
		t.Fatalf("NewEvaluator: %s", err)
	}
	genInpSeen = 0
	for i := range c.gates {
		gate := c.gates[i]
		if err := gen2.NextGate(&gate); err != nil {
			t.Fatalf("gate %d: %s", i, err)
		}
		data := gen2.Out.Drain()
		if gate.Tag == GateGenInput {
			ev2.SetGenInputDecommitment(genInpSeen, gen2.Decommitment(genInpSeen*2+1))
			genInpSeen++
		}
		cursor := NewInputCursor(data)
		if err := ev2.NextGate(&gate, cursor); err != nil {
			t.Fatalf("gate %d: %s", i, err)
		}
	}

	if bit(ev.EvlOut, 0) == bit(ev2.EvlOut, 0) {
		t.Fatalf("flipping the output hint byte did not change the decoded bit")
	}
}

func TestS6PassCheckDetectsTamperedDecommitment(t *testing.T) {
	c := circuit{
		numWires: 3,
		gates: []Gate{
			{Tag: GateEvalInput, Wire: 0},
			{Tag: GateGenInput, Wire: 1},
			{Tag: GateInternal, Wire: 2, In0: 0, In1: 1,
				Table: []byte{0, 0, 0, 1}, Output: OutputEval},
		},
	}

	_, ev := run(t, testCfg(), []byte("s6-seed"), c, []byte{1}, []byte{1})
	if !ev.PassCheck() {
		t.Fatalf("PassCheck() = false on an honest run")
	}

	ev.genInpDecom[0] = append([]byte(nil), ev.genInpDecom[0]...)
	ev.genInpDecom[0][0] ^= 1
	if ev.PassCheck() {
		t.Fatalf("PassCheck() = true after tampering with a decommitment")
	}
}
