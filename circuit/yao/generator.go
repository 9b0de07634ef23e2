//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package yao

import (
	"fmt"
	"io"

	"github.com/markkurossi/mpc/env"
	"github.com/markkurossi/mpc/ot"
)

// Generator implements the generator-side garbling role of spec.md
// §4.1: gen_init/gen_next_gate, streaming garbled tables and
// decommitment hashes into an OutputBuffer the caller drains between
// gates. It is single-threaded and holds no network connection of its
// own (spec.md §5).
type Generator struct {
	cfg  *env.Config
	k    int
	n    int // ceil(k/8)
	kdf    *KDF
	kdfKey []byte
	prng   *PRNG

	r    ot.Label
	mask ot.Label

	wires  []ot.Label
	Out    OutputBuffer
	gateIx uint64

	genInpMask []byte
	genInpIx   int
	evlInpIx   int

	otKeys []OTKeyPair
	decom  [][]byte // 2*genInpCnt decommitment blobs
}

// NewGenerator draws a fresh random AES key for the fixed-key KDF (the
// same pattern circuit/garbler.go uses: a random per-instance key that
// is later sent to the evaluator in the clear — its secrecy is not
// what makes garbling secure), draws R, seeds the PRNG, and sizes the
// decommitment store, mirroring gen_init.
func NewGenerator(cfg *env.Config, otKeys []OTKeyPair, genInpMask []byte,
	seed []byte, numWires, genInpCnt int) (*Generator, error) {

	var kdfKey [16]byte
	if _, err := io.ReadFull(cfg.GetRandom(), kdfKey[:]); err != nil {
		return nil, fmt.Errorf("yao: generate KDF key: %w", err)
	}
	kdf, err := NewKDF(kdfKey[:])
	if err != nil {
		return nil, fmt.Errorf("yao: init KDF: %w", err)
	}

	prng, err := NewPRNG(seed)
	if err != nil {
		return nil, fmt.Errorf("yao: init PRNG: %w", err)
	}

	k := cfg.SecurityParameter()
	g := &Generator{
		cfg:        cfg,
		k:          k,
		n:          cfg.KeyBytes(),
		kdf:        kdf,
		kdfKey:     append([]byte(nil), kdfKey[:]...),
		prng:       prng,
		r:          freshR(prng, k),
		mask:       clearMaskFor(k),
		wires:      make([]ot.Label, numWires),
		genInpMask: genInpMask,
		otKeys:     otKeys,
		decom:      make([][]byte, 2*genInpCnt),
	}
	return g, nil
}

// KDFKey returns the random AES key this instance's KDF is fixed to,
// for the caller to deliver to the evaluator (in the clear, as
// circuit/garbler.go already does for its own AES key).
func (g *Generator) KDFKey() []byte {
	return append([]byte(nil), g.kdfKey...)
}

// R returns the global free-XOR offset for this instance. Exposed for
// tests and for the outer protocol's own bookkeeping; it must never be
// sent to the evaluator.
func (g *Generator) R() ot.Label {
	return g.r
}

// Decommitment returns generator-input decommitment blob j (0 or 1 for
// the "masked-true" or complement half of generator-input index
// j/2), for the outer protocol to open during cut-and-choose.
func (g *Generator) Decommitment(j int) []byte {
	return g.decom[j]
}

func bit(mask []byte, i int) byte {
	return (mask[i/8] >> uint(i%8)) & 1
}

// NextGate garbles one gate, dispatching on tag/arity/GRR exactly as
// spec.md §4.1 describes, appending emitted bytes to Out and returning
// the gate's chosen zero-label into the wire table.
func (g *Generator) NextGate(gate *Gate) error {
	var zero ot.Label

	switch gate.Tag {
	case GateGenInput:
		zero = g.garbleGenInput()

	case GateEvalInput:
		zero = g.garbleEvalInput()

	case GateInternal:
		var err error
		zero, err = g.garbleInternal(gate)
		if err != nil {
			return err
		}

	default:
		return fmt.Errorf("%w: unknown gate tag %v", ErrMalformedCircuit, gate.Tag)
	}

	if gate.Output == OutputEval || gate.Output == OutputGen {
		g.Out.WriteByte(lowBit(zero))
	}

	g.wires[gate.Wire] = zero
	g.gateIx++
	return nil
}

func (g *Generator) garbleGenInput() ot.Label {
	z := freshZeroKey(g.prng, g.k)

	a0 := z
	a1 := z
	a1.Xor(g.r)

	j := g.genInpIx
	b := bit(g.genInpMask, j)

	var chosen, complement ot.Label
	if b == 0 {
		chosen, complement = a0, a1
	} else {
		chosen, complement = a1, a0
	}

	pad0 := g.prng.Rand(g.k)
	pad1 := g.prng.Rand(g.k)

	d0 := append(keyBytes(chosen, g.n), pad0...)
	d1 := append(keyBytes(complement, g.n), pad1...)

	g.decom[2*j+0] = d0
	g.decom[2*j+1] = d1

	g.Out.Write(hashDecommitment(d0, g.n))
	g.Out.Write(hashDecommitment(d1, g.n))

	g.genInpIx++
	return z
}

func (g *Generator) garbleEvalInput() ot.Label {
	z := freshZeroKey(g.prng, g.k)

	one := z
	one.Xor(g.r)

	pair := g.otKeys[g.evlInpIx]
	e0 := xorBytes(pair.K0, keyBytes(z, g.n))
	e1 := xorBytes(pair.K1, keyBytes(one, g.n))

	g.Out.Write(e0)
	g.Out.Write(e1)

	g.evlInpIx++
	return z
}

func (g *Generator) garbleInternal(gate *Gate) (ot.Label, error) {
	arity := gate.Arity()

	if g.cfg.FreeXOR && gate.IsXOR() {
		switch arity {
		case 2:
			z := g.wires[gate.In0]
			z.Xor(g.wires[gate.In1])
			return z, nil
		case 1:
			return g.wires[gate.In0], nil
		default:
			return ot.Label{}, fmt.Errorf("%w: xor arity %d", ErrMalformedCircuit, arity)
		}
	}

	switch arity {
	case 2:
		return g.garbleBinary(gate)
	case 1:
		return g.garbleUnary(gate)
	default:
		return ot.Label{}, fmt.Errorf("%w: gate arity %d", ErrMalformedCircuit, arity)
	}
}

func (g *Generator) garbleBinary(gate *Gate) (ot.Label, error) {
	if len(gate.Table) != 4 {
		return ot.Label{}, fmt.Errorf("%w: 2-input truth table length %d",
			ErrMalformedCircuit, len(gate.Table))
	}

	x0 := g.wires[gate.In0]
	y0 := g.wires[gate.In1]
	x1 := x0
	x1.Xor(g.r)
	y1 := y0
	y1.Xor(g.r)
	X := [2]ot.Label{x0, x1}
	Y := [2]ot.Label{y0, y1}

	px := lowBit(x0)
	py := lowBit(y0)
	rowIx := (int(py) << 1) | int(px)
	gateTweak := g.gateIx

	var Z [2]ot.Label

	if g.cfg.GRR {
		c0 := maskTo(g.kdf.H256(gateTweak, X[px], Y[py]), g.mask)
		b := gate.Table[rowIx]
		Z[b] = c0
		Z[1-b] = c0
		Z[1-b].Xor(g.r)

		for e := 1; e < 4; e++ {
			xBit := int(px) ^ (e & 1)
			yBit := int(py) ^ ((e >> 1) & 1)
			tableIx := rowIx ^ e
			c := maskTo(g.kdf.H256(gateTweak, X[xBit], Y[yBit]), g.mask)
			c.Xor(Z[gate.Table[tableIx]])
			g.Out.Write(keyBytes(c, g.n))
		}
	} else {
		z0 := freshZeroKey(g.prng, g.k)
		z1 := z0
		z1.Xor(g.r)
		Z[0], Z[1] = z0, z1

		for e := 0; e < 4; e++ {
			xBit := int(px) ^ (e & 1)
			yBit := int(py) ^ ((e >> 1) & 1)
			tableIx := rowIx ^ e
			c := maskTo(g.kdf.H256(gateTweak, X[xBit], Y[yBit]), g.mask)
			c.Xor(Z[gate.Table[tableIx]])
			g.Out.Write(keyBytes(c, g.n))
		}
	}

	return Z[0], nil
}

func (g *Generator) garbleUnary(gate *Gate) (ot.Label, error) {
	if len(gate.Table) != 2 {
		return ot.Label{}, fmt.Errorf("%w: 1-input truth table length %d",
			ErrMalformedCircuit, len(gate.Table))
	}

	x0 := g.wires[gate.In0]
	x1 := x0
	x1.Xor(g.r)
	X := [2]ot.Label{x0, x1}

	px := lowBit(x0)
	gateTweak := g.gateIx

	var Z [2]ot.Label

	if g.cfg.GRR {
		c0 := maskTo(g.kdf.H128(gateTweak, X[px]), g.mask)
		b := gate.Table[px]
		Z[b] = c0
		Z[1-b] = c0
		Z[1-b].Xor(g.r)

		xBit := int(px) ^ 1
		c1 := maskTo(g.kdf.H128(gateTweak, X[xBit]), g.mask)
		c1.Xor(Z[gate.Table[xBit]])
		g.Out.Write(keyBytes(c1, g.n))
	} else {
		z0 := freshZeroKey(g.prng, g.k)
		z1 := z0
		z1.Xor(g.r)
		Z[0], Z[1] = z0, z1

		for e := 0; e < 2; e++ {
			xBit := int(px) ^ e
			c := maskTo(g.kdf.H128(gateTweak, X[xBit]), g.mask)
			c.Xor(Z[gate.Table[xBit]])
			g.Out.Write(keyBytes(c, g.n))
		}
	}

	return Z[0], nil
}
