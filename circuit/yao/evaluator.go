//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package yao

import (
	"bytes"
	"fmt"

	"github.com/markkurossi/mpc/env"
	"github.com/markkurossi/mpc/ot"
)

// Evaluator implements the evaluator-side role of spec.md §4.2:
// evl_init/evl_next_gate, consuming exactly the bytes the matching
// Generator emitted, from an InputCursor the caller refills between
// gates.
type Evaluator struct {
	cfg  *env.Config
	k    int
	n    int
	kdf  *KDF
	mask ot.Label

	wires  []ot.Label
	gateIx uint64

	maskedGenInp []byte
	evlInp       []byte
	genInpIx     int
	evlInpIx     int

	otKeys [][]byte // one key per evaluator input

	genInpCom   [][]byte // received commitment half, one per gen input
	genInpDecom [][]byte // opened decommitment, delivered out of band

	EvlOut []byte // bit-packed evaluator output
	GenOut []byte // bit-packed generator output
	evlOutIx int
	genOutIx int

	genInpHash []byte // bit-packed input-hash subcircuit result
}

// NewEvaluator constructs an evaluator instance fixed to a KDF built
// from the AES key the matching Generator sent in the clear (KDFKey),
// mirroring evl_init. otKeys holds one k-bit key per evaluator input,
// already selected via the OT subprotocol.
func NewEvaluator(cfg *env.Config, kdfKey []byte, otKeys [][]byte,
	maskedGenInp, evlInp []byte, numWires, genInpCnt, evlOutCnt,
	genOutCnt int) (*Evaluator, error) {

	kdf, err := NewKDF(kdfKey)
	if err != nil {
		return nil, fmt.Errorf("yao: init KDF: %w", err)
	}

	k := cfg.SecurityParameter()
	e := &Evaluator{
		cfg:          cfg,
		k:            k,
		n:            cfg.KeyBytes(),
		kdf:          kdf,
		mask:         clearMaskFor(k),
		wires:        make([]ot.Label, numWires),
		maskedGenInp: maskedGenInp,
		evlInp:       evlInp,
		otKeys:       otKeys,
		genInpCom:    make([][]byte, genInpCnt),
		genInpDecom:  make([][]byte, genInpCnt),
		EvlOut:       make([]byte, (evlOutCnt+7)/8),
		GenOut:       make([]byte, (genOutCnt+7)/8),
		genInpHash:   make([]byte, (k+7)/8),
	}
	return e, nil
}

// SetGenInputDecommitment records the opened decommitment for
// generator-input index j, delivered out of band through the OT or
// opening path spec.md §4.2 describes, before or as NextGate reaches
// that wire.
func (e *Evaluator) SetGenInputDecommitment(j int, blob []byte) {
	e.genInpDecom[j] = blob
}

// NextGate consumes bytes from in in exactly the order and quantities
// the matching Generator produced, reconstructing the active key for
// gate.Wire.
func (e *Evaluator) NextGate(gate *Gate, in *InputCursor) error {
	var active ot.Label

	switch gate.Tag {
	case GateGenInput:
		key, err := e.evalGenInput(in)
		if err != nil {
			return err
		}
		active = key

	case GateEvalInput:
		key, err := e.evalEvalInput(in)
		if err != nil {
			return err
		}
		active = key

	case GateInternal:
		key, err := e.evalInternal(gate, in)
		if err != nil {
			return err
		}
		active = key

	default:
		return fmt.Errorf("%w: unknown gate tag %v", ErrMalformedCircuit, gate.Tag)
	}

	if gate.Output == OutputEval || gate.Output == OutputGen {
		h, err := in.NextByte()
		if err != nil {
			return err
		}
		outBit := lowBit(active) ^ h
		if gate.Output == OutputEval {
			setPackedBit(e.EvlOut, e.evlOutIx, outBit)
			e.evlOutIx++
		} else {
			// GEN_OUT is decoded identically to EVL_OUT for byte
			// layout (spec.md §9). Ki08 re-commitment for generator
			// outputs is not implemented here.
			setPackedBit(e.GenOut, e.genOutIx, outBit)
			e.genOutIx++
		}
	}

	e.wires[gate.Wire] = active
	e.gateIx++
	return nil
}

func setPackedBit(bits []byte, i int, b byte) {
	if b != 0 {
		bits[i/8] |= 1 << uint(i%8)
	} else {
		bits[i/8] &^= 1 << uint(i%8)
	}
}

func (e *Evaluator) evalGenInput(in *InputCursor) (ot.Label, error) {
	j := e.genInpIx
	b := bit(e.maskedGenInp, j)

	h0, err := in.Next(e.n)
	if err != nil {
		return ot.Label{}, err
	}
	h1, err := in.Next(e.n)
	if err != nil {
		return ot.Label{}, err
	}
	halves := [2][]byte{h0, h1}
	e.genInpCom[j] = append([]byte(nil), halves[b]...)

	decom := e.genInpDecom[j]
	if decom == nil || len(decom) < e.n {
		return ot.Label{}, fmt.Errorf(
			"%w: generator-input decommitment %d not delivered", ErrBufferUnderrun, j)
	}
	key := labelFromKeyBytes(decom[:e.n])

	e.genInpIx++
	return key, nil
}

func (e *Evaluator) evalEvalInput(in *InputCursor) (ot.Label, error) {
	j := e.evlInpIx
	b := bit(e.evlInp, j)

	blk0, err := in.Next(e.n)
	if err != nil {
		return ot.Label{}, err
	}
	blk1, err := in.Next(e.n)
	if err != nil {
		return ot.Label{}, err
	}
	blocks := [2][]byte{blk0, blk1}

	key := xorBytes(blocks[b], e.otKeys[j])

	e.evlInpIx++
	return labelFromKeyBytes(key), nil
}

func (e *Evaluator) evalInternal(gate *Gate, in *InputCursor) (ot.Label, error) {
	arity := gate.Arity()

	if e.cfg.FreeXOR && gate.IsXOR() {
		switch arity {
		case 2:
			k := e.wires[gate.In0]
			k.Xor(e.wires[gate.In1])
			return k, nil
		case 1:
			return e.wires[gate.In0], nil
		default:
			return ot.Label{}, fmt.Errorf("%w: xor arity %d", ErrMalformedCircuit, arity)
		}
	}

	switch arity {
	case 2:
		return e.evalBinary(gate, in)
	case 1:
		return e.evalUnary(gate, in)
	default:
		return ot.Label{}, fmt.Errorf("%w: gate arity %d", ErrMalformedCircuit, arity)
	}
}

func (e *Evaluator) evalBinary(gate *Gate, in *InputCursor) (ot.Label, error) {
	if len(gate.Table) != 4 {
		return ot.Label{}, fmt.Errorf("%w: 2-input truth table length %d",
			ErrMalformedCircuit, len(gate.Table))
	}

	kIn0 := e.wires[gate.In0]
	kIn1 := e.wires[gate.In1]
	garbledIx := (int(lowBit(kIn1)) << 1) | int(lowBit(kIn0))

	c := maskTo(e.kdf.H256(e.gateIx, kIn0, kIn1), e.mask)

	if e.cfg.GRR {
		// The generator always emits 3*n bytes for this gate; which
		// row is reduced to zero bytes is a static property of the
		// gate's zero-labels, not of garbledIx, so the cursor must
		// advance here even when garbledIx == 0.
		row, err := in.Next(3 * e.n)
		if err != nil {
			return ot.Label{}, err
		}
		if garbledIx == 0 {
			return c, nil
		}
		entry := row[(garbledIx-1)*e.n : garbledIx*e.n]
		c.Xor(labelFromKeyBytes(entry))
		return c, nil
	}

	row, err := in.Next(4 * e.n)
	if err != nil {
		return ot.Label{}, err
	}
	entry := row[garbledIx*e.n : (garbledIx+1)*e.n]
	c.Xor(labelFromKeyBytes(entry))
	return c, nil
}

func (e *Evaluator) evalUnary(gate *Gate, in *InputCursor) (ot.Label, error) {
	if len(gate.Table) != 2 {
		return ot.Label{}, fmt.Errorf("%w: 1-input truth table length %d",
			ErrMalformedCircuit, len(gate.Table))
	}

	kIn0 := e.wires[gate.In0]
	garbledIx := int(lowBit(kIn0))

	c := maskTo(e.kdf.H128(e.gateIx, kIn0), e.mask)

	if e.cfg.GRR {
		// Same unconditional advance as evalBinary: the generator
		// always emits n bytes for this gate regardless of garbledIx.
		entry, err := in.Next(e.n)
		if err != nil {
			return ot.Label{}, err
		}
		if garbledIx == 0 {
			return c, nil
		}
		c.Xor(labelFromKeyBytes(entry))
		return c, nil
	}

	row, err := in.Next(2 * e.n)
	if err != nil {
		return ot.Label{}, err
	}
	entry := row[garbledIx*e.n : (garbledIx+1)*e.n]
	c.Xor(labelFromKeyBytes(entry))
	return c, nil
}

// PassCheck implements spec.md §4.5: it returns true iff, for every
// generator-input index, the opened decommitment hashes to the
// commitment the generator sent.
func (e *Evaluator) PassCheck() bool {
	for j, decom := range e.genInpDecom {
		if decom == nil {
			return false
		}
		if !bytes.Equal(hashDecommitment(decom, e.n), e.genInpCom[j]) {
			return false
		}
	}
	return true
}
