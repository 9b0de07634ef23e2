//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package yao

import "github.com/markkurossi/mpc/ot"

// GenInputHash implements the generator side of the input-hash
// subcircuit (spec.md §4.4), translated directly from
// gen_next_gen_inp_com in
// original_source/pcflib/betteryao/GarbledCct3.cpp. row selects which
// generator-input decommitments to XOR together for this row; kx is
// the row index and doubles as the KDF tweak, domain-separated from
// gate tweaks by being used only here and in EvalInputHash.
func (g *Generator) GenInputHash(row []byte, kx uint64) error {
	z0 := freshZeroKey(g.prng, g.k)
	setLowBit(&z0, 0)
	z1 := z0
	z1.Xor(g.r)

	genInpCnt := len(g.decom) / 2
	blobLen := len(g.decom[0])
	msg := make([]byte, blobLen)
	for j := 0; j < genInpCnt; j++ {
		if bit(row, j) == 0 {
			continue
		}
		b := bit(g.genInpMask, j)
		msg = xorBytes(msg, g.decom[2*j+b])
	}

	k0 := labelFromKeyBytes(msg[:g.n])
	k1 := k0
	k1.Xor(g.r)
	b := lowBit(k0)

	c0 := maskTo(g.kdf.H128(kx, k0), g.mask)
	out0 := z0
	out0.Xor(c0)

	c1 := maskTo(g.kdf.H128(kx, k1), g.mask)
	out1 := z1
	out1.Xor(c1)

	out := [2]ot.Label{out0, out1}

	g.Out.Write(keyBytes(out[b], g.n))
	g.Out.Write(keyBytes(out[1-b], g.n))

	return nil
}

// EvalInputHash implements the evaluator side of the input-hash
// subcircuit (spec.md §4.4), translated from evl_next_gen_inp_com.
// Unlike the generator, the evaluator holds one opened decommitment
// per generator-input wire (not two), populated via
// SetGenInputDecommitment.
func (e *Evaluator) EvalInputHash(row []byte, kx uint64, in *InputCursor) error {
	genInpCnt := len(e.genInpDecom)
	blobLen := len(e.genInpDecom[0])
	out := make([]byte, blobLen)
	for j := 0; j < genInpCnt; j++ {
		if bit(row, j) == 0 {
			continue
		}
		out = xorBytes(out, e.genInpDecom[j])
	}

	key := labelFromKeyBytes(out[:e.n])
	b := lowBit(key)

	c0, err := in.Next(e.n)
	if err != nil {
		return err
	}
	c1, err := in.Next(e.n)
	if err != nil {
		return err
	}
	cipher := [2][]byte{c0, c1}

	h := maskTo(e.kdf.H128(kx, key), e.mask)
	outKey := labelFromKeyBytes(cipher[b])
	outKey.Xor(h)

	setPackedBit(e.genInpHash, int(kx), lowBit(outKey))
	return nil
}

// GenInpHash returns the evaluator's reconstructed hash of the
// generator's committed inputs after k rows, for the outer
// cut-and-choose to compare against openings.
func (e *Evaluator) GenInpHash() []byte {
	return e.genInpHash
}
