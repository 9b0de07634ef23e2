//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package yao

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/markkurossi/mpc/ot"
)

// KDF implements the fixed-key, tweakable 128-bit PRF spec.md §2 and
// §6 call H128/H256: a single AES key fixed for the lifetime of one
// circuit instance, combined Davies-Meyer style with the input labels
// and a 64-bit tweak the same way circuit/garble.go's makeK+encrypt
// already combine two wire labels and a gate tweak before one block
// encryption.
type KDF struct {
	alg cipher.Block
}

// NewKDF creates a KDF fixed to the given AES key (16, 24, or 32
// bytes).
func NewKDF(key []byte) (*KDF, error) {
	alg, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return &KDF{alg: alg}, nil
}

// tweakBlock broadcasts a 64-bit tweak into both lanes of a label, the
// same _mm_set1_epi64x(gate_ix) convention the reference garbler in
// original_source/pcflib/betteryao/GarbledCct3.cpp uses.
func tweakBlock(tweak uint64) ot.Label {
	return ot.Label{D0: tweak, D1: tweak}
}

// H128 hashes a single key under a tweak, for one-input gates and the
// input-hash subcircuit.
func (k *KDF) H128(tweak uint64, key ot.Label) ot.Label {
	return k.hash(key, nil, tweak)
}

// H256 hashes two keys under a tweak, for two-input gates.
func (k *KDF) H256(tweak uint64, a, b ot.Label) ot.Label {
	return k.hash(a, &b, tweak)
}

func (k *KDF) hash(a ot.Label, b *ot.Label, tweak uint64) ot.Label {
	combined := a
	combined.Mul2()
	if b != nil {
		tmp := *b
		tmp.Mul4()
		combined.Xor(tmp)
	}
	combined.Xor(tweakBlock(tweak))

	var buf ot.LabelData
	enc := make([]byte, len(buf))
	k.alg.Encrypt(enc, combined.Bytes(&buf))

	var out ot.Label
	out.SetBytes(enc)
	out.Xor(combined)
	return out
}
