//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package yao

import (
	"github.com/markkurossi/mpc/ot"
)

// lowBit returns the permutation / point-and-permute bit of a label:
// bit 0 of the label's numeric value, i.e. the least-significant bit
// of D1 (D0||D1 is big-endian, so D1 holds the low 64 bits).
func lowBit(l ot.Label) byte {
	return byte(l.D1 & 1)
}

// setLowBit forces the permutation bit of l to b.
func setLowBit(l *ot.Label, b byte) {
	l.D1 = (l.D1 &^ 1) | uint64(b&1)
}

// clearMaskFor returns a label whose low k bits are 1 and whose
// remaining high bits are 0, used to truncate KDF outputs and freshly
// drawn keys to the security parameter.
func clearMaskFor(k int) ot.Label {
	var m ot.Label
	switch {
	case k >= 128:
		m.D0 = ^uint64(0)
		m.D1 = ^uint64(0)
	case k > 64:
		m.D1 = ^uint64(0)
		m.D0 = (uint64(1) << uint(k-64)) - 1
	case k == 64:
		m.D1 = ^uint64(0)
	default:
		m.D1 = (uint64(1) << uint(k)) - 1
	}
	return m
}

// maskTo returns l AND mask.
func maskTo(l ot.Label, mask ot.Label) ot.Label {
	l.D0 &= mask.D0
	l.D1 &= mask.D1
	return l
}

// keyBytes returns the low nBytes bytes of l's big-endian
// representation: the ⌈k/8⌉-byte key spec.md uses throughout. Callers
// must have already masked l to k bits.
func keyBytes(l ot.Label, nBytes int) []byte {
	var buf ot.LabelData
	l.GetData(&buf)
	return append([]byte(nil), buf[16-nBytes:]...)
}

// labelFromKeyBytes rebuilds a label from a ⌈k/8⌉-byte key, zero
// extending into the high bytes.
func labelFromKeyBytes(key []byte) ot.Label {
	var buf ot.LabelData
	copy(buf[16-len(key):], key)
	var l ot.Label
	l.SetData(&buf)
	return l
}

// xorBytes XORs two equal-length byte slices into a freshly allocated
// result.
func xorBytes(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// freshR draws the global offset R: low k bits random, bit 0 forced to
// 1, bits >= k zero. Forgetting the bit-0 force breaks the
// point-and-permute encoding of plaintext bits in label low bits.
func freshR(prng *PRNG, k int) ot.Label {
	r := labelFromKeyBytes(prng.Rand(k))
	setLowBit(&r, 1)
	return maskTo(r, clearMaskFor(k))
}

// freshZeroKey draws a fresh k-bit zero-key with upper bits cleared.
func freshZeroKey(prng *PRNG, k int) ot.Label {
	return maskTo(labelFromKeyBytes(prng.Rand(k)), clearMaskFor(k))
}
