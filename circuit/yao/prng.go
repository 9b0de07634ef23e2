//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package yao

import (
	"crypto/sha256"

	"golang.org/x/crypto/chacha20"
)

// PRNG implements the rolling pseudo-random byte source spec.md §6
// requires: seed(bytes)/rand(nbits)->bytes, deterministic given seed,
// never reseeded mid-circuit. It streams golang.org/x/crypto/chacha20
// the same way vole/vole.go's prgChaCha20 expands a key, except the
// cipher instance is retained across calls so successive Rand calls
// draw from one continuous keystream instead of restarting at zero.
type PRNG struct {
	cipher *chacha20.Cipher
}

// NewPRNG seeds a PRNG from an arbitrary-length seed. The seed is
// hashed down to a 32-byte ChaCha20 key with sha256, the same
// keyed-derivation idiom ot/co_helpers.go's deriveMask already uses
// for domain-separated masks.
func NewPRNG(seed []byte) (*PRNG, error) {
	key := sha256.Sum256(seed)
	nonce := make([]byte, chacha20.NonceSize)
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce)
	if err != nil {
		return nil, err
	}
	return &PRNG{cipher: c}, nil
}

// Rand returns ceil(nbits/8) bytes of fresh keystream. The unused low
// bits of the trailing byte, if nbits is not a multiple of 8, are
// zero.
func (p *PRNG) Rand(nbits int) []byte {
	n := (nbits + 7) / 8
	out := make([]byte, n)
	p.cipher.XORKeyStream(out, out)

	if rem := nbits % 8; rem != 0 && n > 0 {
		out[n-1] &= 0xff << uint(8-rem)
	}
	return out
}
