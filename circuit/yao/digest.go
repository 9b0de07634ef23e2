//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package yao

import (
	"crypto/sha256"
	"hash"
)

// Digest implements the rolling cryptographic hash spec.md §6
// requires: init/update/finalize, associative over concatenation
// regardless of how the caller chunks its Update calls. It wraps the
// same hash.Hash rolling idiom ot/co.go's kdf function already uses
// (Reset/Write/Sum) rather than hand-rolling a hash.
type Digest struct {
	h hash.Hash
}

// NewDigest creates an empty rolling digest.
func NewDigest() *Digest {
	return &Digest{h: sha256.New()}
}

// Update folds data into the digest.
func (d *Digest) Update(data []byte) {
	d.h.Write(data)
}

// Finalize returns the digest of everything written so far. It does
// not reset the underlying state; callers that need a fresh digest
// should create a new Digest.
func (d *Digest) Finalize() []byte {
	return d.h.Sum(nil)
}
