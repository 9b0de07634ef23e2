//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package yao

import (
	"bytes"

	"github.com/markkurossi/mpc/env"
)

// stagingChunkSize is the 10 MiB framing chunk size spec.md §3 and §6
// specify for the commit-while-generate digest, the same
// CIRCUIT_HASH_BUFFER_SIZE constant
// original_source/pcflib/betteryao/GarbledCct3.cpp uses.
const stagingChunkSize = 10 * 1024 * 1024

// CommitGenerator wraps a Generator with a rolling digest, folding
// every gate's emitted bytes into the digest as they are produced so
// the caller never needs to retain the full garbled circuit — only
// its commitment, per spec.md §4.3.
type CommitGenerator struct {
	*Generator
	digest  *Digest
	staging bytes.Buffer
	stream  bool
}

// NewCommitGenerator wraps gen in a commit-while-generate wrapper. The
// digest is only streamed in RAND_SEED-flag chunks when cfg.RandSeed
// is set, mirroring the #ifdef RAND_SEED guard around update_hash in
// the original implementation; otherwise every gate's bytes are
// folded in immediately.
func NewCommitGenerator(cfg *env.Config, gen *Generator) *CommitGenerator {
	return &CommitGenerator{
		Generator: gen,
		digest:    NewDigest(),
		stream:    cfg.RandSeed,
	}
}

// NextGate garbles one gate via the embedded Generator, folds the
// emitted bytes into the rolling digest, then clears the generator's
// own output buffer.
func (c *CommitGenerator) NextGate(gate *Gate) error {
	if err := c.Generator.NextGate(gate); err != nil {
		return err
	}

	data := c.Generator.Out.Drain()
	if len(data) == 0 {
		return nil
	}

	if !c.stream {
		c.digest.Update(data)
		return nil
	}

	c.staging.Write(data)
	for c.staging.Len() >= stagingChunkSize {
		chunk := c.staging.Next(stagingChunkSize)
		c.digest.Update(chunk)
	}
	return nil
}

// Finalize flushes any remaining staged bytes and returns the digest
// of everything emitted so far.
func (c *CommitGenerator) Finalize() []byte {
	if c.staging.Len() > 0 {
		c.digest.Update(c.staging.Bytes())
		c.staging.Reset()
	}
	return c.digest.Finalize()
}
