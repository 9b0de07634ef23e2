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

// fixedKeyConfig returns a config whose GetRandom() yields a
// deterministic byte stream, so two independently constructed
// Generators fed the same keyByte draw identical KDF keys.
func fixedKeyConfig(freeXOR, grr, randSeed bool, keyByte byte) *env.Config {
	return &env.Config{
		Rand:     bytes.NewReader(bytes.Repeat([]byte{keyByte}, 32)),
		K:        80,
		FreeXOR:  freeXOR,
		GRR:      grr,
		RandSeed: randSeed,
	}
}

func commitCircuit() circuit {
	return circuit{
		numWires: 3,
		gates: []Gate{
			{Tag: GateEvalInput, Wire: 0},
			{Tag: GateGenInput, Wire: 1},
			{Tag: GateInternal, Wire: 2, In0: 0, In1: 1,
				Table: []byte{0, 0, 0, 1}, Output: OutputEval},
		},
	}
}

// digestOf garbles c non-incrementally and returns the SHA-256 digest
// of the full concatenated output, as a ground-truth to compare
// CommitGenerator against.
func digestOf(t *testing.T, cfg *env.Config, seed []byte, c circuit,
	genBits []byte) []byte {
	t.Helper()

	n := cfg.KeyBytes()
	gen, err := NewGenerator(cfg, []OTKeyPair{{
		K0: bytes.Repeat([]byte{1}, n), K1: bytes.Repeat([]byte{2}, n),
	}}, packBits(genBits), seed, c.numWires, 1)
	if err != nil {
		t.Fatalf("NewGenerator: %s", err)
	}

	d := NewDigest()
	for i := range c.gates {
		gate := c.gates[i]
		if err := gen.NextGate(&gate); err != nil {
			t.Fatalf("gate %d: %s", i, err)
		}
		d.Update(gen.Out.Drain())
	}
	return d.Finalize()
}

func runCommit(t *testing.T, cfg *env.Config, seed []byte, c circuit,
	genBits []byte) []byte {
	t.Helper()

	n := cfg.KeyBytes()
	gen, err := NewGenerator(cfg, []OTKeyPair{{
		K0: bytes.Repeat([]byte{1}, n), K1: bytes.Repeat([]byte{2}, n),
	}}, packBits(genBits), seed, c.numWires, 1)
	if err != nil {
		t.Fatalf("NewGenerator: %s", err)
	}

	cg := NewCommitGenerator(cfg, gen)
	for i := range c.gates {
		gate := c.gates[i]
		if err := cg.NextGate(&gate); err != nil {
			t.Fatalf("gate %d: %s", i, err)
		}
	}
	return cg.Finalize()
}

func TestCommitGeneratorMatchesManualDigestImmediate(t *testing.T) {
	c := commitCircuit()

	want := digestOf(t, fixedKeyConfig(true, true, false, 0x11), []byte("commit-seed"), c, []byte{1})
	got := runCommit(t, fixedKeyConfig(true, true, false, 0x11), []byte("commit-seed"), c, []byte{1})

	if !bytes.Equal(want, got) {
		t.Fatalf("CommitGenerator digest mismatch:\n want %x\n got  %x", want, got)
	}
}

func TestCommitGeneratorMatchesManualDigestStreamed(t *testing.T) {
	c := commitCircuit()

	want := digestOf(t, fixedKeyConfig(true, true, true, 0x22), []byte("commit-seed-2"), c, []byte{0})
	got := runCommit(t, fixedKeyConfig(true, true, true, 0x22), []byte("commit-seed-2"), c, []byte{0})

	if !bytes.Equal(want, got) {
		t.Fatalf("streamed CommitGenerator digest mismatch:\n want %x\n got  %x", want, got)
	}
}

func TestCommitGeneratorChunkingIsTransparent(t *testing.T) {
	// The same gate sequence, seed, KDF key and generator input bit
	// must produce the same digest whether the caller's RandSeed
	// choice buffers in 10 MiB chunks or folds bytes in immediately:
	// the digest is over the logical byte stream, not the chunk
	// boundaries.
	c := commitCircuit()

	got1 := runCommit(t, fixedKeyConfig(true, true, false, 0x33), []byte("chunk-seed"), c, []byte{1})
	got2 := runCommit(t, fixedKeyConfig(true, true, true, 0x33), []byte("chunk-seed"), c, []byte{1})

	if !bytes.Equal(got1, got2) {
		t.Fatalf("digest depends on RandSeed chunking:\n immediate %x\n streamed  %x", got1, got2)
	}
}

func TestCommitGeneratorSensitiveToTampering(t *testing.T) {
	c := commitCircuit()

	d1 := runCommit(t, fixedKeyConfig(true, true, false, 0x44), []byte("tamper-seed"), c, []byte{0})
	d2 := runCommit(t, fixedKeyConfig(true, true, false, 0x44), []byte("tamper-seed"), c, []byte{1})

	if bytes.Equal(d1, d2) {
		t.Fatalf("digest did not change when the generator input bit changed")
	}
}
