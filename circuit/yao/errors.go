//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package yao

import "errors"

// Error kinds a Generator or Evaluator instance can signal. The first
// two are fatal for the instance; commit-mismatch is a protocol-level
// signal the outer cut-and-choose interprets, never a silent recovery.
var (
	// ErrMalformedCircuit is returned for an unrecognised gate tag, an
	// input arity other than 1 or 2, or a truth table whose length
	// does not match the gate's arity.
	ErrMalformedCircuit = errors.New("yao: malformed circuit")

	// ErrBufferUnderrun is returned when the evaluator's input cursor
	// would advance past the end of the buffered bytes.
	ErrBufferUnderrun = errors.New("yao: buffer underrun")

	// ErrConfigMismatch is returned by MatchConfig at setup when the
	// generator's and evaluator's security parameter or free-XOR/GRR
	// flags disagree. Gate counts are not compared.
	ErrConfigMismatch = errors.New("yao: config mismatch")

	// ErrCommitMismatch is returned by PassCheck's caller-visible
	// counterpart when a generator-input decommitment does not match
	// its earlier commitment. PassCheck itself returns a bool; this
	// error exists for call sites that prefer to treat the mismatch
	// as an error value.
	ErrCommitMismatch = errors.New("yao: commitment mismatch")
)
