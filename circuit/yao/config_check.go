//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package yao

import (
	"fmt"

	"github.com/markkurossi/mpc/env"
)

// MatchConfig verifies that a generator's and an evaluator's
// configuration agree on the security parameter and the free-XOR/GRR
// flags, returning ErrConfigMismatch otherwise. It does not compare
// gate counts, and the RandSeed flag is not checked. Callers run this
// once at setup, before exchanging any gate stream.
func MatchConfig(local, remote *env.Config) error {
	if local.SecurityParameter() != remote.SecurityParameter() {
		return fmt.Errorf("%w: security parameter %d != %d",
			ErrConfigMismatch, local.SecurityParameter(), remote.SecurityParameter())
	}
	if local.FreeXOR != remote.FreeXOR {
		return fmt.Errorf("%w: free_xor %v != %v",
			ErrConfigMismatch, local.FreeXOR, remote.FreeXOR)
	}
	if local.GRR != remote.GRR {
		return fmt.Errorf("%w: grr %v != %v",
			ErrConfigMismatch, local.GRR, remote.GRR)
	}
	return nil
}

// CheckCommit returns ErrCommitMismatch if PassCheck fails, for call
// sites that prefer an error value to a bool.
func (e *Evaluator) CheckCommit() error {
	if !e.PassCheck() {
		return ErrCommitMismatch
	}
	return nil
}
