//
// protocol.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"github.com/markkurossi/mpc/env"
	"github.com/markkurossi/mpc/p2p"
)

// configFlags packs the subset of env.Config that garbler and
// evaluator must agree on into a single byte, the same "flags travel
// as a header the other side echoes back" pattern circuit/garbler.go
// uses for its own key exchange.
func configFlags(cfg *env.Config) byte {
	var b byte
	if cfg.FreeXOR {
		b |= 1
	}
	if cfg.GRR {
		b |= 2
	}
	if cfg.RandSeed {
		b |= 4
	}
	return b
}

// sendConfig sends the local security parameter and flags so the peer
// can build a matching remote view for yao.MatchConfig.
func sendConfig(conn *p2p.Conn, cfg *env.Config) error {
	if err := conn.SendUint16(cfg.SecurityParameter()); err != nil {
		return err
	}
	if err := conn.SendByte(configFlags(cfg)); err != nil {
		return err
	}
	return conn.Flush()
}

// receiveConfig receives the peer's security parameter and flags and
// returns them as an env.Config suitable for yao.MatchConfig.
func receiveConfig(conn *p2p.Conn) (*env.Config, error) {
	k, err := conn.ReceiveUint16()
	if err != nil {
		return nil, err
	}
	flags, err := conn.ReceiveByte()
	if err != nil {
		return nil, err
	}
	return &env.Config{
		K:        k,
		FreeXOR:  flags&1 != 0,
		GRR:      flags&2 != 0,
		RandSeed: flags&4 != 0,
	}, nil
}
