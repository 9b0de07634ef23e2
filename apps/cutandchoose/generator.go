//
// generator.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"fmt"
	"io"

	"github.com/markkurossi/mpc/circuit"
	"github.com/markkurossi/mpc/circuit/yao"
	"github.com/markkurossi/mpc/env"
	"github.com/markkurossi/mpc/ot"
	"github.com/markkurossi/mpc/p2p"
)

// runGenerator plays the generator side of a single evaluate instance
// against conn: it garbles the shared demo circuit gate by gate,
// streams every emitted byte to the evaluator, folds the same bytes
// into a running digest (the "commit while generating" idiom
// spec.md's decommitment-and-hash construction is built on, inlined
// here instead of routed through yao.CommitGenerator since that type
// deliberately drops the bytes it commits to — see DESIGN.md), and
// delivers evaluator-input keys through RSA oblivious transfer.
func runGenerator(conn *p2p.Conn, cfg *env.Config, x, z byte, verbose bool) error {
	timing := circuit.NewTiming()

	if err := sendConfig(conn, cfg); err != nil {
		return fmt.Errorf("cutandchoose: send config: %w", err)
	}
	remote, err := receiveConfig(conn)
	if err != nil {
		return fmt.Errorf("cutandchoose: receive config: %w", err)
	}
	if err := yao.MatchConfig(cfg, remote); err != nil {
		return err
	}

	gates := demoCircuit()
	genInpCnt, evlInpCnt, _ := gateCounts(gates)
	n := cfg.KeyBytes()

	genBits := []byte{x, z}
	if len(genBits) != genInpCnt {
		return fmt.Errorf("cutandchoose: circuit wants %d generator inputs, got %d",
			genInpCnt, len(genBits))
	}

	genInpMaskBits := make([]byte, genInpCnt)
	maskByte := make([]byte, 1)
	for j := range genInpMaskBits {
		if _, err := io.ReadFull(cfg.GetRandom(), maskByte); err != nil {
			return fmt.Errorf("cutandchoose: draw mask bit: %w", err)
		}
		genInpMaskBits[j] = maskByte[0] & 1
	}
	maskedGenInpBits := make([]byte, genInpCnt)
	for j := range maskedGenInpBits {
		maskedGenInpBits[j] = genBits[j] ^ genInpMaskBits[j]
	}

	otKeyPairs := make([]ot.Wire, evlInpCnt)
	yaoOtKeyPairs := make([]yao.OTKeyPair, evlInpCnt)
	for j := range otKeyPairs {
		k0 := make([]byte, n)
		k1 := make([]byte, n)
		if _, err := io.ReadFull(cfg.GetRandom(), k0); err != nil {
			return fmt.Errorf("cutandchoose: draw OT key: %w", err)
		}
		if _, err := io.ReadFull(cfg.GetRandom(), k1); err != nil {
			return fmt.Errorf("cutandchoose: draw OT key: %w", err)
		}
		otKeyPairs[j] = ot.Wire{Label0: k0, Label1: k1}
		yaoOtKeyPairs[j] = yao.OTKeyPair{K0: k0, K1: k1}
	}

	seed := make([]byte, 16)
	if _, err := io.ReadFull(cfg.GetRandom(), seed); err != nil {
		return fmt.Errorf("cutandchoose: draw PRNG seed: %w", err)
	}

	gen, err := yao.NewGenerator(cfg, yaoOtKeyPairs, packBits(genInpMaskBits),
		seed, demoNumWires, genInpCnt)
	if err != nil {
		return fmt.Errorf("cutandchoose: new generator: %w", err)
	}
	timing.Sample("Setup", nil)

	if err := conn.SendData(gen.KDFKey()); err != nil {
		return err
	}
	if err := conn.SendData(packBits(maskedGenInpBits)); err != nil {
		return err
	}
	if err := conn.Flush(); err != nil {
		return err
	}

	inputs := make(ot.Inputs, evlInpCnt)
	for j, w := range otKeyPairs {
		inputs[j] = w
	}
	sender, err := ot.NewSender(2048, inputs)
	if err != nil {
		return fmt.Errorf("cutandchoose: new OT sender: %w", err)
	}
	pub := sender.PublicKey()
	if err := conn.SendData(pub.N.Bytes()); err != nil {
		return err
	}
	if err := conn.SendUint32(pub.E); err != nil {
		return err
	}
	if err := conn.Flush(); err != nil {
		return err
	}
	timing.Sample("OT init", nil)

	for j := 0; j < evlInpCnt; j++ {
		xfer, err := sender.NewTransfer(j)
		if err != nil {
			return fmt.Errorf("cutandchoose: OT transfer %d: %w", j, err)
		}
		x0, x1 := xfer.RandomMessages()
		if err := conn.SendData(x0); err != nil {
			return err
		}
		if err := conn.SendData(x1); err != nil {
			return err
		}
		if err := conn.Flush(); err != nil {
			return err
		}

		v, err := conn.ReceiveData()
		if err != nil {
			return err
		}
		xfer.ReceiveV(v)

		m0p, m1p, err := xfer.Messages()
		if err != nil {
			return fmt.Errorf("cutandchoose: OT messages %d: %w", j, err)
		}
		if err := conn.SendData(m0p); err != nil {
			return err
		}
		if err := conn.SendData(m1p); err != nil {
			return err
		}
		if err := conn.Flush(); err != nil {
			return err
		}
	}
	timing.Sample("OT", nil)

	digest := yao.NewDigest()
	genInpSeen := 0
	for i := range gates {
		gate := gates[i]
		if err := gen.NextGate(&gate); err != nil {
			return fmt.Errorf("cutandchoose: garble gate %d: %w", i, err)
		}
		data := gen.Out.Drain()
		digest.Update(data)
		if err := conn.SendData(data); err != nil {
			return err
		}

		if gate.Tag == yao.GateGenInput {
			masked := int(maskedGenInpBits[genInpSeen])
			decom := gen.Decommitment(2*genInpSeen + masked)
			digest.Update(decom)
			if err := conn.SendData(decom); err != nil {
				return err
			}
			genInpSeen++
		}
	}
	if err := conn.SendData(digest.Finalize()); err != nil {
		return err
	}
	if err := conn.Flush(); err != nil {
		return err
	}
	timing.Sample("Garble+Xfer", nil)

	result, err := conn.ReceiveByte()
	if err != nil {
		return err
	}
	timing.Sample("Result", nil)

	fmt.Printf("Maj(%d, y, %d) = %d\n", x, z, result)
	if verbose {
		timing.Print(conn.Stats)
	}
	return nil
}
