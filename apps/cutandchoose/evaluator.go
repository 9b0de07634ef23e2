//
// evaluator.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"bytes"
	"crypto/rsa"
	"fmt"
	"math/big"

	"github.com/markkurossi/mpc/circuit"
	"github.com/markkurossi/mpc/circuit/yao"
	"github.com/markkurossi/mpc/env"
	"github.com/markkurossi/mpc/ot"
	"github.com/markkurossi/mpc/p2p"
)

// runEvaluator plays the evaluator side of a single evaluate instance
// against conn: it receives evaluator-input keys through RSA
// oblivious transfer, consumes the generator's gate stream, folds the
// same bytes into its own running digest to cross-check against the
// generator's commitment, verifies every opened generator-input
// decommitment with yao.Evaluator.PassCheck, and reports the decoded
// output back to the generator.
func runEvaluator(conn *p2p.Conn, cfg *env.Config, y byte, verbose bool) error {
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
	genInpCnt, evlInpCnt, evlOutCnt := gateCounts(gates)

	evlBits := []byte{y}
	if len(evlBits) != evlInpCnt {
		return fmt.Errorf("cutandchoose: circuit wants %d evaluator inputs, got %d",
			evlInpCnt, len(evlBits))
	}

	kdfKey, err := conn.ReceiveData()
	if err != nil {
		return err
	}
	maskedGenInp, err := conn.ReceiveData()
	if err != nil {
		return err
	}
	timing.Sample("Setup", nil)

	nBytes, err := conn.ReceiveData()
	if err != nil {
		return err
	}
	e, err := conn.ReceiveUint32()
	if err != nil {
		return err
	}
	pub := &rsa.PublicKey{N: new(big.Int).SetBytes(nBytes), E: e}
	receiver, err := ot.NewReceiver(pub)
	if err != nil {
		return fmt.Errorf("cutandchoose: new OT receiver: %w", err)
	}
	timing.Sample("OT init", nil)

	evalOtKeys := make([][]byte, evlInpCnt)
	for j := 0; j < evlInpCnt; j++ {
		xfer, err := receiver.NewTransfer(int(evlBits[j]))
		if err != nil {
			return fmt.Errorf("cutandchoose: OT transfer %d: %w", j, err)
		}

		x0, err := conn.ReceiveData()
		if err != nil {
			return err
		}
		x1, err := conn.ReceiveData()
		if err != nil {
			return err
		}
		if err := xfer.ReceiveRandomMessages(x0, x1); err != nil {
			return err
		}

		if err := conn.SendData(xfer.V()); err != nil {
			return err
		}
		if err := conn.Flush(); err != nil {
			return err
		}

		m0p, err := conn.ReceiveData()
		if err != nil {
			return err
		}
		m1p, err := conn.ReceiveData()
		if err != nil {
			return err
		}
		if err := xfer.ReceiveMessages(m0p, m1p, nil); err != nil {
			return fmt.Errorf("cutandchoose: OT messages %d: %w", j, err)
		}
		key, _ := xfer.Message()
		evalOtKeys[j] = key
	}
	timing.Sample("OT", nil)

	ev, err := yao.NewEvaluator(cfg, kdfKey, evalOtKeys, maskedGenInp,
		packBits(evlBits), demoNumWires, genInpCnt, evlOutCnt, 0)
	if err != nil {
		return fmt.Errorf("cutandchoose: new evaluator: %w", err)
	}

	digest := yao.NewDigest()
	genInpSeen := 0
	for i := range gates {
		gate := gates[i]

		data, err := conn.ReceiveData()
		if err != nil {
			return err
		}
		digest.Update(data)
		cursor := yao.NewInputCursor(data)

		if gate.Tag == yao.GateGenInput {
			decom, err := conn.ReceiveData()
			if err != nil {
				return err
			}
			digest.Update(decom)
			ev.SetGenInputDecommitment(genInpSeen, decom)
			genInpSeen++
		}

		if err := ev.NextGate(&gate, cursor); err != nil {
			return fmt.Errorf("cutandchoose: evaluate gate %d: %w", i, err)
		}
		if cursor.Remaining() != 0 {
			return fmt.Errorf("cutandchoose: gate %d left %d unconsumed bytes",
				i, cursor.Remaining())
		}
	}

	theirDigest, err := conn.ReceiveData()
	if err != nil {
		return err
	}
	timing.Sample("Eval", nil)

	digestOK := bytes.Equal(digest.Finalize(), theirDigest)
	passCheck := ev.PassCheck()

	result := bitAt(ev.EvlOut, 0)
	if err := conn.SendByte(result); err != nil {
		return err
	}
	if err := conn.Flush(); err != nil {
		return err
	}
	timing.Sample("Result", nil)

	fmt.Printf("Maj(x, %d, z) = %d\n", y, result)
	fmt.Printf("digest match: %v, decommitments verified: %v\n", digestOK, passCheck)
	if !digestOK {
		return fmt.Errorf("cutandchoose: garbled circuit digest mismatch")
	}
	if !passCheck {
		return yao.ErrCommitMismatch
	}
	if verbose {
		timing.Print(conn.Stats)
	}
	return nil
}
