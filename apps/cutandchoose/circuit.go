//
// circuit.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import "github.com/markkurossi/mpc/circuit/yao"

// demoCircuit computes Maj(x, y, z) = (x&y) ^ (y&z) ^ (x&z) with x and
// z as generator inputs and y as the evaluator input, the same
// three-input majority function circuit/yao's own tests use to
// exercise a mixed GEN_INP/EVL_INP/XOR/AND gate sequence.
//
//	wire0 = x        (GEN_INP)
//	wire1 = y        (EVL_INP)
//	wire2 = z        (GEN_INP)
//	wire3 = x XOR y
//	wire4 = x XOR z
//	wire5 = wire3 AND wire4
//	wire6 = x XOR wire5 = Maj(x, y, z)   (EVL_OUT)
func demoCircuit() []yao.Gate {
	return []yao.Gate{
		{Tag: yao.GateGenInput, Wire: 0},
		{Tag: yao.GateEvalInput, Wire: 1},
		{Tag: yao.GateGenInput, Wire: 2},
		{Tag: yao.GateInternal, Wire: 3, In0: 0, In1: 1, Table: []byte{0, 1, 1, 0}},
		{Tag: yao.GateInternal, Wire: 4, In0: 0, In1: 2, Table: []byte{0, 1, 1, 0}},
		{Tag: yao.GateInternal, Wire: 5, In0: 3, In1: 4, Table: []byte{0, 0, 0, 1}},
		{Tag: yao.GateInternal, Wire: 6, In0: 0, In1: 5, Table: []byte{0, 1, 1, 0},
			Output: yao.OutputEval},
	}
}

const demoNumWires = 7

// gateCounts returns the generator-input, evaluator-input, and
// evaluator-output wire counts the shared demo circuit declares, so
// both roles can size their buffers without parsing a wire format.
func gateCounts(gates []yao.Gate) (genInpCnt, evlInpCnt, evlOutCnt int) {
	for _, g := range gates {
		switch g.Tag {
		case yao.GateGenInput:
			genInpCnt++
		case yao.GateEvalInput:
			evlInpCnt++
		}
		if g.Output == yao.OutputEval {
			evlOutCnt++
		}
	}
	return
}

func packBits(vals []byte) []byte {
	out := make([]byte, (len(vals)+7)/8)
	for i, v := range vals {
		if v != 0 {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	return out
}

func bitAt(bs []byte, i int) byte {
	return (bs[i/8] >> uint(i%8)) & 1
}
