//
// main.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"flag"
	"fmt"
	"log"
	"net"

	"github.com/markkurossi/mpc/env"
	"github.com/markkurossi/mpc/p2p"
)

func main() {
	generator := flag.Bool("g", false, "generator mode (default: evaluator mode)")
	addr := flag.String("addr", ":8181", "generator: address to listen on; evaluator: address to dial")
	x := flag.Uint("x", 0, "generator input x (0 or 1)")
	z := flag.Uint("z", 0, "generator input z (0 or 1)")
	y := flag.Uint("y", 0, "evaluator input y (0 or 1)")
	k := flag.Int("k", env.DefaultK, "security parameter in bits")
	freeXOR := flag.Bool("free-xor", true, "enable the free-XOR optimization")
	grr := flag.Bool("grr", true, "enable garbled row reduction")
	randSeed := flag.Bool("rand-seed", false, "RandSeed config flag sent to the peer (not used by this demo's digest)")
	verbose := flag.Bool("v", false, "verbose output")
	flag.Parse()

	cfg := &env.Config{
		K:        *k,
		FreeXOR:  *freeXOR,
		GRR:      *grr,
		RandSeed: *randSeed,
	}

	var err error
	if *generator {
		err = runGeneratorMode(cfg, *addr, byte(*x&1), byte(*z&1), *verbose)
	} else {
		err = runEvaluatorMode(cfg, *addr, byte(*y&1), *verbose)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func runGeneratorMode(cfg *env.Config, addr string, x, z byte, verbose bool) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	defer ln.Close()

	fmt.Printf("generator: listening on %s\n", addr)
	nc, err := ln.Accept()
	if err != nil {
		return err
	}
	defer nc.Close()
	fmt.Printf("generator: connection from %s\n", nc.RemoteAddr())

	conn := p2p.NewConn(nc)
	defer conn.Close()

	return runGenerator(conn, cfg, x, z, verbose)
}

func runEvaluatorMode(cfg *env.Config, addr string, y byte, verbose bool) error {
	nc, err := net.Dial("tcp", addr)
	if err != nil {
		return err
	}
	defer nc.Close()

	conn := p2p.NewConn(nc)
	defer conn.Close()

	return runEvaluator(conn, cfg, y, verbose)
}
