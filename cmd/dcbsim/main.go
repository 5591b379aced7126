// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ezrec/coredebug/emulator"
	"github.com/ezrec/coredebug/script"
)

func main() {
	var variant string
	var verbose bool

	flag.StringVar(&variant, "variant", "v7m", "Core variant (v7m, v6m)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: usage: %v [-v] [-variant v7m|v6m] scenario.star", os.Args[0], os.Args[0])
	}
	scenario := flag.Arg(0)

	v, err := emulator.ParseVariant(variant)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	inf, err := os.Open(scenario)
	if err != nil {
		log.Fatalf("%v: %v", scenario, err)
	}
	defer inf.Close()

	emu := emulator.NewEmulator(v)
	emu.Verbose = verbose

	runner := script.NewRunner(emu)
	defer runner.Close()

	_, err = runner.Run(scenario, inf)
	if err != nil {
		log.Fatal(err)
	}

	for name, value := range emu.Registers() {
		fmt.Printf("%-5s 0x%08x\n", name, value)
	}
}
