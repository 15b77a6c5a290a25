// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package main

import (
	"flag"
	"io"
	"log"
	"os"
)

func main() {
	opts, err := ParseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("transcript_dump: %v", err)
	}
	var in io.Reader = os.Stdin
	if opts.Input != "-" {
		f, err := os.Open(opts.Input)
		if err != nil {
			log.Fatalf("transcript_dump: %v", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}
	if err := NewScript(opts, os.Stdout).Run(in); err != nil {
		log.Fatalf("transcript_dump: %v", err)
	}
}
