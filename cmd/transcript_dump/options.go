// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package main

import (
	"flag"
	"net/netip"
	"time"

	"github.com/hrissan/hshash/ciphersuite"
)

type Options struct {
	Input string // "-" for stdin

	// Start with client auth retention, same as "retain" first line in script
	ClientAuth bool

	// Used by "peek" before hash algorithm is selected, as for PSK binders
	PreviewHash *ciphersuite.HashAlgorithm

	// "cookie" and "accept" sign and check HRR cookie for this peer
	PeerAddr    netip.AddrPort
	CookieValid time.Duration
	// Empty for crypto rand, otherwise cookies are reproducible
	RandSeed string

	// Stop on warnings too
	Strict  bool
	Verbose bool
}

func DefaultOptions() Options {
	return Options{
		Input:       "-",
		PreviewHash: ciphersuite.SHA256,
		PeerAddr:    netip.AddrPortFrom(netip.IPv6Loopback(), 4433),
		CookieValid: 120 * time.Second,
	}
}

// ParseFlags fills opts from command line, starting from DefaultOptions.
func ParseFlags(fs *flag.FlagSet, args []string) (Options, error) {
	opts := DefaultOptions()
	previewHash := opts.PreviewHash.Name()
	fs.StringVar(&opts.Input, "input", opts.Input, "script file, - for stdin")
	fs.BoolVar(&opts.ClientAuth, "client-auth", opts.ClientAuth, "retain handshake messages for client auth")
	fs.StringVar(&previewHash, "preview-hash", previewHash, "hash algorithm for peek before suite is selected")
	peerAddr := opts.PeerAddr.String()
	fs.StringVar(&peerAddr, "peer", peerAddr, "peer address cookies are bound to")
	fs.DurationVar(&opts.CookieValid, "cookie-valid", opts.CookieValid, "HRR cookie lifetime")
	fs.StringVar(&opts.RandSeed, "rand-seed", opts.RandSeed, "seed for reproducible cookies, empty for crypto rand")
	fs.BoolVar(&opts.Strict, "strict", opts.Strict, "stop on warnings")
	fs.BoolVar(&opts.Verbose, "verbose", opts.Verbose, "log every script command")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	alg, err := ciphersuite.HashAlgorithmByName(previewHash)
	if err != nil {
		return opts, err
	}
	opts.PreviewHash = alg
	if opts.PeerAddr, err = netip.ParseAddrPort(peerAddr); err != nil {
		return opts, err
	}
	return opts, nil
}
