// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package transcript keeps running hash of handshake messages [rfc8446:4.4.1].
//
// Hash algorithm is known only after ServerHello selects ciphersuite, so we start
// with Buffer collecting raw message encodings, then convert it into Hash with
// StartHash. Hash is fed incrementally from then on.
//
// For client auth, we also need to keep all the messages, so both Buffer and Hash
// can retain raw transcript. Retention is dropped as soon as we learn client auth
// will not happen.
//
// When server sends HelloRetryRequest, transcript is restarted with synthetic
// message_hash message containing hash of everything before. If ciphersuite stays
// the same, use RollupForHRR, otherwise IntoHRRBuffer and StartHash again with the
// new algorithm.
//
// Buffer and Hash belong to single handshake and must not be used concurrently.
// Both are consumed by conversion, and panic if used afterwards.
package transcript
