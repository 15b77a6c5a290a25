// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package hsrand

import (
	"crypto/rand"

	"golang.org/x/crypto/sha3"
)

// Cookie secrets and salts come from here, scripts and tests want them reproducible.

type Rand interface {
	ReadMust(data []byte)
}

type cryptoRand struct{}

func (cryptoRand) ReadMust(data []byte) {
	if _, err := rand.Read(data); err != nil {
		panic("failed to read crypto rand: " + err.Error())
	}
}

// SHAKE128 stream keyed by seed. Not safe for concurrent use.
type seededRand struct {
	stream sha3.ShakeHash
}

func (r *seededRand) ReadMust(data []byte) {
	_, _ = r.stream.Read(data) // never fails
}

func CryptoRand() Rand {
	return cryptoRand{}
}

// Seeded returns deterministic stream, same seed gives same bytes.
// Must never be used outside of tests and reproducible scripts.
func Seeded(seed []byte) Rand {
	stream := sha3.NewShake128()
	_, _ = stream.Write([]byte("hshash seeded rand"))
	_, _ = stream.Write(seed)
	return &seededRand{stream: stream}
}
