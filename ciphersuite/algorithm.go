// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package ciphersuite

import (
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

var ErrUnknownHashAlgorithm = errors.New("unknown hash algorithm")

// HashAlgorithm is immutable and compared by pointer, so only
// registered values below must be used.
type HashAlgorithm struct {
	name string
	size int
	new  func() hash.Hash
}

func (alg *HashAlgorithm) Name() string { return alg.name }
func (alg *HashAlgorithm) Size() int    { return alg.size }

// Allocates
func (alg *HashAlgorithm) New() hash.Hash { return alg.new() }

// Digest of data in one go, mostly for tests and previews.
func (alg *HashAlgorithm) Sum(data ...[]byte) (result Hash) {
	hasher := alg.new()
	for _, d := range data {
		_, _ = hasher.Write(d)
	}
	result.SetSum(hasher)
	return
}

func (alg *HashAlgorithm) String() string { return alg.name }

func newBLAKE2b256() hash.Hash {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic("blake2b.New256 without key must not fail: " + err.Error())
	}
	return h
}

var (
	SHA256     = &HashAlgorithm{name: "sha256", size: sha256.Size, new: sha256.New}
	SHA384     = &HashAlgorithm{name: "sha384", size: sha512.Size384, new: sha512.New384}
	SHA512     = &HashAlgorithm{name: "sha512", size: sha512.Size, new: sha512.New}
	BLAKE2b256 = &HashAlgorithm{name: "blake2b-256", size: blake2b.Size256, new: newBLAKE2b256}
	SHA3_256   = &HashAlgorithm{name: "sha3-256", size: 32, new: sha3.New256}
)

var hashAlgorithms = [...]*HashAlgorithm{SHA256, SHA384, SHA512, BLAKE2b256, SHA3_256}

func HashAlgorithms() []*HashAlgorithm {
	return hashAlgorithms[:]
}

func HashAlgorithmByName(name string) (*HashAlgorithm, error) {
	for _, alg := range hashAlgorithms {
		if alg.name == name {
			return alg, nil
		}
	}
	return nil, ErrUnknownHashAlgorithm
}
