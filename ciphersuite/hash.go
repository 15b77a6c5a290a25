// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package ciphersuite

import (
	"encoding/hex"
	"hash"
)

// Largest digest among registered algorithms (SHA-512)
const MaxHashLength = 64

// Hash is digest value in fixed-size storage, so transcript snapshots
// do not allocate. Objects are equal by built-in operator.
type Hash struct {
	data [MaxHashLength]byte
	size byte
}

func NewHash(data []byte) (h Hash) {
	h.SetValue(data)
	return
}

func (h *Hash) GetValue() []byte {
	return h.data[0:h.size]
}

func (h *Hash) Len() int {
	return int(h.size) // widening
}

func (h *Hash) Cap() int {
	return len(h.data)
}

func (h Hash) String() string {
	return hex.EncodeToString(h.GetValue())
}

// SetSum does not change hasher state.
func (h *Hash) SetSum(hasher hash.Hash) {
	*h = Hash{}
	sum := hasher.Sum(h.data[:0])
	if len(sum) > len(h.data) {
		panic("hasher length exceeds hash storage size")
	}
	h.size = byte(len(sum)) // safe due to check above
}

func (h *Hash) SetZero(size int) {
	if size > len(h.data) {
		panic("zero hash length exceeds hash storage size")
	}
	*h = Hash{size: byte(size)} // safe due to check above
}

func (h *Hash) SetValue(data []byte) {
	h.SetZero(len(data))
	copy(h.data[:], data)
}
