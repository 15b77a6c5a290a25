// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package ciphersuite

import (
	"hash"
)

// Recreate the interface to avoid importing encoding.
type binaryMarshaler interface {
	MarshalBinary() (data []byte, err error)
	UnmarshalBinary(data []byte) error
}

// Context is an incremental digest with a fixed algorithm.
//
// Clone copies internal hasher state with MarshalBinary/UnmarshalBinary, which costs
// one small allocation for the state plus a fresh hasher. All standard and x/crypto
// hashers we register support this. For hashers which do not, we keep every byte
// written and replay it into a fresh hasher on Clone, which makes memory and
// Clone time proportional to transcript length.
type Context struct {
	alg    *HashAlgorithm
	hasher hash.Hash // nil after Finish

	replayMode bool
	replay     []byte
}

func NewContext(alg *HashAlgorithm) Context {
	hasher := alg.New()
	_, ok := hasher.(binaryMarshaler)
	return Context{alg: alg, hasher: hasher, replayMode: !ok}
}

func (c *Context) mustBeLive() {
	if c.hasher == nil {
		panic("digest context used after Finish")
	}
}

func (c *Context) Algorithm() *HashAlgorithm {
	return c.alg
}

func (c *Context) Write(data []byte) {
	c.mustBeLive()
	_, _ = c.hasher.Write(data)
	if c.replayMode {
		c.replay = append(c.replay, data...)
	}
}

// Sum does not change state, so we can continue writing.
func (c *Context) Sum() (result Hash) {
	c.mustBeLive()
	result.SetSum(c.hasher)
	return
}

// Clone returns context with independent state.
func (c *Context) Clone() Context {
	c.mustBeLive()
	if c.replayMode {
		clone := Context{alg: c.alg, hasher: c.alg.New(), replayMode: true}
		clone.Write(c.replay)
		return clone
	}
	return Context{alg: c.alg, hasher: c.cloneHasher()}
}

func (c *Context) cloneHasher() hash.Hash {
	state, err := c.hasher.(binaryMarshaler).MarshalBinary()
	if err != nil {
		panic("digest state marshal failed: " + err.Error())
	}
	out := c.alg.New()
	if err := out.(binaryMarshaler).UnmarshalBinary(state); err != nil {
		panic("digest state unmarshal failed: " + err.Error())
	}
	return out
}

// SumGiven returns digest as if extra was written, without changing state.
func (c *Context) SumGiven(extra []byte) (result Hash) {
	c.mustBeLive()
	if len(extra) == 0 {
		result.SetSum(c.hasher)
		return
	}
	var hasher hash.Hash
	if c.replayMode {
		hasher = c.alg.New()
		_, _ = hasher.Write(c.replay)
	} else {
		hasher = c.cloneHasher()
	}
	_, _ = hasher.Write(extra)
	result.SetSum(hasher)
	return
}

// Finish returns final digest, context must not be used afterwards.
func (c *Context) Finish() (result Hash) {
	c.mustBeLive()
	result.SetSum(c.hasher)
	c.hasher = nil
	c.replay = nil
	return
}
