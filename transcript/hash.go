// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package transcript

import (
	"encoding/binary"

	"github.com/hrissan/hshash/ciphersuite"
	"github.com/hrissan/hshash/handshake"
	"github.com/hrissan/hshash/record"
)

// Hash keeps running hash of handshake messages with fixed algorithm.
// While client auth is enabled, also keeps all messages, so
// buffer is always equal to input written since retention started.
type Hash struct {
	ctx               ciphersuite.Context
	clientAuthEnabled bool
	buffer            []byte
	consumed          bool
}

func (h *Hash) mustNotBeConsumed() {
	if h.consumed {
		panic("transcript hash already consumed")
	}
}

// We decided not to do client auth after all, so discard the transcript.
// Cannot be enabled again.
func (h *Hash) AbandonClientAuth() {
	h.mustNotBeConsumed()
	h.clientAuthEnabled = false
	h.buffer = nil
}

func (h *Hash) ClientAuthEnabled() bool {
	h.mustNotBeConsumed()
	return h.clientAuthEnabled
}

// Non-handshake messages are not part of transcript and ignored.
func (h *Hash) AddMessage(m record.Message) *Hash {
	h.mustNotBeConsumed()
	if !m.IsHandshake() {
		return h
	}
	return h.AddHandshakeMessage(m.Handshake)
}

// No allocations, header and body are written separately.
func (h *Hash) AddHandshakeMessage(msg handshake.Message) *Hash {
	var hdr [handshake.MessageHeaderSize]byte
	binary.BigEndian.PutUint32(hdr[:], uint32(msg.MsgType)<<24|msg.Len32())
	h.AddRaw(hdr[:])
	return h.AddRaw(msg.Body)
}

// AddRaw is the only place where ctx and buffer are updated.
func (h *Hash) AddRaw(data []byte) *Hash {
	h.mustNotBeConsumed()
	h.ctx.Write(data)
	if h.clientAuthEnabled {
		h.buffer = append(h.buffer, data...)
	}
	return h
}

// HashGiven returns hash we would get if we were to add extra too.
// Transcript is not affected, so we can compute several values
// (Finished, exporter secrets, etc.) from the same point.
func (h *Hash) HashGiven(extra []byte) ciphersuite.Hash {
	h.mustNotBeConsumed()
	return h.ctx.SumGiven(extra)
}

func (h *Hash) CurrentHash() ciphersuite.Hash {
	h.mustNotBeConsumed()
	return h.ctx.Sum()
}

func (h *Hash) Algorithm() *ciphersuite.HashAlgorithm {
	h.mustNotBeConsumed()
	return h.ctx.Algorithm()
}

// RollupForHRR takes the current hash value, and encapsulates it in
// message_hash handshake message, then starts hash again with that message
// at the front [rfc8446:4.4.1]. Retained buffer continues as usual.
func (h *Hash) RollupForHRR() {
	h.mustNotBeConsumed()
	alg := h.ctx.Algorithm()
	oldHash := h.ctx.Finish()
	h.ctx = ciphersuite.NewContext(alg)
	h.AddHandshakeMessage(handshake.MessageHash(oldHash.GetValue()))
}

// IntoHRRBuffer is RollupForHRR for the case when HelloRetryRequest selects
// different ciphersuite. Retained buffer is not carried over, new Buffer starts
// with message_hash only. Hash must not be used afterwards.
func (h *Hash) IntoHRRBuffer() *Buffer {
	h.mustNotBeConsumed()
	b := NewRetryBuffer(h.ctx.Finish())
	b.clientAuthEnabled = h.clientAuthEnabled
	*h = Hash{consumed: true}
	return b
}

// TakeHandshakeBuf takes all handshake messages retained so far.
// Works once, resets the buffer to empty.
// Caller must check ClientAuthEnabled first.
func (h *Hash) TakeHandshakeBuf() []byte {
	h.mustNotBeConsumed()
	if !h.clientAuthEnabled {
		panic("handshake buffer taken with client auth disabled")
	}
	buf := h.buffer
	h.buffer = nil
	return buf
}
