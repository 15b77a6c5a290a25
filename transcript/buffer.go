// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package transcript

import (
	"github.com/hrissan/hshash/ciphersuite"
	"github.com/hrissan/hshash/handshake"
	"github.com/hrissan/hshash/record"
)

// Buffer collects transcript before we know hash algorithm.
type Buffer struct {
	buffer            []byte
	clientAuthEnabled bool
	consumed          bool
}

func NewBuffer() *Buffer {
	return &Buffer{}
}

// NewRetryBuffer starts transcript with message_hash containing Hash(ClientHello1).
// Used by stateless servers, which keep this hash in a cookie between
// ClientHello1 and ClientHello2 [rfc9147:5.1], and by Hash.IntoHRRBuffer.
func NewRetryBuffer(clientHello1Hash ciphersuite.Hash) *Buffer {
	return &Buffer{buffer: handshake.AppendMessageHashEncoding(nil, clientHello1Hash.GetValue())}
}

func (b *Buffer) mustNotBeConsumed() {
	if b.consumed {
		panic("transcript buffer already consumed")
	}
}

// We might be doing client auth, so need to keep a full log of the handshake.
func (b *Buffer) SetClientAuthEnabled() {
	b.mustNotBeConsumed()
	b.clientAuthEnabled = true
}

func (b *Buffer) ClientAuthEnabled() bool {
	b.mustNotBeConsumed()
	return b.clientAuthEnabled
}

// Non-handshake messages are not part of transcript and ignored.
func (b *Buffer) AddMessage(m record.Message) {
	b.mustNotBeConsumed()
	if !m.IsHandshake() {
		return
	}
	b.AddHandshakeMessage(m.Handshake)
}

func (b *Buffer) AddHandshakeMessage(msg handshake.Message) {
	b.mustNotBeConsumed()
	b.buffer = msg.AppendEncoding(b.buffer)
}

func (b *Buffer) AddRaw(data []byte) {
	b.mustNotBeConsumed()
	b.buffer = append(b.buffer, data...)
}

func (b *Buffer) Len() int {
	b.mustNotBeConsumed()
	return len(b.buffer)
}

// HashGiven returns hash we would get if we were to add extra too,
// using alg. Used for PSK binders before ciphersuite is selected.
func (b *Buffer) HashGiven(alg *ciphersuite.HashAlgorithm, extra []byte) ciphersuite.Hash {
	b.mustNotBeConsumed()
	return alg.Sum(b.buffer, extra)
}

// StartHash is called when we know what hash function the transcript will use.
// Buffer must not be used afterwards.
func (b *Buffer) StartHash(alg *ciphersuite.HashAlgorithm) *Hash {
	b.mustNotBeConsumed()
	h := &Hash{
		ctx:               ciphersuite.NewContext(alg),
		clientAuthEnabled: b.clientAuthEnabled,
	}
	h.ctx.Write(b.buffer)
	if b.clientAuthEnabled {
		h.buffer = b.buffer
	} // otherwise drop buffer now, most handshakes have no client auth
	*b = Buffer{consumed: true}
	return h
}
