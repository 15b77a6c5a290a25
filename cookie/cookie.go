// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"hash"
	"net/netip"
	"sync"
	"time"

	"github.com/hrissan/hshash/ciphersuite"
	"github.com/hrissan/hshash/format"
	"github.com/hrissan/hshash/hserrors"
	"github.com/hrissan/hshash/hsrand"
	"github.com/hrissan/hshash/safecast"
)

// Server answering ClientHello1 with HelloRetryRequest may forget the transcript,
// if Hash(ClientHello1) travels to the client and back in the cookie extension.
// Cookie layout:
//   salt[16] timestamp[8] flags[1] suite[2] hash_len[1] hash[hash_len] mac[32]
// mac is HMAC-SHA256 over everything before it plus peer address.

const macLength = sha256.Size
const saltLength = 16
const secretLength = 32

const flagKeyShareSet = 1

const MaxCookieSize = 256

var ErrCookieDataTooLong = errors.New("cookie data is too long")

type Cookie struct {
	data [MaxCookieSize]byte
	size int
}

func (c *Cookie) GetValue() []byte {
	return c.data[:c.size]
}

// SetValue clears tail, so cookies compare with ==.
func (c *Cookie) SetValue(data []byte) error {
	if len(data) > len(c.data) {
		return ErrCookieDataTooLong
	}
	*c = Cookie{size: len(data)}
	copy(c.data[:], data)
	return nil
}

// Params are what server needs to continue handshake after ClientHello2.
type Params struct {
	TranscriptHash    ciphersuite.Hash // Hash(ClientHello1) with suite hash
	TimestampUnixNano int64
	KeyShareSet       bool // HRR asked for another key_share, must be reproduced exactly
	CipherSuite       ciphersuite.ID
	Age               time.Duration // filled by IsCookieValid
}

func (p *Params) appendTo(data []byte) []byte {
	data = binary.BigEndian.AppendUint64(data, uint64(p.TimestampUnixNano)) // type conversion
	var flags byte
	if p.KeyShareSet {
		flags |= flagKeyShareSet
	}
	data = append(data, flags)
	data = binary.BigEndian.AppendUint16(data, uint16(p.CipherSuite))
	data = append(data, safecast.Cast[byte](p.TranscriptHash.Len()))
	return append(data, p.TranscriptHash.GetValue()...)
}

func (p *Params) parse(data []byte, offset int) (_ int, err error) {
	var timestamp uint64
	if offset, timestamp, err = format.ParserReadUint64(data, offset); err != nil {
		return offset, err
	}
	p.TimestampUnixNano = int64(timestamp) // type conversion
	var flags byte
	if offset, flags, err = format.ParserReadByte(data, offset); err != nil {
		return offset, err
	}
	if flags&^flagKeyShareSet != 0 {
		return offset, hserrors.ErrClientHelloCookieInvalid
	}
	p.KeyShareSet = flags&flagKeyShareSet != 0
	var suite uint16
	if offset, suite, err = format.ParserReadUint16(data, offset); err != nil {
		return offset, err
	}
	p.CipherSuite = ciphersuite.ID(suite)
	var hashLen byte
	if offset, hashLen, err = format.ParserReadByte(data, offset); err != nil {
		return offset, err
	}
	if int(hashLen) > p.TranscriptHash.Cap() {
		return offset, hserrors.ErrClientHelloCookieInvalid
	}
	p.TranscriptHash.SetZero(int(hashLen))
	return format.ParserReadFixedBytes(data, offset, p.TranscriptHash.GetValue())
}

// Age must be less than validFor, timestamps from the future are rejected.
func (p *Params) checkAge(now time.Time, validFor time.Duration) error {
	nowUnixNano := now.UnixNano()
	if p.TimestampUnixNano > nowUnixNano {
		return hserrors.ErrClientHelloCookieAge
	}
	p.Age = time.Duration(nowUnixNano - p.TimestampUnixNano)
	if p.Age >= validFor {
		return hserrors.ErrClientHelloCookieAge
	}
	return nil
}

// CookieState is safe for concurrent use.
type CookieState struct {
	mu  sync.Mutex // protects fields below
	mac hash.Hash  // keyed with secret, reused between cookies
	rnd hsrand.Rand
}

func NewCookieState(rnd hsrand.Rand) *CookieState {
	c := &CookieState{}
	c.SetRand(rnd)
	return c
}

// SetRand also rotates secret, so all cookies issued before become invalid.
func (c *CookieState) SetRand(rnd hsrand.Rand) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var secret [secretLength]byte
	rnd.ReadMust(secret[:])
	c.rnd = rnd
	c.mac = hmac.New(sha256.New, secret[:])
}

func (c *CookieState) CreateCookie(params Params, addr netip.AddrPort) Cookie {
	data := make([]byte, 0, MaxCookieSize)
	data = data[:saltLength]

	c.mu.Lock()
	defer c.mu.Unlock()
	c.rnd.ReadMust(data[:saltLength])
	data = params.appendTo(data)
	data = c.appendMACLocked(data, data, addr)

	var cookie Cookie
	if err := cookie.SetValue(data); err != nil {
		panic(err) // hash length is limited by ciphersuite.MaxHashLength
	}
	return cookie
}

// IsCookieValid returns zero Params on any error, so they cannot be used by mistake.
func (c *CookieState) IsCookieValid(addr netip.AddrPort, cookie Cookie, now time.Time, validFor time.Duration) (Params, error) {
	data := cookie.GetValue()
	if len(data) < saltLength+macLength {
		return Params{}, hserrors.ErrClientHelloCookieInvalid
	}
	signed, mac := data[:len(data)-macLength], data[len(data)-macLength:]
	var params Params
	offset, err := params.parse(signed, saltLength)
	if err != nil || format.ParserReadFinish(signed, offset) != nil {
		return Params{}, hserrors.ErrClientHelloCookieInvalid
	}
	var expected [macLength]byte
	c.mu.Lock()
	c.appendMACLocked(expected[:0], signed, addr)
	c.mu.Unlock()
	if !hmac.Equal(expected[:], mac) {
		return Params{}, hserrors.ErrClientHelloCookieInvalid
	}
	if err := params.checkAge(now, validFor); err != nil {
		return Params{}, err
	}
	return params, nil
}

// IPv4 address and the same address mapped to IPv6 produce the same mac.
func (c *CookieState) appendMACLocked(dst []byte, signed []byte, addr netip.AddrPort) []byte {
	ip := addr.Addr().As16()
	var port [2]byte
	binary.BigEndian.PutUint16(port[:], addr.Port())
	c.mac.Reset()
	_, _ = c.mac.Write(signed)
	_, _ = c.mac.Write(ip[:])
	_, _ = c.mac.Write(port[:])
	return c.mac.Sum(dst)
}
