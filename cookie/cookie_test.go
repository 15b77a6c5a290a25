// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package cookie_test

import (
	"net/netip"
	"sync"
	"testing"
	"time"

	"github.com/hrissan/hshash/ciphersuite"
	"github.com/hrissan/hshash/cookie"
	"github.com/hrissan/hshash/handshake"
	"github.com/hrissan/hshash/hserrors"
	"github.com/hrissan/hshash/hsrand"
	"github.com/hrissan/hshash/record"
	"github.com/hrissan/hshash/transcript"
)

func TestRoundTrip(t *testing.T) {
	state := cookie.NewCookieState(hsrand.CryptoRand())
	params := cookie.Params{
		TranscriptHash:    ciphersuite.SHA384.Sum([]byte("test")),
		TimestampUnixNano: time.Now().UnixNano(),
		KeyShareSet:       true,
		CipherSuite:       ciphersuite.TLS_AES_256_GCM_SHA384,
	}
	addr, err := netip.ParseAddrPort("1.2.3.4:5")
	if err != nil {
		t.FailNow()
	}
	ck := state.CreateCookie(params, addr)

	now := time.Unix(0, params.TimestampUnixNano).Add(time.Second)
	params2, err := state.IsCookieValid(addr, ck, now, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if params2.TranscriptHash != params.TranscriptHash || !params2.KeyShareSet || params2.CipherSuite != params.CipherSuite {
		t.Errorf("params differ after round trip %+v", params2)
	}
	if params2.Age != time.Second {
		t.Errorf("unexpected age %v", params2.Age)
	}

	if _, err := state.IsCookieValid(addr, ck, now, time.Second); err != hserrors.ErrClientHelloCookieAge {
		t.Errorf("expected expired cookie, got %v", err)
	}
	otherAddr := netip.MustParseAddrPort("1.2.3.4:6")
	if _, err := state.IsCookieValid(otherAddr, ck, now, time.Minute); err != hserrors.ErrClientHelloCookieInvalid {
		t.Errorf("expected invalid cookie for other address, got %v", err)
	}
	var tampered cookie.Cookie
	data := append([]byte(nil), ck.GetValue()...)
	data[len(data)-40] ^= 1 // inside transcript hash
	if err := tampered.SetValue(data); err != nil {
		t.Fatal(err)
	}
	if _, err := state.IsCookieValid(addr, tampered, now, time.Minute); err != hserrors.ErrClientHelloCookieInvalid {
		t.Errorf("expected invalid tampered cookie, got %v", err)
	}
}

// Stateless server must arrive at the same transcript as the one keeping state.
func TestStatelessRetryTranscript(t *testing.T) {
	clientHello1 := handshake.Message{MsgType: handshake.MsgTypeClientHello, MsgSeq: 0, Body: []byte("client hello 1")}
	helloRetryRequest := handshake.Message{MsgType: handshake.MsgTypeServerHello, MsgSeq: 0, Body: []byte("hello retry request")}
	clientHello2 := handshake.Message{MsgType: handshake.MsgTypeClientHello, MsgSeq: 1, Body: []byte("client hello 2")}
	suite := ciphersuite.GetSuite(ciphersuite.TLS_AES_256_GCM_SHA384)

	stateful := transcript.NewBuffer().StartHash(suite.HashAlgorithm())
	stateful.AddMessage(record.HandshakeMessage(clientHello1))
	stateful.RollupForHRR()
	stateful.AddMessage(record.HandshakeMessage(helloRetryRequest))
	stateful.AddMessage(record.HandshakeMessage(clientHello2))

	state := cookie.NewCookieState(hsrand.Seeded([]byte("stateless")))
	addr := netip.MustParseAddrPort("[::1]:443")
	first := transcript.NewBuffer()
	first.AddMessage(record.HandshakeMessage(clientHello1))
	now := time.Now()
	ck := state.CreateCookie(cookie.Params{
		TranscriptHash:    first.HashGiven(suite.HashAlgorithm(), nil),
		TimestampUnixNano: now.UnixNano(),
		CipherSuite:       suite.ID(),
	}, addr)

	params, err := state.IsCookieValid(addr, ck, now, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	stateless := transcript.NewRetryBuffer(params.TranscriptHash)
	stateless.AddMessage(record.HandshakeMessage(helloRetryRequest))
	stateless.AddMessage(record.HandshakeMessage(clientHello2))
	restored := stateless.StartHash(ciphersuite.GetSuite(params.CipherSuite).HashAlgorithm())

	if restored.CurrentHash() != stateful.CurrentHash() {
		t.Errorf("stateless transcript differs from stateful one")
	}
}

func TestRejectsMalformed(t *testing.T) {
	state := cookie.NewCookieState(hsrand.Seeded([]byte("malformed")))
	addr := netip.MustParseAddrPort("10.0.0.1:443")
	now := time.Now()
	ck := state.CreateCookie(cookie.Params{
		TranscriptHash:    ciphersuite.SHA256.Sum([]byte("ch1")),
		TimestampUnixNano: now.UnixNano(),
		CipherSuite:       ciphersuite.TLS_AES_128_GCM_SHA256,
	}, addr)
	data := ck.GetValue()

	for name, value := range map[string][]byte{
		"empty":     nil,
		"truncated": data[:len(data)-1],
		"extended":  append(append([]byte(nil), data...), 0),
		"flags":     withByte(data, 16+8, 0x80),
		"hash_len":  withByte(data, 16+8+1+2, 0xFF),
	} {
		var bad cookie.Cookie
		if err := bad.SetValue(value); err != nil {
			t.Fatal(err)
		}
		if _, err := state.IsCookieValid(addr, bad, now, time.Minute); err != hserrors.ErrClientHelloCookieInvalid {
			t.Errorf("%s: expected invalid cookie, got %v", name, err)
		}
	}
	if _, err := state.IsCookieValid(addr, ck, now.Add(-time.Second), time.Minute); err != hserrors.ErrClientHelloCookieAge {
		t.Errorf("expected cookie from the future to be rejected, got %v", err)
	}
	mapped := netip.AddrPortFrom(netip.AddrFrom16(addr.Addr().As16()), addr.Port())
	if _, err := state.IsCookieValid(mapped, ck, now, time.Minute); err != nil {
		t.Errorf("IPv4-mapped address must be accepted, got %v", err)
	}
	var tooLong cookie.Cookie
	if err := tooLong.SetValue(make([]byte, cookie.MaxCookieSize+1)); err != cookie.ErrCookieDataTooLong {
		t.Errorf("expected too long error, got %v", err)
	}
}

func withByte(data []byte, pos int, value byte) []byte {
	result := append([]byte(nil), data...)
	result[pos] = value
	return result
}

func TestSetRandRotatesSecret(t *testing.T) {
	state := cookie.NewCookieState(hsrand.Seeded([]byte("first")))
	addr := netip.MustParseAddrPort("[::1]:443")
	now := time.Now()
	params := cookie.Params{TranscriptHash: ciphersuite.SHA256.Sum(nil), TimestampUnixNano: now.UnixNano()}
	ck := state.CreateCookie(params, addr)
	state.SetRand(hsrand.Seeded([]byte("second")))
	if _, err := state.IsCookieValid(addr, ck, now, time.Minute); err != hserrors.ErrClientHelloCookieInvalid {
		t.Errorf("cookie must not survive secret rotation, got %v", err)
	}
}

// Run with -race, SetRand replaces rand used by CreateCookie.
func TestConcurrentSetRand(t *testing.T) {
	state := cookie.NewCookieState(hsrand.CryptoRand())
	addr := netip.MustParseAddrPort("1.2.3.4:5")
	params := cookie.Params{TranscriptHash: ciphersuite.SHA256.Sum(nil), TimestampUnixNano: time.Now().UnixNano()}
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				ck := state.CreateCookie(params, addr)
				_, _ = state.IsCookieValid(addr, ck, time.Now(), time.Minute)
			}
		}()
		go func(seed byte) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				state.SetRand(hsrand.Seeded([]byte{seed, byte(j)}))
			}
		}(byte(i))
	}
	wg.Wait()
	ck := state.CreateCookie(params, addr)
	if _, err := state.IsCookieValid(addr, ck, time.Now(), time.Minute); err != nil {
		t.Errorf("cookie created after rotations must be valid, got %v", err)
	}
}
