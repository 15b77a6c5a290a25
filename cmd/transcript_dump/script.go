// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/hrissan/hshash/ciphersuite"
	"github.com/hrissan/hshash/cookie"
	"github.com/hrissan/hshash/handshake"
	"github.com/hrissan/hshash/hserrors"
	"github.com/hrissan/hshash/hsrand"
	"github.com/hrissan/hshash/record"
	"github.com/hrissan/hshash/transcript"
)

// Script drives single handshake transcript, one command per line.
// Exactly one of buffer and hash is set at any time.
type Script struct {
	opts   Options
	out    io.Writer
	buffer *transcript.Buffer
	hash   *transcript.Hash

	cookies    *cookie.CookieState
	lastCookie cookie.Cookie
	now        func() time.Time
}

func NewScript(opts Options, out io.Writer) *Script {
	rnd := hsrand.CryptoRand()
	if opts.RandSeed != "" {
		rnd = hsrand.Seeded([]byte(opts.RandSeed))
	}
	s := &Script{
		opts:    opts,
		out:     out,
		buffer:  transcript.NewBuffer(),
		cookies: cookie.NewCookieState(rnd),
		now:     time.Now,
	}
	if opts.ClientAuth {
		s.buffer.SetClientAuthEnabled()
	}
	return s
}

// Run stops on the first fatal error, warnings are logged and skipped
// unless opts.Strict is set.
func (s *Script) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<26) // hex of largest handshake message fits
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if s.opts.Verbose {
			log.Printf("transcript_dump: line %d: %s", lineNum, line)
		}
		if err := s.Exec(strings.Fields(line)); err != nil {
			err = fmt.Errorf("line %d: %w", lineNum, err)
			if s.opts.Strict || hserrors.IsFatal(err) {
				return err
			}
			log.Printf("transcript_dump: %v", err)
		}
	}
	return scanner.Err()
}

func (s *Script) Exec(fields []string) error {
	if len(fields) == 0 {
		return hserrors.WarnScriptArguments
	}
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "retain":
		if err := s.mustBuffer(args, 0); err != nil {
			return err
		}
		s.buffer.SetClientAuthEnabled()
		return nil
	case "abandon":
		if err := s.mustHash(args, 0); err != nil {
			return err
		}
		s.hash.AbandonClientAuth()
		return nil
	case "hs":
		if len(args) != 2 {
			return hserrors.WarnScriptArguments
		}
		msgType, err := strconv.ParseUint(args[0], 0, 8)
		if err != nil {
			return hserrors.WarnScriptNumber
		}
		body, err := parseHex(args[1])
		if err != nil {
			return err
		}
		if len(body) > handshake.MaxMessageBodyLength {
			return hserrors.WarnScriptMessageTooLong
		}
		s.addMessage(record.HandshakeMessage(handshake.Message{MsgType: handshake.MsgType(msgType), Body: body}))
		return nil
	case "record": // DTLS handshake message with 12-byte header
		if len(args) != 1 {
			return hserrors.WarnScriptArguments
		}
		data, err := parseHex(args[0])
		if err != nil {
			return err
		}
		msg, n, err := handshake.ParseMessage(data)
		if err != nil || n != len(data) {
			return hserrors.ErrHandshakeRecordParsing
		}
		s.addMessage(record.HandshakeMessage(msg))
		return nil
	case "raw":
		if len(args) != 1 {
			return hserrors.WarnScriptArguments
		}
		data, err := parseHex(args[0])
		if err != nil {
			return err
		}
		if s.hash != nil {
			s.hash.AddRaw(data)
		} else {
			s.buffer.AddRaw(data)
		}
		return nil
	case "alert":
		if len(args) != 2 {
			return hserrors.WarnScriptArguments
		}
		level, err1 := strconv.ParseUint(args[0], 0, 8)
		description, err2 := strconv.ParseUint(args[1], 0, 8)
		var alert record.Alert
		if err1 != nil || err2 != nil || alert.Parse([]byte{byte(level), byte(description)}) != nil {
			return hserrors.WarnScriptNumber
		}
		s.addMessage(record.AlertMessage(alert))
		return nil
	case "appdata":
		if len(args) != 1 {
			return hserrors.WarnScriptArguments
		}
		data, err := parseHex(args[0])
		if err != nil {
			return err
		}
		s.addMessage(record.ApplicationDataMessage(data))
		return nil
	case "ccs":
		if len(args) != 0 {
			return hserrors.WarnScriptArguments
		}
		s.addMessage(record.ChangeCipherSpecMessage())
		return nil
	case "suite":
		if err := s.mustBuffer(args, 1); err != nil {
			return err
		}
		id, err := strconv.ParseUint(args[0], 0, 16)
		if err != nil {
			return hserrors.WarnScriptNumber
		}
		suite, err := ciphersuite.SuiteByID(ciphersuite.ID(id))
		if err != nil {
			return hserrors.ErrUnsupportedSuite
		}
		s.startHash(suite.HashAlgorithm())
		return nil
	case "hash":
		if err := s.mustBuffer(args, 1); err != nil {
			return err
		}
		alg, err := ciphersuite.HashAlgorithmByName(args[0])
		if err != nil {
			return hserrors.ErrUnsupportedHashAlgorithm
		}
		s.startHash(alg)
		return nil
	case "peek":
		if len(args) != 1 {
			return hserrors.WarnScriptArguments
		}
		extra, err := parseHex(args[0])
		if err != nil {
			return err
		}
		if s.hash != nil {
			s.printHash("peek", s.hash.HashGiven(extra))
		} else {
			s.printHash("peek", s.buffer.HashGiven(s.opts.PreviewHash, extra))
		}
		return nil
	case "current":
		if err := s.mustHash(args, 0); err != nil {
			return err
		}
		s.printHash("current", s.hash.CurrentHash())
		return nil
	case "rollup":
		if err := s.mustHash(args, 0); err != nil {
			return err
		}
		s.hash.RollupForHRR()
		s.printHash("rollup", s.hash.CurrentHash())
		return nil
	case "retry":
		if err := s.mustHash(args, 0); err != nil {
			return err
		}
		s.buffer = s.hash.IntoHRRBuffer()
		s.hash = nil
		_, _ = fmt.Fprintf(s.out, "retry buffered %d bytes\n", s.buffer.Len())
		return nil
	case "cookie": // stateless HRR, server forgets ClientHello1
		if err := s.mustBuffer(args, 1); err != nil {
			return err
		}
		id, err := strconv.ParseUint(args[0], 0, 16)
		if err != nil {
			return hserrors.WarnScriptNumber
		}
		suite, err := ciphersuite.SuiteByID(ciphersuite.ID(id))
		if err != nil {
			return hserrors.ErrUnsupportedSuite
		}
		s.lastCookie = s.cookies.CreateCookie(cookie.Params{
			TranscriptHash:    s.buffer.HashGiven(suite.HashAlgorithm(), nil),
			TimestampUnixNano: s.now().UnixNano(),
			CipherSuite:       suite.ID(),
		}, s.opts.PeerAddr)
		s.resetBuffer(transcript.NewBuffer())
		_, _ = fmt.Fprintf(s.out, "cookie %x\n", s.lastCookie.GetValue())
		return nil
	case "accept": // without argument, the last issued cookie is returned by client
		if len(args) > 1 {
			return hserrors.WarnScriptArguments
		}
		if err := s.mustBuffer(nil, 0); err != nil {
			return err
		}
		ck := s.lastCookie
		if len(args) == 1 {
			data, err := parseHex(args[0])
			if err != nil {
				return err
			}
			if err := ck.SetValue(data); err != nil {
				return hserrors.ErrClientHelloCookieInvalid
			}
		}
		params, err := s.cookies.IsCookieValid(s.opts.PeerAddr, ck, s.now(), s.opts.CookieValid)
		if err != nil {
			return err
		}
		s.resetBuffer(transcript.NewRetryBuffer(params.TranscriptHash))
		s.printHash(fmt.Sprintf("accept 0x%04x", uint16(params.CipherSuite)), params.TranscriptHash)
		return nil
	case "take":
		if err := s.mustHash(args, 0); err != nil {
			return err
		}
		if !s.hash.ClientAuthEnabled() {
			return hserrors.WarnScriptClientAuthDisabled
		}
		_, _ = fmt.Fprintf(s.out, "take %x\n", s.hash.TakeHandshakeBuf())
		return nil
	}
	return hserrors.WarnScriptUnknownCommand
}

func (s *Script) addMessage(m record.Message) {
	if s.hash != nil {
		s.hash.AddMessage(m)
	} else {
		s.buffer.AddMessage(m)
	}
}

// Client auth retention survives buffer replacement, same as in IntoHRRBuffer.
func (s *Script) resetBuffer(b *transcript.Buffer) {
	if s.buffer.ClientAuthEnabled() {
		b.SetClientAuthEnabled()
	}
	s.buffer = b
}

func (s *Script) startHash(alg *ciphersuite.HashAlgorithm) {
	s.hash = s.buffer.StartHash(alg)
	s.buffer = nil
	s.printHash("start "+alg.Name(), s.hash.CurrentHash())
}

func (s *Script) mustBuffer(args []string, argCount int) error {
	if len(args) != argCount {
		return hserrors.WarnScriptArguments
	}
	if s.buffer == nil {
		return hserrors.WarnScriptHashStarted
	}
	return nil
}

func (s *Script) mustHash(args []string, argCount int) error {
	if len(args) != argCount {
		return hserrors.WarnScriptArguments
	}
	if s.hash == nil {
		return hserrors.WarnScriptHashNotStarted
	}
	return nil
}

func (s *Script) printHash(label string, h ciphersuite.Hash) {
	_, _ = fmt.Fprintf(s.out, "%s %s\n", label, h)
}

func parseHex(arg string) ([]byte, error) {
	if arg == "-" { // empty
		return nil, nil
	}
	data, err := hex.DecodeString(arg)
	if err != nil {
		return nil, hserrors.WarnScriptHex
	}
	return data, nil
}
