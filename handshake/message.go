// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package handshake

import (
	"errors"

	"github.com/hrissan/hshash/format"
	"github.com/hrissan/hshash/safecast"
)

var ErrHandshakeMsgTooShort = errors.New("handshake message too short")

// Type and 24-bit length, as in TLS 1.3. This is what goes into transcript.
const MessageHeaderSize = 4

const MaxMessageBodyLength = 0xFFFFFF

type Message struct {
	MsgType MsgType
	MsgSeq  uint16 // DTLS only, not part of transcript [rfc9147:5.2]
	Body    []byte
}

func (msg *Message) Len32() uint32 {
	if len(msg.Body) > MaxMessageBodyLength {
		panic("message body too large")
	}
	return safecast.Cast[uint32](len(msg.Body))
}

func (msg *Message) EncodingLen() int {
	return MessageHeaderSize + len(msg.Body)
}

// AppendEncoding appends canonical transcript encoding. MsgSeq is not part of
// original TLSv1.3, so not included, and DTLS fragment info is never included.
func (msg *Message) AppendEncoding(dst []byte) []byte {
	dst = append(dst, byte(msg.MsgType))
	dst = format.AppendUint24(dst, msg.Len32())
	return append(dst, msg.Body...)
}

// Allocates
func (msg *Message) Encoding() []byte {
	return msg.AppendEncoding(make([]byte, 0, msg.EncodingLen()))
}

// after parsing, Body points to data, so must not be retained
func ParseEncoding(data []byte) (msg Message, n int, err error) {
	offset, msgType, err := format.ParserReadByte(data, 0)
	if err != nil {
		return Message{}, 0, ErrHandshakeMsgTooShort
	}
	offset, body, err := format.ParserReadUint24Length(data, offset)
	if err != nil {
		return Message{}, 0, ErrHandshakeMsgTooShort
	}
	return Message{MsgType: MsgType(msgType), Body: body}, offset, nil
}
