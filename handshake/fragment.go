// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package handshake

import (
	"encoding/binary"
	"errors"

	"github.com/hrissan/hshash/format"
)

var ErrHandshakeMsgFragmented = errors.New("handshake message fragmented, must be assembled before adding to transcript")

const FragmentHeaderSize = 12

type FragmentInfo struct {
	MsgSeq         uint16
	FragmentOffset uint32 // stored as 24-bit
	FragmentLength uint32 // stored as 24-bit
}

type FragmentHeader struct {
	MsgType MsgType
	Length  uint32 // stored as 24-bit
	FragmentInfo
}

func (hdr *FragmentHeader) IsFragmented() bool {
	return hdr.FragmentOffset != 0 || hdr.FragmentLength != hdr.Length
}

func (hdr *FragmentHeader) Parse(record []byte) error {
	if len(record) < FragmentHeaderSize {
		return ErrHandshakeMsgTooShort
	}
	hdr.MsgType = MsgType(record[0])
	hdr.Length = binary.BigEndian.Uint32(record[0:4]) & 0xFFFFFF
	hdr.MsgSeq = binary.BigEndian.Uint16(record[4:6])
	hdr.FragmentOffset = binary.BigEndian.Uint32(record[5:9]) & 0xFFFFFF
	hdr.FragmentLength = binary.BigEndian.Uint32(record[8:12]) & 0xFFFFFF
	return nil
}

func (hdr *FragmentHeader) Write(datagram []byte) []byte {
	datagram = append(datagram, byte(hdr.MsgType))
	datagram = format.AppendUint24(datagram, hdr.Length)
	datagram = binary.BigEndian.AppendUint16(datagram, hdr.MsgSeq)
	datagram = format.AppendUint24(datagram, hdr.FragmentOffset)
	datagram = format.AppendUint24(datagram, hdr.FragmentLength)
	return datagram
}

// ParseMessage parses whole DTLS handshake message from record.
// After parsing, Body points to record, so must not be retained.
func ParseMessage(record []byte) (msg Message, n int, err error) {
	var hdr FragmentHeader
	if err := hdr.Parse(record); err != nil {
		return Message{}, 0, err
	}
	endOffset := FragmentHeaderSize + int(hdr.FragmentLength) // widening
	if len(record) < endOffset {
		return Message{}, 0, ErrHandshakeMsgTooShort
	}
	if hdr.IsFragmented() {
		return Message{}, 0, ErrHandshakeMsgFragmented
	}
	return Message{MsgType: hdr.MsgType, MsgSeq: hdr.MsgSeq, Body: record[FragmentHeaderSize:endOffset]}, endOffset, nil
}

// Whole message as single DTLS fragment.
func (msg *Message) WriteFragment(datagram []byte) []byte {
	hdr := FragmentHeader{
		MsgType: msg.MsgType,
		Length:  msg.Len32(),
		FragmentInfo: FragmentInfo{
			MsgSeq:         msg.MsgSeq,
			FragmentOffset: 0,
			FragmentLength: msg.Len32(),
		},
	}
	datagram = hdr.Write(datagram)
	return append(datagram, msg.Body...)
}
