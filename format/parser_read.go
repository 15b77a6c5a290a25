// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package format

import (
	"encoding/binary"
	"errors"
)

var ErrMessageBodyTooShort = errors.New("message body too short")
var ErrMessageBodyExcessBytes = errors.New("message body excess bytes")

func ParserReadFinish(body []byte, offset int) error {
	if offset != len(body) {
		return ErrMessageBodyExcessBytes
	}
	return nil
}

func ParserReadByte(body []byte, offset int) (_ int, value byte, err error) {
	if len(body) < offset+1 {
		return offset, 0, ErrMessageBodyTooShort
	}
	return offset + 1, body[offset], nil
}

func ParserReadUint16(body []byte, offset int) (_ int, value uint16, err error) {
	if len(body) < offset+2 {
		return offset, 0, ErrMessageBodyTooShort
	}
	return offset + 2, binary.BigEndian.Uint16(body[offset:]), nil
}

func ParserReadUint24(body []byte, offset int) (_ int, value uint32, err error) {
	if len(body) < offset+3 {
		return offset, 0, ErrMessageBodyTooShort
	}
	value = uint32(body[offset])<<16 | uint32(body[offset+1])<<8 | uint32(body[offset+2])
	return offset + 3, value, nil
}

func ParserReadUint24Length(body []byte, offset int) (_ int, value []byte, err error) {
	offset, length, err := ParserReadUint24(body, offset)
	if err != nil {
		return offset, nil, err
	}
	endOffset := offset + int(length) // widening
	if len(body) < endOffset {
		return offset, nil, ErrMessageBodyTooShort
	}
	return endOffset, body[offset:endOffset], nil
}

func ParserReadUint64(body []byte, offset int) (_ int, value uint64, err error) {
	if len(body) < offset+8 {
		return offset, 0, ErrMessageBodyTooShort
	}
	return offset + 8, binary.BigEndian.Uint64(body[offset:]), nil
}

func ParserReadFixedBytes(body []byte, offset int, value []byte) (_ int, _ error) {
	if len(body) < offset+len(value) {
		return offset, ErrMessageBodyTooShort
	}
	copy(value, body[offset:])
	return offset + len(value), nil
}
