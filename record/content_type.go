// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package record

type ContentType byte

const (
	RecordTypeZero             ContentType = 0  // "message not set"
	RecordTypeChangeCipherSpec ContentType = 20 // TLS 1.3 middlebox compatibility only [rfc8446:D.4]
	RecordTypeAlert            ContentType = 21
	RecordTypeHandshake        ContentType = 22
	RecordTypeApplicationData  ContentType = 23
	RecordTypeAck              ContentType = 26 // DTLS 1.3 only [rfc9147:7]
)

func (ct ContentType) String() string {
	switch ct {
	case RecordTypeZero:
		return "<zero>"
	case RecordTypeChangeCipherSpec:
		return "change_cipher_spec"
	case RecordTypeAlert:
		return "alert"
	case RecordTypeHandshake:
		return "handshake"
	case RecordTypeApplicationData:
		return "application_data"
	case RecordTypeAck:
		return "ack"
	default:
		return "<unknown>"
	}
}
