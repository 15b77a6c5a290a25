// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package record

import (
	"github.com/hrissan/hshash/handshake"
)

// Message is a decoded protocol message of any content type.
// We do not want interface here, as that would allocate for every message.
type Message struct {
	ContentType ContentType
	Handshake   handshake.Message // valid only for RecordTypeHandshake
	Body        []byte            // everything else, must not be retained
}

func (m *Message) IsHandshake() bool {
	return m.ContentType == RecordTypeHandshake
}

func HandshakeMessage(msg handshake.Message) Message {
	return Message{ContentType: RecordTypeHandshake, Handshake: msg}
}

func AlertMessage(alert Alert) Message {
	var storage [AlertSize]byte
	return Message{ContentType: RecordTypeAlert, Body: alert.Write(storage[:0])}
}

func ApplicationDataMessage(data []byte) Message {
	return Message{ContentType: RecordTypeApplicationData, Body: data}
}

func AckMessage(body []byte) Message {
	return Message{ContentType: RecordTypeAck, Body: body}
}

// The only valid change_cipher_spec body is single byte 1 [rfc8446:5]
func ChangeCipherSpecMessage() Message {
	return Message{ContentType: RecordTypeChangeCipherSpec, Body: []byte{1}}
}
