// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package handshake

// [rfc8446:4.4.1] When the server responds to a ClientHello with a HelloRetryRequest,
// the value of ClientHello1 is replaced with a special synthetic handshake message
// of handshake type "message_hash" containing Hash(ClientHello1).
//
// Body aliases digest.
func MessageHash(digest []byte) Message {
	if len(digest) > 0xFF { // hash lengths fit into single byte, so encoding is 00 00 len
		panic("message_hash digest too long")
	}
	return Message{MsgType: MsgTypeMessageHash, Body: digest}
}

func AppendMessageHashEncoding(dst []byte, digest []byte) []byte {
	msg := MessageHash(digest)
	return msg.AppendEncoding(dst)
}
