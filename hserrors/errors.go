// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package hserrors

import (
	"errors"
	"fmt"
)

// we do not allocation on error returning path,
// so all errors are completely static

type Error struct {
	fatal bool
	code  int
	text  string
}

func (e *Error) Error() string {
	if e.fatal {
		return fmt.Sprintf("hshash (fatal): %d %s", e.code, e.text)
	}
	return fmt.Sprintf("hshash (warning): %d %s", e.code, e.text)
}

func (e *Error) Code() int { return e.code }

func NewFatal(code int, text string) error {
	return &Error{
		fatal: true,
		code:  code,
		text:  text,
	}
}

func NewWarning(code int, text string) error {
	return &Error{
		fatal: false,
		code:  code,
		text:  text,
	}
}

// Errors not from this package are considered fatal.
func IsFatal(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.fatal
	}
	return err != nil
}

var WarnScriptUnknownCommand = NewWarning(-100, "unknown script command")
var WarnScriptArguments = NewWarning(-101, "wrong number of script command arguments")
var WarnScriptHex = NewWarning(-102, "script argument is not valid hex")
var WarnScriptNumber = NewWarning(-103, "script argument is not valid number")
var WarnScriptHashNotStarted = NewWarning(-104, "command requires transcript hash algorithm selected")
var WarnScriptHashStarted = NewWarning(-105, "command requires transcript hash algorithm not selected yet")
var WarnScriptClientAuthDisabled = NewWarning(-106, "handshake buffer requested with client auth disabled")
var WarnScriptMessageTooLong = NewWarning(-107, "handshake message body does not fit into 24-bit length")

var ErrUnsupportedSuite = NewFatal(-200, "unsupported ciphersuite")
var ErrUnsupportedHashAlgorithm = NewFatal(-201, "unsupported hash algorithm")
var ErrHandshakeRecordParsing = NewFatal(-202, "handshake record failed to parse")

var ErrClientHelloCookieInvalid = NewWarning(-300, "ClientHello cookie invalid")
var ErrClientHelloCookieAge = NewWarning(-301, "ClientHello cookie expired")
