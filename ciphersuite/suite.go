// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package ciphersuite

import (
	"errors"
	"fmt"
)

var ErrUnsupportedSuite = errors.New("unsupported ciphersuite")

// Suite is what handshake negotiates. For transcript we only need its hash,
// the transcript algorithm becomes known when ServerHello selects a suite [rfc8446:4.4.1]
type Suite interface {
	ID() ID
	Name() string
	HashAlgorithm() *HashAlgorithm
}

type ID uint16

const (
	// [rfc8446:4.5.3] AEAD Limits - 2^36 limit for 3 ciphers at the top
	TLS_AES_128_GCM_SHA256       ID = 0x1301
	TLS_AES_256_GCM_SHA384       ID = 0x1302
	TLS_CHACHA20_POLY1305_SHA256 ID = 0x1303

	// ciphers below are not recommended to be implemented
	TLS_AES_128_CCM_SHA256   ID = 0x1304
	TLS_AES_128_CCM_8_SHA256 ID = 0x1305
)

type suiteImpl struct {
	id   ID
	name string
	alg  *HashAlgorithm
}

func (s *suiteImpl) ID() ID                        { return s.id }
func (s *suiteImpl) Name() string                  { return s.name }
func (s *suiteImpl) HashAlgorithm() *HashAlgorithm { return s.alg }

var suite_TLS_AES_128_GCM_SHA256 Suite = &suiteImpl{TLS_AES_128_GCM_SHA256, "TLS_AES_128_GCM_SHA256", SHA256}
var suite_TLS_AES_256_GCM_SHA384 Suite = &suiteImpl{TLS_AES_256_GCM_SHA384, "TLS_AES_256_GCM_SHA384", SHA384}
var suite_TLS_CHACHA20_POLY1305_SHA256 Suite = &suiteImpl{TLS_CHACHA20_POLY1305_SHA256, "TLS_CHACHA20_POLY1305_SHA256", SHA256}
var suite_TLS_AES_128_CCM_SHA256 Suite = &suiteImpl{TLS_AES_128_CCM_SHA256, "TLS_AES_128_CCM_SHA256", SHA256}
var suite_TLS_AES_128_CCM_8_SHA256 Suite = &suiteImpl{TLS_AES_128_CCM_8_SHA256, "TLS_AES_128_CCM_8_SHA256", SHA256}

func SuiteByID(num ID) (Suite, error) {
	switch num {
	case TLS_AES_128_GCM_SHA256:
		return suite_TLS_AES_128_GCM_SHA256, nil
	case TLS_AES_256_GCM_SHA384:
		return suite_TLS_AES_256_GCM_SHA384, nil
	case TLS_CHACHA20_POLY1305_SHA256:
		return suite_TLS_CHACHA20_POLY1305_SHA256, nil
	case TLS_AES_128_CCM_SHA256:
		return suite_TLS_AES_128_CCM_SHA256, nil
	case TLS_AES_128_CCM_8_SHA256:
		return suite_TLS_AES_128_CCM_8_SHA256, nil
	}
	return nil, fmt.Errorf("%w: 0x%04x", ErrUnsupportedSuite, uint16(num))
}

// GetSuite is for IDs already checked during negotiation.
func GetSuite(num ID) Suite {
	suite, err := SuiteByID(num)
	if err != nil {
		panic("unsupported ciphersuite ID")
	}
	return suite
}
