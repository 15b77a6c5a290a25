// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package format

import (
	"testing"
)

func TestUint24RoundTrip(t *testing.T) {
	for _, v := range []uint32{0, 1, 0xFF, 0x1234, 0xABCDEF, 0xFFFFFF} {
		data := AppendUint24(nil, v)
		if len(data) != 3 {
			t.Fatalf("AppendUint24 wrote %d bytes", len(data))
		}
		offset, got, err := ParserReadUint24(data, 0)
		if err != nil || offset != 3 || got != v {
			t.Errorf("read back %x, want %x (offset %d, err %v)", got, v, offset, err)
		}
	}
}

func TestAppendUint24OutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("AppendUint24 must panic for values above 2^24-1")
		}
	}()
	AppendUint24(nil, 0x1000000)
}

func TestParserReadUint24Length(t *testing.T) {
	body := []byte{0, 0, 2, 'h', 'i', 'x'}
	offset, value, err := ParserReadUint24Length(body, 0)
	if err != nil || string(value) != "hi" || offset != 5 {
		t.Fatalf("unexpected result %q %d %v", value, offset, err)
	}
	if err := ParserReadFinish(body, offset); err != ErrMessageBodyExcessBytes {
		t.Errorf("expected excess bytes, got %v", err)
	}
	if _, _, err := ParserReadUint24Length(body[:4], 0); err != ErrMessageBodyTooShort {
		t.Errorf("expected too short, got %v", err)
	}
}
