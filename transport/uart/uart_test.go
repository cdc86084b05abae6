// go-spooltag
// Copyright (c) 2025 The Filament Tools Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-spooltag.
//
// go-spooltag is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-spooltag is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-spooltag; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package uart

import (
	"errors"
	"testing"

	spooltag "github.com/filament-tools/go-spooltag"
)

// TestTransportCreation verifies basic transport properties without hardware
func TestTransportCreation(t *testing.T) {
	t.Parallel()

	testPortName := "/dev/ttyUSB0"
	transport := &Transport{
		portName: testPortName,
		baudRate: DefaultBaudRate,
	}

	if transport.Port() != testPortName {
		t.Errorf("Expected port name %s, got %s", testPortName, transport.Port())
	}

	if transport.Type() != spooltag.TransportUART {
		t.Errorf("Expected transport type %v, got %v", spooltag.TransportUART, transport.Type())
	}

	// An unopened transport reports disconnected and refuses operations.
	if transport.IsConnected() {
		t.Error("Expected IsConnected() to return false for unopened transport")
	}
	if err := transport.Write([]byte{0x00}); !errors.Is(err, spooltag.ErrNotConnected) {
		t.Errorf("Expected ErrNotConnected from Write, got %v", err)
	}
	if _, err := transport.ReadAvailable(); !errors.Is(err, spooltag.ErrNotConnected) {
		t.Errorf("Expected ErrNotConnected from ReadAvailable, got %v", err)
	}
	if err := transport.Flush(); !errors.Is(err, spooltag.ErrNotConnected) {
		t.Errorf("Expected ErrNotConnected from Flush, got %v", err)
	}
}

func TestNew_InvalidBaudRate(t *testing.T) {
	t.Parallel()

	transport, err := New("/dev/ttyUSB0", WithBaudRate(0))
	if err == nil {
		t.Fatal("Expected error for zero baud rate")
	}
	if transport != nil {
		t.Error("Expected nil transport on option error")
	}
}

func TestNew_UnopenablePort(t *testing.T) {
	t.Parallel()

	transport, err := New("/nonexistent/path/to/port")
	if err == nil {
		t.Fatal("Expected error opening a nonexistent port")
	}
	if transport != nil {
		t.Error("Expected nil transport on open failure")
	}

	var te *spooltag.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("Expected *spooltag.TransportError, got %T", err)
	}
	if te.Op != "open" {
		t.Errorf("Expected op %q, got %q", "open", te.Op)
	}
}

func TestCloseIdempotent(t *testing.T) {
	t.Parallel()

	transport := &Transport{portName: "/dev/ttyUSB0"}
	if err := transport.Close(); err != nil {
		t.Errorf("Close on unopened transport should be a no-op, got %v", err)
	}
}
