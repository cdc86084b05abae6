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

package spooltag

import "time"

// Transport defines the byte-stream interface the reader is reached through.
// The library ships a UART implementation; anything that can move raw frames
// (a PTY, a TCP-to-serial bridge, a mock) can implement it.
type Transport interface {
	// Write sends raw frame bytes to the reader
	Write(data []byte) error

	// ReadAvailable returns whatever bytes the reader has produced so far.
	// It must not block beyond the transport's configured read timeout and
	// returns an empty slice when nothing is pending.
	ReadAvailable() ([]byte, error)

	// Flush discards any pending input and output buffers
	Flush() error

	// SetTimeout sets the per-read timeout used by ReadAvailable
	SetTimeout(timeout time.Duration) error

	// Close closes the transport connection
	Close() error

	// IsConnected returns true if the transport is open
	IsConnected() bool

	// Port returns the port identifier the transport is bound to, for
	// error reporting.
	Port() string

	// Type returns the transport type
	Type() TransportType
}

// TransportType represents the type of transport
type TransportType string

const (
	// TransportUART represents UART/serial transport.
	TransportUART TransportType = "uart"
	// TransportMock represents a mock transport for testing
	TransportMock TransportType = "mock"
)
