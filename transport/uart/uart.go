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

// Package uart implements the serial transport for spool readers.
package uart

import (
	"fmt"
	"sync"
	"time"

	spooltag "github.com/filament-tools/go-spooltag"
	"go.bug.st/serial"
)

// DefaultBaudRate is the reader's factory baud rate (8N1 framing)
const DefaultBaudRate = 115200

// readChunkSize is the buffer size for each drain read. The largest frame on
// the wire is a 119-byte read response.
const readChunkSize = 256

// Transport implements spooltag.Transport over a serial port
type Transport struct {
	port     serial.Port
	portName string
	baudRate int
	mu       sync.Mutex
	open     bool
}

// Option is a functional option for configuring the transport
type Option func(*Transport) error

// WithBaudRate overrides the default baud rate
func WithBaudRate(baud int) Option {
	return func(t *Transport) error {
		if baud <= 0 {
			return fmt.Errorf("invalid baud rate %d", baud)
		}
		t.baudRate = baud
		return nil
	}
}

// New opens the serial port at path and returns a connected transport.
// A failure to open the port is the session-level connection error.
func New(path string, opts ...Option) (*Transport, error) {
	t := &Transport{
		portName: path,
		baudRate: DefaultBaudRate,
	}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}

	mode := &serial.Mode{
		BaudRate: t.baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, &spooltag.TransportError{
			Err:  fmt.Errorf("failed to open %s: %w", path, err),
			Op:   "open",
			Port: path,
			Type: spooltag.ErrorTypePermanent,
		}
	}

	t.port = port
	t.open = true
	return t, nil
}

// Write sends raw frame bytes to the reader
func (t *Transport) Write(data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.open {
		return spooltag.ErrNotConnected
	}

	n, err := t.port.Write(data)
	if err != nil {
		return fmt.Errorf("%w: %w", spooltag.ErrTransportWrite, err)
	}
	if n != len(data) {
		return fmt.Errorf("%w: short write (%d of %d bytes)", spooltag.ErrTransportWrite, n, len(data))
	}
	return nil
}

// ReadAvailable drains whatever the reader has produced. Each chunk read is
// bounded by the configured read timeout; draining stops at the first
// timed-out (empty) read, so the call never blocks indefinitely.
func (t *Transport) ReadAvailable() ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.open {
		return nil, spooltag.ErrNotConnected
	}

	var out []byte
	buf := make([]byte, readChunkSize)
	for {
		n, err := t.port.Read(buf)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", spooltag.ErrTransportRead, err)
		}
		if n == 0 {
			return out, nil
		}
		out = append(out, buf[:n]...)
	}
}

// Flush discards pending input and output buffers
func (t *Transport) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.open {
		return spooltag.ErrNotConnected
	}

	if err := t.port.ResetInputBuffer(); err != nil {
		return fmt.Errorf("failed to reset input buffer: %w", err)
	}
	if err := t.port.ResetOutputBuffer(); err != nil {
		return fmt.Errorf("failed to reset output buffer: %w", err)
	}
	return nil
}

// SetTimeout sets the per-read timeout used by ReadAvailable
func (t *Transport) SetTimeout(timeout time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.open {
		return spooltag.ErrNotConnected
	}

	if err := t.port.SetReadTimeout(timeout); err != nil {
		return fmt.Errorf("failed to set read timeout: %w", err)
	}
	return nil
}

// Close closes the serial port
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.open {
		return nil
	}
	t.open = false

	if err := t.port.Close(); err != nil {
		return fmt.Errorf("failed to close port: %w", err)
	}
	return nil
}

// IsConnected returns true while the port is open
func (t *Transport) IsConnected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open
}

// Port returns the serial device path
func (t *Transport) Port() string {
	return t.portName
}

// Type returns spooltag.TransportUART
func (*Transport) Type() spooltag.TransportType {
	return spooltag.TransportUART
}
