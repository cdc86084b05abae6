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

import (
	"sync"
	"time"
)

// MockTransport is an in-memory Transport for tests. Responses are keyed by
// the CMDC byte of the written command frame; an unmatched command leaves
// nothing to read, which surfaces as a settle-window timeout in the session.
type MockTransport struct {
	responses    map[byte][]byte
	errors       map[byte]error
	ResponseFunc func(cmd byte, frame []byte) ([]byte, error)
	written      [][]byte
	pending      []byte
	pendingErr   error
	writeErr     error
	flushCount   int
	mu           sync.Mutex
	closed       bool
}

// NewMockTransport creates a new mock transport
func NewMockTransport() *MockTransport {
	return &MockTransport{
		responses: make(map[byte][]byte),
		errors:    make(map[byte]error),
	}
}

// SetResponse configures the response returned after a command with the
// given CMDC byte is written.
func (m *MockTransport) SetResponse(cmd byte, response []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[cmd] = append([]byte(nil), response...)
}

// SetError configures a read error surfaced after a command with the given
// CMDC byte is written.
func (m *MockTransport) SetError(cmd byte, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[cmd] = err
}

// SetWriteError makes every Write fail with err
func (m *MockTransport) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// Write records the frame and stages the configured response for it
func (m *MockTransport) Write(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrNotConnected
	}
	if m.writeErr != nil {
		return m.writeErr
	}

	frame := append([]byte(nil), data...)
	m.written = append(m.written, frame)

	var cmd byte
	if len(frame) > 2 {
		cmd = frame[2]
	}
	if m.ResponseFunc != nil {
		resp, err := m.ResponseFunc(cmd, frame)
		m.pending, m.pendingErr = resp, err
		return nil
	}
	m.pending = m.responses[cmd]
	m.pendingErr = m.errors[cmd]
	return nil
}

// ReadAvailable returns the staged response, if any
func (m *MockTransport) ReadAvailable() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrTransportRead
	}
	if m.pendingErr != nil {
		err := m.pendingErr
		m.pendingErr = nil
		return nil, err
	}
	resp := m.pending
	m.pending = nil
	return resp, nil
}

// Flush discards any staged response
func (m *MockTransport) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flushCount++
	m.pending = nil
	m.pendingErr = nil
	return nil
}

// FlushCount reports how many times Flush has been called
func (m *MockTransport) FlushCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flushCount
}

// Written returns copies of every frame written so far
func (m *MockTransport) Written() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.written))
	copy(out, m.written)
	return out
}

// LastWritten returns the most recently written frame, or nil
func (m *MockTransport) LastWritten() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.written) == 0 {
		return nil
	}
	return m.written[len(m.written)-1]
}

// SetTimeout is a no-op for the mock
func (*MockTransport) SetTimeout(_ time.Duration) error {
	return nil
}

// Close marks the transport as disconnected
func (m *MockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// IsConnected returns true until Close is called
func (m *MockTransport) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.closed
}

// Port returns a fixed identifier for error messages
func (*MockTransport) Port() string {
	return "mock"
}

// Type returns TransportMock
func (*MockTransport) Type() TransportType {
	return TransportMock
}
