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
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRetryable(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		name string
		want bool
	}{
		{name: "nil error", err: nil, want: false},
		{name: "transport timeout retryable", err: ErrTransportTimeout, want: true},
		{name: "transport read retryable", err: ErrTransportRead, want: true},
		{name: "transport write retryable", err: ErrTransportWrite, want: true},
		{name: "ack checksum retryable", err: ErrAckChecksum, want: true},
		{name: "wrapped transport error retryable", err: fmt.Errorf("op: %w", ErrTransportRead), want: true},
		{name: "invalid channel not retryable", err: ErrInvalidChannel, want: false},
		{name: "no tag not retryable", err: ErrNoTag, want: false},
		{name: "auth failure not retryable", err: ErrAuthFailed, want: false},
		{name: "bad header not retryable", err: ErrBadHeader, want: false},
		{name: "payload size not retryable", err: ErrPayloadSize, want: false},
		{name: "unknown status not retryable", err: &UnknownStatusError{Code: 0x55}, want: false},
		{name: "opaque error not retryable", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		tt := tt // capture loop variable
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestIsRetryable_TransportError(t *testing.T) {
	t.Parallel()

	t.Run("flag true wins", func(t *testing.T) {
		t.Parallel()
		te := &TransportError{Err: errors.New("x"), Op: "read", Port: "/dev/ttyUSB0", Retryable: true}
		assert.True(t, IsRetryable(te))
	})

	t.Run("flag false wins even over retryable cause", func(t *testing.T) {
		t.Parallel()
		te := &TransportError{Err: ErrTransportTimeout, Op: "read", Retryable: false}
		assert.False(t, IsRetryable(te))
	})
}

func TestGetErrorType(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		name string
		want ErrorType
	}{
		{name: "nil", err: nil, want: ErrorTypePermanent},
		{name: "timeout", err: ErrTransportTimeout, want: ErrorTypeTimeout},
		{name: "read fault", err: ErrTransportRead, want: ErrorTypeTransient},
		{name: "write fault", err: ErrTransportWrite, want: ErrorTypeTransient},
		{name: "ack checksum", err: ErrAckChecksum, want: ErrorTypeTransient},
		{name: "no tag", err: ErrNoTag, want: ErrorTypeDevice},
		{name: "auth failure", err: ErrAuthFailed, want: ErrorTypeDevice},
		{name: "unknown status", err: &UnknownStatusError{Code: 9}, want: ErrorTypeDevice},
		{name: "invalid channel", err: ErrInvalidChannel, want: ErrorTypePermanent},
		{name: "bad header", err: ErrBadHeader, want: ErrorTypePermanent},
		{name: "transport error struct carries its type", err: NewTimeoutError("transact", "mock"), want: ErrorTypeTimeout},
	}

	for _, tt := range tests {
		tt := tt // capture loop variable
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, GetErrorType(tt.err))
		})
	}
}

func TestIsDeviceStatus(t *testing.T) {
	t.Parallel()
	assert.True(t, IsDeviceStatus(ErrNoTag))
	assert.True(t, IsDeviceStatus(ErrAuthFailed))
	assert.True(t, IsDeviceStatus(&UnknownStatusError{Code: 3}))
	assert.False(t, IsDeviceStatus(ErrTransportTimeout))
	assert.False(t, IsDeviceStatus(nil))
}

func TestTransportError_Formatting(t *testing.T) {
	t.Parallel()
	te := NewTimeoutError("transact", "/dev/ttyUSB0")
	assert.Contains(t, te.Error(), "transact")
	assert.Contains(t, te.Error(), "/dev/ttyUSB0")
	assert.ErrorIs(t, te, ErrTransportTimeout)

	bare := &TransportError{Err: ErrTransportRead, Op: "read"}
	assert.Contains(t, bare.Error(), "read")
}

func TestUnknownStatusError_Formatting(t *testing.T) {
	t.Parallel()
	err := &UnknownStatusError{Code: 0xAB}
	assert.Contains(t, err.Error(), "0xab")
}
