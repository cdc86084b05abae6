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
)

// Construction and validation errors
var (
	// ErrInvalidChannel indicates a channel outside the 0..7 range. It is
	// raised at command construction time and never sent on the wire.
	ErrInvalidChannel = errors.New("channel out of range (0-7)")

	// ErrPayloadSize indicates a tag payload that is not exactly RecordSize bytes
	ErrPayloadSize = errors.New("tag payload is not 112 bytes")
)

// Transport errors
var (
	// ErrTransportTimeout indicates no response arrived within the settle window
	ErrTransportTimeout = errors.New("transport timeout")

	// ErrTransportRead indicates a failure reading from the transport
	ErrTransportRead = errors.New("transport read error")

	// ErrTransportWrite indicates a failure writing to the transport
	ErrTransportWrite = errors.New("transport write error")

	// ErrNotConnected indicates an operation on a closed or unopened transport
	ErrNotConnected = errors.New("transport not connected")
)

// Protocol errors - malformed frame shape
var (
	// ErrResponseTooShort indicates a response below the 7-byte minimum
	ErrResponseTooShort = errors.New("response too short")

	// ErrBadHeader indicates a response that does not start with the FH sentinel
	ErrBadHeader = errors.New("bad frame header")

	// ErrBadFooter indicates a response that does not end with the EOF sentinel
	ErrBadFooter = errors.New("bad frame footer")

	// ErrAckChecksum indicates a write acknowledgement whose BCC does not match
	// the checksum recomputed over the received bytes.
	ErrAckChecksum = errors.New("write acknowledgement checksum mismatch")
)

// Device-reported status errors - the transport and frame are fine, the
// reader itself reported a non-success outcome.
var (
	// ErrAuthFailed indicates key authentication against the tag failed (STA 0x01)
	ErrAuthFailed = errors.New("tag authentication failed")

	// ErrNoTag indicates no tag is present on the addressed channel (STA 0x02)
	ErrNoTag = errors.New("no tag present on channel")
)

// UnknownStatusError is returned when a response carries a status byte outside
// the documented set.
type UnknownStatusError struct {
	Code byte
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown device status %#02x", e.Code)
}

// ErrorType classifies errors for retry decisions
type ErrorType int

const (
	// ErrorTypePermanent indicates errors that will not resolve on retry
	ErrorTypePermanent ErrorType = iota
	// ErrorTypeTransient indicates errors that may resolve on retry
	ErrorTypeTransient
	// ErrorTypeTimeout indicates the operation exceeded its time budget
	ErrorTypeTimeout
	// ErrorTypeDevice indicates an outcome reported by the reader itself,
	// such as an empty channel. Retrying is a policy decision, not a fix.
	ErrorTypeDevice
)

// TransportError wraps a transport-level failure with operation context
type TransportError struct {
	Err       error
	Op        string
	Port      string
	Type      ErrorType
	Retryable bool
}

func (e *TransportError) Error() string {
	if e.Port != "" {
		return fmt.Sprintf("transport %s on %s: %v", e.Op, e.Port, e.Err)
	}
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTimeoutError creates a TransportError for a settle-window timeout
func NewTimeoutError(op, port string) *TransportError {
	return &TransportError{
		Err:       ErrTransportTimeout,
		Op:        op,
		Port:      port,
		Type:      ErrorTypeTimeout,
		Retryable: true,
	}
}

// IsRetryable reports whether err may resolve on retry. Transport faults are
// retryable; validation and device-status errors are not - whether to retry a
// "no tag" outcome is a caller policy, not an error property.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var te *TransportError
	if errors.As(err, &te) {
		return te.Retryable
	}

	switch {
	case errors.Is(err, ErrTransportTimeout),
		errors.Is(err, ErrTransportRead),
		errors.Is(err, ErrTransportWrite),
		errors.Is(err, ErrAckChecksum):
		return true
	default:
		return false
	}
}

// GetErrorType returns the classification for err
func GetErrorType(err error) ErrorType {
	if err == nil {
		return ErrorTypePermanent
	}

	var te *TransportError
	if errors.As(err, &te) {
		return te.Type
	}

	var use *UnknownStatusError
	switch {
	case errors.Is(err, ErrTransportTimeout):
		return ErrorTypeTimeout
	case errors.Is(err, ErrTransportRead),
		errors.Is(err, ErrTransportWrite),
		errors.Is(err, ErrAckChecksum):
		return ErrorTypeTransient
	case errors.Is(err, ErrNoTag),
		errors.Is(err, ErrAuthFailed),
		errors.As(err, &use):
		return ErrorTypeDevice
	default:
		return ErrorTypePermanent
	}
}

// IsDeviceStatus reports whether err is an outcome reported by the reader
// (auth failure, empty channel, unknown status) rather than a communication
// fault. Continuous loops keep running through these.
func IsDeviceStatus(err error) bool {
	return GetErrorType(err) == ErrorTypeDevice
}
