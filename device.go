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
	"context"
	"fmt"
	"time"
)

// DeviceConfig contains configuration options for the Device
type DeviceConfig struct {
	// SettleDelay is how long the device is given to assemble its response
	// after a command frame has been written. A single bounded wait, not a
	// polling loop.
	SettleDelay time.Duration
	// ReadTimeout is the per-read timeout applied to the transport when
	// draining the response.
	ReadTimeout time.Duration
}

// DefaultDeviceConfig returns default device configuration
func DefaultDeviceConfig() *DeviceConfig {
	return &DeviceConfig{
		SettleDelay: 300 * time.Millisecond,
		ReadTimeout: 50 * time.Millisecond,
	}
}

// Device represents a session against a multi-channel spool reader.
//
// Thread Safety: Device is NOT thread-safe and exclusively owns its transport
// for the session lifetime. All methods must be called from a single
// goroutine; the polling package provides the supported worker model for
// concurrent callers.
type Device struct {
	transport Transport
	config    *DeviceConfig
}

// New creates a new reader session over the given transport
func New(transport Transport, opts ...Option) (*Device, error) {
	device := &Device{
		transport: transport,
		config:    DefaultDeviceConfig(),
	}

	for _, opt := range opts {
		if err := opt(device); err != nil {
			return nil, err
		}
	}

	return device, nil
}

// Transport returns the transport this session owns
func (d *Device) Transport() Transport {
	return d.transport
}

// Close releases the transport. Callers running a continuous action must stop
// it first; polling.Controller.Close enforces that ordering.
func (d *Device) Close() error {
	if err := d.transport.Close(); err != nil {
		return fmt.Errorf("failed to close transport: %w", err)
	}
	return nil
}

// ReadTag performs one read transaction against the given channel and decodes
// the returned 112-byte record.
func (d *Device) ReadTag(ctx context.Context, channel int) (*TagRecord, error) {
	payload, err := d.ReadTagRaw(ctx, channel)
	if err != nil {
		return nil, err
	}
	return DecodeRecord(payload)
}

// ReadTagRaw performs one read transaction against the given channel and
// returns the raw tag payload without decoding it. The payload may be empty
// when the reader answers success with no data.
func (d *Device) ReadTagRaw(ctx context.Context, channel int) ([]byte, error) {
	cmd, err := BuildReadCommand(channel)
	if err != nil {
		return nil, err
	}

	resp, err := d.transact(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return ParseResponse(resp)
}

// WriteTag encodes the record and writes it to the tag on the given channel.
// The 7-byte acknowledgement is checksum-verified before its status byte is
// trusted.
func (d *Device) WriteTag(ctx context.Context, channel int, rec *TagRecord) error {
	cmd, err := BuildWriteCommand(rec, channel)
	if err != nil {
		return err
	}

	resp, err := d.transact(ctx, cmd)
	if err != nil {
		return err
	}
	return ParseWriteAck(resp)
}

// transact sends one command frame and collects the reader's response within
// a single bounded wait. No retries happen at this layer; retry is a caller
// decision (see RetryWithConfig).
func (d *Device) transact(ctx context.Context, cmd []byte) ([]byte, error) {
	if !d.transport.IsConnected() {
		return nil, &TransportError{
			Err:  ErrNotConnected,
			Op:   "transact",
			Port: d.transport.Port(),
			Type: ErrorTypePermanent,
		}
	}

	if err := d.transport.Flush(); err != nil {
		return nil, d.wrapTransportErr("flush", err)
	}
	if err := d.transport.Write(cmd); err != nil {
		return nil, d.wrapTransportErr("write", err)
	}

	debugf("sent % X, settling for %v", cmd[:min(len(cmd), 8)], d.config.SettleDelay)

	// Give the device its settle window before draining the response.
	timer := time.NewTimer(d.config.SettleDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("transaction cancelled: %w", ctx.Err())
	case <-timer.C:
	}

	if err := d.transport.SetTimeout(d.config.ReadTimeout); err != nil {
		return nil, d.wrapTransportErr("set timeout", err)
	}
	resp, err := d.transport.ReadAvailable()
	if err != nil {
		return nil, d.wrapTransportErr("read", err)
	}
	if len(resp) == 0 {
		return nil, NewTimeoutError("transact", d.transport.Port())
	}

	debugf("received %d bytes", len(resp))
	return resp, nil
}

func (d *Device) wrapTransportErr(op string, err error) error {
	return &TransportError{
		Err:       err,
		Op:        op,
		Port:      d.transport.Port(),
		Type:      GetErrorType(err),
		Retryable: IsRetryable(err),
	}
}
