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
	"time"
)

// Option is a functional option for configuring a Device
type Option func(*Device) error

// WithSettleDelay sets how long the device is given to respond after a
// command frame has been written.
func WithSettleDelay(delay time.Duration) Option {
	return func(d *Device) error {
		if delay <= 0 {
			return errors.New("settle delay must be positive")
		}
		d.config.SettleDelay = delay
		return nil
	}
}

// WithReadTimeout sets the per-read timeout used when draining the response
func WithReadTimeout(timeout time.Duration) Option {
	return func(d *Device) error {
		if timeout <= 0 {
			return errors.New("read timeout must be positive")
		}
		d.config.ReadTimeout = timeout
		return nil
	}
}

// WithConfig replaces the whole device configuration
func WithConfig(config *DeviceConfig) Option {
	return func(d *Device) error {
		if config == nil {
			return errors.New("nil device config")
		}
		d.config = config
		return nil
	}
}
