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

// Package polling runs continuous read/write actions against a spool reader.
//
// A single worker goroutine exclusively owns the device for its connected
// lifetime. Callers never touch the worker's state: start/stop requests
// travel over a typed command channel consumed solely by the worker, and
// data flows back through callbacks. Cancellation is cooperative - a stop is
// observed at the top of the next tick, and no transaction is interrupted
// mid-flight.
package polling

import (
	"time"

	spooltag "github.com/filament-tools/go-spooltag"
)

// Config configures the continuous-action controller
type Config struct {
	// TickInterval is the fixed cadence between consecutive ticks of a
	// continuous action.
	TickInterval time.Duration
	// StopTimeout bounds how long Close waits for the worker to observe
	// the stop before the transport is released.
	StopTimeout time.Duration
}

// DefaultConfig returns the default controller configuration
func DefaultConfig() *Config {
	return &Config{
		TickInterval: 500 * time.Millisecond,
		StopTimeout:  5 * time.Second,
	}
}

// Callbacks defines the outbound event surface of the controller. All fields
// are optional; they are invoked from the worker goroutine, so they must not
// call back into the controller synchronously.
type Callbacks struct {
	// OnData delivers a decoded record after each successful read tick
	OnData func(channel int, rec *spooltag.TagRecord)
	// OnStatus fires on every state transition
	OnStatus func(snap Snapshot)
	// OnError reports a failure that stopped the active action
	OnError func(err error)
	// OnLog receives human-readable progress messages
	OnLog func(msg string)
}
