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

/*
Package spooltag provides a pure Go library for talking to multi-channel RFID
spool readers used to identify 3D-printer filament spools.

The reader exposes 8 independently addressable antenna ports (channels) over a
serial link and stores a fixed 112-byte identification record on each tag:
manufacturer, material, color, target diameter, nominal weight, print and bed
temperatures, and density.

Features:
  - Binary frame protocol with BCC checksum validation
  - Fixed-offset tag record codec (encode/decode, round-trip safe)
  - One-shot read and write against any of the 8 channels
  - Continuous read/write loops with cooperative cancellation (polling package)
  - Typed errors distinguishing transport faults from device-reported status
  - Opt-in retry helpers; the session layer itself never retries

Basic Usage:

	import (
	    "github.com/filament-tools/go-spooltag"
	    "github.com/filament-tools/go-spooltag/transport/uart"
	)

	transport, err := uart.New("/dev/ttyUSB0")
	if err != nil {
	    log.Fatal(err)
	}

	device, err := spooltag.New(transport)
	if err != nil {
	    log.Fatal(err)
	}
	defer device.Close()

	rec, err := device.ReadTag(context.Background(), 0)
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Printf("%s %s (%s)\n", rec.Manufacturer, rec.MaterialName, rec.ColorName)

Continuous operation:

The polling package runs a dedicated worker goroutine that exclusively owns
the device and repeats a read or write on a fixed cadence until stopped.
Callers communicate with the worker only via typed commands and receive data
back through callbacks, so no state is shared across goroutines.

Error Handling:

All operations return typed errors that can be inspected:

	if errors.Is(err, spooltag.ErrNoTag) {
	    // channel is empty, not a fault
	}
	if spooltag.IsRetryable(err) {
	    // transient transport problem, caller may retry
	}

Thread Safety:

Device operations are not thread-safe. The polling package provides the
supported way to drive a device from multiple goroutines.
*/
package spooltag
