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

// Package frame provides frame manipulation and protocol constants for
// communication with the multi-channel spool reader.
package frame

// Frame markers - every frame on the wire is delimited by these sentinels
const (
	Header = 0xEF // FH, first byte of every frame
	Footer = 0xFE // EOF, last byte of every frame
)

// Command codes
const (
	CmdRead  = 0x11 // Read the tag on the addressed channel
	CmdWrite = 0x12 // Write a record to the tag on the addressed channel
)

// Status codes reported by the reader in the STA byte of a response
const (
	StatusOK      = 0x00 // Operation succeeded
	StatusAuthErr = 0x01 // Key authentication failed
	StatusNoTag   = 0x02 // No tag present on the addressed channel
)

// Frame size constants
const (
	// ReadCommandLength is the fixed length of a read command frame:
	// FH LEN CMDC CH FILLER EOF.
	ReadCommandLength = 6

	// WriteCommandLength is the fixed length of a write command frame:
	// FH LEN CMDC CH + 112 payload bytes + BCC EOF.
	WriteCommandLength = 118

	// MinResponseLength is the smallest well-formed response:
	// FH LEN CMDC STA CH BCC EOF.
	MinResponseLength = 7

	// AckLength is the fixed length of a write acknowledgement frame.
	AckLength = 7
)

// Channel limits. The reader exposes 8 antenna ports addressed 0..7.
const (
	MinChannel = 0
	MaxChannel = 7
)
