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

// Package testing provides canned reader responses for tests.
package testing

import (
	"encoding/binary"

	"github.com/filament-tools/go-spooltag/internal/frame"
)

// Command bytes for reference
const (
	CmdRead  = frame.CmdRead
	CmdWrite = frame.CmdWrite
)

// BuildReadSuccessResponse creates a successful read response carrying the
// given tag payload for the given channel.
func BuildReadSuccessResponse(channel byte, payload []byte) []byte {
	resp := []byte{frame.Header, byte(frame.MinResponseLength + len(payload)), frame.CmdRead, frame.StatusOK, channel}
	resp = append(resp, payload...)
	resp = append(resp, frame.Checksum(resp), frame.Footer)
	return resp
}

// BuildNoTagResponse creates the 7-byte empty-channel read response
func BuildNoTagResponse(channel byte) []byte {
	return buildStatusResponse(frame.CmdRead, frame.StatusNoTag, channel)
}

// BuildAuthFailResponse creates a read response reporting key authentication failure
func BuildAuthFailResponse(channel byte) []byte {
	return buildStatusResponse(frame.CmdRead, frame.StatusAuthErr, channel)
}

// BuildStatusResponse creates a 7-byte read response with an arbitrary status byte
func BuildStatusResponse(status, channel byte) []byte {
	return buildStatusResponse(frame.CmdRead, status, channel)
}

// BuildWriteAck creates the 7-byte write acknowledgement frame
func BuildWriteAck(status, channel byte) []byte {
	return buildStatusResponse(frame.CmdWrite, status, channel)
}

func buildStatusResponse(cmd, status, channel byte) []byte {
	resp := []byte{frame.Header, frame.AckLength, cmd, status, channel}
	return append(resp, frame.Checksum(resp), frame.Footer)
}

// SamplePayload builds a well-formed 112-byte tag payload without depending
// on the record codec, so codec tests can decode known-good bytes.
func SamplePayload() []byte {
	buf := make([]byte, 112)
	binary.BigEndian.PutUint16(buf[0:], 1000)   // tag version
	copy(buf[2:18], "MINGDA 3D")                // manufacturer
	copy(buf[18:34], "PLA")                     // material
	copy(buf[34:66], "White")                   // color
	binary.BigEndian.PutUint16(buf[66:], 1750)  // diameter, micrometers
	binary.BigEndian.PutUint16(buf[68:], 1000)  // weight, grams
	binary.BigEndian.PutUint16(buf[70:], 210)   // print temp
	binary.BigEndian.PutUint16(buf[72:], 60)    // bed temp
	binary.BigEndian.PutUint16(buf[74:], 1240)  // density, ug/cm3
	return buf
}
