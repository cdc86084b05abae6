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
	"github.com/filament-tools/go-spooltag/internal/frame"
)

// readCommands is the fixed read-command table, one entry per channel.
// The fifth byte is the complement-style filler the reader expects:
// channel 0 carries 0x07, channel 7 carries 0x00, linearly decreasing.
// Built once at startup; entries are copied before being handed out.
var readCommands = buildReadCommands()

func buildReadCommands() [8][frame.ReadCommandLength]byte {
	var cmds [8][frame.ReadCommandLength]byte
	for ch := range cmds {
		cmds[ch] = [frame.ReadCommandLength]byte{
			frame.Header,
			frame.ReadCommandLength,
			frame.CmdRead,
			byte(ch),
			byte(frame.MaxChannel - ch),
			frame.Footer,
		}
	}
	return cmds
}

// ValidChannel reports whether ch addresses one of the 8 antenna ports
func ValidChannel(ch int) bool {
	return ch >= frame.MinChannel && ch <= frame.MaxChannel
}

// BuildReadCommand returns the 6-byte read command frame for the given
// channel. Channels outside 0..7 fail with ErrInvalidChannel; no frame is
// ever constructed for them.
func BuildReadCommand(channel int) ([]byte, error) {
	if !ValidChannel(channel) {
		return nil, ErrInvalidChannel
	}
	cmd := readCommands[channel]
	return cmd[:], nil
}

// BuildWriteCommand assembles the 118-byte write command frame for the given
// record and channel: FH, LEN, CMDC, channel, the 112-byte encoded record,
// BCC over FH..payload, EOF.
func BuildWriteCommand(rec *TagRecord, channel int) ([]byte, error) {
	if !ValidChannel(channel) {
		return nil, ErrInvalidChannel
	}

	buf := make([]byte, 0, frame.WriteCommandLength)
	buf = append(buf, frame.Header, frame.WriteCommandLength, frame.CmdWrite, byte(channel))
	buf = append(buf, rec.Encode()...)
	buf = append(buf, frame.Checksum(buf), frame.Footer)
	return buf, nil
}

// ParseResponse validates a read response frame and extracts the tag payload.
//
// The frame shape is FH LEN CMDC STA CH DATA... BCC EOF. Header, footer and
// minimum length are enforced. A LEN field that disagrees with the actual
// received byte count is logged and tolerated: the slicing below trusts the
// received length, matching observed reader behavior on a noisy link.
//
// On STA success the payload between the channel byte and the BCC is
// returned; it may be empty, which is a valid result and not an error. The
// BCC is not re-verified on this path (write acknowledgements are verified
// strictly, see ParseWriteAck).
func ParseResponse(buf []byte) ([]byte, error) {
	if len(buf) < frame.MinResponseLength {
		return nil, ErrResponseTooShort
	}
	if buf[0] != frame.Header {
		return nil, ErrBadHeader
	}
	if buf[len(buf)-1] != frame.Footer {
		return nil, ErrBadFooter
	}

	if declared := int(buf[1]); declared != len(buf) {
		debugf("response LEN field %d disagrees with received length %d", declared, len(buf))
	}

	if err := statusError(buf[3]); err != nil {
		return nil, err
	}

	// Payload sits between the channel byte at index 4 and the trailing BCC.
	payload := buf[5 : len(buf)-2]
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, nil
}

// ParseWriteAck validates the 7-byte write acknowledgement frame
// FH LEN CMDC STA CH BCC EOF. Unlike the read path, the BCC is recomputed
// over FH..CH and the frame is rejected on mismatch before the status byte
// is inspected.
func ParseWriteAck(buf []byte) error {
	if len(buf) < frame.AckLength {
		return ErrResponseTooShort
	}
	if buf[0] != frame.Header {
		return ErrBadHeader
	}
	if buf[frame.AckLength-1] != frame.Footer {
		return ErrBadFooter
	}

	if frame.ValidateChecksum(buf[:frame.AckLength-2], buf[frame.AckLength-2]) {
		return ErrAckChecksum
	}

	return statusError(buf[3])
}

// statusError maps a STA byte onto the device-status error taxonomy
func statusError(sta byte) error {
	switch sta {
	case frame.StatusOK:
		return nil
	case frame.StatusAuthErr:
		return ErrAuthFailed
	case frame.StatusNoTag:
		return ErrNoTag
	default:
		return &UnknownStatusError{Code: sta}
	}
}
