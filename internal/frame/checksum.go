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

package frame

// Checksum computes the BCC (block check character) over data: the bitwise
// complement of the XOR accumulation of every byte. On the wire the BCC covers
// everything from FH through the last DATA byte, excluding BCC and EOF.
func Checksum(data []byte) byte {
	var acc byte
	for _, b := range data {
		acc ^= b
	}
	return ^acc
}

// ValidateChecksum recomputes the BCC over data and compares it against want.
// It returns true when the checksums disagree.
func ValidateChecksum(data []byte, want byte) bool {
	return Checksum(data) != want
}
