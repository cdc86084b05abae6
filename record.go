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
	"encoding/binary"
	"strings"
)

// RecordSize is the fixed width of the on-tag payload in bytes.
const RecordSize = 112

// Field offsets and widths within the 112-byte record. All integers are
// big-endian uint16; all strings are ASCII, NUL-padded to the field width.
const (
	offTagVersion     = 0
	offManufacturer   = 2
	lenManufacturer   = 16
	offMaterialName   = 18
	lenMaterialName   = 16
	offColorName      = 34
	lenColorName      = 32
	offDiameterTarget = 66
	offWeightNominal  = 68
	offPrintTemp      = 70
	offBedTemp        = 72
	offDensity        = 74
	// Bytes 76..111 are reserved and zero-filled.
)

// TagRecord is the structured identification payload stored on a spool tag.
//
// Numeric fields carry fixed units so the record needs no floating point:
// DiameterTarget is micrometers (1.75mm filament = 1750), Density is
// micrograms per cubic centimeter (1.24 g/cm3 = 1240).
type TagRecord struct {
	Manufacturer   string // filament manufacturer, up to 16 ASCII bytes
	MaterialName   string // material, up to 16 ASCII bytes
	ColorName      string // color, up to 32 ASCII bytes
	TagVersion     uint16 // record layout version stamped on the tag
	DiameterTarget uint16 // target diameter in micrometers
	WeightNominal  uint16 // nominal spool weight in grams
	PrintTemp      uint16 // recommended print temperature in degrees C
	BedTemp        uint16 // recommended bed temperature in degrees C
	Density        uint16 // material density in micrograms per cm3
}

// Encode serializes the record into its fixed 112-byte layout. It is total:
// strings longer than their field are truncated, shorter ones are NUL-padded,
// and numeric values are written as-is. Range validation is a caller concern.
func (r *TagRecord) Encode() []byte {
	buf := make([]byte, RecordSize)
	binary.BigEndian.PutUint16(buf[offTagVersion:], r.TagVersion)
	putPaddedASCII(buf[offManufacturer:offManufacturer+lenManufacturer], r.Manufacturer)
	putPaddedASCII(buf[offMaterialName:offMaterialName+lenMaterialName], r.MaterialName)
	putPaddedASCII(buf[offColorName:offColorName+lenColorName], r.ColorName)
	binary.BigEndian.PutUint16(buf[offDiameterTarget:], r.DiameterTarget)
	binary.BigEndian.PutUint16(buf[offWeightNominal:], r.WeightNominal)
	binary.BigEndian.PutUint16(buf[offPrintTemp:], r.PrintTemp)
	binary.BigEndian.PutUint16(buf[offBedTemp:], r.BedTemp)
	binary.BigEndian.PutUint16(buf[offDensity:], r.Density)
	return buf
}

// DecodeRecord parses a 112-byte tag payload. It fails only when the input is
// not exactly RecordSize bytes; any 112-byte buffer decodes successfully.
// String fields are stripped of trailing NULs and surrounding whitespace, so
// an all-zero buffer yields a zero record with empty strings.
func DecodeRecord(data []byte) (*TagRecord, error) {
	if len(data) != RecordSize {
		return nil, ErrPayloadSize
	}
	return &TagRecord{
		TagVersion:     binary.BigEndian.Uint16(data[offTagVersion:]),
		Manufacturer:   trimPaddedASCII(data[offManufacturer : offManufacturer+lenManufacturer]),
		MaterialName:   trimPaddedASCII(data[offMaterialName : offMaterialName+lenMaterialName]),
		ColorName:      trimPaddedASCII(data[offColorName : offColorName+lenColorName]),
		DiameterTarget: binary.BigEndian.Uint16(data[offDiameterTarget:]),
		WeightNominal:  binary.BigEndian.Uint16(data[offWeightNominal:]),
		PrintTemp:      binary.BigEndian.Uint16(data[offPrintTemp:]),
		BedTemp:        binary.BigEndian.Uint16(data[offBedTemp:]),
		Density:        binary.BigEndian.Uint16(data[offDensity:]),
	}, nil
}

// putPaddedASCII copies s into dst, truncating to len(dst). The destination
// is assumed zero-filled, which provides the NUL padding.
func putPaddedASCII(dst []byte, s string) {
	copy(dst, s)
}

// trimPaddedASCII strips NUL padding and surrounding whitespace from a
// fixed-width string field.
func trimPaddedASCII(b []byte) string {
	return strings.TrimSpace(strings.TrimRight(string(b), "\x00"))
}
