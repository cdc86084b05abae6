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

package polling

import (
	spooltag "github.com/filament-tools/go-spooltag"
)

// ActionState is the finite state of the continuous-action controller
type ActionState int

const (
	// StateIdle means no continuous action is running
	StateIdle ActionState = iota
	// StateReading means the worker repeats a read on one channel each tick
	StateReading
	// StateWriting means the worker repeats a write of a captured record
	// on one channel each tick.
	StateWriting
)

func (s ActionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReading:
		return "continuous-read"
	case StateWriting:
		return "continuous-write"
	default:
		return "unknown"
	}
}

// Snapshot is the caller-visible view of the controller state. Record is the
// captured write payload, present only in StateWriting; callers get a copy
// and can never reach worker-owned memory.
type Snapshot struct {
	Record  *spooltag.TagRecord
	State   ActionState
	Channel int
}

// clone deep-copies the snapshot so the worker's record cannot be aliased
func (s Snapshot) clone() Snapshot {
	out := s
	if s.Record != nil {
		rec := *s.Record
		out.Record = &rec
	}
	return out
}
