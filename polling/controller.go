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
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	spooltag "github.com/filament-tools/go-spooltag"
)

// Controller errors
var (
	// ErrNotRunning indicates a request against a controller whose worker
	// is not running.
	ErrNotRunning = errors.New("controller not running")
	// ErrAlreadyStarted indicates Start was called twice
	ErrAlreadyStarted = errors.New("controller already started")
)

type commandKind int

const (
	cmdStartRead commandKind = iota
	cmdStartWrite
	cmdStop
)

// command is the only thing that crosses from callers into the worker
type command struct {
	reply   chan error
	record  *spooltag.TagRecord
	kind    commandKind
	channel int
}

// Controller drives continuous read/write actions against a device. The
// worker goroutine it starts is the sole owner of the device and of the
// current action state; callers interact exclusively through the command
// channel and the published snapshot.
type Controller struct {
	device    *spooltag.Device
	config    *Config
	callbacks Callbacks
	cmds      chan command
	quit      chan struct{}
	done      chan struct{}
	quitOnce  sync.Once
	mu        sync.Mutex
	snap      Snapshot
	started   bool
}

// NewController creates a controller over a device session. The controller
// takes ownership of the device; after Start, callers must not use the
// device directly until Close returns.
func NewController(device *spooltag.Device, config *Config, callbacks Callbacks) *Controller {
	if config == nil {
		config = DefaultConfig()
	}
	return &Controller{
		device:    device,
		config:    config,
		callbacks: callbacks,
		cmds:      make(chan command),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
		snap:      Snapshot{State: StateIdle},
	}
}

// Start launches the worker goroutine. The worker runs until Close is called
// or ctx is cancelled.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return ErrAlreadyStarted
	}
	c.started = true
	go c.run(ctx)
	return nil
}

// State returns a copy of the current action state
func (c *Controller) State() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap.clone()
}

// StartContinuousRead switches the worker to repeatedly reading the given
// channel. An active continuous write is implicitly cancelled; the old loop
// performs no further ticks once the command is consumed.
func (c *Controller) StartContinuousRead(channel int) error {
	if !spooltag.ValidChannel(channel) {
		return spooltag.ErrInvalidChannel
	}
	return c.send(command{kind: cmdStartRead, channel: channel, reply: make(chan error, 1)})
}

// StartContinuousWrite switches the worker to repeatedly writing rec to the
// given channel. The record is captured by value: later edits by the caller
// do not affect the running loop, a new start call is required to pick them
// up.
func (c *Controller) StartContinuousWrite(channel int, rec *spooltag.TagRecord) error {
	if !spooltag.ValidChannel(channel) {
		return spooltag.ErrInvalidChannel
	}
	if rec == nil {
		return errors.New("nil record")
	}
	snapshot := *rec
	return c.send(command{kind: cmdStartWrite, channel: channel, record: &snapshot, reply: make(chan error, 1)})
}

// Stop cancels the active continuous action. Stopping an idle controller is
// a no-op that still succeeds.
func (c *Controller) Stop() error {
	return c.send(command{kind: cmdStop, reply: make(chan error, 1)})
}

// Close stops the active action, waits for the worker to observe the stop,
// and only then releases the device. Waiting is bounded by ctx and the
// configured StopTimeout.
func (c *Controller) Close(ctx context.Context) error {
	// Best effort: the worker may already be gone.
	_ = c.Stop()

	c.quitOnce.Do(func() { close(c.quit) })

	c.mu.Lock()
	started := c.started
	c.mu.Unlock()

	if started {
		timer := time.NewTimer(c.config.StopTimeout)
		defer timer.Stop()
		select {
		case <-c.done:
		case <-timer.C:
			return fmt.Errorf("worker did not stop within %v", c.config.StopTimeout)
		case <-ctx.Done():
			return fmt.Errorf("close cancelled: %w", ctx.Err())
		}
	}

	return c.device.Close()
}

// send delivers a command to the worker and waits for it to be applied.
// Delivery latency is bounded by the tick interval plus one outstanding
// transaction, since the worker only blocks on those.
func (c *Controller) send(cmd command) error {
	c.mu.Lock()
	started := c.started
	c.mu.Unlock()
	if !started {
		return ErrNotRunning
	}

	select {
	case c.cmds <- cmd:
	case <-c.done:
		return ErrNotRunning
	}

	select {
	case err := <-cmd.reply:
		return err
	case <-c.done:
		return ErrNotRunning
	}
}

// run is the worker loop. It alternates between waiting for commands and,
// while an action is active, executing one tick per interval. All state
// mutation happens here and nowhere else.
func (c *Controller) run(ctx context.Context) {
	defer close(c.done)

	ticker := time.NewTicker(c.config.TickInterval)
	defer ticker.Stop()

	state := Snapshot{State: StateIdle}
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.quit:
			return
		case cmd := <-c.cmds:
			state = c.apply(state, cmd)
		case <-ticker.C:
			state = c.tick(ctx, state)
		}
	}
}

// apply executes one state transition requested by a caller
func (c *Controller) apply(state Snapshot, cmd command) Snapshot {
	var next Snapshot
	switch cmd.kind {
	case cmdStartRead:
		next = Snapshot{State: StateReading, Channel: cmd.channel}
		c.logf("continuous read started on channel %d", cmd.channel)
	case cmdStartWrite:
		next = Snapshot{State: StateWriting, Channel: cmd.channel, Record: cmd.record}
		c.logf("continuous write started on channel %d", cmd.channel)
	case cmdStop:
		if state.State == StateIdle {
			// Idempotent: no transition, no status event.
			cmd.reply <- nil
			return state
		}
		next = Snapshot{State: StateIdle}
		c.logf("continuous %s stopped", state.State)
	}

	c.publish(next)
	cmd.reply <- nil
	return next
}

// tick performs one transaction of the active action. Device-reported status
// keeps the loop alive; a transport fault means the channel itself is
// unusable, so the action is aborted and reported.
func (c *Controller) tick(ctx context.Context, state Snapshot) Snapshot {
	switch state.State {
	case StateReading:
		rec, err := c.device.ReadTag(ctx, state.Channel)
		if err == nil {
			if c.callbacks.OnData != nil {
				c.callbacks.OnData(state.Channel, rec)
			}
			return state
		}
		return c.tickFailure(ctx, state, err)
	case StateWriting:
		err := c.device.WriteTag(ctx, state.Channel, state.Record)
		if err == nil {
			c.logf("wrote record to channel %d", state.Channel)
			return state
		}
		return c.tickFailure(ctx, state, err)
	default:
		return state
	}
}

func (c *Controller) tickFailure(ctx context.Context, state Snapshot, err error) Snapshot {
	if ctx.Err() != nil {
		// Shutdown is in progress; the run loop exits on its next pass.
		return state
	}

	var te *spooltag.TransportError
	if errors.As(err, &te) {
		c.logf("continuous %s aborted on channel %d: %v", state.State, state.Channel, err)
		next := Snapshot{State: StateIdle}
		c.publish(next)
		if c.callbacks.OnError != nil {
			c.callbacks.OnError(err)
		}
		return next
	}

	// No tag, auth failure, unknown status, malformed frame: log and keep
	// trying on the next tick.
	c.logf("channel %d: %v", state.Channel, err)
	return state
}

// publish records the new snapshot for State() and fires OnStatus
func (c *Controller) publish(snap Snapshot) {
	c.mu.Lock()
	c.snap = snap.clone()
	c.mu.Unlock()
	if c.callbacks.OnStatus != nil {
		c.callbacks.OnStatus(snap.clone())
	}
}

func (c *Controller) logf(format string, args ...any) {
	if c.callbacks.OnLog != nil {
		c.callbacks.OnLog(fmt.Sprintf(format, args...))
	}
}
