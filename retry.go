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
	"context"
	"fmt"
	"time"
)

// RetryConfig configures the opt-in retry helper. The session layer never
// retries on its own; callers that want retries wrap their operation in
// RetryWithConfig.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts, including the first
	MaxAttempts int
	// InitialBackoff is the delay before the second attempt
	InitialBackoff time.Duration
	// MaxBackoff caps the delay between attempts
	MaxBackoff time.Duration
	// BackoffMultiplier scales the delay after each failed attempt
	BackoffMultiplier float64
}

// DefaultRetryConfig returns a conservative retry configuration
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:       3,
		InitialBackoff:    100 * time.Millisecond,
		MaxBackoff:        1 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// RetryWithConfig runs operation until it succeeds, returns a non-retryable
// error, exhausts the configured attempts, or the context is cancelled.
// Only errors classified retryable by IsRetryable are retried; device-status
// outcomes like ErrNoTag propagate immediately.
func RetryWithConfig(ctx context.Context, config *RetryConfig, operation func() error) error {
	if config == nil {
		config = DefaultRetryConfig()
	}

	backoff := config.InitialBackoff
	var lastErr error

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("retry aborted: %w", err)
		}

		lastErr = operation()
		if lastErr == nil {
			return nil
		}
		if !IsRetryable(lastErr) {
			return lastErr
		}
		if attempt == config.MaxAttempts {
			break
		}

		debugf("attempt %d/%d failed (%v), backing off %v", attempt, config.MaxAttempts, lastErr, backoff)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		case <-timer.C:
		}

		backoff = time.Duration(float64(backoff) * config.BackoffMultiplier)
		if backoff > config.MaxBackoff {
			backoff = config.MaxBackoff
		}
	}

	return fmt.Errorf("all %d attempts failed: %w", config.MaxAttempts, lastErr)
}
