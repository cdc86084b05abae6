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

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig holds defaults loaded from an optional YAML config file.
// Command-line flags override anything set here.
type fileConfig struct {
	Port       string `yaml:"port"`
	Baud       int    `yaml:"baud"`
	Channel    *int   `yaml:"channel"`
	IntervalMS int    `yaml:"interval_ms"`
	SettleMS   int    `yaml:"settle_ms"`
	Retries    int    `yaml:"retries"`
	Debug      bool   `yaml:"debug"`
}

func loadFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}
