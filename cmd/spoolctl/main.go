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

// spoolctl reads and writes filament spool tags through a multi-channel
// RFID reader on a serial port.
//
// One-shot:
//
//	spoolctl -port /dev/ttyUSB0 -channel 0 -mode read
//	spoolctl -port /dev/ttyUSB0 -channel 2 -mode write -material PLA -color White
//
// Continuous (until interrupted):
//
//	spoolctl -port /dev/ttyUSB0 -channel 0 -mode monitor
//	spoolctl -port /dev/ttyUSB0 -channel 2 -mode monitor-write -material PLA
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	spooltag "github.com/filament-tools/go-spooltag"
	"github.com/filament-tools/go-spooltag/polling"
	"github.com/filament-tools/go-spooltag/transport/uart"
	"github.com/sirupsen/logrus"
)

type config struct {
	configPath *string
	port       *string
	baud       *int
	channel    *int
	mode       *string
	interval   *time.Duration
	settle     *time.Duration
	retries    *int
	debug      *bool

	// Record fields for write modes
	tagVersion   *uint
	manufacturer *string
	material     *string
	color        *string
	diameter     *uint
	weight       *uint
	printTemp    *uint
	bedTemp      *uint
	density      *uint
}

func parseFlags() *config {
	cfg := &config{
		configPath: flag.String("config", "", "Optional YAML config file with connection defaults"),
		port:       flag.String("port", "", "Serial device path (e.g., /dev/ttyUSB0 or COM3)"),
		baud:       flag.Int("baud", uart.DefaultBaudRate, "Serial baud rate"),
		channel:    flag.Int("channel", 0, "Antenna channel (0-7)"),
		mode:       flag.String("mode", "read", "Operation: read, write, monitor, monitor-write"),
		interval:   flag.Duration("interval", 500*time.Millisecond, "Tick interval for monitor modes"),
		settle:     flag.Duration("settle", 300*time.Millisecond, "Device settle delay after each command"),
		retries:    flag.Int("retries", 1, "Attempts for one-shot operations (retries transport faults only)"),
		debug:      flag.Bool("debug", false, "Enable debug output"),

		tagVersion:   flag.Uint("tag-version", 1000, "Record layout version to write"),
		manufacturer: flag.String("manufacturer", "", "Filament manufacturer (max 16 chars)"),
		material:     flag.String("material", "", "Material name (max 16 chars)"),
		color:        flag.String("color", "", "Color name (max 32 chars)"),
		diameter:     flag.Uint("diameter", 1750, "Target diameter in micrometers"),
		weight:       flag.Uint("weight", 1000, "Nominal weight in grams"),
		printTemp:    flag.Uint("print-temp", 210, "Print temperature in degrees C"),
		bedTemp:      flag.Uint("bed-temp", 60, "Bed temperature in degrees C"),
		density:      flag.Uint("density", 1240, "Density in micrograms per cm3"),
	}
	flag.Parse()
	return cfg
}

// applyFileConfig fills in defaults from the YAML file for flags the user
// did not set explicitly.
func applyFileConfig(cfg *config, fc *fileConfig) {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["port"] && fc.Port != "" {
		*cfg.port = fc.Port
	}
	if !set["baud"] && fc.Baud > 0 {
		*cfg.baud = fc.Baud
	}
	if !set["channel"] && fc.Channel != nil {
		*cfg.channel = *fc.Channel
	}
	if !set["interval"] && fc.IntervalMS > 0 {
		*cfg.interval = time.Duration(fc.IntervalMS) * time.Millisecond
	}
	if !set["settle"] && fc.SettleMS > 0 {
		*cfg.settle = time.Duration(fc.SettleMS) * time.Millisecond
	}
	if !set["retries"] && fc.Retries > 0 {
		*cfg.retries = fc.Retries
	}
	if !set["debug"] && fc.Debug {
		*cfg.debug = true
	}
}

func recordFromFlags(cfg *config) *spooltag.TagRecord {
	return &spooltag.TagRecord{
		TagVersion:     uint16(*cfg.tagVersion),
		Manufacturer:   *cfg.manufacturer,
		MaterialName:   *cfg.material,
		ColorName:      *cfg.color,
		DiameterTarget: uint16(*cfg.diameter),
		WeightNominal:  uint16(*cfg.weight),
		PrintTemp:      uint16(*cfg.printTemp),
		BedTemp:        uint16(*cfg.bedTemp),
		Density:        uint16(*cfg.density),
	}
}

func main() {
	cfg := parseFlags()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if *cfg.configPath != "" {
		fc, err := loadFileConfig(*cfg.configPath)
		if err != nil {
			log.WithError(err).Fatal("could not load config file")
		}
		applyFileConfig(cfg, fc)
	}

	if *cfg.debug {
		log.SetLevel(logrus.DebugLevel)
		spooltag.SetDebugEnabled(true)
	}
	if *cfg.port == "" {
		log.Fatal("no serial port given (use -port or a config file)")
	}

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("operation failed")
	}
}

func run(cfg *config, log *logrus.Logger) error {
	transport, err := uart.New(*cfg.port, uart.WithBaudRate(*cfg.baud))
	if err != nil {
		return err
	}

	device, err := spooltag.New(transport, spooltag.WithSettleDelay(*cfg.settle))
	if err != nil {
		_ = transport.Close()
		return err
	}

	log.WithFields(logrus.Fields{
		"port": *cfg.port,
		"baud": *cfg.baud,
	}).Info("connected to reader")

	switch *cfg.mode {
	case "read":
		defer closeDevice(device, log)
		return oneShotRead(cfg, device, log)
	case "write":
		defer closeDevice(device, log)
		return oneShotWrite(cfg, device, log)
	case "monitor", "monitor-write":
		return monitor(cfg, device, log)
	default:
		_ = device.Close()
		return fmt.Errorf("unknown mode %q", *cfg.mode)
	}
}

func closeDevice(device *spooltag.Device, log *logrus.Logger) {
	if err := device.Close(); err != nil {
		log.WithError(err).Warn("error closing device")
	}
}

func oneShotRead(cfg *config, device *spooltag.Device, log *logrus.Logger) error {
	retry := &spooltag.RetryConfig{
		MaxAttempts:       *cfg.retries,
		InitialBackoff:    100 * time.Millisecond,
		MaxBackoff:        time.Second,
		BackoffMultiplier: 2.0,
	}

	var rec *spooltag.TagRecord
	err := spooltag.RetryWithConfig(context.Background(), retry, func() error {
		var readErr error
		rec, readErr = device.ReadTag(context.Background(), *cfg.channel)
		return readErr
	})
	if err != nil {
		if errors.Is(err, spooltag.ErrNoTag) {
			log.WithField("channel", *cfg.channel).Warn("no tag on channel")
			return nil
		}
		return err
	}

	printRecord(rec)
	return nil
}

func oneShotWrite(cfg *config, device *spooltag.Device, log *logrus.Logger) error {
	rec := recordFromFlags(cfg)
	if err := device.WriteTag(context.Background(), *cfg.channel, rec); err != nil {
		return err
	}
	log.WithField("channel", *cfg.channel).Info("tag written")
	return nil
}

func monitor(cfg *config, device *spooltag.Device, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	controller := polling.NewController(device,
		&polling.Config{TickInterval: *cfg.interval, StopTimeout: 5 * time.Second},
		polling.Callbacks{
			OnData: func(channel int, rec *spooltag.TagRecord) {
				log.WithField("channel", channel).Info("tag read")
				printRecord(rec)
			},
			OnStatus: func(snap polling.Snapshot) {
				log.WithFields(logrus.Fields{
					"state":   snap.State.String(),
					"channel": snap.Channel,
				}).Info("state changed")
			},
			OnError: func(err error) {
				log.WithError(err).Error("continuous action aborted")
				stop()
			},
			OnLog: func(msg string) {
				log.Debug(msg)
			},
		})

	if err := controller.Start(ctx); err != nil {
		_ = device.Close()
		return err
	}

	var err error
	if *cfg.mode == "monitor-write" {
		err = controller.StartContinuousWrite(*cfg.channel, recordFromFlags(cfg))
	} else {
		err = controller.StartContinuousRead(*cfg.channel)
	}
	if err != nil {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = controller.Close(closeCtx)
		return err
	}

	<-ctx.Done()
	log.Info("shutting down")

	closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return controller.Close(closeCtx)
}

func printRecord(rec *spooltag.TagRecord) {
	fmt.Printf("  Tag version:  %d\n", rec.TagVersion)
	fmt.Printf("  Manufacturer: %s\n", rec.Manufacturer)
	fmt.Printf("  Material:     %s\n", rec.MaterialName)
	fmt.Printf("  Color:        %s\n", rec.ColorName)
	fmt.Printf("  Diameter:     %.2f mm\n", float64(rec.DiameterTarget)/1000)
	fmt.Printf("  Weight:       %d g\n", rec.WeightNominal)
	fmt.Printf("  Print temp:   %d C\n", rec.PrintTemp)
	fmt.Printf("  Bed temp:     %d C\n", rec.BedTemp)
	fmt.Printf("  Density:      %.2f g/cm3\n", float64(rec.Density)/1000)
}
