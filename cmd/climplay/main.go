// Copyright (c) 2025 The go-clim Authors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of go-clim.
//
// go-clim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-clim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-clim.  If not, see <https://www.gnu.org/licenses/>.

// Command climplay plays CLIM videos in a 24-bit color terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/climformat/go-clim"
	"github.com/climformat/go-clim/archive"
	"github.com/climformat/go-clim/player"
)

var (
	inputFile  = flag.String("i", "", "input file path (required); .clim, archived (.zip/.7z/.rar), or compressed (.gz/.xz/.zst)")
	configFile = flag.String("config", "", "path to a YAML player config")
	audioDir   = flag.String("audio-dir", "", "folder for extracted audio sidecars (overrides config)")
	loop       = flag.Bool("loop", false, "restart playback when the video ends")
	seekFrame  = flag.Int("seek", 0, "start playback at the cluster containing this frame")
	infoOnly   = flag.Bool("info", false, "print video information and exit")
	verbose    = flag.Bool("v", false, "verbose logging")
	version    = flag.Bool("version", false, "print version and exit")
)

const appVersion = "0.1.0"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -i <file> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Plays CLIM videos in a terminal with 24-bit color support.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -i movie.clim\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -i movies.zip -loop\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -i movie.clim.zst -seek 120\n", os.Args[0])
	}
	flag.Parse()

	if *version {
		fmt.Printf("climplay version %s\n", appVersion)
		os.Exit(0)
	}

	if *inputFile == "" {
		fmt.Fprintf(os.Stderr, "Error: input file required (-i)\n")
		flag.Usage()
		os.Exit(1)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if err := run(log); err != nil {
		log.WithError(err).Error("playback failed")
		os.Exit(1)
	}
}

func run(log *logrus.Logger) error {
	cfg := player.DefaultConfig()
	if *configFile != "" {
		loaded, err := player.LoadConfig(*configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *audioDir != "" {
		cfg.AudioDir = *audioDir
	}
	if *loop {
		cfg.Loop = true
	}

	source, size, closer, err := archive.OpenCLIM(*inputFile)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	dec, err := clim.OpenReaderAt(source, size, cfg.AudioDir)
	if err != nil {
		return err
	}
	defer func() { _ = dec.Close() }()

	if *infoOnly {
		printInfo(dec)
		return nil
	}

	if *seekFrame > 0 {
		ok, err := dec.SeekToFrame(*seekFrame)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("frame %d is out of range (file has %d frames)",
				*seekFrame, dec.TotalFrames())
		}
		log.WithFields(logrus.Fields{
			"frame":   *seekFrame,
			"cluster": dec.ClusterStartingFrame(),
		}).Debug("seeked")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := player.New(dec, player.Options{
		Log:           log,
		Loop:          cfg.Loop,
		BufferSeconds: cfg.BufferSeconds,
		AudioCommand:  cfg.AudioPlayerCommand,
	})
	if err := p.Play(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func printInfo(dec *clim.Decoder) {
	info := dec.Info()
	fmt.Printf("Resolution: %dx%d\n", info.Width, info.Height)
	fmt.Printf("Frame interval: %d ms (%.2f fps)\n",
		info.MillisecondsBetweenFrames, info.FPS())
	fmt.Printf("Frames: %d\n", dec.TotalFrames())
	fmt.Printf("Clusters: %d\n", dec.TotalClusters())
	fmt.Printf("Audio offset: %d\n", info.AudioStartOffset)
	fmt.Printf("Audio sidecar: %s\n", dec.AudioSidecarPath())
}
