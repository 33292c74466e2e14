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

// Package player plays a decoded CLIM stream in a terminal: it fetches
// clusters ahead of a clock, paces frames to the file's inter-frame
// interval, and drives the external audio subprocess alongside.
package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/climformat/go-clim"
)

// FrameSource is the slice of the decoder the player drives.
// *clim.Decoder satisfies it.
type FrameSource interface {
	Info() clim.StandardFormatInfo
	NextClusterFrames() ([]clim.Frame, error)
	SeekToFrame(target int) (bool, error)
	AudioSidecarPath() string
}

// Options configures a Player. Zero values select stdout, the standard
// logger, a 2-second buffer, and the default audio command.
type Options struct {
	Out           io.Writer
	Log           *logrus.Logger
	Loop          bool
	BufferSeconds int
	AudioCommand  []string
}

// Player schedules frame rendering from a FrameSource.
type Player struct {
	src      FrameSource
	out      io.Writer
	log      *logrus.Entry
	renderer *Renderer
	audio    *Audio

	frameTime time.Duration
	threshold int
	loop      bool

	buffer    []clim.Frame
	exhausted bool
}

// New creates a Player over a decoder.
func New(src FrameSource, opts Options) *Player {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	if opts.BufferSeconds <= 0 {
		opts.BufferSeconds = 2
	}

	info := src.Info()
	log := opts.Log.WithField("component", "player")

	// Keep at least BufferSeconds worth of frames decoded ahead.
	threshold := 1
	if info.MillisecondsBetweenFrames > 0 {
		threshold = opts.BufferSeconds * 1000 / int(info.MillisecondsBetweenFrames)
		if threshold < 1 {
			threshold = 1
		}
	}

	return &Player{
		src:       src,
		out:       opts.Out,
		log:       log,
		renderer:  NewRenderer(int(info.Width), int(info.Height)),
		audio:     NewAudio(src.AudioSidecarPath(), opts.AudioCommand, log),
		frameTime: time.Duration(info.MillisecondsBetweenFrames) * time.Millisecond,
		threshold: threshold,
		loop:      opts.Loop,
	}
}

// Play renders the whole stream, restarting from frame 0 while looping is
// enabled. It returns when the stream ends, the context is canceled, or an
// error surfaces from decoding or the terminal.
func (p *Player) Play(ctx context.Context) error {
	p.probeAudio()

	for {
		if err := p.playThrough(ctx); err != nil {
			return err
		}
		if !p.loop || ctx.Err() != nil {
			return ctx.Err()
		}

		ok, err := p.src.SeekToFrame(0)
		if err != nil {
			return fmt.Errorf("rewind: %w", err)
		}
		if !ok {
			return nil // empty stream, nothing to loop over
		}
	}
}

// playThrough plays the stream once from the source's current position.
func (p *Player) playThrough(ctx context.Context) error {
	p.buffer = p.buffer[:0]
	p.exhausted = false

	// Populate the initial buffer up to two thresholds before starting the
	// clock, so early clusters cannot stall the first frames.
	for !p.exhausted && len(p.buffer) <= 2*p.threshold {
		if err := p.fetch(); err != nil {
			return err
		}
	}

	if err := p.audio.Start(); err != nil {
		p.log.WithError(err).Warn("audio unavailable, continuing without it")
	}
	defer p.audio.Stop()

	target := time.Now()
	for len(p.buffer) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		frame := p.buffer[0]
		p.buffer = p.buffer[1:]

		if _, err := io.WriteString(p.out, cursorHome); err != nil {
			return fmt.Errorf("write frame: %w", err)
		}
		if _, err := io.WriteString(p.out, p.renderer.RenderFrame(frame)); err != nil {
			return fmt.Errorf("write frame: %w", err)
		}

		// Pace against absolute target times so one slow frame does not
		// shift every later frame.
		target = target.Add(p.frameTime)
		if err := sleepUntil(ctx, target); err != nil {
			return err
		}

		if !p.exhausted && len(p.buffer) <= p.threshold {
			if err := p.fetch(); err != nil {
				return err
			}
		}
	}

	return nil
}

// fetch appends the next cluster's frames to the buffer, marking the source
// exhausted at end of stream.
func (p *Player) fetch() error {
	frames, err := p.src.NextClusterFrames()
	if errors.Is(err, io.EOF) {
		p.exhausted = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("fetch cluster: %w", err)
	}
	p.buffer = append(p.buffer, frames...)
	return nil
}

// probeAudio logs what is known about the sidecar before playback starts.
func (p *Player) probeAudio() {
	path := p.src.AudioSidecarPath()
	if path == "" {
		return
	}

	info, err := ProbeSidecar(path)
	if err != nil {
		p.log.WithError(err).Debug("audio sidecar probe failed")
		return
	}
	if info == nil {
		return // opaque payload, nothing to report
	}

	p.log.WithFields(logrus.Fields{
		"sample_rate": info.SampleRate,
		"duration":    info.Duration,
	}).Info("FLAC audio sidecar")

	videoLen := p.frameTime * time.Duration(totalFrames(p.src))
	if videoLen > 0 && info.Duration > 0 {
		diff := videoLen - info.Duration
		if diff < 0 {
			diff = -diff
		}
		if diff > time.Second {
			p.log.WithFields(logrus.Fields{
				"video": videoLen,
				"audio": info.Duration,
			}).Warn("audio and video lengths diverge")
		}
	}
}

// totalFrames asks the source for its frame count when it can answer.
func totalFrames(src FrameSource) int {
	type counter interface{ TotalFrames() int }
	if c, ok := src.(counter); ok {
		return c.TotalFrames()
	}
	return 0
}

// sleepUntil waits for the target instant or context cancellation.
func sleepUntil(ctx context.Context, target time.Time) error {
	wait := time.Until(target)
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
