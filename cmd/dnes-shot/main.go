package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hexaflex/dnes/fault"
	"github.com/hexaflex/dnes/nes"
	"github.com/hexaflex/dnes/present"
	"github.com/hexaflex/dnes/romload"
	"github.com/hexaflex/dnes/sched"
)

func main() {
	config, err := parseArgs(os.Args[1:], os.Stderr)
	if err == nil {
		err = run(config)
	}

	if err != nil && !fault.Is(err, fault.Startup) {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(fault.ExitCode(err))
}

// run runs the configured number of frames and writes the last one.
func run(c *Config) error {
	rom, _, err := romload.Load(c.ROM)
	if err != nil {
		return err
	}

	n := nes.New()
	n.SetDrawOption(present.DrawOption(nes.ScreenWidth, nes.ScreenHeight, c.Scale, c.Format))

	var rec present.Recorder
	bridge, err := present.New(&rec, n.Sizes().Framebuffer, c.Format, c.Scale)
	if err != nil {
		return fault.Wrap(fault.Allocation, err, "presentation")
	}

	m, err := sched.New(n, sched.Config{
		Cooperative: c.SingleThread,
		Presenter:   bridge,
	})
	if err != nil {
		return err
	}

	var errs fault.ErrorSet
	errs.Append(runFrames(m, rom, c.Frames))
	errs.Append(m.Close())
	if err := errs.Err(); err != nil {
		return err
	}

	out, close, err := makeWriter(c)
	if err != nil {
		return err
	}

	defer close()
	return fault.Wrap(fault.IO, rec.WritePNG(out), "write %s", c.Output)
}

func runFrames(m *sched.Machine, rom []byte, frames int) error {
	if err := m.Load(rom); err != nil {
		return err
	}

	m.Start()

	for i := 0; i < frames; i++ {
		if err := m.Frame(); err != nil {
			return err
		}
	}

	return nil
}

// makeWriter creates an output writer and a cleanup function for it.
func makeWriter(c *Config) (io.Writer, func(), error) {
	if c.Output == "" {
		return os.Stdout, func() {}, nil
	}

	if dir, _ := filepath.Split(c.Output); dir != "" {
		if err := os.MkdirAll(dir, 0744); err != nil {
			return nil, nil, fault.Wrap(fault.IO, err, "create %s", dir)
		}
	}

	fd, err := os.Create(c.Output)
	if err != nil {
		return nil, nil, fault.Wrap(fault.IO, err, "create %s", c.Output)
	}

	return fd, func() { fd.Close() }, nil
}
