package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/hexaflex/dnes/core"
	"github.com/hexaflex/dnes/fault"
)

// Config defines program configuration.
type Config struct {
	ROM          string           // ROM image or archive to run.
	Output       string           // Output PNG file. Leave empty for stdout.
	Frames       int              // Number of frames to run.
	Scale        float64          // Picture scale factor.
	Format       core.PixelFormat // Framebuffer pixel layout.
	SingleThread bool             // Run the picture unit inline with the processor.
}

var formats = map[string]core.PixelFormat{
	"rgba": core.RGBA8888,
	"bgra": core.BGRA8888,
	"argb": core.ARGB8888,
}

// parseArgs parses command line arguments.
//
// Usage and version output go to out. Requests for either, as well as bad
// arguments, yield a fault.Startup error.
func parseArgs(args []string, out io.Writer) (*Config, error) {
	c := Config{
		Frames: 60,
		Scale:  1,
	}

	fs := flag.NewFlagSet("dnes-shot", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprintf(out, "%s [options] <rom file>\n", fs.Name())
		fs.PrintDefaults()
	}

	format := "rgba"
	fs.StringVar(&c.Output, "out", c.Output, "PNG file to write the last frame to. Leave empty to use stdout.")
	fs.IntVar(&c.Frames, "frames", c.Frames, "Number of frames to run.")
	fs.Float64Var(&c.Scale, "scale", c.Scale, "Picture scale factor.")
	fs.StringVar(&format, "format", format, "Framebuffer pixel layout: rgba, bgra or argb.")
	fs.BoolVar(&c.SingleThread, "single-thread", c.SingleThread, "Step the picture unit inline with the processor.")
	version := fs.Bool("version", false, "Display version information.")

	if err := fs.Parse(args); err != nil {
		return nil, fault.Wrap(fault.Startup, err, "invalid arguments")
	}

	if *version {
		fmt.Fprintln(out, Version())
		return nil, fault.New(fault.Startup, "version requested")
	}

	var ok bool
	c.Format, ok = formats[strings.ToLower(format)]

	var err error
	switch {
	case fs.NArg() == 0:
		err = fault.New(fault.Startup, "missing rom file")
	case !ok:
		err = fault.New(fault.Startup, "unknown pixel format %q", format)
	case c.Frames < 1:
		err = fault.New(fault.Startup, "invalid frame count %d", c.Frames)
	case c.Scale <= 0:
		err = fault.New(fault.Startup, "invalid scale factor %v", c.Scale)
	}

	if err != nil {
		fs.Usage()
		return nil, err
	}

	c.ROM = fs.Arg(0)
	return &c, nil
}

// Version returns program version information.
func Version() string {
	return "hexaflex dnes-shot v0.4.0"
}
