package main

import (
	"flag"
	"fmt"
	"io"
	"math"

	"github.com/hexaflex/dnes/arena"
	"github.com/hexaflex/dnes/fault"
)

// Config defines program configuration.
type Config struct {
	ROM          string  // Path to the ROM image or archive.
	Scale        float64 // Window scale factor. Fractional values are scaled on the host.
	FPS          int     // Target frame rate. 0 runs unthrottled.
	SingleThread bool    // Run the picture unit inline with the processor.
	Player2      bool    // Bind the second keyboard cluster to player 2.
	Fullscreen   bool    // Run in fullscreen?
	StatsView    bool    // Serve runtime statistics over HTTP.
	MaxArena     int     // Arena ceiling in bytes.
}

// parseArgs parses command line arguments.
//
// Usage and version output go to out. Requests for either, as well as bad
// arguments, yield a fault.Startup error.
func parseArgs(args []string, out io.Writer) (*Config, error) {
	c := Config{
		Scale:    2,
		FPS:      60,
		MaxArena: arena.DefaultLimit,
	}

	fs := flag.NewFlagSet(AppName, flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprintf(out, "%s [options] <rom file>\n", AppName)
		fs.PrintDefaults()
	}

	fs.Float64Var(&c.Scale, "scale", c.Scale, "Window scale factor.")
	fs.IntVar(&c.FPS, "fps", c.FPS, "Target frame rate. 0 disables pacing.")
	fs.BoolVar(&c.SingleThread, "single-thread", c.SingleThread, "Step the picture unit inline with the processor.")
	fs.BoolVar(&c.Player2, "player2", c.Player2, "Bind the WASD key cluster to the second controller.")
	fs.BoolVar(&c.Fullscreen, "fullscreen", c.Fullscreen, "Run the display in fullscreen or windowed mode.")
	fs.BoolVar(&c.StatsView, "statsview", c.StatsView, "Serve runtime statistics at "+statsAddress+statsPath+".")
	fs.IntVar(&c.MaxArena, "max-arena", c.MaxArena, "Upper bound for emulator state memory in bytes.")
	version := fs.Bool("version", false, "Display version information.")

	if err := fs.Parse(args); err != nil {
		return nil, fault.Wrap(fault.Startup, err, "invalid arguments")
	}

	if *version {
		fmt.Fprintln(out, Version())
		return nil, fault.New(fault.Startup, "version requested")
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return nil, fault.New(fault.Startup, "missing rom file")
	}

	if c.Scale <= 0 || math.IsInf(c.Scale, 0) || math.IsNaN(c.Scale) {
		fs.Usage()
		return nil, fault.New(fault.Startup, "invalid scale factor %v", c.Scale)
	}

	if c.FPS < 0 {
		fs.Usage()
		return nil, fault.New(fault.Startup, "invalid frame rate %d", c.FPS)
	}

	c.ROM = fs.Arg(0)
	return &c, nil
}
