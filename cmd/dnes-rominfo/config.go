package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/hexaflex/dnes/fault"
)

// Config defines program configuration.
type Config struct {
	Inputs []string // ROM images or archives to inspect.
	Layout bool     // Print the arena layout.
}

// parseArgs parses command line arguments.
//
// Usage and version output go to out. Requests for either, as well as bad
// arguments, yield a fault.Startup error.
func parseArgs(args []string, out io.Writer) (*Config, error) {
	c := Config{Layout: true}

	fs := flag.NewFlagSet("dnes-rominfo", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprintf(out, "%s [options] <rom files>\n", fs.Name())
		fs.PrintDefaults()
	}

	fs.BoolVar(&c.Layout, "layout", c.Layout, "Print the arena layout the core requests.")
	version := fs.Bool("version", false, "Display version information.")

	if err := fs.Parse(args); err != nil {
		return nil, fault.Wrap(fault.Startup, err, "invalid arguments")
	}

	if *version {
		fmt.Fprintln(out, "hexaflex dnes-rominfo v0.4.0")
		return nil, fault.New(fault.Startup, "version requested")
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return nil, fault.New(fault.Startup, "missing rom file")
	}

	c.Inputs = fs.Args()
	return &c, nil
}
