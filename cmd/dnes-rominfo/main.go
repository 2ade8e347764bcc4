package main

import (
	"fmt"
	"io"
	"os"

	"github.com/hexaflex/dnes/arena"
	"github.com/hexaflex/dnes/fault"
	"github.com/hexaflex/dnes/nes"
	"github.com/hexaflex/dnes/romload"
)

func main() {
	config, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(fault.ExitCode(err))
	}

	var errs fault.ErrorSet
	for _, file := range config.Inputs {
		errs.Append(inspect(os.Stdout, file))
	}

	if config.Layout {
		errs.Append(printLayout(os.Stdout))
	}

	if err := errs.Err(); err != nil {
		fmt.Fprint(os.Stderr, err)
		os.Exit(fault.ExitCode(errs[0]))
	}
}

// inspect prints the iNES header of a single ROM.
func inspect(w io.Writer, file string) error {
	rom, name, err := romload.Load(file)
	if err != nil {
		return err
	}

	cart, err := nes.ParseCartridge(rom)
	if err != nil {
		return fault.Wrap(fault.Load, err, "%s", file)
	}

	h := cart.Header
	fmt.Fprintf(w, "%s", file)
	if name != "" && name != file {
		fmt.Fprintf(w, " (%s)", name)
	}
	fmt.Fprintf(w, ": %d bytes\n", len(rom))
	fmt.Fprintf(w, "  format     %v\n", h.Format)
	fmt.Fprintf(w, "  mapper     %d %s\n", h.Mapper, nes.MapperName(h.Mapper))
	fmt.Fprintf(w, "  mirroring  %v\n", h.Mirroring)
	fmt.Fprintf(w, "  prg        %d KiB\n", h.PRGSize/1024)
	fmt.Fprintf(w, "  chr        %d KiB\n", h.CHRSize/1024)
	fmt.Fprintf(w, "  battery    %v\n", h.Battery)
	fmt.Fprintf(w, "  trainer    %v\n", h.Trainer)
	return nil
}

// printLayout allocates the arena for an unscaled core and prints
// the region it assigns to each kind of state.
func printLayout(w io.Writer) error {
	a, err := arena.New(nes.New().Sizes(), 0)
	if err != nil {
		return err
	}

	defer a.Free()

	fmt.Fprintf(w, "arena: %d bytes\n", a.Len())
	for _, k := range []arena.Kind{arena.Framebuffer, arena.Processor, arena.System, arena.Picture} {
		r := a.Region(k)
		fmt.Fprintf(w, "  %-12v %#08x %8d bytes\n", k, r.Offset(), r.Len())
	}

	return nil
}
