package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hexaflex/dnes/core"
	"github.com/hexaflex/dnes/fault"
)

func TestParseArgs(t *testing.T) {
	var out bytes.Buffer

	c, err := parseArgs([]string{"-frames", "5", "-format", "BGRA", "-scale", "1.5", "game.nes"}, &out)
	if err != nil {
		t.Fatal(err)
	}

	if c.ROM != "game.nes" || c.Frames != 5 || c.Format != core.BGRA8888 || c.Scale != 1.5 {
		t.Fatalf("have %+v", c)
	}
}

func TestParseArgsStartupErrors(t *testing.T) {
	tests := [][]string{
		{},
		{"-format", "yuv", "game.nes"},
		{"-frames", "0", "game.nes"},
		{"-scale", "0", "game.nes"},
		{"-nosuchflag", "game.nes"},
		{"-h"},
		{"-version"},
	}

	for _, args := range tests {
		var out bytes.Buffer

		_, err := parseArgs(args, &out)
		if !fault.Is(err, fault.Startup) {
			t.Fatalf("%q: want startup error; have %v", args, err)
		}

		if fault.ExitCode(err) != 0 {
			t.Fatalf("%q: want exit code 0; have %d", args, fault.ExitCode(err))
		}

		if out.Len() == 0 {
			t.Fatalf("%q: no usage or version output", args)
		}
	}
}

func TestParseArgsVersion(t *testing.T) {
	var out bytes.Buffer
	parseArgs([]string{"-version"}, &out)

	if !strings.Contains(out.String(), Version()) {
		t.Fatalf("have %q", out.String())
	}
}
