package main

import (
	"log"
	"os"
	"runtime"

	"github.com/hexaflex/dnes/fault"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	err := run(os.Args[1:])
	if err != nil && !fault.Is(err, fault.Startup) {
		log.Println(err)
	}
	os.Exit(fault.ExitCode(err))
}

func run(args []string) error {
	config, err := parseArgs(args, os.Stdout)
	if err != nil {
		return err
	}

	app, err := NewApp(config)
	if err != nil {
		return err
	}

	return app.Run()
}
