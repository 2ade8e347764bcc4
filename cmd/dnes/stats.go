package main

import (
	"log"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

const (
	statsAddress = "localhost:12600"
	statsPath    = "/debug/statsview"
)

// launchStats serves runtime statistics in the background.
func launchStats() {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(statsAddress))
		mgr := statsview.New()
		mgr.Start()
	}()

	log.Printf("stats server available at http://%s%s", statsAddress, statsPath)
}
