package sched

import "time"

// Pacer blocks the processor agent until the next frame is due.
type Pacer interface {
	Wait()
	Stop()
}

// tickPacer paces frames off a ticker. Missed ticks are dropped, so a slow
// frame does not cause a burst of catch-up frames.
type tickPacer struct {
	ticker *time.Ticker
}

// NewPacer returns a pacer for the given frame rate. A rate <= 0 disables
// pacing and yields nil.
func NewPacer(fps int) Pacer {
	if fps <= 0 {
		return nil
	}
	return &tickPacer{
		ticker: time.NewTicker(time.Second / time.Duration(fps)),
	}
}

func (p *tickPacer) Wait() {
	<-p.ticker.C
}

func (p *tickPacer) Stop() {
	p.ticker.Stop()
}
