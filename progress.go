package embednet

import (
	"log"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Progress reports the number of processed pairs to a logger, at most once
// per interval. A nil *Progress discards all updates.
type Progress struct {
	logger    *log.Logger
	label     string
	total     atomic.Int64
	done      atomic.Int64
	sometimes rate.Sometimes
}

// NewProgress returns a reporter that logs with the given label. It returns
// nil when the interval is not positive or logger is nil.
func NewProgress(logger *log.Logger, label string, interval time.Duration) *Progress {
	if logger == nil || interval <= 0 {
		return nil
	}

	return &Progress{
		logger:    logger,
		label:     label,
		sometimes: rate.Sometimes{Interval: interval},
	}
}

// Start resets the reporter for a run of total pairs.
func (p *Progress) Start(total int64) {
	if p == nil {
		return
	}

	p.total.Store(total)
	p.done.Store(0)
}

// Add records n processed pairs. It is safe for concurrent use.
func (p *Progress) Add(n int64) {
	if p == nil {
		return
	}

	p.done.Add(n)
	p.sometimes.Do(p.report)
}

// Finish logs the final count.
func (p *Progress) Finish() {
	if p == nil {
		return
	}

	p.report()
}

// Done returns the number of pairs processed so far.
func (p *Progress) Done() int64 {
	if p == nil {
		return 0
	}

	return p.done.Load()
}

func (p *Progress) report() {
	done, total := p.done.Load(), p.total.Load()

	pct := 100.0
	if total > 0 {
		pct = 100 * float64(done) / float64(total)
	}

	p.logger.Printf("%s: %d/%d pairs (%.1f%%)", p.label, done, total, pct)
}
