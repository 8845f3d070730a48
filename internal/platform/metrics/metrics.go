package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	rateLimited     uint64
	totalDurationMs uint64

	sessionsOpened  uint64
	studentsDropped uint64
	promotions      uint64
	graduated       uint64
	payrollRuns     uint64
	bonusRejected   uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 429 {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// SessionOpened counts a new session and the students dropped while loading its roster.
func (c *Collector) SessionOpened(dropped int) {
	atomic.AddUint64(&c.sessionsOpened, 1)
	atomic.AddUint64(&c.studentsDropped, uint64(dropped))
}

func (c *Collector) Promoted(graduatedClasses int) {
	atomic.AddUint64(&c.promotions, 1)
	atomic.AddUint64(&c.graduated, uint64(graduatedClasses))
}

func (c *Collector) PayrollRun() {
	atomic.AddUint64(&c.payrollRuns, 1)
}

func (c *Collector) BonusRejected() {
	atomic.AddUint64(&c.bonusRejected, 1)
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	limited := atomic.LoadUint64(&c.rateLimited)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":         total,
		"errorsTotal":           errs,
		"rateLimitedTotal":      limited,
		"avgDurationMs":         avg,
		"totalDurationMs":       totalMs,
		"sessionsOpenedTotal":   atomic.LoadUint64(&c.sessionsOpened),
		"studentsDroppedTotal":  atomic.LoadUint64(&c.studentsDropped),
		"promotionsTotal":       atomic.LoadUint64(&c.promotions),
		"classesGraduatedTotal": atomic.LoadUint64(&c.graduated),
		"payrollRunsTotal":      atomic.LoadUint64(&c.payrollRuns),
		"bonusRejectedTotal":    atomic.LoadUint64(&c.bonusRejected),
	}
}
