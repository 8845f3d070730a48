package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	JobSessionSweep = "session_sweep"
	JobRosterReport = "roster_report"
)

const historySize = 32

// Run records the outcome of one job execution.
type Run struct {
	Type       string    `json:"type"`
	Status     string    `json:"status"`
	Details    any       `json:"details,omitempty"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

type Service struct {
	queue chan job

	mu      sync.Mutex
	history []Run
}

type job struct {
	Type string
	Run  func(context.Context) (any, error)
}

func New() *Service {
	return &Service{queue: make(chan job, 128)}
}

// Start runs the queue worker until ctx is done.
func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
}

func (s *Service) Enqueue(jobType string, run func(context.Context) (any, error)) {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
	default:
		slog.Warn("job queue full", "jobType", jobType)
	}
}

func (s *Service) RunNow(ctx context.Context, jobType string, run func(context.Context) (any, error)) (any, error) {
	return s.runJob(ctx, job{Type: jobType, Run: run})
}

// Every enqueues run on each tick of interval until ctx is done.
func (s *Service) Every(ctx context.Context, jobType string, interval time.Duration, run func(context.Context) (any, error)) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Enqueue(jobType, run)
			}
		}
	}()
}

// History returns the most recent runs, oldest first.
func (s *Service) History() []Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Run, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	run := Run{Type: j.Type, Status: "completed", StartedAt: time.Now()}
	details, err := j.Run(ctx)
	run.FinishedAt = time.Now()
	run.Details = details
	if err != nil {
		run.Status = "failed"
		run.Error = err.Error()
	}

	s.mu.Lock()
	s.history = append(s.history, run)
	if len(s.history) > historySize {
		s.history = s.history[len(s.history)-historySize:]
	}
	s.mu.Unlock()
	return details, err
}
