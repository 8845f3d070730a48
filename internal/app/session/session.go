package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"schooladmin/internal/domain/payroll"
	"schooladmin/internal/domain/roster"
)

const (
	ViewCurrent  = "current"
	ViewBaseline = "baseline"
)

var ErrUnknownView = errors.New("unknown roster view")

// Session owns one roster and one payroll engine. The baseline is the roster as
// loaded and never changes; promotions apply to the current roster only.
type Session struct {
	ID        string
	CreatedAt time.Time
	ExpiresAt time.Time

	mu       sync.Mutex
	baseline *roster.Store
	current  *roster.Store
	payroll  *payroll.Engine
}

func newSession(id string, now time.Time, ttl time.Duration, store *roster.Store, engine *payroll.Engine) *Session {
	return &Session{
		ID:        id,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
		baseline:  store.Clone(),
		current:   store,
		payroll:   engine,
	}
}

func (s *Session) view(name string) (*roster.Store, error) {
	switch name {
	case "", ViewCurrent:
		return s.current, nil
	case ViewBaseline:
		return s.baseline, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, name)
	}
}

// Stats aggregates the named roster view.
func (s *Session) Stats(view string) (roster.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	store, err := s.view(view)
	if err != nil {
		return roster.Stats{}, err
	}
	return store.AggregateStatistics(), nil
}

func (s *Session) ClassTable(view string) ([]roster.ClassTableRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	store, err := s.view(view)
	if err != nil {
		return nil, err
	}
	return store.ClassTable(), nil
}

func (s *Session) StudentTable(view string) ([]roster.StudentTableRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	store, err := s.view(view)
	if err != nil {
		return nil, err
	}
	return store.StudentTable(), nil
}

// Promote advances the current roster by one grade.
func (s *Session) Promote() (roster.PromotionReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	report := s.current.PromoteAll()
	if err := s.current.Verify(); err != nil {
		return report, err
	}
	return report, nil
}

// Payroll returns the snapshot rows and their totals.
func (s *Session) Payroll() ([]payroll.Row, payroll.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// snapshot requires s.mu.
func (s *Session) snapshot() ([]payroll.Row, payroll.Summary, error) {
	rows, err := s.payroll.Snapshot()
	if err != nil {
		return nil, payroll.Summary{}, err
	}
	return rows, payroll.Summarize(rows), nil
}

// SetBonus applies bonus to every employee and returns the new snapshot.
func (s *Session) SetBonus(bonus float64) ([]payroll.Row, payroll.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.payroll.SetBonus(bonus); err != nil {
		return nil, payroll.Summary{}, err
	}
	return s.snapshot()
}
