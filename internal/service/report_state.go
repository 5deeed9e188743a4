package service

import (
	"sync"

	"github.com/blaisecz/sleep-monitor/internal/domain"
)

// reportState holds the shared current report. Refreshes are never coalesced:
// whichever refresh finishes last wins, replacing the pointer wholesale.
type reportState struct {
	mu     sync.RWMutex
	report *domain.AggregateReport
}

func newReportState() *reportState {
	return &reportState{}
}

func (s *reportState) current() *domain.AggregateReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

func (s *reportState) replace(report *domain.AggregateReport) {
	s.mu.Lock()
	s.report = report
	s.mu.Unlock()
}
