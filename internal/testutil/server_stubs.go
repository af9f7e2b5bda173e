package testutil

import (
	"context"
	"net/http"
	"sync"

	"github.com/preston-bernstein/league-standings-service/internal/poller"
)

// StubPoller counts lifecycle calls made by the server. StopErr and
// RefreshErr are returned verbatim.
type StubPoller struct {
	StopErr    error
	RefreshErr error
	StatusVal  poller.Status

	mu       sync.Mutex
	starts   int
	stops    int
	refreshs int
}

func (p *StubPoller) Start(context.Context) {
	p.mu.Lock()
	p.starts++
	p.mu.Unlock()
}

func (p *StubPoller) Stop(context.Context) error {
	p.mu.Lock()
	p.stops++
	p.mu.Unlock()
	return p.StopErr
}

func (p *StubPoller) Refresh(context.Context) error {
	p.mu.Lock()
	p.refreshs++
	p.mu.Unlock()
	return p.RefreshErr
}

func (p *StubPoller) Status() poller.Status { return p.StatusVal }

// Calls returns the Start, Stop and Refresh counts.
func (p *StubPoller) Calls() (starts, stops, refreshes int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.starts, p.stops, p.refreshs
}

// StubHTTPServer stands in for the listening server.
//
// ListenAndServe returns ListenErr immediately; use http.ErrServerClosed for
// a clean exit. When Unblock is non-nil, Shutdown waits for it to close or
// for ctx to expire.
type StubHTTPServer struct {
	AddrVal     string
	HandlerVal  http.Handler
	ListenErr   error
	ShutdownErr error
	Unblock     chan struct{}

	mu        sync.Mutex
	listens   int
	shutdowns int
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.mu.Lock()
	s.listens++
	s.mu.Unlock()
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.shutdowns++
	s.mu.Unlock()
	if s.Unblock == nil {
		return s.ShutdownErr
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.Unblock:
		return s.ShutdownErr
	}
}

func (s *StubHTTPServer) Addr() string {
	if s.AddrVal == "" {
		return ":0"
	}
	return s.AddrVal
}

func (s *StubHTTPServer) Handler() http.Handler {
	if s.HandlerVal == nil {
		return http.NotFoundHandler()
	}
	return s.HandlerVal
}

// Listens reports how many times ListenAndServe ran.
func (s *StubHTTPServer) Listens() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listens
}

// Shutdowns reports how many times Shutdown ran.
func (s *StubHTTPServer) Shutdowns() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shutdowns
}
