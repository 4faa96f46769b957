// Package watchproc coordinates the watch pipeline: it starts the chain height
// tracker before the wallet monitors so the first notifications already carry
// a tip height, and shuts both down together.
package watchproc

import (
	"context"
	"errors"
	"sync"

	"github.com/gabapcia/walletsentry/internal/chainwatch"
	"github.com/gabapcia/walletsentry/internal/walletwatch"
)

// ErrServiceAlreadyStarted is returned if Start is called more than once.
//
// The service must be started only once per lifecycle.
var ErrServiceAlreadyStarted = errors.New("service already started")

// Service defines the watchproc lifecycle.
type Service interface {
	// Start launches the height tracker and then the wallet monitors.
	//
	// Returns ErrServiceAlreadyStarted if Start is called more than once.
	// Call Close to shut down all background routines.
	Start(ctx context.Context) error

	// Close stops the wallet monitors and the height tracker.
	// It is safe to call Close even if the service was never started.
	Close()
}

// closeFunc defines a cleanup routine to stop background goroutines and dependencies.
type closeFunc func()

type service struct {
	mu        sync.Mutex // protects lifecycle state
	isStarted bool       // ensures Start is called only once
	closeFunc closeFunc  // cancels context and cleans up dependencies

	chainwatch  chainwatch.Service  // tip height tracker
	walletwatch walletwatch.Service // per-wallet monitors
}

// Compile-time check to ensure *service implements the Service interface.
var _ Service = new(service)

// Start starts chainwatch, then walletwatch. If walletwatch fails to start,
// chainwatch is closed again.
func (s *service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isStarted {
		return ErrServiceAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)

	if err := s.chainwatch.Start(ctx); err != nil {
		cancel()
		return err
	}

	if err := s.walletwatch.Start(ctx); err != nil {
		s.chainwatch.Close()
		cancel()
		return err
	}

	s.closeFunc = func() {
		s.walletwatch.Close()
		s.chainwatch.Close()
		cancel()
	}
	s.isStarted = true
	return nil
}

// Close shuts down all processing routines and dependencies.
func (s *service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closeFunc != nil {
		s.closeFunc()
	}

	s.closeFunc = nil
	s.isStarted = false
}

// New creates a new instance of the watchproc service.
func New(c chainwatch.Service, w walletwatch.Service) *service {
	return &service{
		chainwatch:  c,
		walletwatch: w,
	}
}
