package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/askdocs-labs/askdoc-cli/internal/core/domain"
	"github.com/askdocs-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/askdocs-labs/askdoc-cli/internal/core/ports/driving"
	"github.com/askdocs-labs/askdoc-cli/internal/logger"
)

// DefaultPollInterval is the ingestion status query interval.
const DefaultPollInterval = 2 * time.Second

// Ensure StatusPoller implements the interface.
var _ driving.StatusWatcher = (*StatusPoller)(nil)

// StatusPoller queries ingestion job status at a fixed interval until a
// terminal state or cancellation.
//
// The watches map enforces at most one live watch per job identifier:
// starting a new watch for a job cancels the prior one before the new
// goroutine begins ticking.
type StatusPoller struct {
	registry driven.DocumentRegistry
	gateway  driven.Gateway
	state    driven.StateStore
	interval time.Duration

	mu      sync.Mutex
	watches map[string]*watch
	wg      sync.WaitGroup
}

// watch is one live poll loop. closing stop is idempotent via once.
type watch struct {
	stop chan struct{}
	once sync.Once
}

func (w *watch) cancel() {
	w.once.Do(func() { close(w.stop) })
}

// NewStatusPoller creates a poller. A non-positive interval falls back
// to DefaultPollInterval. state may be nil to disable persistence.
func NewStatusPoller(
	registry driven.DocumentRegistry,
	gateway driven.Gateway,
	state driven.StateStore,
	interval time.Duration,
) *StatusPoller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &StatusPoller{
		registry: registry,
		gateway:  gateway,
		state:    state,
		interval: interval,
		watches:  make(map[string]*watch),
	}
}

// Watch starts polling jobID, applying updates to the record under
// documentID. Any prior watch for the same job is cancelled first.
func (p *StatusPoller) Watch(
	ctx context.Context, session domain.UserSession, jobID, documentID string,
) driving.CancelFunc {
	w := &watch{stop: make(chan struct{})}

	p.mu.Lock()
	if prior, ok := p.watches[jobID]; ok {
		prior.cancel()
	}
	p.watches[jobID] = w
	p.mu.Unlock()

	p.wg.Add(1)
	go p.run(ctx, session, jobID, documentID, w)

	return func() {
		w.cancel()
		p.forget(jobID, w)
	}
}

// Stop cancels all live watches and waits for their goroutines.
func (p *StatusPoller) Stop() {
	p.mu.Lock()
	for _, w := range p.watches {
		w.cancel()
	}
	p.watches = make(map[string]*watch)
	p.mu.Unlock()

	p.wg.Wait()
}

// run is one poll loop. It exits on cancellation, context end, a
// terminal server report, or a transport error (fail-fast, no retry).
func (p *StatusPoller) run(
	ctx context.Context, session domain.UserSession, jobID, documentID string, w *watch,
) {
	defer p.wg.Done()
	defer p.forget(jobID, w)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		case <-ticker.C:
			status, err := p.gateway.JobStatus(ctx, session, jobID)
			if err != nil {
				// Fail fast: the record is marked Error rather
				// than left dangling in Processing forever.
				logger.Warn("poll %s: %v", jobID, err)
				p.transition(ctx, documentID, domain.StatusError, 0)
				return
			}

			switch status.State {
			case driven.JobCompleted:
				p.transition(ctx, documentID, domain.StatusReady, 100)
				return
			case driven.JobFailed:
				p.transition(ctx, documentID, domain.StatusError, 0)
				return
			default:
				// Intermediate: update progress only when the
				// server supplied one, never regress it.
				if status.Progress != nil {
					_ = p.registry.UpdateProgress(ctx, documentID, *status.Progress)
				}
			}
		}
	}
}

// transition applies a terminal status. A domain.ErrStateConflict means
// the record was deleted while the poll was in flight; the update drops
// silently and nothing resurrects the record.
func (p *StatusPoller) transition(
	ctx context.Context, documentID string, status domain.DocumentStatus, progress int,
) {
	if err := p.registry.UpdateStatus(ctx, documentID, status, progress); err != nil {
		if !errors.Is(err, domain.ErrStateConflict) {
			logger.Warn("update %s: %v", documentID, err)
		}
		return
	}
	p.persist(ctx)
}

// forget removes the watch entry if it is still the live one for jobID.
func (p *StatusPoller) forget(jobID string, w *watch) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.watches[jobID] == w {
		delete(p.watches, jobID)
	}
}

// persist flushes the registry snapshot to durable storage.
func (p *StatusPoller) persist(ctx context.Context) {
	if p.state == nil {
		return
	}
	recs, err := p.registry.List(ctx)
	if err != nil {
		return
	}
	if err := p.state.SaveDocuments(ctx, recs); err != nil {
		logger.Warn("persist documents: %v", err)
	}
}
