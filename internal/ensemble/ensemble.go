// Package ensemble fans a single text out to every configured embedding
// backend and joins the per-backend vectors. A failing backend is logged
// and omitted; the ensemble only errors when no backend produced a vector.
package ensemble

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/quaero-ai/quaero/models"
)

// Backend is the embedding capability the ensemble fans out to.
type Backend interface {
	Name() string
	Embed(ctx context.Context, text string) (models.Vector, error)
}

// Ensemble wraps N independent embedding backends.
type Ensemble struct {
	backends []Backend
	timeout  time.Duration
	logger   *log.Logger
}

// New creates an ensemble over the given backends. timeout bounds each
// backend call; zero means 10s.
func New(backends []Backend, timeout time.Duration) *Ensemble {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Ensemble{
		backends: backends,
		timeout:  timeout,
		logger:   log.New(log.Writer(), "[ENSEMBLE] ", log.LstdFlags),
	}
}

// Backends returns the configured backend names in registration order.
func (e *Ensemble) Backends() []string {
	names := make([]string, len(e.backends))
	for i, b := range e.backends {
		names[i] = b.Name()
	}
	return names
}

// Embed calls every backend concurrently and returns the vectors keyed by
// backend name. Partial results are acceptable; if all backends fail the
// returned error carries the last failure.
func (e *Ensemble) Embed(ctx context.Context, text string) (map[string]models.Vector, error) {
	if len(e.backends) == 0 {
		return nil, fmt.Errorf("no embedding backends configured")
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		vectors = make(map[string]models.Vector, len(e.backends))
		lastErr error
	)

	for _, b := range e.backends {
		wg.Add(1)
		go func(b Backend) {
			defer wg.Done()
			callCtx, cancel := context.WithTimeout(ctx, e.timeout)
			defer cancel()

			vec, err := b.Embed(callCtx, text)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				e.logger.Printf("backend %s failed: %v", b.Name(), err)
				lastErr = err
				return
			}
			vectors[b.Name()] = vec
		}(b)
	}
	wg.Wait()

	if len(vectors) == 0 {
		return nil, fmt.Errorf("all embedding backends failed: %w", lastErr)
	}
	return vectors, nil
}
