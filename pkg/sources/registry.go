package sources

import (
	"context"
	"sync"

	"github.com/steamtrack/steamtrack/pkg/logging"
)

// Registry is a thread-safe container for the set of registered providers.
// Registration order is preserved so fan-out behavior is deterministic.
type Registry struct {
	mu        sync.RWMutex
	order     []ID
	providers map[ID]Provider
}

// NewRegistry creates a registry with the given providers.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{
		providers: make(map[ID]Provider),
	}
	for _, p := range providers {
		r.Register(p)
	}
	return r
}

// Register adds a provider, replacing any existing provider with the same ID.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.providers[p.ID()]; !exists {
		r.order = append(r.order, p.ID())
	}
	r.providers[p.ID()] = p
}

// Get returns a provider by ID.
func (r *Registry) Get(id ID) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, found := r.providers[id]
	return p, found
}

// Len returns the number of registered providers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.providers)
}

// IDs returns the registered provider IDs in registration order.
func (r *Registry) IDs() []ID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]ID, len(r.order))
	copy(ids, r.order)
	return ids
}

// outcomeMsg carries one settled provider call back to the fan-out loop.
type outcomeMsg struct {
	id      ID
	outcome Outcome
}

// FanOut queries every registered provider concurrently for one game and
// returns only after all of them have settled. Each call is isolated: one
// provider's failure never cancels or blocks the others, and there are no
// retries at this layer. The returned bundle holds exactly one outcome per
// registered provider.
//
// The registry imposes no timeout of its own; callers needing bounded
// latency put a deadline on ctx or on the providers themselves.
func (r *Registry) FanOut(ctx context.Context, appID, name string) Bundle {
	r.mu.RLock()
	providers := make([]Provider, 0, len(r.order))
	for _, id := range r.order {
		providers = append(providers, r.providers[id])
	}
	r.mu.RUnlock()

	logger := logging.FromContext(ctx)
	logger.Debug().
		Str("app_id", appID).
		Int("provider_count", len(providers)).
		Msg("Fanning out to providers")

	var wg sync.WaitGroup
	results := make(chan outcomeMsg, len(providers))

	for _, provider := range providers {
		wg.Add(1)
		go func(p Provider) {
			defer wg.Done()
			results <- outcomeMsg{id: p.ID(), outcome: settle(ctx, p, appID, name)}
		}(provider)
	}

	wg.Wait()
	close(results)

	bundle := make(Bundle, len(providers))
	for msg := range results {
		bundle[msg.id] = msg.outcome
	}

	for id, o := range bundle {
		if o.Status == StatusFailed {
			logger.Debug().
				Err(o.Err).
				Str("provider_id", id.String()).
				Msg("Provider failed during fan-out")
		}
	}

	return bundle
}

// settle runs one provider call and converts every way it can go wrong,
// panics included, into a failed outcome.
func settle(ctx context.Context, p Provider, appID, name string) (out Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			out = Outcome{
				Status: StatusFailed,
				Err:    &panicError{provider: p.ID(), value: rec},
			}
		}
	}()

	payload, err := p.Fetch(ctx, appID, name)
	if err != nil {
		return Outcome{Status: StatusFailed, Err: err}
	}
	if payload == nil {
		return Outcome{Status: StatusFulfilled}
	}
	return Outcome{Status: StatusFulfilled, Payload: payload}
}

// panicError wraps a recovered provider panic as an ordinary failure.
type panicError struct {
	provider ID
	value    any
}

func (e *panicError) Error() string {
	return "provider " + e.provider.String() + " panicked during fetch"
}
