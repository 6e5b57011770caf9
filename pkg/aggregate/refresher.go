package aggregate

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/steamtrack/steamtrack/pkg/constants"
	"github.com/steamtrack/steamtrack/pkg/errors"
	"github.com/steamtrack/steamtrack/pkg/logging"
	"github.com/steamtrack/steamtrack/pkg/sources"
	"github.com/steamtrack/steamtrack/pkg/types"
)

// Refresher periodically re-reads the live player count for one record.
// Only that counter changes between ticks; every other reconciled field is
// carried over untouched, so a refresh can never perturb price or review
// data mid-session.
type Refresher struct {
	provider sources.Provider
	interval time.Duration
}

// RefresherOption configures a Refresher.
type RefresherOption func(*Refresher)

// WithInterval overrides the refresh cadence.
func WithInterval(d time.Duration) RefresherOption {
	return func(r *Refresher) {
		r.interval = d
	}
}

// NewRefresher creates a Refresher backed by the live player-count source.
func NewRefresher(provider sources.Provider, opts ...RefresherOption) *Refresher {
	r := &Refresher{
		provider: provider,
		interval: constants.LiveRefreshInterval,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Refresh fetches the current player count once and returns a copy of the
// record with only that counter replaced.
func (r *Refresher) Refresh(ctx context.Context, record types.GameRecord) (types.GameRecord, error) {
	raw, err := r.provider.Fetch(ctx, record.AppID, record.Name)
	if err != nil {
		return record, err
	}
	count, ok := raw.(*sources.PlayerCount)
	if !ok || count == nil {
		return record, errors.NewParseError("payload", record.AppID, "unexpected player count payload", nil)
	}
	return record.WithLivePlayers(count.Count), nil
}

// Run refreshes on the configured cadence until the context is canceled,
// handing each refreshed copy to emit. Transient provider failures are
// logged and the loop keeps the previous count.
func (r *Refresher) Run(ctx context.Context, record types.GameRecord, emit func(types.GameRecord)) {
	logger := logging.FromContext(ctx)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			refreshed, err := r.Refresh(ctx, record)
			if err != nil {
				if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
					return
				}
				logger.Warn().Err(err).Str("app_id", record.AppID).Msg("live count refresh failed")
				continue
			}
			record = refreshed
			emit(record)
		case <-ctx.Done():
			return
		}
	}
}
