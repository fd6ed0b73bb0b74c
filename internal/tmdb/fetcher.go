package tmdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dbsmedya/scenestill/internal/logger"
	"github.com/dbsmedya/scenestill/internal/metrics"
)

// MovieGetter is the single call the fetcher needs from a client.
type MovieGetter interface {
	GetMovie(ctx context.Context, movieID string) (*Movie, error)
}

// Fetched pairs a requested ID with the movie TMDB returned for it.
type Fetched struct {
	ID    string
	Movie *Movie
}

// FetchStats summarizes one FetchAll run.
type FetchStats struct {
	Requested    int
	Fetched      int
	Unauthorized int
	Failed       int
}

// Fetcher walks movie IDs one at a time with a fixed pause between calls.
type Fetcher struct {
	client  MovieGetter
	delay   time.Duration
	log     *logger.Logger
	metrics *metrics.Recorder

	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time
}

// FetcherOption customizes a Fetcher.
type FetcherOption func(*Fetcher)

// WithMetrics records request outcomes into m.
func WithMetrics(m *metrics.Recorder) FetcherOption {
	return func(f *Fetcher) { f.metrics = m }
}

// WithSleep replaces the pause function, mainly for tests.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) FetcherOption {
	return func(f *Fetcher) { f.sleep = sleep }
}

// NewFetcher creates a Fetcher that waits delay after every request.
func NewFetcher(client MovieGetter, delay time.Duration, log *logger.Logger, opts ...FetcherOption) *Fetcher {
	if log == nil {
		log = logger.NewNop()
	}
	f := &Fetcher{
		client: client,
		delay:  delay,
		log:    log,
		sleep:  sleepContext,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchAll requests every ID in order and returns the movies that came back.
//
// Failed calls are logged and dropped; the run continues. The fixed delay
// follows every call, successful or not. If ctx is cancelled the movies
// fetched so far are returned together with ctx.Err().
func (f *Fetcher) FetchAll(ctx context.Context, ids []string) ([]Fetched, FetchStats, error) {
	stats := FetchStats{Requested: len(ids)}
	fetched := make([]Fetched, 0, len(ids))

	f.log.Infow("Fetching movie data from TMDB", "movies", len(ids))

	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			return fetched, stats, err
		}

		log := f.log.WithMovie(id)
		log.Infow("Fetching movie", "progress", fmt.Sprintf("[%d/%d]", i+1, len(ids)))

		start := f.now()
		movie, err := f.client.GetMovie(ctx, id)
		elapsed := f.now().Sub(start)

		if err != nil {
			f.metrics.ObserveFetch(outcomeOf(err), elapsed)
			if errors.Is(err, ErrUnauthorized) {
				stats.Unauthorized++
				log.Errorw("Invalid TMDB API key", "error", err)
			} else {
				stats.Failed++
				if code, ok := IsStatus(err); ok {
					log.Warnw("Could not fetch movie data", "status", code)
				} else {
					log.Warnw("Could not fetch movie data", "error", err)
				}
			}
		} else {
			f.metrics.ObserveFetch(metrics.OutcomeOK, elapsed)
			stats.Fetched++
			fetched = append(fetched, Fetched{ID: id, Movie: movie})
			log.Debugw("Fetched movie", "title", movie.Title, "release_date", movie.ReleaseDate)
		}

		if err := f.sleep(ctx, f.delay); err != nil {
			return fetched, stats, err
		}
	}

	f.log.Infow("Finished fetching movie data",
		"requested", stats.Requested,
		"fetched", stats.Fetched,
		"unauthorized", stats.Unauthorized,
		"failed", stats.Failed,
	)
	return fetched, stats, nil
}

func outcomeOf(err error) string {
	var de *DecodeError
	switch {
	case errors.Is(err, ErrUnauthorized):
		return metrics.OutcomeUnauthorized
	case IsNetwork(err):
		return metrics.OutcomeNetwork
	case errors.As(err, &de):
		return metrics.OutcomeDecode
	default:
		return metrics.OutcomeStatus
	}
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
