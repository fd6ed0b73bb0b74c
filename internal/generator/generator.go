// Package generator wires the catalog, metadata fetcher, people registry
// and sitemap writer into the generate pipeline.
package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/dbsmedya/scenestill/internal/catalog"
	"github.com/dbsmedya/scenestill/internal/config"
	"github.com/dbsmedya/scenestill/internal/logger"
	"github.com/dbsmedya/scenestill/internal/metrics"
	"github.com/dbsmedya/scenestill/internal/people"
	"github.com/dbsmedya/scenestill/internal/sitemap"
	"github.com/dbsmedya/scenestill/internal/tmdb"
)

// Source names where people came from.
type Source string

const (
	SourceTMDB    Source = "tmdb"
	SourceCatalog Source = "catalog"
)

// Result summarizes one generate run.
type Result struct {
	Rows       int
	MovieIDs   []string // IDs read from the catalog
	Movies     []string // IDs listed in the sitemap
	People     []people.Person
	Source     Source
	FetchStats tmdb.FetchStats
	Sitemap    *sitemap.Sitemap
	OutputPath string
}

// StaticCount is the number of fixed pages.
func (r *Result) StaticCount() int { return len(r.Sitemap.Static) }

// FilmCount is the number of film pages.
func (r *Result) FilmCount() int { return len(r.Sitemap.Films) }

// PeopleCount is the number of person pages.
func (r *Result) PeopleCount() int { return len(r.Sitemap.People) }

// TotalCount is 4 + films + people.
func (r *Result) TotalCount() int { return r.Sitemap.Len() }

// Generator runs the generate pipeline once per Run call.
type Generator struct {
	cfg     *config.Config
	log     *logger.Logger
	metrics *metrics.Recorder
	client  tmdb.MovieGetter

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// Option customizes a Generator.
type Option func(*Generator)

// WithClient replaces the TMDB client, e.g. with a stub.
func WithClient(c tmdb.MovieGetter) Option {
	return func(g *Generator) { g.client = c }
}

// WithMetrics records run metrics into m.
func WithMetrics(m *metrics.Recorder) Option {
	return func(g *Generator) { g.metrics = m }
}

// WithClock fixes the run date.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithSleep replaces the pause between requests.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(g *Generator) { g.sleep = sleep }
}

// New creates a Generator from configuration.
func New(cfg *config.Config, log *logger.Logger, opts ...Option) *Generator {
	if log == nil {
		log = logger.NewNop()
	}
	g := &Generator{
		cfg: cfg,
		log: log,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.client == nil {
		client := tmdb.NewClient(cfg.TMDB.BaseURL, cfg.TMDB.APIKey, seconds(cfg.TMDB.TimeoutSeconds))
		log.Debugw("TMDB client configured", "base_url", cfg.TMDB.BaseURL, "timeout", client.Timeout())
		g.client = client
	}
	return g
}

// Run reads the catalog, collects people, and writes the sitemap.
//
// A missing catalog fails before any request is sent. Individual fetch
// failures drop that movie; write failures are fatal.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	csvPath := g.cfg.Input.CSVPath

	if err := catalog.Exists(csvPath); err != nil {
		return nil, err
	}

	g.log.Infow("Reading catalog", "path", csvPath)
	rows, err := catalog.ReadRows(csvPath)
	if err != nil {
		return nil, err
	}

	ids := catalog.MovieIDs(rows, g.cfg.Input.IDColumn)
	g.log.Infow("Catalog loaded", "rows", len(rows), "movies_with_ids", len(ids))

	result := &Result{
		Rows:       len(rows),
		MovieIDs:   ids,
		OutputPath: g.cfg.Output.SitemapPath,
	}
	registry := people.NewRegistry()

	if g.cfg.TMDB.Enabled && len(ids) > 0 {
		result.Source = SourceTMDB
		opts := []tmdb.FetcherOption{tmdb.WithMetrics(g.metrics)}
		if g.sleep != nil {
			opts = append(opts, tmdb.WithSleep(g.sleep))
		}
		fetcher := tmdb.NewFetcher(g.client, seconds(g.cfg.Fetch.DelaySeconds), g.log, opts...)

		fetched, stats, err := fetcher.FetchAll(ctx, ids)
		result.FetchStats = stats
		if err != nil {
			return nil, fmt.Errorf("fetch interrupted: %w", err)
		}

		// Movies only appear in the sitemap when TMDB knew them
		for _, f := range fetched {
			result.Movies = append(result.Movies, f.ID)
			registry.AddCredits(f.Movie, g.cfg.Fetch.CastLimit)
		}
	} else {
		result.Source = SourceCatalog
		result.Movies = ids
		for _, row := range rows {
			if row.Value(g.cfg.Input.IDColumn) == "" {
				continue
			}
			registry.AddCatalogRow(row)
		}
		g.log.Infow("Using catalog data only (no TMDB integration)")
	}

	result.People = registry.People()
	g.log.Infow("Collected people", "unique", registry.Len(), "by_role", registry.CountByRole())

	runAt := g.now()
	result.Sitemap = sitemap.Build(g.cfg.Site.BaseURL, runAt, result.Movies, result.People)

	data, err := sitemap.Marshal(result.Sitemap)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sitemap: %w", err)
	}
	if err := sitemap.WriteFile(result.OutputPath, data); err != nil {
		return nil, err
	}
	g.log.Infow("Sitemap written", "path", result.OutputPath, "urls", result.TotalCount(), "bytes", len(data))

	g.metrics.SetSitemapURLs("static", result.StaticCount())
	g.metrics.SetSitemapURLs("films", result.FilmCount())
	g.metrics.SetSitemapURLs("people", result.PeopleCount())
	g.metrics.MarkRun(runAt)
	if err := g.metrics.WriteTextfile(g.cfg.Metrics.TextfilePath); err != nil {
		g.log.Warnw("Could not write metrics", "error", err)
	}

	return result, nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
