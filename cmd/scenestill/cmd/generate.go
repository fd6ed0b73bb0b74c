package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/scenestill/internal/generator"
	"github.com/dbsmedya/scenestill/internal/logger"
	"github.com/dbsmedya/scenestill/internal/metrics"
	"github.com/dbsmedya/scenestill/internal/summary"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate sitemap.xml from the movie catalog",
	Long: `Generate reads the movie catalog CSV, looks up each movie on TMDB and
writes a sitemap with the static pages, one page per film and one page
per unique director, cinematographer and top-billed actor.

Movies TMDB cannot return are left out of the sitemap. With tmdb.enabled
set to false the people come from the catalog's Director,
Cinematographer and Cast columns instead.

The TMDB API key is read from tmdb.api_key or SCENESTILL_TMDB_API_KEY.

Example:
  scenestill generate --config scenestill.yaml`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Initialize logger
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	log = log.WithCommand("generate")

	ctx, cancel := signalContext(cmd.Context(), func(sig os.Signal) {
		log.Warnw("Received signal, stopping before the sitemap is written", "signal", sig.String())
	})
	defer cancel()

	out := newPrinter(cmd)
	out.Banner("🎬 Scene Still Sitemap Generator")

	var recorder *metrics.Recorder
	if cfg.Metrics.TextfilePath != "" {
		recorder = metrics.New()
	}

	result, err := generator.New(cfg, log, generator.WithMetrics(recorder)).Run(ctx)
	if err != nil {
		return fmt.Errorf("error generating sitemap: %w", err)
	}

	printGenerateSummary(out, result)
	return nil
}

func printGenerateSummary(out *summary.Printer, result *generator.Result) {
	out.Success("Found %d entries in CSV, %d movies with IDs", result.Rows, len(result.MovieIDs))
	if result.Source == generator.SourceTMDB {
		out.Success("Fetched %d movies from TMDB", result.FetchStats.Fetched)
		if skipped := result.FetchStats.Unauthorized + result.FetchStats.Failed; skipped > 0 {
			out.Warn("Skipped %d movies TMDB could not return", skipped)
		}
	} else {
		out.Line("ℹ️  Using CSV data only (no TMDB integration)")
	}
	out.Success("Found %d unique people", len(result.People))
	out.Success("Sitemap generated: %s", result.OutputPath)
	out.Line("")

	out.Table("📊 Summary:", []summary.Row{
		{Label: "Static pages", Value: result.StaticCount()},
		{Label: "Film pages", Value: result.FilmCount()},
		{Label: "People pages", Value: result.PeopleCount()},
		{Label: "Total URLs", Value: result.TotalCount()},
	})

	reminders := []string{"Submit " + result.OutputPath + " to Google Search Console"}
	if result.Source != generator.SourceTMDB {
		reminders = append(reminders, "Add your TMDB API key to fetch people data")
	}
	out.Steps("⚠️  Remember to:", reminders)
	out.Line("✨ Done!")
}
