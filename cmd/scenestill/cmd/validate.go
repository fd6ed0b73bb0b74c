package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/scenestill/internal/logger"
	"github.com/dbsmedya/scenestill/internal/metrics"
	"github.com/dbsmedya/scenestill/internal/sitemap"
	"github.com/dbsmedya/scenestill/internal/summary"
)

// errValidationFailed is returned when the sitemap has structural issues.
var errValidationFailed = errors.New("sitemap has issues, please fix them before submitting")

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the generated sitemap before submission",
	Long: `Validate parses the sitemap at output.sitemap_path and checks every
<url> entry.

Checks performed:
  - XML well-formedness and the sitemaps.org urlset root
  - Missing and duplicate <loc> values
  - Absolute URL format
  - Priority between 0.0 and 1.0
  - Placeholder domain (warning only)

Issues exit with status 1. Warnings alone do not fail validation.

Example:
  scenestill validate --config scenestill.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := cfg.ValidateForValidator(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	log = log.WithCommand("validate")

	out := newPrinter(cmd)
	out.Banner("🔍 Sitemap Validator")

	path := cfg.Output.SitemapPath
	log.Infow("Reading sitemap", "path", path)

	report, err := sitemap.ValidateFile(path, sitemap.Options{
		PlaceholderDomain: cfg.Validation.PlaceholderDomain,
	})
	if err != nil {
		if errors.Is(err, sitemap.ErrSitemapNotFound) {
			return fmt.Errorf("%w (run generate first)", err)
		}
		return err
	}

	log.Infow("Validation finished",
		"urls", report.Total,
		"unique", report.Unique,
		"issues", len(report.Issues),
		"warnings", len(report.Warnings))

	if cfg.Metrics.TextfilePath != "" {
		recorder := metrics.New()
		recorder.SetFindings("urls", report.Total)
		recorder.SetFindings("unique", report.Unique)
		recorder.SetFindings("issues", len(report.Issues))
		recorder.SetFindings("warnings", len(report.Warnings))
		recorder.MarkRun(time.Now())
		if err := recorder.WriteTextfile(cfg.Metrics.TextfilePath); err != nil {
			log.Warnw("Could not write metrics", "error", err)
		}
	}

	printReport(out, report, cfg.Validation.MaxIssues, cfg.Validation.MaxWarnings)

	if !report.Passed() {
		return errValidationFailed
	}
	return nil
}

func printReport(out *summary.Printer, report *sitemap.Report, maxIssues, maxWarnings int) {
	out.Success("Valid XML structure")
	out.Success("Found %d URL entries", report.Total)
	out.Line("")

	out.Table("📊 Validation Results:", []summary.Row{
		{Label: "Total URLs", Value: report.Total},
		{Label: "Unique URLs", Value: report.Unique},
		{Label: "Issues found", Value: len(report.Issues)},
		{Label: "Warnings", Value: len(report.Warnings)},
	})

	issues, moreIssues := sitemap.Truncate(report.Issues, maxIssues)
	out.Bullets("❌ Issues Found:", color.Red, findingStrings(issues), moreIssues)

	warnings, moreWarnings := sitemap.Truncate(report.Warnings, maxWarnings)
	out.Bullets("⚠️  Warnings:", color.Yellow, findingStrings(warnings), moreWarnings)

	switch {
	case report.Clean():
		out.Success("Sitemap is valid and ready to submit!")
		out.Line("")
		out.Steps("📝 Next Steps:", []string{
			"Submit to Google Search Console",
			"Submit to Bing Webmaster Tools",
		})
	case report.Passed():
		out.Success("Sitemap structure is valid")
		out.Warn("Please address warnings before submitting")
	default:
		out.Fail("Please fix issues before submitting")
	}
}

func findingStrings(findings []sitemap.Finding) []string {
	items := make([]string, len(findings))
	for i, f := range findings {
		items[i] = f.String()
	}
	return items
}
