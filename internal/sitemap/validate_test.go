package sitemap

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func urlset(entries ...string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
		`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` +
		strings.Join(entries, "") +
		`</urlset>`
}

func entry(loc, priority string) string {
	s := "<url><loc>" + loc + "</loc><lastmod>2026-10-19</lastmod><changefreq>monthly</changefreq>"
	if priority != "" {
		s += "<priority>" + priority + "</priority>"
	}
	return s + "</url>"
}

func validate(t *testing.T, doc string) *Report {
	t.Helper()
	report, err := Validate(strings.NewReader(doc), DefaultOptions())
	require.NoError(t, err)
	return report
}

func TestValidateClean(t *testing.T) {
	report := validate(t, urlset(
		entry("https://scenestill.com/", "1.0"),
		entry("https://scenestill.com/about", "0.8"),
	))

	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 2, report.Unique)
	assert.True(t, report.Passed())
	assert.True(t, report.Clean())
}

func TestValidateDuplicateReportedOnce(t *testing.T) {
	report := validate(t, urlset(
		entry("https://scenestill.com/film.html?id=603", "0.9"),
		entry("https://scenestill.com/film.html?id=603", "0.9"),
	))

	require.Len(t, report.Issues, 1)
	assert.Equal(t, 2, report.Issues[0].Index)
	assert.Equal(t, "URL #2: Duplicate URL: https://scenestill.com/film.html?id=603", report.Issues[0].String())
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.Unique)
	assert.False(t, report.Passed())
}

func TestValidateMissingLoc(t *testing.T) {
	report := validate(t, urlset(
		"<url><priority>5</priority></url>",
		entry("https://scenestill.com/", ""),
	))

	// Remaining checks are skipped for an entry without <loc>
	require.Len(t, report.Issues, 1)
	assert.Equal(t, "URL #1: Missing <loc> element", report.Issues[0].String())
	assert.Equal(t, 1, report.Unique)
}

func TestValidateInvalidURLs(t *testing.T) {
	report := validate(t, urlset(
		entry("/relative/path", ""),
		entry("scenestill.com/about", ""),
		entry("https://", ""),
		entry("", ""),
		entry("https://scenestill.com/ok", ""),
	))

	require.Len(t, report.Issues, 4)
	for i, issue := range report.Issues {
		assert.Equal(t, i+1, issue.Index)
		assert.Contains(t, issue.Message, "Invalid URL format")
	}
}

func TestValidateURLNeedsOnlySchemeAndHost(t *testing.T) {
	report := validate(t, urlset(
		entry("https://exa mple.com/", ""),
		entry("https://scenestill.com/%zz", ""),
		entry("https://scenestill.com/person.html?name=Lana Wachowski", ""),
		entry("ftp://files.scenestill.com", ""),
		entry("1https://scenestill.com/", ""),
		entry("https:/scenestill.com/", ""),
		entry("https://?q=1", ""),
		entry("scenestill.com:443/about", ""),
	))

	require.Len(t, report.Issues, 4)
	for i, issue := range report.Issues {
		assert.Equal(t, i+5, issue.Index)
		assert.Contains(t, issue.Message, "Invalid URL format")
	}
}

func TestValidatePlaceholderIsWarning(t *testing.T) {
	report := validate(t, urlset(entry("https://yourdomain.com/film.html?id=1", "0.9")))

	assert.True(t, report.Passed())
	assert.False(t, report.Clean())
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, `URL #1: Contains placeholder domain "yourdomain.com"`, report.Warnings[0].String())
}

func TestValidatePlaceholderDisabled(t *testing.T) {
	doc := urlset(entry("https://yourdomain.com/", "0.9"))
	report, err := Validate(strings.NewReader(doc), Options{})
	require.NoError(t, err)
	assert.Empty(t, report.Warnings)
}

func TestValidatePriorityBoundaries(t *testing.T) {
	tests := []struct {
		priority string
		issue    string
	}{
		{"0.0", ""},
		{"1.0", ""},
		{"0.5", ""},
		{" 0.3 ", ""},
		{"1", ""},
		{"-0.01", "Priority must be between 0.0 and 1.0"},
		{"1.01", "Priority must be between 0.0 and 1.0"},
		{"NaN", "Priority must be between 0.0 and 1.0"},
		{"0_5", "Priority must be between 0.0 and 1.0"},
		{"0.2_5", ""},
		{"high", "Invalid priority value"},
		{"", "Invalid priority value"},
		{"0x1p-1", "Invalid priority value"},
		{"-0X0p0", "Invalid priority value"},
		{"_0.5", "Invalid priority value"},
		{"0.5_", "Invalid priority value"},
		{"0__5", "Invalid priority value"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.priority), func(t *testing.T) {
			doc := urlset("<url><loc>https://scenestill.com/</loc><priority>" + tt.priority + "</priority></url>")
			report := validate(t, doc)
			if tt.issue == "" {
				assert.Empty(t, report.Issues)
				return
			}
			require.Len(t, report.Issues, 1)
			assert.Equal(t, tt.issue, report.Issues[0].Message)
		})
	}
}

func TestValidateChangeFreqAndLastModWarnings(t *testing.T) {
	report := validate(t, urlset(
		"<url><loc>https://scenestill.com/a</loc><changefreq>sometimes</changefreq></url>",
		"<url><loc>https://scenestill.com/b</loc><lastmod>19/10/2026</lastmod></url>",
		"<url><loc>https://scenestill.com/c</loc><lastmod>2026-10-19T10:00:00+02:00</lastmod></url>",
		"<url><loc>https://scenestill.com/d</loc><lastmod>2026-10-19T10:00+02:00</lastmod></url>",
	))

	assert.True(t, report.Passed())
	require.Len(t, report.Warnings, 2)
	assert.Contains(t, report.Warnings[0].String(), `URL #1: Unknown changefreq value "sometimes"`)
	assert.Contains(t, report.Warnings[1].String(), `URL #2: Invalid lastmod value "19/10/2026"`)
}

func TestValidateIgnoresOtherNamespaces(t *testing.T) {
	doc := `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9" xmlns:x="urn:other">` +
		`<x:url><x:loc>not a url</x:loc></x:url>` +
		entry("https://scenestill.com/", "0.5") +
		`</urlset>`
	report := validate(t, doc)
	assert.Equal(t, 1, report.Total)
	assert.True(t, report.Passed())
}

func TestValidateWrongRoot(t *testing.T) {
	report := validate(t, `<urlset><url><loc>https://scenestill.com/</loc></url></urlset>`)

	// Entries outside the namespace are not counted
	assert.Equal(t, 0, report.Total)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, 0, report.Issues[0].Index)
	assert.Contains(t, report.Issues[0].String(), "Root element must be <urlset>")

	report = validate(t, `<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"></sitemapindex>`)
	require.Len(t, report.Issues, 1)
	assert.Contains(t, report.Issues[0].Message, "got <sitemapindex>")
}

func TestValidateMalformedXML(t *testing.T) {
	docs := []string{
		"",
		"not xml at all",
		`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"><url><loc>x</url></urlset>`,
		`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"></urlset><extra/>`,
	}

	for _, doc := range docs {
		_, err := Validate(strings.NewReader(doc), DefaultOptions())
		require.Error(t, err, doc)

		var pe *ParseError
		assert.True(t, errors.As(err, &pe), doc)
		assert.Contains(t, err.Error(), "XML parse error")
	}
}

func TestValidateGzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(urlset(entry("https://scenestill.com/", "1.0"))))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	report, err := Validate(&buf, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Total)
	assert.True(t, report.Clean())
}

func TestValidateCharset(t *testing.T) {
	// "é" in ISO-8859-1 is the single byte 0xE9
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>" +
		`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` +
		"<url><loc>https://scenestill.com/caf\xe9</loc></url></urlset>"

	report := validate(t, doc)
	assert.Equal(t, 1, report.Total)
	assert.True(t, report.Passed())
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()

	_, err := ValidateFile(filepath.Join(dir, "missing.xml"), DefaultOptions())
	assert.ErrorIs(t, err, ErrSitemapNotFound)

	path := filepath.Join(dir, "sitemap.xml")
	require.NoError(t, os.WriteFile(path, []byte(urlset(entry("https://scenestill.com/", "1.0"))), 0644))
	report, err := ValidateFile(path, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Total)
}

func TestTruncate(t *testing.T) {
	var findings []Finding
	for i := 1; i <= 12; i++ {
		findings = append(findings, Finding{Index: i, Message: "x"})
	}

	shown, more := Truncate(findings, 10)
	assert.Len(t, shown, 10)
	assert.Equal(t, 2, more)

	shown, more = Truncate(findings[:3], 5)
	assert.Len(t, shown, 3)
	assert.Equal(t, 0, more)
}
