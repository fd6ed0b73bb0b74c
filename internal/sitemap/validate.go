package sitemap

import (
	"bufio"
	"compress/gzip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
)

// ErrSitemapNotFound is returned when the sitemap file does not exist.
var ErrSitemapNotFound = errors.New("sitemap file not found")

// ParseError means the input is not well-formed XML.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("XML parse error: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Finding is one issue or warning about the entry at Index (1-based).
// Index 0 refers to the document as a whole.
type Finding struct {
	Index   int
	Message string
}

func (f Finding) String() string {
	if f.Index == 0 {
		return f.Message
	}
	return fmt.Sprintf("URL #%d: %s", f.Index, f.Message)
}

// Report is the outcome of validating one sitemap.
type Report struct {
	Total    int
	Unique   int
	Issues   []Finding
	Warnings []Finding
}

// Passed is true when there are no issues. Warnings never fail a sitemap.
func (r *Report) Passed() bool {
	return len(r.Issues) == 0
}

// Clean is true when there are neither issues nor warnings.
func (r *Report) Clean() bool {
	return len(r.Issues) == 0 && len(r.Warnings) == 0
}

// Truncate returns at most limit findings and how many were left out.
func Truncate(findings []Finding, limit int) ([]Finding, int) {
	if limit < 0 || len(findings) <= limit {
		return findings, 0
	}
	return findings[:limit], len(findings) - limit
}

// Options tunes the rule checker.
type Options struct {
	PlaceholderDomain string
}

// DefaultOptions matches the generator's defaults.
func DefaultOptions() Options {
	return Options{PlaceholderDomain: "yourdomain.com"}
}

type rawURLSet struct {
	XMLName xml.Name
	URLs    []rawURL `xml:"http://www.sitemaps.org/schemas/sitemap/0.9 url"`
}

type rawURL struct {
	Loc        *string `xml:"http://www.sitemaps.org/schemas/sitemap/0.9 loc"`
	LastMod    *string `xml:"http://www.sitemaps.org/schemas/sitemap/0.9 lastmod"`
	ChangeFreq *string `xml:"http://www.sitemaps.org/schemas/sitemap/0.9 changefreq"`
	Priority   *string `xml:"http://www.sitemaps.org/schemas/sitemap/0.9 priority"`
}

// ValidateFile opens path and runs Validate on it.
func ValidateFile(path string, opts Options) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSitemapNotFound, path)
		}
		return nil, fmt.Errorf("failed to open sitemap %s: %w", path, err)
	}
	defer f.Close()

	return Validate(f, opts)
}

// Validate parses a sitemap (plain or gzip-compressed) and checks every
// <url> entry in the sitemap namespace.
//
// Malformed XML is returned as *ParseError. Everything else is collected
// in the Report.
func Validate(r io.Reader, opts Options) (*Report, error) {
	body, err := maybeGunzip(r)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	decoder := xml.NewDecoder(body)
	decoder.CharsetReader = charset.NewReaderLabel

	var doc rawURLSet
	if err := decoder.Decode(&doc); err != nil {
		return nil, &ParseError{Err: err}
	}
	if err := ensureEOF(decoder); err != nil {
		return nil, &ParseError{Err: err}
	}

	report := &Report{Total: len(doc.URLs)}

	if doc.XMLName.Local != "urlset" || doc.XMLName.Space != Namespace {
		report.Issues = append(report.Issues, Finding{
			Message: fmt.Sprintf("Root element must be <urlset> in namespace %s, got <%s> (namespace %q)",
				Namespace, doc.XMLName.Local, doc.XMLName.Space),
		})
	}
	if report.Total > MaxURLs {
		report.Warnings = append(report.Warnings, Finding{
			Message: fmt.Sprintf("Sitemap lists %d URLs, more than the protocol limit of %d", report.Total, MaxURLs),
		})
	}

	seen := make(map[string]struct{}, len(doc.URLs))
	for i, entry := range doc.URLs {
		checkEntry(report, i+1, entry, seen, opts)
	}
	report.Unique = len(seen)

	return report, nil
}

func checkEntry(report *Report, index int, entry rawURL, seen map[string]struct{}, opts Options) {
	issue := func(format string, args ...interface{}) {
		report.Issues = append(report.Issues, Finding{Index: index, Message: fmt.Sprintf(format, args...)})
	}
	warn := func(format string, args ...interface{}) {
		report.Warnings = append(report.Warnings, Finding{Index: index, Message: fmt.Sprintf(format, args...)})
	}

	if entry.Loc == nil {
		issue("Missing <loc> element")
		return
	}
	loc := strings.TrimSpace(*entry.Loc)

	// Duplicates are reported on the later occurrence only
	if _, dup := seen[loc]; dup {
		issue("Duplicate URL: %s", loc)
	}
	seen[loc] = struct{}{}

	if !isAbsoluteURL(loc) {
		issue("Invalid URL format: %s", loc)
	}

	if opts.PlaceholderDomain != "" && strings.Contains(loc, opts.PlaceholderDomain) {
		warn("Contains placeholder domain %q", opts.PlaceholderDomain)
	}

	if entry.Priority != nil {
		p, err := parsePriority(*entry.Priority)
		switch {
		case err != nil:
			issue("Invalid priority value")
		case math.IsNaN(p) || p < 0.0 || p > 1.0:
			issue("Priority must be between 0.0 and 1.0")
		}
	}

	if entry.ChangeFreq != nil {
		if freq := ChangeFreq(strings.TrimSpace(*entry.ChangeFreq)); !freq.Valid() {
			warn("Unknown changefreq value %q", string(freq))
		}
	}

	if entry.LastMod != nil {
		if !isW3CDate(strings.TrimSpace(*entry.LastMod)) {
			warn("Invalid lastmod value %q", strings.TrimSpace(*entry.LastMod))
		}
	}
}

// isAbsoluteURL requires a scheme and a non-empty authority. The rest of
// the URL is not checked, so spaces or bad escapes in the path pass.
func isAbsoluteURL(raw string) bool {
	colon := strings.IndexByte(raw, ':')
	if colon <= 0 || !isScheme(raw[:colon]) {
		return false
	}
	rest := raw[colon+1:]
	if !strings.HasPrefix(rest, "//") {
		return false
	}
	authority := rest[2:]
	if end := strings.IndexAny(authority, "/?#"); end >= 0 {
		authority = authority[:end]
	}
	return authority != ""
}

func isScheme(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case i > 0 && ('0' <= c && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}

var errPriorityFormat = errors.New("unsupported number format")

// parsePriority reads a decimal number. Hex floats are rejected and
// underscores are allowed only between digits.
func parsePriority(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	digits := strings.TrimLeft(s, "+-")
	if len(digits) >= 2 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 0, errPriorityFormat
	}
	if strings.Contains(s, "_") {
		for i := 0; i < len(s); i++ {
			if s[i] == '_' && (i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1])) {
				return 0, errPriorityFormat
			}
		}
		s = strings.ReplaceAll(s, "_", "")
	}
	return strconv.ParseFloat(s, 64)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// W3C Datetime profiles accepted by the sitemap protocol.
var lastModLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04Z07:00",
	time.RFC3339,
	time.RFC3339Nano,
}

func isW3CDate(s string) bool {
	for _, layout := range lastModLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// maybeGunzip transparently decompresses gzip input.
func maybeGunzip(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("invalid gzip stream: %w", err)
		}
		return zr, nil
	}
	return br, nil
}

// ensureEOF rejects trailing elements or garbage after the root element.
func ensureEOF(d *xml.Decoder) error {
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return fmt.Errorf("unexpected element <%s> after root element", t.Name.Local)
		case xml.CharData:
			if strings.TrimSpace(string(t)) != "" {
				return errors.New("unexpected text after root element")
			}
		}
	}
}
