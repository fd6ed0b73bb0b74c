package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveFetch(t *testing.T) {
	r := New()

	r.ObserveFetch(OutcomeOK, 120*time.Millisecond)
	r.ObserveFetch(OutcomeOK, 80*time.Millisecond)
	r.ObserveFetch(OutcomeUnauthorized, 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.TMDBRequests.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.TMDBRequests.WithLabelValues(OutcomeUnauthorized)))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.TMDBRequests.WithLabelValues(OutcomeNetwork)))
}

func TestGauges(t *testing.T) {
	r := New()

	r.SetSitemapURLs("static", 4)
	r.SetSitemapURLs("people", 12)
	r.SetFindings("issues", 3)

	assert.Equal(t, 4.0, testutil.ToFloat64(r.SitemapURLs.WithLabelValues("static")))
	assert.Equal(t, 12.0, testutil.ToFloat64(r.SitemapURLs.WithLabelValues("people")))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.SitemapFindings.WithLabelValues("issues")))
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder

	assert.NotPanics(t, func() {
		r.ObserveFetch(OutcomeOK, time.Second)
		r.SetSitemapURLs("films", 1)
		r.SetFindings("warnings", 1)
		r.MarkRun(time.Now())
	})
	assert.Nil(t, r.Registry())
	assert.NoError(t, r.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")))
}

func TestWriteTextfile(t *testing.T) {
	r := New()
	r.ObserveFetch(OutcomeStatus, time.Millisecond)
	r.SetSitemapURLs("films", 7)
	r.MarkRun(time.Unix(1700000000, 0))

	path := filepath.Join(t.TempDir(), "scenestill.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, `scenestill_tmdb_requests_total{outcome="status"} 1`)
	assert.Contains(t, text, `scenestill_sitemap_urls{section="films"} 7`)
	assert.Contains(t, text, "scenestill_last_run_timestamp_seconds 1.7e+09")
}

func TestWriteTextfileEmptyPath(t *testing.T) {
	assert.NoError(t, New().WriteTextfile(""))
}

func TestWriteTextfileBadDir(t *testing.T) {
	err := New().WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write metrics textfile")
}
