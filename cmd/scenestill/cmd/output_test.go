package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTerminal(t *testing.T) {
	assert.False(t, isTerminal(&bytes.Buffer{}))

	f, err := os.Create(filepath.Join(t.TempDir(), "report.txt"))
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, isTerminal(f), "regular files are not terminals")
}

func TestCapturedReportHasNoColor(t *testing.T) {
	var out bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&out)

	p := newPrinter(c)
	p.Success("Sitemap generated: %s", "sitemap.xml")
	p.Fail("Please fix issues before submitting")

	assert.NotContains(t, out.String(), "\x1b[")
	assert.Contains(t, out.String(), "✅ Sitemap generated: sitemap.xml")
}
