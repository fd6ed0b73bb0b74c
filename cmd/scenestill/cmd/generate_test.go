package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/scenestill/internal/catalog"
)

func TestGenerateCommandStructure(t *testing.T) {
	assert.NotNil(t, generateCmd)
	assert.Equal(t, "generate", generateCmd.Use)
	assert.NotEmpty(t, generateCmd.Short)
	assert.NotNil(t, generateCmd.RunE)
	assert.Contains(t, generateCmd.Long, "Example:")
	assert.Contains(t, generateCmd.Long, "scenestill generate")
}

func TestGenerateCommandNoOwnFlags(t *testing.T) {
	assert.False(t, generateCmd.HasLocalFlags(), "generate uses only the root persistent flags")
}

func TestRunGenerateCatalogOnly(t *testing.T) {
	dir := useConfig(t, catalogOnlyConfig)
	csv := "Movie Name,Movie ID,Director,Cinematographer,Cast\n" +
		"In the Mood for Love,843,Wong Kar-wai,Christopher Doyle,Tony Leung|Maggie Cheung\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "movies.csv"), []byte(csv), 0644))

	var out bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&out)

	require.NoError(t, runGenerate(c, nil))

	text := out.String()
	assert.Contains(t, text, "Static pages:")
	assert.Contains(t, text, "Total URLs:")
	assert.Contains(t, text, "Using CSV data only")
	assert.Contains(t, text, "Add your TMDB API key")

	data, err := os.ReadFile(filepath.Join(dir, "sitemap.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "person.html?name=Wong%20Kar-wai&amp;role=Director")

	_, err = os.Stat(filepath.Join(dir, "scenestill.prom"))
	assert.NoError(t, err, "metrics textfile is written when configured")
}

func TestRunGenerateMissingCatalog(t *testing.T) {
	useConfig(t, catalogOnlyConfig)

	c := &cobra.Command{}
	c.SetOut(&bytes.Buffer{})

	err := runGenerate(c, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.ErrInputNotFound))
}

func TestRunGenerateRequiresAPIKey(t *testing.T) {
	t.Setenv("SCENESTILL_TMDB_API_KEY", "")
	useConfig(t, func(dir string) string {
		return "tmdb:\n  enabled: true\n  api_key: \"\"\nlogging:\n  level: error\n"
	})

	err := runGenerate(&cobra.Command{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tmdb.api_key")
}
