package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-screener/internal/models"
)

func TestLoadCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `
skills:
  - Go
  - " Rust "
  - go
education:
  masters:
    - MSc
surnames:
  - Nguyen
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	catalog, err := LoadCatalogFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"go", "rust"}, catalog.Skills)
	assert.Equal(t, []string{"msc"}, catalog.Education[models.EducationMasters])
	assert.Equal(t, DefaultCatalog().Education[models.EducationPhD], catalog.Education[models.EducationPhD])
	assert.Equal(t, []string{"Nguyen"}, catalog.Surnames)
	assert.Equal(t, DefaultCatalog().GenericLocalParts, catalog.GenericLocalParts)
}

func TestLoadCatalogFileErrors(t *testing.T) {
	_, err := LoadCatalogFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("skills: [unterminated"), 0644))
	_, err = LoadCatalogFile(path)
	assert.Error(t, err)
}

func TestCatalogEntriesRoundTrip(t *testing.T) {
	original := DefaultCatalog()

	rebuilt := CatalogFromEntries(original.Entries())

	assert.Equal(t, original.normalized(), rebuilt)
}

func TestCatalogFromEntriesKeepsDefaultsForMissingKinds(t *testing.T) {
	catalog := CatalogFromEntries([]models.CatalogEntry{
		{Kind: models.CatalogKindSkill, Keyword: "Elixir"},
		{Kind: models.CatalogKindSurname, Keyword: "Tanaka"},
	})

	assert.Equal(t, []string{"elixir"}, catalog.Skills)
	assert.Equal(t, []string{"Tanaka"}, catalog.Surnames)
	assert.Equal(t, DefaultCatalog().Education[models.EducationBachelors], catalog.Education[models.EducationBachelors])

	fe := NewFieldExtractor(catalog)
	assert.Equal(t, "Kenji Tanaka", fe.ExtractName("met kenji at work, Kenji Tanaka leads the team"))
}
