package services

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"alfredoptarigan/resume-screener/internal/models"
)

// Catalog holds the keyword lists the field extractor works from.
type Catalog struct {
	Skills            []string
	Education         map[models.EducationLevel][]string
	Surnames          []string
	GenericLocalParts []string
}

type catalogFile struct {
	Skills    []string `yaml:"skills"`
	Education struct {
		PhD        []string `yaml:"phd"`
		Masters    []string `yaml:"masters"`
		Bachelors  []string `yaml:"bachelors"`
		HighSchool []string `yaml:"high_school"`
	} `yaml:"education"`
	Surnames          []string `yaml:"surnames"`
	GenericLocalParts []string `yaml:"generic_local_parts"`
}

func DefaultCatalog() *Catalog {
	return &Catalog{
		Skills: []string{
			"python", "java", "javascript", "typescript", "react", "node.js", "sql",
			"machine learning", "data science", "artificial intelligence",
			"deep learning", "nlp", "computer vision", "data analysis",
			"aws", "azure", "docker", "kubernetes", "git",
			"tensorflow", "pytorch", "pandas", "django", "flask", "spring boot",
			"postgresql", "mongodb", "graphql", "terraform", "linux", "agile", "scrum",
		},
		Education: map[models.EducationLevel][]string{
			models.EducationPhD:        {"phd", "doctorate", "ph.d"},
			models.EducationMasters:    {"masters", "master's", "mba", "m.s", "msc", "m.sc", "m.tech"},
			models.EducationBachelors:  {"bachelors", "bachelor's", "btech", "b.tech", "b.e", "bs", "b.s", "bsc", "b.sc"},
			models.EducationHighSchool: {"high school", "secondary"},
		},
		Surnames: []string{
			"Chen", "Wang", "Li", "Zhang", "Liu", "Kim", "Park", "Lee",
			"Han", "Cho", "Wu", "Yang", "Huang", "Yu",
		},
		GenericLocalParts: []string{"first", "user", "mail", "email", "contact"},
	}
}

// LoadCatalogFile reads a YAML catalog. Lists missing from the file keep their
// default values.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var raw catalogFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	catalog := DefaultCatalog()
	if len(raw.Skills) > 0 {
		catalog.Skills = raw.Skills
	}
	if len(raw.Surnames) > 0 {
		catalog.Surnames = raw.Surnames
	}
	if len(raw.GenericLocalParts) > 0 {
		catalog.GenericLocalParts = raw.GenericLocalParts
	}
	overrides := map[models.EducationLevel][]string{
		models.EducationPhD:        raw.Education.PhD,
		models.EducationMasters:    raw.Education.Masters,
		models.EducationBachelors:  raw.Education.Bachelors,
		models.EducationHighSchool: raw.Education.HighSchool,
	}
	for level, keywords := range overrides {
		if len(keywords) > 0 {
			catalog.Education[level] = keywords
		}
	}

	return catalog.normalized(), nil
}

// CatalogFromEntries builds a catalog from database rows. Kinds without any
// row keep their default values.
func CatalogFromEntries(entries []models.CatalogEntry) *Catalog {
	grouped := make(map[models.CatalogKind][]string)
	for _, entry := range entries {
		grouped[entry.Kind] = append(grouped[entry.Kind], entry.Keyword)
	}

	catalog := DefaultCatalog()
	if v := grouped[models.CatalogKindSkill]; len(v) > 0 {
		catalog.Skills = v
	}
	if v := grouped[models.CatalogKindSurname]; len(v) > 0 {
		catalog.Surnames = v
	}
	if v := grouped[models.CatalogKindGenericLocalPart]; len(v) > 0 {
		catalog.GenericLocalParts = v
	}
	educationKinds := map[models.CatalogKind]models.EducationLevel{
		models.CatalogKindEducationPhD:       models.EducationPhD,
		models.CatalogKindEducationMasters:   models.EducationMasters,
		models.CatalogKindEducationBachelors: models.EducationBachelors,
		models.CatalogKindEducationHigh:      models.EducationHighSchool,
	}
	for kind, level := range educationKinds {
		if v := grouped[kind]; len(v) > 0 {
			catalog.Education[level] = v
		}
	}

	return catalog.normalized()
}

// Entries flattens the catalog into database rows, used to seed an empty table.
func (c *Catalog) Entries() []models.CatalogEntry {
	var entries []models.CatalogEntry
	add := func(kind models.CatalogKind, keywords []string) {
		for _, keyword := range keywords {
			entries = append(entries, models.CatalogEntry{Kind: kind, Keyword: keyword})
		}
	}

	add(models.CatalogKindSkill, c.Skills)
	add(models.CatalogKindEducationPhD, c.Education[models.EducationPhD])
	add(models.CatalogKindEducationMasters, c.Education[models.EducationMasters])
	add(models.CatalogKindEducationBachelors, c.Education[models.EducationBachelors])
	add(models.CatalogKindEducationHigh, c.Education[models.EducationHighSchool])
	add(models.CatalogKindSurname, c.Surnames)
	add(models.CatalogKindGenericLocalPart, c.GenericLocalParts)

	return entries
}

// normalized lowercases skill, education and local-part keywords, trims
// everything and drops blanks and duplicates. Surnames keep their case.
func (c *Catalog) normalized() *Catalog {
	out := &Catalog{
		Skills:            dedupe(c.Skills, true),
		Education:         make(map[models.EducationLevel][]string, len(c.Education)),
		Surnames:          dedupe(c.Surnames, false),
		GenericLocalParts: dedupe(c.GenericLocalParts, true),
	}
	for level, keywords := range c.Education {
		out.Education[level] = dedupe(keywords, true)
	}
	return out
}

func dedupe(values []string, lower bool) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if lower {
			v = strings.ToLower(v)
		}
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// sortedSet lowercases, trims and deduplicates values and returns them sorted.
func sortedSet(values []string) []string {
	out := dedupe(values, true)
	sort.Strings(out)
	return out
}
