package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/deusflow/noticias/internal/news"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is the YAML-described set of feeds and vocabularies.
//
//	feeds:
//	  - name: ...
//	    url: https://...
//	    category: ...
//	keywords: [...]
//	markers: [...]
type Catalog struct {
	Feeds    []news.Feed `yaml:"feeds"`
	Keywords []string    `yaml:"keywords"`
	Markers  []string    `yaml:"markers"`
}

// DefaultCatalog returns the catalog embedded in the binary.
func DefaultCatalog() (*Catalog, error) {
	return parseCatalog(defaultCatalog)
}

// LoadCatalog reads the catalog at path. When path does not exist the
// embedded catalog is used. Sections left out of the file are taken from the
// embedded catalog.
func LoadCatalog(path string) (*Catalog, error) {
	def, err := DefaultCatalog()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return def, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return def, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	cat, err := parseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	if len(cat.Feeds) == 0 {
		cat.Feeds = def.Feeds
	}
	if len(cat.Keywords) == 0 {
		cat.Keywords = def.Keywords
	}
	if len(cat.Markers) == 0 {
		cat.Markers = def.Markers
	}
	return cat, cat.Validate()
}

func parseCatalog(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return &cat, nil
}

// Validate checks that every feed has a name and URL.
func (c *Catalog) Validate() error {
	if len(c.Feeds) == 0 {
		return errors.New("catalog has no feeds")
	}
	for i, f := range c.Feeds {
		if f.Name == "" || f.URL == "" {
			return fmt.Errorf("feed #%d needs both name and url", i+1)
		}
	}
	return nil
}
