package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/j-veylop/bikeshare-explorer/internal/models"
)

// ErrInvalidCatalog is returned for catalog files naming unsupported cities.
var ErrInvalidCatalog = errors.New("invalid city catalog")

// defaultSources maps each supported city to its data file.
var defaultSources = map[models.City]string{
	models.Chicago:     "chicago.csv",
	models.NewYorkCity: "new_york_city.csv",
	models.Washington:  "washington.csv",
}

type catalogFile struct {
	Cities map[string]string `yaml:"cities"`
}

// Catalog resolves cities to data files.
type Catalog struct {
	sources map[models.City]string
}

// DefaultCatalog returns the built-in mapping resolved against dataDir.
func DefaultCatalog(dataDir string) *Catalog {
	c := &Catalog{sources: make(map[models.City]string, len(defaultSources))}
	for city, file := range defaultSources {
		c.sources[city] = resolve(dataDir, file)
	}
	return c
}

// LoadCatalog reads city overrides from a YAML file. An empty path yields
// the default catalog. Relative file names resolve against dataDir.
func LoadCatalog(path, dataDir string) (*Catalog, error) {
	c := DefaultCatalog(dataDir)
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidCatalog, path, err)
	}

	for name, file := range f.Cities {
		city, ok := models.ParseCity(name)
		if !ok {
			return nil, fmt.Errorf("%w: unsupported city %q", ErrInvalidCatalog, name)
		}
		if file == "" {
			return nil, fmt.Errorf("%w: empty file for %q", ErrInvalidCatalog, name)
		}
		c.sources[city] = resolve(dataDir, file)
	}

	return c, nil
}

// Source returns the data file for city.
func (c *Catalog) Source(city models.City) (string, bool) {
	path, ok := c.sources[city]
	return path, ok
}

// Cities returns the catalog's cities in prompt order.
func (c *Catalog) Cities() []models.City {
	cities := make([]models.City, 0, len(c.sources))
	for _, city := range models.SupportedCities {
		if _, ok := c.sources[city]; ok {
			cities = append(cities, city)
		}
	}
	return cities
}

func resolve(dataDir, file string) string {
	if filepath.IsAbs(file) || dataDir == "" {
		return file
	}
	return filepath.Join(dataDir, file)
}
