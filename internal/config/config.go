// Package config holds the source registry and the settings for one run.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultOutput is the artifact path written when --output is not given.
const DefaultOutput = "events.json"

// Source describes one institution calendar the aggregator polls.
type Source struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Config carries the settings for a single aggregation run. It is assembled
// by the CLI and passed explicitly; nothing here is process-global state.
type Config struct {
	Output      string
	SourcesFile string
	Timeout     time.Duration
	DryRun      bool
	Verbose     bool
}

// Sources resolves the registry for this run: the built-in New York City
// registry unless a sources file was configured.
func (c Config) Sources() ([]Source, error) {
	if c.SourcesFile == "" {
		return DefaultSources(), nil
	}
	return LoadSources(c.SourcesFile)
}

// DefaultSources returns the built-in registry of New York City cultural
// institutions. A fresh slice is returned on every call so callers can
// never mutate shared state.
func DefaultSources() []Source {
	return []Source{
		{Name: "The Metropolitan Museum of Art", URL: "https://www.metmuseum.org/events/whats-on"},
		{Name: "The Museum of Modern Art", URL: "https://www.moma.org/calendar/"},
		{Name: "American Museum of Natural History", URL: "https://www.amnh.org/calendar"},
		{Name: "Brooklyn Museum", URL: "https://www.brooklynmuseum.org/visit/calendar"},
		{Name: "Whitney Museum of American Art", URL: "https://whitney.org/events"},
		{Name: "Solomon R. Guggenheim Museum", URL: "https://www.guggenheim.org/calendar"},
		{Name: "Carnegie Hall", URL: "https://www.carnegiehall.org/Calendar"},
		{Name: "Lincoln Center", URL: "https://www.lincolncenter.org/calendar"},
		{Name: "Brooklyn Academy of Music", URL: "https://www.bam.org/calendar"},
		{Name: "New York Botanical Garden", URL: "https://www.nybg.org/events/"},
	}
}

type sourcesFile struct {
	Sources []Source `yaml:"sources"`
}

// LoadSources reads a YAML registry file of the form:
//
//	sources:
//	  - name: Brooklyn Museum
//	    url: https://www.brooklynmuseum.org/visit/calendar
//
// Every entry must carry a non-empty name and url.
func LoadSources(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sources file: %w", err)
	}

	var f sourcesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing sources file: %w", err)
	}

	if len(f.Sources) == 0 {
		return nil, fmt.Errorf("no sources configured in %s", path)
	}

	for i, src := range f.Sources {
		if src.Name == "" {
			return nil, fmt.Errorf("source %d: missing name", i)
		}
		if src.URL == "" {
			return nil, fmt.Errorf("source %q: missing url", src.Name)
		}
	}

	return f.Sources, nil
}
