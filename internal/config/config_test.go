package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSources(t *testing.T) {
	sources := DefaultSources()

	if len(sources) == 0 {
		t.Fatal("DefaultSources() returned no sources")
	}

	for _, src := range sources {
		if src.Name == "" {
			t.Error("built-in source has empty name")
		}
		if src.URL == "" {
			t.Errorf("built-in source %q has empty URL", src.Name)
		}
	}

	// Each call returns a fresh slice; mutating one must not leak into the next.
	sources[0].Name = "mutated"
	if DefaultSources()[0].Name == "mutated" {
		t.Error("DefaultSources() shares state between calls")
	}
}

func TestLoadSources(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		wantCount int
		wantErr   bool
	}{
		{
			name: "valid registry",
			yaml: `sources:
  - name: Brooklyn Museum
    url: https://www.brooklynmuseum.org/visit/calendar
  - name: Carnegie Hall
    url: https://www.carnegiehall.org/Calendar
`,
			wantCount: 2,
		},
		{
			name:    "missing name",
			yaml:    "sources:\n  - url: https://example.org/events\n",
			wantErr: true,
		},
		{
			name:    "missing url",
			yaml:    "sources:\n  - name: Brooklyn Museum\n",
			wantErr: true,
		},
		{
			name:    "empty registry",
			yaml:    "sources: []\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			yaml:    "sources: [a, b\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sources.yml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatalf("writing fixture: %v", err)
			}

			sources, err := LoadSources(path)

			if tt.wantErr {
				if err == nil {
					t.Fatal("LoadSources() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadSources() unexpected error: %v", err)
			}
			if len(sources) != tt.wantCount {
				t.Errorf("LoadSources() returned %d sources, want %d", len(sources), tt.wantCount)
			}
		})
	}
}

func TestLoadSourcesMissingFile(t *testing.T) {
	if _, err := LoadSources(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Error("LoadSources() on a missing file should error")
	}
}

func TestConfigSources(t *testing.T) {
	// Without a sources file the built-in registry is used.
	sources, err := Config{}.Sources()
	if err != nil {
		t.Fatalf("Sources() error: %v", err)
	}
	if len(sources) != len(DefaultSources()) {
		t.Errorf("Sources() returned %d entries, want the built-in %d", len(sources), len(DefaultSources()))
	}

	// With a sources file the registry comes from the file.
	path := filepath.Join(t.TempDir(), "sources.yml")
	data := "sources:\n  - name: Lincoln Center\n    url: https://www.lincolncenter.org/calendar\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	sources, err = Config{SourcesFile: path}.Sources()
	if err != nil {
		t.Fatalf("Sources() error: %v", err)
	}
	if len(sources) != 1 || sources[0].Name != "Lincoln Center" {
		t.Errorf("Sources() = %+v, want the single file entry", sources)
	}
}
