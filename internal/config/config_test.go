package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", ConfigFile, err)
	}
}

func TestFindSite_WalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "self_author: 'Taylor, J.'\n")

	nested := filepath.Join(root, "content", "posts")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := FindSite(nested)
	if err != nil {
		t.Fatalf("FindSite() error = %v", err)
	}
	if got != root {
		t.Errorf("FindSite() = %q, want %q", got, root)
	}
}

func TestFindSite_NotFound(t *testing.T) {
	if _, err := FindSite(t.TempDir()); err == nil {
		t.Error("FindSite() succeeded outside a site")
	}
}

func TestFindSite_EnvOverride(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "self_author: 'Taylor, J.'\n")
	t.Setenv(RootEnv, root)

	got, err := FindSite(t.TempDir())
	if err != nil {
		t.Fatalf("FindSite() error = %v", err)
	}
	if got != root {
		t.Errorf("FindSite() = %q, want %q", got, root)
	}
}

func TestFindSite_EnvOverrideInvalid(t *testing.T) {
	t.Setenv(RootEnv, t.TempDir())

	if _, err := FindSite(t.TempDir()); err == nil {
		t.Error("FindSite() accepted a PUBS_ROOT without pubs.yml")
	}
}

func TestLoad_Defaults(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "self_author: 'Taylor, J.'\n")

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.CSV != DefaultCSV {
		t.Errorf("CSV = %q, want default %q", cfg.CSV, DefaultCSV)
	}
	if cfg.OutputDir != DefaultOutputDir {
		t.Errorf("OutputDir = %q, want default %q", cfg.OutputDir, DefaultOutputDir)
	}
	if cfg.SelfAuthor != "Taylor, J." {
		t.Errorf("SelfAuthor = %q, want %q", cfg.SelfAuthor, "Taylor, J.")
	}

	wantCSV := filepath.Join(root, DefaultCSV)
	if got := cfg.CSVPath(root); got != wantCSV {
		t.Errorf("CSVPath() = %q, want %q", got, wantCSV)
	}
}

func TestLoad_Explicit(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `csv: tables/pubs.csv
output_dir: content/papers
self_author: 'Taylor, J.'
crossref_mailto: taylor@example.org
`)

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.CSV != "tables/pubs.csv" {
		t.Errorf("CSV = %q, want tables/pubs.csv", cfg.CSV)
	}
	if cfg.OutputDir != "content/papers" {
		t.Errorf("OutputDir = %q, want content/papers", cfg.OutputDir)
	}
	if cfg.CrossrefMailto != "taylor@example.org" {
		t.Errorf("CrossrefMailto = %q, want taylor@example.org", cfg.CrossrefMailto)
	}
}

func TestLoad_MissingSelfAuthor(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "csv: data/publications.csv\n")

	if _, err := Load(root); err == nil {
		t.Error("Load() succeeded without self_author")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "self_author: [unterminated\n")

	if _, err := Load(root); err == nil {
		t.Error("Load() succeeded on malformed YAML")
	}
}
