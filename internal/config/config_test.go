package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := New()
		cfg.SeedsFile = "seeds.csv"
		return cfg
	}

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "defaults with seeds", modify: func(*Config) {}},
		{name: "all formats", modify: func(c *Config) { c.Formats = []string{FormatJSON, FormatJSONL, FormatSQLite} }},
		{name: "missing seeds", modify: func(c *Config) { c.SeedsFile = "" }, wantErr: true},
		{name: "zero workers", modify: func(c *Config) { c.Workers = 0 }, wantErr: true},
		{name: "zero rate", modify: func(c *Config) { c.RateLimit = 0 }, wantErr: true},
		{name: "zero timeout", modify: func(c *Config) { c.Timeout = 0 }, wantErr: true},
		{name: "zero retries", modify: func(c *Config) { c.MaxRetries = 0 }, wantErr: true},
		{name: "zero pages", modify: func(c *Config) { c.MaxPages = 0 }, wantErr: true},
		{name: "no formats", modify: func(c *Config) { c.Formats = nil }, wantErr: true},
		{name: "unknown format", modify: func(c *Config) { c.Formats = []string{"xml"} }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalid) {
					t.Errorf("Validate() error = %v, want ErrInvalid", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestLoadProfile(t *testing.T) {
	t.Run("empty path returns default", func(t *testing.T) {
		got, err := LoadProfile("")
		if err != nil {
			t.Fatalf("LoadProfile() error = %v", err)
		}
		if !reflect.DeepEqual(got, DefaultProfile()) {
			t.Errorf("LoadProfile(\"\") = %+v, want default", got)
		}
	})

	t.Run("file overrides keys", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profile.yaml")
		content := "name: other\ncontributors: div.authors > p\nauthor_refs:\n  - sup.ref\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		got, err := LoadProfile(path)
		if err != nil {
			t.Fatalf("LoadProfile() error = %v", err)
		}
		if got.Name != "other" || got.Contributors != "div.authors > p" {
			t.Errorf("LoadProfile() = %+v", got)
		}
		if !reflect.DeepEqual(got.AuthorRefs, []string{"sup.ref"}) {
			t.Errorf("AuthorRefs = %v, want [sup.ref]", got.AuthorRefs)
		}
		if got.Affiliations != DefaultProfile().Affiliations {
			t.Errorf("Affiliations = %q, want default", got.Affiliations)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadProfile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("LoadProfile() error = nil, want error")
		}
	})

	t.Run("blank required selector", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profile.yaml")
		if err := os.WriteFile(path, []byte("affiliations: \"\"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadProfile(path); !errors.Is(err, ErrInvalid) {
			t.Errorf("LoadProfile() error = %v, want ErrInvalid", err)
		}
	})
}
