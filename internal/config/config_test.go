package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "xunitmerge.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "full config",
			content: `
[cdata]
tags = ["system-out", "failure"]

[transforms]
strip_ansi = true

[output]
declaration = false
`,
			check: func(t *testing.T, cfg *Config) {
				if len(cfg.CDATA.Tags) != 2 || cfg.CDATA.Tags[1] != "failure" {
					t.Errorf("cdata tags = %v", cfg.CDATA.Tags)
				}
				if !cfg.Transforms.StripANSI {
					t.Error("strip_ansi not loaded")
				}
				if cfg.Output.Declaration == nil || *cfg.Output.Declaration {
					t.Error("output.declaration not loaded")
				}
			},
		},
		{
			name:    "empty config gets defaults after merge",
			content: ``,
			check: func(t *testing.T, cfg *Config) {
				merged := MergeWithDefaults(cfg)
				if len(merged.CDATA.Tags) != 5 {
					t.Errorf("default cdata tags = %v", merged.CDATA.Tags)
				}
				if merged.Output.Declaration == nil || !*merged.Output.Declaration {
					t.Error("declaration should default to true")
				}
				if merged.Transforms.StripANSI {
					t.Error("strip_ansi should default to false")
				}
			},
		},
		{
			name:    "unknown field",
			content: "[cdata]\ntags = [\"failure\"]\nbogus = 1\n",
			wantErr: "unknown fields",
		},
		{
			name:    "invalid toml",
			content: "[cdata\n",
			wantErr: "failed to parse config file",
		},
		{
			name:    "empty tag name",
			content: "[cdata]\ntags = [\"system-out\", \" \"]\n",
			wantErr: "empty tag name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			cfg, err := LoadConfig(path)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadConfig() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfigExplicitMissingPath(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("explicitly specified missing config must be an error")
	}
}

func TestLoadConfigDefaultPathMissing(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(cwd)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("missing default config must not be an error, got %v", err)
	}
	if cfg != nil {
		t.Error("missing default config should return nil config")
	}
}

func TestMergeWithDefaultsNil(t *testing.T) {
	merged := MergeWithDefaults(nil)
	want := []string{"system-out", "system-err", "skipped", "error", "failure"}
	if len(merged.CDATA.Tags) != len(want) {
		t.Fatalf("tags = %v, want %v", merged.CDATA.Tags, want)
	}
	for i, tag := range want {
		if merged.CDATA.Tags[i] != tag {
			t.Errorf("tags[%d] = %q, want %q", i, merged.CDATA.Tags[i], tag)
		}
	}
}

func TestMergeWithDefaultsKeepsOverrides(t *testing.T) {
	decl := false
	cfg := &Config{
		CDATA:  CDATAConfig{Tags: []string{"system-out"}},
		Output: OutputConfig{Declaration: &decl},
	}
	merged := MergeWithDefaults(cfg)
	if len(merged.CDATA.Tags) != 1 || merged.CDATA.Tags[0] != "system-out" {
		t.Errorf("tags = %v, override lost", merged.CDATA.Tags)
	}
	if merged.Output.Declaration == nil || *merged.Output.Declaration {
		t.Error("declaration override lost")
	}
}
