package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	projectDir := t.TempDir()
	c, err := Load(projectDir, "")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if c.Project.Version != 1 {
		t.Fatalf("expected default version == 1, got %d", c.Project.Version)
	}
	if want := filepath.Join(projectDir, "content", "posts"); c.PostsDir() != want {
		t.Fatalf("expected posts dir %q, got %q", want, c.PostsDir())
	}
	if c.Project.Posts.Extension != ".md" || c.Project.Posts.Index != "README.md" {
		t.Fatalf("unexpected posts defaults: %+v", c.Project.Posts)
	}
	if c.Project.Jobs != 1 || c.Project.Log.Level != "info" {
		t.Fatalf("unexpected defaults: jobs=%d level=%q", c.Project.Jobs, c.Project.Log.Level)
	}
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	projectDir := t.TempDir()
	if _, err := Load(projectDir, "nope.yaml"); err == nil {
		t.Fatalf("expected error for explicit missing config")
	}
}

func TestLoadParsesYaml(t *testing.T) {
	projectDir := t.TempDir()
	configYAML := strings.TrimSpace(`
version: 1
posts:
  dir: site/articles
  extension: markdown
  index: INDEX.md
  exclude:
    - "draft-*.md"
    - "  "
jobs: 4
log:
  level: DEBUG
  file: true
`)
	if err := os.WriteFile(filepath.Join(projectDir, ProjectFile), []byte(configYAML), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(projectDir, "")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if want := filepath.Join(projectDir, "site", "articles"); c.PostsDir() != want {
		t.Fatalf("expected posts dir %q, got %q", want, c.PostsDir())
	}
	if c.Project.Posts.Extension != ".markdown" {
		t.Fatalf("expected extension to gain a dot, got %q", c.Project.Posts.Extension)
	}
	if c.Project.Posts.Index != "INDEX.md" {
		t.Fatalf("wrong index: %q", c.Project.Posts.Index)
	}
	if len(c.Project.Posts.Exclude) != 1 || c.Project.Posts.Exclude[0] != "draft-*.md" {
		t.Fatalf("unexpected exclude patterns: %v", c.Project.Posts.Exclude)
	}
	if c.Project.Jobs != 4 || c.Project.Log.Level != "debug" || !c.Project.Log.File {
		t.Fatalf("unexpected settings: %+v", c.Project)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	projectDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(projectDir, ProjectFile), []byte("jobs: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(projectDir, "")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if c.Project.Posts.Index != "README.md" || c.Project.Posts.Extension != ".md" {
		t.Fatalf("expected defaults to survive partial file, got %+v", c.Project.Posts)
	}
	if c.Project.Jobs != 2 {
		t.Fatalf("expected jobs 2, got %d", c.Project.Jobs)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "bad-version", yaml: "version: 2\n"},
		{name: "negative-jobs", yaml: "jobs: -1\n"},
		{name: "bad-level", yaml: "log:\n  level: loud\n"},
		{name: "bad-pattern", yaml: "posts:\n  exclude:\n    - \"[\"\n"},
		{name: "index-with-dir", yaml: "posts:\n  index: docs/README.md\n"},
		{name: "malformed", yaml: "posts: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			projectDir := t.TempDir()
			path := filepath.Join(projectDir, "custom.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(projectDir, path); err == nil {
				t.Fatalf("expected validation error but got none")
			}
		})
	}
}

func TestLoadAcceptsWarningLevel(t *testing.T) {
	projectDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(projectDir, ProjectFile), []byte("log:\n  level: Warning\n"), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(projectDir, "")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if c.Project.Log.Level != "warning" {
		t.Fatalf("expected level warning, got %q", c.Project.Log.Level)
	}
}

func TestSetPostsDir(t *testing.T) {
	projectDir := t.TempDir()
	c := Default(projectDir)
	c.SetPostsDir("  ")
	if c.PostsDir() != filepath.Join(projectDir, "content", "posts") {
		t.Fatalf("blank override should be ignored, got %q", c.PostsDir())
	}
	abs := filepath.Join(t.TempDir(), "elsewhere")
	c.SetPostsDir(abs)
	if c.PostsDir() != abs {
		t.Fatalf("expected absolute override %q, got %q", abs, c.PostsDir())
	}
	c.SetPostsDir("drafts")
	if c.PostsDir() != filepath.Join(projectDir, "drafts") {
		t.Fatalf("expected relative override to resolve, got %q", c.PostsDir())
	}
}

func TestWriteDefaultRoundTrips(t *testing.T) {
	projectDir := t.TempDir()
	path, created, err := WriteDefault(projectDir)
	if err != nil || !created {
		t.Fatalf("WriteDefault: created=%v err=%v", created, err)
	}
	if _, created, err := WriteDefault(projectDir); err != nil || created {
		t.Fatalf("second WriteDefault should be a no-op: created=%v err=%v", created, err)
	}
	c, err := Load(projectDir, path)
	if err != nil {
		t.Fatalf("default config does not load: %v", err)
	}
	if diff := cmp.Diff(defaultProjectConfig(), c.Project); diff != "" {
		t.Fatalf("default file diverges from defaults (-want +got):\n%s", diff)
	}
}
