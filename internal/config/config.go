// internal/config/config.go
//
// This package handles the optional .blogtools.yaml project file. Every
// setting has a default matching the blog layout (content/posts/*.md, with
// README.md left alone), so the file only needs to exist when a project
// deviates from that.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/kingrea/blog-tools/internal/logging"
)

const (
	// ProjectFile is the config file looked up in the project root.
	ProjectFile = ".blogtools.yaml"

	// StateDir holds tool-owned files (logs) inside the project root.
	StateDir = ".blogtools"

	defaultPostsDir  = "content/posts"
	defaultExtension = ".md"
	defaultIndexFile = "README.md"
	defaultLogLevel  = "info"
)

const defaultProjectConfigYAML = `# blogtools project configuration
version: 1

posts:
  # Directory holding the posts, relative to the project root.
  dir: content/posts
  # Only files with this extension are linted or normalized.
  extension: .md
  # Index document that is never touched.
  index: README.md
  # Additional doublestar patterns (matched against the file name) to skip.
  # exclude:
  #   - "draft-*.md"

# Number of posts processed concurrently.
jobs: 1

log:
  level: info
  # Also append log lines to .blogtools/logs/blogtools.log
  file: false
`

// PostsConfig describes where posts live and which files count as posts.
type PostsConfig struct {
	Dir       string   `yaml:"dir"`
	Extension string   `yaml:"extension"`
	Index     string   `yaml:"index"`
	Exclude   []string `yaml:"exclude,omitempty"`
}

// LogConfig captures logging preferences.
type LogConfig struct {
	Level string `yaml:"level"`
	File  bool   `yaml:"file"`
}

// ProjectConfig models .blogtools.yaml.
type ProjectConfig struct {
	Version int         `yaml:"version"`
	Posts   PostsConfig `yaml:"posts"`
	Jobs    int         `yaml:"jobs"`
	Log     LogConfig   `yaml:"log"`
}

// Config holds the runtime configuration.
type Config struct {
	// ProjectDir is the blog repository root.
	ProjectDir string

	// Path is the config file that was (or would have been) loaded.
	Path string

	Project ProjectConfig
}

// Load reads the project config. A missing file at the default location is
// not an error; a missing file that was asked for explicitly is.
func Load(projectDir, path string) (*Config, error) {
	projectDir = filepath.Clean(projectDir)
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = filepath.Join(projectDir, ProjectFile)
	}
	cfg := &Config{
		ProjectDir: projectDir,
		Path:       resolvePath(projectDir, path),
		Project:    defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(explicit); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file is present.
func Default(projectDir string) *Config {
	projectDir = filepath.Clean(projectDir)
	return &Config{
		ProjectDir: projectDir,
		Path:       filepath.Join(projectDir, ProjectFile),
		Project:    defaultProjectConfig(),
	}
}

// PostsDir returns the absolute posts directory.
func (c *Config) PostsDir() string {
	return resolvePath(c.ProjectDir, c.Project.Posts.Dir)
}

// SetPostsDir overrides the posts directory, resolving relative paths against
// the project root.
func (c *Config) SetPostsDir(dir string) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return
	}
	c.Project.Posts.Dir = dir
}

// LogsDir returns the directory for the optional log file.
func (c *Config) LogsDir() string {
	return filepath.Join(c.ProjectDir, StateDir, "logs")
}

// WriteDefault creates a commented .blogtools.yaml in projectDir unless one
// exists. It reports whether a file was written.
func WriteDefault(projectDir string) (string, bool, error) {
	path := filepath.Join(projectDir, ProjectFile)
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return path, false, fmt.Errorf("config: stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644); err != nil {
		return path, false, fmt.Errorf("config: write %s: %w", path, err)
	}
	return path, true, nil
}

func (c *Config) loadProjectConfig(required bool) error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", c.Path, err)
	}

	parsed := defaultProjectConfig()
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", c.Path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Posts: PostsConfig{
			Dir:       defaultPostsDir,
			Extension: defaultExtension,
			Index:     defaultIndexFile,
		},
		Jobs: 1,
		Log:  LogConfig{Level: defaultLogLevel},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if strings.TrimSpace(pc.Posts.Dir) == "" {
		pc.Posts.Dir = defaultPostsDir
	}
	if strings.TrimSpace(pc.Posts.Extension) == "" {
		pc.Posts.Extension = defaultExtension
	}
	if pc.Jobs == 0 {
		pc.Jobs = 1
	}
	if strings.TrimSpace(pc.Log.Level) == "" {
		pc.Log.Level = defaultLogLevel
	}
}

func (pc *ProjectConfig) normalize() {
	pc.Posts.Dir = strings.TrimSpace(pc.Posts.Dir)
	pc.Posts.Extension = strings.TrimSpace(pc.Posts.Extension)
	if !strings.HasPrefix(pc.Posts.Extension, ".") {
		pc.Posts.Extension = "." + pc.Posts.Extension
	}
	pc.Posts.Index = strings.TrimSpace(pc.Posts.Index)
	patterns := pc.Posts.Exclude[:0]
	for _, p := range pc.Posts.Exclude {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	pc.Posts.Exclude = patterns
	pc.Log.Level = strings.ToLower(strings.TrimSpace(pc.Log.Level))
}

func (pc *ProjectConfig) validate() error {
	if pc.Version != 1 {
		return fmt.Errorf("version must be 1")
	}
	if pc.Posts.Extension == "." {
		return fmt.Errorf("posts.extension is required")
	}
	if strings.ContainsAny(pc.Posts.Index, `/\`) {
		return fmt.Errorf("posts.index must be a file name, got %q", pc.Posts.Index)
	}
	for i, pattern := range pc.Posts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("posts.exclude[%d]: invalid pattern %q", i, pattern)
		}
	}
	if pc.Jobs < 1 {
		return fmt.Errorf("jobs must be >= 1")
	}
	if _, err := logging.ParseLevel(pc.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}
