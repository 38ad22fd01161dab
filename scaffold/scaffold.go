// Package scaffold writes the opinionated boilerplate that the Angular
// CLI does not generate: a feature-oriented folder tree under src/app
// and project documentation rendered from embedded templates.
//
// Writers are additive. Existing files are never overwritten, the
// generated sections are appended once behind a marker instead.
package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/safedep/dry/log"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

const (
	readmeMarker    = "<!-- ng-setup:section -->"
	gitignoreMarker = "# Added by ng-setup"
)

// appFolders is the folder layout written under the project root. Each
// folder gets a .gitkeep so the structure survives the initial commit.
var appFolders = []string{
	"src/app/core/guards",
	"src/app/core/interceptors",
	"src/app/core/services",
	"src/app/shared/components",
	"src/app/shared/directives",
	"src/app/shared/pipes",
	"src/app/features",
	"src/app/models",
}

// Library is one resolved package recorded in the generated README.
type Library struct {
	Name    string
	Version string
	Dev     bool
}

// Config carries everything the templates render.
type Config struct {
	// ProjectDir is the root of the generated workspace. It must already
	// exist.
	ProjectDir string

	// ProjectName for the README title
	ProjectName string

	// AngularVersion recorded in the README
	AngularVersion string

	// NodeVersion recorded in the README, may be empty
	NodeVersion string

	// Style is the chosen stylesheet format
	Style string

	// Routing reports whether a routing module was generated
	Routing bool

	// Libraries installed alongside the workspace
	Libraries []Library
}

// Scaffolder writes boilerplate into a generated workspace.
type Scaffolder interface {
	// Write creates the folder tree and documentation files, returning
	// the paths it created or extended, relative to the project dir
	Write(config Config) ([]string, error)
}

type fileScaffolder struct {
	templates *template.Template
}

var _ Scaffolder = &fileScaffolder{}

func NewFileScaffolder() (*fileScaffolder, error) {
	templates, err := template.ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse boilerplate templates: %w", err)
	}

	return &fileScaffolder{templates: templates}, nil
}

func (s *fileScaffolder) Write(config Config) ([]string, error) {
	if config.ProjectDir == "" {
		return nil, fmt.Errorf("project directory is required")
	}

	info, err := os.Stat(config.ProjectDir)
	if err != nil {
		return nil, fmt.Errorf("failed to access project directory: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", config.ProjectDir)
	}

	var written []string

	for _, folder := range appFolders {
		keep := filepath.Join(folder, ".gitkeep")

		created, err := writeIfAbsent(config.ProjectDir, keep, nil)
		if err != nil {
			return written, err
		}

		if created {
			written = append(written, keep)
		}
	}

	editorconfig, err := s.render("editorconfig.tmpl", nil)
	if err != nil {
		return written, err
	}

	created, err := writeIfAbsent(config.ProjectDir, ".editorconfig", editorconfig)
	if err != nil {
		return written, err
	}

	if created {
		written = append(written, ".editorconfig")
	}

	gitignore, err := s.render("gitignore.tmpl", nil)
	if err != nil {
		return written, err
	}

	changed, err := appendOnce(config.ProjectDir, ".gitignore", gitignoreMarker, gitignore)
	if err != nil {
		return written, err
	}

	if changed {
		written = append(written, ".gitignore")
	}

	changed, err = s.writeReadme(config)
	if err != nil {
		return written, err
	}

	if changed {
		written = append(written, "README.md")
	}

	return written, nil
}

// writeReadme creates a fresh README for bare directories. The Angular
// CLI ships its own README, so the usual case is appending the setup
// section to it.
func (s *fileScaffolder) writeReadme(config Config) (bool, error) {
	path := filepath.Join(config.ProjectDir, "README.md")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		readme, err := s.render("readme.md.tmpl", config)
		if err != nil {
			return false, err
		}

		if err := os.WriteFile(path, readme, 0644); err != nil {
			return false, fmt.Errorf("failed to write README.md: %w", err)
		}

		return true, nil
	}

	section, err := s.render("setupSection", config)
	if err != nil {
		return false, err
	}

	return appendOnce(config.ProjectDir, "README.md", readmeMarker, section)
}

func (s *fileScaffolder) render(name string, data any) ([]byte, error) {
	var buf bytes.Buffer

	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}

	return buf.Bytes(), nil
}

// writeIfAbsent creates a file with the given content unless it already
// exists. Parent directories are created as needed.
func writeIfAbsent(dir, name string, content []byte) (bool, error) {
	path := filepath.Join(dir, name)

	if _, err := os.Stat(path); err == nil {
		log.Debugf("Skipping %s, already exists", name)
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat %s: %w", name, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create directory for %s: %w", name, err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", name, err)
	}

	return true, nil
}

// appendOnce appends a block to an existing file unless the marker shows
// it was appended before. A missing file is created with just the block.
func appendOnce(dir, name, marker string, block []byte) (bool, error) {
	path := filepath.Join(dir, name)

	existing, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return false, fmt.Errorf("failed to read %s: %w", name, err)
		}

		if err := os.WriteFile(path, block, 0644); err != nil {
			return false, fmt.Errorf("failed to write %s: %w", name, err)
		}

		return true, nil
	}

	if strings.Contains(string(existing), marker) {
		log.Debugf("Skipping %s, generated section already present", name)
		return false, nil
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return false, fmt.Errorf("failed to open %s for append: %w", name, err)
	}
	defer file.Close()

	if !bytes.HasSuffix(existing, []byte("\n")) {
		block = append([]byte("\n"), block...)
	}

	if _, err := file.Write(append([]byte("\n"), block...)); err != nil {
		return false, fmt.Errorf("failed to append to %s: %w", name, err)
	}

	return true, nil
}
