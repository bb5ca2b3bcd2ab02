package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader reads stylesheets from a styles/ directory under a base
// path, e.g. a conference's own assets folder.
type FilesystemLoader struct {
	dir string // absolute, symlink-free path of {basePath}/styles
}

// NewFilesystemLoader returns a loader for basePath, which must be an
// existing directory. The styles/ subdirectory may be missing; every
// lookup then reports ErrStyleNotFound.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	root, err := realDir(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	return &FilesystemLoader{dir: filepath.Join(root, "styles")}, nil
}

// realDir resolves path to an absolute directory path without symlinks.
func realDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	info, err := os.Stat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("directory does not exist: %s", abs)
	case err != nil:
		return "", err
	case !info.IsDir():
		return "", fmt.Errorf("not a directory: %s", abs)
	}
	return abs, nil
}

// LoadStyle returns the content of styles/{name}.css.
func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	path := filepath.Join(f.dir, name+".css")
	if !f.contains(path) {
		return "", fmt.Errorf("%w: %s", ErrPathTraversal, name)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- name validated, path contained
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q in %s", ErrStyleNotFound, name, f.dir)
	case err != nil:
		return "", fmt.Errorf("%w %s: %v", ErrAssetRead, name, err)
	}
	return string(data), nil
}

// contains reports whether path, after following symlinks, stays in the
// styles directory. A path that does not exist yet is judged as written.
func (f *FilesystemLoader) contains(path string) bool {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	rel, err := filepath.Rel(f.dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

// ListStyles returns the names of the .css files in styles/, sorted.
func (f *FilesystemLoader) ListStyles() []string {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil
	}
	return styleNames(entries)
}

// Compile-time interface check.
var _ AssetLoader = (*FilesystemLoader)(nil)
