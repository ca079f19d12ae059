// Package resource abstracts access to the external files referenced by
// property-source and file-import directives.
package resource

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Resource is one readable external resource.
type Resource interface {
	// Name is the resource's presentable identity, used as the default
	// property-source name.
	Name() string
	Open() (io.ReadCloser, error)
}

// Loader resolves locations to resources.
type Loader interface {
	Get(ctx context.Context, location string) (Resource, error)
}

// NotFoundError reports a location no resource exists at.
type NotFoundError struct {
	Location string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource %q does not exist", e.Location)
}

// FileLoader serves resources from the local file system. Relative
// locations resolve against Base.
type FileLoader struct {
	Base string
}

// NewFileLoader creates a file-system loader rooted at base. An empty base
// means the process working directory.
func NewFileLoader(base string) *FileLoader {
	return &FileLoader{Base: base}
}

// Get implements Loader.
func (l *FileLoader) Get(_ context.Context, location string) (Resource, error) {
	path := location
	if !filepath.IsAbs(path) && l.Base != "" {
		path = filepath.Join(l.Base, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Location: location}
		}
		return nil, fmt.Errorf("error accessing resource %s: %w", location, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("resource %q is a directory", location)
	}
	return &fileResource{name: location, path: path}, nil
}

type fileResource struct {
	name string
	path string
}

func (r *fileResource) Name() string { return r.name }

func (r *fileResource) Open() (io.ReadCloser, error) {
	return os.Open(r.path)
}

// MapLoader serves resources from an in-memory map of location to content.
// Tests use it to avoid touching the file system.
type MapLoader struct {
	Files map[string]string
}

// Get implements Loader.
func (l *MapLoader) Get(_ context.Context, location string) (Resource, error) {
	content, ok := l.Files[location]
	if !ok {
		return nil, &NotFoundError{Location: location}
	}
	return &stringResource{name: location, content: content}, nil
}

type stringResource struct {
	name    string
	content string
}

func (r *stringResource) Name() string { return r.name }

func (r *stringResource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader([]byte(r.content))), nil
}
