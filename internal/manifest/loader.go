package manifest

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/confgraph/internal/ctxlog"
	"github.com/vk/confgraph/internal/fsutil"
	"github.com/vk/confgraph/internal/meta"
)

// Loader reads manifest files into a meta.Source.
type Loader struct{}

// NewLoader creates a manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load walks the given paths for .hcl files and adds every declared
// descriptor to the source. Paths that do not exist are skipped, matching
// the behavior of optional configuration directories.
func (l *Loader) Load(ctx context.Context, src *meta.Source, paths ...string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Manifest loader started.", "path_count", len(paths))

	var files []string
	seen := make(map[string]struct{})
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("error accessing path %s: %w", path, err)
		}
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return fmt.Errorf("failed to walk manifest path %s: %w", path, err)
		}
		for _, f := range found {
			if _, dup := seen[f]; !dup {
				files = append(files, f)
				seen[f] = struct{}{}
			}
		}
	}

	if len(files) == 0 {
		logger.Warn("No manifest files found in paths.", "paths", paths)
		return nil
	}
	logger.Debug("Discovered manifest files.", "count", len(files))

	parser := hclparse.NewParser()
	loaded := 0
	for _, filePath := range files {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return fmt.Errorf("failed to parse manifest file %s: %w", filePath, diags)
		}
		descriptors, diags := parseFile(ctx, hclFile, filePath)
		if diags.HasErrors() {
			return fmt.Errorf("failed to decode manifest file %s: %w", filePath, diags)
		}
		for _, d := range descriptors {
			if err := src.AddDescriptor(d); err != nil {
				return fmt.Errorf("failed to load manifest file %s: %w", filePath, err)
			}
		}
		loaded += len(descriptors)
		logger.Debug("Loaded declarations from manifest file.", "file", filePath, "units", len(descriptors))
	}

	logger.Info("Manifests loaded successfully.", "files", len(files), "units_declared", loaded)
	return nil
}

// LoadContent parses manifest source text directly into the source, without
// touching the file system. Tests and embedded declarations use it.
func (l *Loader) LoadContent(ctx context.Context, src *meta.Source, filename, content string) error {
	hclFile, diags := hclparse.NewParser().ParseHCL([]byte(content), filename)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse manifest %s: %w", filename, diags)
	}
	descriptors, diags := parseFile(ctx, hclFile, filename)
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode manifest %s: %w", filename, diags)
	}
	for _, d := range descriptors {
		if err := src.AddDescriptor(d); err != nil {
			return fmt.Errorf("failed to load manifest %s: %w", filename, err)
		}
	}
	return nil
}
