package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/lazykit/internal/config"
	"github.com/vk/lazykit/internal/ctxlog"
	"github.com/vk/lazykit/internal/fsutil"
	"github.com/vk/lazykit/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load orchestrates the HCL configuration loading process. The path may be a
// single manifest file or a directory that is scanned recursively for .hcl
// files. Components from all files are merged; when several files carry an
// `engine` block, later files override earlier ones attribute by attribute.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	files, err := l.findManifestFiles(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered manifest files.", "count", len(files))

	model := &config.Model{Engine: config.Default()}
	if len(files) == 0 {
		logger.Warn("No .hcl manifest files found, using stock configuration.", "path", path)
		return model, nil
	}

	parser := hclparse.NewParser()
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var manifest schema.Manifest
		diags = gohcl.DecodeBody(hclFile.Body, nil, &manifest)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		if manifest.Engine != nil {
			applyEngineSettings(model.Engine, manifest.Engine)
		}
		for _, comp := range manifest.Components {
			def, err := translateComponent(comp)
			if err != nil {
				return nil, fmt.Errorf("in file %s: %w", file, err)
			}
			model.Components = append(model.Components, def)
		}
	}

	if err := model.Engine.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine configuration: %w", err)
	}

	logger.Info("Configuration loaded successfully.", "components_found", len(model.Components))
	return model, nil
}

// findManifestFiles resolves a path into the list of manifest files to parse.
func (l *Loader) findManifestFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat configuration path %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to find manifest files in %s: %w", path, err)
	}
	return files, nil
}
