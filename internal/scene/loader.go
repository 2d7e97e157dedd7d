package scene

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/spatial/pkg/concurrent"
)

// LoadJSON decodes a document from JSON. Unknown keys are rejected.
func LoadJSON(r io.Reader) (*Document, error) {
	var d Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("scene: decode json: %w", err)
	}
	return &d, nil
}

// LoadYAML decodes a document from YAML. Unknown keys are rejected.
func LoadYAML(r io.Reader) (*Document, error) {
	var d Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("scene: decode yaml: %w", err)
	}
	return &d, nil
}

// LoadFile picks the decoder from the file extension (.yaml, .yml or .json) and
// validates the result. A document without a name is named after the file.
func LoadFile(path string) (*Document, error) {
	var load func(io.Reader) (*Document, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		load = LoadYAML
	case ".json":
		load = LoadJSON
	default:
		return nil, fmt.Errorf("scene: %s: %w", path, ErrUnsupportedFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}
	defer f.Close()

	d, err := load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if d.Name == "" {
		d.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err = d.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// LoadFiles loads every path concurrently. Documents come back in argument order; the
// first failure cancels the loads that have not started yet.
func LoadFiles(ctx context.Context, paths ...string) ([]*Document, error) {
	return concurrent.Map(ctx, paths, 4, func(_ context.Context, path string) (*Document, error) {
		return LoadFile(path)
	})
}
