// Package manifest loads component definitions from YAML or JSON documents,
// so component schemas can live next to the templates they render instead of
// in Go code.
package manifest

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-phractal/pkg/component"
)

// documentFile is the on-disk shape: a map of component name to declaration.
type documentFile struct {
	Components map[string]componentFile `json:"components" yaml:"components"`
}

type componentFile struct {
	Template string      `json:"template" yaml:"template"`
	Fields   []fieldFile `json:"fields" yaml:"fields"`
}

type fieldFile struct {
	Name     string              `json:"name" yaml:"name"`
	Type     component.FieldType `json:"type" yaml:"type"`
	Required *bool               `json:"required,omitempty" yaml:"required,omitempty"`
	Default  any                 `json:"default,omitempty" yaml:"default,omitempty"`
}

// Load parses a single manifest document. JSON is tried first, then YAML,
// matching how schema files are detected elsewhere in the ecosystem.
func Load(data []byte, source string) (*Store, error) {
	store := NewStore()
	if err := loadInto(store, data, source); err != nil {
		return nil, err
	}
	return store, nil
}

// LoadFile reads and parses a manifest from disk.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	return Load(data, path)
}

// LoadFS walks fsys and parses every .json, .yaml, and .yml file into a
// single store. Component names must be unique across the whole tree.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := NewStore()
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isManifestFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("manifest: read %s: %w", path, err)
		}
		return loadInto(store, data, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

func loadInto(store *Store, data []byte, source string) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}

	for name, raw := range doc.Components {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			return fmt.Errorf("manifest: file %s declares a component with an empty name", source)
		}

		def, err := buildDefinition(trimmed, raw)
		if err != nil {
			return fmt.Errorf("manifest: file %s: %w", source, err)
		}
		if err := store.Register(def); err != nil {
			return fmt.Errorf("manifest: file %s: %w", source, err)
		}
	}
	return nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("manifest: file %s is empty", source)
	}

	var doc documentFile
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	// YAML is a superset of JSON here, so its error carries the useful
	// line/column detail for either syntax.
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("manifest: parse %s: %w", source, err)
	}
	return doc, nil
}

func buildDefinition(name string, raw componentFile) (*component.Definition, error) {
	fields := make([]component.Field, 0, len(raw.Fields))
	for _, f := range raw.Fields {
		field := component.Field{
			Name:    strings.TrimSpace(f.Name),
			Type:    f.Type,
			Default: f.Default,
		}
		// Fields are required unless the manifest says otherwise or a
		// default is declared.
		if f.Required != nil {
			field.Required = *f.Required
		} else {
			field.Required = f.Default == nil
		}
		fields = append(fields, field)
	}

	return component.NewDefinition(name,
		component.WithTemplate(raw.Template),
		component.WithFields(fields...),
	)
}

func isManifestFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
