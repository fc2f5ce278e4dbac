package rules

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Catalog file names, both embedded and in an override directory.
const (
	PerElementFile = "per_element.yaml"
	ContextFile    = "by_context.yaml"
)

//go:embed catalog/*.yaml
var embedded embed.FS

var (
	defaultOnce     sync.Once
	defaultCatalogs *Catalogs
)

// DefaultCatalogs returns the catalogs compiled into the binary. They are
// loaded once; a broken embedded catalog is a build defect and panics.
func DefaultCatalogs() *Catalogs {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(embedded, "catalog")
		if err != nil {
			panic(fmt.Sprintf("embedded rule catalog: %v", err))
		}
		cs, err := loadCatalogs(sub)
		if err != nil {
			panic(fmt.Sprintf("embedded rule catalog: %v", err))
		}
		defaultCatalogs = cs
	})
	return defaultCatalogs
}

// Loader handles loading rule catalogs from the filesystem
type Loader struct {
	basePath string
}

// NewLoader creates a loader reading catalogs from basePath
func NewLoader(basePath string) *Loader {
	return &Loader{basePath: basePath}
}

// LoadAll loads both catalogs from the loader's directory
func (l *Loader) LoadAll() (*Catalogs, error) {
	perElement, err := l.LoadFile(filepath.Join(l.basePath, PerElementFile))
	if err != nil {
		return nil, err
	}
	byContext, err := l.LoadFile(filepath.Join(l.basePath, ContextFile))
	if err != nil {
		return nil, err
	}

	return &Catalogs{
		PerElement: NewCatalog(CatalogPerElement, perElement),
		Context:    NewCatalog(CatalogContext, byContext),
	}, nil
}

// LoadFile loads the rules of a single YAML catalog file
func (l *Loader) LoadFile(path string) ([]Rule, error) {
	if err := l.validatePath(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	rules, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return rules, nil
}

// Parse decodes a YAML catalog and rejects it if any rule is invalid
func Parse(data []byte) ([]Rule, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(file.Rules) == 0 {
		return nil, fmt.Errorf("catalog %q has no rules", file.Catalog)
	}

	for _, result := range ValidateAll(file.Rules) {
		if !result.IsValid {
			return nil, result.Errors[0]
		}
	}

	return file.Rules, nil
}

func loadCatalogs(fsys fs.FS) (*Catalogs, error) {
	load := func(name string) ([]Rule, error) {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, err
		}
		return Parse(data)
	}

	perElement, err := load(PerElementFile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", PerElementFile, err)
	}
	byContext, err := load(ContextFile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ContextFile, err)
	}

	return &Catalogs{
		PerElement: NewCatalog(CatalogPerElement, perElement),
		Context:    NewCatalog(CatalogContext, byContext),
	}, nil
}

// validatePath ensures the given path is within the loader's basePath
func (l *Loader) validatePath(path string) error {
	cleanPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	cleanBase, err := filepath.Abs(filepath.Clean(l.basePath))
	if err != nil {
		return fmt.Errorf("failed to resolve base path: %w", err)
	}

	relPath, err := filepath.Rel(cleanBase, cleanPath)
	if err != nil {
		return fmt.Errorf("failed to compute relative path: %w", err)
	}

	if strings.HasPrefix(relPath, "..") || filepath.IsAbs(relPath) {
		return fmt.Errorf("path traversal detected: %s is outside base path %s", path, l.basePath)
	}

	return nil
}
