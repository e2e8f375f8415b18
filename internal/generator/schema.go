package generator

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/reloadgrid/reloadgo/internal/fsutil"
)

// Schema is the warehouse schema: table name to table definition.
type Schema struct {
	Tables map[string]Table `yaml:"tables"`
}

// Table defines one warehouse table.
type Table struct {
	Description string            `yaml:"description"`
	Columns     map[string]Column `yaml:"columns"`
}

// Column defines one table column.
type Column struct {
	Description string `yaml:"description"`
}

// Load decodes a schema from r.
func Load(r io.Reader) (*Schema, error) {
	var s Schema
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode schema: %w", err)
	}
	return &s, nil
}

// LoadPath loads a schema from a single YAML file, or merges every .yaml and
// .yml file under a directory. Tables defined in more than one file are an
// error: there is no meaningful merge for conflicting definitions.
func LoadPath(path string) (*Schema, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat schema path %s: %w", path, err)
	}

	if !info.IsDir() {
		return loadFile(path)
	}

	files, err := fsutil.FindFilesByExtension(path, ".yaml")
	if err != nil {
		return nil, err
	}
	more, err := fsutil.FindFilesByExtension(path, ".yml")
	if err != nil {
		return nil, err
	}
	files = append(files, more...)
	if len(files) == 0 {
		return nil, fmt.Errorf("no schema files found under %s", path)
	}

	merged := &Schema{Tables: make(map[string]Table)}
	for _, file := range files {
		s, err := loadFile(file)
		if err != nil {
			return nil, err
		}
		for name, table := range s.Tables {
			if _, exists := merged.Tables[name]; exists {
				return nil, fmt.Errorf("table %q defined more than once (last seen in %s)", name, file)
			}
			merged.Tables[name] = table
		}
	}
	return merged, nil
}

func loadFile(path string) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open schema file %s: %w", path, err)
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
