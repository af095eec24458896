// Package project resolves working directories to human-readable project
// aliases using a projwarp-style mapping file.
package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Alias is one entry of the mapping file.
type Alias struct {
	Name string
	Path string
}

// Mapper holds the aliases in the order they appear in the mapping file.
type Mapper struct {
	Aliases []Alias
}

// DefaultPath returns ~/.projwarp.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".projwarp.json"), nil
}

// Load reads the mapping file at path. A missing file yields an empty Mapper.
func Load(path string) (*Mapper, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Mapper{}, nil
		}
		return nil, err
	}
	aliases, err := decodeProjects(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse project map %s: %w", path, err)
	}
	return &Mapper{Aliases: aliases}, nil
}

// Resolve returns the alias for path. An exact match wins over a prefix
// match; among prefix matches the first alias in file order wins.
func (m *Mapper) Resolve(path string) (string, bool) {
	if m == nil {
		return "", false
	}
	p := normalize(path)
	for _, a := range m.Aliases {
		if p == normalize(a.Path) {
			return a.Name, true
		}
	}
	for _, a := range m.Aliases {
		if strings.HasPrefix(p, normalize(a.Path)) {
			return a.Name, true
		}
	}
	return "", false
}

// Lookup returns the path mapped to alias.
func (m *Mapper) Lookup(alias string) (string, bool) {
	if m == nil {
		return "", false
	}
	for _, a := range m.Aliases {
		if a.Name == alias {
			return a.Path, true
		}
	}
	return "", false
}

func normalize(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// decodeProjects walks {"projects": {...}} token by token so alias order
// matches the file.
func decodeProjects(data []byte) ([]Alias, error) {
	var doc struct {
		Projects json.RawMessage `json:"projects"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Projects) == 0 || string(doc.Projects) == "null" {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(doc.Projects))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("projects must be an object")
	}

	var aliases []Alias
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, _ := tok.(string)
		var path string
		if err := dec.Decode(&path); err != nil {
			return nil, fmt.Errorf("project %q: %w", name, err)
		}
		aliases = append(aliases, Alias{Name: name, Path: path})
	}
	return aliases, nil
}
