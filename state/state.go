// Package state persists small pieces of viewer state between runs, such as
// the spools last checked in each catalog.
package state

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/grovetools/spoolview/pkg/models"
	"github.com/grovetools/spoolview/pkg/paths"
	"gopkg.in/yaml.v3"
)

// State is the contents of the state file.
type State struct {
	Catalogs map[string]CatalogState `yaml:"catalogs,omitempty"`
}

// CatalogState is what is remembered about one catalog.
type CatalogState struct {
	Spools    []string  `yaml:"spools"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

// FilePath returns the state file under the state directory.
func FilePath() string {
	return filepath.Join(paths.StateDir(), "state.yml")
}

// Load reads the state file. A missing file yields an empty state.
func Load() (*State, error) {
	return LoadFrom(FilePath())
}

// LoadFrom reads state from path. A missing file yields an empty state.
func LoadFrom(path string) (*State, error) {
	s := &State{Catalogs: make(map[string]CatalogState)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}
	if s.Catalogs == nil {
		s.Catalogs = make(map[string]CatalogState)
	}
	return s, nil
}

// Save writes the state file.
func (s *State) Save() error {
	return s.SaveTo(FilePath())
}

// SaveTo writes state to path, creating its directory.
func (s *State) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

// LastSpools returns the spools remembered for catalog.
func (s *State) LastSpools(catalog string) []models.GroupID {
	key, err := paths.NormalizeForLookup(catalog)
	if err != nil {
		return nil
	}
	return models.GroupIDs(s.Catalogs[key].Spools)
}

// RememberSpools records spools for catalog. An empty list forgets it.
func (s *State) RememberSpools(catalog string, spools []models.GroupID) error {
	key, err := paths.NormalizeForLookup(catalog)
	if err != nil {
		return err
	}
	if len(spools) == 0 {
		delete(s.Catalogs, key)
		return nil
	}
	names := make([]string, len(spools))
	for i, g := range spools {
		names[i] = string(g)
	}
	slices.Sort(names)
	s.Catalogs[key] = CatalogState{Spools: names, UpdatedAt: time.Now().UTC()}
	return nil
}
