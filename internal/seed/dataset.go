// Package seed loads reference content into an empty store.
package seed

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/starford/maqam/internal/checksum"
	"github.com/starford/maqam/internal/models"
	"github.com/starford/maqam/internal/store"
)

//go:embed dataset.yaml
var builtin []byte

// Dataset is the reference content, one list per kind.
type Dataset struct {
	Bio       *models.BioInput       `yaml:"bio"`
	Ensembles []models.EnsembleInput `yaml:"ensembles"`
	Events    []models.EventInput    `yaml:"events"`
	Videos    []models.VideoInput    `yaml:"videos"`
	Playlists []models.PlaylistInput `yaml:"playlists"`

	// Checksum is the SHA-256 of the source document.
	Checksum string `yaml:"-"`
}

// Builtin returns the dataset compiled into the binary.
func Builtin() (*Dataset, error) {
	return Parse(builtin)
}

// LoadFile reads a dataset from path. An empty path yields the builtin dataset.
func LoadFile(path string) (*Dataset, error) {
	if path == "" {
		return Builtin()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read dataset: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML dataset.
func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("seed: parse dataset: %w", err)
	}
	ds.Checksum = checksum.Sum(data)
	return &ds, nil
}

// Size reports how many rows the dataset holds for each kind.
func (ds *Dataset) Size() map[store.Kind]int {
	bio := 0
	if ds.Bio != nil {
		bio = 1
	}
	return map[store.Kind]int{
		store.KindBio:      bio,
		store.KindEnsemble: len(ds.Ensembles),
		store.KindEvent:    len(ds.Events),
		store.KindVideo:    len(ds.Videos),
		store.KindPlaylist: len(ds.Playlists),
	}
}
