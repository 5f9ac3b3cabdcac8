// Package dataset loads the read-only catalog: artists, categories and the
// closed vocabularies used by filters and the onboarding form.
package dataset

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/okian/artistly/internal/domain/model"
	"github.com/okian/artistly/internal/domain/vocab"
)

const (
	ArtistsFile    = "artists.json"
	CategoriesFile = "categories.json"
	OptionsFile    = "options.json"
)

//go:embed data/*.json
var embedded embed.FS

// Dataset is the catalog loaded once at startup.
type Dataset struct {
	Artists    []model.Artist
	Categories []model.Category
	Vocabulary *vocab.Vocabulary
}

// Load reads the dataset from dir, or from the embedded copy when dir is
// empty, and validates it.
func Load(ctx context.Context, dir string) (*Dataset, error) {
	var fsys fs.FS
	if dir == "" {
		sub, err := fs.Sub(embedded, "data")
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadDataset, err)
		}
		fsys = sub
	} else {
		fsys = os.DirFS(dir)
	}
	return LoadFS(ctx, fsys)
}

// LoadFS reads the three dataset files from fsys.
func LoadFS(ctx context.Context, fsys fs.FS) (*Dataset, error) {
	ds := &Dataset{Vocabulary: &vocab.Vocabulary{}}
	for _, f := range []struct {
		name string
		dst  any
	}{
		{OptionsFile, ds.Vocabulary},
		{CategoriesFile, &ds.Categories},
		{ArtistsFile, &ds.Artists},
	} {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := readJSON(fsys, f.name, f.dst); err != nil {
			return nil, err
		}
	}
	if err := Validate(ds); err != nil {
		return nil, err
	}
	return ds, nil
}

func readJSON(fsys fs.FS, name string, dst any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrLoadDataset, name, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidDataset, name, err)
	}
	return nil
}
