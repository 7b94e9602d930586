package catalog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var embedded embed.FS

var (
	// ErrInvalidCatalog is returned when a catalog file cannot be decoded or
	// contains invalid items.
	ErrInvalidCatalog = errors.New("invalid catalog")

	// ErrInvalidFilter is returned for unknown filter keys or values.
	ErrInvalidFilter = errors.New("invalid filter")
)

// Card is the presentable side of an item.
type Card interface {
	Front(direction string) string
	Back(direction string) string
}

// Provider returns a catalog's items in their canonical order.
type Provider[I any] interface {
	Items() []I
}

// List is a Provider over a fixed slice.
type List[I any] []I

// Items returns the list itself.
func (l List[I]) Items() []I {
	return l
}

// Catalogs is the full set of loaded study material.
type Catalogs struct {
	Declension  List[Declension]
	Vocabulary  List[Word]
	Conjugation List[Conjugation]
}

// Load reads all catalogs. If dir is non-empty, files found there take
// precedence over the embedded ones.
func Load(dir string) (*Catalogs, error) {
	validate := validator.New()

	declension, err := loadFile[Declension, int](dir, "declension.yaml", validate)
	if err != nil {
		return nil, err
	}
	vocabulary, err := loadFile[Word, string](dir, "vocabulary.yaml", validate)
	if err != nil {
		return nil, err
	}
	conjugation, err := loadFile[Conjugation, int](dir, "conjugation.yaml", validate)
	if err != nil {
		return nil, err
	}

	return &Catalogs{
		Declension:  declension,
		Vocabulary:  vocabulary,
		Conjugation: conjugation,
	}, nil
}

// document is the top-level shape of a catalog file.
type document[I any] struct {
	Items []I `yaml:"items"`
}

type identified[ID comparable] interface {
	ItemID() ID
}

func loadFile[I identified[ID], ID comparable](dir, name string, validate *validator.Validate) ([]I, error) {
	data, err := readCatalog(dir, name)
	if err != nil {
		return nil, err
	}
	return decode[I, ID](name, data, validate)
}

func readCatalog(dir, name string) ([]byte, error) {
	if dir != "" {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read catalog %s: %w", name, err)
		}
	}

	data, err := embedded.ReadFile("data/" + name)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded catalog %s: %w", name, err)
	}
	return data, nil
}

func decode[I identified[ID], ID comparable](name string, data []byte, validate *validator.Validate) ([]I, error) {
	var doc document[I]
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidCatalog, name, err)
	}

	seen := make(map[ID]struct{}, len(doc.Items))
	for i, item := range doc.Items {
		if err := validate.Struct(item); err != nil {
			return nil, fmt.Errorf("%w: %s: item %d: %v", ErrInvalidCatalog, name, i, err)
		}
		id := item.ItemID()
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate id %v", ErrInvalidCatalog, name, id)
		}
		seen[id] = struct{}{}
	}

	return doc.Items, nil
}
