package news

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

//go:embed categories.toml
var categoriesTOML []byte

// Category is one header tab.
type Category struct {
	Key   string `toml:"key"`
	Label string `toml:"label"`
}

type categoryFile struct {
	Categories []Category `toml:"category"`
}

// DefaultCategories returns the embedded catalog.
func DefaultCategories() []Category {
	cats, err := parseCategories(categoriesTOML)
	if err != nil {
		// The embedded file is part of the binary; failing here is a build defect.
		panic(err)
	}
	return cats
}

// LoadCategories reads a user catalog from path, falling back to the
// embedded one when the file does not exist.
func LoadCategories(path string) ([]Category, error) {
	if path == "" {
		return DefaultCategories(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultCategories(), nil
		}
		return nil, fmt.Errorf("reading categories: %w", err)
	}
	return parseCategories(data)
}

func parseCategories(data []byte) ([]Category, error) {
	var file categoryFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing categories.toml: %w", err)
	}
	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("parsing categories.toml: no categories defined")
	}
	for i, c := range file.Categories {
		if c.Label == "" {
			file.Categories[i].Label = c.Key
		}
	}
	return file.Categories, nil
}

// IndexOf returns the tab index of key, or -1.
func IndexOf(cats []Category, key string) int {
	for i, c := range cats {
		if c.Key == key {
			return i
		}
	}
	return -1
}
