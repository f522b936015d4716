// Package catalog содержит встроенный список досок для навигации.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidCatalog возвращается при ошибке разбора каталога.
const ErrInvalidCatalog = "invalid board catalog"

//go:embed boards.yaml
var builtin []byte

// Board описывает доску в каталоге.
type Board struct {
	Code        string `yaml:"code" json:"boardCode"`
	Name        string `yaml:"name" json:"displayName"`
	Description string `yaml:"description" json:"description"`
}

// Catalog - упорядоченный список досок.
type Catalog struct {
	boards []Board
}

type document struct {
	Boards []Board `yaml:"boards"`
}

// Default возвращает встроенный каталог.
func Default() *Catalog {
	c, err := Parse(builtin)
	if err != nil {
		panic(err)
	}
	return c
}

// Parse разбирает каталог из YAML. Коды должны быть непустыми и уникальными.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrInvalidCatalog, err)
	}

	seen := make(map[string]struct{}, len(doc.Boards))
	for i, b := range doc.Boards {
		code := strings.TrimSpace(b.Code)
		if code == "" {
			return nil, fmt.Errorf("%s: board %d has no code", ErrInvalidCatalog, i)
		}
		if _, ok := seen[code]; ok {
			return nil, fmt.Errorf("%s: duplicate board %s", ErrInvalidCatalog, code)
		}
		seen[code] = struct{}{}
		doc.Boards[i].Code = code
	}

	return &Catalog{boards: doc.Boards}, nil
}

// Boards возвращает копию списка досок.
func (c *Catalog) Boards() []Board {
	out := make([]Board, len(c.boards))
	copy(out, c.boards)
	return out
}

// Lookup ищет доску по коду.
func (c *Catalog) Lookup(code string) (Board, bool) {
	for _, b := range c.boards {
		if b.Code == code {
			return b, true
		}
	}
	return Board{}, false
}
