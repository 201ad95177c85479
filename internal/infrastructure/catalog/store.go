// Package catalog загружает справочник категорий из файла.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"complaint-bot/internal/domain/entity"
)

var (
	ErrInvalidCatalog    = errors.New("invalid catalog")
	errNotStringArray    = errors.New("value must be an array of strings")
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
)

// Format формат файла справочника
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath определяет формат по расширению файла
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load читает справочник один раз при старте; любая ошибка фатальна для вызывающего.
func Load(path string) (*entity.Catalog, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse разбирает объект "категория -> [подкатегории]", сохраняя порядок ключей и элементов
func Parse(data []byte, format Format) (*entity.Catalog, error) {
	var (
		entries []entity.CatalogEntry
		err     error
	)
	switch format {
	case FormatJSON:
		entries, err = parseJSON(data)
	case FormatYAML:
		entries, err = parseYAML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return entity.NewCatalog(entries...)
}

func parseJSON(data []byte) ([]entity.CatalogEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("%w: root must be an object", ErrInvalidCatalog)
	}

	var entries []entity.CatalogEntry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
		}
		category, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: category %q: %v", ErrInvalidCatalog, category, err)
		}
		subs, err := stringArray(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: category %q: %v", ErrInvalidCatalog, category, err)
		}
		entries = append(entries, entity.CatalogEntry{Category: category, Subcategories: subs})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after object", ErrInvalidCatalog)
	}
	return entries, nil
}

// stringArray принимает только массив строк: null ни вместо массива, ни вместо элемента не допускается
func stringArray(raw json.RawMessage) ([]string, error) {
	var items []*string
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) || json.Unmarshal(raw, &items) != nil {
		return nil, errNotStringArray
	}
	subs := make([]string, 0, len(items))
	for i, item := range items {
		if item == nil {
			return nil, fmt.Errorf("item %d: %w", i, errNotStringArray)
		}
		subs = append(subs, *item)
	}
	return subs, nil
}

func parseYAML(data []byte) ([]entity.CatalogEntry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidCatalog)
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: root must be a mapping", ErrInvalidCatalog)
	}

	entries := make([]entity.CatalogEntry, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if !isString(key) {
			return nil, fmt.Errorf("%w: line %d: category must be a string", ErrInvalidCatalog, key.Line)
		}
		if val.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("%w: category %q: value must be a list", ErrInvalidCatalog, key.Value)
		}
		subs := make([]string, 0, len(val.Content))
		for _, item := range val.Content {
			if !isString(item) {
				return nil, fmt.Errorf("%w: category %q: line %d: subcategory must be a string", ErrInvalidCatalog, key.Value, item.Line)
			}
			subs = append(subs, item.Value)
		}
		entries = append(entries, entity.CatalogEntry{Category: key.Value, Subcategories: subs})
	}
	return entries, nil
}

// isString отсекает ~, числа и bool: без кавычек YAML разбирает их не как строки
func isString(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!str"
}
