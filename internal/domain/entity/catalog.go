package entity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyCategory     = errors.New("empty category name")
	ErrDuplicateCategory = errors.New("duplicate category")
	ErrEmptySubcategory  = errors.New("empty subcategory name")
)

// CatalogEntry категория и её подкатегории в исходном порядке
type CatalogEntry struct {
	Category      string
	Subcategories []string
}

// Catalog неизменяемый справочник категорий.
// Порядок подкатегорий значим: первая используется по умолчанию.
type Catalog struct {
	order []string
	subs  map[string][]string
}

// NewCatalog создаёт справочник, копируя входные данные
func NewCatalog(entries ...CatalogEntry) (*Catalog, error) {
	c := &Catalog{
		order: make([]string, 0, len(entries)),
		subs:  make(map[string][]string, len(entries)),
	}
	for _, e := range entries {
		if e.Category == "" {
			return nil, ErrEmptyCategory
		}
		if _, exists := c.subs[e.Category]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCategory, e.Category)
		}
		for _, sub := range e.Subcategories {
			if strings.TrimSpace(sub) == "" {
				return nil, fmt.Errorf("%w: category %q", ErrEmptySubcategory, e.Category)
			}
		}
		c.order = append(c.order, e.Category)
		c.subs[e.Category] = append([]string(nil), e.Subcategories...)
	}
	return c, nil
}

// Len количество категорий
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Categories возвращает категории в порядке объявления
func (c *Catalog) Categories() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.order...)
}

// Subcategories возвращает копию списка подкатегорий
func (c *Catalog) Subcategories(category string) ([]string, bool) {
	if c == nil {
		return nil, false
	}
	subs, ok := c.subs[category]
	if !ok {
		return nil, false
	}
	return append([]string(nil), subs...), true
}

// HasCategory точное (с учётом регистра) совпадение ключа
func (c *Catalog) HasCategory(category string) bool {
	if c == nil {
		return false
	}
	_, ok := c.subs[category]
	return ok
}

// HasSubcategory точное совпадение подкатегории внутри категории
func (c *Catalog) HasSubcategory(category, subcategory string) bool {
	if c == nil {
		return false
	}
	for _, s := range c.subs[category] {
		if s == subcategory {
			return true
		}
	}
	return false
}

// DefaultSubcategory первая подкатегория; false если категории нет или список пуст
func (c *Catalog) DefaultSubcategory(category string) (string, bool) {
	if c == nil {
		return "", false
	}
	subs := c.subs[category]
	if len(subs) == 0 {
		return "", false
	}
	return subs[0], true
}

// FoldCategory ищет ключ без учёта регистра, первый в порядке объявления
func (c *Catalog) FoldCategory(name string) (string, bool) {
	if c == nil {
		return "", false
	}
	for _, cat := range c.order {
		if strings.EqualFold(cat, name) {
			return cat, true
		}
	}
	return "", false
}

// Entries возвращает копию содержимого справочника
func (c *Catalog) Entries() []CatalogEntry {
	if c == nil {
		return nil
	}
	out := make([]CatalogEntry, 0, len(c.order))
	for _, cat := range c.order {
		out = append(out, CatalogEntry{
			Category:      cat,
			Subcategories: append([]string(nil), c.subs[cat]...),
		})
	}
	return out
}

// MarshalJSON сериализует справочник объектом, сохраняя порядок ключей
func (c *Catalog) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cat := range c.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		subs := c.subs[cat]
		if subs == nil {
			subs = []string{}
		}
		if err := writeJSON(&buf, cat); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSON(&buf, subs); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// writeJSON пишет значение без экранирования &, < и >
func writeJSON(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode добавляет перевод строки
	buf.Truncate(buf.Len() - 1)
	return nil
}

// Indented JSON с отступом в два пробела, для промпта
func (c *Catalog) Indented() (string, error) {
	raw, err := c.MarshalJSON()
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return "", err
	}
	return out.String(), nil
}
