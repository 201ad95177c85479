// Package classify приводит свободный ответ модели к значению из справочника категорий.
package classify

import (
	"strings"

	"complaint-bot/internal/domain/entity"
)

const (
	categoryPrefix    = "category:"
	subcategoryPrefix = "subcategory:"
)

// ParseAnswer ищет строки "Category:" и "Subcategory:" без учёта регистра.
// Каждое следующее совпадение перезаписывает предыдущее.
func ParseAnswer(raw string) entity.ClassificationAnswer {
	var ans entity.ClassificationAnswer
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, categoryPrefix):
			ans.Category = valueAfterColon(line)
		case strings.HasPrefix(lower, subcategoryPrefix):
			ans.Subcategory = valueAfterColon(line)
		}
	}
	return ans
}

func valueAfterColon(line string) string {
	_, value, _ := strings.Cut(line, ":")
	return strings.TrimSpace(value)
}

// Validator проверяет ответы по справочнику. Справочник не меняется,
// поэтому Validator безопасен для конкурентного использования.
type Validator struct {
	catalog *entity.Catalog
}

func NewValidator(catalog *entity.Catalog) *Validator {
	return &Validator{catalog: catalog}
}

// Catalog справочник, по которому идёт проверка
func (v *Validator) Catalog() *entity.Catalog {
	return v.catalog
}

// Validate никогда не завершается ошибкой: если ответ не удалось привести
// к справочнику, возвращается исходный текст с Valid=false.
func (v *Validator) Validate(raw string) entity.ClassificationResult {
	return v.Resolve(raw, ParseAnswer(raw))
}

// Resolve применяет правила к уже разобранному ответу; первое сработавшее побеждает.
func (v *Validator) Resolve(raw string, ans entity.ClassificationAnswer) entity.ClassificationResult {
	c := v.catalog
	category, sub := ans.Category, ans.Subcategory

	if category != "" && c.HasCategory(category) {
		if sub != "" && c.HasSubcategory(category, sub) {
			return entity.ClassificationResult{
				Category:    category,
				Subcategory: sub,
				Valid:       true,
				Resolution:  entity.ResolutionExact,
			}
		}
		if def, ok := c.DefaultSubcategory(category); ok {
			return entity.ClassificationResult{
				Category:    category,
				Subcategory: def,
				Coerced:     true,
				Valid:       true,
				Resolution:  entity.ResolutionSubcategoryDefault,
			}
		}
		return unresolved(raw)
	}

	if category != "" {
		// подкатегория из ответа отбрасывается, даже если она есть у найденного ключа
		if key, ok := c.FoldCategory(category); ok {
			if def, ok := c.DefaultSubcategory(key); ok {
				return entity.ClassificationResult{
					Category:    key,
					Subcategory: def,
					Coerced:     true,
					Valid:       true,
					Resolution:  entity.ResolutionCategoryFold,
				}
			}
		}
	}

	return unresolved(raw)
}

func unresolved(raw string) entity.ClassificationResult {
	return entity.ClassificationResult{
		Resolution: entity.ResolutionUnresolved,
		Raw:        raw,
	}
}
