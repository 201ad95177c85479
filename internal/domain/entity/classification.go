package entity

import "fmt"

// ClassificationAnswer поля, разобранные из свободного ответа модели.
// Пустая строка означает, что поле не найдено.
type ClassificationAnswer struct {
	Category    string
	Subcategory string
}

// Resolution правило, по которому получен результат валидации
type Resolution string

const (
	ResolutionExact              Resolution = "exact"
	ResolutionSubcategoryDefault Resolution = "subcategory_default"
	ResolutionCategoryFold       Resolution = "category_fold"
	ResolutionUnresolved         Resolution = "unresolved"
)

// ClassificationResult итог проверки ответа по справочнику
type ClassificationResult struct {
	Category    string     `json:"category,omitempty"`
	Subcategory string     `json:"subcategory,omitempty"`
	Coerced     bool       `json:"coerced"`              // значение подставлено из справочника
	Valid       bool       `json:"valid"`                // false: ответ не удалось привести к справочнику
	Resolution  Resolution `json:"resolution"`
	Raw         string     `json:"raw,omitempty"` // исходный текст, только для невалидного результата
}

// String форматирует результат так же, как его просят вернуть у модели
func (r ClassificationResult) String() string {
	if !r.Valid {
		return r.Raw
	}
	return fmt.Sprintf("Category: %s\nSubcategory: %s", r.Category, r.Subcategory)
}
