package entity

// InspectionResult хранит итог разметки изображения.
type InspectionResult struct {
	ImageWidth      int          `json:"image_width"`      // ширина изображения
	ImageHeight     int          `json:"image_height"`     // высота изображения
	Areas           []DefectArea `json:"areas"`            // всегда хотя бы одна область
	Fallback        bool         `json:"fallback"`         // ни одно место не распознано, взят центр
	DefectMentioned bool         `json:"defect_mentioned"` // в тексте есть слова про дефект
}

// Boxes возвращает только рамки
func (r InspectionResult) Boxes() []BoundingBox {
	out := make([]BoundingBox, 0, len(r.Areas))
	for _, a := range r.Areas {
		out = append(out, a.Box)
	}
	return out
}

// LocationDescription текстовое описание мест дефектов от vision-модели.
type LocationDescription struct {
	Text string
}
