package prompt

import "strings"

// Document найденный фрагмент базы знаний
type Document struct {
	Content string `json:"content"`
	Source  string `json:"source"`
}

// FormatContext собирает блок контекста: каждый документ как "Content: ...\nSource: ...",
// документы разделены пустой строкой. Пустой источник выводится пустым.
func FormatContext(docs []Document) string {
	blocks := make([]string, 0, len(docs))
	for _, d := range docs {
		blocks = append(blocks, "Content: "+d.Content+"\nSource: "+d.Source)
	}
	return strings.Join(blocks, "\n\n")
}
