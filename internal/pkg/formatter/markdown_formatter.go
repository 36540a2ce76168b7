package formatter

import (
	"bytes"
	"fmt"
)

const (
	markdownContentType   = "text/markdown"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(bundle *Bundle) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n", bundle.Title)
	for _, doc := range bundle.Documents {
		fmt.Fprintf(&buf, "\n## %s\n\n%s\n", doc.Title, doc.Body)
	}

	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
