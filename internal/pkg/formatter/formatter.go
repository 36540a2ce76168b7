package formatter

import "fmt"

// Document is one generated corpus artifact included in an export bundle.
type Document struct {
	Title string
	Body  string
}

// Bundle is the set of artifacts exported as a single reviewable file.
type Bundle struct {
	Title     string
	Documents []Document
}

type Formatter interface {
	Format(bundle *Bundle) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format string) (Formatter, error) {
	switch format {
	case "markdown", "md":
		return NewMarkdownFormatter(), nil
	case "pdf":
		return NewPDFFormatter(), nil
	case "docx":
		return NewDOCXFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
