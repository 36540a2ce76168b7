package entity

// CorpusStatus describes the state of the remote corpus relative to the
// locally recorded document count. It is derived on demand, never stored as
// the source of truth.
type CorpusStatus string

const (
	StatusNotFound CorpusStatus = "not_found"
	StatusEmpty    CorpusStatus = "empty"
	StatusPartial  CorpusStatus = "partial"
	StatusComplete CorpusStatus = "complete"
	StatusError    CorpusStatus = "error"
)

// StatusSeverity classifies a status for rendering purposes.
type StatusSeverity string

const (
	SeveritySuccess StatusSeverity = "success"
	SeverityWarning StatusSeverity = "warning"
	SeverityError   StatusSeverity = "error"
)

// StatusPresentation holds the user-facing rendering of a corpus status.
type StatusPresentation struct {
	Label    string
	Message  string
	Severity StatusSeverity
}

var statusPresentations = map[CorpusStatus]StatusPresentation{
	StatusComplete: {
		Label:    "COMPLETE",
		Message:  "Corpus is ready and complete",
		Severity: SeveritySuccess,
	},
	StatusPartial: {
		Label:    "PARTIAL",
		Message:  "Corpus is partially loaded",
		Severity: SeverityWarning,
	},
	StatusEmpty: {
		Label:    "EMPTY",
		Message:  "Corpus exists but is empty",
		Severity: SeverityWarning,
	},
	StatusNotFound: {
		Label:    "NOT FOUND",
		Message:  "Corpus not found - run setup first",
		Severity: SeverityError,
	},
	StatusError: {
		Label:    "ERROR",
		Message:  "Error accessing corpus",
		Severity: SeverityError,
	},
}

// Presentation returns the rendering entry for the status.
func (s CorpusStatus) Presentation() StatusPresentation {
	if p, ok := statusPresentations[s]; ok {
		return p
	}
	return StatusPresentation{
		Label:    "UNKNOWN",
		Message:  "Unknown status",
		Severity: SeverityWarning,
	}
}

// Ready reports whether the corpus can serve retrieval requests.
func (s CorpusStatus) Ready() bool {
	return s == StatusComplete || s == StatusPartial
}

// CorpusMetadata is the flat local record tracking the remote corpus. It is
// read at startup and rewritten wholesale after every mutating operation.
type CorpusMetadata struct {
	Name             string            `json:"name"`
	DisplayName      string            `json:"display_name"`
	CreatedAt        string            `json:"created_at"`
	DocumentCount    int               `json:"document_count"`
	Status           CorpusStatus      `json:"status"`
	LastUpdated      string            `json:"last_updated"`
	GenerationConfig map[string]string `json:"generation_config"`
}

// CorpusInfo is the handle of a corpus on the remote vector-store service.
type CorpusInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// CorpusFile is a file indexed in a remote corpus.
type CorpusFile struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}
