package entity

// DocumentSpec is one entry of the input document list.
type DocumentSpec struct {
	Title  string `json:"title"`
	Prompt string `json:"prompt"`
}

// DocumentResult is the outcome of processing a single document.
type DocumentResult struct {
	Title   string
	Skipped bool
	Err     error
}

// BatchReport aggregates per-document outcomes of a generation or upload run.
type BatchReport struct {
	Successful int
	Failed     int
	Skipped    int
	Results    []DocumentResult
}

// Add records a single document outcome.
func (r *BatchReport) Add(title string, err error) {
	r.Results = append(r.Results, DocumentResult{Title: title, Err: err})
	if err != nil {
		r.Failed++
	} else {
		r.Successful++
	}
}

// AddSkipped records a document whose artifact already exists.
func (r *BatchReport) AddSkipped(title string) {
	r.Results = append(r.Results, DocumentResult{Title: title, Skipped: true})
	r.Skipped++
}

// OK reports whether the whole batch succeeded.
func (r *BatchReport) OK() bool {
	return r.Failed == 0
}

// Attempted returns the number of documents actually processed, excluding
// skipped ones.
func (r *BatchReport) Attempted() int {
	return r.Successful + r.Failed
}

// CleanupReport summarizes a cleanup run.
type CleanupReport struct {
	LocalFiles    int  `json:"local_files"`
	LocalDeleted  bool `json:"local_deleted"`
	CorpusDeleted bool `json:"corpus_deleted"`
	DryRun        bool `json:"dry_run"`
}
