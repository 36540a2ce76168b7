package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gdg-menorca/resort-assistant/internal/config"
	"github.com/gdg-menorca/resort-assistant/internal/entity"
	"github.com/gdg-menorca/resort-assistant/internal/pkg/formatter"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const statusCacheKey = "corpus_status"

// Usecase drives the lifecycle of the remote corpus: document generation,
// corpus creation, upload and cleanup. Status is always derived from the
// remote service plus the locally recorded document count, never stored as
// ground truth.
type Usecase struct {
	displayName string
	inputFile   string
	outputDir   string

	llm         LLMConnector
	corpusConn  CorpusConnector
	store       MetadataStore
	confirm     ConfirmFunc
	statusCache *gocache.Cache
	logger      *zap.Logger

	// The server shares one Usecase between the admin, chat and health
	// handlers, so the metadata record is read and written concurrently.
	mu       sync.RWMutex
	metadata *entity.CorpusMetadata
}

// statusResult is the cached outcome of a remote status lookup.
type statusResult struct {
	corpus *entity.CorpusInfo
	status entity.CorpusStatus
}

// NewUsecase creates the corpus lifecycle manager and loads the local
// metadata record, falling back to a fresh one when missing or unreadable.
func NewUsecase(
	cfg *config.Config,
	store MetadataStore,
	llm LLMConnector,
	corpusConn CorpusConnector,
	confirm ConfirmFunc,
	logger *zap.Logger,
) *Usecase {
	uc := &Usecase{
		displayName: cfg.CorpusDisplayName,
		inputFile:   cfg.InputFile,
		outputDir:   cfg.OutputDir,
		llm:         llm,
		corpusConn:  corpusConn,
		store:       store,
		confirm:     confirm,
		statusCache: gocache.New(cfg.StatusCacheTTL, 2*cfg.StatusCacheTTL),
		logger:      logger,
	}

	md, err := store.Load()
	if err != nil {
		logger.Warn("failed to load corpus metadata, starting fresh", zap.Error(err))
		md = &entity.CorpusMetadata{
			DisplayName:      cfg.CorpusDisplayName,
			Status:           entity.StatusNotFound,
			GenerationConfig: cfg.GenerationSettings(),
		}
	}
	uc.metadata = md

	return uc
}

// Metadata returns a snapshot of the current local metadata record.
func (uc *Usecase) Metadata() *entity.CorpusMetadata {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	md := *uc.metadata
	return &md
}

// LocalDocumentCount counts the generated artifacts on disk.
func (uc *Usecase) LocalDocumentCount() int {
	paths, _ := filepath.Glob(filepath.Join(uc.outputDir, "*.txt"))
	return len(paths)
}

// GetStatus derives the corpus status from the remote service: no matching
// corpus means NOT_FOUND, zero files EMPTY, fewer files than the locally
// recorded document count PARTIAL, otherwise COMPLETE. Remote errors map to
// ERROR, with the corpus handle still returned when it was already found.
func (uc *Usecase) GetStatus(ctx context.Context) (*entity.CorpusInfo, entity.CorpusStatus) {
	corpora, err := uc.corpusConn.ListCorpora(ctx)
	if err != nil {
		ctxzap.Error(ctx, "error checking corpus status", zap.Error(err))
		return nil, entity.StatusError
	}

	recorded := uc.Metadata().DocumentCount

	for i := range corpora {
		corpus := &corpora[i]
		if corpus.DisplayName != uc.displayName {
			continue
		}

		files, err := uc.corpusConn.ListFiles(ctx, corpus.Name)
		if err != nil {
			ctxzap.Error(ctx, "error counting corpus files", zap.Error(err))
			return corpus, entity.StatusError
		}

		switch {
		case len(files) == 0:
			return corpus, entity.StatusEmpty
		case len(files) < recorded:
			return corpus, entity.StatusPartial
		default:
			return corpus, entity.StatusComplete
		}
	}

	return nil, entity.StatusNotFound
}

// GetStatusCached serves frequent health probes without hammering the
// remote service. Mutating operations invalidate the cache.
func (uc *Usecase) GetStatusCached(ctx context.Context) (*entity.CorpusInfo, entity.CorpusStatus) {
	if v, ok := uc.statusCache.Get(statusCacheKey); ok {
		res := v.(statusResult)
		return res.corpus, res.status
	}

	corpus, status := uc.GetStatus(ctx)
	uc.statusCache.SetDefault(statusCacheKey, statusResult{corpus: corpus, status: status})
	return corpus, status
}

func (uc *Usecase) invalidateStatus() {
	uc.statusCache.Delete(statusCacheKey)
}

// updateMetadata applies mutate to the metadata record, persists it and
// invalidates the cached status, all under the write lock.
func (uc *Usecase) updateMetadata(mutate func(md *entity.CorpusMetadata)) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	mutate(uc.metadata)
	if err := uc.store.Save(uc.metadata); err != nil {
		return fmt.Errorf("save metadata: %w", err)
	}
	uc.invalidateStatus()
	return nil
}

// GenerateDocuments reads the input document list and generates one artifact
// per entry via the completion service. Entries whose artifact already
// exists are skipped. Failures are isolated per document and counted; the
// metadata record is updated only when at least one document was attempted,
// so a fully skipped run leaves the recorded count untouched.
func (uc *Usecase) GenerateDocuments(ctx context.Context, interactive bool) (*entity.BatchReport, error) {
	docs, err := uc.readInput()
	if err != nil {
		return nil, err
	}

	if interactive && uc.confirm != nil {
		if !uc.confirm(fmt.Sprintf("Found %d documents to generate. Continue?", len(docs))) {
			return nil, entity.ErrGenerationAborted
		}
	}

	if err := os.MkdirAll(uc.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	report := &entity.BatchReport{}
	for _, doc := range docs {
		filename := SanitizeFilename(doc.Title) + ".txt"
		path := filepath.Join(uc.outputDir, filename)

		if _, err := os.Stat(path); err == nil {
			ctxzap.Info(ctx, "skipped (exists)", zap.String("title", doc.Title))
			report.AddSkipped(doc.Title)
			continue
		}

		text, err := uc.llm.Generate(ctx, doc.Prompt+additionalInstructions)
		if err != nil {
			ctxzap.Error(ctx, "failed to generate document",
				zap.String("title", doc.Title),
				zap.Error(err),
			)
			report.Add(doc.Title, err)
			continue
		}

		if err := os.WriteFile(path, []byte(strings.TrimSpace(text)), 0o644); err != nil {
			ctxzap.Error(ctx, "failed to write artifact",
				zap.String("title", doc.Title),
				zap.Error(err),
			)
			report.Add(doc.Title, err)
			continue
		}

		ctxzap.Info(ctx, "generated document", zap.String("title", doc.Title))
		report.Add(doc.Title, nil)
	}

	if report.Attempted() > 0 {
		err := uc.updateMetadata(func(md *entity.CorpusMetadata) {
			md.DocumentCount = report.Successful
			md.LastUpdated = time.Now().Format(time.RFC3339)
			if report.OK() {
				md.Status = entity.StatusComplete
			} else {
				md.Status = entity.StatusPartial
			}
		})
		if err != nil {
			return report, err
		}
	}

	ctxzap.Info(ctx, "generation finished",
		zap.Int("successful", report.Successful),
		zap.Int("failed", report.Failed),
		zap.Int("skipped", report.Skipped),
	)

	return report, nil
}

// CreateCorpus creates the remote corpus unless it already exists, in which
// case the existing handle is returned unchanged.
func (uc *Usecase) CreateCorpus(ctx context.Context) (*entity.CorpusInfo, error) {
	corpus, status := uc.GetStatus(ctx)
	if corpus != nil && status != entity.StatusNotFound {
		ctxzap.Info(ctx, "corpus already exists",
			zap.String("corpus_name", corpus.Name),
			zap.String("status", string(status)),
		)
		return corpus, nil
	}

	created, err := uc.corpusConn.CreateCorpus(ctx, uc.displayName)
	if err != nil {
		return nil, fmt.Errorf("create corpus: %w", err)
	}

	err = uc.updateMetadata(func(md *entity.CorpusMetadata) {
		md.Name = created.Name
		md.CreatedAt = time.Now().Format(time.RFC3339)
		md.Status = entity.StatusEmpty
	})
	if err != nil {
		return created, err
	}

	return created, nil
}

// UploadDocuments uploads every local artifact into the corpus, counting
// successes and failures independently of the generation run.
func (uc *Usecase) UploadDocuments(ctx context.Context, corpus *entity.CorpusInfo) (*entity.BatchReport, error) {
	paths, err := filepath.Glob(filepath.Join(uc.outputDir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("glob artifacts: %w", err)
	}
	if len(paths) == 0 {
		return nil, entity.ErrNoDocuments
	}

	ctxzap.Info(ctx, "uploading documents to corpus",
		zap.String("corpus_name", corpus.Name),
		zap.Int("count", len(paths)),
	)

	report := &entity.BatchReport{}
	for _, path := range paths {
		filename := filepath.Base(path)

		content, err := os.ReadFile(path)
		if err != nil {
			ctxzap.Error(ctx, "failed to read artifact",
				zap.String("file", filename),
				zap.Error(err),
			)
			report.Add(filename, err)
			continue
		}

		if err := uc.corpusConn.UploadFile(ctx, corpus.Name, filename, artifactStem(filename), content); err != nil {
			ctxzap.Error(ctx, "failed to upload artifact",
				zap.String("file", filename),
				zap.Error(err),
			)
			report.Add(filename, err)
			continue
		}

		ctxzap.Info(ctx, "uploaded artifact", zap.String("file", filename))
		report.Add(filename, nil)
	}

	err = uc.updateMetadata(func(md *entity.CorpusMetadata) {
		md.DocumentCount = report.Successful
		md.LastUpdated = time.Now().Format(time.RFC3339)
		if report.OK() {
			md.Status = entity.StatusComplete
		} else {
			md.Status = entity.StatusPartial
		}
	})
	if err != nil {
		return report, err
	}

	return report, nil
}

// Cleanup removes local artifacts and optionally the remote corpus. A dry
// run only reports counts. Live runs ask for confirmation before each of
// the two destructive steps; deleting the remote corpus resets the metadata
// record to NOT_FOUND.
func (uc *Usecase) Cleanup(ctx context.Context, dryRun bool) (*entity.CleanupReport, error) {
	paths, err := filepath.Glob(filepath.Join(uc.outputDir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("glob artifacts: %w", err)
	}

	report := &entity.CleanupReport{LocalFiles: len(paths), DryRun: dryRun}
	if len(paths) == 0 {
		ctxzap.Info(ctx, "no local files to clean up")
		return report, nil
	}
	if dryRun {
		ctxzap.Info(ctx, "dry run, nothing deleted", zap.Int("local_files", len(paths)))
		return report, nil
	}

	if uc.confirm == nil || uc.confirm("Delete local generated documents?") {
		for _, path := range paths {
			if err := os.Remove(path); err != nil {
				return report, fmt.Errorf("delete %s: %w", path, err)
			}
			ctxzap.Info(ctx, "deleted artifact", zap.String("file", filepath.Base(path)))
		}
		report.LocalDeleted = true
	}

	corpus, _ := uc.GetStatus(ctx)
	if corpus == nil {
		return report, nil
	}

	if uc.confirm == nil || uc.confirm("Delete remote corpus? This cannot be undone!") {
		if err := uc.corpusConn.DeleteCorpus(ctx, corpus.Name); err != nil {
			return report, fmt.Errorf("delete corpus: %w", err)
		}

		err := uc.updateMetadata(func(md *entity.CorpusMetadata) {
			md.Name = ""
			md.Status = entity.StatusNotFound
		})
		if err != nil {
			return report, err
		}
		report.CorpusDeleted = true
	}

	return report, nil
}

// ExportBundle collects the generated artifacts into a formatter bundle for
// the export surfaces (CLI file export and admin download).
func (uc *Usecase) ExportBundle() (*formatter.Bundle, error) {
	paths, err := filepath.Glob(filepath.Join(uc.outputDir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("glob artifacts: %w", err)
	}
	if len(paths) == 0 {
		return nil, entity.ErrNoDocuments
	}

	bundle := &formatter.Bundle{Title: uc.displayName}
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read artifact %s: %w", path, err)
		}
		bundle.Documents = append(bundle.Documents, formatter.Document{
			Title: artifactStem(filepath.Base(path)),
			Body:  string(content),
		})
	}
	return bundle, nil
}

func (uc *Usecase) readInput() ([]entity.DocumentSpec, error) {
	data, err := os.ReadFile(uc.inputFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", entity.ErrInputNotFound, uc.inputFile)
		}
		return nil, fmt.Errorf("read input file: %w", err)
	}

	var docs []entity.DocumentSpec
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parse input file: %w", err)
	}
	return docs, nil
}
