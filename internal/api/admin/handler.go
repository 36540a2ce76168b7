package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gdg-menorca/resort-assistant/internal/entity"
	"github.com/gdg-menorca/resort-assistant/internal/pkg/formatter"
	"github.com/gdg-menorca/resort-assistant/internal/pkg/logger"
	"github.com/gdg-menorca/resort-assistant/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const recentLogLines = 50

// CorpusManager is the slice of the corpus lifecycle manager driven by the
// admin endpoints.
type CorpusManager interface {
	GenerateDocuments(ctx context.Context, interactive bool) (*entity.BatchReport, error)
	CreateCorpus(ctx context.Context) (*entity.CorpusInfo, error)
	UploadDocuments(ctx context.Context, corpus *entity.CorpusInfo) (*entity.BatchReport, error)
	Cleanup(ctx context.Context, dryRun bool) (*entity.CleanupReport, error)
	ExportBundle() (*formatter.Bundle, error)
}

type Handler struct {
	manager CorpusManager
	logFile string
}

func NewHandler(manager CorpusManager, logFile string) *Handler {
	return &Handler{manager: manager, logFile: logFile}
}

type pipelineResult struct {
	Message    string              `json:"message"`
	Generation *entity.BatchReport `json:"generation,omitempty"`
	Upload     *entity.BatchReport `json:"upload,omitempty"`
}

// PostGenerate handles POST /api/admin/generate: the full generate, create
// and upload pipeline, non-interactive.
func (h *Handler) PostGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "AdminGenerate")

	genReport, err := h.manager.GenerateDocuments(ctx, false)
	if err != nil {
		ctxzap.Error(ctx, "document generation failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "document generation failed: "+err.Error())
		return
	}
	if !genReport.OK() {
		response.JSON(w, http.StatusOK, pipelineResult{
			Message:    "document generation failed",
			Generation: genReport,
		})
		return
	}

	corpus, err := h.manager.CreateCorpus(ctx)
	if err != nil {
		ctxzap.Error(ctx, "corpus creation failed", zap.Error(err))
		response.JSON(w, http.StatusOK, pipelineResult{
			Message:    "documents generated but corpus creation failed",
			Generation: genReport,
		})
		return
	}

	uploadReport, err := h.manager.UploadDocuments(ctx, corpus)
	if err != nil || !uploadReport.OK() {
		if err != nil {
			ctxzap.Error(ctx, "upload failed", zap.Error(err))
		}
		response.JSON(w, http.StatusOK, pipelineResult{
			Message:    "documents generated but upload failed",
			Generation: genReport,
			Upload:     uploadReport,
		})
		return
	}

	response.JSON(w, http.StatusOK, pipelineResult{
		Message:    "corpus generated and uploaded successfully",
		Generation: genReport,
		Upload:     uploadReport,
	})
}

// PostCleanup handles POST /api/admin/cleanup. The query parameter
// dry_run=true limits it to reporting counts.
func (h *Handler) PostCleanup(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "AdminCleanup")

	dryRun := r.URL.Query().Get("dry_run") == "true"

	report, err := h.manager.Cleanup(ctx, dryRun)
	if err != nil && !errors.Is(err, entity.ErrNoDocuments) {
		ctxzap.Error(ctx, "cleanup failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "cleanup failed: "+err.Error())
		return
	}

	response.Success(w, report)
}

// GetExport handles GET /api/admin/export: it bundles the generated
// documents into a single downloadable file in the requested format.
func (h *Handler) GetExport(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "AdminExport")

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "markdown"
	}

	f, err := formatter.NewFactory().Create(format)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	bundle, err := h.manager.ExportBundle()
	if err != nil {
		if errors.Is(err, entity.ErrNoDocuments) {
			response.Error(w, http.StatusNotFound, "no generated documents to export")
			return
		}
		ctxzap.Error(ctx, "export failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "export failed: "+err.Error())
		return
	}

	data, err := f.Format(bundle)
	if err != nil {
		ctxzap.Error(ctx, "formatting export failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "export failed: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "corpus_export"+f.FileExtension()))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

type logsPayload struct {
	Lines []string `json:"lines"`
}

// GetLogs handles GET /api/admin/logs, returning the most recent log lines.
func (h *Handler) GetLogs(w http.ResponseWriter, r *http.Request) {
	lines, err := logger.ReadRecent(h.logFile, recentLogLines)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "failed to read logs: "+err.Error())
		return
	}

	response.Success(w, logsPayload{Lines: lines})
}
