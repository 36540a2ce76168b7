package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gdg-menorca/resort-assistant/internal/entity"
	"github.com/gdg-menorca/resort-assistant/internal/pkg/formatter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeManager struct {
	genReport    *entity.BatchReport
	genErr       error
	corpus       *entity.CorpusInfo
	createErr    error
	uploadReport *entity.BatchReport
	uploadErr    error
	bundle       *formatter.Bundle
	bundleErr    error

	cleanupDryRun bool
	cleanupCalled bool
}

func (f *fakeManager) GenerateDocuments(_ context.Context, _ bool) (*entity.BatchReport, error) {
	return f.genReport, f.genErr
}

func (f *fakeManager) CreateCorpus(_ context.Context) (*entity.CorpusInfo, error) {
	return f.corpus, f.createErr
}

func (f *fakeManager) UploadDocuments(_ context.Context, _ *entity.CorpusInfo) (*entity.BatchReport, error) {
	return f.uploadReport, f.uploadErr
}

func (f *fakeManager) Cleanup(_ context.Context, dryRun bool) (*entity.CleanupReport, error) {
	f.cleanupCalled = true
	f.cleanupDryRun = dryRun
	return &entity.CleanupReport{LocalFiles: 2, DryRun: dryRun}, nil
}

func (f *fakeManager) ExportBundle() (*formatter.Bundle, error) {
	return f.bundle, f.bundleErr
}

func okReport(n int) *entity.BatchReport {
	r := &entity.BatchReport{}
	for i := 0; i < n; i++ {
		r.Add("doc", nil)
	}
	return r
}

func TestPostGeneratePipeline(t *testing.T) {
	t.Run("full success", func(t *testing.T) {
		mgr := &fakeManager{
			genReport:    okReport(3),
			corpus:       &entity.CorpusInfo{Name: "abc123"},
			uploadReport: okReport(3),
		}
		h := NewHandler(mgr, "")

		rec := httptest.NewRecorder()
		h.PostGenerate(rec, httptest.NewRequest(http.MethodPost, "/api/admin/generate", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var result struct {
			Message string `json:"message"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, "corpus generated and uploaded successfully", result.Message)
	})

	t.Run("generation error", func(t *testing.T) {
		h := NewHandler(&fakeManager{genErr: errors.New("input missing")}, "")

		rec := httptest.NewRecorder()
		h.PostGenerate(rec, httptest.NewRequest(http.MethodPost, "/api/admin/generate", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("partial generation stops the pipeline", func(t *testing.T) {
		report := okReport(1)
		report.Add("failing doc", errors.New("boom"))
		mgr := &fakeManager{genReport: report}
		h := NewHandler(mgr, "")

		rec := httptest.NewRecorder()
		h.PostGenerate(rec, httptest.NewRequest(http.MethodPost, "/api/admin/generate", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var result struct {
			Message string `json:"message"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, "document generation failed", result.Message)
	})

	t.Run("create failure after generation", func(t *testing.T) {
		mgr := &fakeManager{genReport: okReport(2), createErr: errors.New("remote down")}
		h := NewHandler(mgr, "")

		rec := httptest.NewRecorder()
		h.PostGenerate(rec, httptest.NewRequest(http.MethodPost, "/api/admin/generate", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "corpus creation failed")
	})
}

func TestPostCleanupDryRunFlag(t *testing.T) {
	mgr := &fakeManager{}
	h := NewHandler(mgr, "")

	rec := httptest.NewRecorder()
	h.PostCleanup(rec, httptest.NewRequest(http.MethodPost, "/api/admin/cleanup?dry_run=true", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, mgr.cleanupCalled)
	assert.True(t, mgr.cleanupDryRun)

	rec = httptest.NewRecorder()
	h.PostCleanup(rec, httptest.NewRequest(http.MethodPost, "/api/admin/cleanup", nil))
	assert.False(t, mgr.cleanupDryRun)
}

func TestGetExport(t *testing.T) {
	bundle := &formatter.Bundle{
		Title:     "Hotel Chatbot Corpus",
		Documents: []formatter.Document{{Title: "Piscinas", Body: "Las piscinas abren de 9 a 20."}},
	}

	t.Run("markdown download", func(t *testing.T) {
		h := NewHandler(&fakeManager{bundle: bundle}, "")

		rec := httptest.NewRecorder()
		h.GetExport(rec, httptest.NewRequest(http.MethodGet, "/api/admin/export", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/markdown", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "corpus_export.md")
		assert.Contains(t, rec.Body.String(), "# Hotel Chatbot Corpus")
		assert.Contains(t, rec.Body.String(), "## Piscinas")
	})

	t.Run("pdf content type", func(t *testing.T) {
		h := NewHandler(&fakeManager{bundle: bundle}, "")

		rec := httptest.NewRecorder()
		h.GetExport(rec, httptest.NewRequest(http.MethodGet, "/api/admin/export?format=pdf", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "corpus_export.pdf")
	})

	t.Run("unknown format", func(t *testing.T) {
		h := NewHandler(&fakeManager{bundle: bundle}, "")

		rec := httptest.NewRecorder()
		h.GetExport(rec, httptest.NewRequest(http.MethodGet, "/api/admin/export?format=xlsx", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("nothing to export", func(t *testing.T) {
		h := NewHandler(&fakeManager{bundleErr: entity.ErrNoDocuments}, "")

		rec := httptest.NewRecorder()
		h.GetExport(rec, httptest.NewRequest(http.MethodGet, "/api/admin/export", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGetLogs(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "service.log")
	require.NoError(t, os.WriteFile(logFile, []byte("first\nsecond\n"), 0o644))

	h := NewHandler(&fakeManager{}, logFile)

	rec := httptest.NewRecorder()
	h.GetLogs(rec, httptest.NewRequest(http.MethodGet, "/api/admin/logs", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var payload struct {
		Lines []string `json:"lines"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, []string{"first", "second"}, payload.Lines)
}
