package corpus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gdg-menorca/resort-assistant/internal/config"
	"github.com/gdg-menorca/resort-assistant/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeLLM struct {
	generate func(prompt string) (string, error)
	prompts  []string
}

func (f *fakeLLM) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.generate(prompt)
}

type fakeCorpusConn struct {
	mu       sync.Mutex
	corpora  []entity.CorpusInfo
	files    map[string][]entity.CorpusFile
	listErr  error
	filesErr error

	listCalls int
	uploaded  []string
	uploadErr func(displayName string) error
	deleted   []string
}

func (f *fakeCorpusConn) ListCorpora(_ context.Context) ([]entity.CorpusInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.corpora, nil
}

func (f *fakeCorpusConn) ListFiles(_ context.Context, corpusName string) ([]entity.CorpusFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.filesErr != nil {
		return nil, f.filesErr
	}
	return f.files[corpusName], nil
}

func (f *fakeCorpusConn) CreateCorpus(_ context.Context, displayName string) (*entity.CorpusInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	created := entity.CorpusInfo{Name: "corpora/new-1", DisplayName: displayName}
	f.corpora = append(f.corpora, created)
	return &created, nil
}

func (f *fakeCorpusConn) UploadFile(_ context.Context, _, displayName, _ string, _ []byte) error {
	if f.uploadErr != nil {
		if err := f.uploadErr(displayName); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploaded = append(f.uploaded, displayName)
	return nil
}

func (f *fakeCorpusConn) DeleteCorpus(_ context.Context, corpusName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, corpusName)
	return nil
}

type memStore struct {
	md    *entity.CorpusMetadata
	saves int
}

func (s *memStore) Load() (*entity.CorpusMetadata, error) {
	if s.md == nil {
		return nil, os.ErrNotExist
	}
	cp := *s.md
	return &cp, nil
}

func (s *memStore) Save(md *entity.CorpusMetadata) error {
	cp := *md
	s.md = &cp
	s.saves++
	return nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		CorpusDisplayName: "Hotel Chatbot Corpus",
		InputFile:         filepath.Join(dir, "documents.json"),
		OutputDir:         filepath.Join(dir, "generated"),
		StatusCacheTTL:    time.Minute,
	}
}

func writeInput(t *testing.T, cfg *config.Config, docs []entity.DocumentSpec) {
	t.Helper()
	data, err := json.Marshal(docs)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(cfg.InputFile, data, 0o644))
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hotel & Spa Overview", "Hotel___Spa_Overview"},
		{"Room/Suite Types", "Room_Suite_Types"},
		{"Dining @ Resort", "Dining___Resort"},
		{"Kids' Activities", "Kids__Activities"},
		{"Wi-Fi & Internet", "Wi-Fi___Internet"},
		{"already-safe_name.v2", "already-safe_name.v2"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SanitizeFilename(tc.in), "input %q", tc.in)
	}
}

func TestGetStatusDerivation(t *testing.T) {
	corpus := entity.CorpusInfo{Name: "corpora/1", DisplayName: "Hotel Chatbot Corpus"}
	files := func(n int) []entity.CorpusFile {
		out := make([]entity.CorpusFile, n)
		for i := range out {
			out[i] = entity.CorpusFile{Name: fmt.Sprintf("files/%d", i)}
		}
		return out
	}

	cases := []struct {
		name       string
		conn       *fakeCorpusConn
		localCount int
		wantCorpus bool
		wantStatus entity.CorpusStatus
	}{
		{
			name:       "list error",
			conn:       &fakeCorpusConn{listErr: errors.New("boom")},
			wantCorpus: false,
			wantStatus: entity.StatusError,
		},
		{
			name:       "no matching corpus",
			conn:       &fakeCorpusConn{corpora: []entity.CorpusInfo{{Name: "corpora/9", DisplayName: "Other"}}},
			wantCorpus: false,
			wantStatus: entity.StatusNotFound,
		},
		{
			name:       "zero files",
			conn:       &fakeCorpusConn{corpora: []entity.CorpusInfo{corpus}},
			localCount: 3,
			wantCorpus: true,
			wantStatus: entity.StatusEmpty,
		},
		{
			name: "fewer files than recorded",
			conn: &fakeCorpusConn{
				corpora: []entity.CorpusInfo{corpus},
				files:   map[string][]entity.CorpusFile{"corpora/1": files(2)},
			},
			localCount: 3,
			wantCorpus: true,
			wantStatus: entity.StatusPartial,
		},
		{
			name: "all files present",
			conn: &fakeCorpusConn{
				corpora: []entity.CorpusInfo{corpus},
				files:   map[string][]entity.CorpusFile{"corpora/1": files(3)},
			},
			localCount: 3,
			wantCorpus: true,
			wantStatus: entity.StatusComplete,
		},
		{
			name: "file listing error keeps corpus handle",
			conn: &fakeCorpusConn{
				corpora:  []entity.CorpusInfo{corpus},
				filesErr: errors.New("boom"),
			},
			wantCorpus: true,
			wantStatus: entity.StatusError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig(t)
			store := &memStore{md: &entity.CorpusMetadata{
				DisplayName:   cfg.CorpusDisplayName,
				DocumentCount: tc.localCount,
			}}
			uc := NewUsecase(cfg, store, &fakeLLM{}, tc.conn, nil, zap.NewNop())

			got, status := uc.GetStatus(context.Background())
			assert.Equal(t, tc.wantStatus, status)
			if tc.wantCorpus {
				require.NotNil(t, got)
				assert.Equal(t, corpus.Name, got.Name)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestGetStatusCached(t *testing.T) {
	cfg := testConfig(t)
	conn := &fakeCorpusConn{}
	uc := NewUsecase(cfg, &memStore{}, &fakeLLM{}, conn, nil, zap.NewNop())

	_, status := uc.GetStatusCached(context.Background())
	assert.Equal(t, entity.StatusNotFound, status)
	_, _ = uc.GetStatusCached(context.Background())
	assert.Equal(t, 1, conn.listCalls, "second lookup should be served from cache")
}

func TestGenerateDocuments(t *testing.T) {
	docs := []entity.DocumentSpec{
		{Title: "Hotel & Spa Overview", Prompt: "describe the hotel"},
		{Title: "Pool Rules", Prompt: "describe the pools"},
	}

	t.Run("partial failure", func(t *testing.T) {
		cfg := testConfig(t)
		writeInput(t, cfg, docs)
		store := &memStore{}
		llm := &fakeLLM{generate: func(prompt string) (string, error) {
			if strings.Contains(prompt, "pools") {
				return "", errors.New("completion failed")
			}
			return "  generated text  ", nil
		}}
		uc := NewUsecase(cfg, store, llm, &fakeCorpusConn{}, nil, zap.NewNop())

		report, err := uc.GenerateDocuments(context.Background(), false)
		require.NoError(t, err)
		assert.False(t, report.OK())
		assert.Equal(t, 1, report.Successful)
		assert.Equal(t, 1, report.Failed)

		require.NotNil(t, store.md)
		assert.Equal(t, 1, store.md.DocumentCount)
		assert.Equal(t, entity.StatusPartial, store.md.Status)

		// Artifact content is trimmed and named from the sanitized title.
		data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "Hotel___Spa_Overview.txt"))
		require.NoError(t, err)
		assert.Equal(t, "generated text", string(data))
	})

	t.Run("all succeed", func(t *testing.T) {
		cfg := testConfig(t)
		writeInput(t, cfg, docs)
		store := &memStore{}
		llm := &fakeLLM{generate: func(string) (string, error) { return "ok", nil }}
		uc := NewUsecase(cfg, store, llm, &fakeCorpusConn{}, nil, zap.NewNop())

		report, err := uc.GenerateDocuments(context.Background(), false)
		require.NoError(t, err)
		assert.True(t, report.OK())
		assert.Equal(t, 2, store.md.DocumentCount)
		assert.Equal(t, entity.StatusComplete, store.md.Status)

		// Every prompt carries the hotel instructions suffix.
		for _, p := range llm.prompts {
			assert.Contains(t, p, "GDG Menorca Resort")
		}
	})

	t.Run("existing artifacts are skipped and metadata untouched", func(t *testing.T) {
		cfg := testConfig(t)
		writeInput(t, cfg, docs)
		require.NoError(t, os.MkdirAll(cfg.OutputDir, 0o755))
		for _, d := range docs {
			path := filepath.Join(cfg.OutputDir, SanitizeFilename(d.Title)+".txt")
			require.NoError(t, os.WriteFile(path, []byte("existing"), 0o644))
		}

		store := &memStore{md: &entity.CorpusMetadata{
			DisplayName:   cfg.CorpusDisplayName,
			DocumentCount: 2,
			Status:        entity.StatusComplete,
		}}
		llm := &fakeLLM{generate: func(string) (string, error) {
			t.Fatal("completion must not be called for existing artifacts")
			return "", nil
		}}
		uc := NewUsecase(cfg, store, llm, &fakeCorpusConn{}, nil, zap.NewNop())

		report, err := uc.GenerateDocuments(context.Background(), false)
		require.NoError(t, err)
		assert.Equal(t, 2, report.Skipped)
		assert.Equal(t, 0, report.Attempted())
		assert.Equal(t, 0, store.saves, "fully skipped run must not rewrite metadata")
		assert.Equal(t, 2, store.md.DocumentCount)
	})

	t.Run("interactive abort", func(t *testing.T) {
		cfg := testConfig(t)
		writeInput(t, cfg, docs)
		decline := func(string) bool { return false }
		uc := NewUsecase(cfg, &memStore{}, &fakeLLM{}, &fakeCorpusConn{}, decline, zap.NewNop())

		_, err := uc.GenerateDocuments(context.Background(), true)
		assert.ErrorIs(t, err, entity.ErrGenerationAborted)
	})

	t.Run("missing input file", func(t *testing.T) {
		cfg := testConfig(t)
		uc := NewUsecase(cfg, &memStore{}, &fakeLLM{}, &fakeCorpusConn{}, nil, zap.NewNop())

		_, err := uc.GenerateDocuments(context.Background(), false)
		assert.ErrorIs(t, err, entity.ErrInputNotFound)
	})
}

func TestCreateCorpus(t *testing.T) {
	t.Run("creates when absent", func(t *testing.T) {
		cfg := testConfig(t)
		store := &memStore{}
		conn := &fakeCorpusConn{}
		uc := NewUsecase(cfg, store, &fakeLLM{}, conn, nil, zap.NewNop())

		created, err := uc.CreateCorpus(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "corpora/new-1", created.Name)
		assert.Equal(t, "corpora/new-1", store.md.Name)
		assert.Equal(t, entity.StatusEmpty, store.md.Status)
		assert.NotEmpty(t, store.md.CreatedAt)
	})

	t.Run("returns existing handle unchanged", func(t *testing.T) {
		cfg := testConfig(t)
		existing := entity.CorpusInfo{Name: "corpora/1", DisplayName: cfg.CorpusDisplayName}
		conn := &fakeCorpusConn{
			corpora: []entity.CorpusInfo{existing},
			files:   map[string][]entity.CorpusFile{"corpora/1": {{Name: "files/0"}}},
		}
		store := &memStore{}
		uc := NewUsecase(cfg, store, &fakeLLM{}, conn, nil, zap.NewNop())

		got, err := uc.CreateCorpus(context.Background())
		require.NoError(t, err)
		assert.Equal(t, existing.Name, got.Name)
		assert.Equal(t, 0, store.saves)
	})
}

func TestUploadDocuments(t *testing.T) {
	corpus := &entity.CorpusInfo{Name: "corpora/1", DisplayName: "Hotel Chatbot Corpus"}

	t.Run("no artifacts", func(t *testing.T) {
		cfg := testConfig(t)
		uc := NewUsecase(cfg, &memStore{}, &fakeLLM{}, &fakeCorpusConn{}, nil, zap.NewNop())

		_, err := uc.UploadDocuments(context.Background(), corpus)
		assert.ErrorIs(t, err, entity.ErrNoDocuments)
	})

	t.Run("all uploads succeed", func(t *testing.T) {
		cfg := testConfig(t)
		require.NoError(t, os.MkdirAll(cfg.OutputDir, 0o755))
		for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
			require.NoError(t, os.WriteFile(filepath.Join(cfg.OutputDir, name), []byte("body"), 0o644))
		}
		store := &memStore{}
		conn := &fakeCorpusConn{}
		uc := NewUsecase(cfg, store, &fakeLLM{}, conn, nil, zap.NewNop())

		report, err := uc.UploadDocuments(context.Background(), corpus)
		require.NoError(t, err)
		assert.True(t, report.OK())
		assert.ElementsMatch(t, []string{"a.txt", "b.txt", "c.txt"}, conn.uploaded)
		assert.Equal(t, 3, store.md.DocumentCount)
		assert.Equal(t, entity.StatusComplete, store.md.Status)
	})

	t.Run("upload failures are isolated", func(t *testing.T) {
		cfg := testConfig(t)
		require.NoError(t, os.MkdirAll(cfg.OutputDir, 0o755))
		for _, name := range []string{"a.txt", "b.txt"} {
			require.NoError(t, os.WriteFile(filepath.Join(cfg.OutputDir, name), []byte("body"), 0o644))
		}
		store := &memStore{}
		conn := &fakeCorpusConn{uploadErr: func(displayName string) error {
			if displayName == "a.txt" {
				return errors.New("upload failed")
			}
			return nil
		}}
		uc := NewUsecase(cfg, store, &fakeLLM{}, conn, nil, zap.NewNop())

		report, err := uc.UploadDocuments(context.Background(), corpus)
		require.NoError(t, err)
		assert.False(t, report.OK())
		assert.Equal(t, 1, report.Successful)
		assert.Equal(t, 1, report.Failed)
		assert.Equal(t, 1, store.md.DocumentCount)
		assert.Equal(t, entity.StatusPartial, store.md.Status)
	})
}

// The server hands one Usecase to the admin, chat and health handlers, so
// metadata reads and status checks run concurrently with the admin pipeline.
// Fails under the race detector if the metadata record is unguarded.
func TestMetadataConcurrentAccess(t *testing.T) {
	docs := []entity.DocumentSpec{
		{Title: "Piscinas", Prompt: "describe the pools"},
		{Title: "Aparcamiento", Prompt: "describe the parking"},
	}
	cfg := testConfig(t)
	writeInput(t, cfg, docs)

	llm := &fakeLLM{generate: func(string) (string, error) { return "ok", nil }}
	conn := &fakeCorpusConn{files: map[string][]entity.CorpusFile{}}
	uc := NewUsecase(cfg, &memStore{}, llm, conn, nil, zap.NewNop())

	ctx := context.Background()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			_ = uc.Metadata().DocumentCount
			_, _ = uc.GetStatus(ctx)
		}
	}()

	report, err := uc.GenerateDocuments(ctx, false)
	require.NoError(t, err)
	require.True(t, report.OK())

	corpus, err := uc.CreateCorpus(ctx)
	require.NoError(t, err)

	_, err = uc.UploadDocuments(ctx, corpus)
	require.NoError(t, err)

	<-done
	assert.Equal(t, 2, uc.Metadata().DocumentCount)
}

func TestExportBundle(t *testing.T) {
	t.Run("no artifacts", func(t *testing.T) {
		cfg := testConfig(t)
		uc := NewUsecase(cfg, &memStore{}, &fakeLLM{}, &fakeCorpusConn{}, nil, zap.NewNop())

		_, err := uc.ExportBundle()
		assert.ErrorIs(t, err, entity.ErrNoDocuments)
	})

	t.Run("collects artifacts with stem titles", func(t *testing.T) {
		cfg := testConfig(t)
		require.NoError(t, os.MkdirAll(cfg.OutputDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(cfg.OutputDir, "Piscinas.txt"), []byte("horarios"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(cfg.OutputDir, "Aparcamiento.txt"), []byte("gratuito"), 0o644))
		uc := NewUsecase(cfg, &memStore{}, &fakeLLM{}, &fakeCorpusConn{}, nil, zap.NewNop())

		bundle, err := uc.ExportBundle()
		require.NoError(t, err)
		assert.Equal(t, cfg.CorpusDisplayName, bundle.Title)
		require.Len(t, bundle.Documents, 2)

		titles := []string{bundle.Documents[0].Title, bundle.Documents[1].Title}
		assert.ElementsMatch(t, []string{"Piscinas", "Aparcamiento"}, titles)
		for _, doc := range bundle.Documents {
			assert.NotEmpty(t, doc.Body)
		}
	})
}

func TestCleanup(t *testing.T) {
	seed := func(t *testing.T, cfg *config.Config, n int) {
		t.Helper()
		require.NoError(t, os.MkdirAll(cfg.OutputDir, 0o755))
		for i := 0; i < n; i++ {
			path := filepath.Join(cfg.OutputDir, fmt.Sprintf("doc_%d.txt", i))
			require.NoError(t, os.WriteFile(path, []byte("body"), 0o644))
		}
	}
	countArtifacts := func(cfg *config.Config) int {
		paths, _ := filepath.Glob(filepath.Join(cfg.OutputDir, "*.txt"))
		return len(paths)
	}

	t.Run("nothing to clean", func(t *testing.T) {
		cfg := testConfig(t)
		conn := &fakeCorpusConn{corpora: []entity.CorpusInfo{{Name: "corpora/1", DisplayName: cfg.CorpusDisplayName}}}
		uc := NewUsecase(cfg, &memStore{}, &fakeLLM{}, conn, nil, zap.NewNop())

		report, err := uc.Cleanup(context.Background(), false)
		require.NoError(t, err)
		assert.Equal(t, 0, report.LocalFiles)
		assert.Empty(t, conn.deleted, "remote corpus stays when there is nothing local")
	})

	t.Run("dry run deletes nothing", func(t *testing.T) {
		cfg := testConfig(t)
		seed(t, cfg, 2)
		conn := &fakeCorpusConn{corpora: []entity.CorpusInfo{{Name: "corpora/1", DisplayName: cfg.CorpusDisplayName}}}
		uc := NewUsecase(cfg, &memStore{}, &fakeLLM{}, conn, nil, zap.NewNop())

		report, err := uc.Cleanup(context.Background(), true)
		require.NoError(t, err)
		assert.True(t, report.DryRun)
		assert.Equal(t, 2, report.LocalFiles)
		assert.False(t, report.LocalDeleted)
		assert.Equal(t, 2, countArtifacts(cfg))
		assert.Empty(t, conn.deleted)
	})

	t.Run("live run deletes after confirmation", func(t *testing.T) {
		cfg := testConfig(t)
		seed(t, cfg, 2)
		store := &memStore{md: &entity.CorpusMetadata{
			Name:          "corpora/1",
			DisplayName:   cfg.CorpusDisplayName,
			DocumentCount: 2,
			Status:        entity.StatusComplete,
		}}
		conn := &fakeCorpusConn{
			corpora: []entity.CorpusInfo{{Name: "corpora/1", DisplayName: cfg.CorpusDisplayName}},
			files:   map[string][]entity.CorpusFile{"corpora/1": {{Name: "files/0"}}},
		}
		confirmAll := func(string) bool { return true }
		uc := NewUsecase(cfg, store, &fakeLLM{}, conn, confirmAll, zap.NewNop())

		report, err := uc.Cleanup(context.Background(), false)
		require.NoError(t, err)
		assert.True(t, report.LocalDeleted)
		assert.True(t, report.CorpusDeleted)
		assert.Equal(t, 0, countArtifacts(cfg))
		assert.Equal(t, []string{"corpora/1"}, conn.deleted)
		assert.Equal(t, "", store.md.Name)
		assert.Equal(t, entity.StatusNotFound, store.md.Status)
	})

	t.Run("declined confirmation keeps everything", func(t *testing.T) {
		cfg := testConfig(t)
		seed(t, cfg, 1)
		conn := &fakeCorpusConn{corpora: []entity.CorpusInfo{{Name: "corpora/1", DisplayName: cfg.CorpusDisplayName}}}
		decline := func(string) bool { return false }
		uc := NewUsecase(cfg, &memStore{}, &fakeLLM{}, conn, decline, zap.NewNop())

		report, err := uc.Cleanup(context.Background(), false)
		require.NoError(t, err)
		assert.False(t, report.LocalDeleted)
		assert.False(t, report.CorpusDeleted)
		assert.Equal(t, 1, countArtifacts(cfg))
		assert.Empty(t, conn.deleted)
	})
}
