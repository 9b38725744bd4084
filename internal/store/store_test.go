package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"dconn.dev/portfolio/internal/metrics"
	"dconn.dev/portfolio/internal/models"
)

func newTestStore(t *testing.T) (*JSONStore, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	path := filepath.Join(t.TempDir(), "data.json")
	return NewJSONStore(path, zap.New(core), metrics.New()), logs
}

func readDocument(t *testing.T, path string) *models.Document {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc models.Document
	require.NoError(t, json.Unmarshal(data, &doc))
	return &doc
}

func TestLoad_MissingFileSeedsDefault(t *testing.T) {
	s, _ := newTestStore(t)

	doc, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultDocument(), doc)

	onDisk := readDocument(t, s.Path())
	assert.Equal(t, models.DefaultDocument(), onDisk)
}

func TestLoad_EmptyFileResets(t *testing.T) {
	for name, content := range map[string]string{
		"empty":      "",
		"whitespace": "  \n\t ",
	} {
		t.Run(name, func(t *testing.T) {
			s, _ := newTestStore(t)
			require.NoError(t, os.WriteFile(s.Path(), []byte(content), 0o644))

			doc, err := s.Load()
			require.NoError(t, err)
			assert.Equal(t, models.DefaultDocument(), doc)
			assert.Equal(t, models.DefaultDocument(), readDocument(t, s.Path()))
		})
	}
}

func TestLoad_CorruptFileResetsAndLogs(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "truncated", content: `{"config": {"name": "x"`},
		{name: "not json", content: "hello"},
		{name: "array", content: `[1, 2, 3]`},
		{name: "null", content: `null`},
		{name: "null config", content: `{"config": null, "projects": []}`},
		{name: "wrong project type", content: `{"config": {}, "projects": [{"id": "abc"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, logs := newTestStore(t)
			require.NoError(t, os.WriteFile(s.Path(), []byte(tt.content), 0o644))

			before := testutil.ToFloat64(s.metrics.StoreResetsTotal.WithLabelValues("corrupt"))

			doc, err := s.Load()
			require.NoError(t, err)
			assert.Equal(t, models.DefaultDocument(), doc)
			assert.Equal(t, models.DefaultDocument(), readDocument(t, s.Path()))

			assert.Equal(t, 1, logs.FilterMessage("Store file corrupted, resetting to defaults").Len())
			assert.Equal(t, before+1, testutil.ToFloat64(s.metrics.StoreResetsTotal.WithLabelValues("corrupt")))
		})
	}
}

func TestLoad_ReturnsStoredDocument(t *testing.T) {
	s, _ := newTestStore(t)
	content := `{
		"config": {"name": "Ada", "course_number": "CS200", "course_description": "Go", "profile_info": "hi"},
		"projects": [
			{"id": 2, "image": "http://x/2.png", "title": "Two", "website_url": "", "github_url": "", "description": "second"},
			{"id": 1, "image": "/static/project_images/a.png", "title": "One", "website_url": "w", "github_url": "g", "description": "first"}
		]
	}`
	require.NoError(t, os.WriteFile(s.Path(), []byte(content), 0o644))

	doc, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "Ada", doc.Config.Name)
	require.Len(t, doc.Projects, 2)
	assert.Equal(t, int64(2), doc.Projects[0].ID)
	assert.Equal(t, int64(1), doc.Projects[1].ID)
	assert.Equal(t, "w", doc.Projects[1].WebsiteURL)
}

func TestLoad_MissingProjectsReadsAsEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"config": {"name": "Ada"}}`), 0o644))

	doc, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "Ada", doc.Config.Name)
	assert.NotNil(t, doc.Projects)
	assert.Empty(t, doc.Projects)
}

func TestSaveLoad_RoundTripIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t)
	doc := models.DefaultDocument()
	doc.Projects = append(doc.Projects, models.Project{
		ID:          1700000000000,
		Image:       "http://x/y.png",
		Title:       "A",
		Description: "d",
	})
	require.NoError(t, s.Save(doc))

	first, err := s.Load()
	require.NoError(t, err)
	firstBytes, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	require.NoError(t, s.Save(first))
	second, err := s.Load()
	require.NoError(t, err)
	secondBytes, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, string(firstBytes), string(secondBytes))
}

func TestSave_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "data.json")
	s := NewJSONStore(path, nil, nil)

	require.NoError(t, s.Save(models.DefaultDocument()))
	assert.FileExists(t, path)
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Save(models.DefaultDocument()))
	require.NoError(t, s.Save(models.DefaultDocument()))

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "data.json", entries[0].Name())
}

func TestSave_UnwritablePathFails(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	s := NewJSONStore(filepath.Join(blocker, "data.json"), nil, nil)

	err := s.Save(models.DefaultDocument())
	assert.Error(t, err)

	_, err = s.Load()
	assert.Error(t, err)
}

func TestReset_OverwritesExistingDocument(t *testing.T) {
	s, _ := newTestStore(t)
	doc := models.DefaultDocument()
	doc.Config.Name = "Changed"
	require.NoError(t, s.Save(doc))

	reset, err := s.Reset()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultDocument(), reset)
	assert.Equal(t, models.DefaultDocument(), readDocument(t, s.Path()))
}
