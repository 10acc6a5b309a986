package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ignorehub/ignorehub/internal/merge"
	"github.com/ignorehub/ignorehub/internal/registry"
	"github.com/ignorehub/ignorehub/internal/templates"
)

// newTestService serves a fake template repository over httptest. bodies
// maps source paths to template text; a missing path yields 404.
func newTestService(t *testing.T, bodies map[string]string) *registry.Service {
	t.Helper()

	paths := make([]string, 0, len(bodies))
	for path := range bodies {
		paths = append(paths, path)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/github/gitignore/git/trees/main", func(w http.ResponseWriter, r *http.Request) {
		entries := make([]map[string]string, 0, len(paths))
		for _, path := range paths {
			entries = append(entries, map[string]string{"path": path, "type": "blob"})
		}
		json.NewEncoder(w).Encode(map[string]any{"tree": entries, "truncated": false})
	})
	mux.HandleFunc("/github/gitignore/main/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/github/gitignore/main/")
		body, ok := bodies[path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, body)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := registry.NewClient("github", "gitignore", "main")
	client.APIBaseURL = server.URL
	client.RawBaseURL = server.URL

	return registry.NewService(client, nil, 0, zerolog.Nop())
}

func setupGenTest(t *testing.T) {
	t.Helper()
	t.Setenv("IGNOREHUB_NO_PROGRESS", "1")
	logger = zerolog.Nop()
}

func TestRunGenerateWritesFile(t *testing.T) {
	setupGenTest(t)
	service := newTestService(t, map[string]string{
		"Go.gitignore": "# Binaries\n*.exe\n*.test\n",
	})
	records := []templates.Template{
		{ID: "go", Name: "Go", Path: "Go.gitignore", Kind: templates.KindLanguage},
	}
	output := filepath.Join(t.TempDir(), ".gitignore")

	if err := runGenerate(context.Background(), service, records, output, false, false); err != nil {
		t.Fatalf("runGenerate failed: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	content := string(data)

	for _, want := range []string{merge.StartSentinel, merge.EndSentinel, "### language: Go", "*.exe"} {
		if !strings.Contains(content, want) {
			t.Fatalf("output missing %q:\n%s", want, content)
		}
	}
}

func TestRunGenerateIsIdempotent(t *testing.T) {
	setupGenTest(t)
	service := newTestService(t, map[string]string{
		"Go.gitignore":   "*.exe\n*.test\n",
		"Node.gitignore": "node_modules/\n*.log\n",
	})
	records := []templates.Template{
		{ID: "go", Name: "Go", Path: "Go.gitignore", Kind: templates.KindLanguage},
		{ID: "node", Name: "Node", Path: "Node.gitignore", Kind: templates.KindLanguage},
	}
	output := filepath.Join(t.TempDir(), ".gitignore")

	manual := "# my own rules\nsecrets.env\n"
	if err := os.WriteFile(output, []byte(manual), 0644); err != nil {
		t.Fatalf("seed output: %v", err)
	}

	ctx := context.Background()
	if err := runGenerate(ctx, service, records, output, false, false); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	first, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read first output: %v", err)
	}

	if err := runGenerate(ctx, service, records, output, false, false); err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	second, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read second output: %v", err)
	}

	if string(first) != string(second) {
		t.Fatalf("regeneration changed the file:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
	if !strings.HasPrefix(string(first), manual) {
		t.Fatalf("manual content not preserved:\n%s", first)
	}
}

func TestRunGeneratePlainMode(t *testing.T) {
	setupGenTest(t)
	service := newTestService(t, map[string]string{
		"Go.gitignore": "*.exe\n",
	})
	records := []templates.Template{
		{ID: "go", Name: "Go", Path: "Go.gitignore", Kind: templates.KindLanguage},
	}
	output := filepath.Join(t.TempDir(), ".gitignore")

	if err := runGenerate(context.Background(), service, records, output, true, false); err != nil {
		t.Fatalf("runGenerate failed: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	content := string(data)

	if strings.Contains(content, merge.StartSentinel) {
		t.Fatalf("plain mode must not emit sentinels:\n%s", content)
	}
	if !strings.Contains(content, "## Go") {
		t.Fatalf("expected simple section header:\n%s", content)
	}
}

func TestRunGenerateSkipsFailedFetches(t *testing.T) {
	setupGenTest(t)
	service := newTestService(t, map[string]string{
		"Go.gitignore": "*.exe\n",
	})
	records := []templates.Template{
		{ID: "go", Name: "Go", Path: "Go.gitignore", Kind: templates.KindLanguage},
		{ID: "gone", Name: "Gone", Path: "Gone.gitignore", Kind: templates.KindLanguage},
	}
	output := filepath.Join(t.TempDir(), ".gitignore")

	if err := runGenerate(context.Background(), service, records, output, false, false); err != nil {
		t.Fatalf("runGenerate failed: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "### language: Go") {
		t.Fatalf("fetched template missing:\n%s", content)
	}
	if strings.Contains(content, "Gone") {
		t.Fatalf("failed template must not appear:\n%s", content)
	}
}

func TestRunGenerateAllFetchesFail(t *testing.T) {
	setupGenTest(t)
	service := newTestService(t, nil)
	records := []templates.Template{
		{ID: "gone", Name: "Gone", Path: "Gone.gitignore", Kind: templates.KindLanguage},
	}
	output := filepath.Join(t.TempDir(), ".gitignore")

	err := runGenerate(context.Background(), service, records, output, false, false)
	if err == nil {
		t.Fatal("expected error when every fetch fails")
	}
	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Fatalf("output must not be written on total failure")
	}
}

func TestReadExistingMissingFile(t *testing.T) {
	content, err := readExisting(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if content != "" {
		t.Fatalf("expected empty content, got %q", content)
	}
}

func TestServiceLoadIndexViaHTTP(t *testing.T) {
	setupGenTest(t)
	service := newTestService(t, map[string]string{
		"Go.gitignore":           "*.exe\n",
		"Global/macOS.gitignore": ".DS_Store\n",
	})

	index, err := service.LoadIndex(context.Background(), false)
	if err != nil {
		t.Fatalf("LoadIndex failed: %v", err)
	}
	if len(index) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(index))
	}
}
