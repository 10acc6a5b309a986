package templates

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAliases(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aliases.yaml")

	yaml := `aliases:
  vue: [vuejs]
  "C#": [csharp, c]
  empty: []
`

	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("write aliases: %v", err)
	}

	aliases, err := LoadAliases(path)
	if err != nil {
		t.Fatalf("LoadAliases: %v", err)
	}

	if got := aliases["vue"]; len(got) != 1 || got[0] != "vuejs" {
		t.Fatalf("unexpected vue expansion: %v", got)
	}
	// Keys normalize the same way queries do.
	if got := aliases["c"]; len(got) != 2 || got[0] != "csharp" {
		t.Fatalf("unexpected c# expansion: %v", got)
	}
	if _, ok := aliases["empty"]; ok {
		t.Fatalf("empty expansions must be dropped")
	}
}

func TestLoadAliasesMissingFile(t *testing.T) {
	aliases, err := LoadAliases(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if len(aliases) != 0 {
		t.Fatalf("expected empty map, got %v", aliases)
	}
}

func TestLoadAliasesInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aliases.yaml")
	if err := os.WriteFile(path, []byte("aliases: ["), 0644); err != nil {
		t.Fatalf("write aliases: %v", err)
	}

	if _, err := LoadAliases(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
