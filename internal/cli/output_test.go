package cli

import (
	"strings"
	"testing"
)

func TestPreflightErrorFormatting(t *testing.T) {
	err := &PreflightError{
		Message:  "no templates requested",
		Hint:     "pass template names",
		NextStep: "ignorehub list",
	}

	got := err.Error()
	if !strings.Contains(got, "no templates requested") {
		t.Fatalf("missing message: %q", got)
	}
	if !strings.Contains(got, "Hint: pass template names") {
		t.Fatalf("missing hint: %q", got)
	}
	if !strings.Contains(got, "Next: ignorehub list") {
		t.Fatalf("missing next step: %q", got)
	}

	bare := &PreflightError{Message: "boom"}
	if bare.Error() != "boom" {
		t.Fatalf("unexpected bare message: %q", bare.Error())
	}
}

func TestWriteOutputJSON(t *testing.T) {
	var buf strings.Builder
	if err := WriteOutput(&buf, map[string]string{"output": ".gitignore"}); err != nil {
		t.Fatalf("WriteOutput failed: %v", err)
	}
	if !strings.Contains(buf.String(), "\"output\": \".gitignore\"") {
		t.Fatalf("unexpected JSON output: %q", buf.String())
	}
}

func TestWriteOutputJSONLSlice(t *testing.T) {
	jsonlOutput = true
	defer func() { jsonlOutput = false }()

	var buf strings.Builder
	if err := WriteOutput(&buf, []string{"go", "node"}); err != nil {
		t.Fatalf("WriteOutput failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected one document per element, got %q", buf.String())
	}
	if lines[0] != "\"go\"" || lines[1] != "\"node\"" {
		t.Fatalf("unexpected JSONL output: %q", buf.String())
	}
}

func TestWriteTableAlignsColumns(t *testing.T) {
	var buf strings.Builder
	err := writeTable(&buf,
		[]string{"NAME", "KIND"},
		[][]string{
			{"Go", "language"},
			{"macOS", "global"},
		},
	)
	if err != nil {
		t.Fatalf("writeTable failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus two rows, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[0], "NAME") || !strings.Contains(lines[0], "KIND") {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if strings.Index(lines[1], "language") != strings.Index(lines[2], "global") {
		t.Fatalf("columns not aligned:\n%s", buf.String())
	}
}
