package components

import (
	"strings"
	"testing"

	"github.com/ignorehub/ignorehub/internal/templates"
	"github.com/ignorehub/ignorehub/internal/tui/styles"
)

func pickerFixtures() []templates.Template {
	return []templates.Template{
		{ID: "node", Name: "Node", Path: "Node.gitignore", Kind: templates.KindLanguage},
		{ID: "go", Name: "Go", Path: "Go.gitignore", Kind: templates.KindLanguage},
		{ID: "rails", Name: "Rails", Path: "Rails.gitignore", Kind: templates.KindFramework},
		{ID: "global/macos", Name: "macOS", Path: "Global/macOS.gitignore", Kind: templates.KindGlobal},
	}
}

func TestSetTemplatesSortsByKindThenName(t *testing.T) {
	picker := NewTemplatePicker()
	picker.SetTemplates(pickerFixtures())

	got := picker.Filtered()
	want := []string{"rails", "global/macos", "go", "node"}
	if len(got) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestFilterMatchesNameAndKind(t *testing.T) {
	picker := NewTemplatePicker()
	picker.SetTemplates(pickerFixtures())

	picker.AppendQuery("no")
	got := picker.Filtered()
	if len(got) != 1 || got[0].ID != "node" {
		t.Fatalf("expected only node, got %v", got)
	}

	picker.Query = "framework"
	got = picker.Filtered()
	if len(got) != 1 || got[0].ID != "rails" {
		t.Fatalf("expected only rails, got %v", got)
	}
}

func TestMoveWrapsAround(t *testing.T) {
	picker := NewTemplatePicker()
	picker.SetTemplates(pickerFixtures())

	picker.Move(-1)
	if picker.Index != 3 {
		t.Fatalf("expected wrap to last entry, got index %d", picker.Index)
	}

	picker.Move(1)
	if picker.Index != 0 {
		t.Fatalf("expected wrap to first entry, got index %d", picker.Index)
	}
}

func TestToggleTracksSelectionOrder(t *testing.T) {
	picker := NewTemplatePicker()
	picker.SetTemplates(pickerFixtures())

	picker.Toggle() // rails
	picker.Move(2)
	picker.Toggle() // go

	selected := picker.SelectedTemplateIDs(t)
	if len(selected) != 2 || selected[0] != "rails" || selected[1] != "go" {
		t.Fatalf("expected [rails go], got %v", selected)
	}

	picker.Index = 0
	picker.Toggle() // deselect rails

	selected = picker.SelectedTemplateIDs(t)
	if len(selected) != 1 || selected[0] != "go" {
		t.Fatalf("expected [go], got %v", selected)
	}
}

func TestSelectionSurvivesFiltering(t *testing.T) {
	picker := NewTemplatePicker()
	picker.SetTemplates(pickerFixtures())

	picker.Move(3) // node
	picker.Toggle()

	picker.AppendQuery("go")
	picker.Toggle()

	selected := picker.SelectedTemplateIDs(t)
	if len(selected) != 2 || selected[0] != "node" || selected[1] != "go" {
		t.Fatalf("expected [node go], got %v", selected)
	}
	if picker.SelectedCount() != 2 {
		t.Fatalf("expected 2 selected, got %d", picker.SelectedCount())
	}
}

func TestBackspaceClampsIndex(t *testing.T) {
	picker := NewTemplatePicker()
	picker.SetTemplates(pickerFixtures())

	picker.AppendQuery("go")
	picker.Move(0)
	picker.Backspace()
	picker.Backspace()

	if picker.Query != "" {
		t.Fatalf("expected empty query, got %q", picker.Query)
	}
	if picker.Index < 0 || picker.Index >= len(picker.Filtered()) {
		t.Fatalf("index %d out of bounds", picker.Index)
	}
}

func TestRenderMarksSelection(t *testing.T) {
	picker := NewTemplatePicker()
	picker.SetTemplates(pickerFixtures())
	picker.Toggle()

	lines := picker.Render(styles.DefaultStyles(), 0)
	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "[x] Rails") {
		t.Fatalf("expected selected marker for Rails in:\n%s", joined)
	}
	if !strings.Contains(joined, "[ ] Go") {
		t.Fatalf("expected unselected marker for Go in:\n%s", joined)
	}
}

func TestRenderEmptyResult(t *testing.T) {
	picker := NewTemplatePicker()
	picker.SetTemplates(pickerFixtures())
	picker.AppendQuery("zzz")

	lines := picker.Render(styles.DefaultStyles(), 0)
	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "No templates match.") {
		t.Fatalf("expected empty-state line in:\n%s", joined)
	}
}

// SelectedTemplateIDs is a test helper returning chosen ids in order.
func (p *TemplatePicker) SelectedTemplateIDs(t *testing.T) []string {
	t.Helper()
	records := p.Selected()
	ids := make([]string, len(records))
	for i, record := range records {
		ids[i] = record.ID
	}
	return ids
}
