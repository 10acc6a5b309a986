// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ignorehub/ignorehub/internal/templates"
	"github.com/ignorehub/ignorehub/internal/tui/styles"
)

// TemplatePicker stores state for the multi-select template list.
type TemplatePicker struct {
	Query string
	Index int

	records []templates.Template
	byID    map[string]templates.Template
	chosen  map[string]struct{}
	order   []string
}

// NewTemplatePicker creates an empty picker.
func NewTemplatePicker() *TemplatePicker {
	return &TemplatePicker{
		byID:   make(map[string]templates.Template),
		chosen: make(map[string]struct{}),
	}
}

// SetTemplates replaces the pickable records, sorted by kind then
// case-insensitive name. Existing selections for surviving ids are kept.
func (p *TemplatePicker) SetTemplates(records []templates.Template) {
	p.records = make([]templates.Template, len(records))
	copy(p.records, records)
	sort.Slice(p.records, func(i, j int) bool {
		if p.records[i].Kind != p.records[j].Kind {
			return p.records[i].Kind < p.records[j].Kind
		}
		return strings.ToLower(p.records[i].Name) < strings.ToLower(p.records[j].Name)
	})

	p.byID = make(map[string]templates.Template, len(p.records))
	for _, record := range p.records {
		p.byID[record.ID] = record
	}

	kept := p.order[:0]
	for _, id := range p.order {
		if _, ok := p.byID[id]; ok {
			kept = append(kept, id)
			continue
		}
		delete(p.chosen, id)
	}
	p.order = kept
	p.ClampIndex()
}

// AppendQuery adds typed text to the filter query.
func (p *TemplatePicker) AppendQuery(text string) {
	p.Query += text
	p.Index = 0
}

// Backspace removes the last query rune.
func (p *TemplatePicker) Backspace() {
	runes := []rune(p.Query)
	if len(runes) == 0 {
		return
	}
	p.Query = string(runes[:len(runes)-1])
	p.ClampIndex()
}

// Move shifts the selection cursor with wraparound.
func (p *TemplatePicker) Move(delta int) {
	items := p.Filtered()
	if len(items) == 0 {
		p.Index = 0
		return
	}
	if delta == 0 {
		return
	}
	idx := p.Index
	if idx < 0 || idx >= len(items) {
		idx = 0
	}
	idx += delta
	if idx < 0 {
		idx = len(items) - 1
	} else if idx >= len(items) {
		idx = 0
	}
	p.Index = idx
}

// ClampIndex keeps the cursor within the filtered list.
func (p *TemplatePicker) ClampIndex() {
	items := p.Filtered()
	if len(items) == 0 {
		p.Index = 0
		return
	}
	if p.Index < 0 {
		p.Index = 0
	}
	if p.Index >= len(items) {
		p.Index = len(items) - 1
	}
}

// Toggle flips the selection state of the record under the cursor.
func (p *TemplatePicker) Toggle() {
	items := p.Filtered()
	if p.Index < 0 || p.Index >= len(items) {
		return
	}
	id := items[p.Index].ID

	if _, ok := p.chosen[id]; ok {
		delete(p.chosen, id)
		for i, existing := range p.order {
			if existing == id {
				p.order = append(p.order[:i], p.order[i+1:]...)
				break
			}
		}
		return
	}

	p.chosen[id] = struct{}{}
	p.order = append(p.order, id)
}

// Selected returns the chosen records in toggle order.
func (p *TemplatePicker) Selected() []templates.Template {
	selected := make([]templates.Template, 0, len(p.order))
	for _, id := range p.order {
		if record, ok := p.byID[id]; ok {
			selected = append(selected, record)
		}
	}
	return selected
}

// SelectedCount returns the number of chosen records.
func (p *TemplatePicker) SelectedCount() int {
	return len(p.order)
}

// Filtered returns the records matching the current query.
func (p *TemplatePicker) Filtered() []templates.Template {
	query := strings.TrimSpace(strings.ToLower(p.Query))
	if query == "" {
		return p.records
	}
	tokens := strings.Fields(query)
	filtered := make([]templates.Template, 0, len(p.records))
	for _, record := range p.records {
		haystack := strings.ToLower(record.Name + " " + string(record.Kind))
		if matchesTokens(haystack, tokens) {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

// Render renders the picker lines, windowed to maxRows list entries when
// maxRows is positive.
func (p *TemplatePicker) Render(styleSet styles.Styles, maxRows int) []string {
	lines := []string{
		styleSet.Text.Render(fmt.Sprintf("> %s", p.Query)),
	}

	items := p.Filtered()
	if len(items) == 0 {
		lines = append(lines, styleSet.Muted.Render("No templates match."))
		return lines
	}

	start, end := 0, len(items)
	if maxRows > 0 && len(items) > maxRows {
		start = p.Index - maxRows/2
		if start < 0 {
			start = 0
		}
		end = start + maxRows
		if end > len(items) {
			end = len(items)
			start = end - maxRows
		}
	}

	for idx := start; idx < end; idx++ {
		record := items[idx]
		marker := "[ ]"
		if _, ok := p.chosen[record.ID]; ok {
			marker = "[x]"
		}
		label := fmt.Sprintf("%s %s (%s)", marker, record.Name, record.Kind)
		if idx == p.Index {
			lines = append(lines, styleSet.Focus.Render("> "+label))
			continue
		}
		lines = append(lines, styleSet.Muted.Render("  "+label))
	}
	return lines
}

func matchesTokens(haystack string, tokens []string) bool {
	for _, token := range tokens {
		if !strings.Contains(haystack, token) {
			return false
		}
	}
	return true
}
