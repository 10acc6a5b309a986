// Package merge combines user-authored gitignore content with generated
// template sections into one idempotent, rule-deduplicated output.
package merge

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ignorehub/ignorehub/internal/templates"
)

// Sentinel lines delimiting the generated block on disk. Everything
// outside them is user-owned manual content.
const (
	StartSentinel = "### IGNORE-HUB GENERATED START"
	EndSentinel   = "### IGNORE-HUB GENERATED END"
)

var generatedBlockPattern = regexp.MustCompile(
	`(?s)` + regexp.QuoteMeta(StartSentinel) + `.*?` + regexp.QuoteMeta(EndSentinel) + `\n?`,
)

// Options control the shape of the generated block.
type Options struct {
	// IncludeWatermark wraps the generated block in sentinel lines.
	IncludeWatermark bool

	// UseSimpleSectionSeparator switches section headers from
	// "### <kind>: <name>" to "## <name>".
	UseSimpleSectionSeparator bool
}

// Input bundles the arguments for one Merge call.
type Input struct {
	ExistingContent string
	Templates       []templates.WithSource
	Options         Options
}

// Merge produces new gitignore content from existing file content and
// freshly fetched template bodies. Applying Merge to its own output with
// the same templates and options yields byte-identical content.
func Merge(in Input) string {
	manual := StripGeneratedBlock(in.ExistingContent)
	block := BuildGeneratedBlock(in.Templates, CollectRuleSet(manual), in.Options)

	if manual == "" {
		return block + "\n"
	}
	return manual + "\n\n" + block + "\n"
}

// StripGeneratedBlock removes every sentinel-delimited region from the
// content, leaving only the manual portion. Line endings are normalized
// to LF and trailing blank lines trimmed. Content without sentinels
// passes through unchanged beyond that normalization.
func StripGeneratedBlock(content string) string {
	normalized := normalizeNewlines(content)
	stripped := generatedBlockPattern.ReplaceAllString(normalized, "")
	return trimTrailingBlankLines(stripped)
}

// CollectRuleSet extracts the set of trimmed rule lines: non-blank lines
// that do not start with "#".
func CollectRuleSet(content string) map[string]struct{} {
	rules := make(map[string]struct{})
	for _, line := range strings.Split(normalizeNewlines(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		rules[trimmed] = struct{}{}
	}
	return rules
}

// BuildGeneratedBlock renders one section per template in caller order.
// A single dedup set, seeded from existingRules, is carried across all
// templates so a rule is emitted at most once; comment and blank lines
// are never deduplicated. An empty template list yields an empty string
// regardless of the watermark option.
func BuildGeneratedBlock(tmpls []templates.WithSource, existingRules map[string]struct{}, opts Options) string {
	if len(tmpls) == 0 {
		return ""
	}

	seen := make(map[string]struct{}, len(existingRules))
	for rule := range existingRules {
		seen[rule] = struct{}{}
	}

	sections := make([]string, 0, len(tmpls))
	for _, tmpl := range tmpls {
		lines := []string{sectionHeader(tmpl.Meta, opts)}
		for _, line := range strings.Split(normalizeNewlines(tmpl.Source), "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "#") {
				lines = append(lines, line)
				continue
			}
			if _, dup := seen[trimmed]; dup {
				continue
			}
			seen[trimmed] = struct{}{}
			lines = append(lines, line)
		}
		sections = append(sections, trimTrailingBlankLines(strings.Join(lines, "\n")))
	}

	block := strings.Join(sections, "\n\n")
	if opts.IncludeWatermark {
		block = StartSentinel + "\n" + block + "\n" + EndSentinel
	}
	return block
}

func sectionHeader(meta templates.Template, opts Options) string {
	if opts.UseSimpleSectionSeparator {
		return "## " + meta.Name
	}
	return fmt.Sprintf("### %s: %s", meta.Kind, meta.Name)
}

func normalizeNewlines(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.ReplaceAll(content, "\r", "\n")
}

func trimTrailingBlankLines(content string) string {
	lines := strings.Split(content, "\n")
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[:end], "\n")
}
