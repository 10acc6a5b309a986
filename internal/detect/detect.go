// Package detect infers relevant template queries from project markers.
package detect

import (
	"os"
	"path/filepath"
	"strings"
)

// ConditionType selects how a marker condition is evaluated.
type ConditionType string

// Condition types.
const (
	ConditionPath      ConditionType = "path"
	ConditionExtension ConditionType = "extension"
	ConditionPredicate ConditionType = "predicate"
)

// Condition is a tagged union over marker checks: a relative path that
// must exist, a file extension that must appear in the directory root, or
// an arbitrary predicate.
type Condition struct {
	Type      ConditionType
	Path      string
	Extension string
	Predicate func(dir string) bool
}

// Matches evaluates the condition against a project directory.
func (c Condition) Matches(dir string) bool {
	switch c.Type {
	case ConditionPath:
		_, err := os.Stat(filepath.Join(dir, c.Path))
		return err == nil
	case ConditionExtension:
		matches, err := filepath.Glob(filepath.Join(dir, "*."+strings.TrimPrefix(c.Extension, ".")))
		return err == nil && len(matches) > 0
	case ConditionPredicate:
		return c.Predicate != nil && c.Predicate(dir)
	default:
		return false
	}
}

// Rule maps a marker condition to a template query token.
type Rule struct {
	Query     string
	Condition Condition
}

// BuiltinRules returns the default marker rules in evaluation order.
func BuiltinRules() []Rule {
	return []Rule{
		{Query: "go", Condition: Condition{Type: ConditionPath, Path: "go.mod"}},
		{Query: "node", Condition: Condition{Type: ConditionPath, Path: "package.json"}},
		{Query: "rust", Condition: Condition{Type: ConditionPath, Path: "Cargo.toml"}},
		{Query: "python", Condition: Condition{Type: ConditionPath, Path: "requirements.txt"}},
		{Query: "python", Condition: Condition{Type: ConditionPath, Path: "pyproject.toml"}},
		{Query: "ruby", Condition: Condition{Type: ConditionPath, Path: "Gemfile"}},
		{Query: "java", Condition: Condition{Type: ConditionPath, Path: "pom.xml"}},
		{Query: "gradle", Condition: Condition{Type: ConditionPath, Path: "build.gradle"}},
		{Query: "gradle", Condition: Condition{Type: ConditionPath, Path: "build.gradle.kts"}},
		{Query: "elixir", Condition: Condition{Type: ConditionPath, Path: "mix.exs"}},
		{Query: "cmake", Condition: Condition{Type: ConditionPath, Path: "CMakeLists.txt"}},
		{Query: "composer", Condition: Condition{Type: ConditionPath, Path: "composer.json"}},
		{Query: "terraform", Condition: Condition{Type: ConditionExtension, Extension: "tf"}},
		{Query: "visualstudio", Condition: Condition{Type: ConditionExtension, Extension: "csproj"}},
		{Query: "tex", Condition: Condition{Type: ConditionExtension, Extension: "tex"}},
		{Query: "rails", Condition: Condition{Type: ConditionPredicate, Predicate: isRailsProject}},
	}
}

// Detect evaluates the builtin rules against dir and returns the matched
// query tokens, deduplicated, in rule order.
func Detect(dir string) []string {
	return DetectWith(dir, BuiltinRules())
}

// DetectWith evaluates the given rules against dir.
func DetectWith(dir string, rules []Rule) []string {
	queries := make([]string, 0, len(rules))
	seen := make(map[string]struct{}, len(rules))
	for _, rule := range rules {
		if _, dup := seen[rule.Query]; dup {
			continue
		}
		if !rule.Condition.Matches(dir) {
			continue
		}
		seen[rule.Query] = struct{}{}
		queries = append(queries, rule.Query)
	}
	return queries
}

func isRailsProject(dir string) bool {
	if _, err := os.Stat(filepath.Join(dir, "Gemfile")); err != nil {
		return false
	}
	_, err := os.Stat(filepath.Join(dir, "config", "application.rb"))
	return err == nil
}
