package templates

import (
	"sort"
	"strings"
)

// IssueType distinguishes resolution failures.
type IssueType string

// Issue types.
const (
	IssueAmbiguous IssueType = "ambiguous"
	IssueUnknown   IssueType = "unknown"
)

// Issue describes one query that could not be resolved to a single record.
// Ambiguous issues list every candidate; unknown issues carry prefix
// suggestions, possibly none.
type Issue struct {
	Type     IssueType  `json:"type"`
	Query    string     `json:"query"`
	RawQuery string     `json:"raw_query"`
	Matches  []Template `json:"matches"`
}

// Resolution is the outcome of resolving a batch of queries.
type Resolution struct {
	Selected []Template `json:"selected"`
	Issues   []Issue    `json:"issues"`
}

const maxSuggestions = 8

// builtinAliases maps normalized shorthand tokens to normalized canonical
// tokens. Expansions are tried before the raw query.
var builtinAliases = map[string][]string{
	"csharp": {"csharp", "c"},
	"golang": {"go"},
	"js":     {"javascript"},
	"kt":     {"kotlin"},
	"nodejs": {"node"},
	"py":     {"python"},
	"rb":     {"ruby"},
	"rs":     {"rust"},
	"ts":     {"typescript"},
}

// Resolver matches free-text queries against template records.
type Resolver struct {
	aliases map[string][]string
}

// NewResolver builds a resolver from the builtin alias table merged with
// the given overlays. Later overlays win per key.
func NewResolver(overlays ...map[string][]string) *Resolver {
	aliases := make(map[string][]string, len(builtinAliases))
	for key, targets := range builtinAliases {
		aliases[key] = targets
	}
	for _, overlay := range overlays {
		for key, targets := range overlay {
			normalized := NormalizeToken(key)
			if normalized == "" || len(targets) == 0 {
				continue
			}
			expanded := make([]string, 0, len(targets))
			for _, target := range targets {
				if t := NormalizeToken(target); t != "" {
					expanded = append(expanded, t)
				}
			}
			if len(expanded) > 0 {
				aliases[normalized] = expanded
			}
		}
	}
	return &Resolver{aliases: aliases}
}

// NormalizeToken lowercases a token and strips every character outside
// [a-z0-9]. Two tokens compare equal iff their normalized forms match.
func NormalizeToken(token string) string {
	var b strings.Builder
	b.Grow(len(token))
	for _, r := range strings.ToLower(token) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Resolve maps one raw query to a single template record, or reports an
// issue. Candidate queries (alias expansions first, then the normalized
// raw query) are tried in order; within one candidate the exact pass runs
// before the substring pass, and the first pass yielding any match decides.
// Prefix matching across all candidates is the final fallback.
func (r *Resolver) Resolve(rawQuery string, index []Template) (Template, *Issue) {
	query := NormalizeToken(rawQuery)
	candidates := r.candidateQueries(query)

	for _, candidate := range candidates {
		exact := collectMatches(index, candidate, matchesExact)
		if len(exact) == 1 {
			return exact[0], nil
		}
		if len(exact) > 1 {
			return Template{}, newIssue(IssueAmbiguous, query, rawQuery, exact)
		}

		partial := collectMatches(index, candidate, matchesSubstring)
		if len(partial) == 1 {
			return partial[0], nil
		}
		if len(partial) > 1 {
			return Template{}, newIssue(IssueAmbiguous, query, rawQuery, partial)
		}
	}

	prefixed := prefixMatches(index, candidates)
	if len(prefixed) == 1 {
		return prefixed[0], nil
	}

	var suggestions []Template
	if len(candidates) > 0 {
		suggestions = prefixMatches(index, candidates[:1])
	}
	sortMatches(suggestions)
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return Template{}, newIssue(IssueUnknown, query, rawQuery, suggestions)
}

// ResolveAll resolves a batch of raw queries. Blank queries are skipped,
// selections are deduplicated by id in first-hit order, and one issue is
// recorded per query that failed to resolve singly. It never errors.
func (r *Resolver) ResolveAll(queries []string, index []Template) Resolution {
	resolution := Resolution{
		Selected: []Template{},
		Issues:   []Issue{},
	}
	seen := make(map[string]struct{})

	for _, raw := range queries {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		record, issue := r.Resolve(raw, index)
		if issue != nil {
			resolution.Issues = append(resolution.Issues, *issue)
			continue
		}
		if _, dup := seen[record.ID]; dup {
			continue
		}
		seen[record.ID] = struct{}{}
		resolution.Selected = append(resolution.Selected, record)
	}

	return resolution
}

func (r *Resolver) candidateQueries(query string) []string {
	if query == "" {
		return nil
	}
	candidates := make([]string, 0, 3)
	seen := make(map[string]struct{}, 3)
	for _, expansion := range r.aliases[query] {
		if _, dup := seen[expansion]; dup {
			continue
		}
		seen[expansion] = struct{}{}
		candidates = append(candidates, expansion)
	}
	if _, dup := seen[query]; !dup {
		candidates = append(candidates, query)
	}
	return candidates
}

func matchesExact(record Template, candidate string) bool {
	return NormalizeToken(record.ID) == candidate || NormalizeToken(record.Name) == candidate
}

func matchesSubstring(record Template, candidate string) bool {
	return strings.Contains(NormalizeToken(record.ID), candidate) ||
		strings.Contains(NormalizeToken(record.Name), candidate)
}

func collectMatches(index []Template, candidate string, match func(Template, string) bool) []Template {
	var matches []Template
	for _, record := range index {
		if match(record, candidate) {
			matches = append(matches, record)
		}
	}
	return matches
}

func prefixMatches(index []Template, candidates []string) []Template {
	var matches []Template
	seen := make(map[string]struct{})
	for _, record := range index {
		for _, candidate := range candidates {
			if !strings.HasPrefix(NormalizeToken(record.ID), candidate) &&
				!strings.HasPrefix(NormalizeToken(record.Name), candidate) {
				continue
			}
			if _, dup := seen[record.ID]; !dup {
				seen[record.ID] = struct{}{}
				matches = append(matches, record)
			}
			break
		}
	}
	return matches
}

func newIssue(kind IssueType, query, rawQuery string, matches []Template) *Issue {
	sortMatches(matches)
	if matches == nil {
		matches = []Template{}
	}
	return &Issue{Type: kind, Query: query, RawQuery: rawQuery, Matches: matches}
}

func sortMatches(matches []Template) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Kind != matches[j].Kind {
			return matches[i].Kind < matches[j].Kind
		}
		return strings.ToLower(matches[i].Name) < strings.ToLower(matches[j].Name)
	})
}
