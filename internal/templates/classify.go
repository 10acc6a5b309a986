package templates

import "strings"

const (
	templateExtension = ".gitignore"
	globalPrefix      = "Global/"
)

// languageNames lists root template names treated as languages. Root
// templates not on this list classify as frameworks.
var languageNames = map[string]struct{}{
	"c":           {},
	"c++":         {},
	"clojure":     {},
	"d":           {},
	"dart":        {},
	"elixir":      {},
	"erlang":      {},
	"fortran":     {},
	"go":          {},
	"haskell":     {},
	"java":        {},
	"julia":       {},
	"kotlin":      {},
	"lua":         {},
	"nim":         {},
	"objective-c": {},
	"ocaml":       {},
	"perl":        {},
	"python":      {},
	"r":           {},
	"ruby":        {},
	"rust":        {},
	"scala":       {},
	"swift":       {},
	"tex":         {},
	"zig":         {},
}

// BuildIndex classifies enumerated repository paths into template records.
// Order follows the input path order.
func BuildIndex(paths []string) []Template {
	records := make([]Template, 0, len(paths))
	for _, path := range paths {
		record, ok := Classify(path)
		if !ok {
			continue
		}
		records = append(records, record)
	}
	return records
}

// Classify maps one repository path to a template record. Paths without
// the template extension, or under directories other than Global/, are
// skipped.
func Classify(path string) (Template, bool) {
	if !strings.HasSuffix(path, templateExtension) {
		return Template{}, false
	}

	id := strings.TrimSuffix(path, templateExtension)

	if strings.HasPrefix(path, globalPrefix) {
		rest := strings.TrimPrefix(id, globalPrefix)
		if rest == "" || strings.Contains(rest, "/") {
			return Template{}, false
		}
		return Template{ID: id, Name: id, Path: path, Kind: KindGlobal}, true
	}

	if id == "" || strings.Contains(id, "/") {
		return Template{}, false
	}

	kind := KindFramework
	if _, ok := languageNames[strings.ToLower(id)]; ok {
		kind = KindLanguage
	}
	return Template{ID: id, Name: id, Path: path, Kind: kind}, true
}
