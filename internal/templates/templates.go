// Package templates defines gitignore template records, index
// classification, and free-text query resolution.
package templates

// Kind classifies a template at index-build time.
type Kind string

// Template kinds.
const (
	KindLanguage  Kind = "language"
	KindFramework Kind = "framework"
	KindGlobal    Kind = "global"
)

// Template is the canonical record for one selectable template.
type Template struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
	Kind Kind   `json:"kind"`
}

// WithSource pairs a template record with its fetched body text.
type WithSource struct {
	Meta   Template
	Source string
}
