// Package cli provides machine-readable output helpers.
package cli

import (
	"encoding/json"
	"io"
	"reflect"
)

// IsJSONOutput reports whether output should be a single JSON document.
func IsJSONOutput() bool {
	return jsonOutput
}

// IsJSONLOutput reports whether output should be one JSON document per line.
func IsJSONLOutput() bool {
	return jsonlOutput
}

// WriteOutput encodes value according to the active output mode. In JSONL
// mode a slice is written element by element.
func WriteOutput(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)

	if IsJSONLOutput() {
		rv := reflect.ValueOf(value)
		if rv.Kind() == reflect.Slice {
			for i := 0; i < rv.Len(); i++ {
				if err := encoder.Encode(rv.Index(i).Interface()); err != nil {
					return err
				}
			}
			return nil
		}
		return encoder.Encode(value)
	}

	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
