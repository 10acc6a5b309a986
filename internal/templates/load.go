package templates

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type aliasFile struct {
	Aliases map[string][]string `yaml:"aliases"`
}

// LoadAliases reads a user alias overlay from disk. A missing file is not
// an error; keys and targets are normalized, empty entries dropped.
func LoadAliases(path string) (map[string][]string, error) {
	if strings.TrimSpace(path) == "" {
		return map[string][]string{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string][]string{}, nil
		}
		return nil, fmt.Errorf("read aliases %s: %w", path, err)
	}

	var file aliasFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse aliases %s: %w", path, err)
	}

	aliases := make(map[string][]string, len(file.Aliases))
	for key, targets := range file.Aliases {
		normalized := NormalizeToken(key)
		if normalized == "" {
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

	return aliases, nil
}
