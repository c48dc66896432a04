package prompt

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadFromDirectory loads all prompt templates from baseDir.
// Expected structure:
//
//	baseDir/
//	  prompts/
//	    valuation/
//	      summary.json
//	      takeaways.json
func LoadFromDirectory(baseDir string) error {
	registry := Get()

	promptDir := filepath.Join(baseDir, "prompts")
	if _, err := os.Stat(promptDir); os.IsNotExist(err) {
		return fmt.Errorf("prompts directory not found: %s", promptDir)
	}

	return filepath.Walk(promptDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		var t Template
		if err := json.Unmarshal(data, &t); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}

		// Derive ID from the path when the file does not set one,
		// e.g. prompts/valuation/summary.json -> valuation.summary
		if t.ID == "" {
			rel, _ := filepath.Rel(promptDir, path)
			rel = strings.TrimSuffix(rel, ".json")
			t.ID = strings.ReplaceAll(rel, string(filepath.Separator), ".")
		}

		return registry.Register(&t)
	})
}
