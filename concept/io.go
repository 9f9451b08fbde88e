package concept

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Save writes the model as indented JSON-LD, creating parent
// directories as needed.
func (m *Model) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal concept model: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write concept model: %w", err)
	}
	return nil
}
