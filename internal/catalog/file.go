package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"lilutecno/internal/domain"
)

// LoadFile reads raw catalog records from a YAML or JSON file.
func LoadFile(path string) ([]domain.RawProduct, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw []domain.RawProduct
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &raw)
	case ".json":
		err = json.Unmarshal(b, &raw)
	default:
		return nil, fmt.Errorf("catalog: unsupported file type %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
	}
	return raw, nil
}
