package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"tracker/models"
	"tracker/validator"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

// Default trả về catalog nhúng sẵn trong binary
func Default() (*models.Catalog, error) {
	return Parse(defaultCatalog)
}

// Load đọc catalog từ file, path rỗng thì dùng catalog mặc định
func Load(path string) (*models.Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decode YAML và validate catalog
func Parse(data []byte) (*models.Catalog, error) {
	var c models.Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := validator.ValidateCatalog(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
