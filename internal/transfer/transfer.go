package transfer

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/MrSnakeDoc/startpage/internal/domain"
)

const (
	// ExportFileName is the name offered for downloaded configurations.
	ExportFileName = "page-config.json"
	// ContentType of exported files.
	ContentType = "application/json"
)

// Export serializes doc as pretty-printed JSON with a two-space indent.
func Export(doc *domain.Configuration) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("export: %w", domain.ErrInvalidConfig)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return data, nil
}

// Import parses an uploaded file. Only the shape is checked: the top level must be an
// object whose "categories" member is an array. Anything else is domain.ErrInvalidConfig.
func Import(data []byte) (*domain.Configuration, error) {
	var shape map[string]json.RawMessage
	if err := json.Unmarshal(data, &shape); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	if shape == nil {
		return nil, fmt.Errorf("%w: document is not an object", domain.ErrInvalidConfig)
	}
	raw, ok := shape["categories"]
	if !ok || !isArray(raw) {
		return nil, fmt.Errorf("%w: categories must be an array", domain.ErrInvalidConfig)
	}

	var doc domain.Configuration
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
