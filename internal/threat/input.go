package threat

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// DecodeElement parses an element from JSON or YAML and validates it
func DecodeElement(data []byte) (*Element, error) {
	var el Element
	if err := unmarshal(data, &el); err != nil {
		return nil, fmt.Errorf("failed to parse element: %w", err)
	}
	if err := ValidateElement(&el); err != nil {
		return nil, err
	}
	return &el, nil
}

// DecodeDiagram parses a diagram from YAML or JSON and validates it
func DecodeDiagram(data []byte) (*Diagram, error) {
	var d Diagram
	if err := unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse diagram: %w", err)
	}
	if err := validate.Struct(&d); err != nil {
		return nil, fmt.Errorf("invalid diagram: %w", err)
	}
	return &d, nil
}

// ValidateElement checks that an element has a known type
func ValidateElement(el *Element) error {
	if el == nil {
		return ErrNilElement
	}
	if err := validate.Struct(el); err != nil {
		return fmt.Errorf("invalid element: %w", err)
	}
	return nil
}

// LoadElement reads and decodes an element file
func LoadElement(path string) (*Element, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return DecodeElement(data)
}

// LoadDiagram reads and decodes a diagram file
func LoadDiagram(path string) (*Diagram, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return DecodeDiagram(data)
}

// unmarshal decodes JSON objects with encoding/json and anything else as YAML
func unmarshal(data []byte, v any) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		return json.Unmarshal(trimmed, v)
	}
	return yaml.Unmarshal(data, v)
}
