package repositories

import (
	"agv-route-service/internal/domain"
	"bytes"
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File-backed implementation of the LayoutRepository port.
type YAMLLayoutRepository struct {
	Path string
}

func NewYAMLLayoutRepository(path string) *YAMLLayoutRepository {
	return &YAMLLayoutRepository{Path: path}
}

// Read and validate the layout file.
func (r *YAMLLayoutRepository) LoadLayout(ctx context.Context) (*domain.Layout, error) {
	data, err := os.ReadFile(r.Path)
	if err != nil {
		return nil, fmt.Errorf("load layout: read %q: %w", r.Path, err)
	}

	doc, err := DecodeLayoutYAML(data)
	if err != nil {
		return nil, fmt.Errorf("load layout %q: %w", r.Path, err)
	}

	l, err := doc.ToLayout()
	if err != nil {
		return nil, fmt.Errorf("load layout %q: %w", r.Path, err)
	}
	return l, nil
}

// DecodeLayoutYAML parses a layout document, rejecting unknown keys.
func DecodeLayoutYAML(data []byte) (LayoutDocument, error) {
	var doc LayoutDocument

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return LayoutDocument{}, fmt.Errorf("parse yaml: %w", err)
	}
	return doc, nil
}

// EncodeLayoutYAML renders a layout document.
func EncodeLayoutYAML(doc LayoutDocument) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}
