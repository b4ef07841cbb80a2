package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
)

type JSONStore struct {
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Load(_ context.Context) (Mapping, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read mapping: %w", err)
	}
	m := Mapping{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decode mapping %s: %w", s.path, err)
	}
	return m, nil
}

func (s *JSONStore) Save(_ context.Context, m Mapping) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode mapping: %w", err)
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write mapping: %w", err)
	}
	return nil
}

func (s *JSONStore) Close() error { return nil }
