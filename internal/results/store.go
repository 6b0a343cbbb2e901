package results

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
)

const recordVersion = 1

// Store persists one Set in a JSON file. Paths ending in ".br" are brotli-compressed.
type Store struct {
	path string
}

func NewStore(path string) Store {
	return Store{path: path}
}

func (s Store) Path() string {
	return s.path
}

type record struct {
	Version int `json:"version"`
	Set
}

// Load reads the stored Set. A missing file yields an empty Set. Besides the current record format, Load accepts what
// older writers and hosts stored: a bare JSON string (one legacy document) or an array of widget values.
func (s Store) Load() (Set, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Set{}, nil
		}
		return Set{}, err
	}
	if s.compressed() {
		if b, err = io.ReadAll(brotli.NewReader(bytes.NewReader(b))); err != nil {
			return Set{}, fmt.Errorf("decompress %s: %w", s.path, err)
		}
	}
	set, err := decodeSet(b)
	if err != nil {
		return Set{}, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return set, nil
}

func decodeSet(b []byte) (Set, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return Set{}, nil
	}
	switch b[0] {
	case '"':
		var doc string
		if err := json.Unmarshal(b, &doc); err != nil {
			return Set{}, err
		}
		return Set{Fallback: doc}, nil
	case '[':
		var values []any
		if err := json.Unmarshal(b, &values); err != nil {
			return Set{}, err
		}
		set, _ := RecoverWidgetValues(values)
		return set, nil
	}

	var rec record
	if err := json.Unmarshal(b, &rec); err != nil {
		return Set{}, err
	}
	if rec.Version > recordVersion {
		return Set{}, fmt.Errorf("unsupported record version %d", rec.Version)
	}
	return rec.Set, nil
}

func (s Store) Save(set Set) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(record{Version: recordVersion, Set: set}, "", "  ")
	if err != nil {
		return err
	}
	if s.compressed() {
		var buf bytes.Buffer
		w := brotli.NewWriterLevel(&buf, brotli.DefaultCompression)
		if _, err := w.Write(b); err != nil {
			return fmt.Errorf("compress %s: %w", s.path, err)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("compress %s: %w", s.path, err)
		}
		b = buf.Bytes()
	}
	return os.WriteFile(s.path, b, 0o644)
}

func (s Store) compressed() bool {
	return strings.HasSuffix(s.path, ".br")
}
