package board

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Board Serialization API
// =============================================================================

// Marshal serializes a Board to pretty-printed JSON bytes.
func Marshal(b Board) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(b, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal deserializes JSON bytes into a Board.
// The decoded board is validated; corrupt layouts are rejected.
func Unmarshal(data []byte) (Board, error) {
	return Read(bytes.NewReader(data))
}

// Write encodes a Board as indented JSON to w.
func Write(b Board, w io.Writer) error {
	if b.Items == nil {
		b.Items = []PlacedItem{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Read decodes and validates a Board from r.
func Read(r io.Reader) (Board, error) {
	var b Board
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return Board{}, fmt.Errorf("decode: %w", err)
	}
	if err := b.Validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}

// WriteFile writes a Board to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(b Board, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(b, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile reads and validates a Board from a JSON file.
func ReadFile(path string) (Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return Board{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
