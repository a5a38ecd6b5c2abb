package storage

import (
	"compress/gzip"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"rogue-server/internal/engine"
)

func (s *SaveService) Load() (*engine.GameState, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readSave(f)
}

func readSave(r io.Reader) (*engine.GameState, error) {
	var header SaveFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("invalid magic")
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}

	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open gzip body: %w", err)
	}
	defer zr.Close()

	state := &engine.GameState{}
	if err := json.NewDecoder(zr).Decode(state); err != nil {
		return nil, fmt.Errorf("failed to decode state: %w", err)
	}
	return state, nil
}
