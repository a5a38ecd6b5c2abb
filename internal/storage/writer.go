package storage

import (
	"compress/gzip"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"rogue-server/internal/engine"
	"rogue-server/pkg/logger"
)

const (
	MagicHeader string = `RGSV` // 4 байта
	Version1    uint32 = 1
)

// SaveFileHeader - точное представление заголовка файла в памяти.
// binary.Write пишет его целиком: здесь только массивы и числа,
// без слайсов и строк.
type SaveFileHeader struct {
	Magic     [4]byte // 4 байта
	Version   uint32  // 4 байта
	Timestamp int64   // 8 байт
}

// SaveService пишет и читает сохранения: бинарный заголовок, затем
// gzip-сжатый JSON игрового состояния.
type SaveService struct {
	Path string
}

func NewSaveService(path string) *SaveService {
	// Создаем папку если нет
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		_ = os.MkdirAll(dir, 0755)
	}
	return &SaveService{Path: path}
}

// Save атомарно пишет сохранение: сначала во временный файл, потом
// rename. Оборванная запись не портит предыдущее сохранение.
func (s *SaveService) Save(state *engine.GameState) error {
	tmp := s.Path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := writeSave(f, state); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		os.Remove(tmp)
		return err
	}
	logger.Log.WithField("path", s.Path).Info("Game saved")
	return nil
}

// Delete стирает сохранение. Отсутствие файла - не ошибка.
func (s *SaveService) Delete() error {
	err := os.Remove(s.Path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func writeSave(w io.Writer, state *engine.GameState) error {
	header := SaveFileHeader{
		Version:   Version1,
		Timestamp: time.Now().Unix(),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	zw := gzip.NewWriter(w)
	if err := json.NewEncoder(zw).Encode(state); err != nil {
		zw.Close()
		return fmt.Errorf("failed to encode state: %w", err)
	}
	return zw.Close()
}
