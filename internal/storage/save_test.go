package storage

import (
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"rogue-server/internal/domain"
	"rogue-server/internal/engine"
	"rogue-server/internal/systems"
)

func newTestState() *engine.GameState {
	return engine.NewGameState(domain.Size{Width: 32, Height: 32}, 99, systems.AlgorithmShadowcast)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	svc := NewSaveService(filepath.Join(t.TempDir(), "saves", "game.rgsv"))
	state := newTestState()

	if err := svc.Save(state); err != nil {
		t.Fatal(err)
	}
	loaded, err := svc.Load()
	if err != nil {
		t.Fatal(err)
	}

	want, _ := json.Marshal(state)
	got, _ := json.Marshal(loaded)
	if string(want) != string(got) {
		t.Fatal("loaded state differs from saved state")
	}
}

func TestLoadMissingFile(t *testing.T) {
	svc := NewSaveService(filepath.Join(t.TempDir(), "missing.rgsv"))
	if _, err := svc.Load(); err == nil {
		t.Fatal("load of missing file succeeded")
	}
}

func TestLoadRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.rgsv")
	if err := os.WriteFile(path, []byte("NOTASAVEFILE0000"), 0644); err != nil {
		t.Fatal(err)
	}
	svc := NewSaveService(path)
	if _, err := svc.Load(); err == nil {
		t.Fatal("file with bad magic accepted")
	}
}

func TestLoadRejectsUnsupportedVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.rgsv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	header := SaveFileHeader{Version: Version1 + 1, Timestamp: time.Now().Unix()}
	copy(header.Magic[:], MagicHeader)
	if err := binary.Write(f, binary.LittleEndian, &header); err != nil {
		t.Fatal(err)
	}
	f.Close()

	svc := NewSaveService(path)
	if _, err := svc.Load(); err == nil {
		t.Fatal("file with future version accepted")
	}
}

func TestSaveOverwritesAtomically(t *testing.T) {
	svc := NewSaveService(filepath.Join(t.TempDir(), "game.rgsv"))
	if err := svc.Save(newTestState()); err != nil {
		t.Fatal(err)
	}
	if err := svc.Save(newTestState()); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(svc.Path + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("temp file left behind")
	}
	if _, err := svc.Load(); err != nil {
		t.Fatal(err)
	}
}

func TestDelete(t *testing.T) {
	svc := NewSaveService(filepath.Join(t.TempDir(), "game.rgsv"))
	if err := svc.Save(newTestState()); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Load(); err == nil {
		t.Fatal("save survived delete")
	}
	// Повторное удаление - не ошибка.
	if err := svc.Delete(); err != nil {
		t.Fatal(err)
	}
}
