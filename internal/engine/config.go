package engine

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"rogue-server/internal/domain"
)

// Config хранит параметры запуска движка и сервера.
type Config struct {
	// Addr - адрес HTTP-сервера, например ":8080".
	Addr string `yaml:"addr"`

	// Размер игрового поля в клетках.
	GridWidth  int `yaml:"grid_width"`
	GridHeight int `yaml:"grid_height"`

	// Seed - мастер-зерно. От него зависят все уровни подземелья.
	// 0 означает "случайное при старте".
	Seed uint64 `yaml:"seed"`

	// SavePath - путь к файлу сохранения.
	SavePath string `yaml:"save_path"`

	// Omniscient включает отладочный режим видимости: вся карта открыта.
	Omniscient bool `yaml:"omniscient"`
}

// NewConfig создает конфиг по умолчанию (случайный сид).
func NewConfig() Config {
	return Config{
		Addr:       ":8080",
		GridWidth:  60,
		GridHeight: 40,
		Seed:       uint64(time.Now().UnixNano()),
		SavePath:   "saves/game.rgsv",
	}
}

// LoadConfig читает YAML-файл поверх значений по умолчанию.
// Пустой путь - просто значения по умолчанию.
func LoadConfig(path string) (Config, error) {
	cfg := NewConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("чтение конфига: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("разбор конфига: %w", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	if cfg.GridWidth < 16 || cfg.GridHeight < 16 {
		return cfg, fmt.Errorf("слишком маленькое поле: %dx%d", cfg.GridWidth, cfg.GridHeight)
	}
	return cfg, nil
}

func (c Config) GridSize() domain.Size {
	return domain.Size{Width: c.GridWidth, Height: c.GridHeight}
}
