package env

import (
	"errors"
	"os"

	"arcade_backend/internal/config"
)

const (
	dsnName = "PG_DSN"
)

type pgConfig struct {
	dsn string
}

// NewPGConfig - конфигурация подключения к Postgres из окружения.
// Отсутствие PG_DSN не фатально: провайдер сервисов в этом случае
// переключается на хранилище в памяти
func NewPGConfig() (config.PGConfig, error) {
	dsn := os.Getenv(dsnName)
	if len(dsn) == 0 {
		return nil, errors.New("pg dsn not found")
	}

	return &pgConfig{
		dsn: dsn,
	}, nil
}

func (cfg *pgConfig) DSN() string {
	return cfg.dsn
}
