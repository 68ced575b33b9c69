package env

import (
	"net"
	"os"

	"arcade_backend/internal/config"
)

const (
	httpHostEnvName = "HTTP_HOST"
	httpPortEnvName = "HTTP_PORT"
)

const defaultHTTPPort = "8080"

type httpConfig struct {
	host string
	port string
}

// NewHTTPConfig - адрес HTTP сервера из окружения, порт по умолчанию 8080
func NewHTTPConfig() (config.HTTPConfig, error) {
	port := os.Getenv(httpPortEnvName)
	if len(port) == 0 {
		port = defaultHTTPPort
	}

	return &httpConfig{
		host: os.Getenv(httpHostEnvName),
		port: port,
	}, nil
}

func (cfg *httpConfig) Address() string {
	return net.JoinHostPort(cfg.host, cfg.port)
}
