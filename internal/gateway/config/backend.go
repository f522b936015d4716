package config

import (
	"strings"
	"time"
)

// Пути ресурсов backend.
const (
	MemosPath = "/api/memos"
	BoardPath = "/api/board"
)

// BackendConfig описывает REST backend заметок и досок.
type BackendConfig struct {
	Origin         string        `yaml:"origin" env:"GATEWAY_BACKEND_ORIGIN" env-default:"http://localhost:9999"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"GATEWAY_BACKEND_REQUEST_TIMEOUT" env-default:"5s"`
	Credentialed   bool          `yaml:"credentialed" env:"GATEWAY_BACKEND_CREDENTIALED" env-default:"true"`
	DefaultAuthor  string        `yaml:"default_author" env:"GATEWAY_BACKEND_DEFAULT_AUTHOR" env-default:"anonymous"`
}

// MemosURL возвращает базовый URL ресурса заметок.
func (c *BackendConfig) MemosURL() string {
	return strings.TrimRight(c.Origin, "/") + MemosPath
}

// BoardURL возвращает базовый URL ресурса досок.
func (c *BackendConfig) BoardURL() string {
	return strings.TrimRight(c.Origin, "/") + BoardPath
}
