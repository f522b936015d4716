package config

import "time"

// Драйверы хранилища зеркала.
const (
	MirrorMemory = "memory"
	MirrorRedis  = "redis"
	MirrorSQLite = "sqlite"
)

// MirrorDrivers - допустимые значения MirrorConfig.Driver.
var MirrorDrivers = []string{MirrorMemory, MirrorRedis, MirrorSQLite}

// MirrorConfig описывает хранилище локального зеркала заметок.
type MirrorConfig struct {
	Driver      string        `yaml:"driver" env:"GATEWAY_MIRROR_DRIVER" env-default:"sqlite"`
	Key         string        `yaml:"key" env:"GATEWAY_MIRROR_KEY" env-default:"memoboard:memos"`
	SQLitePath  string        `yaml:"sqlite_path" env:"GATEWAY_MIRROR_SQLITE_PATH" env-default:"data/mirror.db"`
	RedisPrefix string        `yaml:"redis_prefix" env:"GATEWAY_MIRROR_REDIS_PREFIX" env-default:""`
	RedisTTL    time.Duration `yaml:"redis_ttl" env:"GATEWAY_MIRROR_REDIS_TTL" env-default:"0s"`
}
