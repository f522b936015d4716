package config

import (
	"time"

	"memoboard/pkg/db/redis"
)

// RedisConfig представляет конфигурацию Redis для зеркала.
type RedisConfig struct {
	Host     string        `yaml:"host" env:"GATEWAY_REDIS_HOST" env-default:"localhost"`
	Port     int           `yaml:"port" env:"GATEWAY_REDIS_PORT" env-default:"6379"`
	Password string        `yaml:"password" env:"GATEWAY_REDIS_PASSWORD" env-default:""`
	DB       int           `yaml:"db" env:"GATEWAY_REDIS_DB" env-default:"0"`
	PoolSize int           `yaml:"pool_size" env:"GATEWAY_REDIS_POOL_SIZE" env-default:"10"`
	Timeout  time.Duration `yaml:"timeout" env:"GATEWAY_REDIS_TIMEOUT" env-default:"5s"`
}

// ClientConfig возвращает настройки подключения для pkg/db/redis.
func (c *RedisConfig) ClientConfig() *redis.Config {
	return &redis.Config{
		Host:     c.Host,
		Port:     c.Port,
		Password: c.Password,
		DB:       c.DB,
		PoolSize: c.PoolSize,
		Timeout:  c.Timeout,
	}
}
