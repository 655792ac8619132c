package config

import "fmt"

// AppConfig contains HTTP server configuration
type AppConfig struct {
	Host string `env:"APP_HOST" env-default:"localhost"`
	Port uint16 `env:"APP_PORT" env-default:"3000"`
}

// Addr returns the host:port address the server listens on
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}
