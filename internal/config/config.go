package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all hearth configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Static StaticConfig `yaml:"static"`
}

type ServerConfig struct {
	Bind string `yaml:"bind"`
	Port int    `yaml:"port"`
}

type StaticConfig struct {
	// Dir is the installation's build output directory. When empty the
	// binary serves its embedded copy instead.
	Dir string `yaml:"dir"`
}

// Default returns a Config with sensible defaults: all interfaces, port
// 3000, embedded UI.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Bind: "",
			Port: 3000,
		},
	}
}

// Load reads a YAML config file over the defaults. A missing file returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overlays environment overrides. PORT wins over any configured
// port, matching how the installation is deployed.
func (c *Config) ApplyEnv() {
	if p := os.Getenv("PORT"); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n > 0 {
			c.Server.Port = n
		}
	}
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}
