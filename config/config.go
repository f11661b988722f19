// Package config loads the server's YAML configuration file, applying
// defaults before the file is unmarshaled over them.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"code.hybscloud.com/rovernet/protocol"
)

// Config is the top-level configuration document.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig controls the TCP listener.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LoggingConfig controls the logrus level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads and parses the YAML file at path, starting from defaults and
// letting the file override them field by field. This server has no
// mandatory external configuration, so a missing file is not an error: Load
// falls back to the built-in defaults instead of failing.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: protocol.DefaultPort,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
