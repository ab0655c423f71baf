// Package config loads the application configuration from a config.toml
// sitting next to the executable, falling back to built-in defaults.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig is the full application configuration.
type AppConfig struct {
	Server   ServerConfig   `toml:"server"`
	Data     DataConfig     `toml:"data"`
	Business BusinessConfig `toml:"business"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
	// OpenBrowser launches the default browser on startup, desktop style.
	OpenBrowser bool `toml:"open_browser"`
}

// DataConfig holds storage paths.
type DataConfig struct {
	DataDir      string `toml:"data_dir"`
	DatabaseFile string `toml:"database_file"`
}

// BusinessConfig carries pipeline defaults overridable per request.
type BusinessConfig struct {
	DefaultCadence string `toml:"default_cadence"`
	// PercentScale: "auto", "fraction", or "whole".
	PercentScale string `toml:"percent_scale"`
	// RankLimit caps leaderboards; 0 means unbounded.
	RankLimit int `toml:"rank_limit"`
}

// LoadConfigInfo reports what the config file explicitly set.
type LoadConfigInfo struct {
	PortSpecified bool
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:        20525,
			DevMode:     false,
			OpenBrowser: true,
		},
		Data: DataConfig{
			DataDir:      "data",
			DatabaseFile: "pocketmanager.db",
		},
		Business: BusinessConfig{
			DefaultCadence: "weekly",
			PercentScale:   "auto",
			RankLimit:      0,
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir returns the directory of the running executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo loads config.toml and reports load metadata.
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{}
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(config)
			return config, info, nil
		}
		return nil, info, err
	}

	info.PortSpecified = isPortSpecifiedInToml(data)

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, err
	}

	applyEnvOverrides(config)
	return config, info, nil
}

// applyEnvOverrides lets deployment scripts override the file without
// editing it.
func applyEnvOverrides(config *AppConfig) {
	if v := os.Getenv("POCKETMANAGER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Server.Port = port
		}
	}
	if v := os.Getenv("POCKETMANAGER_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}
	if v := os.Getenv("POCKETMANAGER_PERCENT_SCALE"); v != "" {
		config.Business.PercentScale = v
	}
}

// LoadConfig loads config.toml from the executable's directory.
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo()
	return config, err
}

// SaveConfig writes the configuration back to config.toml.
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// EnsureDataDir creates the data directory tree next to the executable.
func EnsureDataDir(config *AppConfig) (string, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	dataDir := filepath.Join(exeDir, config.Data.DataDir)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	subdirs := []string{"uploads", "exports"}
	for _, subdir := range subdirs {
		path := filepath.Join(dataDir, subdir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}

// DatabasePath resolves the SQLite file location inside the data dir.
func DatabasePath(config *AppConfig) string {
	exeDir, _ := GetExeDir()
	if exeDir == "" {
		exeDir = "."
	}
	return filepath.Join(exeDir, config.Data.DataDir, config.Data.DatabaseFile)
}
