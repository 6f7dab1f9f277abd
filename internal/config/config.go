package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
)

// Config holds the application settings read from a JSON file.
type Config struct {
	SerialPort       string `json:"serial_port"`
	Baudrate         int    `json:"baudrate"`
	ElementsJSONPath string `json:"elements_json_path"`
	WebPort          int    `json:"web_port"`
	AutoStartSerial  bool   `json:"auto_start_serial"`
}

// Default returns the built-in settings. The serial port default depends
// on the host platform.
func Default() Config {
	port := "/dev/ttyUSB0"
	if runtime.GOOS == "windows" {
		port = "COM3"
	}
	return Config{
		SerialPort:       port,
		Baudrate:         9600,
		ElementsJSONPath: filepath.Join(ProjectRoot(), "elements", "PeriodicTableJSON.json"),
		WebPort:          5000,
		AutoStartSerial:  true,
	}
}

// Load reads the config file at path. A missing file writes the defaults
// back to disk for next time; an unreadable or malformed file falls back
// to defaults with a warning. Keys present in the file override defaults
// key by key, so a partial file is fine.
func Load(path string, logger *slog.Logger) Config {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("config file not found, writing defaults", "path", path)
			writeDefault(path, cfg, logger)
		} else {
			logger.Warn("config file unreadable, using defaults", "path", path, "error", err)
		}
		return cfg
	}
	var present map[string]json.RawMessage
	if err := json.Unmarshal(data, &present); err != nil {
		logger.Warn("config file malformed, using defaults", "path", path, "error", err)
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		logger.Warn("config file malformed, using defaults", "path", path, "error", err)
		return Default()
	}
	// Restore defaults for keys the file does not carry, so a zero value
	// decoded from JSON only sticks when the key was actually present.
	def := Default()
	if _, ok := present["serial_port"]; !ok {
		cfg.SerialPort = def.SerialPort
	}
	if _, ok := present["baudrate"]; !ok {
		cfg.Baudrate = def.Baudrate
	}
	if _, ok := present["elements_json_path"]; !ok {
		cfg.ElementsJSONPath = def.ElementsJSONPath
	}
	if _, ok := present["web_port"]; !ok {
		cfg.WebPort = def.WebPort
	}
	if _, ok := present["auto_start_serial"]; !ok {
		cfg.AutoStartSerial = def.AutoStartSerial
	}
	return cfg
}

func writeDefault(path string, cfg Config, logger *slog.Logger) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		logger.Warn("could not write default config", "path", path, "error", err)
	}
}

// ProjectRoot walks up from the working directory until it finds go.mod.
func ProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "."
}
