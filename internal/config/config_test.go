package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadMissingFileWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := Load(path, testLogger())

	def := Default()
	if cfg != def {
		t.Fatalf("Load on missing file = %+v, want defaults %+v", cfg, def)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config file was not written: %v", err)
	}
}

func TestLoadPartialFileMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"web_port": 8000, "serial_port": "/dev/ttyACM0"}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := Load(path, testLogger())

	if cfg.WebPort != 8000 {
		t.Fatalf("WebPort = %d, want 8000", cfg.WebPort)
	}
	if cfg.SerialPort != "/dev/ttyACM0" {
		t.Fatalf("SerialPort = %q, want /dev/ttyACM0", cfg.SerialPort)
	}
	if cfg.Baudrate != Default().Baudrate {
		t.Fatalf("Baudrate = %d, want default %d", cfg.Baudrate, Default().Baudrate)
	}
	if !cfg.AutoStartSerial {
		t.Fatal("AutoStartSerial should keep its default when key absent")
	}
}

func TestLoadExplicitFalseSticks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"auto_start_serial": false, "baudrate": 115200}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := Load(path, testLogger())

	if cfg.AutoStartSerial {
		t.Fatal("explicit auto_start_serial=false was overridden by default")
	}
	if cfg.Baudrate != 115200 {
		t.Fatalf("Baudrate = %d, want 115200", cfg.Baudrate)
	}
}

func TestLoadMalformedFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{not json`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := Load(path, testLogger())
	if cfg != Default() {
		t.Fatalf("Load on malformed file = %+v, want defaults", cfg)
	}
}
