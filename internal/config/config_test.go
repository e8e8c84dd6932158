package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Expected default addr :8080, got %s", cfg.Addr)
	}
	if cfg.SkinsDir != "skins" {
		t.Errorf("Expected default skins folder, got %s", cfg.SkinsDir)
	}
	if cfg.Serial.Baud != 115200 {
		t.Errorf("Expected default baud 115200, got %d", cfg.Serial.Baud)
	}
	if cfg.Window || cfg.List || cfg.StaticTitle {
		t.Error("Expected boolean options to default to false")
	}
}

func TestFlags(t *testing.T) {
	cfg, err := Load([]string{
		"--skin", "NES", "--type=classic", "--window",
		"--serial-port", "/dev/ttyACM0", "--serial-baud", "9600",
		"--static-title", "--keyboard-device", "/dev/input/event3",
	})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Skin != "NES" || cfg.Type != "classic" || !cfg.Window {
		t.Errorf("Unexpected skin selection %+v", cfg)
	}
	if cfg.Serial.Port != "/dev/ttyACM0" || cfg.Serial.Baud != 9600 {
		t.Errorf("Unexpected serial settings %+v", cfg.Serial)
	}
	if !cfg.StaticTitle || cfg.KeyboardDevice != "/dev/input/event3" {
		t.Errorf("Unexpected config %+v", cfg)
	}
}

func TestEnvironment(t *testing.T) {
	t.Setenv("SKINVIEW_ADDR", "127.0.0.1:9000")
	t.Setenv("SKINVIEW_SERIAL_PORT", "COM3")
	t.Setenv("SKINVIEW_BACKGROUND", "dark")

	cfg, err := Load([]string{"--background", "light"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != "127.0.0.1:9000" {
		t.Errorf("Expected addr from env, got %s", cfg.Addr)
	}
	if cfg.Serial.Port != "COM3" {
		t.Errorf("Expected serial port from env, got %s", cfg.Serial.Port)
	}
	if cfg.Background != "light" {
		t.Errorf("Expected the flag to beat the env, got %s", cfg.Background)
	}
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "view.yaml")
	data := "skins: /srv/skins\nskin: Xbox\nserial:\n  port: /dev/ttyUSB1\n  baud: 57600\nstatic_title: true\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load([]string{"--config", path, "--skin", "DS4"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.File != path {
		t.Errorf("Expected config file %s to be used, got %q", path, cfg.File)
	}
	if cfg.SkinsDir != "/srv/skins" || cfg.Serial.Baud != 57600 || cfg.Serial.Port != "/dev/ttyUSB1" || !cfg.StaticTitle {
		t.Errorf("Unexpected config from file %+v", cfg)
	}
	if cfg.Skin != "DS4" {
		t.Errorf("Expected the flag to beat the file, got %s", cfg.Skin)
	}
}

func TestMissingConfigFile(t *testing.T) {
	if _, err := Load([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml")}); err == nil {
		t.Error("Expected an error for an explicit config file that does not exist")
	}
}

func TestInvalid(t *testing.T) {
	if _, err := Load([]string{"--serial-baud", "0"}); err == nil {
		t.Error("Expected an error for a zero baud rate")
	}
	if _, err := Load([]string{"--no-such-flag"}); err == nil {
		t.Error("Expected an error for an unknown flag")
	}
	if _, err := Load([]string{"--help"}); !errors.Is(err, pflag.ErrHelp) {
		t.Errorf("Expected ErrHelp, got %v", err)
	}
}
