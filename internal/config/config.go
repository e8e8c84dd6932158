// Package config resolves skinview settings from flags, SKINVIEW_*
// environment variables and an optional skinview.{yaml,toml,json} file, in
// that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "SKINVIEW"

type Serial struct {
	Port string
	Baud int
}

type Config struct {
	Addr           string
	SkinsDir       string
	Skin           string // skin name, empty = first discovered
	Type           string // input-source tag, empty = the skin's first
	Background     string // empty = the skin's first
	Window         bool   // native window instead of the web surface
	List           bool   // print discovered skins and exit
	OpenBrowser    bool
	StaticTitle    bool
	Debug          bool
	Serial         Serial
	KeyboardDevice string
	File           string // config file actually read, if any
}

// flag name -> config key, for flags whose key differs
var flagKeys = map[string]string{
	"serial-port":     "serial.port",
	"serial-baud":     "serial.baud",
	"keyboard-device": "keyboard.device",
	"static-title":    "static_title",
	"open-browser":    "open_browser",
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("skinview", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.String("addr", ":8080", "HTTP listen address")
	fs.String("skins", "skins", "folder scanned recursively for skins")
	fs.String("skin", "", "skin to show, by name")
	fs.String("type", "", "input source type of the skin (gamepad, classic, keyboard)")
	fs.String("background", "", "background to show")
	fs.Bool("window", false, "show the skin in a native window instead of the browser")
	fs.Bool("list", false, "list discovered skins and exit")
	fs.Bool("open-browser", false, "open the viewer in the default browser on start")
	fs.Bool("static-title", false, "use a fixed window title instead of the skin name")
	fs.Bool("debug", false, "log raw device events")
	fs.String("serial-port", "", "serial port of the spy adapter")
	fs.Int("serial-baud", 115200, "baud rate of the spy adapter")
	fs.String("keyboard-device", "", "evdev node of the keyboard, empty = autodetect")
	fs.String("config", "", "config file (default: ./skinview.{yaml,toml,json})")
	return fs
}

// Load parses args (without the program name) and merges the other
// sources. pflag.ErrHelp is returned as is when help was requested.
func Load(args []string) (*Config, error) {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		key := f.Name
		if k, ok := flagKeys[f.Name]; ok {
			key = k
		}
		if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
			bindErr = err
		}
	})
	if bindErr != nil {
		return nil, fmt.Errorf("config: bind flags: %w", bindErr)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("skinview")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	cfg := &Config{
		Addr:        v.GetString("addr"),
		SkinsDir:    v.GetString("skins"),
		Skin:        v.GetString("skin"),
		Type:        v.GetString("type"),
		Background:  v.GetString("background"),
		Window:      v.GetBool("window"),
		List:        v.GetBool("list"),
		OpenBrowser: v.GetBool("open_browser"),
		StaticTitle: v.GetBool("static_title"),
		Debug:       v.GetBool("debug"),
		Serial: Serial{
			Port: v.GetString("serial.port"),
			Baud: v.GetInt("serial.baud"),
		},
		KeyboardDevice: v.GetString("keyboard.device"),
		File:           v.ConfigFileUsed(),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Serial.Baud <= 0 {
		return fmt.Errorf("config: serial.baud must be positive, got %d", c.Serial.Baud)
	}
	if c.SkinsDir == "" {
		return errors.New("config: skins folder is empty")
	}
	return nil
}

// Usage returns the flag help text.
func Usage() string {
	return newFlagSet().FlagUsages()
}
