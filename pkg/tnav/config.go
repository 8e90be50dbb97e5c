package tnav

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/BrandonKowalski/tnav/pkg/tnav/internal"
	"github.com/BrandonKowalski/tnav/pkg/tnav/router"
	"github.com/BrandonKowalski/tnav/pkg/tnav/transition"
)

// Config is the TOML form of Options plus per-route presentation settings.
//
//	capacity = 64
//	log_level = "info"
//	log_path = "logs/tnav.log"
//
//	[[routes]]
//	name = "Detail"
//	transition = "Fade"
//	title = "detail.title"
type Config struct {
	Capacity     int           `toml:"capacity"`
	LogLevel     string        `toml:"log_level"`
	LogPath      string        `toml:"log_path"`
	LogMaxSizeMB int           `toml:"log_max_size_mb"`
	Routes       []RouteConfig `toml:"routes"`
}

// RouteConfig holds presentation settings for one destination.
type RouteConfig struct {
	Name       string `toml:"name"`
	Transition string `toml:"transition"` // transition preset name; empty is Default
	Title      string `toml:"title"`      // message ID of the screen title
	Dialog     bool   `toml:"dialog"`
}

// LoadConfig reads and validates a TOML config file.
func LoadConfig(path string) (Config, error) {
	var c Config
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, NewInfrastructureError("load_config", err)
	}
	return c, finish(c, md)
}

// ParseConfig decodes and validates TOML config text.
func ParseConfig(data string) (Config, error) {
	var c Config
	md, err := toml.Decode(data, &c)
	if err != nil {
		return Config{}, NewInfrastructureError("parse_config", err)
	}
	return c, finish(c, md)
}

func finish(c Config, md toml.MetaData) error {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		internal.GetInternalLogger().Warn("Ignoring unknown config keys", "keys", strings.Join(keys, ","))
	}
	return c.Validate()
}

// Validate checks route names are present and unique and transitions exist.
func (c Config) Validate() error {
	seen := make(map[string]struct{}, len(c.Routes))
	for i, r := range c.Routes {
		if strings.TrimSpace(r.Name) == "" {
			return fmt.Errorf("routes[%d]: name is required", i)
		}
		if _, dup := seen[r.Name]; dup {
			return fmt.Errorf("routes[%d]: duplicate route %q", i, r.Name)
		}
		seen[r.Name] = struct{}{}
		if _, ok := transition.Lookup(r.Transition); !ok {
			return fmt.Errorf("routes[%d] %s: %w: %q", i, r.Name, ErrUnknownTransition, r.Transition)
		}
	}
	return nil
}

// Options converts the config into Nav options.
func (c Config) Options() Options {
	return Options{
		Capacity:     c.Capacity,
		LogPath:      c.LogPath,
		LogMaxSizeMB: c.LogMaxSizeMB,
		LogLevel:     c.LogLevel,
	}
}

// Route returns the settings for a destination name.
func (c Config) Route(name string) (RouteConfig, bool) {
	for _, r := range c.Routes {
		if r.Name == name {
			return r, true
		}
	}
	return RouteConfig{}, false
}

// RegisterOptions returns the router options configured for a destination
// name. Unconfigured names get none.
func (c Config) RegisterOptions(name string) []router.RegisterOption {
	r, ok := c.Route(name)
	if !ok {
		return nil
	}
	var opts []router.RegisterOption
	if t, ok := transition.Lookup(r.Transition); ok {
		opts = append(opts, router.WithTransition(t))
	}
	if r.Dialog {
		opts = append(opts, router.AsDialog())
	}
	return opts
}
