package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the root of the demo server's configuration tree. It keeps the
// layered include/override style of the session glue this was adapted
// from, trimmed to what a Telnet negotiation demo needs.
type Config struct {
	LoadedFiles []string        `yaml:"-"`
	Include     []string        `yaml:"include"`
	Debug       bool            `yaml:"debug"`
	MaxSessions int             `yaml:"maxSessions"`
	HotReload   bool            `yaml:"hotReload"`
	General     GeneralConfig   `yaml:"general"`
	Paths       PathsConfig     `yaml:"paths"`
	Loggers     []LoggerConfig  `yaml:"loggers"`
	Listener    ListenerConfig  `yaml:"listener"`
	Admin       AdminConfig     `yaml:"admin"`
	Views       map[string]View `yaml:"views"`
}

type GeneralConfig struct {
	Name     string `yaml:"name"`
	Hostname string `yaml:"hostname"`
}

type PathsConfig struct {
	Data string `yaml:"data"`
	Art  string `yaml:"art"`
}

type LoggerConfig struct {
	Stdout     bool   `yaml:"stdout,omitempty"`
	File       string `yaml:"file,omitempty"`
	Level      string `yaml:"level"`
	Source     bool   `yaml:"source"`
	HideTime   bool   `yaml:"hideTime,omitempty"`
	TimeFormat string `yaml:"timeFormat,omitempty"`
}

// ListenerConfig configures the one protocol this server speaks. Its
// fields map directly onto telnet.Option construction in internal/transport.
type ListenerConfig struct {
	Addr        string `yaml:"addr"`
	InitialView string `yaml:"initialView"`
	ConvertLF   bool   `yaml:"convertLF"`
	TTY         bool   `yaml:"tty"`
	Debug       bool   `yaml:"debug"`
}

// AdminConfig names the monitor CLI's sqlite-backed admin account.
type AdminConfig struct {
	Username string `yaml:"username"`
}

type View struct {
	Ansi    string            `yaml:"ansi,omitempty"`
	Module  string            `yaml:"module,omitempty"`
	Actions map[string]string `yaml:"actions,omitempty"`
	Next    *NextView         `yaml:"next,omitempty"`
}

type NextView struct {
	View  string `yaml:"view"`
	Delay int    `yaml:"delay"`
}

// UnmarshalYAML accepts either "next: viewName" or the expanded object
// form with an explicit delay.
func (n *NextView) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		n.View = value.Value
		return nil
	}
	type plain NextView
	var tmp plain
	if err := value.Decode(&tmp); err != nil {
		return err
	}
	n.View = tmp.View
	n.Delay = tmp.Delay
	return nil
}

func Load(filename string) (*Config, error) {
	cfg := &Config{LoadedFiles: []string{}}
	processed := make(map[string]bool)
	if err := loadRecursive(filename, cfg, processed); err != nil {
		return nil, err
	}
	return cfg, nil
}

// maxIncludeDepth bounds the include chain — a real cycle is already
// broken by the processed set, but a long accidental chain (A includes B
// includes C ... ) should fail loudly rather than build a thousand-file
// LoadedFiles list on a hot-reload loop.
const maxIncludeDepth = 32

func loadRecursive(filename string, cfg *Config, processed map[string]bool) error {
	return loadRecursiveDepth(filename, cfg, processed, 0)
}

func loadRecursiveDepth(filename string, cfg *Config, processed map[string]bool, depth int) error {
	if depth > maxIncludeDepth {
		return fmt.Errorf("config include depth exceeded %d at %s", maxIncludeDepth, filename)
	}

	absPath, err := filepath.Abs(filename)
	if err != nil {
		return err
	}
	if processed[absPath] {
		return nil
	}
	processed[absPath] = true
	cfg.LoadedFiles = append(cfg.LoadedFiles, absPath)

	data, err := os.ReadFile(absPath)
	if err != nil {
		return err
	}
	expanded := []byte(os.ExpandEnv(string(data)))

	// Peeked separately from the full unmarshal below so included files
	// are merged into cfg before this file's own values, letting this
	// file override anything an include set.
	var includes struct {
		Include []string `yaml:"include"`
	}
	if err := yaml.Unmarshal(expanded, &includes); err != nil {
		return err
	}

	baseDir := filepath.Dir(absPath)
	for _, includePath := range includes.Include {
		fullPath := resolveIncludePath(baseDir, includePath)
		if err := loadRecursiveDepth(fullPath, cfg, processed, depth+1); err != nil {
			return fmt.Errorf("failed to load included config %s: %w", fullPath, err)
		}
	}

	if err := yaml.Unmarshal(expanded, cfg); err != nil {
		return err
	}
	return nil
}

func resolveIncludePath(baseDir, includePath string) string {
	if filepath.IsAbs(includePath) {
		return includePath
	}
	return filepath.Join(baseDir, includePath)
}
