package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"ember/internal/target"
)

const noEmberTomlMessage = "no ember.toml found\nplease pass a target triple explicitly, e.g.:\n  ember target info x86_64-linux-gnu"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package packageConfig `toml:"package"`
	Target  targetConfig  `toml:"target"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type targetConfig struct {
	Triple   string `toml:"triple"`
	CPU      string `toml:"cpu"`
	CppStd   int    `toml:"cppstd"`
	CRuntime string `toml:"crt"`
}

func findEmberToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "ember.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findEmberToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return projectConfig{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("target") {
		return projectConfig{}, fmt.Errorf("%s: missing [target]", path)
	}
	if !meta.IsDefined("target", "triple") || strings.TrimSpace(cfg.Target.Triple) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [target].triple", path)
	}
	return cfg, nil
}

// resolveDescription turns the manifest [target] table into a Description,
// applying the optional cpu/cppstd/crt overrides on top of the triple.
func resolveDescription(cfg targetConfig) (target.Description, error) {
	desc, err := target.ParseTriple(cfg.Triple)
	if err != nil {
		return target.Description{}, err
	}
	if cfg.CPU != "" {
		cpu, err := target.ParseFeature(cfg.CPU)
		if err != nil {
			return target.Description{}, err
		}
		desc.CPU = cpu
	}
	if cfg.CppStd != 0 {
		desc.CppStd = cfg.CppStd
	}
	if cfg.CRuntime != "" {
		desc.CRuntime = cfg.CRuntime
	}
	return desc, nil
}
