/*******************************************************************************
*
* Copyright 2026 The ENDF Ingest Authors
*
* Licensed under the Apache License, Version 2.0 (the "License");
* you may not use this file except in compliance with the License.
* You may obtain a copy of the License at
*
*     http://www.apache.org/licenses/LICENSE-2.0
*
*******************************************************************************/

// Package config decodes the TOML configuration file this program reads
// at startup (spec.md §6), the way the teacher's common.ParsePackageDefinition
// (src/holo-build/parser.go) decodes a package definition: a nice exported
// struct tree is handed to toml.Decode so malformed input produces a
// meaningful per-field error.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the root of the TOML configuration file.
type Config struct {
	Endf EndfSection
	DB   DBSection
}

// EndfSection only needs a nice exported name for the TOML parser to
// produce more meaningful error messages on malformed input data.
type EndfSection struct {
	LibraryDir string `toml:"library_dir"`
	Workers    int    `toml:"workers"`
}

// DBSection only needs a nice exported name for the TOML parser to
// produce more meaningful error messages on malformed input data.
type DBSection struct {
	Host     string `toml:"db_host"`
	Port     int    `toml:"db_port"`
	Name     string `toml:"db_name"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

// Load reads and decodes the configuration file at path, applying the
// same defaults the teacher's parser applies to an absent TOML key
// (Release defaulting to 1 in parser.go): Workers defaults to 1 and
// DB.Port defaults to 5432 when left at zero.
func Load(path string) (*Config, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %q: %w", path, err)
	}

	var cfg Config
	if _, err := toml.Decode(string(blob), &cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config file %q: %w", path, err)
	}

	cfg.Endf.LibraryDir = strings.TrimSpace(cfg.Endf.LibraryDir)
	if cfg.Endf.LibraryDir == "" {
		return nil, fmt.Errorf("config file %q: missing endf.library_dir", path)
	}
	if cfg.Endf.Workers == 0 {
		cfg.Endf.Workers = 1
	}
	if cfg.DB.Port == 0 {
		cfg.DB.Port = 5432
	}
	if strings.TrimSpace(cfg.DB.Name) == "" {
		return nil, fmt.Errorf("config file %q: missing db.db_name", path)
	}

	return &cfg, nil
}
