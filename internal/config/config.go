// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package config loads the optional TOML configuration shared by the gohack
// command line tools. Command line flags take precedence over its values.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

type Config struct {
	LogLevel  string          `toml:"log_level"`
	Assembler AssemblerConfig `toml:"assembler"`
	Machine   MachineConfig   `toml:"machine"`
}

type AssemblerConfig struct {
	// Extension replacing .asm for the output file
	OutputExtension string `toml:"output_extension"`

	// Write a symbol file next to the output
	Debug           bool   `toml:"debug"`
	SymbolExtension string `toml:"symbol_extension"`
}

type MachineConfig struct {
	// Zero runs until the program halts
	MaxSteps uint64 `toml:"max_steps"`

	// RAM cells printed when the machine stops
	DumpWords uint16 `toml:"dump_words"`
}

func Default() *Config {
	return &Config{
		LogLevel: "warning",
		Assembler: AssemblerConfig{
			OutputExtension: ".hack",
			SymbolExtension: ".hackdb",
		},
		Machine: MachineConfig{
			DumpWords: 16,
		},
	}
}

// Load reads the file at path over the defaults. An empty path yields the
// defaults.
func Load(path string) (*Config, error) {
	config := Default()

	if path == "" {
		return config, nil
	}

	meta, err := toml.DecodeFile(path, config)

	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf(
			"loading config %s: unknown key %q", path, undecoded[0].String(),
		)
	}

	if _, err := config.Level(); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	return config, nil
}

func (config *Config) Level() (logrus.Level, error) {
	return logrus.ParseLevel(config.LogLevel)
}
