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

// Package cli holds the flag handling shared by the gohack commands.
package cli

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lassandro/gohack/internal/config"
)

type Options struct {
	ConfigPath string
	LogLevel   string
}

func AddFlags(flags *pflag.FlagSet, opts *Options) {
	flags.StringVar(
		&opts.ConfigPath, "config", "",
		"Path of a TOML configuration file",
	)
	flags.StringVar(
		&opts.LogLevel, "log-level", "",
		"Log messages at or above this level "+
			"(trace, debug, info, warning, error)",
	)
}

func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
	})

	return logger
}

// Setup loads the configuration and applies the log level, letting an
// explicit --log-level override the configured one.
func Setup(cmd *cobra.Command, opts *Options, logger *logrus.Logger) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)

	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = opts.LogLevel
	}

	level, err := cfg.Level()

	if err != nil {
		return nil, err
	}

	logger.SetLevel(level)
	logger.WithField("config", opts.ConfigPath).Debug("Loaded configuration")

	return cfg, nil
}
