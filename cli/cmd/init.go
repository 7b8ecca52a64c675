package cmd

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/ledgerscript/log"
	"github.com/ardnew/ledgerscript/pkg"
	"github.com/ardnew/ledgerscript/profile"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// configFileMode is the permission mode of a generated configuration file.
const configFileMode os.FileMode = 0o600

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ErrNoContext
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok || confPath == "" {
		return ErrWriteConfig.Wrap(ErrNoContext).
			With(slog.String("var", ConfigIdentifier))
	}

	// Check if file exists and force not set
	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	values := flagValues(ktx)

	data, err := yaml.MarshalWithOptions(values, yaml.Indent(defaultConfigIndent))
	if err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	if err := os.WriteFile(confPath, data, configFileMode); err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", confPath),
		slog.Int("flag_count", len(values)),
	)

	return nil
}

// ignoredFlags are flag name prefixes never written to a configuration file.
var ignoredFlags = []string{"help", "version", profile.Tag}

// flagValues returns the current value of every configurable flag, in
// declaration order. Unset values and empty strings are omitted.
func flagValues(ktx *kong.Context) yaml.MapSlice {
	var values yaml.MapSlice

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(ignoredFlags, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		value := configValue(ktx.FlagValue(flag))
		if value == nil {
			continue
		}

		values = append(values, yaml.MapItem{Key: flag.Name, Value: value})
	}

	return values
}

// configValue converts a flag value to a YAML scalar or sequence, or nil if
// the value should not be written.
func configValue(v any) any {
	switch v := v.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}

		return v
	case []string:
		if len(v) == 0 {
			return nil
		}

		return v
	case bool, int, int64, uint, uint64, float64:
		return v
	case interface{ String() string }:
		return v.String()
	default:
		return v
	}
}

// ConfigFile returns the default path of the YAML configuration file.
func ConfigFile() string { return pkg.ConfigPath(ConfigIdentifier + ".yaml") }
