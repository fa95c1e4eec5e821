// Package config holds the runtime configuration of fwenc and its validation rules.
package config

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/idelchi/gogen/pkg/validator"
)

// Key holds the possible sources of the encryption key.
type Key struct {
	// String is the hex encoded key, from --key, FWENC_KEY or the positional argument.
	String string `label:"--key" mapstructure:"key" mask:"fixed" validate:"exclusive=--key-file"`
	// File is a path to a file holding the hex encoded key.
	File string `label:"--key-file" mapstructure:"key-file"`
}

// Suffixes control how batch output paths are derived.
type Suffixes struct {
	Encrypt string `label:"--encrypt-ext" mapstructure:"encrypt-ext" validate:"required"`
	Decrypt string `label:"--decrypt-ext" mapstructure:"decrypt-ext"`
}

// Config is the fully resolved configuration for a single invocation.
type Config struct {
	Key      Key      `mapstructure:",squash"`
	Suffixes Suffixes `mapstructure:",squash"`

	// Parallel bounds the number of files processed at once in batch mode.
	Parallel int `label:"--parallel" validate:"min=1"`

	Quiet              bool
	Stats              bool
	Dry                bool
	Delete             bool
	PreserveTimestamps bool `mapstructure:"preserve-timestamps"`
	NoColor            bool `mapstructure:"no-color"`

	LogLevel string `label:"--log-level" mapstructure:"log-level" validate:"oneof=trace debug info warn error disabled"`

	Include     []string
	Exclude     []string
	IncludeFrom string `label:"--include-from" mapstructure:"include-from"`
	ExcludeFrom string `label:"--exclude-from" mapstructure:"exclude-from"`

	// Show prints the configuration and exits.
	Show bool

	// Decrypt reverses the operation.
	Decrypt bool

	// Input and Output are the paths of a single-file operation.
	Input  string `label:"input"  mapstructure:"-"`
	Output string `label:"output" mapstructure:"-" validate:"required_with=Input"`

	// Files are the positional paths of a batch operation.
	Files []string `label:"paths" mapstructure:"-" validate:"required_without=Input"`
}

// Display reports whether the configuration should be printed instead of run.
func (c *Config) Display() bool {
	return c.Show
}

// Validate validates config against its struct tags.
// Field names in the messages are the flag labels.
func (c *Config) Validate(config any) error {
	v := validator.NewValidator()

	if err := registerExclusive(v); err != nil {
		return err
	}

	if errs := v.Validate(config); len(errs) > 0 {
		return fmt.Errorf("validating configuration: %w", errors.Join(errs...))
	}

	return nil
}

// Single reports whether the configuration describes a single-file operation.
func (c *Config) Single() bool {
	return c.Input != ""
}

// Defaults are the values of settings that are not set by a flag or the environment.
func Defaults() map[string]any {
	return map[string]any{
		"parallel":    runtime.NumCPU(),
		"encrypt-ext": ".enc",
		"log-level":   "warn",
	}
}
