// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package shell

import (
	"fmt"
	"strings"

	"github.com/poiesic/sonnets/search"
)

// Config holds the initial settings of an interactive session.
type Config struct {
	// Highlight is the initial state of match highlighting.
	// It can be toggled at runtime with ":highlight on|off".
	// Default: true
	Highlight bool

	// Style names the highlight style: "ansi", "html" or "plain".
	// Default: "ansi"
	Style string

	// Prompt is printed before each line is read.
	// Default: "> "
	Prompt string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHighlight sets the initial highlighting state.
func WithHighlight(enabled bool) ConfigOption {
	return func(c *Config) {
		c.Highlight = enabled
	}
}

// WithStyle sets the highlight style name.
func WithStyle(style string) ConfigOption {
	return func(c *Config) {
		c.Style = style
	}
}

// WithPrompt sets the input prompt.
func WithPrompt(prompt string) ConfigOption {
	return func(c *Config) {
		c.Prompt = prompt
	}
}

// DefaultConfig returns a Config for an ANSI terminal with highlighting on.
func DefaultConfig() *Config {
	return &Config{
		Highlight: true,
		Style:     "ansi",
		Prompt:    "> ",
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithStyle("plain"),
//	    WithHighlight(false),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize puts the configuration in canonical form.
// An empty style falls back to "ansi".
func (c *Config) Normalize() {
	c.Style = strings.ToLower(strings.TrimSpace(c.Style))
	if c.Style == "" {
		c.Style = "ansi"
	}
}

// Validate checks that the configuration is usable.
// It normalizes the configuration first.
func (c *Config) Validate() error {
	c.Normalize()

	if _, err := search.StyleByName(c.Style); err != nil {
		return fmt.Errorf("shell config: %w", err)
	}
	return nil
}
