// This file is Free Software under the MIT License
// without warranty, see README.md and LICENSES/MIT.txt for details.
//
// SPDX-License-Identifier: MIT
//
// SPDX-FileCopyrightText: 2024 German Federal Office for Information Security (BSI) <https://www.bsi.bund.de>
// Software-Engineering: 2024 Intevation GmbH <https://intevation.de>

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ProtonMail/gopenpgp/v2/crypto"
	"golang.org/x/term"

	"github.com/csaf-poc/vex_reader/feed"
	"github.com/csaf-poc/vex_reader/internal/options"
	"github.com/csaf-poc/vex_reader/vex"
)

const defaultFeedURL = "https://access.redhat.com/security/data/csaf/v2/vex"

type config struct {
	VEX            string   `short:"f" long:"vex" description:"VEX FILE to process" value-name:"FILE" toml:"vex"`
	CVE            string   `long:"cve" description:"Fetch the VEX document for CVE from the feed" value-name:"CVE" toml:"cve"`
	FeedURL        string   `long:"feedurl" description:"URL of the VEX distribution point" value-name:"URL" toml:"feedurl"`
	FeedDir        string   `long:"feeddir" description:"DIRectory to store fetched documents in" value-name:"DIR" toml:"feeddir"`
	Keys           []string `long:"key" description:"OpenPGP KEY-FILEs to verify fetched documents" value-name:"KEY-FILE" toml:"keys"`
	ShowComponents bool     `long:"show-components" description:"Show components in output" toml:"show_components"`
	Validate       bool     `long:"validate" description:"Validate the document against the VEX schema" toml:"validate"`

	NoNVD           bool     `long:"no-nvd" description:"Avoid API calls to NVD" toml:"no_nvd"`
	NVDURL          string   `long:"nvd-url" description:"URL of the NVD CVE API" value-name:"URL" toml:"nvd_url"`
	NVDAPIKey       string   `long:"nvd-api-key" description:"API KEY for the NVD API" value-name:"KEY" toml:"nvd_api_key"`
	NVDAPIKeyPrompt bool     `short:"k" long:"nvd-api-key-interactive" description:"Prompt for the NVD API key" toml:"nvd_api_key_interactive"`
	NVDCache        string   `long:"nvd-cache" description:"FILE to cache NVD responses" value-name:"FILE" toml:"nvd_cache"`
	Insecure        bool     `long:"insecure" description:"Do not check TLS certificates" toml:"insecure"`
	Rate            *float64 `long:"rate" short:"r" description:"Upper limit of NVD requests per second" toml:"rate"`

	FilterComponents []string `long:"filter" description:"PATTERNs of components to exclude from the report" value-name:"PATTERN" toml:"filter"`

	LogLevel *options.LogLevel `long:"loglevel" description:"LEVEL of logging" value-name:"LEVEL" choice:"debug" choice:"info" choice:"warn" choice:"error" toml:"loglevel"`

	Version bool   `long:"version" description:"Display version of the binary" toml:"-"`
	Config  string `short:"c" long:"config" description:"Path to config TOML file" value-name:"TOML-FILE" toml:"-"`

	componentFilter *vex.ComponentFilter
	keyRings        []*crypto.KeyRing
}

// configPaths are the potential file locations of the config file.
var configPaths = []string{
	"~/.config/vex_reader/config.toml",
	"~/.vex_reader.toml",
	"vex_reader.toml",
}

// parseArgsConfig parses the command line and if needed a config file.
func parseArgsConfig() ([]string, *config, error) {
	p := options.Parser[config]{
		DefaultConfigLocations: configPaths,
		ConfigLocation:         func(cfg *config) string { return cfg.Config },
		Usage:                  "[OPTIONS]",
		HasVersion:             func(cfg *config) bool { return cfg.Version },
		SetDefaults: func(cfg *config) {
			cfg.FeedURL = defaultFeedURL
			cfg.FilterComponents = vex.DefaultComponentPatterns
			cfg.LogLevel = &options.LogLevel{Level: slog.LevelInfo}
		},
		// Re-establish default values if not set.
		EnsureDefaults: func(cfg *config) {
			if cfg.FeedURL == "" {
				cfg.FeedURL = defaultFeedURL
			}
			if cfg.FilterComponents == nil {
				cfg.FilterComponents = vex.DefaultComponentPatterns
			}
			if cfg.LogLevel == nil {
				cfg.LogLevel = &options.LogLevel{Level: slog.LevelInfo}
			}
		},
	}
	return p.Parse()
}

// compileFilter compiles the configured component filter patterns.
func (cfg *config) compileFilter() error {
	cf, err := vex.NewComponentFilter(cfg.FilterComponents)
	if err != nil {
		return err
	}
	cfg.componentFilter = cf
	return nil
}

// loadKeys loads the configured OpenPGP keys.
func (cfg *config) loadKeys() error {
	for _, file := range cfg.Keys {
		ring, err := feed.LoadKeyRing(file)
		if err != nil {
			return fmt.Errorf("loading key %q failed: %w", file, err)
		}
		cfg.keyRings = append(cfg.keyRings, ring)
	}
	return nil
}

// promptAPIKey asks for the NVD API key on the terminal.
func (cfg *config) promptAPIKey() error {
	if !cfg.NVDAPIKeyPrompt || cfg.NVDAPIKey != "" {
		return nil
	}
	fmt.Print("Enter NVD API key: ")
	p, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return err
	}
	cfg.NVDAPIKey = string(p)
	return nil
}

// prepare prepares internal state of a loaded configuration.
func (cfg *config) prepare() error {
	if err := cfg.compileFilter(); err != nil {
		return err
	}
	if err := cfg.loadKeys(); err != nil {
		return err
	}
	return cfg.promptAPIKey()
}
