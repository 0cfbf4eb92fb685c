// This file is Free Software under the MIT License
// without warranty, see README.md and LICENSES/MIT.txt for details.
//
// SPDX-License-Identifier: MIT
//
// SPDX-FileCopyrightText: 2024 German Federal Office for Information Security (BSI) <https://www.bsi.bund.de>
// Software-Engineering: 2024 Intevation GmbH <https://intevation.de>

// Package main implements the vex_reader tool.
// It reads a CSAF/VEX document, reconstructs which products and
// components are fixed, unaffected, affected without fix or subject to
// a workaround, and pairs the result with the NVD view of the CVE.
package main

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/csaf-poc/vex_reader/feed"
	"github.com/csaf-poc/vex_reader/internal/options"
	"github.com/csaf-poc/vex_reader/nvd"
	"github.com/csaf-poc/vex_reader/util"
	"github.com/csaf-poc/vex_reader/vex"
)

func main() {
	_, cfg, err := parseArgsConfig()
	options.ErrorCheck(err)
	options.SetupLogging(*cfg.LogLevel)
	options.ErrorCheck(cfg.prepare())
	options.ErrorCheck(run(cfg))
}

// run executes the tool with a loaded configuration.
func run(cfg *config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fname, err := documentFile(cfg)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(fname)
	if err != nil {
		return fmt.Errorf("missing VEX file: %s: %w", fname, err)
	}

	// The generic form feeds the summary extraction and the schema
	// check, the typed form the classification.
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return fmt.Errorf("loading %q as JSON failed: %w", fname, err)
	}

	if cfg.Validate {
		msgs, err := vex.ValidateVEX(generic)
		if err != nil {
			return fmt.Errorf("schema validation failed: %w", err)
		}
		for _, msg := range msgs {
			slog.Warn("schema violation", "msg", msg)
		}
	}

	doc, err := vex.LoadDocument(fname)
	if err != nil {
		return fmt.Errorf("loading %q failed: %w", fname, err)
	}

	summary, err := vex.NewDocumentSummary(util.NewPathEval(), generic)
	if err != nil {
		return err
	}

	index := vex.NewProductIndex(doc.ProductTree)
	pkgs, err := vex.ClassifyPackages(doc.Vulnerabilities, index, &vex.ClassifyOptions{
		Filter: cfg.componentFilter,
	})
	if err != nil {
		return err
	}

	var score *nvd.CVSSData
	if !cfg.NoNVD && summary.CVE != "" {
		if score, err = fetchNVD(ctx, cfg, summary.CVE); err != nil {
			// The report is still useful without the NVD column.
			slog.Warn("fetching NVD data failed", "cve", summary.CVE, "err", err)
		}
	}

	report := &report{
		Summary:        summary,
		Packages:       pkgs,
		NVD:            score,
		ShowComponents: cfg.ShowComponents,
	}
	return report.write(os.Stdout)
}

// documentFile returns the local file holding the VEX document,
// fetching it from the distribution point if a CVE id was given.
func documentFile(cfg *config) (string, error) {
	if cfg.VEX != "" {
		return cfg.VEX, nil
	}
	if cfg.CVE == "" {
		return "", errors.New("one of --vex or --cve is needed")
	}

	hClient := http.Client{}
	if cfg.Insecure {
		hClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	f := &feed.Feed{
		BaseURL: cfg.FeedURL,
		Client:  &util.LoggingClient{Client: &hClient},
		Keys:    cfg.keyRings,
	}

	url, err := f.LocateCVE(cfg.CVE)
	if err != nil {
		return "", err
	}

	directory := cfg.FeedDir
	if directory == "" {
		directory = "."
	}
	return f.Fetch(url, directory)
}

// fetchNVD fetches the CVSS data the NVD has for the given CVE.
func fetchNVD(ctx context.Context, cfg *config, cveID string) (*nvd.CVSSData, error) {
	opts := nvd.Options{
		URL:      cfg.NVDURL,
		APIKey:   cfg.NVDAPIKey,
		Insecure: cfg.Insecure,
		Cache:    cfg.NVDCache,
	}
	if cfg.Rate != nil {
		opts.Rate = *cfg.Rate
	}
	client, err := nvd.NewClient(opts)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	rec, err := client.FetchCVE(ctx, cveID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("NVD does not know %s", cveID)
	}
	return rec.CVSS(), nil
}
