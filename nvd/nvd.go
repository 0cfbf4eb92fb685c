// This file is Free Software under the MIT License
// without warranty, see README.md and LICENSES/MIT.txt for details.
//
// SPDX-License-Identifier: MIT
//
// SPDX-FileCopyrightText: 2024 German Federal Office for Information Security (BSI) <https://www.bsi.bund.de>
// Software-Engineering: 2024 Intevation GmbH <https://intevation.de>

// Package nvd implements a client for the NVD CVE REST API 2.0.
// The scores it returns are paired with the classification output for
// display only; no scoring logic happens here or anywhere else.
package nvd

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"github.com/csaf-poc/vex_reader/util"
)

// DefaultURL is the public NVD CVE API endpoint.
const DefaultURL = "https://services.nvd.nist.gov/rest/json/cves/2.0"

// Without an API key NVD allows 5 requests per rolling 30 seconds.
const defaultRate = 5.0 / 30

// CVSSData is the CVSS payload of an NVD metric entry. The field set
// is the union of the v2 and v3 breakdowns; which subset is filled
// depends on the metric version.
type CVSSData struct {
	Version      string  `json:"version"`
	VectorString string  `json:"vectorString"`
	BaseScore    float64 `json:"baseScore"`
	BaseSeverity string  `json:"baseSeverity,omitempty"`

	AttackVector       string `json:"attackVector,omitempty"`
	AttackComplexity   string `json:"attackComplexity,omitempty"`
	PrivilegesRequired string `json:"privilegesRequired,omitempty"`
	UserInteraction    string `json:"userInteraction,omitempty"`
	Scope              string `json:"scope,omitempty"`

	AccessVector     string `json:"accessVector,omitempty"`
	AccessComplexity string `json:"accessComplexity,omitempty"`
	Authentication   string `json:"authentication,omitempty"`

	ConfidentialityImpact string `json:"confidentialityImpact,omitempty"`
	IntegrityImpact       string `json:"integrityImpact,omitempty"`
	AvailabilityImpact    string `json:"availabilityImpact,omitempty"`
}

// Metric is one entry of a cvssMetric list.
type Metric struct {
	Source   string   `json:"source"`
	Type     string   `json:"type"`
	CVSSData CVSSData `json:"cvssData"`
}

// Metrics holds the CVSS metric lists of a CVE record.
type Metrics struct {
	CVSSMetricV31 []Metric `json:"cvssMetricV31,omitempty"`
	CVSSMetricV30 []Metric `json:"cvssMetricV30,omitempty"`
	CVSSMetricV2  []Metric `json:"cvssMetricV2,omitempty"`
}

// CVERecord is the core CVE entry of a response.
type CVERecord struct {
	ID           string  `json:"id"`
	Published    string  `json:"published"`
	LastModified string  `json:"lastModified"`
	VulnStatus   string  `json:"vulnStatus"`
	Metrics      Metrics `json:"metrics"`
}

// Response is the top-level document returned by the CVE API.
type Response struct {
	ResultsPerPage  int    `json:"resultsPerPage"`
	StartIndex      int    `json:"startIndex"`
	TotalResults    int    `json:"totalResults"`
	Format          string `json:"format"`
	Version         string `json:"version"`
	Vulnerabilities []struct {
		CVE CVERecord `json:"cve"`
	} `json:"vulnerabilities"`
}

// CVSS selects the preferred CVSS data of a record:
// v3.1 before v3.0 before v2. Returns nil if the record carries no
// metrics at all.
func (r *CVERecord) CVSS() *CVSSData {
	for _, metrics := range [][]Metric{
		r.Metrics.CVSSMetricV31,
		r.Metrics.CVSSMetricV30,
		r.Metrics.CVSSMetricV2,
	} {
		if len(metrics) > 0 {
			return &metrics[0].CVSSData
		}
	}
	return nil
}

// Options configure an NVD client.
type Options struct {
	// URL overrides DefaultURL, e.g. for a mirror.
	URL string
	// APIKey is sent as the "apiKey" header if set.
	APIKey string
	// Rate limits requests per second; zero applies the public
	// NVD limit.
	Rate float64
	// Insecure disables TLS certificate verification.
	Insecure bool
	// Cache is an optional bbolt backed response cache file.
	Cache string
}

// Client fetches CVE records from the NVD.
type Client struct {
	url    string
	client util.Client
	cache  *cache
}

// NewClient creates a client from the given options.
func NewClient(opts Options) (*Client, error) {
	endpoint := opts.URL
	if endpoint == "" {
		endpoint = DefaultURL
	}

	hClient := http.Client{}
	if opts.Insecure {
		hClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	var client util.Client = &hClient

	if opts.APIKey != "" {
		client = &util.HeaderClient{
			Client: client,
			Header: http.Header{"Apikey": []string{opts.APIKey}},
		}
	}

	client = &util.LoggingClient{Client: client}

	limit := opts.Rate
	if limit <= 0 {
		limit = defaultRate
	}
	client = &util.LimitingClient{
		Client:  client,
		Limiter: rate.NewLimiter(rate.Limit(limit), 1),
	}

	c := &Client{url: endpoint, client: client}

	if opts.Cache != "" {
		cache, err := openCache(opts.Cache)
		if err != nil {
			return nil, fmt.Errorf("opening NVD cache failed: %w", err)
		}
		c.cache = cache
	}

	return c, nil
}

// Close releases the resources of the client.
func (c *Client) Close() error {
	if c.cache != nil {
		return c.cache.Close()
	}
	return nil
}

// FetchCVE fetches the CVE record for the given id.
// Returns nil if the NVD does not know the id.
func (c *Client) FetchCVE(ctx context.Context, cveID string) (*CVERecord, error) {
	if c.cache != nil {
		if rec, ok, err := c.cache.get(cveID); err != nil {
			return nil, err
		} else if ok {
			return rec, nil
		}
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.url+"?cveId="+url.QueryEscape(cveID), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"fetching %s failed: %s (%d)", cveID, resp.Status, resp.StatusCode)
	}

	var nr Response
	if err := json.NewDecoder(resp.Body).Decode(&nr); err != nil {
		return nil, err
	}

	for i := range nr.Vulnerabilities {
		if rec := &nr.Vulnerabilities[i].CVE; rec.ID == cveID {
			if c.cache != nil {
				if err := c.cache.set(cveID, rec); err != nil {
					return rec, err
				}
			}
			return rec, nil
		}
	}

	return nil, nil
}
