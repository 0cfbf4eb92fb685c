// This file is Free Software under the MIT License
// without warranty, see README.md and LICENSES/MIT.txt for details.
//
// SPDX-License-Identifier: MIT
//
// SPDX-FileCopyrightText: 2024 German Federal Office for Information Security (BSI) <https://www.bsi.bund.de>
// Software-Engineering: 2024 Intevation GmbH <https://intevation.de>

package nvd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
)

const nvdResponse = `{
	"resultsPerPage": 1,
	"startIndex": 0,
	"totalResults": 1,
	"format": "NVD_CVE",
	"version": "2.0",
	"vulnerabilities": [{
		"cve": {
			"id": "CVE-2023-6918",
			"published": "2023-12-19T00:15:00.000",
			"vulnStatus": "Analyzed",
			"metrics": {
				"cvssMetricV31": [{
					"source": "nvd@nist.gov",
					"type": "Primary",
					"cvssData": {
						"version": "3.1",
						"vectorString": "CVSS:3.1/AV:N/AC:H/PR:N/UI:N/S:U/C:N/I:N/A:L",
						"baseScore": 3.7,
						"baseSeverity": "LOW",
						"attackVector": "NETWORK"
					}
				}],
				"cvssMetricV2": [{
					"source": "nvd@nist.gov",
					"type": "Primary",
					"cvssData": {
						"version": "2.0",
						"vectorString": "AV:N/AC:M/Au:N/C:N/I:N/A:P",
						"baseScore": 4.3
					}
				}]
			}
		}
	}]
}`

func nvdServer(t *testing.T, hits *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			*hits++
			if r.URL.Query().Get("cveId") != "CVE-2023-6918" {
				w.Write([]byte(`{"totalResults": 0, "vulnerabilities": []}`))
				return
			}
			w.Write([]byte(nvdResponse))
		}))
}

func TestFetchCVE(t *testing.T) {
	var hits int
	srv := nvdServer(t, &hits)
	defer srv.Close()

	client, err := NewClient(Options{URL: srv.URL, Rate: 1000})
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	rec, err := client.FetchCVE(context.Background(), "CVE-2023-6918")
	if err != nil {
		t.Fatal(err)
	}
	if rec == nil || rec.ID != "CVE-2023-6918" {
		t.Fatalf("FetchCVE: Expected CVE-2023-6918, got %v", rec)
	}

	cvss := rec.CVSS()
	if cvss == nil {
		t.Fatal("CVSS: Expected data, got nil")
	}
	// v3.1 wins over v2.
	if cvss.Version != "3.1" || cvss.BaseScore != 3.7 {
		t.Errorf("CVSS: Expected 3.1/3.7, got %s/%v", cvss.Version, cvss.BaseScore)
	}

	unknown, err := client.FetchCVE(context.Background(), "CVE-1999-0001")
	if err != nil {
		t.Fatal(err)
	}
	if unknown != nil {
		t.Errorf("FetchCVE: Expected nil for unknown id, got %v", unknown)
	}
}

func TestFetchCVE_Cache(t *testing.T) {
	var hits int
	srv := nvdServer(t, &hits)
	defer srv.Close()

	cacheFile := filepath.Join(t.TempDir(), "nvd.db")

	client, err := NewClient(Options{URL: srv.URL, Rate: 1000, Cache: cacheFile})
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	for i := 0; i < 3; i++ {
		rec, err := client.FetchCVE(context.Background(), "CVE-2023-6918")
		if err != nil {
			t.Fatal(err)
		}
		if rec == nil || rec.ID != "CVE-2023-6918" {
			t.Fatalf("FetchCVE: Expected CVE-2023-6918, got %v", rec)
		}
	}
	if hits != 1 {
		t.Errorf("FetchCVE: Expected 1 server hit, got %d", hits)
	}
}

func TestCVSS_Preference(t *testing.T) {
	var rec CVERecord
	if rec.CVSS() != nil {
		t.Error("CVSS: Expected nil for empty metrics")
	}

	data := `{
		"id": "CVE-2014-0001",
		"metrics": {
			"cvssMetricV2": [{
				"cvssData": {"version": "2.0", "baseScore": 7.5}
			}]
		}
	}`
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		t.Fatal(err)
	}
	cvss := rec.CVSS()
	if cvss == nil || cvss.Version != "2.0" {
		t.Errorf("CVSS: Expected v2 fallback, got %v", cvss)
	}
}
