// This file is Free Software under the MIT License
// without warranty, see README.md and LICENSES/MIT.txt for details.
//
// SPDX-License-Identifier: MIT
//
// SPDX-FileCopyrightText: 2024 German Federal Office for Information Security (BSI) <https://www.bsi.bund.de>
// Software-Engineering: 2024 Intevation GmbH <https://intevation.de>

package feed

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const yearListing = `<html><body>
<a href="../">../</a>
<a href="cve-2023-0001.json">cve-2023-0001.json</a>
<a href="cve-2023-6918.json">cve-2023-6918.json</a>
<a href="cve-2023-6918.json.asc">cve-2023-6918.json.asc</a>
</body></html>`

const vexBody = `{"document": {"title": "t"}}`

func feedServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/vex/2023/":
				w.Write([]byte(yearListing))
			case "/vex/2023/cve-2023-6918.json":
				w.Write([]byte(vexBody))
			default:
				http.NotFound(w, r)
			}
		}))
}

func TestLocateCVE(t *testing.T) {
	srv := feedServer(t)
	defer srv.Close()

	feed := &Feed{BaseURL: srv.URL + "/vex", Client: srv.Client()}

	url, err := feed.LocateCVE("CVE-2023-6918")
	if err != nil {
		t.Fatal(err)
	}
	want := srv.URL + "/vex/2023/cve-2023-6918.json"
	if url != want {
		t.Errorf("LocateCVE: Expected %s, got %s", want, url)
	}

	if _, err := feed.LocateCVE("CVE-2023-9999"); err == nil {
		t.Error("LocateCVE: Expected error for unlisted CVE")
	}
	if _, err := feed.LocateCVE("not-a-cve"); err == nil {
		t.Error("LocateCVE: Expected error for invalid id")
	}
}

func TestFetch(t *testing.T) {
	srv := feedServer(t)
	defer srv.Close()

	feed := &Feed{BaseURL: srv.URL + "/vex", Client: srv.Client()}
	dir := t.TempDir()

	fname, err := feed.Fetch(srv.URL+"/vex/2023/cve-2023-6918.json", dir)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(fname) != "cve-2023-6918.json" {
		t.Errorf("Fetch: Expected cve-2023-6918.json, got %s", fname)
	}
	data, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != vexBody {
		t.Errorf("Fetch: Expected %q, got %q", vexBody, data)
	}

	if _, err := feed.Fetch(srv.URL+"/vex/2023/missing.json", dir); err == nil {
		t.Error("Fetch: Expected error for missing document")
	}
}

func TestLinksOnPage(t *testing.T) {
	var links []string
	err := linksOnPage(strings.NewReader(yearListing), func(link string) error {
		links = append(links, link)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(links) != 4 {
		t.Errorf("linksOnPage: Expected 4 links, got %d: %v", len(links), links)
	}
}
