// This file is Free Software under the MIT License
// without warranty, see README.md and LICENSES/MIT.txt for details.
//
// SPDX-License-Identifier: MIT
//
// SPDX-FileCopyrightText: 2024 German Federal Office for Information Security (BSI) <https://www.bsi.bund.de>
// Software-Engineering: 2024 Intevation GmbH <https://intevation.de>

// Package feed locates and downloads VEX documents from vendor
// distribution points which publish per-year directory listings,
// e.g. https://access.redhat.com/security/data/csaf/v2/vex/.
package feed

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ProtonMail/gopenpgp/v2/crypto"
	"github.com/gofrs/flock"

	"github.com/csaf-poc/vex_reader/util"
)

var cveYearPattern = regexp.MustCompile(`^CVE-([0-9]{4})-[0-9]{4,}$`)

// Feed is a VEX distribution point.
type Feed struct {
	// BaseURL is the root of the distribution point. Documents are
	// expected under BaseURL/<year>/<cve in lower case>.json.
	BaseURL string
	// Client performs the HTTP requests.
	Client util.Client
	// Keys are the OpenPGP keys used to verify detached signatures.
	// Without keys signature files are not fetched.
	Keys []*crypto.KeyRing
}

// LocateCVE returns the document URL for the given CVE id by scanning
// the year listing of the distribution point for a matching href.
func (f *Feed) LocateCVE(cveID string) (string, error) {
	m := cveYearPattern.FindStringSubmatch(cveID)
	if m == nil {
		return "", fmt.Errorf("%q is no valid CVE id", cveID)
	}
	listing := strings.TrimSuffix(f.BaseURL, "/") + "/" + m[1] + "/"

	resp, err := f.Client.Get(listing)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"fetching listing %s failed: %s (%d)",
			listing, resp.Status, resp.StatusCode)
	}

	want := strings.ToLower(cveID) + ".json"
	var found string
	if err := linksOnPage(resp.Body, func(link string) error {
		if found == "" && strings.EqualFold(filepath.Base(link), want) {
			found = link
		}
		return nil
	}); err != nil {
		return "", err
	}
	if found == "" {
		return "", fmt.Errorf("no VEX document for %s in %s", cveID, listing)
	}

	if strings.HasPrefix(found, "http://") || strings.HasPrefix(found, "https://") {
		return found, nil
	}
	return listing + strings.TrimPrefix(found, "./"), nil
}

// Fetch downloads the document at the given URL into directory,
// verifying the detached OpenPGP signature if keys are configured.
// The directory is guarded with a file lock against concurrent
// fetchers. Returns the path of the stored document.
func (f *Feed) Fetch(url, directory string) (string, error) {
	if err := os.MkdirAll(directory, 0755); err != nil {
		return "", err
	}

	fl := flock.New(filepath.Join(directory, ".lock"))
	locked, err := fl.TryLock()
	if err != nil {
		return "", fmt.Errorf("file locking failed: %v", err)
	}
	if !locked {
		return "", fmt.Errorf(
			"cannot acquire file lock in %s. Maybe another fetch is running?",
			directory)
	}
	defer fl.Unlock()

	data, err := f.download(url)
	if err != nil {
		return "", err
	}

	if len(f.Keys) > 0 {
		sign, err := f.loadSignature(url + ".asc")
		if err != nil {
			slog.Warn("downloading signature failed", "url", url+".asc", "err", err)
		} else if !f.checkSignature(data, sign) {
			return "", fmt.Errorf("cannot verify signature for %s", url)
		}
	}

	fname := filepath.Join(directory, filepath.Base(url))
	if err := os.WriteFile(fname, data, 0644); err != nil {
		return "", err
	}
	return fname, nil
}

func (f *Feed) download(url string) ([]byte, error) {
	resp, err := f.Client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"fetching %s failed: %s (%d)", url, resp.Status, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (f *Feed) loadSignature(url string) (*crypto.PGPSignature, error) {
	data, err := f.download(url)
	if err != nil {
		return nil, err
	}
	return crypto.NewPGPSignatureFromArmored(string(data))
}

func (f *Feed) checkSignature(data []byte, sign *crypto.PGPSignature) bool {
	pm := crypto.NewPlainMessage(data)
	t := crypto.GetUnixTime()
	for _, key := range f.Keys {
		if err := key.VerifyDetached(pm, sign, t); err == nil {
			return true
		}
	}
	return false
}

// LoadKeyRing builds a key ring from an armored OpenPGP key file.
func LoadKeyRing(fname string) (*crypto.KeyRing, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	key, err := crypto.NewKeyFromArmoredReader(f)
	if err != nil {
		return nil, err
	}
	return crypto.NewKeyRing(key)
}

// linksOnPage calls visit on every href of the anchors of an HTML page.
func linksOnPage(r io.Reader, visit func(string) error) error {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return err
	}

	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		if err != nil {
			return
		}
		if link, ok := s.Attr("href"); ok {
			err = visit(link)
		}
	})

	return err
}
