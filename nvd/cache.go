// This file is Free Software under the MIT License
// without warranty, see README.md and LICENSES/MIT.txt for details.
//
// SPDX-License-Identifier: MIT
//
// SPDX-FileCopyrightText: 2024 German Federal Office for Information Security (BSI) <https://www.bsi.bund.de>
// Software-Engineering: 2024 Intevation GmbH <https://intevation.de>

package nvd

import (
	"bytes"
	"encoding/json"

	bolt "go.etcd.io/bbolt"
)

var (
	recordsBucket = []byte("records")
	cacheVersion  = []byte("1")
)

// cache is a bbolt backed store of fetched CVE records keyed by id.
type cache struct{ *bolt.DB }

// openCache opens (and if needed versions) the cache file.
// A version mismatch drops the stored records.
func openCache(path string) (*cache, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(recordsBucket)
		if err != nil {
			return err
		}
		if v := b.Get([]byte("version")); !bytes.Equal(v, cacheVersion) {
			if err := tx.DeleteBucket(recordsBucket); err != nil {
				return err
			}
			if b, err = tx.CreateBucket(recordsBucket); err != nil {
				return err
			}
			return b.Put([]byte("version"), cacheVersion)
		}
		return nil
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &cache{db}, nil
}

// get fetches the record stored for the given CVE id.
func (c *cache) get(cveID string) (*CVERecord, bool, error) {
	var rec *CVERecord
	err := c.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(recordsBucket).Get([]byte(cveID))
		if v == nil {
			return nil
		}
		rec = new(CVERecord)
		return json.Unmarshal(v, rec)
	})
	if err != nil {
		return nil, false, err
	}
	return rec, rec != nil, nil
}

// set stores the record for the given CVE id.
func (c *cache) set(cveID string, rec *CVERecord) error {
	return c.Update(func(tx *bolt.Tx) error {
		v, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return tx.Bucket(recordsBucket).Put([]byte(cveID), v)
	})
}
