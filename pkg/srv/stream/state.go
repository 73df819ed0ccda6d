/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package stream

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"

	"jinr.ru/greenlab/go-tof/pkg/log"
	"jinr.ru/greenlab/go-tof/pkg/ply"
)

const (
	FileBucketName = "files"
)

// Catalog persists the header metadata of every file that was ever loaded,
// keyed by file name. It lets the API report point counts without
// re-parsing files on every listing.
type Catalog struct {
	DB *bbolt.DB
}

func NewCatalog(path string) (*Catalog, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}
	if err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(FileBucketName))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}
	return &Catalog{DB: db}, nil
}

// Close ...
func (c *Catalog) Close() {
	c.DB.Close()
}

// SetInfo ...
func (c *Catalog) SetInfo(name string, info *ply.Info) error {
	log.Debug("Setting catalog entry: %s points: %d", name, info.NumPoints)
	data, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return c.DB.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(FileBucketName))
		if b == nil {
			return errors.New(fmt.Sprintf("Bucket not found: %s", FileBucketName))
		}
		return b.Put([]byte(name), data)
	})
}

// GetInfo returns the cached header info for a file, nil when the file was
// never loaded.
func (c *Catalog) GetInfo(name string) (*ply.Info, error) {
	var info *ply.Info
	if err := c.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(FileBucketName))
		if b == nil {
			return errors.New(fmt.Sprintf("Bucket not found: %s", FileBucketName))
		}
		data := b.Get([]byte(name))
		if data == nil {
			return nil
		}
		info = &ply.Info{}
		return json.Unmarshal(data, info)
	}); err != nil {
		return nil, err
	}
	return info, nil
}

// Names lists all cataloged file names.
func (c *Catalog) Names() ([]string, error) {
	var names []string
	if err := c.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(FileBucketName))
		if b == nil {
			return errors.New(fmt.Sprintf("Bucket not found: %s", FileBucketName))
		}
		return b.ForEach(func(k, v []byte) error {
			names = append(names, string(k))
			return nil
		})
	}); err != nil {
		return nil, err
	}
	return names, nil
}
