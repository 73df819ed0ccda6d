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

package command

import (
	"errors"
	"fmt"

	"github.com/imroc/req"

	"jinr.ru/greenlab/go-tof/pkg/config"
	"jinr.ru/greenlab/go-tof/pkg/ply"
	"jinr.ru/greenlab/go-tof/pkg/srv/stream"
)

// ApiClient talks to the daemon REST API, one method per endpoint.
type ApiClient struct {
	*config.Config
	ApiPrefix string
}

func NewApiClient(cfg *config.Config) *ApiClient {
	return &ApiClient{
		Config:    cfg,
		ApiPrefix: fmt.Sprintf("http://%s/api", cfg.ApiAddress()),
	}
}

// Files fetches the data file listing with cataloged header info.
func (c *ApiClient) Files() ([]stream.FileEntry, error) {
	r, err := req.Get(fmt.Sprintf("%s/files", c.ApiPrefix))
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	var entries []stream.FileEntry
	if err = r.ToJSON(&entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Load asks the daemon to load a data file into its session.
func (c *ApiClient) Load(name string, maxPoints int) (*ply.Info, error) {
	url := fmt.Sprintf("%s/load/%s", c.ApiPrefix, name)
	if maxPoints > 0 {
		url = fmt.Sprintf("%s?max_points=%d", url, maxPoints)
	}
	r, err := req.Post(url)
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	info := &ply.Info{}
	if err = r.ToJSON(info); err != nil {
		return nil, err
	}
	return info, nil
}

// Connect performs the hardware handshake.
func (c *ApiClient) Connect() error {
	r, err := req.Get(fmt.Sprintf("%s/connect", c.ApiPrefix))
	if err != nil {
		return err
	}
	if r.Response().StatusCode != 200 {
		return errors.New(r.Response().Status)
	}
	return nil
}

// Disconnect drops the hardware link and stops any stream.
func (c *ApiClient) Disconnect() error {
	r, err := req.Get(fmt.Sprintf("%s/disconnect", c.ApiPrefix))
	if err != nil {
		return err
	}
	if r.Response().StatusCode != 200 {
		return errors.New(r.Response().Status)
	}
	return nil
}

// StreamStart starts packet emission. Zero values fall back to the daemon
// defaults.
func (c *ApiClient) StreamStart(packetSize, intervalMs int) error {
	url := fmt.Sprintf("%s/stream/start", c.ApiPrefix)
	if packetSize > 0 || intervalMs >= 0 {
		url = fmt.Sprintf("%s?packet_size=%d&interval_ms=%d", url, packetSize, intervalMs)
	}
	r, err := req.Get(url)
	if err != nil {
		return err
	}
	if r.Response().StatusCode != 200 {
		return errors.New(r.Response().Status)
	}
	return nil
}

// StreamFile starts a raw byte-chunk stream over an arbitrary file on the
// daemon host. No connect handshake is needed.
func (c *ApiClient) StreamFile(path string, chunkSize, intervalMs int) error {
	setup := &stream.RawStreamSetup{Path: path, ChunkSize: chunkSize, IntervalMs: intervalMs}
	r, err := req.Post(fmt.Sprintf("%s/stream/file", c.ApiPrefix), req.BodyJSON(setup))
	if err != nil {
		return err
	}
	if r.Response().StatusCode != 200 {
		return errors.New(r.Response().Status)
	}
	return nil
}

// StreamStop stops packet emission.
func (c *ApiClient) StreamStop() error {
	r, err := req.Get(fmt.Sprintf("%s/stream/stop", c.ApiPrefix))
	if err != nil {
		return err
	}
	if r.Response().StatusCode != 200 {
		return errors.New(r.Response().Status)
	}
	return nil
}

// Status fetches the session snapshot.
func (c *ApiClient) Status() (*stream.Status, error) {
	r, err := req.Get(fmt.Sprintf("%s/status", c.ApiPrefix))
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	status := &stream.Status{}
	if err = r.ToJSON(status); err != nil {
		return nil, err
	}
	return status, nil
}

// Record asks the daemon to append packet wire bytes to a file.
func (c *ApiClient) Record(path string) error {
	setup := &stream.RecordSetup{Path: path}
	r, err := req.Post(fmt.Sprintf("%s/record", c.ApiPrefix), req.BodyJSON(setup))
	if err != nil {
		return err
	}
	if r.Response().StatusCode != 200 {
		return errors.New(r.Response().Status)
	}
	return nil
}

// Flush closes the daemon-side recording file.
func (c *ApiClient) Flush() error {
	r, err := req.Get(fmt.Sprintf("%s/flush", c.ApiPrefix))
	if err != nil {
		return err
	}
	if r.Response().StatusCode != 200 {
		return errors.New(r.Response().Status)
	}
	return nil
}
