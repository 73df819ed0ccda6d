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

package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"
)

// EmitterConfig describes the UDP peer the daemon forwards wire packets to.
// When nil, packets are delivered to API consumers only.
type EmitterConfig struct {
	Address string `json:"address,omitempty"`
	Port    int    `json:"port,omitempty"`
}

type Config struct {
	LogLevel       string         `json:"log_level,omitempty"`
	Address        string         `json:"address,omitempty"`
	ApiPort        int            `json:"api_port,omitempty"`
	DataDir        string         `json:"data_dir,omitempty"`
	FilePattern    string         `json:"file_pattern,omitempty"`
	PacketSize     int            `json:"packet_size,omitempty"`
	IntervalMs     int            `json:"interval_ms,omitempty"`
	ConnectDelayMs int            `json:"connect_delay_ms,omitempty"`
	DBPath         string         `json:"db_path,omitempty"`
	Emitter        *EmitterConfig `json:"emitter,omitempty"`
	filepath       string
}

func (c *Config) Persist(overwrite bool) error {
	if _, err := os.Stat(c.filepath); err == nil && !overwrite {
		return ErrConfigFileExists{Path: c.filepath}
	}

	data, err := yaml.Marshal(&c)
	if err != nil {
		return err
	}

	dir := filepath.Dir(c.filepath)
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}

	err = ioutil.WriteFile(c.filepath, data, 0644)
	if err != nil {
		return err
	}

	return nil
}

// Load reads the config file if it exists. A missing file is not an error,
// the defaults stay in effect.
func (c *Config) Load() error {
	data, err := ioutil.ReadFile(c.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, c)
}

// ApiAddress returns the host:port the API server binds to.
func (c *Config) ApiAddress() string {
	return fmt.Sprintf("%s:%d", c.Address, c.ApiPort)
}

func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ConfigDir, ConfigFile)
}

func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ConfigDir, DBFile)
}

func NewDefaultConfig() *Config {
	return &Config{
		LogLevel:       DefaultLogLevel,
		Address:        DefaultAddress,
		ApiPort:        DefaultApiPort,
		DataDir:        DefaultDataDir,
		FilePattern:    DefaultFilePattern,
		PacketSize:     DefaultPacketSize,
		IntervalMs:     DefaultIntervalMs,
		ConnectDelayMs: DefaultConnectDelayMs,
		DBPath:         DefaultDBPath(),
		filepath:       DefaultConfigPath(),
	}
}

// NewConfigAt is used in tests to keep config files out of the home directory.
func NewConfigAt(path string) *Config {
	cfg := NewDefaultConfig()
	cfg.filepath = path
	return cfg
}
