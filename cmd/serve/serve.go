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

package serve

import (
	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-tof/pkg/command"
	"jinr.ru/greenlab/go-tof/pkg/config"
)

const (
	AddressOptionName = "address"
	PortOptionName    = "port"
	DirOptionName     = "dir"
)

// NewCommand creates the command that runs the stream daemon.
func NewCommand() *cobra.Command {
	var address, dir string
	var port int
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the hardware simulator daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			if address != "" {
				cfg.Address = address
			}
			if port != 0 {
				cfg.ApiPort = port
			}
			if dir != "" {
				cfg.DataDir = dir
			}
			return command.StartStreamServer(cfg)
		},
	}
	cmd.Flags().StringVar(&address, AddressOptionName, "", "Address to bind. E.g. 127.0.0.1")
	cmd.Flags().IntVar(&port, PortOptionName, 0, "Port number to bind. E.g. 8005")
	cmd.Flags().StringVar(&dir, DirOptionName, "", "Directory with point-cloud data files")

	return cmd
}
