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

package files

import (
	"fmt"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-tof/pkg/command"
	"jinr.ru/greenlab/go-tof/pkg/config"
)

// NewCommand creates the command that lists data files known to the daemon.
func NewCommand() *cobra.Command {
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "files",
		Short: "List available point-cloud files",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			entries, err := apiClient.Files()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, e := range entries {
				if e.Format != "" {
					fmt.Fprintf(out, "%s\t%d points\t%s\n", e.Name, e.NumPoints, e.Format)
				} else {
					fmt.Fprintf(out, "%s\n", e.Name)
				}
			}
			return nil
		},
	}
	return cmd
}
