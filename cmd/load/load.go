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

package load

import (
	"fmt"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-tof/pkg/command"
	"jinr.ru/greenlab/go-tof/pkg/config"
)

const (
	MaxPointsOptionName = "max-points"
)

// NewCommand creates the command that loads a data file into the daemon
// session.
func NewCommand() *cobra.Command {
	var maxPoints int
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "load FILE",
		Short: "Load a point-cloud file into the daemon session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			info, err := apiClient.Load(args[0], maxPoints)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "loaded %s: %d points, has_color: %v, format: %s\n",
				args[0], info.NumPoints, info.HasColor, info.Format)
			return nil
		},
	}
	cmd.Flags().IntVar(&maxPoints, MaxPointsOptionName, 0, "Read at most this many points")

	return cmd
}
