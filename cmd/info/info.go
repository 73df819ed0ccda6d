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

package info

import (
	"fmt"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-tof/pkg/ply"
)

const (
	MaxPointsOptionName = "max-points"
)

// NewCommand creates the command that prints PLY header info and optionally
// a bounded preview load of the body.
func NewCommand() *cobra.Command {
	var maxPoints int
	cmd := &cobra.Command{
		Use:   "info FILE",
		Short: "Print point-cloud file header info",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			info, err := ply.ReadInfo(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "format: %s\n", info.Format)
			fmt.Fprintf(out, "points: %d\n", info.NumPoints)
			fmt.Fprintf(out, "faces: %d\n", info.NumFaces)
			fmt.Fprintf(out, "has_color: %v\n", info.HasColor)
			for _, p := range info.Properties {
				fmt.Fprintf(out, "property: %s %s\n", p.Type, p.Name)
			}

			if maxPoints > 0 {
				cloud, full, err := ply.ReadFile(args[0], maxPoints)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "preview: %d points\n", cloud.Len())
				fmt.Fprintf(out, "bounds: x [%g, %g] y [%g, %g] z [%g, %g]\n",
					full.MinX, full.MaxX, full.MinY, full.MaxY, full.MinZ, full.MaxZ)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&maxPoints, MaxPointsOptionName, 0, "Read at most this many points for a preview")

	return cmd
}
