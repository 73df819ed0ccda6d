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

package gen

import (
	"time"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-tof/pkg/generator"
	"jinr.ru/greenlab/go-tof/pkg/log"
	"jinr.ru/greenlab/go-tof/pkg/ply"
)

const (
	OutOptionName    = "out"
	PointsOptionName = "points"
	ShapeOptionName  = "shape"
	SeedOptionName   = "seed"
)

// NewCommand creates the command that writes a synthetic test PLY file.
func NewCommand() *cobra.Command {
	var out, shape string
	var points int
	var seed int64
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a synthetic point-cloud file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			g := generator.New(seed)
			cloud, err := g.Generate(generator.Shape(shape), points)
			if err != nil {
				return err
			}
			if err := ply.WriteFile(out, cloud); err != nil {
				return err
			}
			log.Info("Created test file: %s points: %d shape: %s", out, cloud.Len(), shape)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, OutOptionName, "test_point_cloud.ply", "Output file")
	cmd.Flags().IntVar(&points, PointsOptionName, 1000, "Number of points")
	cmd.Flags().StringVar(&shape, ShapeOptionName, string(generator.ShapeSphere), "Shape: sphere, box, plane or mixed")
	cmd.Flags().Int64Var(&seed, SeedOptionName, 0, "Random seed, 0 means time-based")

	return cmd
}
