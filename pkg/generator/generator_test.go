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

package generator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"jinr.ru/greenlab/go-tof/pkg/ply"
)

func TestGenerateCounts(t *testing.T) {
	g := New(1)
	for _, shape := range []Shape{ShapeSphere, ShapeBox, ShapePlane, ShapeMixed} {
		cloud, err := g.Generate(shape, 100)
		require.NoError(t, err)
		require.Equal(t, 100, cloud.Len())
		require.Len(t, cloud.Colors, 100)
	}
}

func TestGenerateUnknownShape(t *testing.T) {
	g := New(1)
	_, err := g.Generate(Shape("pyramid"), 10)
	require.Error(t, err)
	require.IsType(t, ErrUnknownShape{}, err)
}

func TestSphereRadius(t *testing.T) {
	g := New(42)
	cloud := g.Sphere(500)
	for _, p := range cloud.Points {
		r := math.Sqrt(float64(p.X*p.X + p.Y*p.Y + p.Z*p.Z))
		require.GreaterOrEqual(t, r, 0.8-1e-6)
		require.Less(t, r, 1.2+1e-6)
	}
}

func TestBoxBounds(t *testing.T) {
	g := New(42)
	cloud := g.Box(500)
	green := byteColor(100, 255, 100)
	for i, p := range cloud.Points {
		for _, v := range []float32{p.X, p.Y, p.Z} {
			require.GreaterOrEqual(t, v, float32(-1.5))
			require.Less(t, v, float32(-0.5))
		}
		require.Equal(t, green, cloud.Colors[i])
	}
}

func TestPlaneBounds(t *testing.T) {
	g := New(42)
	cloud := g.Plane(500)
	for _, p := range cloud.Points {
		require.GreaterOrEqual(t, p.Z, float32(-2))
		require.Less(t, p.Z, float32(-1.8))
	}
}

func TestMixedRatio(t *testing.T) {
	g := New(42)
	cloud := g.Mixed(100)

	red := byteColor(255, 100, 100)
	green := byteColor(100, 255, 100)
	blue := byteColor(100, 100, 255)

	counts := map[ply.Color3]int{}
	for _, c := range cloud.Colors {
		counts[c]++
	}
	require.Equal(t, 40, counts[red])
	require.Equal(t, 30, counts[green])
	require.Equal(t, 30, counts[blue])
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := New(7).Generate(ShapeMixed, 50)
	require.NoError(t, err)
	b, err := New(7).Generate(ShapeMixed, 50)
	require.NoError(t, err)
	require.Equal(t, a.Points, b.Points)
	require.Equal(t, a.Colors, b.Colors)
}
