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

// Package generator produces synthetic point clouds for exercising the
// streaming pipeline without a camera: a noisy sphere with position-derived
// colors, and a mixed scene of sphere, box and plane.
package generator

import (
	"fmt"
	"math"
	"math/rand"

	"jinr.ru/greenlab/go-tof/pkg/ply"
)

type Shape string

const (
	ShapeSphere Shape = "sphere"
	ShapeBox    Shape = "box"
	ShapePlane  Shape = "plane"
	ShapeMixed  Shape = "mixed"
)

// ErrUnknownShape ...
type ErrUnknownShape struct {
	What string
}

func (e ErrUnknownShape) Error() string {
	return fmt.Sprintf("Unknown shape: %s. Must be one of sphere, box, plane, mixed.", e.What)
}

type Generator struct {
	rnd *rand.Rand
}

func New(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

func (g *Generator) Generate(shape Shape, n int) (*ply.PointCloud, error) {
	switch shape {
	case ShapeSphere:
		return g.Sphere(n), nil
	case ShapeBox:
		return g.Box(n), nil
	case ShapePlane:
		return g.Plane(n), nil
	case ShapeMixed:
		return g.Mixed(n), nil
	default:
		return nil, ErrUnknownShape{What: string(shape)}
	}
}

// Sphere generates a unit sphere with radius noise in [0.8,1.2) and colors
// derived from position.
func (g *Generator) Sphere(n int) *ply.PointCloud {
	cloud := newCloud(n)
	for i := 0; i < n; i++ {
		phi := g.rnd.Float64() * 2 * math.Pi
		theta := g.rnd.Float64() * math.Pi
		radius := 0.8 + 0.4*g.rnd.Float64()

		x := float32(radius * math.Sin(theta) * math.Cos(phi))
		y := float32(radius * math.Sin(theta) * math.Sin(phi))
		z := float32(radius * math.Cos(theta))

		cloud.Points = append(cloud.Points, ply.Point3{X: x, Y: y, Z: z})
		cloud.Colors = append(cloud.Colors, positionColor(x, y, z))
	}
	return cloud
}

// Box generates a uniform box in [-1.5,-0.5)^3, solid green.
func (g *Generator) Box(n int) *ply.PointCloud {
	cloud := newCloud(n)
	green := byteColor(100, 255, 100)
	for i := 0; i < n; i++ {
		cloud.Points = append(cloud.Points, ply.Point3{
			X: g.uniform(-1.5, -0.5),
			Y: g.uniform(-1.5, -0.5),
			Z: g.uniform(-1.5, -0.5),
		})
		cloud.Colors = append(cloud.Colors, green)
	}
	return cloud
}

// Plane generates a thin horizontal slab under the scene, solid blue.
func (g *Generator) Plane(n int) *ply.PointCloud {
	cloud := newCloud(n)
	blue := byteColor(100, 100, 255)
	for i := 0; i < n; i++ {
		cloud.Points = append(cloud.Points, ply.Point3{
			X: g.uniform(-2, 2),
			Y: g.uniform(-2, 2),
			Z: g.uniform(-2, -1.8),
		})
		cloud.Colors = append(cloud.Colors, blue)
	}
	return cloud
}

// Mixed generates the three-object test scene: 40% red sphere, 30% green
// box, 30% blue plane, shuffled so packets interleave the objects.
func (g *Generator) Mixed(n int) *ply.PointCloud {
	nSphere := n * 4 / 10
	nBox := n * 3 / 10
	nPlane := n - nSphere - nBox

	cloud := newCloud(n)
	red := byteColor(255, 100, 100)

	sphere := g.Sphere(nSphere)
	for _, p := range sphere.Points {
		cloud.Points = append(cloud.Points, p)
		cloud.Colors = append(cloud.Colors, red)
	}
	box := g.Box(nBox)
	cloud.Points = append(cloud.Points, box.Points...)
	cloud.Colors = append(cloud.Colors, box.Colors...)
	plane := g.Plane(nPlane)
	cloud.Points = append(cloud.Points, plane.Points...)
	cloud.Colors = append(cloud.Colors, plane.Colors...)

	g.rnd.Shuffle(n, func(i, j int) {
		cloud.Points[i], cloud.Points[j] = cloud.Points[j], cloud.Points[i]
		cloud.Colors[i], cloud.Colors[j] = cloud.Colors[j], cloud.Colors[i]
	})
	return cloud
}

func (g *Generator) uniform(lo, hi float64) float32 {
	return float32(lo + (hi-lo)*g.rnd.Float64())
}

func newCloud(n int) *ply.PointCloud {
	return &ply.PointCloud{
		Points: make([]ply.Point3, 0, n),
		Colors: make([]ply.Color3, 0, n),
	}
}

func byteColor(r, g, b uint8) ply.Color3 {
	return ply.Color3{
		R: float32(r) / 255,
		G: float32(g) / 255,
		B: float32(b) / 255,
	}
}

func positionColor(x, y, z float32) ply.Color3 {
	return ply.Color3{
		R: clamp01((x + 1) / 2),
		G: clamp01((y + 1) / 2),
		B: clamp01((z + 1) / 2),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
