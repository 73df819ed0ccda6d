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

package ply

const (
	Magic     = "ply"
	EndHeader = "end_header"

	FormatASCII    = "ascii"
	FormatBinaryLE = "binary_little_endian"
)

// Point3 is a single position sample, the native unit of a camera frame.
type Point3 struct {
	X float32
	Y float32
	Z float32
}

// Color3 is a per-point color with components normalized to [0,1].
type Color3 struct {
	R float32
	G float32
	B float32
}

// GrayColor is substituted for points that carry no color of their own.
var GrayColor = Color3{R: 0.5, G: 0.5, B: 0.5}

// PointCloud is an ordered point set with an optional parallel color list.
// Colors is either empty or exactly as long as Points.
type PointCloud struct {
	Points []Point3
	Colors []Color3
}

func (c *PointCloud) Len() int {
	return len(c.Points)
}

// HasColor reports whether the cloud carries per-point colors.
func (c *PointCloud) HasColor() bool {
	return len(c.Colors) > 0
}

// ColorAt returns the color of point i, or the default gray when the cloud
// has no colors.
func (c *PointCloud) ColorAt(i int) Color3 {
	if i < len(c.Colors) {
		return c.Colors[i]
	}
	return GrayColor
}

// Property is one header property declaration in declaration order.
type Property struct {
	Type string
	Name string
}

// Info is the parsed header metadata of a PLY file. The bounding box fields
// are filled during a full read and stay zero for header-only probes.
type Info struct {
	NumPoints  int        `json:"num_points"`
	NumFaces   int        `json:"num_faces"`
	Format     string     `json:"format"`
	Properties []Property `json:"properties,omitempty"`
	HasColor   bool       `json:"has_color"`

	MinX float32 `json:"min_x,omitempty"`
	MaxX float32 `json:"max_x,omitempty"`
	MinY float32 `json:"min_y,omitempty"`
	MaxY float32 `json:"max_y,omitempty"`
	MinZ float32 `json:"min_z,omitempty"`
	MaxZ float32 `json:"max_z,omitempty"`
}
