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

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// ColorByte quantizes a normalized color component to an unsigned byte.
func ColorByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Write serializes a point cloud as a binary little-endian PLY stream.
// Color properties are declared only when the cloud carries colors; a point
// past the end of the color list gets the 128,128,128 gray default.
func Write(w io.Writer, cloud *PointCloud) error {
	bw := bufio.NewWriter(w)

	hasColor := cloud.HasColor()
	fmt.Fprintf(bw, "%s\n", Magic)
	fmt.Fprintf(bw, "format %s 1.0\n", FormatBinaryLE)
	fmt.Fprintf(bw, "element vertex %d\n", cloud.Len())
	fmt.Fprintf(bw, "property float x\n")
	fmt.Fprintf(bw, "property float y\n")
	fmt.Fprintf(bw, "property float z\n")
	if hasColor {
		fmt.Fprintf(bw, "property uchar red\n")
		fmt.Fprintf(bw, "property uchar green\n")
		fmt.Fprintf(bw, "property uchar blue\n")
	}
	fmt.Fprintf(bw, "%s\n", EndHeader)

	record := make([]byte, 12)
	for i, p := range cloud.Points {
		binary.LittleEndian.PutUint32(record[0:4], math.Float32bits(p.X))
		binary.LittleEndian.PutUint32(record[4:8], math.Float32bits(p.Y))
		binary.LittleEndian.PutUint32(record[8:12], math.Float32bits(p.Z))
		if _, err := bw.Write(record); err != nil {
			return err
		}
		if hasColor {
			rgb := [3]byte{128, 128, 128}
			if i < len(cloud.Colors) {
				c := cloud.Colors[i]
				rgb = [3]byte{ColorByte(c.R), ColorByte(c.G), ColorByte(c.B)}
			}
			if _, err := bw.Write(rgb[:]); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

// WriteFile serializes a point cloud to a binary PLY file on disk.
func WriteFile(path string, cloud *PointCloud) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(file, cloud); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
