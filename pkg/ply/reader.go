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
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"jinr.ru/greenlab/go-tof/pkg/log"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Read parses a PLY stream into a point cloud and its header info.
// maxPoints bounds the number of points read when positive; zero or negative
// means read everything the header declares.
//
// A body that ends before the declared point count is not an error: the
// camera feed this format mimics can be cut off mid-transfer, so the reader
// returns the complete records it could get.
func Read(r io.Reader, maxPoints int) (*PointCloud, *Info, error) {
	br := bufio.NewReader(r)

	info, err := readHeader(br)
	if err != nil {
		return nil, nil, err
	}

	count := info.NumPoints
	if maxPoints > 0 && maxPoints < count {
		count = maxPoints
	}

	cloud := &PointCloud{
		Points: make([]Point3, 0, count),
	}
	if info.HasColor {
		cloud.Colors = make([]Color3, 0, count)
	}

	if info.Format == FormatASCII {
		readPointsASCII(br, info, count, cloud)
	} else {
		// Anything that is not ascii is treated as binary little-endian,
		// matching the camera firmware which never emits big-endian files.
		readPointsBinary(br, info, count, cloud)
	}

	bound(info, cloud)
	log.Debug("Read PLY body: %d of %d declared points", cloud.Len(), info.NumPoints)
	return cloud, info, nil
}

// ReadFile parses a PLY file from disk. See Read.
func ReadFile(path string, maxPoints int) (*PointCloud, *Info, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()
	return Read(file, maxPoints)
}

// ReadInfo parses only the header of a PLY file. The body is not touched,
// so the bounding box fields of the result stay zero.
func ReadInfo(path string) (*Info, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return readHeader(bufio.NewReader(file))
}

func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func readHeader(br *bufio.Reader) (*Info, error) {
	line, err := readLine(br)
	if err != nil {
		return nil, ErrBadMagic{Line: line}
	}
	line = strings.TrimPrefix(line, string(utf8BOM))
	if line != Magic {
		return nil, ErrBadMagic{Line: line}
	}

	info := &Info{}
	for {
		line, err = readLine(br)
		if err != nil {
			// Header cut short before end_header. Treat it like a truncated
			// body: keep what was parsed, the body read will yield nothing.
			return info, nil
		}
		if line == EndHeader {
			return info, nil
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "format":
			info.Format = fields[1]
		case "element":
			if len(fields) < 3 {
				continue
			}
			n, convErr := strconv.Atoi(fields[2])
			if convErr != nil {
				continue
			}
			switch fields[1] {
			case "vertex":
				info.NumPoints = n
			case "face":
				info.NumFaces = n
			}
		case "property":
			if len(fields) < 3 {
				continue
			}
			name := fields[2]
			info.Properties = append(info.Properties, Property{Type: fields[1], Name: name})
			if name == "red" || name == "green" || name == "blue" {
				info.HasColor = true
			}
		}
	}
}

func readPointsASCII(br *bufio.Reader, info *Info, count int, cloud *PointCloud) {
	for i := 0; i < count; i++ {
		line, err := readLine(br)
		if err != nil {
			return
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return
		}

		var pos [3]float64
		var convErr error
		for j := 0; j < 3; j++ {
			pos[j], convErr = strconv.ParseFloat(fields[j], 32)
			if convErr != nil {
				return
			}
		}
		cloud.Points = append(cloud.Points, Point3{
			X: float32(pos[0]),
			Y: float32(pos[1]),
			Z: float32(pos[2]),
		})

		if info.HasColor {
			cloud.Colors = append(cloud.Colors, parseColorASCII(fields))
		}
	}
}

func parseColorASCII(fields []string) Color3 {
	if len(fields) < 6 {
		return GrayColor
	}
	var c [3]int
	for j := 0; j < 3; j++ {
		v, err := strconv.Atoi(fields[3+j])
		if err != nil {
			return GrayColor
		}
		c[j] = v
	}
	return Color3{
		R: float32(c[0]) / 255,
		G: float32(c[1]) / 255,
		B: float32(c[2]) / 255,
	}
}

func readPointsBinary(br *bufio.Reader, info *Info, count int, cloud *PointCloud) {
	pos := make([]byte, 12)
	rgb := make([]byte, 3)
	for i := 0; i < count; i++ {
		if _, err := io.ReadFull(br, pos); err != nil {
			// Fewer than 12 bytes left, the record is incomplete. Stop here
			// with the points read so far.
			return
		}
		cloud.Points = append(cloud.Points, Point3{
			X: math.Float32frombits(binary.LittleEndian.Uint32(pos[0:4])),
			Y: math.Float32frombits(binary.LittleEndian.Uint32(pos[4:8])),
			Z: math.Float32frombits(binary.LittleEndian.Uint32(pos[8:12])),
		})

		if info.HasColor {
			if _, err := io.ReadFull(br, rgb); err != nil {
				cloud.Colors = append(cloud.Colors, GrayColor)
				return
			}
			cloud.Colors = append(cloud.Colors, Color3{
				R: float32(rgb[0]) / 255,
				G: float32(rgb[1]) / 255,
				B: float32(rgb[2]) / 255,
			})
		}
	}
}

func bound(info *Info, cloud *PointCloud) {
	for i, p := range cloud.Points {
		if i == 0 {
			info.MinX, info.MaxX = p.X, p.X
			info.MinY, info.MaxY = p.Y, p.Y
			info.MinZ, info.MaxZ = p.Z, p.Z
			continue
		}
		if p.X < info.MinX {
			info.MinX = p.X
		}
		if p.X > info.MaxX {
			info.MaxX = p.X
		}
		if p.Y < info.MinY {
			info.MinY = p.Y
		}
		if p.Y > info.MaxY {
			info.MaxY = p.Y
		}
		if p.Z < info.MinZ {
			info.MinZ = p.Z
		}
		if p.Z > info.MaxZ {
			info.MaxZ = p.Z
		}
	}
}
