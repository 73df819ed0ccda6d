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
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func binaryHeader(n int, withColor bool) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "ply\n")
	fmt.Fprintf(&buf, "format binary_little_endian 1.0\n")
	fmt.Fprintf(&buf, "element vertex %d\n", n)
	fmt.Fprintf(&buf, "property float x\nproperty float y\nproperty float z\n")
	if withColor {
		fmt.Fprintf(&buf, "property uchar red\nproperty uchar green\nproperty uchar blue\n")
	}
	fmt.Fprintf(&buf, "end_header\n")
	return buf.Bytes()
}

func appendPosition(buf []byte, x, y, z float32) []byte {
	for _, v := range []float32{x, y, z} {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
		buf = append(buf, b[:]...)
	}
	return buf
}

func TestReadBadMagic(t *testing.T) {
	_, _, err := Read(bytes.NewReader([]byte("not a ply file\nwhatever\n")), 0)
	require.Error(t, err)
	require.IsType(t, ErrBadMagic{}, err)
}

func TestReadBadMagicEmptyInput(t *testing.T) {
	_, _, err := Read(bytes.NewReader(nil), 0)
	require.Error(t, err)
	require.IsType(t, ErrBadMagic{}, err)
}

func TestReadASCIIWithColor(t *testing.T) {
	data := []byte("ply\n" +
		"format ascii 1.0\n" +
		"element vertex 3\n" +
		"property float x\nproperty float y\nproperty float z\n" +
		"property uchar red\nproperty uchar green\nproperty uchar blue\n" +
		"end_header\n" +
		"1 2 3 255 0 0\n" +
		"4 5 6 0 255 0\n" +
		"7 8 9\n") // short line, color falls back to gray

	cloud, info, err := Read(bytes.NewReader(data), 0)
	require.NoError(t, err)
	require.Equal(t, FormatASCII, info.Format)
	require.Equal(t, 3, info.NumPoints)
	require.True(t, info.HasColor)
	require.Equal(t, 3, cloud.Len())

	require.Equal(t, Point3{X: 1, Y: 2, Z: 3}, cloud.Points[0])
	require.Equal(t, Point3{X: 7, Y: 8, Z: 9}, cloud.Points[2])
	require.Equal(t, Color3{R: 1, G: 0, B: 0}, cloud.Colors[0])
	require.Equal(t, GrayColor, cloud.Colors[2])
}

func TestReadASCIIWithoutColor(t *testing.T) {
	data := []byte("ply\n" +
		"format ascii 1.0\n" +
		"element vertex 2\n" +
		"property float x\nproperty float y\nproperty float z\n" +
		"end_header\n" +
		"1 1 1\n" +
		"2 2 2\n")

	cloud, info, err := Read(bytes.NewReader(data), 0)
	require.NoError(t, err)
	require.False(t, info.HasColor)
	require.Equal(t, 2, cloud.Len())
	require.False(t, cloud.HasColor())
	require.Equal(t, GrayColor, cloud.ColorAt(0))
	require.Equal(t, GrayColor, cloud.ColorAt(1))
}

func TestReadBinaryWithColor(t *testing.T) {
	body := appendPosition(nil, 1.5, -2.5, 3.25)
	body = append(body, 255, 128, 0)
	body = appendPosition(body, 0, 0, 1)
	body = append(body, 0, 0, 255)

	data := append(binaryHeader(2, true), body...)
	cloud, info, err := Read(bytes.NewReader(data), 0)
	require.NoError(t, err)
	require.Equal(t, FormatBinaryLE, info.Format)
	require.True(t, info.HasColor)
	require.Equal(t, 2, cloud.Len())
	require.Equal(t, Point3{X: 1.5, Y: -2.5, Z: 3.25}, cloud.Points[0])
	require.InDelta(t, 1.0, cloud.Colors[0].R, 1e-6)
	require.InDelta(t, 128.0/255, cloud.Colors[0].G, 1e-6)
	require.InDelta(t, 1.0, cloud.Colors[1].B, 1e-6)
}

func TestReadBinaryTruncatedBody(t *testing.T) {
	// 4 points declared, 2 complete records plus 5 stray bytes
	body := appendPosition(nil, 1, 1, 1)
	body = appendPosition(body, 2, 2, 2)
	body = append(body, 0xde, 0xad, 0xbe, 0xef, 0x00)

	data := append(binaryHeader(4, false), body...)
	cloud, info, err := Read(bytes.NewReader(data), 0)
	require.NoError(t, err)
	require.Equal(t, 4, info.NumPoints)
	require.Equal(t, 2, cloud.Len())
}

func TestReadBinaryTruncatedColor(t *testing.T) {
	// second record has position but only one color byte
	body := appendPosition(nil, 1, 1, 1)
	body = append(body, 10, 20, 30)
	body = appendPosition(body, 2, 2, 2)
	body = append(body, 10)

	data := append(binaryHeader(2, true), body...)
	cloud, _, err := Read(bytes.NewReader(data), 0)
	require.NoError(t, err)
	require.Equal(t, 2, cloud.Len())
	require.Len(t, cloud.Colors, 2)
	require.Equal(t, GrayColor, cloud.Colors[1])
}

func TestReadMaxPoints(t *testing.T) {
	body := appendPosition(nil, 1, 1, 1)
	body = appendPosition(body, 2, 2, 2)
	body = appendPosition(body, 3, 3, 3)

	data := append(binaryHeader(3, false), body...)
	cloud, info, err := Read(bytes.NewReader(data), 2)
	require.NoError(t, err)
	require.Equal(t, 3, info.NumPoints)
	require.Equal(t, 2, cloud.Len())
}

func TestReadHeaderSkipsMalformedLines(t *testing.T) {
	data := []byte("ply\n" +
		"format ascii 1.0\n" +
		"comment generated by a camera\n" +
		"x\n" +
		"element vertex 1\n" +
		"property float x\nproperty float y\nproperty float z\n" +
		"end_header\n" +
		"1 2 3\n")

	cloud, info, err := Read(bytes.NewReader(data), 0)
	require.NoError(t, err)
	require.Equal(t, 1, info.NumPoints)
	require.Equal(t, 1, cloud.Len())
}

func TestReadFaceCount(t *testing.T) {
	data := []byte("ply\n" +
		"format ascii 1.0\n" +
		"element vertex 1\n" +
		"property float x\nproperty float y\nproperty float z\n" +
		"element face 7\n" +
		"end_header\n" +
		"1 2 3\n")

	_, info, err := Read(bytes.NewReader(data), 0)
	require.NoError(t, err)
	require.Equal(t, 7, info.NumFaces)
}

func TestReadBoundingBox(t *testing.T) {
	body := appendPosition(nil, -1, 5, 0)
	body = appendPosition(body, 3, -2, 8)

	data := append(binaryHeader(2, false), body...)
	_, info, err := Read(bytes.NewReader(data), 0)
	require.NoError(t, err)
	require.Equal(t, float32(-1), info.MinX)
	require.Equal(t, float32(3), info.MaxX)
	require.Equal(t, float32(-2), info.MinY)
	require.Equal(t, float32(5), info.MaxY)
	require.Equal(t, float32(0), info.MinZ)
	require.Equal(t, float32(8), info.MaxZ)
}

func TestReadInfoHeaderOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "probe.ply")
	body := appendPosition(nil, 1, 2, 3)
	require.NoError(t, os.WriteFile(path, append(binaryHeader(1, true), append(body, 9, 9, 9)...), 0644))

	info, err := ReadInfo(path)
	require.NoError(t, err)
	require.Equal(t, 1, info.NumPoints)
	require.True(t, info.HasColor)
	require.Len(t, info.Properties, 6)
	require.Equal(t, Property{Type: "float", Name: "x"}, info.Properties[0])
	// body untouched, bounds stay zero
	require.Equal(t, float32(0), info.MaxZ)
}

func TestReadFileMissing(t *testing.T) {
	_, _, err := ReadFile(filepath.Join(t.TempDir(), "nope.ply"), 0)
	require.Error(t, err)
	require.True(t, os.IsNotExist(err))
}
