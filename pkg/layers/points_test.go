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

package layers

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/google/gopacket"
	"github.com/stretchr/testify/require"

	"jinr.ru/greenlab/go-tof/pkg/ply"
)

func TestPointsLayerSerialize(t *testing.T) {
	pl := NewPointsLayer(
		[]ply.Point3{{X: 1.5, Y: -2, Z: 0.25}},
		[]ply.Color3{{R: 1, G: 0, B: 0.5}},
	)

	buf := gopacket.NewSerializeBuffer()
	require.NoError(t, gopacket.SerializeLayers(buf, gopacket.SerializeOptions{}, pl))

	data := buf.Bytes()
	require.Len(t, data, PointRecordSize)
	require.Equal(t, float32(1.5), math.Float32frombits(binary.LittleEndian.Uint32(data[0:4])))
	require.Equal(t, float32(-2), math.Float32frombits(binary.LittleEndian.Uint32(data[4:8])))
	require.Equal(t, float32(0.25), math.Float32frombits(binary.LittleEndian.Uint32(data[8:12])))
	require.Equal(t, uint8(255), data[12])
	require.Equal(t, uint8(0), data[13])
	require.Equal(t, uint8(128), data[14])
}

func TestPointsLayerGrayDefault(t *testing.T) {
	pl := NewPointsLayer([]ply.Point3{{X: 1}, {X: 2}}, nil)

	buf := gopacket.NewSerializeBuffer()
	require.NoError(t, gopacket.SerializeLayers(buf, gopacket.SerializeOptions{}, pl))

	data := buf.Bytes()
	require.Len(t, data, 2*PointRecordSize)
	for _, off := range []int{12, 13, 14, 27, 28, 29} {
		require.Equal(t, uint8(GrayByte), data[off])
	}
}

func TestPointsLayerDecode(t *testing.T) {
	points := []ply.Point3{{X: 1, Y: 2, Z: 3}, {X: -4, Y: -5, Z: -6}}
	colors := []ply.Color3{{R: 1, G: 1, B: 1}, {R: 0, G: 0, B: 0}}
	pl := NewPointsLayer(points, colors)

	buf := gopacket.NewSerializeBuffer()
	require.NoError(t, gopacket.SerializeLayers(buf, gopacket.SerializeOptions{}, pl))

	packet := gopacket.NewPacket(buf.Bytes(), PointsLayerType, gopacket.Default)
	layer := packet.Layer(PointsLayerType)
	require.NotNil(t, layer)

	decoded := layer.(*PointsLayer)
	require.Len(t, decoded.Records, 2)
	require.Equal(t, points[0], decoded.Records[0].Point)
	require.Equal(t, points[1], decoded.Records[1].Point)
	require.Equal(t, uint8(255), decoded.Records[0].R)
	require.Equal(t, uint8(0), decoded.Records[1].B)
}

func TestPointsLayerDecodeDropsPartialRecord(t *testing.T) {
	pl := NewPointsLayer([]ply.Point3{{X: 1}}, nil)
	buf := gopacket.NewSerializeBuffer()
	require.NoError(t, gopacket.SerializeLayers(buf, gopacket.SerializeOptions{}, pl))

	data := append(buf.Bytes(), 0x01, 0x02, 0x03) // 3 stray bytes
	decoded := &PointsLayer{}
	require.NoError(t, decoded.DecodeFromBytes(data, gopacket.NilDecodeFeedback))
	require.Len(t, decoded.Records, 1)
}
