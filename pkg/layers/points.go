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

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"jinr.ru/greenlab/go-tof/pkg/ply"
)

const (
	// PointsLayerNum identifies the layer
	PointsLayerNum = 1999
	// PointRecordSize is the fixed wire size of one point:
	// 12 bytes little-endian position + 3 bytes RGB
	PointRecordSize = 15
	// GrayByte is the wire color used for points without a color of their own
	GrayByte = 128
)

// PointRecord is one fixed-size wire record. The color is always present on
// the wire regardless of whether the source file declared one.
type PointRecord struct {
	Point ply.Point3
	R     uint8
	G     uint8
	B     uint8
}

// PointsLayer carries a run of point records, the payload of one
// simulated acquisition packet.
type PointsLayer struct {
	layers.BaseLayer
	Records []PointRecord
}

var PointsLayerType = gopacket.RegisterLayerType(PointsLayerNum,
	gopacket.LayerTypeMetadata{Name: "PointsLayerType", Decoder: gopacket.DecodeFunc(DecodePointsLayer)})

// NewPointsLayer builds a layer from a point slice and its matching color
// slice. Colors may be shorter than points or empty, missing entries become
// the gray default.
func NewPointsLayer(points []ply.Point3, colors []ply.Color3) *PointsLayer {
	records := make([]PointRecord, len(points))
	for i, p := range points {
		records[i] = PointRecord{Point: p, R: GrayByte, G: GrayByte, B: GrayByte}
		if i < len(colors) {
			records[i].R = ply.ColorByte(colors[i].R)
			records[i].G = ply.ColorByte(colors[i].G)
			records[i].B = ply.ColorByte(colors[i].B)
		}
	}
	return &PointsLayer{Records: records}
}

// LayerType returns the type of the points layer in the layer catalog
func (pl *PointsLayer) LayerType() gopacket.LayerType {
	return PointsLayerType
}

// Serialize writes the records to a preallocated buffer of at least
// len(Records)*PointRecordSize bytes.
func (pl *PointsLayer) Serialize(buf []byte) {
	for i, rec := range pl.Records {
		off := i * PointRecordSize
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(rec.Point.X))
		binary.LittleEndian.PutUint32(buf[off+4:off+8], math.Float32bits(rec.Point.Y))
		binary.LittleEndian.PutUint32(buf[off+8:off+12], math.Float32bits(rec.Point.Z))
		buf[off+12] = rec.R
		buf[off+13] = rec.G
		buf[off+14] = rec.B
	}
}

// SerializeTo serializes the points layer into bytes and writes the bytes to the SerializeBuffer
func (pl *PointsLayer) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	bytes, err := b.AppendBytes(len(pl.Records) * PointRecordSize)
	if err != nil {
		return err
	}
	pl.Serialize(bytes)
	return nil
}

// DecodeFromBytes parses complete records from data. A trailing partial
// record is dropped, mirroring the truncation tolerance of the file reader.
func (pl *PointsLayer) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	pl.BaseLayer = layers.BaseLayer{
		Contents: data[:],
		Payload:  []byte{},
	}
	n := len(data) / PointRecordSize
	pl.Records = make([]PointRecord, n)
	for i := 0; i < n; i++ {
		off := i * PointRecordSize
		pl.Records[i] = PointRecord{
			Point: ply.Point3{
				X: math.Float32frombits(binary.LittleEndian.Uint32(data[off : off+4])),
				Y: math.Float32frombits(binary.LittleEndian.Uint32(data[off+4 : off+8])),
				Z: math.Float32frombits(binary.LittleEndian.Uint32(data[off+8 : off+12])),
			},
			R: data[off+12],
			G: data[off+13],
			B: data[off+14],
		}
	}
	return nil
}

func DecodePointsLayer(data []byte, p gopacket.PacketBuilder) error {
	pl := &PointsLayer{}
	err := pl.DecodeFromBytes(data, p)
	if err != nil {
		return err
	}
	p.AddLayer(pl)
	return nil
}
