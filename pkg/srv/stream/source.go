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

package stream

import (
	"fmt"
	"io"
	"os"

	"github.com/google/gopacket"

	"jinr.ru/greenlab/go-tof/pkg/layers"
	"jinr.ru/greenlab/go-tof/pkg/ply"
)

// Packet is one unit of a simulated transfer. It is created fresh per
// emission and not retained by its source; consumers may keep it.
type Packet struct {
	Seq         int
	Points      []ply.Point3
	Colors      []ply.Color3
	RawBytes    []byte
	Progress    float64
	Description string
}

// Source produces sequential bounded packets. Next returns io.EOF when the
// underlying data is exhausted.
type Source interface {
	Next() (*Packet, error)
}

// PointSource re-chunks a loaded point cloud into packets of at most
// packetSize points. The wire bytes always use the fixed 15-byte record
// layout no matter how the source file was encoded.
type PointSource struct {
	cloud      *ply.PointCloud
	packetSize int
	offset     int
	seq        int
}

var _ Source = &PointSource{}

func NewPointSource(cloud *ply.PointCloud, packetSize int) *PointSource {
	if packetSize < 1 {
		packetSize = 1
	}
	return &PointSource{
		cloud:      cloud,
		packetSize: packetSize,
	}
}

func (s *PointSource) Next() (*Packet, error) {
	total := s.cloud.Len()
	if s.offset >= total {
		return nil, io.EOF
	}

	end := s.offset + s.packetSize
	if end > total {
		end = total
	}

	points := s.cloud.Points[s.offset:end]
	colors := make([]ply.Color3, end-s.offset)
	for i := range colors {
		colors[i] = s.cloud.ColorAt(s.offset + i)
	}

	pl := layers.NewPointsLayer(points, colors)
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{}
	if err := gopacket.SerializeLayers(buf, opts, pl); err != nil {
		return nil, err
	}

	s.seq++
	s.offset = end
	return &Packet{
		Seq:         s.seq,
		Points:      points,
		Colors:      colors,
		RawBytes:    buf.Bytes(),
		Progress:    100 * float64(end) / float64(total),
		Description: fmt.Sprintf("packet #%d: %d points", s.seq, len(points)),
	}, nil
}

// ByteSource streams raw chunks of an arbitrary file without interpreting
// them as points. Used for inspecting non-point-cloud payloads; never mixed
// with PointSource in one session.
type ByteSource struct {
	file      *os.File
	name      string
	size      int64
	read      int64
	chunkSize int
	seq       int
}

var _ Source = &ByteSource{}

func NewByteSource(path string, chunkSize int) (*ByteSource, error) {
	if chunkSize < 1 {
		chunkSize = 1
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	return &ByteSource{
		file:      file,
		name:      stat.Name(),
		size:      stat.Size(),
		chunkSize: chunkSize,
	}, nil
}

func (s *ByteSource) Next() (*Packet, error) {
	if s.size == 0 || s.read >= s.size {
		return nil, io.EOF
	}

	chunk := make([]byte, s.chunkSize)
	n, err := s.file.Read(chunk)
	if n == 0 {
		if err == nil || err == io.EOF {
			return nil, io.EOF
		}
		return nil, err
	}

	s.seq++
	s.read += int64(n)
	return &Packet{
		Seq:         s.seq,
		RawBytes:    chunk[:n],
		Progress:    100 * float64(s.read) / float64(s.size),
		Description: fmt.Sprintf("packet #%d: %d bytes from %s", s.seq, n, s.name),
	}, nil
}

func (s *ByteSource) Close() error {
	return s.file.Close()
}
