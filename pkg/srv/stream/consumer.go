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
	"jinr.ru/greenlab/go-tof/pkg/log"
)

// Consumer receives every packet of a stream plus status text and integer
// progress. Callbacks run on the streaming goroutine, one at a time, and a
// packet is fully delivered before the next one is produced.
type Consumer interface {
	OnPacket(p *Packet)
	OnStatus(status string)
	OnProgress(progress int)
}

// LogConsumer is the consumer used when nobody else is attached, for
// example when the daemon forwards packets only through the UDP emitter.
type LogConsumer struct{}

var _ Consumer = LogConsumer{}

func (LogConsumer) OnPacket(p *Packet) {
	log.Debug("%s, %d bytes", p.Description, len(p.RawBytes))
}

func (LogConsumer) OnStatus(status string) {
	log.Info("%s", status)
}

func (LogConsumer) OnProgress(progress int) {
	log.Debug("Progress: %d%%", progress)
}
