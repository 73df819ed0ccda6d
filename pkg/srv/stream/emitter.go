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
	"net"

	"jinr.ru/greenlab/go-tof/pkg/log"
)

// Emitter forwards packet wire bytes to a UDP peer, typically the
// visualization front-end. A send failure is logged and the stream goes on,
// the way real acquisition hardware keeps producing with nobody listening.
type Emitter struct {
	conn *net.UDPConn
	addr *net.UDPAddr
}

func NewEmitter(address string, port int) (*Emitter, error) {
	uaddr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", address, port))
	if err != nil {
		return nil, err
	}
	conn, err := net.DialUDP("udp", nil, uaddr)
	if err != nil {
		return nil, err
	}
	log.Info("Emitting packets to peer: %s", uaddr)
	return &Emitter{conn: conn, addr: uaddr}, nil
}

func (e *Emitter) Emit(data []byte) {
	if _, err := e.conn.Write(data); err != nil {
		log.Error("Error while sending data to %s: %s", e.addr, err)
	}
}

func (e *Emitter) Close() {
	e.conn.Close()
}
