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
	"os"

	"jinr.ru/greenlab/go-tof/pkg/log"
)

// Recorder appends raw wire bytes of emitted packets to a file for offline
// inspection.
type Recorder struct {
	file *os.File
}

func NewRecorder(filename string) (*Recorder, error) {
	file, err := os.Create(filename)
	if err != nil {
		log.Error("Error while creating file: %s", filename)
		return nil, err
	}
	return &Recorder{
		file: file,
	}, nil
}

func (r *Recorder) Write(buf []byte) (int, error) {
	return r.file.Write(buf)
}

func (r *Recorder) Flush() {
	r.file.Sync()
	r.file.Close()
}
