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
)

// ErrNotLoaded returned when an operation needs a loaded data file and the
// session has none
type ErrNotLoaded struct{}

func (e ErrNotLoaded) Error() string {
	return "No data file loaded"
}

// ErrNotConnected returned when streaming is requested before the
// connect handshake
type ErrNotConnected struct{}

func (e ErrNotConnected) Error() string {
	return "Hardware not connected"
}

// ErrBusy returned when an operation would disturb an in-flight stream
type ErrBusy struct {
	What string
}

func (e ErrBusy) Error() string {
	return fmt.Sprintf("Stream in progress: %s", e.What)
}

// ErrUnknownAction returned by the API for an action that is not start/stop
type ErrUnknownAction struct {
	What string
}

func (e ErrUnknownAction) Error() string {
	return fmt.Sprintf("Unknown action: %s", e.What)
}
