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
	"fmt"
)

// ErrBadMagic returned when the first line of a file is not the PLY magic
// token. This is the only fatal parse error, everything past the magic
// degrades to a partial result.
type ErrBadMagic struct {
	Line string
}

func (e ErrBadMagic) Error() string {
	return fmt.Sprintf("Not a valid PLY file, first line: %q", e.Line)
}
