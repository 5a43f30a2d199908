// This file is part of Denise.
//
// Denise is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Denise is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Denise.  If not, see <https://www.gnu.org/licenses/>.

//go:build !statsview

package statsview

import (
	"io"
)

// Address of the statistics server. Empty because statsview is not included
// in this build.
const Address = ""

// Launch does nothing if statsview is not included in the build.
func Launch(output io.Writer) {
	io.WriteString(output, "stats server not available in this build\n")
}

// Available returns false if statsview is not included in the build.
func Available() bool {
	return false
}
