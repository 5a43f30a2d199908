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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function, which is similar to
// the Errorf() function in the fmt package. The pattern string is remembered
// and is used to differentiate curated errors. Patterns should be stored as
// exported constants in the package that produces the error. For example:
//
//	const UndecidedLine = "display: line %d is undecided"
//
//	e := curated.Errorf(UndecidedLine, 100)
//	if curated.Is(e, UndecidedLine) {
//		fmt.Println("true")
//	}
//
// The Has() function checks if a pattern occurs somewhere in the error chain:
//
//	f := curated.Errorf("frame: %v", e)
//	curated.Has(f, UndecidedLine) // true
//	curated.Is(f, UndecidedLine)  // false
//
// The IsAny() function answers whether the error was created by
// curated.Errorf(). We can think of the difference between curated and
// uncurated errors as being the difference between expected and unexpected
// errors.
//
// The Error() function ensures that the error chain does not contain
// duplicate adjacent parts. For the purposes of this package, chains are
// composed of parts separated by the sub-string ': '. Wrapping an error that
// begins with the same part as the wrapping pattern therefore does not
// result in a stuttering message:
//
//	e := curated.Errorf("display: %v", curated.Errorf("display: lock failed"))
//	fmt.Println(e) // display: lock failed
//
// Any error values in the chain are also available to errors.Is() and
// errors.As() through the Unwrap() function.
package curated
