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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It handles program modes and allows each mode to have its own set
// of flags.
//
// Arguments are given to the Modes type with NewArgs() and then parsed with
// Parse(). Flags are added before every call to Parse():
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "DIGEST", "IMAGE", "STATS")
//	r, err := md.Parse()
//	switch r {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
// The first argument after the flags is compared with the list of sub-modes.
// If it matches, the mode is added to the path of modes and the argument is
// consumed. If it does not match, the first sub-mode in the list is used. Mode
// comparisons are case insensitive.
//
//	switch md.Mode() {
//	case "DIGEST":
//		md.NewMode()
//		frames := md.AddInt("frames", 50, "number of frames to run")
//		...
//	}
//
// Calling NewMode() starts a new set of flags for the arguments that remain.
// Modes can be nested as deeply as required.
package modalflag
