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

// Package prefs facilitates the storage of preferential values in the Denise
// system. Preference values are typed and are safe to read from a different
// goroutine than the one that set the value.
//
// Values are written to disk with the Disk type. A Disk instance is
// associated with a file and any number of preference values, each with a
// unique key. The file format is line based:
//
//	key :: value
//
// Keys in the file that are not known to a particular Disk instance are
// preserved when the Disk is saved. This means that more than one Disk
// instance can safely share the same file.
//
// Values can be overridden from the command line with the
// PushCommandLineStack() function. The command line values are applied the
// next time a Disk is loaded.
package prefs
