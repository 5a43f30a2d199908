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

// Package events implements the virtual clock and the table of hardware events
// that drive the emulation.
//
// There is a fixed number of event slots, one for each of the subsystems that
// need to be woken at a particular cycle. Each slot has a handler, which is
// registered once when the emulation is created, and an absolute trigger
// cycle. When the clock reaches the trigger cycle the event is deactivated and
// the handler is called. A handler that needs to run again must schedule its
// own next trigger.
//
// Events that trigger on the same cycle are always handled in slot order. This
// is important for the reproducibility of the emulation.
//
// Handlers must not advance the clock. Doing so will cause a panic.
package events
