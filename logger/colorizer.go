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

package logger

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colorizer applies basic coloring rules to logging output. It is intended to
// be used as the io.Writer given to SetEcho().
type Colorizer struct {
	out    io.Writer
	tag    lipgloss.Style
	detail lipgloss.Style
	repeat lipgloss.Style
}

// NewColorizer is the preferred method if initialisation for the Colorizer type.
func NewColorizer(out io.Writer) Colorizer {
	return Colorizer{
		out:    out,
		tag:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(6)),
		detail: lipgloss.NewStyle(),
		repeat: lipgloss.NewStyle().Faint(true),
	}
}

// Write implements the io.Writer interface. Each line is expected to be in the
// form of an Entry.String() result.
func (c Colorizer) Write(p []byte) (int, error) {
	var s strings.Builder

	for _, l := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		tag, detail, ok := strings.Cut(l, ": ")
		if !ok {
			s.WriteString(c.detail.Render(l))
			s.WriteString("\n")
			continue
		}

		var repeat string
		if i := strings.LastIndex(detail, " (repeat x"); i >= 0 && strings.HasSuffix(detail, ")") {
			repeat = detail[i:]
			detail = detail[:i]
		}

		s.WriteString(c.tag.Render(tag))
		s.WriteString(": ")
		s.WriteString(c.detail.Render(detail))
		if repeat != "" {
			s.WriteString(c.repeat.Render(repeat))
		}
		s.WriteString("\n")
	}

	_, err := io.WriteString(c.out, s.String())
	if err != nil {
		return 0, err
	}
	return len(p), nil
}
