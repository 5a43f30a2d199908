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

package performance

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/denise/curated"
	"github.com/jetsetilly/denise/hardware/chipset"
	"github.com/jetsetilly/denise/hardware/specification"
)

// Check the performance of the emulation. The chipset runs for the leadtime
// to allow the frame rate to settle down, and is then measured for the
// specified duration.
//
// Profiles are generated for the entire period, including the leadtime.
func Check(output io.Writer, profile Profile, chip *chipset.Chipset, spec specification.Spec, leadtime time.Duration, duration time.Duration) error {
	if duration <= 0 {
		return curated.Errorf("performance: duration must be positive (%v)", duration)
	}

	var startFrame int

	runner := func() error {
		if leadtime > 0 {
			ctx, cancel := context.WithTimeout(context.Background(), leadtime)
			defer cancel()
			err := chip.Run(ctx, 0)
			if err != nil {
				return err
			}
		}

		startFrame = chip.Stats().Frames

		ctx, cancel := context.WithTimeout(context.Background(), duration)
		defer cancel()
		return chip.Run(ctx, 0)
	}

	err := RunProfiler(profile, "performance", runner)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	numFrames := chip.Stats().Frames - startFrame
	fps, accuracy := CalcFPS(spec, numFrames, duration.Seconds())
	fmt.Fprintf(output, "%.2f fps (%d frames in %.2f seconds) %.1f%%\n", fps, numFrames, duration.Seconds(), accuracy)

	return nil
}
