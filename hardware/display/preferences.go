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

package display

import (
	"github.com/jetsetilly/denise/curated"
	"github.com/jetsetilly/denise/hardware/display/geometry"
	"github.com/jetsetilly/denise/hardware/specification"
	"github.com/jetsetilly/denise/prefs"
	"github.com/jetsetilly/denise/resources"
)

// BadPreference is the pattern used when a preference value is rejected.
const BadPreference = "display: bad preference: %s (%v)"

// Preferences for the display. Changes to the preferences take effect at the
// start of the next frame.
type Preferences struct {
	dsk *prefs.Disk

	// size of the host window in pixels
	Width  prefs.Int
	Height prefs.Int

	// one window pixel is one lores pixel. otherwise it is one hires pixel
	Lores prefs.Bool

	// centering mode. 0 is off, 1 is fixed and 2 is smart
	XCenter prefs.Int
	YCenter prefs.Int

	CorrectAspect prefs.Bool
	LineDbl       prefs.Bool

	// draw one frame in every FrameRate frames
	FrameRate prefs.Int

	// bits per pixel of the host window. one of 8, 16 or 32
	PixelDepth prefs.Int

	// limit emulation to the refresh rate of the specification
	FPSCap prefs.Bool
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Values are loaded from the preferences file and from the
// command line stack.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	p.XCenter.SetHookPre(centeringHook("XCenter"))
	p.YCenter.SetHookPre(centeringHook("YCenter"))
	p.FrameRate.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 1 {
			return curated.Errorf(BadPreference, "FrameRate", v)
		}
		return nil
	})
	p.PixelDepth.SetHookPre(func(v prefs.Value) error {
		switch v.(int) {
		case 8, 16, 32:
			return nil
		}
		return curated.Errorf(BadPreference, "PixelDepth", v)
	})
	p.Width.SetHookPre(sizeHook("Width"))
	p.Height.SetHookPre(sizeHook("Height"))

	pth, err := resources.JoinPath(resources.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("display.width", &p.Width)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("display.height", &p.Height)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("display.lores", &p.Lores)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("display.xcenter", &p.XCenter)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("display.ycenter", &p.YCenter)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("display.correctAspect", &p.CorrectAspect)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("display.lineDbl", &p.LineDbl)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("display.frameRate", &p.FrameRate)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("display.pixelDepth", &p.PixelDepth)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("display.fpsCap", &p.FPSCap)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Load(true)
	if err != nil {
		return nil, err
	}

	return p, nil
}

func centeringHook(name string) func(prefs.Value) error {
	return func(v prefs.Value) error {
		switch geometry.Centering(v.(int)) {
		case geometry.CenterOff, geometry.CenterFixed, geometry.CenterSmart:
			return nil
		}
		return curated.Errorf(BadPreference, name, v)
	}
}

func sizeHook(name string) func(prefs.Value) error {
	return func(v prefs.Value) error {
		if v.(int) < 16 || v.(int) > specification.MaxPixelsPerLine {
			return curated.Errorf(BadPreference, name, v)
		}
		return nil
	}
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() {
	p.Width.Set(320)
	p.Height.Set(256)
	p.Lores.Set(true)
	p.XCenter.Set(int(geometry.CenterSmart))
	p.YCenter.Set(int(geometry.CenterSmart))
	p.CorrectAspect.Set(false)
	p.LineDbl.Set(false)
	p.FrameRate.Set(1)
	p.PixelDepth.Set(32)
	p.FPSCap.Set(true)
}

// Load current display preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save current display preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// PixBytes returns the number of bytes per pixel for the PixelDepth
// preference.
func (p *Preferences) PixBytes() int {
	return p.PixelDepth.Get().(int) / 8
}

// geometry configuration for a host buffer of the given size.
func (p *Preferences) geometry(width int, height int, spec specification.Spec) geometry.Config {
	return geometry.Config{
		Width:         width,
		Height:        height,
		Lores:         p.Lores.Get().(bool),
		XCenter:       geometry.Centering(p.XCenter.Get().(int)),
		YCenter:       geometry.Centering(p.YCenter.Get().(int)),
		CorrectAspect: p.CorrectAspect.Get().(bool),
		LineDbl:       p.LineDbl.Get().(bool),
		Spec:          spec,
	}
}

// setHooks sets the post hook of every preference that affects the geometry
// of the frame.
func (p *Preferences) setHooks(f func(prefs.Value) error) {
	p.Lores.SetHookPost(f)
	p.XCenter.SetHookPost(f)
	p.YCenter.SetHookPost(f)
	p.CorrectAspect.SetHookPost(f)
	p.LineDbl.SetHookPost(f)
	p.Width.SetHookPost(f)
	p.Height.SetHookPost(f)
	p.PixelDepth.SetHookPost(f)
}
