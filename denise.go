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

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"time"

	"github.com/jetsetilly/denise/curated"
	"github.com/jetsetilly/denise/digest"
	"github.com/jetsetilly/denise/hardware/chipset"
	"github.com/jetsetilly/denise/hardware/display"
	"github.com/jetsetilly/denise/hardware/display/vidbuf"
	"github.com/jetsetilly/denise/hardware/events"
	"github.com/jetsetilly/denise/hardware/events/limiter"
	"github.com/jetsetilly/denise/hardware/specification"
	"github.com/jetsetilly/denise/host/imagehost"
	"github.com/jetsetilly/denise/host/sdlhost"
	"github.com/jetsetilly/denise/host/termquit"
	"github.com/jetsetilly/denise/logger"
	"github.com/jetsetilly/denise/modalflag"
	"github.com/jetsetilly/denise/performance"
	"github.com/jetsetilly/denise/prefs"
	"github.com/jetsetilly/denise/statsview"
	"github.com/jetsetilly/denise/wavwriter"
)

// exit values
const (
	exitOK    = 0
	exitParse = 10
	exitMode  = 20
)

// SDL requires that window creation and event handling happen on the main
// thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	os.Exit(launch(os.Args[1:], os.Stdout))
}

// launch parses the arguments and runs the selected mode. Returns the value
// to be used with os.Exit().
func launch(args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("RUN", "DIGEST", "IMAGE", "PERFORMANCE", "STATS")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return exitOK

	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitParse
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, output)

	case "DIGEST":
		err = digestMode(md, output)

	case "IMAGE":
		err = image(md, output)

	case "PERFORMANCE":
		err = perform(md, output)

	case "STATS":
		err = stats(md, output)
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		return exitMode
	}

	return exitOK
}

// options common to every mode
type options struct {
	spec      *string
	pattern   *string
	sprites   *bool
	interlace *bool
	scanlines *bool
	log       *bool
	prefs     *string
	visualise *string
}

func addOptions(md *modalflag.Modes) *options {
	return &options{
		spec:      md.AddString("spec", "PAL", fmt.Sprintf("video specification: %s", strings.Join(specification.SpecList, ", "))),
		pattern:   md.AddString("pattern", "NORMAL", fmt.Sprintf("test pattern: %s", strings.Join(chipset.PatternList, ", "))),
		sprites:   md.AddBool("sprites", true, "draw sprites over the test pattern"),
		interlace: md.AddBool("interlace", false, "alternate long and short frames"),
		scanlines: md.AddBool("scanlines", false, "leave every second line black when line doubling"),
		log:       md.AddBool("log", false, "echo debugging log to stdout"),
		prefs:     md.AddString("prefs", "", "preferences to override (eg. \"display.lores::false; display.frameRate::2\")"),
		visualise: md.AddString("visualise", "", "write a graph of the display state to file on exit"),
	}
}

// emulation is the result of setup()
type emulation struct {
	spec  specification.Spec
	prefs *display.Preferences
	disp  *display.Drawing
	chip  *chipset.Chipset
	opts  *options
}

// prepare the logger and the preferences. must be called before creating the
// host because the host size depends on the preferences.
func preferences(output io.Writer, opts *options) (*display.Preferences, error) {
	if *opts.log {
		logger.SetEcho(logger.NewColorizer(output))
	} else {
		logger.SetEcho(nil)
	}

	if *opts.prefs != "" {
		prefs.PushCommandLineStack(*opts.prefs)
		defer func() {
			if unused := prefs.PopCommandLineStack(); unused != "" {
				logger.Logf(logger.Allow, "prefs", "unused preferences: %s", unused)
			}
		}()
	}

	return display.NewPreferences()
}

// create the display and the chipset for the host.
func setup(opts *options, p *display.Preferences, host func(width int, height int, pixBytes int) (vidbuf.Host, error)) (*emulation, error) {
	spec, ok := specification.Lookup(strings.ToUpper(*opts.spec))
	if !ok {
		return nil, curated.Errorf("unknown video specification: %s", *opts.spec)
	}

	pattern, ok := chipset.ParsePattern(strings.ToUpper(*opts.pattern))
	if !ok {
		return nil, curated.Errorf("unknown test pattern: %s", *opts.pattern)
	}

	h, err := host(p.Width.Get().(int), p.Height.Get().(int), p.PixBytes())
	if err != nil {
		return nil, err
	}

	emu := &emulation{
		spec:  spec,
		prefs: p,
		opts:  opts,
	}

	emu.disp = display.NewDrawing(h, spec, p)
	emu.chip = chipset.NewChipset(events.NewScheduler(), emu.disp, spec, chipset.Config{
		Pattern:   pattern,
		Sprites:   *opts.sprites,
		Interlace: *opts.interlace,
		LineDbl:   p.LineDbl.Get().(bool),
		Scanlines: *opts.scanlines,
	})

	return emu, nil
}

// attach a limiter to the chipset. the limiter is only active if the FPSCap
// preference is set.
func (emu *emulation) limit() *limiter.Limiter {
	lmtr := limiter.NewLimiter(emu.spec.RefreshRate)
	lmtr.Active.Store(emu.prefs.FPSCap.Get().(bool))
	emu.chip.SetLimiter(lmtr)
	return lmtr
}

// finish is called at the end of every mode.
func (emu *emulation) finish() error {
	if *emu.opts.visualise == "" {
		return nil
	}

	f, err := os.Create(*emu.opts.visualise)
	if err != nil {
		return curated.Errorf("visualise: %v", err)
	}
	emu.disp.Visualise(f)
	err = f.Close()
	if err != nil {
		return curated.Errorf("visualise: %v", err)
	}

	return nil
}

// audio samples are sent to every sink in the list.
type audioSinks []chipset.AudioSink

func (a audioSinks) SetAudio(sample int16) {
	for _, s := range a {
		s.SetAudio(sample)
	}
}

func run(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	opts := addOptions(md)
	scale := md.AddInt("scale", 2, "window scaling")
	wav := md.AddString("wav", "", "record audio to wav file")
	savePrefs := md.AddBool("saveprefs", false, "save display preferences on exit")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return curated.Errorf("too many arguments for %s mode", md)
	}

	dp, err := preferences(output, opts)
	if err != nil {
		return err
	}

	var sdl *sdlhost.Host
	emu, err := setup(opts, dp, func(width int, height int, pixBytes int) (vidbuf.Host, error) {
		sdl, err = sdlhost.NewHost("Denise", width, height, pixBytes, *scale)
		return sdl, err
	})
	if err != nil {
		return err
	}
	defer sdl.Destroy()

	lmtr := emu.limit()

	if *wav != "" {
		aw, err := wavwriter.New(*wav, emu.chip.SampleRate())
		if err != nil {
			return err
		}
		defer func() {
			if err := aw.EndMixing(); err != nil {
				logger.Logf(logger.Allow, "wav", "%v", err)
			}
		}()
		emu.chip.SetAudio(aw)
	}

	sdl.OnClick = func(x int, y int) {
		g := emu.disp.Geometry()
		logger.Logf(logger.Allow, "input", "click at %d, %d (hpos %d, vpos %d)", x, y, g.NativeToAmigaX(x), g.NativeToAmigaY(y))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// one frame at a time so that window events are serviced regularly
	for sdl.Service() && ctx.Err() == nil {
		err = emu.chip.Run(ctx, 1)
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(output, "%d frames drawn (%.2f fps)\n", emu.disp.FramesDrawn(), lmtr.Measured.Load().(float32))

	if *savePrefs {
		err = dp.Save()
		if err != nil {
			return err
		}
	}

	return emu.finish()
}

func digestMode(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	opts := addOptions(md)
	frames := md.AddInt("frames", 10, "number of frames to digest")
	wav := md.AddString("wav", "", "record audio to wav file")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return curated.Errorf("too many arguments for %s mode", md)
	}

	dp, err := preferences(output, opts)
	if err != nil {
		return err
	}

	var video *digest.Video
	emu, err := setup(opts, dp, func(width int, height int, pixBytes int) (vidbuf.Host, error) {
		video = digest.NewVideo(width, height, pixBytes)
		return video, nil
	})
	if err != nil {
		return err
	}

	audio := digest.NewAudio()
	sinks := audioSinks{audio}

	if *wav != "" {
		aw, err := wavwriter.New(*wav, emu.chip.SampleRate())
		if err != nil {
			return err
		}
		defer func() {
			if err := aw.EndMixing(); err != nil {
				logger.Logf(logger.Allow, "wav", "%v", err)
			}
		}()
		sinks = append(sinks, aw)
	}
	emu.chip.SetAudio(sinks)

	err = emu.chip.Run(context.Background(), *frames)
	if err != nil {
		return err
	}
	audio.Flush()

	fmt.Fprintf(output, "video: %s (%d frames)\n", video.Hash(), video.Frames())
	fmt.Fprintf(output, "audio: %s\n", audio.Hash())

	return emu.finish()
}

func image(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	opts := addOptions(md)
	frames := md.AddInt("frames", 1, "number of frames to run before saving the image")
	scale := md.AddInt("scale", 1, "image scaling")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	var filename string
	switch len(md.RemainingArgs()) {
	case 0:
		return curated.Errorf("PNG filename required for %s mode", md)
	case 1:
		filename = md.GetArg(0)
	default:
		return curated.Errorf("too many arguments for %s mode", md)
	}

	dp, err := preferences(output, opts)
	if err != nil {
		return err
	}

	var img *imagehost.Host
	emu, err := setup(opts, dp, func(width int, height int, pixBytes int) (vidbuf.Host, error) {
		img = imagehost.NewHost(width, height, pixBytes)
		return img, nil
	})
	if err != nil {
		return err
	}

	err = emu.chip.Run(context.Background(), *frames)
	if err != nil {
		return err
	}

	err = img.Save(filename, *scale)
	if err != nil {
		return err
	}

	n, first, last := img.Presented()
	fmt.Fprintf(output, "%s: %d frames presented (rows %d to %d)\n", filename, n, first, last)

	return emu.finish()
}

func perform(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	opts := addOptions(md)
	duration := md.AddDuration("duration", 5*time.Second, "period of measurement")
	leadtime := md.AddDuration("leadtime", 2*time.Second, "period to run before measurement begins")
	profile := md.AddString("profile", "NONE", "generate profiling information: NONE, CPU, MEM, TRACE, ALL")
	uncapped := md.AddBool("uncapped", true, "run without the frame rate limiter")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return curated.Errorf("too many arguments for %s mode", md)
	}

	prf, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	dp, err := preferences(output, opts)
	if err != nil {
		return err
	}

	emu, err := setup(opts, dp, func(width int, height int, pixBytes int) (vidbuf.Host, error) {
		return digest.NewVideo(width, height, pixBytes), nil
	})
	if err != nil {
		return err
	}

	if !*uncapped {
		emu.limit()
	}

	err = performance.Check(output, prf, emu.chip, emu.spec, *leadtime, *duration)
	if err != nil {
		return err
	}

	return emu.finish()
}

func stats(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	opts := addOptions(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return curated.Errorf("too many arguments for %s mode", md)
	}

	if !statsview.Available() {
		return curated.Errorf("statsview not available in this build")
	}

	dp, err := preferences(output, opts)
	if err != nil {
		return err
	}

	emu, err := setup(opts, dp, func(width int, height int, pixBytes int) (vidbuf.Host, error) {
		return digest.NewVideo(width, height, pixBytes), nil
	})
	if err != nil {
		return err
	}

	lmtr := emu.limit()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	w, err := termquit.Watch(ctx, cancel)
	if err != nil {
		logger.Logf(logger.Allow, "stats", "%v", err)
	} else {
		defer func() {
			cancel()
			w.Stop()
		}()
		fmt.Fprintln(output, "press q to quit")
	}

	statsview.Launch(output)

	err = emu.chip.Run(ctx, 0)
	if err != nil {
		return err
	}

	st := emu.chip.Stats()
	fmt.Fprintf(output, "%d frames (%.2f fps)\n", st.Frames, lmtr.Measured.Load().(float32))
	for slot := range events.NumSlots {
		fmt.Fprintf(output, "%-8s %d\n", slot, st.Handled[slot])
	}

	return emu.finish()
}
