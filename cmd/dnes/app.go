package main

import (
	"fmt"
	"image"
	"log"
	"strings"
	"time"

	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"

	"github.com/hexaflex/dnes/core"
	"github.com/hexaflex/dnes/fault"
	"github.com/hexaflex/dnes/input"
	"github.com/hexaflex/dnes/nes"
	"github.com/hexaflex/dnes/present"
	"github.com/hexaflex/dnes/present/glview"
	"github.com/hexaflex/dnes/romload"
	"github.com/hexaflex/dnes/sched"
)

// App defines application context.
type App struct {
	config       *Config         // Application configuration.
	window       *glfw.Window    // OpenGL/GLFW context.
	view         *glview.Surface // Frame renderer.
	machine      *sched.Machine  // Scheduler driving the core.
	present      *present.Bridge // Framebuffer to surface bridge.
	keys         input.Bindings  // Controller key map.
	queue        *input.Queue    // Key edges waiting for the next frame.
	titleUpdated time.Time       // Value used to periodically update window title.
	titleFrames  uint64          // Frame count at the last title update.
}

// NewApp loads the ROM and builds the machine. No window exists yet, so
// ROM and allocation failures never open one.
func NewApp(config *Config) (*App, error) {
	rom, name, err := romload.Load(config.ROM)
	if err != nil {
		return nil, err
	}

	log.Println("loading", config.ROM, name)

	a := &App{
		config: config,
		keys:   defaultBindings(config.Player2),
		queue:  input.NewQueue(input.DefaultCapacity),
	}

	c := nes.New()
	c.SetDrawOption(present.DrawOption(nes.ScreenWidth, nes.ScreenHeight, config.Scale, core.RGBA8888))

	a.machine, err = sched.New(c, sched.Config{
		Cooperative: config.SingleThread,
		ArenaLimit:  config.MaxArena,
		Input:       a.queue,
		Presenter:   a,
		Pacer:       sched.NewPacer(config.FPS),
	})
	if err != nil {
		return nil, err
	}

	geom := a.machine.Arena().Sizes().Framebuffer
	a.present, err = present.New(a, geom, core.RGBA8888, config.Scale)
	if err != nil {
		a.machine.Close()
		return nil, fault.Wrap(fault.Allocation, err, "presentation")
	}

	if err := a.machine.Load(rom); err != nil {
		a.machine.Close()
		return nil, err
	}

	return a, nil
}

// Run runs the application and does not return until it is finished
// or an error occured during initialization.
func (a *App) Run() error {
	if err := a.initGL(); err != nil {
		a.dispose()
		return err
	}

	defer a.dispose()

	log.Println(Version())
	a.printHelp()

	if a.config.StatsView {
		launchStats()
	}

	a.machine.Start()
	a.titleUpdated = time.Now()

	for !a.window.ShouldClose() {
		if err := a.mainLoop(); err != nil {
			return err
		}
	}

	return nil
}

// mainLoop runs one frame and handles host events.
func (a *App) mainLoop() error {
	if err := a.machine.Frame(); err != nil {
		return err
	}

	a.window.SwapBuffers()
	glfw.PollEvents()

	// Periodically update the window title to show the effective cpu clock.
	if elapsed := time.Since(a.titleUpdated); elapsed >= time.Second*2 {
		frames := a.machine.Frames()
		cycles := float64(frames-a.titleFrames) * nes.CyclesPerFrame
		a.titleUpdated = time.Now()
		a.titleFrames = frames
		a.window.SetTitle(fmt.Sprintf("%s %s - %s", AppName, AppVersion, prettyFrequency(cycles/elapsed.Seconds())))
	}

	return nil
}

// Present hands the framebuffer to the host scaler and surface.
func (a *App) Present(fb []byte) error {
	return a.present.Present(fb)
}

// Upload draws a finished frame into the window.
func (a *App) Upload(img *image.RGBA) error {
	if err := a.view.Upload(img); err != nil {
		return err
	}

	w, h := a.window.GetFramebufferSize()
	a.view.Draw(w, h)
	return nil
}

// dispose ensures the machine, openGL/GLFW and other resources are cleaned up.
func (a *App) dispose() {
	var errs fault.ErrorSet
	errs.Append(a.machine.Close())

	if a.view != nil {
		a.view.Release()
		a.view = nil
	}

	if a.window != nil {
		a.window.Destroy()
		a.window = nil
	}

	glfw.Terminate()

	if err := errs.Err(); err != nil {
		log.Println(err)
	}
}

func (a *App) keyCallback(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Repeat {
		return
	}

	if a.keys.Handle(a.queue, int(key), action == glfw.Press) {
		return
	}

	if action != glfw.Press {
		return
	}

	switch key {
	case glfw.KeyEscape:
		a.window.SetShouldClose(true)
	case glfw.KeyF1:
		a.printHelp()
	case glfw.KeyF5, glfw.KeyR:
		a.machine.RequestReset()
	}
}

// initGL initializes GLFW and openGL.
func (a *App) initGL() error {
	err := glfw.Init()
	if err != nil {
		return errors.Wrapf(err, "glfw.Init failed")
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.Visible, glfw.True)
	glfw.WindowHint(glfw.Focused, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 2)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	var monitor *glfw.Monitor

	width, height := a.present.Size()

	if a.config.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()

		width = mode.Width
		height = mode.Height

		glfw.WindowHint(glfw.Decorated, glfw.False)
		glfw.WindowHint(glfw.Maximized, glfw.True)
	} else {
		glfw.WindowHint(glfw.Decorated, glfw.True)
		glfw.WindowHint(glfw.Maximized, glfw.False)
	}

	a.window, err = glfw.CreateWindow(width, height, AppName, monitor, nil)
	if err != nil {
		return errors.Wrapf(err, "glfw.CreateWindow failed")
	}

	a.window.MakeContextCurrent()
	a.window.SetKeyCallback(a.keyCallback)

	glfw.SwapInterval(0)

	err = gl.Init()
	if err != nil {
		return errors.Wrapf(err, "gl.Init failed")
	}

	gl.ClearColor(0, 0, 0, 1.0)

	a.view, err = glview.New()
	return err
}

// printHelp writes a short overview of supported shortcut keys to stdout.
func (a *App) printHelp() {
	var sb strings.Builder
	sb.WriteString("shortcut keys:\n")
	sb.WriteString(" ESC      Exit the emulator.\n")
	sb.WriteString(" F1       Display this help.\n")
	sb.WriteString(" F5, R    Reset the console.\n")
	sb.WriteString("controller keys:\n")
	a.keys.Describe(&sb, keyName)
	log.Println(strings.TrimRight(sb.String(), "\n"))
}

// prettyFrequency returns a human-readable version of the given clock frequency in herz.
func prettyFrequency(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.2f GHz", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2f MHz", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2f KHz", v/1e3)
	default:
		return fmt.Sprintf("%.2f Hz", v)
	}
}
