package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/ayusman/pinchslice/internal/audio"
	"github.com/ayusman/pinchslice/internal/capture"
	"github.com/ayusman/pinchslice/internal/config"
	"github.com/ayusman/pinchslice/internal/console"
	"github.com/ayusman/pinchslice/internal/control"
	"github.com/ayusman/pinchslice/internal/detector"
	"github.com/ayusman/pinchslice/internal/game"
	"github.com/ayusman/pinchslice/internal/gesture"
	"github.com/ayusman/pinchslice/internal/logger"
	"github.com/ayusman/pinchslice/internal/metrics"
	"github.com/ayusman/pinchslice/internal/pointer"
	"github.com/ayusman/pinchslice/internal/render"
	"github.com/ayusman/pinchslice/internal/server"
	"github.com/ayusman/pinchslice/internal/store"
	"github.com/ayusman/pinchslice/internal/tray"
)

// previewEvery is how many ticks pass between two preview stream frames.
const previewEvery = 2

// App is a fully wired pinchslice session.
type App struct {
	cfg     *config.Config
	log     logger.Logger
	driver  *Driver
	metrics *metrics.Manager
	store   *store.Store
	server  *server.Server
	console *console.Terminal
	tray    *tray.Tray
	sounds  *audio.SoundManager
	panel   *statusPanel
	hub     *server.StatusHub

	// closers run in reverse order on Close.
	closers []io.Closer
}

// Deps replaces collaborators New would otherwise build from the config.
// Zero fields are built as usual.
type Deps struct {
	Camera   capture.Camera
	Detector detector.Detector
	Pointer  pointer.Injector
	Surface  render.Surface
	Controls control.Source
	Console  *console.Terminal
	Tray     *tray.Tray
}

// New builds an App from cfg. A detector that cannot start, or a recording
// that cannot be opened, is returned as an error.
func New(cfg *config.Config, log logger.Logger, deps Deps) (*App, error) {
	if log == nil {
		log = logger.Discard()
	}
	a := &App{
		cfg:     cfg,
		log:     log.Named("app"),
		metrics: metrics.NewManager(),
		console: deps.Console,
		tray:    deps.Tray,
	}
	built := false
	defer func() {
		if !built {
			a.Close()
		}
	}()

	if cfg.Record.DB != "" {
		st, err := store.New(cfg.Record.DB)
		if err != nil {
			return nil, fmt.Errorf("open recordings: %w", err)
		}
		a.store = st
		a.closers = append(a.closers, a.store)
	}

	cam, det, err := a.source(deps)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, det)

	if cfg.Audio.Enabled {
		a.sounds = audio.NewSoundManager()
		if err := a.sounds.Initialize(); err != nil {
			a.log.Warn(context.Background(), "audio disabled", logger.Error(err))
		}
	}
	var sounds Sounds = silence{}
	if a.sounds != nil {
		sounds = a.sounds
	}

	var (
		mode             Mode
		viewW, viewH     int
		windowW, windowH int
		title            string
	)
	switch cfg.Mode {
	case config.ModeCursor:
		inj := deps.Pointer
		if inj == nil {
			inj = pointer.NewRobot()
		}
		viewW, viewH = inj.ScreenSize()
		mode = NewCursorMode(inj, sounds, a.metrics)
		title = "hand tracking"
	default:
		viewW, viewH = cfg.Game.Width, cfg.Game.Height
		seed := cfg.Game.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		sim := game.NewSimulator(float64(viewW), float64(viewH), rand.New(rand.NewSource(seed)))
		mode = NewGameMode(float64(viewW), float64(viewH), sim, gesture.NewTrail(cfg.Gesture.TrailLength), sounds, a.metrics)
		windowW, windowH = viewW, viewH
		title = "pinchslice"
	}

	interp := gesture.NewInterpreter(gesture.Config{
		Width:          float64(viewW),
		Height:         float64(viewH),
		PinchThreshold: cfg.Gesture.PinchThreshold,
	}, newSmoother(cfg.Gesture))

	surface, controls, err := a.surfaces(deps, title, windowW, windowH)
	if err != nil {
		return nil, err
	}

	a.panel = newStatusPanel(a.console, a.tray)
	onStatus := a.panel.update
	if cfg.Server.Addr != "" {
		a.hub = server.NewStatusHub()
		a.closers = append(a.closers, a.hub)
		onStatus = func(s server.Status) {
			a.panel.update(s)
			a.hub.Publish(s)
		}
	}
	a.driver = NewDriver(Options{
		Camera:      cam,
		Detector:    det,
		Interpreter: interp,
		Mode:        mode,
		Surface:     surface,
		Controls:    controls,
		Metrics:     a.metrics,
		Logger:      log,
		OnStatus:    onStatus,
	})

	if cfg.Server.Addr != "" {
		var preview server.FrameSource
		if snap, ok := findSnapshot(surface); ok {
			preview = snap
		}
		a.server = server.New(server.Config{
			Status:  a.driver,
			Metrics: a.metrics,
			Store:   a.store,
			Preview: preview,
			Live:    a.hub,
		})
	}

	built = true
	return a, nil
}

// source picks the frame source and detector: a stored recording played
// over blank frames, or the camera and the MediaPipe service. A Save name
// wraps the detector in a Recorder.
func (a *App) source(deps Deps) (capture.Camera, detector.Detector, error) {
	cfg := a.cfg
	cam, det := deps.Camera, deps.Detector

	if (cfg.Record.Replay != "" || cfg.Record.Save != "") && a.store == nil {
		return nil, nil, errors.New("recording and replay need record.db")
	}

	if cfg.Record.Replay != "" {
		replay, err := detector.NewReplayDetector(a.store.Recordings(), cfg.Record.Replay)
		if err != nil {
			return nil, nil, err
		}
		if cam == nil {
			cam = capture.NewBlankCamera(replay.Size())
		}
		a.log.Info(context.Background(), "replaying recording",
			logger.String("name", cfg.Record.Replay),
			logger.Int("frames", replay.Len()),
		)
		return cam, replay, nil
	}

	if cam == nil {
		cam = capture.NewCamera(cfg.Camera.Device, cfg.Camera.Width, cfg.Camera.Height, cfg.Camera.FPS)
	}
	if det == nil {
		mp, err := detector.NewMediaPipeDetector(detector.Config{
			Script:          cfg.Detector.Script,
			Python:          cfg.Detector.Python,
			Model:           cfg.Detector.Model,
			MaxHands:        cfg.Detector.MaxHands,
			MinConfidence:   cfg.Detector.MinDetectionConfidence,
			MinPresenceConf: cfg.Detector.MinPresenceConfidence,
			MinTrackingConf: cfg.Detector.MinTrackingConfidence,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("start hand landmarker: %w", err)
		}
		det = mp
	}

	if cfg.Record.Save != "" {
		rec, err := detector.NewRecorder(det, a.store.Recordings(), cfg.Record.Save, cfg.Camera.Width, cfg.Camera.Height)
		if err != nil {
			det.Close()
			return nil, nil, err
		}
		a.log.Info(context.Background(), "recording session", logger.String("name", cfg.Record.Save))
		det = rec
	}
	return cam, det, nil
}

// surfaces builds the render surfaces and the merged control sources.
func (a *App) surfaces(deps Deps, title string, width, height int) (render.Surface, control.Source, error) {
	var (
		fan      render.Fanout
		controls = control.NewMulti()
	)

	if deps.Surface != nil {
		fan = append(fan, deps.Surface)
	} else if a.cfg.UI.Preview {
		win := render.NewWindow(title, width, height)
		a.closers = append(a.closers, win)
		fan = append(fan, win)
		controls.Add(win)
	}

	if a.cfg.Server.Addr != "" {
		snap := render.NewSnapshot(width, height, previewEvery)
		a.closers = append(a.closers, snap)
		fan = append(fan, snap)
	}

	if deps.Controls != nil {
		controls.Add(deps.Controls)
	}

	if a.console == nil && a.cfg.UI.Console {
		term, err := console.New()
		if err != nil {
			return nil, nil, fmt.Errorf("open terminal: %w", err)
		}
		a.console = term
	}
	if a.console != nil {
		a.closers = append(a.closers, a.console)
		controls.Add(a.console)
	}
	if a.tray != nil {
		controls.Add(a.tray)
	}

	return fan, controls, nil
}

func findSnapshot(s render.Surface) (*render.Snapshot, bool) {
	fan, ok := s.(render.Fanout)
	if !ok {
		return nil, false
	}
	for _, surface := range fan {
		if snap, ok := surface.(*render.Snapshot); ok {
			return snap, true
		}
	}
	return nil, false
}

func newSmoother(cfg config.GestureConfig) gesture.Smoother {
	if cfg.Smoother == config.SmootherKalman {
		return gesture.NewKalman()
	}
	return gesture.NewEMA(cfg.Alpha)
}

// Run serves the status server, if configured, and runs the tick loop
// until it stops.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.server != nil {
		go func() {
			a.log.Info(ctx, "status server listening", logger.String("addr", a.cfg.Server.Addr))
			if err := a.server.ListenAndServe(ctx, a.cfg.Server.Addr); err != nil {
				a.log.Error(ctx, "status server stopped", logger.Error(err))
			}
		}()
	}

	return a.driver.Run(ctx)
}

// Driver returns the tick loop.
func (a *App) Driver() *Driver {
	return a.driver
}

// Metrics returns the metrics manager.
func (a *App) Metrics() *metrics.Manager {
	return a.metrics
}

// Server returns the status server, nil when server.addr is empty.
func (a *App) Server() *server.Server {
	return a.server
}

// Close releases everything New opened, newest first.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	if a.sounds != nil {
		a.sounds.Cleanup()
	}
	return first
}
