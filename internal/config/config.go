// Package config defines the pinchslice configuration and its loader.
package config

// Modes supported by the driver.
const (
	ModeCursor = "cursor"
	ModeGame   = "game"
)

// Smoothers supported by the gesture interpreter.
const (
	SmootherEMA    = "ema"
	SmootherKalman = "kalman"
)

// Config contains process configuration.
type Config struct {
	// Mode selects the personality: "cursor" or "game".
	Mode string `koanf:"mode"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile redirects logs away from stdout. Required in practice when the
	// terminal console is enabled, since it owns the tty.
	LogFile string `koanf:"log_file"`

	Camera   CameraConfig   `koanf:"camera"`
	Detector DetectorConfig `koanf:"detector"`
	Gesture  GestureConfig  `koanf:"gesture"`
	Game     GameConfig     `koanf:"game"`
	Server   ServerConfig   `koanf:"server"`
	Audio    AudioConfig    `koanf:"audio"`
	Record   RecordConfig   `koanf:"record"`
	UI       UIConfig       `koanf:"ui"`
}

// CameraConfig configures the capture device.
type CameraConfig struct {
	Device int `koanf:"device"`
	Width  int `koanf:"width"`
	Height int `koanf:"height"`
	FPS    int `koanf:"fps"`
}

// DetectorConfig configures the MediaPipe hand landmarker service.
type DetectorConfig struct {
	// Script is the path of the landmarker service script. Empty means search
	// the usual locations.
	Script string `koanf:"script"`

	// Python is the interpreter used to run Script. Empty means look for a
	// virtualenv, then fall back to python3.
	Python string `koanf:"python"`

	// Model is the hand_landmarker.task asset handed to the service.
	Model string `koanf:"model"`

	MaxHands               int     `koanf:"max_hands"`
	MinDetectionConfidence float64 `koanf:"min_detection_confidence"`
	MinPresenceConfidence  float64 `koanf:"min_presence_confidence"`
	MinTrackingConfidence  float64 `koanf:"min_tracking_confidence"`
}

// GestureConfig tunes the gesture interpreter.
type GestureConfig struct {
	// Alpha is the EMA coefficient applied to the previous smoothed value.
	Alpha float64 `koanf:"alpha"`

	// PinchThreshold is the thumb-index distance, in normalized landmark
	// units, under which the hand counts as pinching.
	PinchThreshold float64 `koanf:"pinch_threshold"`

	// Smoother is "ema" or "kalman".
	Smoother string `koanf:"smoother"`

	// TrailLength caps the fingertip trail used for slicing.
	TrailLength int `koanf:"trail_length"`
}

// GameConfig configures the fruit game viewport.
type GameConfig struct {
	Width  int `koanf:"width"`
	Height int `koanf:"height"`

	// Seed fixes the spawn random source. Zero seeds from the clock.
	Seed int64 `koanf:"seed"`
}

// ServerConfig configures the optional status server.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8090". Empty disables the server.
	Addr string `koanf:"addr"`
}

// AudioConfig toggles sound effects.
type AudioConfig struct {
	Enabled bool `koanf:"enabled"`
}

// RecordConfig configures landmark recording and replay.
type RecordConfig struct {
	// DB is the SQLite database holding recordings.
	DB string `koanf:"db"`

	// Save names a new recording to capture this session into.
	Save string `koanf:"save"`

	// Replay names an existing recording to play instead of the camera.
	Replay string `koanf:"replay"`
}

// UIConfig selects the control and display surfaces.
type UIConfig struct {
	// Preview opens the OpenCV window with the annotated camera frame.
	Preview bool `koanf:"preview"`

	// Console takes over the terminal for keys and a status line.
	Console bool `koanf:"console"`

	// Tray shows the system tray menu (cursor mode).
	Tray bool `koanf:"tray"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		Mode:     ModeGame,
		LogLevel: "info",
		Camera: CameraConfig{
			Device: 0,
			Width:  1280,
			Height: 720,
			FPS:    30,
		},
		Detector: DetectorConfig{
			Model:                  "hand_landmarker.task",
			MaxHands:               2,
			MinDetectionConfidence: 0.5,
			MinPresenceConfidence:  0.5,
			MinTrackingConfidence:  0.5,
		},
		Gesture: GestureConfig{
			Alpha:          0.5,
			PinchThreshold: 0.05,
			Smoother:       SmootherEMA,
			TrailLength:    20,
		},
		Game: GameConfig{
			Width:  1280,
			Height: 720,
		},
		Audio: AudioConfig{
			Enabled: true,
		},
		UI: UIConfig{
			Preview: true,
		},
	}
}
