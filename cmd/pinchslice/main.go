package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ayusman/pinchslice/internal/app"
	"github.com/ayusman/pinchslice/internal/config"
	"github.com/ayusman/pinchslice/internal/logger"
	"github.com/ayusman/pinchslice/internal/tray"
)

// consoleLogFile takes the logs when the terminal panel owns stdout and no
// log_file is configured.
const consoleLogFile = "pinchslice.log"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "pinchslice: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "YAML config file (also $PINCHSLICE_CONFIG)")
		mode       = flag.String("mode", "", "personality: cursor or game")
		replay     = flag.String("replay", "", "replay the named recording instead of the camera")
		record     = flag.String("record", "", "record this session under the given name")
		db         = flag.String("db", "", "recordings database")
		addr       = flag.String("addr", "", "status server listen address, e.g. :8090")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath, *mode, *replay, *record, *db, *addr)
	if err != nil {
		return err
	}

	logOut, closeLog, err := logOutput(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	log := logger.Init(logOut)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var t *tray.Tray
	if cfg.UI.Tray {
		t = tray.New()
	}

	a, err := app.New(cfg, log, app.Deps{Tray: t})
	if err != nil {
		return err
	}
	defer a.Close()

	log.Info(ctx, "pinchslice starting", logger.String("mode", cfg.Mode))

	if t == nil {
		return a.Run(ctx)
	}

	// The tray needs the main thread; the loop runs beside it.
	var runErr error
	t.OnQuit(stop)
	t.OnReady(func() {
		runErr = a.Run(ctx)
		t.Quit()
	})
	t.Run()
	return runErr
}

// loadConfig layers the flags over the loaded config, fills in the default
// recordings DB and only then validates.
func loadConfig(path, mode, replay, record, db, addr string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	applyFlags(cfg, mode, replay, record, db, addr)
	if err := defaultDB(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlags(cfg *config.Config, mode, replay, record, db, addr string) {
	if mode != "" {
		cfg.Mode = mode
	}
	if replay != "" {
		cfg.Record.Replay = replay
	}
	if record != "" {
		cfg.Record.Save = record
	}
	if db != "" {
		cfg.Record.DB = db
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
}

// defaultDB puts the recordings database under ~/.pinchslice when a session
// records or replays without one configured.
func defaultDB(cfg *config.Config) error {
	if cfg.Record.DB != "" || (cfg.Record.Save == "" && cfg.Record.Replay == "") {
		return nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("get home directory: %w", err)
	}
	cfg.Record.DB = filepath.Join(homeDir, ".pinchslice", "pinchslice.db")
	return nil
}

func logOutput(cfg *config.Config) (io.Writer, func(), error) {
	path := cfg.LogFile
	if path == "" && cfg.UI.Console {
		path = consoleLogFile
	}
	if path == "" {
		return os.Stdout, func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
