// Command snek runs the terminal snake game.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/brensch/snekterm/audio"
	"github.com/brensch/snekterm/game"
	"github.com/brensch/snekterm/geom"
	"github.com/brensch/snekterm/logging"
	"github.com/brensch/snekterm/rules"
	"github.com/brensch/snekterm/spectate"
	"github.com/brensch/snekterm/store"
	"github.com/brensch/snekterm/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	difficulty := flag.String("difficulty", getEnvOrDefault("SNEK_DIFFICULTY", "normal"), "Starting difficulty: easy, normal or hard")
	width := flag.Float64("width", getEnvFloatOrDefault("SNEK_WIDTH", game.DefaultScreen.X), "World width")
	height := flag.Float64("height", getEnvFloatOrDefault("SNEK_HEIGHT", game.DefaultScreen.Y), "World height")
	seed := flag.Int64("seed", getEnvInt64OrDefault("SNEK_SEED", 0), "Food placement seed (0 = time based)")
	fps := flag.Int("fps", int(getEnvInt64OrDefault("SNEK_FPS", 60)), "Frames per second")
	logPath := flag.String("log-path", getEnvOrDefault("SNEK_LOG_PATH", "snek.log"), "Log file (empty disables logging)")
	logLevel := flag.String("log-level", getEnvOrDefault("SNEK_LOG_LEVEL", "info"), "Log level")
	recordDir := flag.String("record-dir", getEnvOrDefault("SNEK_RECORD_DIR", ""), "Directory for round recordings (empty disables)")
	spectateAddr := flag.String("spectate-addr", getEnvOrDefault("SNEK_SPECTATE_ADDR", ""), "Address for the spectator feed, e.g. :8080 (empty disables)")
	sound := flag.Bool("sound", getEnvBoolOrDefault("SNEK_SOUND", false), "Play sound effects")
	volume := flag.Float64("volume", getEnvFloatOrDefault("SNEK_VOLUME", 0.5), "Effect volume in [0,1]")
	flag.Parse()

	closer, err := logging.Setup(*logPath, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	if err := run(config{
		difficulty:   *difficulty,
		screen:       geom.V(*width, *height),
		seed:         *seed,
		fps:          *fps,
		recordDir:    *recordDir,
		spectateAddr: *spectateAddr,
		sound:        *sound,
		volume:       *volume,
	}); err != nil {
		log.Error().Err(err).Msg("snek exited")
		fmt.Fprintf(os.Stderr, "snek: %v\n", err)
		closer.Close()
		os.Exit(1)
	}
}

type config struct {
	difficulty   string
	screen       geom.Vec
	seed         int64
	fps          int
	recordDir    string
	spectateAddr string
	sound        bool
	volume       float64
}

func run(cfg config) error {
	d, err := rules.ParseDifficulty(cfg.difficulty)
	if err != nil {
		return err
	}
	if cfg.screen.X <= 0 || cfg.screen.Y <= 0 {
		return fmt.Errorf("invalid world size %vx%v", cfg.screen.X, cfg.screen.Y)
	}
	seed := cfg.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := game.New(d, cfg.screen, rand.New(rand.NewSource(seed)))
	opts := tui.Options{FrameInterval: frameInterval(cfg.fps)}

	if cfg.recordDir != "" {
		rec, err := store.NewRecorder(cfg.recordDir)
		if err != nil {
			return fmt.Errorf("open recorder: %w", err)
		}
		opts.Recorder = rec
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serveDone := make(chan struct{})
	close(serveDone)
	if cfg.spectateAddr != "" {
		hub := spectate.NewHub(spectate.DefaultViewerBuffer)
		opts.Publisher = hub
		serveDone = make(chan struct{})
		go func() {
			defer close(serveDone)
			if err := hub.Serve(ctx, cfg.spectateAddr); err != nil {
				log.Error().Err(err).Msg("spectator feed stopped")
			}
		}()
	}

	if cfg.sound {
		p := audio.NewPlayer(cfg.volume)
		if err := p.Init(); err != nil {
			log.Warn().Err(err).Msg("sound disabled")
		} else {
			defer p.Close()
			opts.Sounds = p
		}
	}

	log.Info().
		Str("difficulty", d.String()).
		Int64("seed", seed).
		Float64("width", cfg.screen.X).
		Float64("height", cfg.screen.Y).
		Msg("starting snek")

	prog := tea.NewProgram(tui.New(g, opts), tea.WithAltScreen())
	_, err = prog.Run()
	cancel()
	<-serveDone
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		return tui.DefaultFrameInterval
	}
	return time.Second / time.Duration(fps)
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt64OrDefault(key string, defaultVal int64) int64 {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloatOrDefault(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvBoolOrDefault(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}
