package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/glasteroids/internal/config"
	"github.com/tomz197/glasteroids/internal/logging"
	"github.com/tomz197/glasteroids/internal/sound"
	"github.com/tomz197/glasteroids/internal/window"
)

func main() {
	cfg, path, err := config.Resolve()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	logger := logging.MustNew(cfg.Log.Level, cfg.Log.Format)

	opts := window.Options{Settings: cfg, Logger: logger}
	if path != "" {
		watcher, err := config.NewWatcher(path)
		if err != nil {
			logger.Warn("settings will not be reloaded", "path", path, "err", err)
		} else {
			defer watcher.Close()
			opts.Reload = watcher.Settings
			go func() {
				for err := range watcher.Errors {
					logger.Warn("settings reload failed", "err", err)
				}
			}()
		}
	}

	var out sound.Output
	if cfg.Audio.Enabled {
		spk, err := sound.OpenSpeaker()
		if err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer spk.Close()
			out = spk
		}
	}
	opts.Jukebox = sound.NewJukebox(out, cfg.Audio.Volume, logger)

	g := window.New(opts)
	w, h := g.WindowSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("glasteroids")
	ebiten.SetWindowResizable(true)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("game error", "err", err)
		os.Exit(1)
	}
}
