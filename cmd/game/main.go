package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/glasteroids/internal/config"
	"github.com/tomz197/glasteroids/internal/draw"
	"github.com/tomz197/glasteroids/internal/logging"
	"github.com/tomz197/glasteroids/internal/loop/client"
	loopconfig "github.com/tomz197/glasteroids/internal/loop/config"
	"github.com/tomz197/glasteroids/internal/loop/server"
	"github.com/tomz197/glasteroids/internal/sound"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, path, err := config.Resolve()
	if err != nil {
		return err
	}

	// The game owns the terminal, so logs wait in memory until it is
	// restored unless stderr is redirected.
	var logBuf bytes.Buffer
	var logOut io.Writer = os.Stderr
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logOut = &logBuf
	}
	defer func() {
		if logBuf.Len() > 0 {
			_, _ = logBuf.WriteTo(os.Stderr)
		}
	}()
	logger, err := logging.New(logOut, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	hub := server.NewHub(logger)
	if path != "" {
		watcher, err := config.NewWatcher(path)
		if err != nil {
			logger.Warn("settings will not be reloaded", "path", path, "err", err)
		} else {
			defer watcher.Close()
			go hub.FollowSettings(watcher.Settings, watcher.Errors)
			logger.Info("watching settings", "path", path)
		}
	}

	jukebox, closeAudio := openJukebox(cfg, logger)
	defer closeAudio()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sig)
	go func() {
		if _, ok := <-sig; ok {
			hub.Shutdown(loopconfig.ShutdownGracePeriod)
		}
	}()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()
	draw.EnterAltScreen(os.Stdout)
	defer draw.ExitAltScreen(os.Stdout)

	c := client.NewClient(hub, bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
		Username: config.GetEnv("USER", "player"),
		Settings: cfg,
		Logger:   logger,
		Jukebox:  jukebox,
	})
	return c.Run()
}

// openJukebox opens the speaker when audio is enabled. Without a usable
// device the game runs silent.
func openJukebox(cfg config.Settings, logger *log.Logger) (*sound.Jukebox, func()) {
	if !cfg.Audio.Enabled {
		return sound.NewJukebox(nil, cfg.Audio.Volume, logger), func() {}
	}
	spk, err := sound.OpenSpeaker()
	if err != nil {
		logger.Warn("audio disabled", "err", err)
		return sound.NewJukebox(nil, cfg.Audio.Volume, logger), func() {}
	}
	return sound.NewJukebox(spk, cfg.Audio.Volume, logger), spk.Close
}
