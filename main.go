package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/soar/skinview/internal/config"
	"github.com/soar/skinview/internal/console"
	"github.com/soar/skinview/internal/controller"
	"github.com/soar/skinview/internal/hub"
	"github.com/soar/skinview/internal/listing"
	"github.com/soar/skinview/internal/preview"
	"github.com/soar/skinview/internal/server"
	"github.com/soar/skinview/internal/skin"
	"github.com/soar/skinview/internal/source"
	"github.com/soar/skinview/internal/source/builtin"
	"github.com/soar/skinview/internal/tray"
	"github.com/soar/skinview/internal/view"
	"github.com/soar/skinview/internal/window"
)

// Cross-platform signal handling: use os.Interrupt on all platforms
// On Windows: os.Interrupt is sent when Ctrl+C is pressed
// On Unix: os.Interrupt is equivalent to syscall.SIGINT
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

const trayIconSize = 64

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		fmt.Printf("Usage of skinview:\n%s", config.Usage())
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n\nUsage of skinview:\n%s", err, config.Usage())
		os.Exit(2)
	}
	if cfg.File != "" {
		log.Printf("Using config file %s", cfg.File)
	}

	fromConsole := console.IsRunningFromConsole()

	reg := builtin.Registry()
	res := skin.NewLoader(reg).LoadAll(cfg.SkinsDir)
	if cfg.List {
		if err := listing.Write(os.Stdout, res); err != nil {
			log.Fatalf("Listing skins failed: %v", err)
		}
		return
	}
	for _, e := range res.Errors {
		log.Printf("Skin skipped: %v", e)
	}

	s, err := pickSkin(res, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("Showing skin %s", s.Key())

	// Closed by the Windows console handler, which SDL would otherwise
	// replace during its init
	interrupted := make(chan struct{})
	rearm := console.HandleInterrupt(interrupted)

	reader, err := reg.Open(s.Type.Tag, source.Options{
		SerialPort:     cfg.Serial.Port,
		SerialBaud:     cfg.Serial.Baud,
		KeyboardDevice: cfg.KeyboardDevice,
		Debug:          cfg.Debug,
		AfterInit:      rearm,
	})
	if err != nil {
		log.Fatalf("Opening %s reader failed: %v", s.Type.Name, err)
	}

	// Create cancellable context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)

	// Channel to wait for reader completion
	readerDone := make(chan struct{})
	go func() {
		if err := reader.Run(ctx); err != nil {
			log.Printf("Reader stopped: %v", err)
		}
		close(readerDone)
	}()

	if cfg.Window {
		err = runWindow(s, cfg, reader, sigCh, interrupted)
	} else {
		err = runWeb(ctx, s, res, cfg, reader, sigCh, interrupted, !fromConsole)
	}
	cancel()
	if err != nil {
		log.Printf("%v", err)
	}

	// Wait for reader to finish
	<-readerDone
	log.Println("SkinView stopped")
}

// pickSkin resolves the skin named in cfg, or the first one matching the
// requested type.
func pickSkin(res skin.Results, cfg *config.Config) (*skin.Skin, error) {
	if cfg.Skin != "" {
		s, ok := res.Find(cfg.Skin, cfg.Type)
		if !ok {
			return nil, fmt.Errorf("skin %q not found in %s", cfg.Skin, cfg.SkinsDir)
		}
		return s, nil
	}
	for _, s := range res.Skins {
		if cfg.Type == "" || s.Type.Tag == cfg.Type {
			return s, nil
		}
	}
	return nil, fmt.Errorf("no usable skin found in %s", cfg.SkinsDir)
}

func runWindow(s *skin.Skin, cfg *config.Config, reader controller.Reader, sigCh <-chan os.Signal, interrupted <-chan struct{}) error {
	sess, err := view.NewSession(s, cfg.Background, nil, cfg.StaticTitle)
	if err != nil {
		return err
	}

	quit := make(chan struct{})
	go func() {
		select {
		case <-sigCh:
		case <-interrupted:
		}
		log.Println("Shutting down...")
		close(quit)
	}()

	// ebiten must own the main goroutine
	return window.Run(sess, reader.Changes(), quit)
}

func runWeb(ctx context.Context, s *skin.Skin, res skin.Results, cfg *config.Config, reader controller.Reader, sigCh <-chan os.Signal, interrupted <-chan struct{}, openBrowser bool) error {
	sess, err := view.NewSession(s, cfg.Background, nil, cfg.StaticTitle)
	if err != nil {
		return err
	}
	assets := server.NewAssets(res.Skins)

	// Create and start hub
	h := hub.NewHub()
	go h.Run()

	broadcaster := hub.NewBroadcaster(h, sess, reader.Changes(), assets)

	srv := server.New(h, broadcaster, server.Options{
		Addr:     cfg.Addr,
		Frontend: getFrontendFS(),
		Skins:    res,
		Active:   s.Key(),
		Assets:   assets,
	})
	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	url := localURL(cfg.Addr)
	log.Printf("SkinView started: %s", url)
	if cfg.OpenBrowser || openBrowser {
		tray.OpenBrowser(url)
	}

	// Channel for tray-triggered shutdown
	shutdownRequested := make(chan struct{})

	var t *tray.Tray
	if runtime.GOOS == "windows" {
		icon, err := preview.Icon(s, sess.Background().Name, trayIconSize, true)
		if err != nil {
			log.Printf("Tray icon failed: %v", err)
		}
		t = tray.New(tray.Options{
			Title:        sess.Title(),
			URL:          url,
			Icon:         icon,
			Backgrounds:  sess.Scene().Backgrounds,
			Current:      sess.Background().Name,
			OnBackground: broadcaster.SelectBackground,
			Shutdown: func() {
				close(shutdownRequested)
			},
		})
		broadcaster.OnBackground(t.SetCurrent)
	}
	go broadcaster.Run(ctx)
	if t != nil {
		go t.Run()
	} else {
		log.Println("Press Ctrl+C to exit")
	}

	// Wait for shutdown signal, tray request, or server error
	var runErr error
	select {
	case <-sigCh:
		log.Println("Shutting down...")
	case <-interrupted:
		log.Println("Shutting down...")
	case <-shutdownRequested:
		log.Println("Shutdown requested from tray")
	case err := <-serverErrCh:
		runErr = fmt.Errorf("HTTP server error: %w", err)
	}
	if t != nil {
		t.Quit()
	}

	// Shutdown the HTTP server gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
	return runErr
}

// localURL turns a listen address into a URL a local browser can open.
func localURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}
