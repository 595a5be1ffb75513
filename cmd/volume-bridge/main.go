package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/volume-bridge/bridge"
	"github.com/wippyai/volume-bridge/handle"
	"github.com/wippyai/volume-bridge/notify"
	"github.com/wippyai/volume-bridge/source"
)

func main() {
	var (
		groups      = flag.Int("groups", 4, "Number of simulated volume groups")
		interval    = flag.Duration("interval", 800*time.Millisecond, "Interval between simulated changes")
		interactive = flag.Bool("i", false, "Interactive monitor with TUI")
		debug       = flag.Bool("debug", false, "Verbose logging")
	)
	flag.Parse()

	logger := newLogger(*debug)
	defer func() { _ = logger.Sync() }()

	bridge.SetLogger(logger.Named("bridge"))
	handle.SetLogger(logger.Named("handle"))
	notify.SetLogger(logger.Named("notify"))

	src := source.NewSim(*groups, *interval)
	h, err := notify.New(src)
	if err != nil {
		logger.Fatal("bridge subsystem init failed", zap.Error(err))
	}
	if err := h.Init(); err != nil {
		logger.Fatal("handler init failed", zap.Error(err))
	}
	defer h.Close()

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(src, h, *groups); err != nil {
			logger.Fatal("interactive monitor failed", zap.Error(err))
		}
		return
	}

	h.RegisterListener(notify.DispatcherFunc(func(group, flags int32) error {
		logger.Info("volume group changed",
			zap.Int32("group", group),
			zap.Int32("flags", flags))
		return nil
	}))

	src.Start()
	defer src.Stop()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
}

func newLogger(debug bool) *zap.Logger {
	if debug {
		return zap.Must(zap.NewDevelopment())
	}
	return zap.Must(zap.NewProduction())
}
