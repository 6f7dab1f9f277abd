package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quimiview/internal/api"
	"quimiview/internal/config"
	"quimiview/internal/dispatch"
	"quimiview/internal/elements"
	"quimiview/internal/logging"
	"quimiview/internal/serialio"
	"quimiview/internal/state"
)

func main() {
	configPath := flag.String("config", "config.json", "path to the config file")
	logPath := flag.String("log", "", "optional log file, appended to")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger, closeLog, err := logging.New(*logPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	defer closeLog()
	if *debug {
		logging.SetDebug()
	}

	cfg := config.Load(*configPath, logger)
	db := elements.Load(cfg.ElementsJSONPath, logger)
	logger.Info("elements dataset loaded", "path", cfg.ElementsJSONPath, "count", db.Len())

	holder := state.NewHolder()
	disp := dispatch.New(db, holder, logger)
	manager := serialio.NewManager(serialio.HostTransport{}, disp.Handle, logger)

	if cfg.AutoStartSerial {
		if err := manager.Start(cfg.SerialPort, cfg.Baudrate); err != nil {
			logger.Error("auto-start serial listener failed, continuing without connection",
				"port", cfg.SerialPort, "error", err)
		}
	}

	server := &api.Server{Config: cfg, DB: db, State: holder, Serial: manager, Logger: logger}
	addr := fmt.Sprintf(":%d", cfg.WebPort)
	httpServer := &http.Server{Addr: addr, Handler: api.NewRouter(server)}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	logger.Info("web server listening", "addr", addr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			// Failing to bind the web port is the one fatal error.
			logger.Error("web server failed", "addr", addr, "error", err)
			manager.Stop()
			closeLog()
			os.Exit(1)
		}
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
	}

	manager.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Warn("http shutdown", "error", err)
	}
}
