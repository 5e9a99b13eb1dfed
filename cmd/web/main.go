// Web server entry point for go-helloapi
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	prof "github.com/go-while/go-cpu-mem-profiler"
	"github.com/go-while/go-helloapi/internal/config"
	"github.com/go-while/go-helloapi/internal/web"
)

var (
	// command-line flags, each overriding the environment-derived setting
	webhost string
	webport int
	debug   bool
)

var appVersion = "-unset-"

var Prof *prof.Profiler

func main() {
	config.AppVersion = appVersion

	flag.StringVar(&webhost, "webhost", "", "Bind address (overrides HOST)")
	flag.IntVar(&webport, "webport", 0, "Web server port (overrides PORT)")
	flag.BoolVar(&debug, "debug", false, "Enable debug mode with pprof web listener (overrides DEBUG)")
	flag.Parse()

	settings, err := config.Get()
	if err != nil {
		log.Fatalf("[WEB]: Invalid configuration: %v", err)
	}

	// Flag overrides apply before the settings are handed out, after this
	// point the configuration is frozen for the process lifetime.
	if webhost != "" {
		settings.Host = webhost
		log.Printf("[WEB]: Overriding bind address with command-line flag: %s", settings.Host)
	}
	if webport > 0 {
		if webport > 65535 {
			log.Fatalf("[WEB]: Invalid port number: %d (must be between 1 and 65535)", webport)
		}
		settings.Port = webport
		log.Printf("[WEB]: Overriding listen port with command-line flag: %d", settings.Port)
	}
	if debug {
		settings.Debug = true
	}

	log.Printf("[WEB]: Starting %s (version: %s) log_level=%s", settings.AppName, settings.AppVersion, settings.LogLevel)

	if settings.Debug {
		Prof = prof.NewProf()
		go Prof.PprofWeb(":61980")
		log.Printf("[WEB]: Debug mode enabled, pprof web listener on :61980")
	}

	server := web.NewServer(settings)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	webServerErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			webServerErrChan <- err
		}
	}()

	log.Printf("[WEB]: Server started on %s. Press Ctrl+C to gracefully shutdown...", settings.Addr())

	// Wait for either shutdown signal or server error
	select {
	case <-sigChan:
		log.Printf("[WEB]: Received shutdown signal, initiating graceful shutdown...")
	case err := <-webServerErrChan:
		log.Fatalf("[WEB]: Failed to run web server: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("[WEB]: Graceful shutdown failed: %v", err)
	}

	log.Printf("[WEB]: Graceful shutdown completed")
} // end main
