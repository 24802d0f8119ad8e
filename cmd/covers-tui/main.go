package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tintin10q/your-spotify-playlist-cover-downloader/internal/app"
	"github.com/tintin10q/your-spotify-playlist-cover-downloader/internal/logger"
	"github.com/tintin10q/your-spotify-playlist-cover-downloader/internal/tui"
)

func main() {
	flags := app.RegisterFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := flags.Load()
	if err != nil {
		fmt.Println(app.ConfigErrorMessage(err, flags.Config, false))
		os.Exit(app.ExitError)
	}

	// Console records would draw over the alternate screen; only the
	// optional log file is kept.
	log, err := logger.New(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile, Console: io.Discard})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(app.ExitError)
	}

	a, err := app.New(cfg, app.Options{Logger: log})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing: %v\n", err)
		os.Exit(app.ExitError)
	}

	err = tui.Run(a)
	_ = a.Shutdown()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(app.ExitError)
	}
}
