package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tintin10q/your-spotify-playlist-cover-downloader/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	flags := app.RegisterFlags(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Download the covers of your own Spotify playlists")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  my-covers [options]")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "For someone else's public playlists, use: public-covers <user_id>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() > 0 {
		flag.Usage()
		return app.ExitUsage
	}

	cfg, err := flags.Load()
	if err != nil {
		fmt.Println(app.ConfigErrorMessage(err, flags.Config, true))
		return app.ExitError
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	a, err := app.New(cfg, app.Options{OnProgress: app.Printer(os.Stdout, flags.Verbose)})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing: %v\n", err)
		return app.ExitError
	}
	defer func() { _ = a.Shutdown() }()

	fmt.Println("🎨 Spotify Playlist Cover Downloader")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	_, err = a.RunOwn(ctx)
	if ctx.Err() != nil {
		fmt.Println("\nDownload cancelled.")
		return app.ExitInterrupted
	}
	if err != nil {
		fmt.Println(app.RunErrorMessage(err, ""))
		return app.ExitError
	}

	return app.ExitOK
}
