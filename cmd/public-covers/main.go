package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/tintin10q/your-spotify-playlist-cover-downloader/internal/app"
)

func usage() {
	name := filepath.Base(os.Args[0])

	fmt.Println("You did not give me a spotify user id. Whose covers should I download?")
	fmt.Println("Get someones id by going to their profile and click share.")
	fmt.Println("The id is the last part of the link: https://open.spotify.com/user/<id_here> (ignore the ?si=.... part)")
	fmt.Println()
	fmt.Printf("Usage: %s [options] <spotify_user_id>\n", name)
	fmt.Println()
	fmt.Println("Example:")
	fmt.Printf("  %s spotify\n", name)
	fmt.Printf("  %s 1234567890\n", name)
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
}

func main() {
	os.Exit(run())
}

func run() int {
	flags := app.RegisterFlags(flag.CommandLine)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		return app.ExitError
	}
	userID := flag.Arg(0)

	cfg, err := flags.Load()
	if err != nil {
		fmt.Println(app.ConfigErrorMessage(err, flags.Config, false))
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

	fmt.Println("🎨 Spotify Public Playlist Cover Downloader")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	_, err = a.RunPublic(ctx, userID)
	if ctx.Err() != nil {
		fmt.Println("\nDownload cancelled.")
		return app.ExitInterrupted
	}
	if err != nil {
		fmt.Println(app.RunErrorMessage(err, userID))
		return app.ExitError
	}

	return app.ExitOK
}
