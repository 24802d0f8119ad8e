// Package download fetches playlist cover images and writes them to disk.
//
// # Manager
//
// The Manager processes every playlist it is given:
//
//  1. Skip playlists without images (missing cover)
//  2. Pick the largest image that has a URL (missing url otherwise)
//  3. Download the image
//  4. Derive the file extension from the Content-Type or the URL
//  5. Write <destDir>/<sanitized name><ext>, replacing existing files
//  6. Decode the image header for the success message
//
// # Basic Usage
//
//	manager := download.NewManager(http.NewClient(0), nil, logger, download.Options{BatchSize: 20},
//	    func(event download.ProgressEvent) {
//	        fmt.Println(event.Message)
//	    })
//
//	summary := manager.DownloadAll(ctx, playlists, "playlist_covers")
//	fmt.Println(summary.Line())
//
// # Concurrency
//
// Options.BatchSize bounds the number of downloads in flight. With
// config.StrategyBatch playlists are split into batches and a batch starts
// only once the previous one has finished. With config.StrategyWindow a new
// download starts as soon as a slot frees up.
//
// A failed playlist never cancels the others. Each playlist produces one
// model.Outcome and the outcomes are folded into a model.Summary after all
// downloads have returned.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// GetProgress returns processed/total counters for progress bars.
package download
