// Package model defines the core data structures used throughout
// the playlist cover downloader.
//
// # Playlist
//
// Playlist is a read-only snapshot of a Spotify playlist, reduced to what
// is needed to fetch its cover:
//
//	p := model.Playlist{ID: "37i9...", Name: "Summer", OwnerID: "alice", Images: imgs}
//	url, ok := model.SelectBestImage(p.Images)
//
// # Outcomes
//
// Every playlist handed to the downloader produces exactly one Outcome.
// Outcomes are folded into a Summary:
//
//	var s model.Summary
//	for _, o := range outcomes {
//	    s.Add(o)
//	}
//	fmt.Println(s.Line()) // "Download complete! 12/14 images downloaded successfully, 2 missing covers."
package model
