// Package config loads the Spotify credentials and download settings.
//
// This package handles:
//   - Reading spotify_auth.toml
//   - Default values for every optional setting
//   - Environment overrides (SPOTIFY_CLIENT_ID, SPOTIFY_CLIENT_SECRET,
//     SPOTIFY_REDIRECT_URI), optionally from a .env file
//   - Validation with typed errors the binaries turn into instructions
//
// # Loading
//
//	cfg, err := config.Load(config.DefaultPath)
//	switch {
//	case errors.Is(err, config.ErrConfigNotFound):
//	    fmt.Print(config.SetupInstructions(config.DefaultPath, true))
//	case err != nil:
//	    fmt.Println(err)
//	}
//
// # File Format
//
//	client_id = "..."
//	client_secret = "..."
//	redirect_uri = "http://localhost:8888/callback"  # optional
//	download_folder = "playlist_covers"              # optional
//	batch_size = 20                                   # optional
//	request_timeout = 30                              # optional, seconds
//	strategy = "batch"                                # optional, batch|window
//	log_level = "warn"                                # optional
//	log_file = ""                                     # optional
package config
