package config

import (
	"fmt"
	"strings"
)

// SetupInstructions returns the text shown when the config file is missing.
//
// withRedirect adds the redirect URI step needed by the authorization code
// flow of the own-playlists downloader.
func SetupInstructions(path string, withRedirect bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Please create a %s file with the following format:\n\n", path)
	b.WriteString("client_id = \"your_client_id_here\"\n")
	b.WriteString("client_secret = \"your_client_secret_here\"\n")
	if withRedirect {
		fmt.Fprintf(&b, "# Optional: redirect_uri = %q\n", DefaultRedirect())
	}

	b.WriteString("\nSetup instructions:\n")
	b.WriteString("1. Go to https://developer.spotify.com/dashboard\n")
	b.WriteString("2. Create a new app\n")
	b.WriteString("3. Copy the Client ID and Client Secret\n")
	step := 4
	if withRedirect {
		fmt.Fprintf(&b, "%d. Add '%s' as a Redirect URI in your app settings\n", step, DefaultRedirect())
		step++
	}
	fmt.Fprintf(&b, "%d. Create the %s file with your credentials\n", step, path)

	return b.String()
}

// DefaultRedirect returns the redirect URI used when none is configured.
func DefaultRedirect() string {
	return Default().RedirectURI
}
